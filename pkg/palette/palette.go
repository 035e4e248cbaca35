package palette

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/swatchtower/swatchtower/pkg/errors"
)

// Document describes one palette image: the photograph it comes from, the
// palette colors, and the relative weight of each color. Colors and Ratios
// are parallel; Names, when present, parallels Colors as well.
type Document struct {
	// ID uniquely identifies an issued palette. Assigned by New; may be
	// empty for ad-hoc documents that were never issued.
	ID string `json:"id,omitempty" bson:"id"`

	// Source is the path or filename of the source photograph.
	Source string `json:"source" bson:"source"`

	// Colors are 6-digit hex colors, with or without a leading "#".
	Colors []string `json:"colors" bson:"colors"`

	// Ratios are the relative weights of the colors. They need not sum to
	// one; only proportions matter.
	Ratios []float64 `json:"ratios" bson:"ratios"`

	// Center optionally anchors the crop of the source photograph.
	Center *Center `json:"center,omitempty" bson:"center,omitempty"`

	// Comment is free-form display text.
	Comment string `json:"comment,omitempty" bson:"comment,omitempty"`

	// Names holds one human-readable name per color, filled in by the
	// colornames lookup.
	Names []string `json:"colornames,omitempty" bson:"colornames,omitempty"`
}

// Center is a crop anchor in proportional image coordinates: (0, 0) is the
// top-left corner of the source photograph, (1, 1) the bottom-right.
type Center struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// New builds a validated document with a fresh unique ID.
func New(source string, colors []string, ratios []float64) (*Document, error) {
	d := &Document{
		ID:     uuid.NewString(),
		Source: source,
		Colors: colors,
		Ratios: ratios,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks the document for internal consistency.
func (d *Document) Validate() error {
	if len(d.Colors) == 0 {
		return errors.New(errors.ErrCodeInvalidPalette, "palette has no colors")
	}
	if len(d.Colors) != len(d.Ratios) {
		return errors.New(errors.ErrCodeInvalidPalette,
			"%d colors but %d ratios", len(d.Colors), len(d.Ratios))
	}
	for _, c := range d.Colors {
		if err := errors.ValidateHexColor(c); err != nil {
			return err
		}
	}
	if err := errors.ValidateWeights(d.Ratios); err != nil {
		return err
	}
	if c := d.Center; c != nil {
		if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 {
			return errors.New(errors.ErrCodeInvalidInput,
				"center (%v, %v) outside the unit square", c.X, c.Y)
		}
	}
	if len(d.Names) != 0 && len(d.Names) != len(d.Colors) {
		return errors.New(errors.ErrCodeInvalidPalette,
			"%d colornames for %d colors", len(d.Names), len(d.Colors))
	}
	return nil
}

// NormalizedColors returns the colors lower-cased with a leading "#".
func (d *Document) NormalizedColors() []string {
	out := make([]string, len(d.Colors))
	for i, c := range d.Colors {
		out[i] = NormalizeHex(c)
	}
	return out
}

// NormalizeHex lower-cases a hex color and ensures a leading "#".
// Inputs that are not hex colors are returned unchanged.
func NormalizeHex(c string) string {
	if errors.ValidateHexColor(c) != nil {
		return c
	}
	return "#" + strings.ToLower(strings.TrimPrefix(c, "#"))
}

// Marshal serializes the document as indented JSON.
func (d *Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal palette")
	}
	return append(data, '\n'), nil
}

// Unmarshal parses and validates a JSON palette document.
func Unmarshal(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse palette")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ReadFile loads a palette document from a JSON file.
func ReadFile(path string) (*Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "palette file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read palette file")
	}
	return Unmarshal(data)
}

// WriteFile stores the document as a JSON file.
func (d *Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
