// Package colornames finds human-readable names for palette colors.
//
// Names come from a CSV list (name,hex per row, one header row) such as the
// meodai/color-names collection, roughly thirty thousand entries. Lookup is a
// brute-force nearest scan over the list; at this size that costs well under
// a millisecond per color, so no index is built.
//
// The table is explicit state: parse or load one, then query it. Source
// handles fetching the upstream CSV with an at-most-daily refresh.
package colornames

import (
	"encoding/csv"
	"io"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/swatchtower/swatchtower/pkg/errors"
	"github.com/swatchtower/swatchtower/pkg/palette"
)

type entry struct {
	name string
	col  colorful.Color
}

// Table maps colors to the nearest named color.
type Table struct {
	entries []entry
}

// ParseCSV reads a colornames list. The first row is a header; rows whose
// hex column does not parse are skipped.
func ParseCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse colornames csv")
	}

	var entries []entry
	for i, rec := range records {
		if i == 0 || len(rec) < 2 {
			continue
		}
		col, err := colorful.Hex(palette.NormalizeHex(rec[1]))
		if err != nil {
			continue
		}
		entries = append(entries, entry{name: rec[0], col: col})
	}
	if len(entries) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "colornames csv has no usable rows")
	}
	return &Table{entries: entries}, nil
}

// Len returns the number of named colors in the table.
func (t *Table) Len() int { return len(t.entries) }

// Nearest returns the name closest to the given hex color by RGB distance.
// Ties keep the earliest entry in the list.
func (t *Table) Nearest(hex string) (string, error) {
	col, err := colorful.Hex(palette.NormalizeHex(hex))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidColor, err, "parse color %q", hex)
	}

	best := 0
	bestDist := t.entries[0].col.DistanceRgb(col)
	for i := 1; i < len(t.entries); i++ {
		if d := t.entries[i].col.DistanceRgb(col); d < bestDist {
			best, bestDist = i, d
		}
	}
	return t.entries[best].name, nil
}

// NearestAll returns one name per color, in input order.
func (t *Table) NearestAll(hexes []string) ([]string, error) {
	names := make([]string, len(hexes))
	for i, hex := range hexes {
		name, err := t.Nearest(hex)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}
