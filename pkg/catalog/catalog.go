// Package catalog keeps the registry of issued palettes.
//
// An issued palette is a document that has been rendered and published; the
// catalog is the record of what went out, keyed by document ID. Two backends
// are provided: a file store for the CLI (one JSON file per palette) and a
// Mongo store for the preview server, where several instances share one
// registry.
package catalog

import (
	"context"

	"github.com/swatchtower/swatchtower/pkg/palette"
)

// Store is the issued-palette registry.
type Store interface {
	// Put records an issued palette, replacing any previous record with
	// the same ID.
	Put(ctx context.Context, doc *palette.Document) error

	// Get retrieves an issued palette by ID.
	// Returns ErrCodePaletteNotFound when no record exists.
	Get(ctx context.Context, id string) (*palette.Document, error)

	// List returns all issued palettes, ordered by ID.
	List(ctx context.Context) ([]*palette.Document, error)

	// Delete removes a record.
	// Returns ErrCodePaletteNotFound when no record exists.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
