package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/swatchtower/swatchtower/pkg/errors"
	"github.com/swatchtower/swatchtower/pkg/palette"
)

// FileStore is a file-based registry for CLI usage.
// Each issued palette is one JSON file named after its ID.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based registry.
// If baseDir is empty, defaults to ~/.config/swatchtower/catalog/.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".config", "swatchtower", "catalog")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create catalog dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) docPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// Put records an issued palette.
func (s *FileStore) Put(ctx context.Context, doc *palette.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if doc.ID == "" {
		return errors.New(errors.ErrCodeInvalidPalette, "palette has no ID")
	}
	if err := errors.ValidatePath(doc.ID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return doc.WriteFile(s.docPath(doc.ID))
}

// Get retrieves an issued palette by ID.
func (s *FileStore) Get(ctx context.Context, id string) (*palette.Document, error) {
	if err := errors.ValidatePath(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := palette.ReadFile(s.docPath(id))
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return nil, errors.New(errors.ErrCodePaletteNotFound, "palette %s not issued", id)
	}
	return doc, err
}

// List returns all issued palettes, ordered by ID.
func (s *FileStore) List(ctx context.Context) ([]*palette.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names, err := filepath.Glob(filepath.Join(s.baseDir, "*.json"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list catalog dir")
	}
	sort.Strings(names)

	docs := make([]*palette.Document, 0, len(names))
	for _, name := range names {
		doc, err := palette.ReadFile(name)
		if err != nil {
			// Skip files that are not palette documents.
			continue
		}
		if doc.ID == "" {
			doc.ID = strings.TrimSuffix(filepath.Base(name), ".json")
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Delete removes a record.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidatePath(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.docPath(id))
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodePaletteNotFound, "palette %s not issued", id)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete palette %s", id)
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error {
	return nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
