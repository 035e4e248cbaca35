package catalog

import (
	"context"
	"testing"

	"github.com/swatchtower/swatchtower/pkg/errors"
	"github.com/swatchtower/swatchtower/pkg/palette"
)

func issuedDoc(id string) *palette.Document {
	return &palette.Document{
		ID:     id,
		Source: id + ".jpg",
		Colors: []string{"#102030", "#405060"},
		Ratios: []float64{2, 1},
	}
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return s
}

func TestFileStore_PutGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	doc := issuedDoc("alpha")
	if err := s.Put(ctx, doc); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, "alpha")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != "alpha" || got.Source != "alpha.jpg" {
		t.Errorf("Get() = %+v", got)
	}

	// Put with the same ID replaces the record.
	doc.Comment = "reissued"
	if err := s.Put(ctx, doc); err != nil {
		t.Fatalf("Put() replace error = %v", err)
	}
	got, err = s.Get(ctx, "alpha")
	if err != nil {
		t.Fatalf("Get() after replace error = %v", err)
	}
	if got.Comment != "reissued" {
		t.Errorf("Comment = %q, want %q", got.Comment, "reissued")
	}
}

func TestFileStore_GetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, errors.ErrCodePaletteNotFound) {
		t.Errorf("error code = %v, want PALETTE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestFileStore_PutRequiresID(t *testing.T) {
	s := newTestStore(t)
	doc := issuedDoc("")
	err := s.Put(context.Background(), doc)
	if !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("error code = %v, want INVALID_PALETTE", errors.GetCode(err))
	}
}

func TestFileStore_List(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, id := range []string{"charlie", "alpha", "bravo"} {
		if err := s.Put(ctx, issuedDoc(id)); err != nil {
			t.Fatalf("Put(%s) error = %v", id, err)
		}
	}

	docs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("List() returned %d docs, want 3", len(docs))
	}
	for i, want := range []string{"alpha", "bravo", "charlie"} {
		if docs[i].ID != want {
			t.Errorf("docs[%d].ID = %q, want %q", i, docs[i].ID, want)
		}
	}
}

func TestFileStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Put(ctx, issuedDoc("alpha")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Delete(ctx, "alpha"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "alpha"); !errors.Is(err, errors.ErrCodePaletteNotFound) {
		t.Errorf("second Delete() code = %v, want PALETTE_NOT_FOUND", errors.GetCode(err))
	}
}
