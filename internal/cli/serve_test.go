package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/swatchtower/swatchtower/pkg/catalog"
	"github.com/swatchtower/swatchtower/pkg/palette"
	"github.com/swatchtower/swatchtower/pkg/pipeline"
)

func testServer(t *testing.T) *server {
	t.Helper()
	store, err := catalog.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	logger := log.New(io.Discard)
	return &server{
		store:  store,
		runner: pipeline.NewRunner(nil, nil, logger),
		logger: logger,
	}
}

func TestServer_Health(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestServer_IssueAndGet(t *testing.T) {
	s := testServer(t)
	router := s.routes()

	doc := palette.Document{
		Source: "dunes.jpg",
		Colors: []string{"#e0b040", "#203040"},
		Ratios: []float64{2, 1},
	}
	body, _ := json.Marshal(doc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/palettes", bytes.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("issue status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
	}

	var issued palette.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &issued); err != nil {
		t.Fatalf("decode issued: %v", err)
	}
	if issued.ID == "" {
		t.Fatal("issued palette should have an ID assigned")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/palettes/"+issued.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", rec.Code, http.StatusOK)
	}

	var got palette.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode get: %v", err)
	}
	if got.Source != doc.Source || len(got.Colors) != 2 {
		t.Errorf("got %+v, want source and colors preserved", got)
	}
}

func TestServer_GetMissing(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/palettes/no-such-id", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServer_IssueInvalid(t *testing.T) {
	s := testServer(t)

	doc := palette.Document{Source: "dunes.jpg", Colors: []string{"#nothex"}, Ratios: []float64{1}}
	body, _ := json.Marshal(doc)

	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/palettes", bytes.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body)
	}
}

func TestServer_Delete(t *testing.T) {
	s := testServer(t)
	router := s.routes()

	doc, err := palette.New("dunes.jpg", []string{"#e0b040"}, []float64{1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	body, _ := json.Marshal(doc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/palettes", bytes.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("issue status = %d, want %d", rec.Code, http.StatusCreated)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/palettes/"+doc.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/palettes/"+doc.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
