package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/swatchtower/swatchtower/pkg/catalog"
	"github.com/swatchtower/swatchtower/pkg/colornames"
	"github.com/swatchtower/swatchtower/pkg/config"
	"github.com/swatchtower/swatchtower/pkg/errors"
	"github.com/swatchtower/swatchtower/pkg/palette"
	"github.com/swatchtower/swatchtower/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr  string // listen address, overrides the config file
	names bool   // annotate rendered palettes with color names
}

// newServeCmd creates the serve command. It exposes the issued-palette
// catalog over HTTP and renders cards on demand.
func newServeCmd(flags *rootFlags) *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve issued palettes over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (defaults to the configured server address)")
	cmd.Flags().BoolVar(&opts.names, "names", false, "look up color names when rendering")

	return cmd
}

// server bundles the dependencies shared by the HTTP handlers.
type server struct {
	store  catalog.Store
	runner *pipeline.Runner
	names  *colornames.Table
	logger *log.Logger
}

// runServe wires the backends together and runs the HTTP server until the
// context is cancelled.
func runServe(ctx context.Context, flags *rootFlags, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	addr := opts.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	c, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer c.Close()

	store, err := openCatalog(ctx, cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	var table *colornames.Table
	if opts.names {
		table, err = loadColornames(ctx, cfg, c, logger)
		if err != nil {
			printWarning("color names unavailable: %v", err)
		}
	}

	s := &server{
		store:  store,
		runner: pipeline.NewRunner(c, nil, logger),
		names:  table,
		logger: logger,
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		printInfo("Serving palettes on %s", StyleHighlight.Render(addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		printInfo("Server stopped")
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.Wrap(errors.ErrCodeNetwork, err, "serve on %s", addr)
	}
}

// routes builds the HTTP router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/palettes", s.handleList)
	r.Post("/palettes", s.handleIssue)
	r.Get("/palettes/{id}", s.handleGet)
	r.Delete("/palettes/{id}", s.handleDelete)
	r.Get("/palettes/{id}/card.svg", s.handleCard(pipeline.FormatSVG, "image/svg+xml"))
	r.Get("/palettes/{id}/card.png", s.handleCard(pipeline.FormatPNG, "image/png"))
	return r
}

// logRequests logs each request with method, path, status, and duration.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *server) handleIssue(w http.ResponseWriter, r *http.Request) {
	var doc palette.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode palette document"))
		return
	}
	if doc.ID == "" {
		issued, err := palette.New(doc.Source, doc.Colors, doc.Ratios)
		if err != nil {
			s.writeError(w, err)
			return
		}
		issued.Center = doc.Center
		issued.Comment = doc.Comment
		issued.Names = doc.Names
		doc = *issued
	}
	if err := s.store.Put(r.Context(), &doc); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &doc)
}

func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCard renders the palette card in the given format. The query
// parameters items, spread, and refresh tune the fit.
func (s *server) handleCard(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			s.writeError(w, err)
			return
		}

		opts := pipeline.Options{
			Doc:     doc,
			Formats: []string{format},
			Spread:  r.URL.Query().Get("spread") == "true",
			Refresh: r.URL.Query().Get("refresh") == "true",
			Names:   s.names,
		}
		if items := r.URL.Query().Get("items"); items != "" {
			n, err := strconv.Atoi(items)
			if err != nil {
				s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid items %q", items))
				return
			}
			opts.Items = n
		}

		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
	}
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error code to an HTTP status and writes a JSON body.
func (s *server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodePaletteNotFound, errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPalette, errors.ErrCodeInvalidColor,
		errors.ErrCodeInvalidFormat, errors.ErrCodeUnsupported,
		errors.ErrCodeInfeasible, errors.ErrCodeOverconstrained:
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
