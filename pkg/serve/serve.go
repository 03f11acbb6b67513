// Package serve publishes a local story site over HTTP so the reader (or a
// browser) can be pointed at it while writing.
package serve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"tableflip.dev/storyreader/pkg/catalog"
	"tableflip.dev/storyreader/pkg/content"
	"tableflip.dev/storyreader/pkg/site"
)

// Config holds server configuration.
type Config struct {
	Addr        string
	CatalogPath string
}

// Server serves the files of a site and a small JSON API over its catalog.
type Server struct {
	cfg     Config
	src     site.Source
	fetcher *content.Fetcher
	log     *zap.SugaredLogger
	router  chi.Router

	httpServer *http.Server
}

// New creates a server over src.
func New(cfg Config, src site.Source, fetcher *content.Fetcher, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = catalog.DefaultPath
	}
	s := &Server{cfg: cfg, src: src, fetcher: fetcher, log: log}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/stories", func(r chi.Router) {
		r.Get("/", s.listStories)
		r.Get("/{id}", s.getStory)
	})

	r.Get("/*", s.serveFile)
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on the configured address until Shutdown.
func (s *Server) Start() error {
	s.log.Infow("serving site", "addr", s.cfg.Addr, "source", s.src.String())
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+chi.URLParam(r, "*")), "/")
	if name == "" {
		name = "index.html"
	}
	rc, err := s.src.Open(r.Context(), name)
	if err != nil {
		status := site.StatusOf(err)
		if status == 0 {
			status = http.StatusBadGateway
		}
		http.Error(w, http.StatusText(status), status)
		return
	}
	defer rc.Close()

	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if _, err := io.Copy(w, rc); err != nil {
		s.log.Warnw("write response", "path", name, "error", err)
	}
}

type storyResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
	HTML  string `json:"html,omitempty"`
}

func (s *Server) loadCatalog(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, bool) {
	cat, err := catalog.Load(r.Context(), s.src, s.cfg.CatalogPath)
	if err != nil {
		s.log.Errorw("load catalog", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return cat, true
}

func (s *Server) listStories(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.loadCatalog(w, r)
	if !ok {
		return
	}
	out := make([]storyResponse, 0, cat.Len())
	for _, st := range cat.Stories() {
		out = append(out, storyResponse{ID: st.ID, Title: st.Title, Path: st.ContentPath()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getStory(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.loadCatalog(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	st, found := cat.Lookup(id)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Errorf("no story %q", id))
		return
	}
	html, err := s.fetcher.Fetch(r.Context(), st.ContentPath())
	if err != nil {
		status := http.StatusBadGateway
		var fe *content.FetchError
		if errors.As(err, &fe) && fe.Status != 0 {
			status = fe.Status
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, storyResponse{ID: st.ID, Title: st.Title, Path: st.ContentPath(), HTML: html})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
