package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Its-donkey/landing/internal/config"
	"github.com/Its-donkey/landing/logging"
)

// Server serves the static page directory.
type Server struct {
	root     string
	index    string
	settings Settings
	logger   *logging.Logger
}

// NewServer validates the static directory named by cfg.
func NewServer(cfg config.Config, logger *logging.Logger) (*Server, error) {
	root, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve static directory: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("static directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("static directory %s is not a directory", root)
	}
	if logger == nil {
		logger = logging.New("site", logging.INFO)
	}
	mime.AddExtensionType(".wasm", "application/wasm")
	return &Server{
		root:  root,
		index: cfg.Index,
		settings: Settings{
			FormEndpoint:     cfg.FormEndpoint,
			CarouselInterval: cfg.CarouselInterval(),
			RelayTimeout:     cfg.RelayTimeout(),
		},
		logger: logger,
	}, nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logging.NewHTTPLogger(s.logger).Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/", s.handleIndex)
	r.Get("/"+s.index, s.handleIndex)
	r.Handle("/*", s.staticHandler())
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.root, s.index)
	f, err := os.Open(path)
	if err != nil {
		s.logger.Error("site", "open index", err, map[string]any{"path": path})
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	body, err := Inject(f, s.settings)
	if err != nil {
		s.logger.Error("site", "inject settings", err, map[string]any{"path": path})
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, s.index, time.Time{}, bytes.NewReader(body))
}

func (s *Server) staticHandler() http.Handler {
	fileServer := http.FileServer(http.Dir(s.root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if filepath.Ext(r.URL.Path) == ".wasm" {
			w.Header().Set("Content-Type", "application/wasm")
		}
		fileServer.ServeHTTP(w, r)
	})
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("site", "serving", map[string]any{"addr": addr, "root": s.root})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
