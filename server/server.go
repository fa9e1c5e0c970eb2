// Package server exposes the print surfaces over HTTP: the scrollable HTML
// preview, the PDF download, a server-sent event stream for layout changes
// and the layout activation endpoint.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/menuforge/menuforge/compose"
	"github.com/menuforge/menuforge/renderer"
	"github.com/menuforge/menuforge/store"
)

// Server wires the pipeline and the renderers to the HTTP routes.
type Server struct {
	pipeline *compose.Pipeline
	store    *store.Store
	preview  renderer.Renderer
	pdf      renderer.Renderer
	log      *log.Logger
}

// Options bundles the server's collaborators.
type Options struct {
	Pipeline *compose.Pipeline
	Store    *store.Store
	Preview  renderer.Renderer
	PDF      renderer.Renderer
	Logger   *log.Logger
}

func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Server{
		pipeline: opts.Pipeline,
		store:    opts.Store,
		preview:  opts.Preview,
		pdf:      opts.PDF,
		log:      opts.Logger,
	}
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/preview", http.StatusFound)
	})
	r.Get("/preview", s.handlePreview)
	r.Get("/menu.pdf", s.handlePDF)
	r.Get("/pages.json", s.handlePagesJSON)
	r.Get("/events", s.handleEvents)
	r.Post("/layouts/{id}/activate", s.handleActivate)
	return r
}

// Serve runs the HTTP server until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, req *http.Request) {
	doc, err := s.pipeline.BuildDocument(req.Context())
	if errors.Is(err, store.ErrNoActiveLayout) {
		s.writePlaceholder(w, "No active layout",
			"Create a print layout and activate it to see the preview.")
		return
	}
	if err != nil {
		s.writeError(w, req, "build preview", err)
		return
	}
	html, err := s.preview.Render(doc)
	if err != nil {
		s.writeError(w, req, "render preview", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

func (s *Server) handlePDF(w http.ResponseWriter, req *http.Request) {
	doc, err := s.pipeline.BuildDocument(req.Context())
	if errors.Is(err, store.ErrNoActiveLayout) {
		http.Error(w, "no active print layout", http.StatusNotFound)
		return
	}
	if err != nil {
		s.writeError(w, req, "build pdf", err)
		return
	}
	pdf, err := s.pdf.Render(doc)
	if err != nil {
		s.writeError(w, req, "render pdf", err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="menu.pdf"`)
	w.Write(pdf)
}

func (s *Server) handlePagesJSON(w http.ResponseWriter, req *http.Request) {
	doc, err := s.pipeline.BuildDocument(req.Context())
	if errors.Is(err, store.ErrNoActiveLayout) {
		http.Error(w, "no active print layout", http.StatusNotFound)
		return
	}
	if err != nil {
		s.writeError(w, req, "build document", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(doc)
}

// handleEvents streams layout-change notifications as server-sent events.
// Open previews reload on "layoutUpdated".
func (s *Server) handleEvents(w http.ResponseWriter, req *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	events, cancel := s.store.Broker().Subscribe()
	defer cancel()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-req.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case ev, open := <-events:
			if !open {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: layoutUpdated\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (s *Server) handleActivate(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	if id == "" {
		http.Error(w, "missing layout id", http.StatusBadRequest)
		return
	}
	if err := s.store.ActivateLayout(req.Context(), id); err != nil {
		s.log.Error("activate layout", "id", id, "err", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeError(w http.ResponseWriter, req *http.Request, action string, err error) {
	s.log.Error(action, "path", req.URL.Path, "err", err)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprintf(w, errorPage, action)
}

func (s *Server) writePlaceholder(w http.ResponseWriter, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, placeholderPage, title, title, body)
}

const placeholderPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>%s</title></head>
<body style="font-family: sans-serif; margin: 4rem auto; max-width: 36rem;">
<h1>%s</h1><p>%s</p>
</body></html>
`

const errorPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Error</title></head>
<body style="font-family: sans-serif; margin: 4rem auto; max-width: 36rem;">
<h1>Something went wrong</h1><p>The server could not %s. Check the logs for details.</p>
</body></html>
`
