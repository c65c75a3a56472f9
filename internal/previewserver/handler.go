package previewserver

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"vidquiz/internal/export"
	"vidquiz/internal/logger"
)

var contentTypes = map[string]string{
	export.IndexFile:     "text/html; charset=utf-8",
	export.QuestionsFile: "text/javascript; charset=utf-8",
}

type handler struct {
	cfg Config
	log *logger.Logger
}

// NewHandler builds the router serving index.html, questions.js and the
// video of a bundle export.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Video == nil {
		return nil, errors.New("previewserver: video is required")
	}
	if cfg.Questions == nil {
		return nil, errors.New("previewserver: question source is required")
	}
	h := &handler{cfg: cfg, log: logger.OrNop(cfg.Logger)}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, requestLogger(h.log))
	r.Get("/", h.serveArtifact(export.IndexFile))
	r.Get("/"+export.IndexFile, h.serveArtifact(export.IndexFile))
	r.Get("/"+export.QuestionsFile, h.serveArtifact(export.QuestionsFile))
	r.Get("/"+cfg.Video.BundleName(), h.serveVideo)
	return r, nil
}

// serveArtifact renders one generated bundle file with the current questions.
func (h *handler) serveArtifact(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := h.cfg.Questions()
		if err != nil {
			h.fail(w, r, "load questions", err)
			return
		}
		artifact, err := export.Bundle(export.ModeDir, h.cfg.Video, questions, h.cfg.Options)
		if err != nil {
			h.fail(w, r, "build preview", err)
			return
		}
		for _, file := range artifact.Files {
			if file.Name != name {
				continue
			}
			var buf bytes.Buffer
			if err := file.Write(r.Context(), &buf); err != nil {
				h.fail(w, r, "render "+name, err)
				return
			}
			w.Header().Set("Content-Type", contentTypes[name])
			w.Header().Set("Cache-Control", "no-store")
			_, _ = w.Write(buf.Bytes())
			return
		}
		http.NotFound(w, r)
	}
}

// serveVideo streams the video with range support.
func (h *handler) serveVideo(w http.ResponseWriter, r *http.Request) {
	reader, err := h.cfg.Video.Open()
	if err != nil {
		h.fail(w, r, "open video", err)
		return
	}
	defer reader.Close()
	w.Header().Set("Content-Type", h.cfg.Video.MIME)
	http.ServeContent(w, r, h.cfg.Video.BundleName(), time.Time{}, reader)
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	h.log.Error("preview request failed", "action", action, "path", r.URL.Path, "error", err)
	http.Error(w, action+": "+err.Error(), http.StatusInternalServerError)
}

// requestLogger records one debug line per request.
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("preview request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
