// Package previewserver serves a bundle export over HTTP so the generated
// player can be tried in a browser without writing files.
package previewserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"vidquiz/internal/export"
	"vidquiz/internal/logger"
	"vidquiz/internal/media"
	"vidquiz/internal/question"
)

// QuestionSource returns the current question set. It is called for every
// page and script request so edits to a question file show up on reload.
type QuestionSource func() ([]question.Question, error)

// Config captures the settings for serving a preview.
type Config struct {
	Addr      string
	Video     *media.Source
	Questions QuestionSource
	Options   export.Options
	Logger    *logger.Logger
	// OnListen is called with the bound address once the listener is open.
	OnListen func(addr net.Addr)
}

// Serve starts an HTTP server for the preview and blocks until ctx is done
// or the server fails.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("previewserver: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("previewserver: addr is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return err
	}
	log := logger.OrNop(cfg.Logger)

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("previewserver: listen: %w", err)
	}
	log.Info("preview server listening", "addr", listener.Addr().String(), "video", cfg.Video.Name)
	if cfg.OnListen != nil {
		cfg.OnListen(listener.Addr())
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
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
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		log.Info("preview server stopped")
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}
