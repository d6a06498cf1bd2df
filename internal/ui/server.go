// Package ui serves the chart widget as a live web page.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/samplechart/internal/ui/notifier"
	"github.com/leapstack-labs/samplechart/internal/ui/router"
	"github.com/leapstack-labs/samplechart/internal/widget"
)

// Server is the web UI server.
type Server struct {
	widget   *widget.Widget
	port     int
	watch    bool
	watchDir string
	dev      bool
	logger   *slog.Logger
	notifier *notifier.Notifier
}

// Config holds configuration for the UI server.
type Config struct {
	Widget *widget.Widget
	Port   int
	// Watch reloads the current dataset when a file in WatchDir changes.
	Watch    bool
	WatchDir string
	Dev      bool
	Logger   *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		widget:   cfg.Widget,
		port:     cfg.Port,
		watch:    cfg.Watch,
		watchDir: cfg.WatchDir,
		dev:      cfg.Dev,
		logger:   logger,
		notifier: notifier.New(),
	}
}

// Handler builds the router with middleware and all routes.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.widget, s.notifier, s.logger, s.IsDev()); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until the context is cancelled.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting UI server", "addr", "http://"+displayAddr(ln.Addr()))

	unsubscribe := s.widget.Subscribe(func(widget.State) { s.notifier.Broadcast() })
	defer unsubscribe()

	handler, err := s.Handler()
	if err != nil {
		_ = ln.Close()
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch && s.watchDir != "" {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev reports whether hot reload endpoints are enabled.
func (s *Server) IsDev() bool {
	return s.dev
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchFiles reloads the displayed dataset when its file changes.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(s.watchDir); err != nil {
		s.logger.Error("failed to watch datasets directory", "error", err)
		return nil
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			size := strings.TrimSuffix(filepath.Base(event.Name), filepath.Ext(event.Name))

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.reloadIfShown(ctx, size, event.Name)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// reloadIfShown resubmits when the changed file backs the displayed dataset.
func (s *Server) reloadIfShown(ctx context.Context, size, file string) {
	st := s.widget.State()
	if !st.HasData || st.SampleSize != size {
		return
	}

	s.logger.Debug("dataset file changed, reloading", "file", file)
	if err := s.widget.Submit(ctx); err != nil && !widget.IsStale(err) {
		s.logger.Error("reload failed", "error", err)
	}
}

func displayAddr(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok && (tcp.IP == nil || tcp.IP.IsUnspecified()) {
		return fmt.Sprintf("localhost:%d", tcp.Port)
	}
	return addr.String()
}
