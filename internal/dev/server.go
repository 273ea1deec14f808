package dev

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/slab-dev/slab/internal/config"
	"github.com/slab-dev/slab/pkg/codegen"
)

// ServerOptions configures the development server.
type ServerOptions struct {
	// Config is the project configuration.
	Config *config.Config

	// OnBuildStart is called when a build starts.
	OnBuildStart func()

	// OnBuildComplete is called when a build completes.
	OnBuildComplete func(result BuildResult)

	// OnReload is called when browsers are reloaded.
	OnReload func(clients int)
}

// BuildResult describes one compile pass over the template directory.
type BuildResult struct {
	Success   bool
	Templates int
	Duration  time.Duration
	Err       error
}

// Server watches the template directory and recompiles on change, pushing
// hot reload events to connected browsers.
type Server struct {
	config       *config.Config
	options      ServerOptions
	generator    *codegen.Generator
	watcher      *Watcher
	reloadServer *ReloadServer
	changeCh     chan Change
	httpServer   *http.Server
	mu           sync.Mutex
	running      bool
	hotReload    bool
}

// NewServer creates a new development server.
func NewServer(options ServerOptions) *Server {
	cfg := options.Config
	hotReload := cfg.Dev.HotReload

	generator := codegen.NewGenerator(codegen.Options{
		Package:          cfg.Paths.Package,
		Format:           cfg.ASTFormat(),
		EscapeHTML:       cfg.EscapeHTML(),
		EscapeAttributes: cfg.EscapeAttributes(),
	})

	watchPaths := []string{cfg.TemplatesPath()}
	for _, extra := range cfg.Dev.Watch {
		if extra != cfg.Paths.Templates {
			watchPaths = append(watchPaths, resolvePath(cfg.Dir(), extra))
		}
	}

	watcher := NewWatcher(WatcherConfig{
		Paths:    watchPaths,
		Ignore:   append(DefaultIgnore, cfg.Dev.Ignore...),
		Debounce: 100 * time.Millisecond,
	})

	var reloadServer *ReloadServer
	if hotReload {
		reloadServer = NewReloadServer()
	}

	return &Server{
		config:       cfg,
		options:      options,
		generator:    generator,
		watcher:      watcher,
		reloadServer: reloadServer,
		hotReload:    hotReload,
	}
}

// Start starts the development server and blocks until ctx is done or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	// Initial build
	s.log("Compiling templates...")
	result := s.build(ctx)
	if !result.Success {
		s.logError("Compile failed: %v", result.Err)
		s.notifyError(result.Err.Error())
	} else {
		s.log("Compiled %d templates in %s", result.Templates, result.Duration.Round(time.Millisecond))
	}

	// Set up watcher callback
	s.changeCh = make(chan Change, 64)
	s.watcher.OnChange(func(change Change) {
		select {
		case s.changeCh <- change:
		default:
		}
	})

	go s.watcher.Start(ctx)
	go s.processChanges(ctx)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if s.reloadEnabled() {
		r.Get("/_slab/reload", s.reloadServer.HandleWebSocket)
	}
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/", s.handleIndex)
	r.Handle("/gen/*", http.StripPrefix("/gen/", http.FileServer(http.Dir(s.config.OutputPath()))))

	s.httpServer = &http.Server{
		Addr:    s.config.DevAddress(),
		Handler: r,
	}

	s.log("Server running at http://%s", s.config.DevAddress())

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return nil
	case err := <-errCh:
		s.Stop()
		return err
	}
}

// Stop stops the development server.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.running = false
	s.watcher.Stop()
	if s.reloadServer != nil {
		s.reloadServer.Close()
	}

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}
}

// build runs one compile pass over the template directory.
func (s *Server) build(ctx context.Context) BuildResult {
	if s.options.OnBuildStart != nil {
		s.options.OnBuildStart()
	}

	start := time.Now()
	count, err := s.generator.CompileDir(ctx, s.config.TemplatesPath(), s.config.OutputPath())
	result := BuildResult{
		Success:   err == nil,
		Templates: count,
		Duration:  time.Since(start),
		Err:       err,
	}

	buildDuration.Observe(result.Duration.Seconds())
	if result.Success {
		buildsTotal.WithLabelValues("success").Inc()
		templatesCompiled.Add(float64(count))
	} else {
		buildsTotal.WithLabelValues("error").Inc()
	}

	if s.options.OnBuildComplete != nil {
		s.options.OnBuildComplete(result)
	}

	return result
}

// processChanges serializes file change handling and coalesces bursts.
func (s *Server) processChanges(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case change := <-s.changeCh:
			changes := []Change{change}
			draining := true
			for draining {
				select {
				case next := <-s.changeCh:
					changes = append(changes, next)
				default:
					draining = false
				}
			}
			s.handleChanges(ctx, changes)
		}
	}
}

// handleChanges handles a batch of file changes.
func (s *Server) handleChanges(ctx context.Context, changes []Change) {
	if len(changes) == 0 {
		return
	}

	for _, change := range changes {
		s.log("Changed: %s", change.Path)
	}

	result := s.build(ctx)
	if !result.Success {
		s.logError("Compile failed: %v", result.Err)
		s.notifyError(result.Err.Error())
		return
	}

	s.log("Compiled %d templates in %s", result.Templates, result.Duration.Round(time.Millisecond))
	s.clearReloadError()
	s.notifyReload()
}

// handleIndex lists the generated files in the output directory.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	entries, _ := os.ReadDir(s.config.OutputPath())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head><title>slab dev</title></head>\n<body>\n")
	fmt.Fprintf(w, "<h1>%s</h1>\n<ul>\n", s.config.Name)
	for _, e := range entries {
		fmt.Fprintf(w, "<li><a href=\"/gen/%s\">%s</a></li>\n", e.Name(), e.Name())
	}
	fmt.Fprintf(w, "</ul>\n")
	if s.reloadEnabled() {
		fmt.Fprint(w, ReloadClientScript)
	}
	fmt.Fprintf(w, "</body>\n</html>\n")
}

func (s *Server) reloadEnabled() bool {
	return s.hotReload && s.reloadServer != nil
}

func (s *Server) notifyReload() {
	if !s.reloadEnabled() {
		return
	}

	s.reloadServer.NotifyReload()
	if s.options.OnReload != nil {
		s.options.OnReload(s.reloadServer.ClientCount())
	}
	s.log("Reloaded %d browsers", s.reloadServer.ClientCount())
}

func (s *Server) notifyError(errMsg string) {
	if !s.reloadEnabled() {
		return
	}
	s.reloadServer.NotifyError(errMsg)
}

func (s *Server) clearReloadError() {
	if !s.reloadEnabled() {
		return
	}
	s.reloadServer.ClearError()
}

// log logs a timestamped message.
func (s *Server) log(format string, args ...any) {
	timestamp := time.Now().Format("15:04:05")
	fmt.Printf("[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
}

// logError logs an error message.
func (s *Server) logError(format string, args ...any) {
	timestamp := time.Now().Format("15:04:05")
	fmt.Fprintf(os.Stderr, "[%s] %s%s%s\n", timestamp, "\033[31m", fmt.Sprintf(format, args...), "\033[0m")
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
