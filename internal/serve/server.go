// Package serve is the HTTP front of the site: locale routing, content pages
// from the index, SEO files and the lead and consent endpoints.
package serve

import (
	"context"
	"errors"
	"fmt"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
	"io/fs"
	"net/http"
	"os"
	"pdsite/internal/domain/config"
	"pdsite/internal/index"
	"pdsite/internal/leads"
	"pdsite/internal/logging"
	"pdsite/internal/render"
	"sync"
	"time"
)

type Server struct {
	cfg     config.Config
	log     logging.Logger
	logs    *logging.Provider
	content fs.FS
	tpl     render.Renderer
	now     func() time.Time

	leads   *leads.Service
	limiter *leads.Limiter
	store   *leads.Store

	mu  sync.RWMutex
	idx *index.Index

	watcher   *fsnotify.Watcher
	watchOnce sync.Once
}

type Option func(*Server)

// WithContentFS serves content from fsys instead of content.root.
func WithContentFS(fsys fs.FS) Option {
	return func(s *Server) { s.content = fsys }
}

func WithRenderer(r render.Renderer) Option {
	return func(s *Server) { s.tpl = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLeadSender replaces the webhook built from leads.webhook_url.
func WithLeadSender(sender leads.Sender) Option {
	return func(s *Server) {
		s.leads = leads.NewService(s.logs.Get(logging.ModuleLeads),
			leads.WithStore(s.store),
			leads.WithSender(sender),
			leads.WithClock(s.clock),
		)
	}
}

// New wires the server and warms the first index. Index warnings are logged,
// not fatal; a missing content directory leaves the affected routes on their
// placeholders.
func New(cfg config.Config, logs *logging.Provider, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		logs:    logs,
		log:     logs.Get(logging.ModuleServe),
		now:     time.Now,
		limiter: leads.NewLimiter(cfg.Leads.RateLimit.MaxRequests, cfg.Leads.RateLimit.Window),
	}

	if cfg.Leads.DBPath != "" {
		st, err := leads.Open(leads.OpenOptions{Path: cfg.Leads.DBPath})
		if err != nil {
			return nil, fmt.Errorf("serve: failed to open lead store: %w", err)
		}
		s.store = st
	}

	svcOpts := []leads.Option{leads.WithStore(s.store), leads.WithClock(s.clock)}
	if cfg.Leads.WebhookURL != "" {
		svcOpts = append(svcOpts, leads.WithSender(leads.NewWebhook(cfg.Leads.WebhookURL, cfg.Leads.WebhookTimeout)))
	}
	s.leads = leads.NewService(logs.Get(logging.ModuleLeads), svcOpts...)

	for _, opt := range opts {
		opt(s)
	}

	if s.content == nil {
		s.content = os.DirFS(cfg.Content.Root)
	}
	if s.tpl == nil {
		tpl, err := render.NewTemplateRenderer(cfg.Content.ThemeDir)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("serve: failed to create template renderer: %w", err)
		}
		s.tpl = tpl
	}

	if _, err := s.rebuild(); err != nil {
		s.log.Warn("content index incomplete", "err", err)
	}
	return s, nil
}

// clock defers to s.now so WithClock applies regardless of option order.
func (s *Server) clock() time.Time {
	return s.now()
}

func (s *Server) Close() error {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// Index returns the index currently being served.
func (s *Server) Index() *index.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx
}

// rebuild warms a fresh index and swaps it in. The previous instance is left
// untouched for requests still holding it.
func (s *Server) rebuild() (*index.Index, error) {
	idx := index.New(s.content, s.logs.Get(logging.ModuleIndex))
	err := idx.Warm()

	s.mu.Lock()
	s.idx = idx
	s.mu.Unlock()
	return idx, err
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// With server.dev_reload set, content changes rebuild the index.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	if s.cfg.Server.DevReload {
		if err := s.startWatch(); err != nil {
			return fmt.Errorf("serve: watch: %w", err)
		}
		g.Go(func() error {
			s.watchLoop(ctx)
			return nil
		})
	}

	g.Go(func() error {
		s.log.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
