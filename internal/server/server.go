// Package server exposes the Student Services form over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	studentservices "github.com/goliatone/go-studentservices"
	"github.com/goliatone/go-studentservices/internal/config"
	"github.com/goliatone/go-studentservices/internal/metrics"
	"github.com/goliatone/go-studentservices/pkg/form"
	"github.com/goliatone/go-studentservices/pkg/model"
	"github.com/goliatone/go-studentservices/pkg/orchestrator"
	"github.com/goliatone/go-studentservices/pkg/theming"
	"github.com/goliatone/go-studentservices/pkg/validation"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used by middleware and controllers.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithConfig applies server, form and metrics settings.
func WithConfig(cfg *config.Config) Option {
	return func(s *Server) {
		if cfg == nil {
			return
		}
		s.cfg = cfg.Server
		s.themeName = cfg.Form.Theme
		s.themeVariant = cfg.Form.Variant
		s.requireSubtypes = cfg.Form.RequireSubtypes
		s.metricsEnabled = cfg.Metrics.Enabled
	}
}

// WithHandler sets the terminal handler for accepted submissions.
func WithHandler(handler form.SubmitHandler) Option {
	return func(s *Server) {
		if handler != nil {
			s.handler = handler
		}
	}
}

// WithOrchestrator replaces the default orchestrator.
func WithOrchestrator(orch *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		if orch != nil {
			s.orch = orch
		}
	}
}

// WithRegistry sets where collectors are registered and gathered from.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// Server owns the gin engine and the prebuilt form model.
type Server struct {
	engine  *gin.Engine
	orch    *orchestrator.Orchestrator
	form    model.FormModel
	schema  *validation.Schema
	handler form.SubmitHandler
	metrics *metrics.Metrics
	logger  *zap.Logger
	openapi []byte

	registry        *prometheus.Registry
	themes          *theming.Selector
	cfg             config.ServerConfig
	themeName       string
	themeVariant    string
	requireSubtypes bool
	metricsEnabled  bool
}

// New builds the form model once and wires the routes.
func New(ctx context.Context, options ...Option) (*Server, error) {
	s := &Server{
		logger: zap.NewNop(),
		cfg: config.ServerConfig{
			Address:         ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		themeName:      theming.DefaultTheme,
		themeVariant:   theming.DefaultVariant,
		metricsEnabled: true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	s.themes = theming.Default()
	if s.orch == nil {
		s.orch = studentservices.NewOrchestrator(
			orchestrator.WithThemeSelector(s.themes, s.themeName, s.themeVariant),
		)
	}
	var schemaOpts []validation.Option
	if s.requireSubtypes {
		schemaOpts = append(schemaOpts, validation.WithConditionalSubtypes())
	}
	s.schema = validation.New(schemaOpts...)
	if s.handler == nil {
		s.handler = form.LogHandler(s.logger)
	}

	fm, err := s.orch.Build(ctx, studentservices.Request(studentservices.RenderOptions{}))
	if err != nil {
		return nil, fmt.Errorf("server: build form: %w", err)
	}
	s.form = fm

	s.openapi, err = studentservices.OpenAPIJSON(ctx)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	if s.metricsEnabled {
		if s.registry == nil {
			s.registry = prometheus.NewRegistry()
		}
		s.metrics = metrics.New(s.registry)
		s.handler = s.metrics.InstrumentHandler(s.handler)
	}

	s.engine = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(s.logger))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware())
	}
	r.Use(ErrorHandler(s.logger))

	r.GET("/", s.showForm)
	r.POST("/validate", s.validate)
	r.POST("/requests", s.submit)
	r.GET("/openapi.json", s.openAPI)
	r.GET("/healthz", s.health)
	r.StaticFS("/assets", http.FS(assetsFS()))
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Address, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("address", listener.Addr().String()))
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return <-errChan
}
