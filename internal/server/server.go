package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/joeblew999/plat-linkstation/internal/api"
	"github.com/joeblew999/plat-linkstation/internal/apperr"
	"github.com/joeblew999/plat-linkstation/internal/config"
	"github.com/joeblew999/plat-linkstation/internal/logger"
	"github.com/joeblew999/plat-linkstation/internal/metrics"
	"github.com/joeblew999/plat-linkstation/internal/service"
)

// Config holds the server configuration.
type Config struct {
	Addr         string // listen address, host:port
	BasePath     string // e.g. "/api/v1"
	CORSOrigin   string
	StationsFile string // static locations for the legacy endpoint; empty disables it
	Metrics      bool
	// ShutdownTimeout bounds graceful shutdown in Run.
	ShutdownTimeout time.Duration
	// Registry receives the metrics. Nil uses the Prometheus defaults.
	Registry *prometheus.Registry
	Logger   logger.Logger
}

// FromConfig maps the loaded service configuration onto a server Config.
func FromConfig(c *config.Config) Config {
	return Config{
		Addr:            c.Server.Addr(),
		BasePath:        c.Server.BasePath,
		CORSOrigin:      c.Server.CORSOrigin,
		StationsFile:    c.Stations.File,
		Metrics:         !c.Metrics.Disabled,
		ShutdownTimeout: time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second,
	}
}

// Server is the link station HTTP server.
type Server struct {
	config  Config
	mux     *http.ServeMux
	handler http.Handler
	humaAPI huma.API
	finder  *service.FinderService
	log     logger.Logger
}

var errorEnvelope sync.Once

// useErrorEnvelope makes huma report its own errors (validation, body
// parsing) with the service error envelope.
func useErrorEnvelope() {
	errorEnvelope.Do(func() {
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			return apperr.FromStatus(status, msg, errs...)
		}
	})
}

// New creates a new link station server.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = logger.NopLogger{}
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
	}
	useErrorEnvelope()

	mux := http.NewServeMux()

	humaConfig := huma.DefaultConfig("plat-linkstation API", api.Version)
	humaConfig.Info.Description = "Finds the link station offering a device the most power."
	humaConfig.Servers = []*huma.Server{
		{URL: "http://" + cfg.Addr, Description: "Local server"},
	}
	// Disable $schema property in responses (cleaner JSON)
	humaConfig.CreateHooks = []func(huma.Config) huma.Config{}
	humaConfig.Transformers = append(humaConfig.Transformers, api.LinkTransformer(cfg.BasePath))

	humaAPI := humago.New(mux, humaConfig)

	var rec metrics.Recorder = metrics.NopRecorder{}
	if cfg.Metrics {
		var reg prometheus.Registerer
		if cfg.Registry != nil {
			reg = cfg.Registry
		}
		prom, err := metrics.NewPromRecorder(reg)
		if err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		rec = prom
	}

	stations := service.NewStationService(cfg.StationsFile)
	if info := stations.Info(); info.Error != "" {
		cfg.Logger.Warnf("static link stations unavailable: %s", info.Error)
	} else if stations.Configured() {
		cfg.Logger.Infof("loaded %d static link stations from %s", info.Count, info.File)
	}

	s := &Server{
		config:  cfg,
		mux:     mux,
		humaAPI: humaAPI,
		finder:  service.NewFinderService(stations, cfg.Logger, rec),
		log:     cfg.Logger,
	}
	s.routes()
	s.handler = logger.AccessMiddleware(cfg.Logger)(s.cors(mux))
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// OpenAPI returns the OpenAPI document of the huma operations.
func (s *Server) OpenAPI() *huma.OpenAPI {
	return s.humaAPI.OpenAPI()
}

// OpenAPIYAML renders the OpenAPI document as YAML, as served on
// /openapi.yaml.
func (s *Server) OpenAPIYAML() ([]byte, error) {
	return s.OpenAPI().YAML()
}

// Run serves on the configured address until ctx is canceled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("server shutdown: %v", err)
		}
	}()
	s.log.Infof("listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() {
	api.RegisterRoutes(s.humaAPI, s.config.BasePath, s.finder)
	api.NewInfoHandler(s.config.BasePath, s.finder.Stations(), s.config.Metrics).RegisterRoutes(s.humaAPI)

	if s.config.Metrics {
		var g prometheus.Gatherer
		if s.config.Registry != nil {
			g = s.config.Registry
		}
		s.mux.Handle("GET /metrics", metrics.Handler(g))
	}

	s.mux.HandleFunc("/", s.handleNotFound)
}

// cors applies the CORS headers to every response and answers preflight
// requests directly.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.config.CORSOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization")

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if err := s.humaAPI.Marshal(w, "application/json", struct{}{}); err != nil {
				s.log.Errorf("preflight: %v", err)
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleNotFound answers unrouted requests with the error envelope.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	op := &huma.Operation{Method: r.Method, Path: r.URL.Path}
	nf := apperr.NotFoundError()
	_ = huma.WriteErr(s.humaAPI, humago.NewContext(op, r, w), nf.StatusCode, nf.Message)
}
