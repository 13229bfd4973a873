package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kilianp07/rsudist/api/schedule"
	"github.com/kilianp07/rsudist/config"
	"github.com/kilianp07/rsudist/core/calculator"
	coremetrics "github.com/kilianp07/rsudist/core/metrics"
	"github.com/kilianp07/rsudist/infra/logger"
	"github.com/kilianp07/rsudist/infra/metrics"
)

// Service wires the calculator to its logging, metrics and HTTP surfaces.
type Service struct {
	Calculator  *calculator.Calculator
	cfg         *config.Config
	log         logger.Logger
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.LogEnabled {
		sinks = append(sinks, metrics.NewLogSink(logger.New("metrics")))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	calc, err := calculator.New(calculator.Config{
		Timezone:   cfg.Vesting.Timezone,
		Allocation: cfg.Vesting.Allocation,
	}, logger.New("calculator"), sink)
	if err != nil {
		return nil, fmt.Errorf("calculator: %w", err)
	}
	return &Service{
		Calculator:  calc,
		cfg:         cfg,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// Handler returns the HTTP routes served by Run.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/schedule", schedule.NewHandler(s.Calculator, s.cfg.Server.Token, s.cfg.Export.DateLayout, logger.New("api")))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Run serves the API and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort, s.log); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	srv := &http.Server{Addr: s.cfg.Server.Address, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api server shutdown: %v", err)
		}
	}()
	s.log.Infof("serving RSUDIST API on %s", s.cfg.Server.Address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
