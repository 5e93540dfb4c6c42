// Package app wires configuration into a running assignment service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/taskforge/allocd/api/assignments"
	"github.com/taskforge/allocd/config"
	"github.com/taskforge/allocd/core/assign"
	coremetrics "github.com/taskforge/allocd/core/metrics"
	corenotify "github.com/taskforge/allocd/core/notify"
	"github.com/taskforge/allocd/infra/logger"
	"github.com/taskforge/allocd/infra/metrics"
	"github.com/taskforge/allocd/infra/notify"
	"github.com/taskforge/allocd/infra/store/postgres"
)

// Service holds the wired engine and its HTTP front end.
type Service struct {
	Engine *assign.Engine

	cfg      *config.Config
	repo     *postgres.Repository
	closers  []func()
	notifier corenotify.Publisher
	log      logger.Logger
}

// New creates a Service from the configuration. A database DSN is required;
// metrics sinks and the MQTT notifier are optional.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required")
	}
	pool, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	repo := postgres.New(pool)

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics.Influx))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var notifier corenotify.Publisher
	if cfg.Notify.Enabled {
		pub, err := notify.NewMQTTPublisher(cfg.Notify)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("notifier: %w", err)
		}
		notifier = pub
	}

	engine, err := assign.NewEngine(repo, repo, repo, sink, notifier, logger.New("assign"))
	if err != nil {
		pool.Close()
		return nil, err
	}

	svc := &Service{
		Engine:   engine,
		cfg:      cfg,
		repo:     repo,
		notifier: notifier,
		log:      logg,
	}
	svc.closers = append(svc.closers, pool.Close)
	return svc, nil
}

// Run serves the API until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("POST /api/projects/{project_id}/assignments/auto",
		assignments.NewAutoAssignHandler(s.Engine, s.log))
	mux.Handle("GET /api/projects/{project_id}/assignments",
		assignments.NewListHandler(s.repo, s.log))

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.cfg.Server.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Infof("serving on %s", s.cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.notifier != nil {
		if err := s.notifier.Close(); err != nil {
			s.log.Errorf("notifier close: %v", err)
		}
	}
	for _, c := range s.closers {
		c()
	}
	return nil
}
