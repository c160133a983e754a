// Package health publishes database reachability over the standard
// grpc.health.v1 service.
package health

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Service is the name clients can query besides the overall "" status.
const Service = "lightbnb.Store"

type Pinger interface {
	Ping(ctx context.Context) error
}

type Checker struct {
	srv      *health.Server
	db       Pinger
	interval time.Duration
	log      zerolog.Logger
}

// NewChecker starts out NOT_SERVING until the first successful ping.
func NewChecker(db Pinger, interval time.Duration, log zerolog.Logger) *Checker {
	srv := health.NewServer()
	srv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	srv.SetServingStatus(Service, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Checker{srv: srv, db: db, interval: interval, log: log}
}

func (c *Checker) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, c.srv)
}

// Check pings the database once and publishes the result.
func (c *Checker) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.interval)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := c.db.Ping(ctx); err != nil {
		c.log.Warn().Err(err).Msg("database ping failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	c.srv.SetServingStatus("", status)
	c.srv.SetServingStatus(Service, status)
	return status == healthpb.HealthCheckResponse_SERVING
}

// Run checks every interval until ctx is done, then marks the service as
// shutting down so watchers drain.
func (c *Checker) Run(ctx context.Context) {
	t := time.NewTicker(c.interval)
	defer t.Stop()

	c.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			c.srv.Shutdown()
			return
		case <-t.C:
			c.Check(ctx)
		}
	}
}
