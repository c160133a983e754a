package health

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
)

type flakyDB struct{ down atomic.Bool }

func (f *flakyDB) Ping(context.Context) error {
	if f.down.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func dial(t *testing.T, c *Checker) healthpb.HealthClient {
	t.Helper()
	lis := bufconn.Listen(1 << 16)
	s := grpc.NewServer()
	c.Register(s)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func status(t *testing.T, hc healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := hc.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.Status
}

func TestCheckerFollowsDatabase(t *testing.T) {
	db := &flakyDB{}
	c := NewChecker(db, time.Second, zerolog.Nop())
	hc := dial(t, c)

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, hc, ""))

	assert.True(t, c.Check(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, hc, ""))

	resp, err := hc.Check(context.Background(), &healthpb.HealthCheckRequest{Service: Service})
	require.NoError(t, err)
	want := &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}
	assert.True(t, proto.Equal(want, resp), "got %v", resp)

	db.down.Store(true)
	assert.False(t, c.Check(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, hc, Service))
}

func TestRunStopsWithContext(t *testing.T) {
	c := NewChecker(&flakyDB{}, 10*time.Millisecond, zerolog.Nop())
	hc := dial(t, c)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return status(t, hc, "") == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	// Shutdown flips everything to NOT_SERVING.
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, hc, ""))
}
