package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/config"
	"github.com/KevinKickass/SunSpecBridge/internal/devices"
	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
	"github.com/KevinKickass/SunSpecBridge/internal/sunspec/sunspectest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{GRPCPort: 0, HTTPPort: 0, ShutdownTimeout: 5 * time.Second},
		AXS:    config.AXSConfig{Host: "axs.local", Port: 502, Timeout: time.Second, BaseAddress: 40001},
		Poll:   config.PollConfig{ShortInterval: 50 * time.Millisecond, LongInterval: time.Second},
	}
}

func newTestLifecycle(t *testing.T, dial devices.Dialer) *LifecycleManager {
	t.Helper()
	lm, err := NewLifecycleManager(nil, testConfig(), zap.NewNop(), devices.WithDialer(dial))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		lm.Shutdown(ctx)
	})
	return lm
}

func axsHealth(t *testing.T, lm *LifecycleManager) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := lm.Health().Check(context.Background(), &healthpb.HealthCheckRequest{Service: AXSHealthService})
	require.NoError(t, err)
	return resp.Status
}

func TestStartWithReachableAXS(t *testing.T) {
	conn := sunspectest.NewFXSplitConn()
	lm := newTestLifecycle(t, func() (sunspec.Conn, error) { return conn, nil })

	require.NoError(t, lm.Start())
	assert.Equal(t, StateRunning, lm.State())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, axsHealth(t, lm))

	status := lm.GetCurrentStatus()
	assert.Equal(t, "RUNNING", status.State)
	assert.Equal(t, 5, status.NodeCount)
	assert.True(t, status.Polling)
	assert.Equal(t, "abcd1234efgh56", status.Session.SerialID)

	assert.Eventually(t, func() bool {
		_, ok := lm.Poller().Last()
		return ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHealthOverGRPC(t *testing.T) {
	conn := sunspectest.NewFXSplitConn()
	lm := newTestLifecycle(t, func() (sunspec.Conn, error) { return conn, nil })
	require.NoError(t, lm.Start())

	cc, err := grpc.NewClient(lm.GRPCAddr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer cc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := healthpb.NewHealthClient(cc).Check(ctx, &healthpb.HealthCheckRequest{Service: AXSHealthService})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}

func TestStartWithoutAXSIsDegraded(t *testing.T) {
	lm := newTestLifecycle(t, func() (sunspec.Conn, error) { return nil, errors.New("no route to host") })

	require.NoError(t, lm.Start())
	assert.Equal(t, StateDegraded, lm.State())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, axsHealth(t, lm))
	assert.Equal(t, "DEGRADED", lm.GetCurrentStatus().State)
}

func TestShutdownIsIdempotent(t *testing.T) {
	conn := sunspectest.NewFXSplitConn()
	lm := newTestLifecycle(t, func() (sunspec.Conn, error) { return conn, nil })
	require.NoError(t, lm.Start())

	ctx := context.Background()
	require.NoError(t, lm.Shutdown(ctx))
	require.NoError(t, lm.Shutdown(ctx))
	assert.Equal(t, StateStopped, lm.State())
	assert.False(t, conn.IsOpen())
	assert.False(t, lm.Poller().IsRunning())

	select {
	case <-lm.Done():
	default:
		t.Fatal("Done not closed")
	}
}

func TestValidateTransition(t *testing.T) {
	assert.NoError(t, ValidateTransition(StateInitializing, StateRunning))
	assert.NoError(t, ValidateTransition(StateRunning, StateDegraded))
	assert.NoError(t, ValidateTransition(StateDegraded, StateDegraded))
	assert.Error(t, ValidateTransition(StateStopped, StateRunning))
	assert.Error(t, ValidateTransition(SystemState(42), StateRunning))
}
