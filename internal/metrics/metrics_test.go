package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConn struct {
	words []uint16
	err   error
	open  bool
}

func (s *stubConn) ReadHoldingRegisters(ctx context.Context, address, quantity uint16) ([]uint16, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.words[:quantity], nil
}

func (s *stubConn) WriteSingleRegister(ctx context.Context, address, value uint16) error {
	return s.err
}

func (s *stubConn) Open() error  { s.open = true; return nil }
func (s *stubConn) Close() error { s.open = false; return nil }
func (s *stubConn) IsOpen() bool { return s.open }

func TestInstrumentCountsOperations(t *testing.T) {
	okBefore := testutil.ToFloat64(RegisterOperations.WithLabelValues("read", "ok"))
	errBefore := testutil.ToFloat64(RegisterOperations.WithLabelValues("write", "error"))
	wordsBefore := testutil.ToFloat64(RegistersRead)

	stub := &stubConn{words: []uint16{1, 2, 3}}
	conn := Instrument(stub)

	words, err := conn.ReadHoldingRegisters(context.Background(), 40000, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2, 3}, words)

	stub.err = errors.New("boom")
	assert.Error(t, conn.WriteSingleRegister(context.Background(), 40082, 0xFFFF))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(RegisterOperations.WithLabelValues("read", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(RegisterOperations.WithLabelValues("write", "error")))
	assert.Equal(t, wordsBefore+3, testutil.ToFloat64(RegistersRead))
}

func TestInstrumentKeepsLifecycle(t *testing.T) {
	stub := &stubConn{}
	conn := Instrument(stub)

	require.NoError(t, conn.Open())
	assert.True(t, conn.IsOpen())
	require.NoError(t, conn.Close())
	assert.False(t, stub.open)
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "not_sunspec", FailureReason(fmt.Errorf("verify: %w", sunspec.ErrNotSunSpec)))
	assert.Equal(t, "chain_too_long", FailureReason(sunspec.ErrChainTooLong))
	assert.Equal(t, "transport", FailureReason(fmt.Errorf("%w: reset", sunspec.ErrTransport)))
	assert.Equal(t, "other", FailureReason(errors.New("x")))
}

func TestObserveDiscovery(t *testing.T) {
	ObserveDiscovery(time.Now(), 7, nil)
	assert.Equal(t, float64(1), testutil.ToFloat64(SessionUp))
	assert.Equal(t, float64(7), testutil.ToFloat64(DiscoveredDevices))

	before := testutil.ToFloat64(SessionFailures.WithLabelValues("not_sunspec"))
	ObserveDiscovery(time.Now(), 0, sunspec.ErrNotSunSpec)
	assert.Equal(t, float64(0), testutil.ToFloat64(SessionUp))
	assert.Equal(t, before+1, testutil.ToFloat64(SessionFailures.WithLabelValues("not_sunspec")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	SessionUp.Set(1)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "sunspec_bridge_session_up 1"))
}
