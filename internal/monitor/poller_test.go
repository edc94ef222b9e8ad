package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/config"
	"github.com/KevinKickass/SunSpecBridge/internal/devices"
	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
	"github.com/KevinKickass/SunSpecBridge/internal/sunspec/sunspectest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newManager(t *testing.T, conn *sunspectest.MemConn) *devices.Manager {
	t.Helper()
	m, err := devices.NewManager(config.AXSConfig{Host: "axs.local", Port: 502}, config.ProfilesConfig{}, zap.NewNop(),
		devices.WithDialer(func() (sunspec.Conn, error) { return conn, nil }))
	require.NoError(t, err)
	return m
}

func findSample(snap *Snapshot, node, register string) (Sample, bool) {
	for _, s := range snap.Samples {
		if s.Node == node && s.Register == register {
			return s, true
		}
	}
	return Sample{}, false
}

func TestPollConnectsAndReadsWatchLists(t *testing.T) {
	m := newManager(t, sunspectest.NewFXSplitConn())
	p := NewPoller(m, time.Second, time.Minute, nil, zap.NewNop())

	var got []Snapshot
	p.AddSink(SinkFunc(func(ctx context.Context, snap Snapshot) error {
		got = append(got, snap)
		return nil
	}))

	snap, err := p.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abcd1234efgh56", snap.SerialID)
	assert.NotEmpty(t, snap.SessionID)
	require.Len(t, got, 1)

	master, ok := findSample(snap, "fx_inv_10_1", "FX_Inverter_Output_Current")
	require.True(t, ok)
	assert.Equal(t, "11.2", master.Text)
	assert.Equal(t, "Amps", master.Units)
	require.NotNil(t, master.Port)
	assert.Equal(t, 1, *master.Port)

	slave, ok := findSample(snap, "fx_inv_12_2", "FX_Inverter_Output_Current")
	require.True(t, ok)
	assert.Equal(t, "23.5", slave.Text)

	soc, ok := findSample(snap, "fx_flexnet_4", "FN_State_Of_Charge")
	require.True(t, ok)
	assert.Equal(t, float64(87), soc.Value.Float())

	power, ok := findSample(snap, "sunspec_102", "I_AC_Power")
	require.True(t, ok)
	assert.Equal(t, "1500", power.Text)

	last, ok := p.Last()
	require.True(t, ok)
	assert.Equal(t, snap.ReadAt, last.ReadAt)
}

func TestPollRegisterOverride(t *testing.T) {
	m := newManager(t, sunspectest.NewFXSplitConn())
	p := NewPoller(m, time.Second, time.Minute, []string{"OutBack_Temp_Batt", "XX_Unknown"}, nil)

	snap, err := p.Poll(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Samples, 2)

	assert.Equal(t, "abcd1234efgh56", snap.Samples[0].Node)
	assert.Equal(t, "25", snap.Samples[0].Text)
	assert.NotEmpty(t, snap.Samples[1].Error)
}

func TestPollTransportErrorEndsCycle(t *testing.T) {
	conn := sunspectest.NewFXSplitConn()
	m := newManager(t, conn)
	require.NoError(t, m.Connect(context.Background()))

	conn.FailReads(errors.New("broken pipe"))
	p := NewPoller(m, time.Second, time.Minute, nil, nil)

	_, err := p.Poll(context.Background())
	assert.ErrorIs(t, err, sunspec.ErrTransport)
	_, ok := p.Last()
	assert.False(t, ok)
}

func TestPollRetryIsRateLimited(t *testing.T) {
	conn := sunspectest.NewMemConn()
	m := newManager(t, conn)
	p := NewPoller(m, time.Second, time.Hour, nil, nil)

	_, err := p.Poll(context.Background())
	assert.ErrorIs(t, err, sunspec.ErrNotSunSpec)
	reads := conn.Reads()

	_, err = p.Poll(context.Background())
	assert.Error(t, err)
	assert.Equal(t, reads, conn.Reads())
}

func TestPollerStartStop(t *testing.T) {
	m := newManager(t, sunspectest.NewFXSplitConn())
	p := NewPoller(m, 10*time.Millisecond, time.Minute, []string{"OutBack_Temp_Batt"}, nil)

	var mu sync.Mutex
	cycles := 0
	done := make(chan struct{})
	p.AddSink(SinkFunc(func(ctx context.Context, snap Snapshot) error {
		mu.Lock()
		defer mu.Unlock()
		cycles++
		if cycles == 2 {
			close(done)
		}
		return errors.New("sink errors are only logged")
	}))

	require.NoError(t, p.Start())
	require.NoError(t, p.Start())
	assert.True(t, p.IsRunning())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not run")
	}

	p.Stop()
	assert.False(t, p.IsRunning())
	p.Stop()
}
