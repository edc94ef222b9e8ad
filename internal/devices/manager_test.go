package devices

import (
	"context"
	"errors"
	"testing"

	"github.com/KevinKickass/SunSpecBridge/internal/config"
	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
	"github.com/KevinKickass/SunSpecBridge/internal/sunspec/sunspectest"
	"github.com/KevinKickass/SunSpecBridge/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T, conn *sunspectest.MemConn, axs config.AXSConfig) *Manager {
	t.Helper()
	if axs.Host == "" {
		axs.Host = "axs.local"
		axs.Port = 502
	}
	m, err := NewManager(axs, config.ProfilesConfig{}, zap.NewNop(),
		WithDialer(func() (sunspec.Conn, error) { return conn, nil }))
	require.NoError(t, err)
	return m
}

func TestManagerConnect(t *testing.T) {
	conn := sunspectest.NewFXSplitConn()
	m := newTestManager(t, conn, config.AXSConfig{ReleaseControl: true})

	assert.Equal(t, types.StateDisconnected, m.State())
	_, err := m.Session()
	assert.ErrorIs(t, err, ErrNotConnected)

	require.NoError(t, m.Connect(context.Background()))
	assert.Equal(t, types.StateVerified, m.State())

	s, err := m.Session()
	require.NoError(t, err)
	dep := s.Deployment()
	assert.Equal(t, sunspec.PhaseSplit, dep.Phase)
	assert.Equal(t, sunspec.FamilyFX, dep.Family)
	assert.True(t, dep.HasAddon)

	released, ok := conn.Written(sunspec.ControlReleaseAddress)
	assert.True(t, ok)
	assert.Equal(t, uint16(0xFFFF), released)

	info := m.Info()
	assert.Equal(t, "abcd1234efgh56", info.SerialID)
	assert.Equal(t, "axs.local:502", info.Address)
	assert.NotEmpty(t, info.ID)
	assert.NotNil(t, info.OpenedAt)

	node, ok := m.Node("fx_inv_10_1")
	require.True(t, ok)
	assert.Equal(t, "FX Inverter - Master - Port 1", node.Name)

	// a second Connect keeps the open session
	require.NoError(t, m.Connect(context.Background()))
	again, _ := m.Session()
	assert.Same(t, s, again)
}

func TestManagerSkipsReleaseWhenDisabled(t *testing.T) {
	conn := sunspectest.NewFXSplitConn()
	m := newTestManager(t, conn, config.AXSConfig{})

	require.NoError(t, m.Connect(context.Background()))
	_, ok := conn.Written(sunspec.ControlReleaseAddress)
	assert.False(t, ok)
}

func TestManagerConnectNotSunSpec(t *testing.T) {
	conn := sunspectest.NewMemConn()
	m := newTestManager(t, conn, config.AXSConfig{})

	err := m.Connect(context.Background())
	assert.ErrorIs(t, err, sunspec.ErrNotSunSpec)
	assert.Equal(t, types.StateFailed, m.State())
	assert.NotEmpty(t, m.Info().LastError)
	assert.False(t, conn.IsOpen())
}

func TestManagerUnknownTransform(t *testing.T) {
	m := newTestManager(t, sunspectest.NewFXSplitConn(), config.AXSConfig{Transform: "vendor"})
	assert.ErrorIs(t, m.Connect(context.Background()), ErrUnknownTransform)

	m.RegisterTransform("vendor", sunspec.TransformFunc(func(key, word uint16) uint16 { return word ^ key }))
	assert.NoError(t, m.Connect(context.Background()))
}

func TestManagerDialError(t *testing.T) {
	m, err := NewManager(config.AXSConfig{}, config.ProfilesConfig{}, nil,
		WithDialer(func() (sunspec.Conn, error) { return nil, errors.New("no route") }))
	require.NoError(t, err)

	assert.ErrorContains(t, m.Connect(context.Background()), "no route")
	assert.Equal(t, types.StateFailed, m.State())
}

func TestManagerReconnectAndDisconnect(t *testing.T) {
	conn := sunspectest.NewFXSplitConn()
	m := newTestManager(t, conn, config.AXSConfig{})

	require.NoError(t, m.Connect(context.Background()))
	first, _ := m.Session()

	require.NoError(t, m.Reconnect(context.Background()))
	second, _ := m.Session()
	assert.NotEqual(t, first.ID(), second.ID())
	assert.False(t, first.IsOpen())

	require.NoError(t, m.Disconnect())
	assert.Equal(t, types.StateDisconnected, m.State())
	_, err := m.Inventory()
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestManagerStateFailsWhenTransportDrops(t *testing.T) {
	conn := sunspectest.NewFXSplitConn()
	m := newTestManager(t, conn, config.AXSConfig{})

	require.NoError(t, m.Connect(context.Background()))
	require.NoError(t, conn.Close())
	assert.Equal(t, types.StateFailed, m.State())
}

func TestManagerAppliesProfiles(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "fx.yaml", fxOverlayYAML)

	m, err := NewManager(config.AXSConfig{}, config.ProfilesConfig{SearchPaths: []string{dir}, Files: []string{"fx"}}, zap.NewNop())
	require.NoError(t, err)

	fd, ok := m.Registry().Lookup(sunspec.ModelFX, "FX_Inverter_Output_Current")
	require.True(t, ok)
	assert.Equal(t, sunspec.DecodeFloat2, fd.Decode)

	_, err = NewManager(config.AXSConfig{}, config.ProfilesConfig{SearchPaths: []string{dir}, Files: []string{"nope"}}, zap.NewNop())
	assert.Error(t, err)
}

func TestWriteNodeRegister(t *testing.T) {
	conn := sunspectest.NewFXSplitConn()
	m := newTestManager(t, conn, config.AXSConfig{})
	require.NoError(t, m.Connect(context.Background()))

	require.NoError(t, m.WriteNodeRegister(context.Background(), "fx_inv_12_2", "FXconfig_Sell_Volts", 52.4))

	s, _ := m.Session()
	var slaveConfig sunspec.Device
	for _, d := range s.Devices() {
		if d.Model == sunspec.ModelFXConfig && *d.Port == 2 {
			slaveConfig = d
		}
	}
	fd, _ := s.Registry().Lookup(sunspec.ModelFXConfig, "FXconfig_Sell_Volts")
	word, ok := conn.Written(fd.Address(slaveConfig.BaseAddress))
	require.True(t, ok)
	assert.Equal(t, uint16(524), word)

	assert.ErrorIs(t, m.WriteNodeRegister(context.Background(), "fx_inv_12_2", "FX_AC_Output_Voltage", 1), ErrNotWritable)
	assert.ErrorIs(t, m.WriteNodeRegister(context.Background(), "nope", "FXconfig_Sell_Volts", 1), sunspec.ErrNoSuchDevice)
}

func TestOnSessionListener(t *testing.T) {
	conn := sunspectest.NewFXSplitConn()
	m := newTestManager(t, conn, config.AXSConfig{})

	var events []SessionEvent
	m.OnSession(func(_ context.Context, ev SessionEvent) {
		// Listeners run outside the lock.
		_, err := m.Session()
		assert.NoError(t, err)
		events = append(events, ev)
	})

	require.NoError(t, m.Connect(context.Background()))
	require.NoError(t, m.Connect(context.Background()))
	require.Len(t, events, 1)
	assert.Equal(t, types.StateVerified, events[0].Info.State)
	assert.Equal(t, "abcd1234efgh56", events[0].Inventory.SerialID)
	assert.Equal(t, sunspec.FamilyFX, events[0].Deployment.Family)

	require.NoError(t, m.Reconnect(context.Background()))
	require.Len(t, events, 2)
	assert.NotEqual(t, events[0].Info.ID, events[1].Info.ID)
}

func TestManagerUnknownFamilyStopsSession(t *testing.T) {
	chain := sunspectest.Chain{Blocks: []sunspectest.Block{
		{Model: sunspec.ModelCommon, Length: 66, Fields: map[string][]uint16{
			"C_SerialNumber": sunspectest.StringWords("NOFAMILY", 16),
		}},
		{Model: sunspec.ModelOutBack, Length: 224},
		{Model: sunspec.ModelInverterSplit, Length: 50},
	}}
	conn := sunspectest.NewMemConn()
	require.NoError(t, chain.Load(conn))
	m := newTestManager(t, conn, config.AXSConfig{})

	var notified bool
	m.OnSession(func(context.Context, SessionEvent) { notified = true })

	err := m.Connect(context.Background())
	assert.ErrorIs(t, err, sunspec.ErrUnknownFamily)
	assert.Equal(t, types.StateFailed, m.State())
	assert.False(t, conn.IsOpen())
	assert.False(t, notified)

	_, err = m.Session()
	assert.ErrorIs(t, err, ErrNotConnected)
	_, err = m.Inventory()
	assert.ErrorIs(t, err, ErrNotConnected)
}
