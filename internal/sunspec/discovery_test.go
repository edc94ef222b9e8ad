package sunspec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverStopsAtEndMarker(t *testing.T) {
	for _, end := range []uint16{0, 65535} {
		m := newMemTransport()
		headers := chain{
			end: end,
			blocks: []block{
				{model: ModelCommon, length: 66},
				{model: ModelOutBack, length: 224},
				{model: ModelInverterSplit, length: 50},
			},
		}.write(m)

		devices, err := Discover(context.Background(), m, ChainBaseAddress, plain, DefaultRegistry())
		require.NoError(t, err)
		require.Len(t, devices, 3)

		assert.Equal(t, ModelCommon, devices[0].Model)
		assert.Equal(t, headers[0]-2, devices[0].BaseAddress)
		assert.Equal(t, uint16(39999), devices[0].BaseAddress)
		assert.Equal(t, uint16(66), devices[0].Length)

		assert.Equal(t, ModelOutBack, devices[1].Model)
		assert.Equal(t, headers[1], devices[1].BaseAddress)
		assert.Equal(t, uint16(40069), devices[1].BaseAddress)
		assert.Equal(t, ModelInverterSplit, devices[2].Model)
		assert.Equal(t, headers[2], devices[2].BaseAddress)

		for i, d := range devices {
			assert.Equal(t, i, d.Index)
			assert.Nil(t, d.Port)
		}
	}
}

func TestDiscoverEmptyChain(t *testing.T) {
	m := newMemTransport()

	devices, err := Discover(context.Background(), m, ChainBaseAddress, plain, DefaultRegistry())
	require.NoError(t, err)
	assert.Empty(t, devices)
}

func TestDiscoverChainTooLong(t *testing.T) {
	m := newMemTransport()
	for i := 0; i < 2*MaxChainLength+10; i++ {
		address := ChainBaseAddress + uint16(2*i)
		m.regs[address] = uint16(ModelOutBack)
		m.regs[address+1] = 0
	}

	_, err := Discover(context.Background(), m, ChainBaseAddress, plain, DefaultRegistry())
	assert.ErrorIs(t, err, ErrChainTooLong)
	assert.LessOrEqual(t, len(m.reads), MaxChainLength+1)
}

func TestDiscoverAcceptsChainAtCap(t *testing.T) {
	m := newMemTransport()
	blocks := make([]block, MaxChainLength)
	for i := range blocks {
		blocks[i] = block{model: ModelOutBackSystem, length: 0}
	}
	chain{blocks: blocks}.write(m)

	devices, err := Discover(context.Background(), m, ChainBaseAddress, plain, DefaultRegistry())
	require.NoError(t, err)
	assert.Len(t, devices, MaxChainLength)
}

func TestDiscoverReadsPortAndStackingMode(t *testing.T) {
	m := newMemTransport()
	chain{blocks: []block{
		{model: ModelCommon, length: 66},
		{model: ModelFX, length: 36, fields: map[string][]uint16{"FX_Port_Number": {1}}},
		{model: ModelFX, length: 36, fields: map[string][]uint16{"FX_Port_Number": {2}}},
		{model: ModelFXConfig, length: 65, fields: map[string][]uint16{
			"FXconfig_Port_Number":   {1},
			"FXconfig_Stacking_Mode": {19},
		}},
		{model: ModelFXConfig, length: 65, fields: map[string][]uint16{
			"FXconfig_Port_Number":   {2},
			"FXconfig_Stacking_Mode": {7},
		}},
		{model: ModelCC, length: 26},
	}}.write(m)

	devices, err := Discover(context.Background(), m, ChainBaseAddress, plain, DefaultRegistry())
	require.NoError(t, err)
	require.Len(t, devices, 6)

	require.NotNil(t, devices[1].Port)
	assert.Equal(t, 1, *devices[1].Port)
	assert.Nil(t, devices[1].StackingMode)
	assert.Equal(t, RoleNone, devices[1].Role())

	require.NotNil(t, devices[2].Port)
	assert.Equal(t, 2, *devices[2].Port)

	require.NotNil(t, devices[3].StackingMode)
	assert.Equal(t, 19, *devices[3].StackingMode)
	assert.Equal(t, RoleMaster, devices[3].Role())

	require.NotNil(t, devices[4].Port)
	assert.Equal(t, 2, *devices[4].Port)
	assert.Equal(t, RoleSlave, devices[4].Role())

	assert.Nil(t, devices[5].Port, "charge controllers carry no port tag")
}

func TestDeviceRoleMasterModes(t *testing.T) {
	for mode, want := range map[int]Role{0: RoleMaster, 4: RoleMaster, 10: RoleMaster, 19: RoleMaster, 1: RoleSlave, 20: RoleSlave} {
		d := Device{StackingMode: &mode}
		assert.Equal(t, want, d.Role(), "mode %d", mode)
	}
}

func TestDiscoverObfuscatedHeaders(t *testing.T) {
	const key = 0x0F0F
	m := newMemTransport()
	chain{
		mask: func(w uint16) uint16 { return w ^ key },
		blocks: []block{
			{model: ModelCommon, length: 66},
			{model: ModelGSSplit, length: 53, fields: map[string][]uint16{"GS_Split_Port_Number": {3}}},
		},
	}.write(m)

	devices, err := Discover(context.Background(), m, ChainBaseAddress, obfuscated(key), DefaultRegistry())
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, ModelGSSplit, devices[1].Model)
	assert.Equal(t, uint16(53), devices[1].Length)
	require.NotNil(t, devices[1].Port)
	assert.Equal(t, 3, *devices[1].Port)
}

func TestDiscoverTransportError(t *testing.T) {
	m := newMemTransport()
	chain{blocks: []block{{model: ModelCommon, length: 66}}}.write(m)
	m.failRead[ChainBaseAddress+68] = errBoom

	_, err := Discover(context.Background(), m, ChainBaseAddress, plain, DefaultRegistry())
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, errBoom)
}

func TestDiscoverCustomBase(t *testing.T) {
	m := newMemTransport()
	chain{base: 50, blocks: []block{
		{model: ModelCommon, length: 10},
		{model: ModelInverterSingle, length: 50},
	}}.write(m)

	devices, err := Discover(context.Background(), m, 50, plain, DefaultRegistry())
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, uint16(48), devices[0].BaseAddress)
	assert.Equal(t, uint16(62), devices[1].BaseAddress)
}
