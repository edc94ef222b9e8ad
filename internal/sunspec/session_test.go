package sunspec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fxSplitChain is an FX split-phase stack of two inverters with a FLEXnet-DC.
func fxSplitChain() chain {
	return chain{blocks: []block{
		{model: ModelCommon, length: 66, fields: map[string][]uint16{
			"C_SunSpec_ID":   stringWords("SunS", 2),
			"C_Manufacturer": stringWords("OutBack Power", 16),
			"C_SerialNumber": stringWords("ABCD1234EFGH5678", 16),
		}},
		{model: ModelOutBack, length: 224, fields: map[string][]uint16{
			"OutBack_Temp_Batt": {25},
		}},
		{model: ModelFX, length: 36, fields: map[string][]uint16{
			"FX_Port_Number":             {1},
			"FX_Inverter_Output_Current": {112},
		}},
		{model: ModelFX, length: 36, fields: map[string][]uint16{
			"FX_Port_Number":             {2},
			"FX_Inverter_Output_Current": {235},
			"FX_Error_Flags":             {0xFFFF},
		}},
		{model: ModelFXConfig, length: 65, fields: map[string][]uint16{
			"FXconfig_Port_Number":   {1},
			"FXconfig_Stacking_Mode": {10},
		}},
		{model: ModelFXConfig, length: 65, fields: map[string][]uint16{
			"FXconfig_Port_Number":   {2},
			"FXconfig_Stacking_Mode": {12},
		}},
		{model: ModelFLEXnetDC, length: 39, fields: map[string][]uint16{
			"FN_Port_Number":     {4},
			"FN_State_Of_Charge": {87},
		}},
		{model: ModelInverterSplit, length: 50, fields: map[string][]uint16{
			"I_Status":   {4},
			"I_AC_Power": {1500},
		}},
	}}
}

func openTestSession(t *testing.T, c chain, opts ...Option) (*Session, *memTransport, []uint16) {
	t.Helper()
	m := newMemTransport()
	headers := c.write(m)

	s, err := Open(context.Background(), m, append([]Option{WithLogger(zap.NewNop())}, opts...)...)
	require.NoError(t, err)
	return s, m, headers
}

func TestGetOneEndToEnd(t *testing.T) {
	reg, err := NewRegistry(map[ModelID][]FieldDescriptor{
		ModelFX: {ro(1, 1, DecodeFloat, KindUint16, "Amps", "FX_Inverter_Output_Current")},
	})
	require.NoError(t, err)

	m := newMemTransport()
	m.regs[100] = 235
	s := &Session{
		conn:     m,
		logger:   zap.NewNop(),
		registry: reg,
		devices:  []Device{{Model: ModelFX, BaseAddress: 100, Length: 1}},
	}

	v, err := s.GetOne(context.Background(), "FX_Inverter_Output_Current")
	require.NoError(t, err)
	assert.Equal(t, "23.5", v.String())
	assert.Equal(t, []readCall{{100, 1}}, m.reads)
}

func TestOpenDiscoversAndClassifies(t *testing.T) {
	s, m, headers := openTestSession(t, fxSplitChain())
	assert.True(t, m.IsOpen())
	assert.True(t, s.IsOpen())
	assert.NotEmpty(t, s.ID())

	dep := s.Deployment()
	assert.Equal(t, PhaseSplit, dep.Phase)
	assert.Equal(t, FamilyFX, dep.Family)
	assert.True(t, dep.HasAddon)
	assert.False(t, dep.Obfuscated)

	devices := s.Devices()
	require.Len(t, devices, 8)
	assert.Equal(t, headers[0]-2, devices[0].BaseAddress)
	assert.Equal(t, RoleMaster, devices[4].Role())
	assert.Equal(t, RoleSlave, devices[5].Role())
}

func TestGetOneSelectsPort(t *testing.T) {
	s, _, _ := openTestSession(t, fxSplitChain())
	ctx := context.Background()

	v, err := s.GetOne(ctx, "FX_Inverter_Output_Current")
	require.NoError(t, err)
	assert.Equal(t, "11.2", v.String(), "first FX block wins without a port")

	v, err = s.GetOne(ctx, "FX_Inverter_Output_Current", OnPort(2))
	require.NoError(t, err)
	assert.Equal(t, "23.5", v.String())

	v, err = s.GetOne(ctx, "FX_Error_Flags", OnPort(2))
	require.NoError(t, err)
	assert.True(t, v.IsNotImplemented())

	v, err = s.GetOne(ctx, "I_Status")
	require.NoError(t, err)
	assert.Equal(t, "MPPT", v.String())

	v, err = s.GetOne(ctx, "C_Manufacturer")
	require.NoError(t, err)
	assert.Contains(t, v.String(), "OutBack Power")

	v, err = s.GetOne(ctx, "C_SunSpec_ID")
	require.NoError(t, err)
	assert.Equal(t, "SunS", v.String())

	_, err = s.GetOne(ctx, "FX_Inverter_Output_Current", OnPort(9))
	assert.ErrorIs(t, err, ErrNoSuchDevice)
}

func TestGetOneErrors(t *testing.T) {
	s, m, _ := openTestSession(t, fxSplitChain())
	ctx := context.Background()

	_, err := s.GetOne(ctx, "Bogus_Register")
	assert.ErrorIs(t, err, ErrUnknownRegister)

	_, err = s.GetOne(ctx, "FX_No_Such_Field")
	assert.ErrorIs(t, err, ErrUnknownRegister)

	_, err = s.GetOne(ctx, "GS_Split_Battery_Voltage")
	assert.ErrorIs(t, err, ErrNoSuchDevice)

	fd, _ := DefaultRegistry().Lookup(ModelFX, "FX_Battery_Voltage")
	m.failRead[fd.Address(s.Devices()[2].BaseAddress)] = errBoom
	_, err = s.GetOne(ctx, "FX_Battery_Voltage")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestSetOne(t *testing.T) {
	s, m, _ := openTestSession(t, fxSplitChain())
	ctx := context.Background()

	require.NoError(t, s.SetOne(ctx, "FXconfig_Sell_Volts", 52.5, UOMVolt, OnPort(2)))
	fd, _ := DefaultRegistry().Lookup(ModelFXConfig, "FXconfig_Sell_Volts")
	assert.Equal(t, uint16(525), m.writes[fd.Address(s.Devices()[5].BaseAddress)])

	v, err := s.GetOne(ctx, "FXconfig_Sell_Volts", OnPort(2))
	require.NoError(t, err)
	assert.Equal(t, "52.5", v.String())

	err = s.SetOne(ctx, "FXconfig_Sell_Volts", 9000, UOMVolt)
	assert.ErrorIs(t, err, ErrValueRange)

	err = s.SetOne(ctx, "Nope_Register", 1, UOMIndex)
	assert.ErrorIs(t, err, ErrUnknownRegister)

	m.failWrite = errBoom
	err = s.SetOne(ctx, "FXconfig_Sell_Volts", 50, UOMVolt)
	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.ErrorIs(t, err, errBoom)
}

func TestGetAll(t *testing.T) {
	s, _, _ := openTestSession(t, fxSplitChain())

	readings, err := s.GetAll(context.Background(), ModelFX, OnPort(2))
	require.NoError(t, err)
	require.Len(t, readings, len(DefaultRegistry().Fields(ModelFX)))

	byName := make(map[string]Reading, len(readings))
	for _, r := range readings {
		byName[r.Name] = r
	}
	assert.Equal(t, "23.5", byName["FX_Inverter_Output_Current"].Text)
	assert.Equal(t, "Amps", byName["FX_Inverter_Output_Current"].Units)
	assert.Equal(t, NotImplementedText, byName["FX_Error_Flags"].Text)
	require.NotNil(t, byName["FX_Port_Number"].Port)
	assert.Equal(t, 2, *byName["FX_Port_Number"].Port)

	_, err = s.GetAll(context.Background(), ModelGSSplit)
	assert.ErrorIs(t, err, ErrNoSuchDevice)
}

func TestGetAllChunksLargeBlocks(t *testing.T) {
	s, m, headers := openTestSession(t, fxSplitChain())
	m.reads = nil

	readings, err := s.GetAll(context.Background(), ModelOutBack)
	require.NoError(t, err)
	assert.Len(t, readings, len(DefaultRegistry().Fields(ModelOutBack)))

	require.Len(t, m.reads, 2)
	assert.Equal(t, readCall{headers[1], MaxReadQuantity}, m.reads[0])
	assert.Equal(t, headers[1]+MaxReadQuantity, m.reads[1].address)
}

func TestSerialID(t *testing.T) {
	s, _, _ := openTestSession(t, fxSplitChain())

	id, err := s.SerialID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abcd1234efgh56", id)
}

func TestReleaseControlAndClose(t *testing.T) {
	s, m, _ := openTestSession(t, fxSplitChain())
	ctx := context.Background()

	require.NoError(t, s.ReleaseControl(ctx))
	assert.Equal(t, uint16(0xFFFF), m.writes[ControlReleaseAddress])

	require.NoError(t, s.Close())
	assert.False(t, m.IsOpen())
	assert.False(t, s.IsOpen())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, m.closes)

	_, err := s.GetOne(ctx, "FX_Inverter_Output_Current")
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.ErrorIs(t, s.SetOne(ctx, "FXconfig_Sell_Volts", 50, UOMVolt), ErrSessionClosed)
	_, err = s.GetAll(ctx, ModelFX)
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.ErrorIs(t, s.ReleaseControl(ctx), ErrSessionClosed)
	assert.Empty(t, s.Devices())
}

func TestOpenObfuscated(t *testing.T) {
	const key = 0x3C3C
	const base = ChainBaseAddress + 2
	c := chain{
		base: base,
		mask: func(w uint16) uint16 { return w ^ key },
		blocks: []block{
			{model: ModelCommon, length: 100, fields: map[string][]uint16{
				"C_SerialNumber": stringWords("zx9876", 16),
			}},
			{model: ModelGSSplit, length: 53, fields: map[string][]uint16{
				"GS_Split_Port_Number":                {1},
				"GS_Split_L1_Inverter_Output_Current": {57},
			}},
			{model: ModelGSConfig, length: 69, fields: map[string][]uint16{
				"GSconfig_Port_Number":   {1},
				"GSconfig_Stacking_Mode": {0},
			}},
			{model: ModelInverterSingle, length: 50},
		},
	}
	m := newMemTransport()
	c.write(m)
	m.regs[KeyAddress] = key

	s, err := Open(context.Background(), m, WithTransform(xorTransform), WithBaseAddress(base))
	require.NoError(t, err)
	assert.Equal(t, readCall{ObfuscatedIdentifierAddress, 3}, m.reads[2])

	dep := s.Deployment()
	assert.True(t, dep.Obfuscated)
	assert.Equal(t, uint16(key), dep.Key)
	assert.Equal(t, FamilyGS, dep.Family)
	assert.Equal(t, PhaseSingle, dep.Phase)

	v, err := s.GetOne(context.Background(), "GS_Split_L1_Inverter_Output_Current", OnPort(1))
	require.NoError(t, err)
	assert.Equal(t, "5.7", v.String())

	id, err := s.SerialID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "zx9876", id)

	assert.Equal(t, RoleMaster, s.Devices()[2].Role())
}

func TestOpenNotSunSpecClosesConnection(t *testing.T) {
	m := newMemTransport()
	m.regs[IdentifierAddress] = 0x1111
	m.regs[IdentifierAddress+1] = 0x2222

	_, err := Open(context.Background(), m)
	assert.ErrorIs(t, err, ErrNotSunSpec)
	assert.False(t, m.IsOpen())
	assert.Equal(t, 1, m.closes)
}
