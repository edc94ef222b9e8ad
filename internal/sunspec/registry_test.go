package sunspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryCoversKnownModels(t *testing.T) {
	reg := DefaultRegistry()
	for model := range modelNames {
		if model.IsEnd() {
			continue
		}
		assert.True(t, reg.Has(model), "model %d", model)
	}

	for model, name := range portFields {
		_, ok := reg.Lookup(model, name)
		assert.True(t, ok, name)
	}
	for model, name := range stackingFields {
		_, ok := reg.Lookup(model, name)
		assert.True(t, ok, name)
	}
}

func TestDefaultRegistryTablesDoNotOverlap(t *testing.T) {
	reg := DefaultRegistry()
	for _, model := range reg.Models() {
		next := uint16(1)
		for _, fd := range reg.Fields(model) {
			assert.Equal(t, next, fd.Offset, "model %d field %s", model, fd.Name)
			next = fd.Offset + fd.Length
		}
	}
}

func TestRegistryLookup(t *testing.T) {
	fd, ok := DefaultRegistry().Lookup(ModelCommon, "C_SerialNumber")
	require.True(t, ok)
	assert.Equal(t, uint16(53), fd.Offset)
	assert.Equal(t, uint16(16), fd.Length)
	assert.Equal(t, DecodeString, fd.Decode)
	assert.Equal(t, uint16(40051), fd.Address(39999))

	_, ok = DefaultRegistry().Lookup(ModelCommon, "FX_Port_Number")
	assert.False(t, ok)
}

func TestNewRegistryRejectsBadTables(t *testing.T) {
	tests := map[string][]FieldDescriptor{
		"duplicate":   {ro(1, 1, DecodeRaw, KindUint16, "", "X_A"), ro(2, 1, DecodeRaw, KindUint16, "", "X_A")},
		"zero offset": {ro(0, 1, DecodeRaw, KindUint16, "", "X_A")},
		"zero length": {ro(1, 0, DecodeRaw, KindUint16, "", "X_A")},
		"no name":     {ro(1, 1, DecodeRaw, KindUint16, "", "")},
		"bad decode":  {ro(1, 1, DecodeType("bcd"), KindUint16, "", "X_A")},
		"short int32": {ro(1, 1, DecodeInt32, KindUint32, "", "X_A")},
	}
	for name, fields := range tests {
		_, err := NewRegistry(map[ModelID][]FieldDescriptor{ModelFX: fields})
		assert.Error(t, err, name)
	}
}

func TestRegistryOverlay(t *testing.T) {
	base := DefaultRegistry()
	before := len(base.Fields(ModelFX))

	reg, err := base.Overlay(ModelFX, []FieldDescriptor{
		ro(8, 1, DecodeFloat2, KindUint16, "Amps", "FX_Inverter_Output_Current"),
		rw(37, 1, DecodeRaw, KindUint16, "", "FX_Vendor_Extension"),
	})
	require.NoError(t, err)

	fd, ok := reg.Lookup(ModelFX, "FX_Inverter_Output_Current")
	require.True(t, ok)
	assert.Equal(t, DecodeFloat2, fd.Decode)

	fd, ok = reg.Lookup(ModelFX, "FX_Vendor_Extension")
	require.True(t, ok)
	assert.True(t, fd.Writable())
	assert.Len(t, reg.Fields(ModelFX), before+1)

	fd, ok = base.Lookup(ModelFX, "FX_Inverter_Output_Current")
	require.True(t, ok)
	assert.Equal(t, DecodeFloat, fd.Decode, "overlay must not mutate the source registry")
	assert.Equal(t, base.Fields(ModelCommon), reg.Fields(ModelCommon))
}
