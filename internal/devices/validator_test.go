package devices

import (
	"testing"

	"github.com/KevinKickass/SunSpecBridge/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProfileDefinition(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	profile := &types.RegisterProfile{
		Profile: types.ProfileInfo{ID: "gs.local", Vendor: "OutBack", Version: "1"},
		Models: []types.ModelOverlay{{
			Model: 64116,
			Registers: []types.RegisterDefinition{{
				Name: "GSconfig_Sell_Volts", Offset: 50, Length: 1,
				Decode: "float", Kind: "UINT16", Units: "Volts", Access: "RW",
			}},
		}},
	}
	assert.NoError(t, v.ValidateProfileDefinition(profile))

	profile.Models[0].Registers[0].Access = "W"
	assert.Error(t, v.ValidateProfileDefinition(profile))

	profile.Models[0].Registers[0].Access = "RW"
	profile.Models[0].Model = 65535
	assert.Error(t, v.ValidateProfileDefinition(profile))
}

func TestValidateProfileRejectsGarbage(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	assert.ErrorContains(t, v.ValidateProfile([]byte("{")), "invalid JSON")
	assert.ErrorContains(t, v.ValidateProfile([]byte(`{"profile":{}}`)), "schema validation failed")
}
