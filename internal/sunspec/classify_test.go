package sunspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func devicesOf(models ...ModelID) []Device {
	devices := make([]Device, len(models))
	for i, m := range models {
		devices[i] = Device{Index: i, Model: m}
	}
	return devices
}

func TestClassifySplitFX(t *testing.T) {
	dep := Classify(devicesOf(ModelInverterSplit, ModelFX), plain)

	assert.Equal(t, PhaseSplit, dep.Phase)
	assert.Equal(t, FamilyFX, dep.Family)
	assert.False(t, dep.HasAddon)
	assert.False(t, dep.Obfuscated)
}

func TestClassifyPhasePriority(t *testing.T) {
	tests := []struct {
		models []ModelID
		want   Phase
	}{
		{[]ModelID{ModelInverterThree, ModelInverterSplit, ModelInverterSingle}, PhaseSingle},
		{[]ModelID{ModelInverterThree, ModelInverterSplit}, PhaseSplit},
		{[]ModelID{ModelInverterThree}, PhaseThree},
		{[]ModelID{ModelCommon, ModelOutBack}, PhaseUnknown},
		{nil, PhaseUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(devicesOf(tt.models...), plain).Phase, "%v", tt.models)
	}
}

func TestClassifyFamily(t *testing.T) {
	tests := []struct {
		models []ModelID
		want   Family
	}{
		{[]ModelID{ModelFX, ModelFX, ModelFXConfig}, FamilyFX},
		{[]ModelID{ModelGSSplit}, FamilyGS},
		{[]ModelID{ModelGSSingle}, FamilyGS},
		{[]ModelID{ModelGSSingle, ModelFX}, FamilyFX},
		{[]ModelID{ModelFXConfig, ModelGSConfig}, FamilyUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(devicesOf(tt.models...), plain).Family, "%v", tt.models)
	}
}

func TestClassifyAddon(t *testing.T) {
	assert.True(t, Classify(devicesOf(ModelGSSplit, ModelFLEXnetDC), plain).HasAddon)
	assert.True(t, Classify(devicesOf(ModelGSSplit, ModelFLEXnetConfig), plain).HasAddon)
	assert.False(t, Classify(devicesOf(ModelGSSplit, ModelCC), plain).HasAddon)
}

func TestClassifyCarriesObfuscation(t *testing.T) {
	dep := Classify(devicesOf(ModelFX), obfuscated(0x4242))
	assert.True(t, dep.Obfuscated)
	assert.Equal(t, uint16(0x4242), dep.Key)
}

func TestDeploymentModels(t *testing.T) {
	fx := Deployment{Phase: PhaseSplit, Family: FamilyFX}
	model, err := fx.ConfigModel()
	require.NoError(t, err)
	assert.Equal(t, ModelFXConfig, model)
	model, err = fx.StatusModel()
	require.NoError(t, err)
	assert.Equal(t, ModelFX, model)
	assert.Equal(t, ModelInverterSplit, fx.InverterModel())
	assert.Equal(t, "OutBack FX Split Phase", fx.ControllerName())

	gs := Deployment{Phase: PhaseSingle, Family: FamilyGS}
	model, err = gs.ConfigModel()
	require.NoError(t, err)
	assert.Equal(t, ModelGSConfig, model)
	model, err = gs.StatusModel()
	require.NoError(t, err)
	assert.Equal(t, ModelGSSingle, model)
	assert.Equal(t, ModelFLEXnetConfig, gs.AddonConfigModel())

	unknown := Deployment{Phase: PhaseUnknown, Family: FamilyUnknown}
	_, err = unknown.ConfigModel()
	assert.ErrorIs(t, err, ErrUnknownFamily)
	_, err = unknown.StatusModel()
	assert.ErrorIs(t, err, ErrUnknownFamily)
	assert.Equal(t, ModelInverterThree, unknown.InverterModel())
}
