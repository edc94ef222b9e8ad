package sunspec

import "fmt"

type Phase string

const (
	PhaseSingle  Phase = "Single"
	PhaseSplit   Phase = "Split"
	PhaseThree   Phase = "Three"
	PhaseUnknown Phase = "Unknown"
)

type Family string

const (
	FamilyFX      Family = "FX"
	FamilyGS      Family = "GS"
	FamilyUnknown Family = "Unknown"
)

// Deployment is what a session learned about the installation.
type Deployment struct {
	Phase      Phase  `json:"phase"`
	Family     Family `json:"family"`
	HasAddon   bool   `json:"has_addon"`
	Obfuscated bool   `json:"obfuscated"`
	Key        uint16 `json:"key,omitempty"`
}

// Classify infers phase, family and add-on presence from the declared model ids.
func Classify(devices []Device, obf ObfuscationState) Deployment {
	declared := make(map[ModelID]bool, len(devices))
	for _, d := range devices {
		declared[d.Model] = true
	}

	dep := Deployment{
		Phase:      PhaseUnknown,
		Family:     FamilyUnknown,
		HasAddon:   declared[ModelFLEXnetDC] || declared[ModelFLEXnetConfig],
		Obfuscated: obf.Obfuscated,
	}
	if obf.Obfuscated {
		dep.Key = obf.Key
	}

	switch {
	case declared[ModelInverterSingle]:
		dep.Phase = PhaseSingle
	case declared[ModelInverterSplit]:
		dep.Phase = PhaseSplit
	case declared[ModelInverterThree]:
		dep.Phase = PhaseThree
	}

	switch {
	case declared[ModelFX]:
		dep.Family = FamilyFX
	case declared[ModelGSSplit], declared[ModelGSSingle]:
		dep.Family = FamilyGS
	}

	return dep
}

// ConfigModel returns the config model carrying port and stacking mode per inverter.
func (d Deployment) ConfigModel() (ModelID, error) {
	switch d.Family {
	case FamilyFX:
		return ModelFXConfig, nil
	case FamilyGS:
		return ModelGSConfig, nil
	}
	return 0, ErrUnknownFamily
}

// StatusModel returns the per-port inverter status model for the family and phase.
func (d Deployment) StatusModel() (ModelID, error) {
	switch d.Family {
	case FamilyFX:
		return ModelFX, nil
	case FamilyGS:
		if d.Phase == PhaseSingle {
			return ModelGSSingle, nil
		}
		return ModelGSSplit, nil
	}
	return 0, ErrUnknownFamily
}

func (d Deployment) AddonConfigModel() ModelID {
	return ModelFLEXnetConfig
}

// InverterModel returns the SunSpec inverter model id for the phase.
func (d Deployment) InverterModel() ModelID {
	switch d.Phase {
	case PhaseSingle:
		return ModelInverterSingle
	case PhaseSplit:
		return ModelInverterSplit
	}
	return ModelInverterThree
}

// ControllerName is the display name of the AXS Port, e.g. "OutBack FX Split Phase".
func (d Deployment) ControllerName() string {
	return fmt.Sprintf("OutBack %s %s Phase", d.Family, d.Phase)
}
