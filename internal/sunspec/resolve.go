package sunspec

import (
	"fmt"
	"strings"
)

var prefixModels = map[string]ModelID{
	"OutBack":  ModelOutBack,
	"CC":       ModelCC,
	"CCconfig": ModelCCConfig,
	"FX":       ModelFX,
	"FXconfig": ModelFXConfig,
	"GSconfig": ModelGSConfig,
	"FN":       ModelFLEXnetDC,
	"FNconfig": ModelFLEXnetConfig,
	"OB":       ModelOutBackSystem,
	"C":        ModelCommon,
}

// ResolveModel maps a logical register name to the model that owns it using
// the first underscore-separated segment. GS names pick split or single from
// the second segment and I names pick the inverter model from phase.
func ResolveModel(name string, phase Phase) (ModelID, error) {
	segments := strings.Split(name, "_")
	if len(segments) < 2 || segments[1] == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRegister, name)
	}

	switch segments[0] {
	case "GS":
		if segments[1] == "Split" {
			return ModelGSSplit, nil
		}
		return ModelGSSingle, nil
	case "I":
		switch phase {
		case PhaseSingle:
			return ModelInverterSingle, nil
		case PhaseSplit:
			return ModelInverterSplit, nil
		}
		return ModelInverterThree, nil
	}

	if model, ok := prefixModels[segments[0]]; ok {
		return model, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRegister, name)
}
