package sunspec

import "strconv"

// ModelID is a SunSpec or vendor model identifier as found in a block header.
type ModelID uint16

const (
	ModelCommon         ModelID = 1
	ModelInverterSingle ModelID = 101
	ModelInverterSplit  ModelID = 102
	ModelInverterThree  ModelID = 103

	ModelOutBack       ModelID = 64110
	ModelCC            ModelID = 64111
	ModelCCConfig      ModelID = 64112
	ModelFX            ModelID = 64113
	ModelFXConfig      ModelID = 64114
	ModelGSSplit       ModelID = 64115
	ModelGSConfig      ModelID = 64116
	ModelGSSingle      ModelID = 64117
	ModelFLEXnetDC     ModelID = 64118
	ModelFLEXnetConfig ModelID = 64119
	ModelOutBackSystem ModelID = 64120

	modelEndZero ModelID = 0
	modelEnd     ModelID = 65535
)

var modelNames = map[ModelID]string{
	ModelCommon:         "SunSpec Common",
	ModelInverterSingle: "SunSpec Single Phase Inverter",
	ModelInverterSplit:  "SunSpec Split Phase Inverter",
	ModelInverterThree:  "SunSpec Three Phase Inverter",
	ModelOutBack:        "OutBack",
	ModelCC:             "OutBack Charge Controller",
	ModelCCConfig:       "OutBack Charge Controller Configuration",
	ModelFX:             "OutBack FX Inverter",
	ModelFXConfig:       "OutBack FX Inverter Configuration",
	ModelGSSplit:        "OutBack Split Phase Radian Inverter",
	ModelGSConfig:       "OutBack Radian Inverter Configuration",
	ModelGSSingle:       "OutBack Single Phase Radian Inverter",
	ModelFLEXnetDC:      "OutBack FLEXnet-DC",
	ModelFLEXnetConfig:  "OutBack FLEXnet-DC Configuration",
	ModelOutBackSystem:  "OutBack System Control",
	modelEnd:            "End of SunSpec",
}

func (m ModelID) String() string {
	if name, ok := modelNames[m]; ok {
		return name
	}
	return "Model " + strconv.Itoa(int(m))
}

// IsEnd reports whether m terminates the model chain.
func (m ModelID) IsEnd() bool {
	return m == modelEndZero || m == modelEnd
}

// portFields names the port-number field of every port-bearing model.
var portFields = map[ModelID]string{
	ModelFX:            "FX_Port_Number",
	ModelFXConfig:      "FXconfig_Port_Number",
	ModelGSSplit:       "GS_Split_Port_Number",
	ModelGSConfig:      "GSconfig_Port_Number",
	ModelGSSingle:      "GS_Single_Port_Number",
	ModelFLEXnetDC:     "FN_Port_Number",
	ModelFLEXnetConfig: "FNconfig_Port_Number",
}

// stackingFields names the stacking-mode field of the inverter config models.
var stackingFields = map[ModelID]string{
	ModelFXConfig: "FXconfig_Stacking_Mode",
	ModelGSConfig: "GSconfig_Stacking_Mode",
}

// HasPort reports whether devices of model m carry a hardware port number.
func (m ModelID) HasPort() bool {
	_, ok := portFields[m]
	return ok
}
