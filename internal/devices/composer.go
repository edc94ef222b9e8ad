package devices

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KevinKickass/SunSpecBridge/internal/sunspec"
	"github.com/KevinKickass/SunSpecBridge/internal/types"
	"go.uber.org/zap"
)

// Watch lists per node kind. These are the registers a short poll refreshes.
var (
	controllerRegisters = []string{
		"OutBack_Load_Grid_Transfer_Threshold", "OutBack_Temp_Batt",
		"OB_Set_Sell_Voltage", "OB_Set_Radian_Inverter_Sell_Current_Limit",
		"OB_Set_Inverter_Charger_Current_Limit", "OB_Set_Inverter_AC1_Current_Limit",
		"OB_Set_Inverter_AC2_Current_Limit",
	}
	fxRegisters = []string{
		"FX_Inverter_Output_Current", "FX_Inverter_Charge_Current",
		"FX_Inverter_Buy_Current", "FX_Inverter_Sell_Current",
		"FX_AC_Output_Voltage", "FX_AC_Input_State",
		"FXconfig_AC_Input_Type", "FXconfig_Grid_AC_Input_Current_Limit",
		"FXconfig_Gen_AC_Input_Current_Limit", "FXconfig_Charger_AC_Input_Current_Limit",
		"FXconfig_Charger_Operating_Mode", "FXconfig_Sell_Volts",
	}
	gsSplitRegisters = []string{
		"GS_Split_L1_Inverter_Output_Current", "GS_Split_L1_Inverter_Charge_Current",
		"GS_Split_L1_Inverter_Buy_Current", "GS_Split_L1_Inverter_Sell_Current",
		"GS_Split_L1_Grid_Input_AC_Voltage", "GS_Split_L2_Inverter_Output_Current",
		"GS_Split_L2_Inverter_Charge_Current", "GS_Split_L2_Inverter_Buy_Current",
		"GS_Split_L2_Inverter_Sell_Current", "GS_Split_AC_Input_Selection",
		"GS_Split_AC_Input_State", "GSconfig_Grid_AC_Input_Current_Limit",
		"GSconfig_Gen_AC_Input_Current_Limit", "GSconfig_Charger_AC_Input_Current_Limit",
		"GSconfig_Charger_Operating_Mode", "GSconfig_Sell_Volts",
	}
	gsSingleRegisters = []string{
		"GS_Single_Inverter_Output_Current", "GS_Single_Inverter_Charge_Current",
		"GS_Single_Inverter_Buy_Current", "GS_Single_Inverter_Sell_Current",
		"GS_Single_Grid_Input_AC_Voltage", "GS_Single_Inverter_Operating_mode",
		"GS_Single_AC_Input_Selection", "GS_Single_AC_Input_State",
		"GSconfig_Grid_AC_Input_Current_Limit", "GSconfig_Gen_AC_Input_Current_Limit",
		"GSconfig_Charger_AC_Input_Current_Limit", "GSconfig_Charger_Operating_Mode",
		"GSconfig_Sell_Volts",
	}
	flexnetRegisters = []string{
		"FN_Shunt_A_Current", "FN_Shunt_B_Current",
		"FN_Shunt_C_Current", "FN_Input_kW",
		"FN_Output_kW", "FN_Net_kW",
		"FN_State_Of_Charge",
	}
	inverterRegisters = []string{
		"I_AC_Power", "I_DC_Current",
		"I_DC_Voltage", "I_DC_Power",
	}
)

var (
	controllerCommands = []types.WritableRegister{
		{Name: "OutBack_Load_Grid_Transfer_Threshold", UOM: int(sunspec.UOMKilowatt)},
		{Name: "OB_Inverter_AC_Drop_Use", UOM: int(sunspec.UOMIndex)},
		{Name: "OB_Set_Inverter_Mode", UOM: int(sunspec.UOMIndex)},
		{Name: "OB_Grid_Tie_Mode", UOM: int(sunspec.UOMIndex)},
		{Name: "OB_Set_Inverter_Charger_Mode", UOM: int(sunspec.UOMIndex)},
		{Name: "OB_Set_Sell_Voltage", UOM: int(sunspec.UOMVolt)},
		{Name: "OB_Set_Radian_Inverter_Sell_Current_Limit", UOM: int(sunspec.UOMAmpere)},
		{Name: "OB_Set_Inverter_Charger_Current_Limit", UOM: int(sunspec.UOMAmpere)},
		{Name: "OB_Set_Inverter_AC1_Current_Limit", UOM: int(sunspec.UOMAmpere)},
		{Name: "OB_Set_Inverter_AC2_Current_Limit", UOM: int(sunspec.UOMAmpere)},
	}
	fxCommands = []types.WritableRegister{
		{Name: "FXconfig_AC_Input_Type", UOM: int(sunspec.UOMIndex)},
		{Name: "FXconfig_Grid_AC_Input_Current_Limit", UOM: int(sunspec.UOMAmpere)},
		{Name: "FXconfig_Gen_AC_Input_Current_Limit", UOM: int(sunspec.UOMAmpere)},
		{Name: "FXconfig_Charger_AC_Input_Current_Limit", UOM: int(sunspec.UOMAmpere)},
		{Name: "FXconfig_Charger_Operating_Mode", UOM: int(sunspec.UOMIndex)},
		{Name: "FXconfig_Sell_Volts", UOM: int(sunspec.UOMVolt)},
	}
	gsCommands = []types.WritableRegister{
		{Name: "GSconfig_Grid_AC_Input_Current_Limit", UOM: int(sunspec.UOMAmpere)},
		{Name: "GSconfig_Gen_AC_Input_Current_Limit", UOM: int(sunspec.UOMAmpere)},
		{Name: "GSconfig_Charger_AC_Input_Current_Limit", UOM: int(sunspec.UOMAmpere)},
		{Name: "GSconfig_Charger_Operating_Mode", UOM: int(sunspec.UOMIndex)},
		{Name: "GSconfig_Sell_Volts", UOM: int(sunspec.UOMVolt)},
	}
)

// Composer turns a discovered device list into the node inventory exposed to
// home-automation consumers.
type Composer struct {
	logger *zap.Logger
}

func NewComposer(logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{logger: logger}
}

var (
	// statusRegisters is the inverter watch list per status model.
	statusRegisters = map[sunspec.ModelID][]string{
		sunspec.ModelFX:       fxRegisters,
		sunspec.ModelGSSplit:  gsSplitRegisters,
		sunspec.ModelGSSingle: gsSingleRegisters,
	}
	// configCommands is the inverter command table per config model.
	configCommands = map[sunspec.ModelID][]types.WritableRegister{
		sunspec.ModelFXConfig: fxCommands,
		sunspec.ModelGSConfig: gsCommands,
	}
)

// Compose builds the inventory. serialID becomes the controller address.
// Without a known product family no inverter can be enumerated, so the
// controller-only inventory comes back together with ErrUnknownFamily.
func (c *Composer) Compose(serialID string, dep sunspec.Deployment, devices []sunspec.Device) (types.Inventory, error) {
	inv := types.Inventory{
		SerialID: serialID,
		Controller: types.Node{
			Address:   serialID,
			Name:      dep.ControllerName(),
			Kind:      types.NodeController,
			Model:     uint16(sunspec.ModelOutBack),
			Registers: append([]string(nil), controllerRegisters...),
			Commands:  append([]types.WritableRegister(nil), controllerCommands...),
		},
		Nodes: make([]types.Node, 0),
	}

	configModel, err := dep.ConfigModel()
	if err != nil {
		return inv, fmt.Errorf("failed to compose inventory for %s: %w", serialID, err)
	}
	statusModel, err := dep.StatusModel()
	if err != nil {
		return inv, fmt.Errorf("failed to compose inventory for %s: %w", serialID, err)
	}

	family := string(dep.Family)
	for _, d := range devices {
		switch d.Model {
		case configModel:
			node := c.inverterNode(family, statusModel, d)
			c.logger.Info("Inverter node composed",
				zap.String("address", node.Address),
				zap.String("name", node.Name),
				zap.String("role", node.Role))
			inv.Nodes = append(inv.Nodes, node)

		case dep.AddonConfigModel():
			inv.Nodes = append(inv.Nodes, types.Node{
				Address:   strings.ToLower(family + "_flexnet_" + portLabel(d.Port)),
				Name:      "FLEXnet-DC",
				Kind:      types.NodeFLEXnet,
				Model:     uint16(d.Model),
				Port:      d.Port,
				Registers: append([]string(nil), flexnetRegisters...),
			})

		case dep.InverterModel():
			inv.Nodes = append(inv.Nodes, types.Node{
				Address:   "sunspec_" + strconv.Itoa(int(d.Model)),
				Name:      fmt.Sprintf("SunSpec %s Phase Inverter", dep.Phase),
				Kind:      types.NodeSunSpec,
				Model:     uint16(d.Model),
				Registers: append([]string(nil), inverterRegisters...),
			})
		}
	}

	c.logger.Info("Inventory composed",
		zap.String("serial_id", serialID),
		zap.Int("nodes", len(inv.Nodes)+1))
	return inv, nil
}

func (c *Composer) inverterNode(family string, statusModel sunspec.ModelID, d sunspec.Device) types.Node {
	mode := 0
	if d.StackingMode != nil {
		mode = *d.StackingMode
	}
	role := d.Role()
	if role == sunspec.RoleNone {
		role = sunspec.RoleSlave
	}

	return types.Node{
		Address:   strings.ToLower(fmt.Sprintf("%s_inv_%d_%s", family, mode, portLabel(d.Port))),
		Name:      fmt.Sprintf("%s Inverter - %s - Port %s", family, role, portLabel(d.Port)),
		Kind:      types.NodeInverter,
		Model:     uint16(d.Model),
		Port:      d.Port,
		Role:      string(role),
		Registers: append([]string(nil), statusRegisters[statusModel]...),
		Commands:  append([]types.WritableRegister(nil), configCommands[d.Model]...),
	}
}

func portLabel(port *int) string {
	if port == nil {
		return "0"
	}
	return strconv.Itoa(*port)
}

// CommandUOM returns the UOM a node applies when writing register, if the node
// accepts writes for it.
func CommandUOM(node types.Node, register string) (sunspec.UOM, bool) {
	for _, cmd := range node.Commands {
		if cmd.Name == register {
			return sunspec.UOM(cmd.UOM), true
		}
	}
	return 0, false
}
