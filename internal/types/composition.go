package types

type NodeKind string

const (
	NodeController NodeKind = "controller"
	NodeInverter   NodeKind = "inverter"
	NodeFLEXnet    NodeKind = "flexnet"
	NodeSunSpec    NodeKind = "sunspec_inverter"
)

// Node is one addressable unit exposed to home-automation consumers.
type Node struct {
	Address   string             `json:"address"`
	Name      string             `json:"name"`
	Kind      NodeKind           `json:"kind"`
	Model     uint16             `json:"model"`
	Port      *int               `json:"port,omitempty"`
	Role      string             `json:"role,omitempty"`
	Registers []string           `json:"registers"`
	Commands  []WritableRegister `json:"commands,omitempty"`
}

// WritableRegister is a register a node accepts writes for, with the UOM its
// values are scaled by.
type WritableRegister struct {
	Name string `json:"name"`
	UOM  int    `json:"uom"`
}

// Inventory is the full node list of a deployment.
type Inventory struct {
	SerialID   string `json:"serial_id"`
	Controller Node   `json:"controller"`
	Nodes      []Node `json:"nodes"`
}

// All returns the controller followed by every other node.
func (i Inventory) All() []Node {
	return append([]Node{i.Controller}, i.Nodes...)
}
