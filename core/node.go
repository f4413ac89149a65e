package core

// NodeKind represents the hardware category of a simulated device.
type NodeKind string

const (
	KindCore   NodeKind = "tinyCore"   // controller board - arbitrates the bus
	KindMod    NodeKind = "tinyMod"    // pluggable function module
	KindHub    NodeKind = "tinyHub"    // port expander
	KindSwitch NodeKind = "tinySwitch" // operator input panel
)

// LifecycleState represents where a node sits in its commissioning lifecycle.
type LifecycleState string

const (
	StateUnassigned LifecycleState = "UNASSIGNED"
	StateConfigured LifecycleState = "CONFIGURED"
	StateActive     LifecycleState = "ACTIVE"
	StateFault      LifecycleState = "FAULT"
)

// RoleUnassigned is the default role of a node that has not been given a function.
const RoleUnassigned = "UNASSIGNED"

// Roles lists the functions selectable from the role pickers in the UI.
var Roles = []string{RoleUnassigned, "DC motor", "vision", "6 DOF", "ELEVATION"}

// States lists all reachable lifecycle states.
var States = []LifecycleState{StateUnassigned, StateConfigured, StateActive, StateFault}

// FaultCodes are the diagnostic codes the simulation can raise on a tinyMod.
var FaultCodes = []string{"E01_WATCHDOG", "E12_BUS_TIMEOUT", "E33_OVERCURRENT_SIM"}

// DefaultBus is the communication medium tag for every demo node.
const DefaultBus = "CAN"

// Node represents one simulated device on the trainer network.
type Node struct {
	Name        string
	Kind        NodeKind
	Role        string
	State       LifecycleState
	Bus         string
	NodeID      int
	Heartbeat   bool
	BusActivity bool
	FaultCode   string
	Notes       string

	// Display coordinates. Mutated only by the presentation layer's
	// drag interaction, never by simulation or lifecycle code.
	X, Y float64
}

// NewNode constructs a node with default attribute values.
func NewNode(name string, kind NodeKind) *Node {
	return &Node{
		Name:      name,
		Kind:      kind,
		Role:      RoleUnassigned,
		State:     StateUnassigned,
		Bus:       DefaultBus,
		Heartbeat: true,
	}
}

// Clone returns an independent copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	return &c
}

// Faulted reports whether the node currently holds a fault.
func (n *Node) Faulted() bool {
	return n.State == StateFault
}

// ActivityEligible reports whether the node's kind participates in
// bus-activity simulation. The switch panel only sources inputs and is
// excluded.
func (n *Node) ActivityEligible() bool {
	switch n.Kind {
	case KindCore, KindMod, KindHub:
		return true
	default:
		return false
	}
}
