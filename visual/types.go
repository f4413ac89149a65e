package visual

import "context"

// ControlCommandType represents types of control instructions from UI.
type ControlCommandType string

const (
	CommandNone        ControlCommandType = "none"
	CommandTick        ControlCommandType = "tick"
	CommandReset       ControlCommandType = "reset"
	CommandAssignRole  ControlCommandType = "assign_role"
	CommandActivate    ControlCommandType = "activate"
	CommandClearFault  ControlCommandType = "clear_fault"
	CommandSetView     ControlCommandType = "set_view"
	CommandSetActivity ControlCommandType = "set_activity"
	CommandMoveNode    ControlCommandType = "move_node"
)

// ControlCommand captures a control instruction for the trainer session.
type ControlCommand struct {
	Type ControlCommandType

	// Node names the target of node-scoped commands.
	Node string
	// Role is the new role for assign_role.
	Role string
	// View is the presentation mode for set_view.
	View string
	// ActivityLevel is the requested bus-activity level for set_activity.
	ActivityLevel int
	// X, Y carry the new display coordinates for move_node.
	X, Y float64
}

// Visualizer defines methods for visualization implementations.
type Visualizer interface {
	SetHeadless(headless bool)
	IsHeadless() bool
	PublishFrame(frame any)
	NextCommand() (ControlCommand, bool)
	WaitCommand(ctx context.Context) (ControlCommand, bool)
}

// NullVisualizer is a no-op implementation used for headless mode.
type NullVisualizer struct {
	headless bool
}

// NewNullVisualizer creates a new NullVisualizer.
func NewNullVisualizer() *NullVisualizer {
	return &NullVisualizer{headless: true}
}

func (n *NullVisualizer) SetHeadless(headless bool) {
	n.headless = headless
}

func (n *NullVisualizer) IsHeadless() bool {
	return n.headless
}

func (n *NullVisualizer) PublishFrame(frame any) {}

func (n *NullVisualizer) NextCommand() (ControlCommand, bool) {
	return ControlCommand{Type: CommandNone}, false
}

func (n *NullVisualizer) WaitCommand(ctx context.Context) (ControlCommand, bool) {
	<-ctx.Done()
	return ControlCommand{Type: CommandNone}, false
}
