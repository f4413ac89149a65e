// Package simulator provides the generic plumbing between an interactive
// session and its UI: a command loop that drains control instructions and a
// bridge that publishes frames when visualization is enabled.
package simulator

import "context"

// CommandSource provides control commands from an external producer.
type CommandSource[T any] interface {
	NextCommand() (T, bool)
	WaitCommand(context.Context) (T, bool)
}

// CommandHandler consumes control commands and reports whether processing
// should continue.
type CommandHandler[T any] interface {
	HandleCommand(T) bool
}

// CommandHandlerFunc adapts a function into a CommandHandler.
type CommandHandlerFunc[T any] func(T) bool

// HandleCommand calls the underlying function.
func (f CommandHandlerFunc[T]) HandleCommand(cmd T) bool {
	if f == nil {
		return true
	}
	return f(cmd)
}

// CommandLoop drains and dispatches control commands.
type CommandLoop[T any] struct {
	source  CommandSource[T]
	handler CommandHandler[T]
}

// NewCommandLoop creates a command loop with the given source and handler.
func NewCommandLoop[T any](source CommandSource[T], handler CommandHandler[T]) *CommandLoop[T] {
	return &CommandLoop[T]{source: source, handler: handler}
}

// DrainPending pulls all currently available commands from the source until
// exhaustion or handler termination.
func (c *CommandLoop[T]) DrainPending() bool {
	if c == nil || c.source == nil || c.handler == nil {
		return true
	}
	for {
		cmd, ok := c.source.NextCommand()
		if !ok {
			return true
		}
		if !c.handler.HandleCommand(cmd) {
			return false
		}
	}
}

// WaitAndHandle blocks until a command is available (or context cancellation)
// and dispatches it.
func (c *CommandLoop[T]) WaitAndHandle(ctx context.Context) bool {
	if c == nil || c.source == nil || c.handler == nil {
		return true
	}
	cmd, ok := c.source.WaitCommand(ctx)
	if !ok {
		return true
	}
	return c.handler.HandleCommand(cmd)
}

// VisualBridge coordinates optional frame publishing.
type VisualBridge[Frame any] struct {
	headless bool
	publish  func(Frame)
}

// NewVisualBridge constructs a bridge with headless flag and publish callback.
func NewVisualBridge[Frame any](headless bool, publish func(Frame)) *VisualBridge[Frame] {
	return &VisualBridge[Frame]{headless: headless, publish: publish}
}

// IsHeadless reports whether visualization output is disabled.
func (v *VisualBridge[Frame]) IsHeadless() bool {
	if v == nil {
		return true
	}
	return v.headless
}

// Publish emits a frame when visualization is enabled.
func (v *VisualBridge[Frame]) Publish(frame Frame) {
	if v == nil || v.publish == nil || v.headless {
		return
	}
	v.publish(frame)
}

// Runner glues command handling and frame publishing for a session loop.
type Runner[TCommand any, Frame any] struct {
	commandLoop *CommandLoop[TCommand]
	visual      *VisualBridge[Frame]
}

// NewRunner creates a new Runner instance.
func NewRunner[TCommand any, Frame any](loop *CommandLoop[TCommand], visual *VisualBridge[Frame]) *Runner[TCommand, Frame] {
	return &Runner[TCommand, Frame]{commandLoop: loop, visual: visual}
}

// DrainPendingCommands pulls all queued commands through the command loop.
func (r *Runner[TCommand, Frame]) DrainPendingCommands() bool {
	if r == nil || r.commandLoop == nil {
		return true
	}
	return r.commandLoop.DrainPending()
}

// WaitForCommand blocks on the command loop until a command arrives or the
// context is cancelled.
func (r *Runner[TCommand, Frame]) WaitForCommand(ctx context.Context) bool {
	if r == nil || r.commandLoop == nil {
		return true
	}
	return r.commandLoop.WaitAndHandle(ctx)
}

// PublishFrame emits a frame through the visual bridge.
func (r *Runner[TCommand, Frame]) PublishFrame(frame Frame) {
	if r == nil || r.visual == nil {
		return
	}
	r.visual.Publish(frame)
}

// VisualEnabled reports whether the visualization bridge is active.
func (r *Runner[TCommand, Frame]) VisualEnabled() bool {
	if r == nil || r.visual == nil {
		return false
	}
	return !r.visual.IsHeadless()
}
