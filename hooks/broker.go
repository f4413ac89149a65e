// Package hooks lets instrumentation subscribe to simulation and lifecycle
// events without the session knowing who is listening. Stats counters,
// Prometheus metrics and log taps all hang off the same broker.
package hooks

import (
	"sync"

	"github.com/example/tinytrainer/core"
)

// ListenerCategory represents the high-level role of a listener.
type ListenerCategory string

const (
	// CategoryInstrumentation covers metrics, stats, and diagnostics.
	CategoryInstrumentation ListenerCategory = "instrumentation"
	// CategoryVisualization covers UI and monitoring listeners.
	CategoryVisualization ListenerCategory = "visualization"
)

// ListenerDescriptor describes a listener registered with the broker.
type ListenerDescriptor struct {
	Name        string
	Category    ListenerCategory
	Description string
}

// TickContext carries the outcome of one simulation tick.
type TickContext struct {
	ActivityLevel int
	ActiveCount   int
}

// FaultContext carries information about a fault being raised or leaving.
type FaultContext struct {
	Node      *core.Node
	FaultCode string
	// Auto is set when the tick's recovery sweep cleared the fault,
	// as opposed to an explicit user acknowledgment.
	Auto bool
}

// TransitionContext carries a lifecycle transition triggered from the UI.
type TransitionContext struct {
	Node *core.Node
	From core.LifecycleState
	To   core.LifecycleState
	Role string
}

// Hook signatures. Handlers must not retain the context structs.
type (
	TickHook       func(ctx *TickContext)
	FaultHook      func(ctx *FaultContext)
	TransitionHook func(ctx *TransitionContext)
	ResetHook      func()
)

// Bundle groups the hook handlers belonging to one listener.
type Bundle struct {
	OnTick         []TickHook
	OnFault        []FaultHook
	OnFaultCleared []FaultHook
	OnTransition   []TransitionHook
	OnReset        []ResetHook
}

// Broker coordinates hook registration and triggering.
type Broker struct {
	mu sync.RWMutex

	tickHooks       []TickHook
	faultHooks      []FaultHook
	faultClearHooks []FaultHook
	transitionHooks []TransitionHook
	resetHooks      []ResetHook

	listeners map[string]ListenerDescriptor
}

// NewBroker creates an empty broker instance.
func NewBroker() *Broker {
	return &Broker{listeners: make(map[string]ListenerDescriptor)}
}

// RegisterBundle installs all handlers of a listener at once.
func (b *Broker) RegisterBundle(desc ListenerDescriptor, bundle Bundle) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tickHooks = append(b.tickHooks, bundle.OnTick...)
	b.faultHooks = append(b.faultHooks, bundle.OnFault...)
	b.faultClearHooks = append(b.faultClearHooks, bundle.OnFaultCleared...)
	b.transitionHooks = append(b.transitionHooks, bundle.OnTransition...)
	b.resetHooks = append(b.resetHooks, bundle.OnReset...)
	if desc.Name != "" {
		b.listeners[desc.Name] = desc
	}
}

// Listeners returns the descriptors of every registered listener.
func (b *Broker) Listeners() []ListenerDescriptor {
	if b == nil {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]ListenerDescriptor, 0, len(b.listeners))
	for _, d := range b.listeners {
		out = append(out, d)
	}
	return out
}

// EmitTick notifies tick listeners.
func (b *Broker) EmitTick(ctx *TickContext) {
	if b == nil {
		return
	}
	b.mu.RLock()
	hooks := b.tickHooks
	b.mu.RUnlock()
	for _, h := range hooks {
		h(ctx)
	}
}

// EmitFault notifies listeners of a newly injected fault.
func (b *Broker) EmitFault(ctx *FaultContext) {
	if b == nil {
		return
	}
	b.mu.RLock()
	hooks := b.faultHooks
	b.mu.RUnlock()
	for _, h := range hooks {
		h(ctx)
	}
}

// EmitFaultCleared notifies listeners of a fault leaving, whether by
// explicit acknowledgment or by the auto-recovery sweep.
func (b *Broker) EmitFaultCleared(ctx *FaultContext) {
	if b == nil {
		return
	}
	b.mu.RLock()
	hooks := b.faultClearHooks
	b.mu.RUnlock()
	for _, h := range hooks {
		h(ctx)
	}
}

// EmitTransition notifies listeners of a user-triggered lifecycle transition.
func (b *Broker) EmitTransition(ctx *TransitionContext) {
	if b == nil {
		return
	}
	b.mu.RLock()
	hooks := b.transitionHooks
	b.mu.RUnlock()
	for _, h := range hooks {
		h(ctx)
	}
}

// EmitReset notifies listeners that the topology was rebuilt.
func (b *Broker) EmitReset() {
	if b == nil {
		return
	}
	b.mu.RLock()
	hooks := b.resetHooks
	b.mu.RUnlock()
	for _, h := range hooks {
		h()
	}
}
