package hooks

import (
	"testing"

	"github.com/example/tinytrainer/core"
)

func TestBrokerEmitsToRegisteredBundle(t *testing.T) {
	broker := NewBroker()

	var ticks, faults, cleared, transitions, resets int
	broker.RegisterBundle(ListenerDescriptor{
		Name:     "test-counters",
		Category: CategoryInstrumentation,
	}, Bundle{
		OnTick:         []TickHook{func(ctx *TickContext) { ticks++ }},
		OnFault:        []FaultHook{func(ctx *FaultContext) { faults++ }},
		OnFaultCleared: []FaultHook{func(ctx *FaultContext) { cleared++ }},
		OnTransition:   []TransitionHook{func(ctx *TransitionContext) { transitions++ }},
		OnReset:        []ResetHook{func() { resets++ }},
	})

	n := core.NewNode("tinyMod_A", core.KindMod)
	broker.EmitTick(&TickContext{ActivityLevel: 3, ActiveCount: 3})
	broker.EmitFault(&FaultContext{Node: n, FaultCode: "E01_WATCHDOG"})
	broker.EmitFaultCleared(&FaultContext{Node: n, Auto: true})
	broker.EmitTransition(&TransitionContext{Node: n, From: core.StateUnassigned, To: core.StateConfigured})
	broker.EmitReset()

	if ticks != 1 || faults != 1 || cleared != 1 || transitions != 1 || resets != 1 {
		t.Fatalf("hooks fired %d/%d/%d/%d/%d times, want once each", ticks, faults, cleared, transitions, resets)
	}

	listeners := broker.Listeners()
	if len(listeners) != 1 || listeners[0].Name != "test-counters" {
		t.Fatalf("unexpected listeners: %+v", listeners)
	}
}

func TestBrokerNilSafe(t *testing.T) {
	var broker *Broker
	broker.EmitTick(&TickContext{})
	broker.EmitFault(&FaultContext{})
	broker.EmitReset()
	if got := broker.Listeners(); got != nil {
		t.Fatalf("expected nil listeners, got %+v", got)
	}
}

func TestBrokerMultipleBundles(t *testing.T) {
	broker := NewBroker()

	order := make([]string, 0, 2)
	broker.RegisterBundle(ListenerDescriptor{Name: "first"}, Bundle{
		OnTick: []TickHook{func(ctx *TickContext) { order = append(order, "first") }},
	})
	broker.RegisterBundle(ListenerDescriptor{Name: "second"}, Bundle{
		OnTick: []TickHook{func(ctx *TickContext) { order = append(order, "second") }},
	})

	broker.EmitTick(&TickContext{})
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("hooks ran out of registration order: %v", order)
	}
}
