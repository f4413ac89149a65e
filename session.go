package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/example/tinytrainer/core"
	"github.com/example/tinytrainer/hooks"
	"github.com/example/tinytrainer/render"
	"github.com/example/tinytrainer/sim"
	"github.com/example/tinytrainer/simulator"
	"github.com/example/tinytrainer/visual"
)

// Session owns one topology for the duration of an interactive run. All
// mutations go through HandleCommand on the session goroutine; the rest of
// the process only ever sees detached frames.
type Session struct {
	cfg    *Config
	topo   *core.Topology
	engine *sim.Engine
	stats  *SessionStats
	broker *hooks.Broker

	view     render.View
	activity int

	id  string
	seq int64

	visualizer visual.Visualizer
	runner     *simulator.Runner[visual.ControlCommand, *SimulationFrame]
}

// NewSession builds a session from config, wiring the command loop and the
// visual bridge to the given visualizer.
func NewSession(cfg *Config, viz visual.Visualizer, broker *hooks.Broker) *Session {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	s := &Session{
		cfg:        cfg,
		topo:       core.NewDefaultTopology(),
		engine:     sim.NewEngine(rng, cfg.TickOptions()),
		stats:      &SessionStats{},
		broker:     broker,
		view:       render.ParseView(cfg.View),
		activity:   cfg.ActivityLevel,
		id:         uuid.NewString(),
		visualizer: viz,
	}

	loop := simulator.NewCommandLoop[visual.ControlCommand](viz, simulator.CommandHandlerFunc[visual.ControlCommand](s.HandleCommand))
	bridge := simulator.NewVisualBridge[*SimulationFrame](viz.IsHeadless(), func(frame *SimulationFrame) {
		viz.PublishFrame(frame)
	})
	s.runner = simulator.NewRunner[visual.ControlCommand, *SimulationFrame](loop, bridge)

	return s
}

// Topology exposes the owned topology for read access in tests.
func (s *Session) Topology() *core.Topology {
	return s.topo
}

// Stats returns the session counters.
func (s *Session) Stats() *SessionStats {
	return s.stats
}

// Frame builds a read-only snapshot of the current state.
func (s *Session) Frame() *SimulationFrame {
	s.seq++
	frame := buildFrame(s.topo, s.view)
	frame.SessionID = s.id
	frame.Seq = s.seq
	frame.ActivityLevel = s.activity
	frame.Stats = s.stats.Clone()
	return frame
}

// HandleCommand applies one control command. It always reports that the
// session should keep running: invalid commands degrade to no-ops.
func (s *Session) HandleCommand(cmd visual.ControlCommand) bool {
	switch cmd.Type {
	case visual.CommandTick:
		s.tick()
	case visual.CommandReset:
		s.reset()
	case visual.CommandAssignRole:
		s.assignRole(cmd.Node, cmd.Role)
	case visual.CommandActivate:
		s.activate(cmd.Node)
	case visual.CommandClearFault:
		s.clearFault(cmd.Node)
	case visual.CommandSetView:
		s.view = render.ParseView(cmd.View)
	case visual.CommandSetActivity:
		s.setActivity(cmd.ActivityLevel)
	case visual.CommandMoveNode:
		s.moveNode(cmd.Node, cmd.X, cmd.Y)
	case visual.CommandNone:
	default:
		GetLogger().Warnf("Ignoring unknown command %q", cmd.Type)
	}
	return true
}

func (s *Session) tick() {
	res := s.engine.Tick(s.topo, s.activity)
	s.stats.Ticks++
	if res.FaultedNode != "" {
		s.stats.FaultsInjected++
		if n, ok := s.topo.Node(res.FaultedNode); ok {
			GetLogger().Infof("Fault injected on %s: %s", n.Name, res.FaultCode)
			s.broker.EmitFault(&hooks.FaultContext{Node: n, FaultCode: res.FaultCode})
		}
	}
	for _, name := range res.RecoveredNodes {
		s.stats.AutoRecoveries++
		if n, ok := s.topo.Node(name); ok {
			GetLogger().Debugf("Fault auto-recovered on %s", name)
			s.broker.EmitFaultCleared(&hooks.FaultContext{Node: n, Auto: true})
		}
	}
	s.broker.EmitTick(&hooks.TickContext{ActivityLevel: s.activity, ActiveCount: res.ActiveCount})
}

func (s *Session) reset() {
	s.topo.Reset()
	s.id = uuid.NewString()
	s.stats.Resets++
	s.broker.EmitReset()
	GetLogger().Infof("Topology reset, new session %s", s.id)
}

func (s *Session) assignRole(name, role string) {
	if !validRole(role) {
		GetLogger().Warnf("Rejecting unknown role %q for node %s", role, name)
		return
	}
	n, ok := s.topo.Node(name)
	if !ok {
		GetLogger().Warnf("assign_role: no such node %q", name)
		return
	}
	from := n.State
	sim.AssignRole(s.topo, name, role)
	s.stats.RoleChanges++
	s.broker.EmitTransition(&hooks.TransitionContext{Node: n, From: from, To: n.State, Role: role})
}

func (s *Session) activate(name string) {
	n, ok := s.topo.Node(name)
	if !ok {
		GetLogger().Warnf("activate: no such node %q", name)
		return
	}
	from := n.State
	sim.Activate(s.topo, name)
	if from != n.State {
		s.stats.Activations++
		s.broker.EmitTransition(&hooks.TransitionContext{Node: n, From: from, To: n.State, Role: n.Role})
	}
}

func (s *Session) clearFault(name string) {
	n, ok := s.topo.Node(name)
	if !ok {
		GetLogger().Warnf("clear_fault: no such node %q", name)
		return
	}
	if n.State != core.StateFault {
		return
	}
	from := n.State
	sim.ClearFault(s.topo, name)
	s.stats.FaultsCleared++
	s.broker.EmitFaultCleared(&hooks.FaultContext{Node: n})
	s.broker.EmitTransition(&hooks.TransitionContext{Node: n, From: from, To: n.State, Role: n.Role})
}

func (s *Session) setActivity(level int) {
	if level < 1 {
		level = 1
	}
	if level > MaxActivityLevel {
		level = MaxActivityLevel
	}
	s.activity = level
}

// moveNode applies a drag from the canvas. Display coordinates are the only
// node fields the presentation layer may write.
func (s *Session) moveNode(name string, x, y float64) {
	n, ok := s.topo.Node(name)
	if !ok {
		GetLogger().Warnf("move_node: no such node %q", name)
		return
	}
	n.X = x
	n.Y = y
}

func validRole(role string) bool {
	for _, r := range core.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Run drives the interactive loop: publish a frame, block for the next
// command, apply everything pending, repeat. Returns when ctx is cancelled.
func (s *Session) Run(ctx context.Context) {
	s.runner.PublishFrame(s.Frame())
	for ctx.Err() == nil {
		if !s.runner.WaitForCommand(ctx) {
			break
		}
		if !s.runner.DrainPendingCommands() {
			break
		}
		if ctx.Err() != nil {
			break
		}
		s.runner.PublishFrame(s.Frame())
	}
	GetLogger().Infof("Session loop stopped")
}

// RunHeadless executes a fixed number of ticks without a UI and returns the
// final stats.
func (s *Session) RunHeadless(ticks int) *SessionStats {
	for i := 0; i < ticks; i++ {
		s.HandleCommand(visual.ControlCommand{Type: visual.CommandTick})
	}
	return s.stats
}
