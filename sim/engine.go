package sim

import (
	"math/rand"

	"github.com/example/tinytrainer/core"
)

// Rand is the source of randomness the engine draws from. *math/rand.Rand
// satisfies it; tests substitute a scripted implementation so every
// probabilistic branch can be forced.
type Rand interface {
	Float64() float64
	Intn(n int) int
	Perm(n int) []int
}

var _ Rand = (*rand.Rand)(nil)

// Default probabilities per tick.
const (
	DefaultFaultRate    = 0.05
	DefaultRecoveryRate = 0.08
)

// Options tunes the probabilistic branches of a tick.
type Options struct {
	// FaultRate is the per-tick probability of faulting one tinyMod.
	FaultRate float64
	// RecoveryRate is the per-tick probability that every faulted node
	// silently recovers. Only drawn when AutoRecover is set.
	RecoveryRate float64
	// AutoRecover enables the silent recovery branch. Off by default:
	// leaving FAULT normally requires an explicit ClearFault acknowledgment.
	AutoRecover bool
}

// DefaultOptions returns the standard tick tuning.
func DefaultOptions() Options {
	return Options{
		FaultRate:    DefaultFaultRate,
		RecoveryRate: DefaultRecoveryRate,
	}
}

// TickResult reports what a single tick did, for stats and logging.
type TickResult struct {
	ActiveCount    int
	FaultedNode    string
	FaultCode      string
	RecoveredNodes []string
}

// Engine advances the simulated trainer network one tick at a time.
// It mutates the topology it is handed; it keeps no topology of its own.
type Engine struct {
	rng  Rand
	opts Options
}

// NewEngine creates an engine drawing from rng with the given options.
func NewEngine(rng Rand, opts Options) *Engine {
	return &Engine{rng: rng, opts: opts}
}

// Tick runs one synchronous simulation step:
// bus-activity reset and reselection, then fault injection, then the
// optional auto-recovery sweep. Step order is fixed; the fault and
// recovery draws are independent trials.
func (e *Engine) Tick(t *core.Topology, activityLevel int) TickResult {
	var res TickResult

	for _, n := range t.SortedNodes() {
		n.BusActivity = false
	}

	eligible := t.EligibleNodes()
	if len(eligible) > 0 {
		k := activityLevel
		if k > len(eligible) {
			k = len(eligible)
		}
		if k < 1 {
			k = 1
		}
		for _, idx := range e.rng.Perm(len(eligible))[:k] {
			eligible[idx].BusActivity = true
		}
		res.ActiveCount = k
	}

	if e.rng.Float64() < e.opts.FaultRate {
		if mods := t.NodesOfKind(core.KindMod); len(mods) > 0 {
			victim := mods[e.rng.Intn(len(mods))]
			victim.State = core.StateFault
			victim.FaultCode = core.FaultCodes[e.rng.Intn(len(core.FaultCodes))]
			res.FaultedNode = victim.Name
			res.FaultCode = victim.FaultCode
		}
	}

	if e.opts.AutoRecover && e.rng.Float64() < e.opts.RecoveryRate {
		for _, n := range t.SortedNodes() {
			if n.State == core.StateFault {
				n.State = core.StateActive
				n.FaultCode = ""
				res.RecoveredNodes = append(res.RecoveredNodes, n.Name)
			}
		}
	}

	return res
}
