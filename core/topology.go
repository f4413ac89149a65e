package core

import "sort"

// Edge is a directed, labeled connection between two named nodes.
// Edges are fixed at construction time; the trainer never rewires at runtime.
type Edge struct {
	Src   string
	Dst   string
	Label string
}

// Topology bundles the mutable node set with the fixed edge list for one
// interactive session. It is owned by exactly one caller at a time; nothing
// here is safe for concurrent mutation.
type Topology struct {
	Nodes map[string]*Node
	Edges []Edge
}

// NewDefaultTopology builds the fixed demo network: a tinyCore, five tinyMod
// boards, a tinyHub and a tinySwitch wired in the drone-kit star layout.
func NewDefaultTopology() *Topology {
	nodes := map[string]*Node{
		"tinyCore":   {Name: "tinyCore", Kind: KindCore, Role: "ARBITRATOR", State: StateActive, Bus: DefaultBus, NodeID: 1, Heartbeat: true, X: 200, Y: 250},
		"tinyMod_UI": {Name: "tinyMod_UI", Kind: KindMod, Role: "UI/CONFIG", State: StateActive, Bus: DefaultBus, NodeID: 2, Heartbeat: true, X: 400, Y: 100},
		"tinyMod_A":  {Name: "tinyMod_A", Kind: KindMod, Role: "DC motor", State: StateConfigured, Bus: DefaultBus, NodeID: 3, Heartbeat: true, X: 400, Y: 200},
		"tinyMod_B":  {Name: "tinyMod_B", Kind: KindMod, Role: "vision", State: StateConfigured, Bus: DefaultBus, NodeID: 4, Heartbeat: true, X: 400, Y: 300},
		"tinyMod_C":  {Name: "tinyMod_C", Kind: KindMod, Role: "6 DOF", State: StateConfigured, Bus: DefaultBus, NodeID: 5, Heartbeat: true, X: 400, Y: 400},
		"tinyMod_D":  {Name: "tinyMod_D", Kind: KindMod, Role: "ELEVATION", State: StateConfigured, Bus: DefaultBus, NodeID: 6, Heartbeat: true, X: 400, Y: 500},
		"tinyHub":    {Name: "tinyHub", Kind: KindHub, Role: "IO EXPAND", State: StateActive, Bus: DefaultBus, NodeID: 20, Heartbeat: true, X: 600, Y: 100},
		"tinySwitch": {Name: "tinySwitch", Kind: KindSwitch, Role: "HMI INPUTS", State: StateActive, Bus: DefaultBus, NodeID: 30, Heartbeat: true, X: 800, Y: 200},
	}
	edges := []Edge{
		{Src: "tinyCore", Dst: "tinyMod_UI", Label: "bus"},
		{Src: "tinyCore", Dst: "tinyMod_A", Label: "bus"},
		{Src: "tinyCore", Dst: "tinyMod_B", Label: "bus"},
		{Src: "tinyCore", Dst: "tinyMod_C", Label: "bus"},
		{Src: "tinyCore", Dst: "tinyMod_D", Label: "bus"},
		{Src: "tinyMod_UI", Dst: "tinyHub", Label: "bus"},
		{Src: "tinyHub", Dst: "tinySwitch", Label: "IO"},
		{Src: "tinyCore", Dst: "tinySwitch", Label: "inputs"},
	}
	return &Topology{Nodes: nodes, Edges: edges}
}

// Node returns the named node, or false when no such node exists.
func (t *Topology) Node(name string) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	n, ok := t.Nodes[name]
	return n, ok
}

// SortedNodes returns all nodes ordered by NodeID. Simulation code iterates
// this instead of the map so a seeded random source replays identically.
func (t *Topology) SortedNodes() []*Node {
	if t == nil {
		return nil
	}
	nodes := make([]*Node, 0, len(t.Nodes))
	for _, n := range t.Nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].NodeID < nodes[j].NodeID })
	return nodes
}

// NodesOfKind returns the nodes of the given kind, ordered by NodeID.
func (t *Topology) NodesOfKind(kind NodeKind) []*Node {
	var out []*Node
	for _, n := range t.SortedNodes() {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// EligibleNodes returns the nodes participating in bus-activity simulation,
// ordered by NodeID.
func (t *Topology) EligibleNodes() []*Node {
	var out []*Node
	for _, n := range t.SortedNodes() {
		if n.ActivityEligible() {
			out = append(out, n)
		}
	}
	return out
}

// Reset discards every mutation and restores the default topology in place.
func (t *Topology) Reset() {
	fresh := NewDefaultTopology()
	t.Nodes = fresh.Nodes
	t.Edges = fresh.Edges
}

// Clone returns a deep copy of the topology, used for read-only snapshots.
func (t *Topology) Clone() *Topology {
	if t == nil {
		return nil
	}
	nodes := make(map[string]*Node, len(t.Nodes))
	for name, n := range t.Nodes {
		nodes[name] = n.Clone()
	}
	edges := make([]Edge, len(t.Edges))
	copy(edges, t.Edges)
	return &Topology{Nodes: nodes, Edges: edges}
}
