package sim

import "github.com/example/tinytrainer/core"

// Lifecycle transitions triggered from the UI. None of them return errors:
// every operation is total over well-formed input and degrades to a no-op
// when its precondition does not hold. The boolean reports whether the named
// node exists; a false return is a caller bug, not a domain failure.

// AssignRole sets the node's role unconditionally and advances its state:
// assigning UNASSIGNED is a hard reset back to state UNASSIGNED, any other
// role promotes an UNASSIGNED node to CONFIGURED and leaves every other
// state untouched. Reassignment never downgrades ACTIVE or FAULT.
func AssignRole(t *core.Topology, name, role string) bool {
	n, ok := t.Node(name)
	if !ok {
		return false
	}
	n.Role = role
	if role == core.RoleUnassigned {
		n.State = core.StateUnassigned
	} else if n.State == core.StateUnassigned {
		n.State = core.StateConfigured
	}
	return true
}

// Activate moves a node to ACTIVE. Faulted nodes and nodes without an
// assigned role are silently skipped.
func Activate(t *core.Topology, name string) bool {
	n, ok := t.Node(name)
	if !ok {
		return false
	}
	if n.State != core.StateFault && n.Role != core.RoleUnassigned {
		n.State = core.StateActive
	}
	return true
}

// ClearFault acknowledges a fault PLC-style: the fault code is wiped and the
// node falls back to CONFIGURED, or to UNASSIGNED when it has no role. This
// is the only sanctioned exit from FAULT under explicit user control.
func ClearFault(t *core.Topology, name string) bool {
	n, ok := t.Node(name)
	if !ok {
		return false
	}
	if n.State != core.StateFault {
		return true
	}
	n.FaultCode = ""
	if n.Role != core.RoleUnassigned {
		n.State = core.StateConfigured
	} else {
		n.State = core.StateUnassigned
	}
	return true
}
