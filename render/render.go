// Package render maps node and edge state to visual attributes for the two
// presentation modes of the trainer UI. Everything here is a pure function of
// the core read model; no rendering state is kept.
package render

import (
	"fmt"
	"strings"

	"github.com/example/tinytrainer/core"
)

// View selects a presentation mode.
type View string

const (
	// ViewConcept is the friendly, role-first mode for newcomers.
	ViewConcept View = "Concept"
	// ViewPLC is the diagnostics-flavored mode mimicking industrial
	// controller displays: node IDs, states and bus tags up front.
	ViewPLC View = "PLC"
)

// ParseView normalizes a view name, defaulting to Concept.
func ParseView(s string) View {
	if strings.EqualFold(s, string(ViewPLC)) {
		return ViewPLC
	}
	return ViewConcept
}

// Style carries the canvas colors for one node.
type Style struct {
	Color     string `json:"color"`
	FillColor string `json:"fillcolor"`
	FontColor string `json:"fontcolor"`
}

// StyleFor picks node colors by lifecycle state. FAULT always wins.
func StyleFor(n *core.Node) Style {
	switch {
	case n.State == core.StateFault:
		return Style{Color: "#8B0000", FillColor: "#FFE0E0", FontColor: "red"}
	case n.State == core.StateActive && n.Kind == core.KindCore:
		return Style{Color: "#00FF00", FillColor: "#90EE90", FontColor: "black"}
	case n.State == core.StateActive:
		return Style{Color: "#00CED1", FillColor: "#AFEEEE", FontColor: "black"}
	case n.State == core.StateConfigured:
		return Style{Color: "#FFD700", FillColor: "#FFFACD", FontColor: "black"}
	default:
		return Style{Color: "#808080", FillColor: "#D3D3D3", FontColor: "black"}
	}
}

// LabelFor builds the multi-line diagram label for a node.
func LabelFor(n *core.Node, view View) string {
	if view == ViewConcept {
		switch n.Kind {
		case core.KindMod:
			return fmt.Sprintf("%s\n%s", n.Kind, n.Role)
		case core.KindCore:
			return "tinyCore\n(brains)"
		case core.KindHub:
			return "tinyHub\n(more ports)"
		case core.KindSwitch:
			return "tinySwitch\n(buttons)"
		default:
			return n.Name
		}
	}
	return strings.Join([]string{
		fmt.Sprintf("%s  NODE %d", n.Kind, n.NodeID),
		"ROLE: " + n.Role,
		"STATE: " + string(n.State),
		"BUS: " + n.Bus,
	}, "\n")
}

// Panel renders the OLED preview text for a node.
func Panel(n *core.Node, view View) string {
	if view == ViewConcept {
		if n.State == core.StateFault {
			return fmt.Sprintf("%s\n\n⚠️ Oops!\nSomething went wrong.", n.Name)
		}
		return fmt.Sprintf("%s\n\nI am:\n%s\n\nStatus:\n%s", n.Name, n.Role, n.State)
	}

	hb := "OK"
	if !n.Heartbeat {
		hb = "NO"
	}
	comm := "IDLE"
	if n.BusActivity {
		comm = "TX/RX"
	}
	lines := []string{
		fmt.Sprintf("NODE %d", n.NodeID),
		fmt.Sprintf("KIND: %s", n.Kind),
		fmt.Sprintf("BUS : %s", n.Bus),
		fmt.Sprintf("ROLE: %s", n.Role),
		fmt.Sprintf("STATE:%s", n.State),
		fmt.Sprintf("HB  : %s", hb),
		fmt.Sprintf("COMM: %s", comm),
	}
	if n.State == core.StateFault {
		code := n.FaultCode
		if code == "" {
			code = "E??"
		}
		lines = append(lines, "FC  : "+code)
	}
	return strings.Join(lines, "\n")
}

// NodeSize returns the octagon radius used by the canvas for a view.
// PLC labels carry more text and need the bigger shape.
func NodeSize(view View) int {
	if view == ViewPLC {
		return 70
	}
	return 52
}

// EdgeStroke returns line width and color for an edge depending on whether
// either endpoint saw bus activity this tick.
func EdgeStroke(active bool) (width int, color string) {
	if active {
		return 5, "#00BFFF"
	}
	return 3, "#228B22"
}
