package render

import (
	"strings"
	"testing"

	"github.com/example/tinytrainer/core"
)

func demoNode() *core.Node {
	n := core.NewNode("tinyMod_A", core.KindMod)
	n.NodeID = 3
	n.Role = "DC motor"
	n.State = core.StateConfigured
	return n
}

func TestStyleForFaultWinsOverEverything(t *testing.T) {
	n := demoNode()
	n.State = core.StateFault

	style := StyleFor(n)
	if style.Color != "#8B0000" || style.FontColor != "red" {
		t.Fatalf("fault style = %+v", style)
	}
}

func TestStyleForActiveCoreIsGreen(t *testing.T) {
	n := core.NewNode("tinyCore", core.KindCore)
	n.State = core.StateActive
	if got := StyleFor(n); got.Color != "#00FF00" {
		t.Fatalf("active core color = %q, want #00FF00", got.Color)
	}

	m := demoNode()
	m.State = core.StateActive
	if got := StyleFor(m); got.Color != "#00CED1" {
		t.Fatalf("active module color = %q, want #00CED1", got.Color)
	}
}

func TestStyleForStates(t *testing.T) {
	n := demoNode()
	n.State = core.StateConfigured
	if got := StyleFor(n); got.Color != "#FFD700" {
		t.Errorf("configured color = %q, want #FFD700", got.Color)
	}
	n.State = core.StateUnassigned
	if got := StyleFor(n); got.Color != "#808080" {
		t.Errorf("unassigned color = %q, want #808080", got.Color)
	}
}

func TestLabelForConceptIsRoleFirst(t *testing.T) {
	n := demoNode()
	label := LabelFor(n, ViewConcept)
	if label != "tinyMod\nDC motor" {
		t.Fatalf("concept label = %q", label)
	}

	c := core.NewNode("tinyCore", core.KindCore)
	if got := LabelFor(c, ViewConcept); got != "tinyCore\n(brains)" {
		t.Fatalf("core concept label = %q", got)
	}
}

func TestLabelForPLCShowsDiagnostics(t *testing.T) {
	n := demoNode()
	label := LabelFor(n, ViewPLC)

	for _, want := range []string{"NODE 3", "ROLE: DC motor", "STATE: CONFIGURED", "BUS: CAN"} {
		if !strings.Contains(label, want) {
			t.Errorf("PLC label missing %q: %q", want, label)
		}
	}
}

func TestPanelConceptFaultIsFriendly(t *testing.T) {
	n := demoNode()
	n.State = core.StateFault
	n.FaultCode = "E01_WATCHDOG"

	panel := Panel(n, ViewConcept)
	if !strings.Contains(panel, "Something went wrong") {
		t.Fatalf("concept fault panel = %q", panel)
	}
	if strings.Contains(panel, "E01_WATCHDOG") {
		t.Fatalf("concept panel must hide fault codes: %q", panel)
	}
}

func TestPanelPLCShowsFaultCode(t *testing.T) {
	n := demoNode()
	n.State = core.StateFault
	n.FaultCode = "E12_BUS_TIMEOUT"
	n.BusActivity = true

	panel := Panel(n, ViewPLC)
	for _, want := range []string{"NODE 3", "FC  : E12_BUS_TIMEOUT", "COMM: TX/RX", "HB  : OK"} {
		if !strings.Contains(panel, want) {
			t.Errorf("PLC panel missing %q: %q", want, panel)
		}
	}
}

func TestPanelPLCUnknownFaultCodePlaceholder(t *testing.T) {
	n := demoNode()
	n.State = core.StateFault

	if panel := Panel(n, ViewPLC); !strings.Contains(panel, "FC  : E??") {
		t.Fatalf("expected E?? placeholder, got %q", panel)
	}
}

func TestParseView(t *testing.T) {
	if ParseView("plc") != ViewPLC {
		t.Errorf("plc should parse to PLC view")
	}
	if ParseView("Concept") != ViewConcept {
		t.Errorf("Concept should parse to Concept view")
	}
	if ParseView("") != ViewConcept {
		t.Errorf("empty view should default to Concept")
	}
}

func TestNodeSizePerView(t *testing.T) {
	if NodeSize(ViewPLC) != 70 || NodeSize(ViewConcept) != 52 {
		t.Fatalf("node sizes = %d/%d, want 70/52", NodeSize(ViewPLC), NodeSize(ViewConcept))
	}
}

func TestEdgeStroke(t *testing.T) {
	w, c := EdgeStroke(true)
	if w != 5 || c != "#00BFFF" {
		t.Errorf("active stroke = %d %q", w, c)
	}
	w, c = EdgeStroke(false)
	if w != 3 || c != "#228B22" {
		t.Errorf("idle stroke = %d %q", w, c)
	}
}
