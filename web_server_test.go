package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/tinytrainer/core"
	"github.com/example/tinytrainer/hooks"
	"github.com/example/tinytrainer/render"
	"github.com/example/tinytrainer/visual"
)

func testFrame() *SimulationFrame {
	topo := core.NewDefaultTopology()
	n, _ := topo.Node("tinyMod_B")
	n.State = core.StateFault
	n.FaultCode = "E12_BUS_TIMEOUT"

	frame := buildFrame(topo, render.ViewPLC)
	frame.SessionID = "test-session"
	frame.Seq = 1
	return frame
}

func TestWebServerFrameEndpoint(t *testing.T) {
	server := NewWebServer("127.0.0.1:0", "web/static", nil)

	req := httptest.NewRequest("GET", "/api/frame", nil)
	w := httptest.NewRecorder()
	server.handleFrame(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for empty frame, got %d", w.Code)
	}

	server.UpdateFrame(testFrame())

	req = httptest.NewRequest("GET", "/api/frame", nil)
	w = httptest.NewRecorder()
	server.handleFrame(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var result SimulationFrame
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.SessionID != "test-session" {
		t.Errorf("Expected session test-session, got %s", result.SessionID)
	}
	if len(result.Nodes) != 8 {
		t.Errorf("Expected 8 nodes, got %d", len(result.Nodes))
	}
	if result.NodeSize != 70 {
		t.Errorf("Expected PLC node size 70, got %d", result.NodeSize)
	}

	req = httptest.NewRequest("POST", "/api/frame", nil)
	w = httptest.NewRecorder()
	server.handleFrame(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", w.Code)
	}
}

func TestWebServerControlEndpoint(t *testing.T) {
	server := NewWebServer("127.0.0.1:0", "web/static", nil)

	body := bytes.NewBufferString(`{"type":"tick"}`)
	req := httptest.NewRequest("POST", "/api/control", body)
	w := httptest.NewRecorder()
	server.handleControl(w, req)
	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d: %s", w.Code, w.Body.String())
	}

	cmd, ok := server.NextCommand()
	if !ok || cmd.Type != visual.CommandTick {
		t.Fatalf("Expected queued tick command, got %+v ok=%v", cmd, ok)
	}

	// Invalid command type is rejected before queueing.
	body = bytes.NewBufferString(`{"type":"explode"}`)
	req = httptest.NewRequest("POST", "/api/control", body)
	w = httptest.NewRecorder()
	server.handleControl(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid type, got %d", w.Code)
	}

	// assign_role requires node and role.
	body = bytes.NewBufferString(`{"type":"assign_role","node":"tinyMod_A"}`)
	req = httptest.NewRequest("POST", "/api/control", body)
	w = httptest.NewRecorder()
	server.handleControl(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing role, got %d", w.Code)
	}

	if _, ok := server.NextCommand(); ok {
		t.Errorf("Rejected requests must not queue commands")
	}
}

func TestWebServerControlCommandPayload(t *testing.T) {
	server := NewWebServer("127.0.0.1:0", "web/static", nil)

	body := bytes.NewBufferString(`{"type":"assign_role","node":"tinyMod_A","role":"vision"}`)
	req := httptest.NewRequest("POST", "/api/control", body)
	w := httptest.NewRecorder()
	server.handleControl(w, req)
	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d", w.Code)
	}

	cmd, ok := server.NextCommand()
	if !ok {
		t.Fatalf("expected queued command")
	}
	if cmd.Type != visual.CommandAssignRole || cmd.Node != "tinyMod_A" || cmd.Role != "vision" {
		t.Fatalf("unexpected command %+v", cmd)
	}
}

func TestWebServerTopologyEndpoint(t *testing.T) {
	server := NewWebServer("127.0.0.1:0", "web/static", nil)

	req := httptest.NewRequest("GET", "/api/topology", nil)
	w := httptest.NewRecorder()
	server.handleTopology(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 before first frame, got %d", w.Code)
	}

	server.UpdateFrame(testFrame())

	req = httptest.NewRequest("GET", "/api/topology", nil)
	w = httptest.NewRecorder()
	server.handleTopology(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var snap TopologySnapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("Failed to decode topology: %v", err)
	}
	if len(snap.Nodes) != 8 || len(snap.Edges) != 8 {
		t.Fatalf("Expected 8 nodes / 8 edges, got %d/%d", len(snap.Nodes), len(snap.Edges))
	}
}

func TestWebServerPositionEndpoint(t *testing.T) {
	server := NewWebServer("127.0.0.1:0", "web/static", nil)

	body := bytes.NewBufferString(`{"node":"tinyHub","x":321,"y":654}`)
	req := httptest.NewRequest("POST", "/api/topology/position", body)
	w := httptest.NewRecorder()
	server.handlePosition(w, req)
	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d", w.Code)
	}

	cmd, ok := server.NextCommand()
	if !ok || cmd.Type != visual.CommandMoveNode || cmd.Node != "tinyHub" || cmd.X != 321 || cmd.Y != 654 {
		t.Fatalf("unexpected command %+v ok=%v", cmd, ok)
	}

	body = bytes.NewBufferString(`{"x":1}`)
	req = httptest.NewRequest("POST", "/api/topology/position", body)
	w = httptest.NewRecorder()
	server.handlePosition(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing node, got %d", w.Code)
	}
}

func TestWebServerPanelEndpoint(t *testing.T) {
	server := NewWebServer("127.0.0.1:0", "web/static", nil)
	server.UpdateFrame(testFrame())

	req := httptest.NewRequest("GET", "/api/panel?node=tinyMod_B&view=PLC", nil)
	w := httptest.NewRecorder()
	server.handlePanel(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	text := w.Body.String()
	if !strings.Contains(text, "FC  : E12_BUS_TIMEOUT") {
		t.Errorf("PLC panel missing fault code: %q", text)
	}

	req = httptest.NewRequest("GET", "/api/panel?node=tinyMod_B&view=Concept", nil)
	w = httptest.NewRecorder()
	server.handlePanel(w, req)
	if !strings.Contains(w.Body.String(), "Something went wrong") {
		t.Errorf("Concept panel should be friendly: %q", w.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/panel?node=ghost", nil)
	w = httptest.NewRecorder()
	server.handlePanel(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown node, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/panel", nil)
	w = httptest.NewRecorder()
	server.handlePanel(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 when node missing, got %d", w.Code)
	}
}

func TestMetricsSubscription(t *testing.T) {
	broker := hooks.NewBroker()
	metrics := newMetricsRegistry()
	metrics.Subscribe(broker)

	broker.EmitTick(&hooks.TickContext{ActivityLevel: 3, ActiveCount: 3})
	broker.EmitReset()

	server := NewWebServer("127.0.0.1:0", "web/static", metrics)
	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	NewRouter(server).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 from /metrics, got %d", w.Code)
	}
	body := w.Body.String()
	for _, metric := range []string{"tinytrainer_ticks_total 1", "tinytrainer_resets_total 1", "tinytrainer_bus_activity_nodes 3"} {
		if !strings.Contains(body, metric) {
			t.Errorf("metrics output missing %q", metric)
		}
	}
}
