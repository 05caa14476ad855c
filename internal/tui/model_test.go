package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"parkmap/internal/layout"
	"parkmap/internal/status"
)

const lotDoc = `{"type":"FeatureCollection","features":[
 {"type":"Feature","properties":{"slot_id":"A1","status":"vacant"},
  "geometry":{"type":"Polygon","coordinates":[[[0,0],[0,1],[1,1],[1,0]]]}},
 {"type":"Feature","properties":{"slot_id":"A2"},
  "geometry":{"type":"Polygon","coordinates":[[[2,0],[2,1],[3,1],[3,0]]]}}
]}`

func testLoad(ctx context.Context, src string) (*layout.Collection, error) {
	if src == "missing" {
		return nil, errors.New("not found")
	}
	return layout.Decode(strings.NewReader(lotDoc))
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func loaded(t *testing.T) Model {
	t.Helper()
	m := sized(t, New(Options{Layout: "lot.geojson", Load: testLoad}))
	c, err := testLoad(context.Background(), "lot.geojson")
	if err != nil {
		t.Fatal(err)
	}
	next, _ := m.Update(layoutMsg{src: "lot.geojson", coll: c})
	return next.(Model)
}

func TestLayoutLoadBuildsShapes(t *testing.T) {
	m := loaded(t)
	if len(m.shapes) != 2 {
		t.Fatalf("Expected 2 shapes, got %d", len(m.shapes))
	}
	if m.shapes[0].Status != "vacant" || m.shapes[1].Status != status.Unknown {
		t.Errorf("Unexpected statuses %q %q", m.shapes[0].Status, m.shapes[1].Status)
	}
	if got := len(m.tbl.Rows()); got != 2 {
		t.Errorf("Expected 2 table rows, got %d", got)
	}
	if !strings.Contains(m.View(), "parkmap") {
		t.Errorf("Expected header in view")
	}
}

func TestStatusReplacesLookup(t *testing.T) {
	m := loaded(t)
	proj := m.proj

	r := status.Result{Lookup: status.Merge([]status.Record{{SlotID: "A2", Status: "occupied"}}), At: time.Now()}
	next, cmd := m.Update(statusMsg(r))
	m = next.(Model)
	if cmd != nil {
		t.Errorf("Expected no follow-up receive without a feed channel")
	}
	if m.shapes[1].Status != "occupied" {
		t.Errorf("Expected A2 occupied, got %q", m.shapes[1].Status)
	}
	if m.proj != proj {
		t.Errorf("Projector must not change on status updates")
	}

	failed := status.Result{Err: errors.New("timeout"), At: time.Now()}
	next, _ = m.Update(statusMsg(failed))
	m = next.(Model)
	if m.shapes[1].Status != "occupied" {
		t.Errorf("Expected previous lookup to survive a failed poll, got %q", m.shapes[1].Status)
	}
	if !strings.Contains(m.status, "unavailable") {
		t.Errorf("Expected failure in status line, got %q", m.status)
	}
}

func TestLayoutErrorIsVisible(t *testing.T) {
	m := sized(t, New(Options{Layout: "missing", Load: testLoad}))
	next, _ := m.Update(layoutMsg{src: "missing", err: errors.New("not found")})
	m = next.(Model)
	if !strings.Contains(m.View(), "Layout error") {
		t.Errorf("Expected layout error in view")
	}
}

func TestLoadingState(t *testing.T) {
	m := sized(t, New(Options{Layout: "lot.geojson", Load: testLoad}))
	if !strings.Contains(m.View(), "Loading layout") {
		t.Errorf("Expected loading placeholder")
	}
}

func TestEmptyLayout(t *testing.T) {
	m := sized(t, New(Options{}))
	next, _ := m.Update(layoutMsg{src: "empty", coll: &layout.Collection{}})
	m = next.(Model)
	if !strings.Contains(m.View(), "No slots in layout") {
		t.Errorf("Expected empty placeholder")
	}
	if m.shapes != nil || m.index != nil {
		t.Errorf("Expected no derived state for an empty layout")
	}
}

func TestViewSwitchAndHitTest(t *testing.T) {
	m := loaded(t)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	m = next.(Model)
	if m.view != viewSchematic {
		t.Fatalf("Expected schematic view")
	}
	if !strings.Contains(m.View(), "A1") {
		t.Errorf("Expected slot labels in schematic view")
	}

	c := m.shapes[0].Centroid
	cellX, cellY := int(c[0])/2, int(c[1])/4
	ox, oy, _, _ := m.mapArea()
	next, _ = m.Update(tea.MouseMsg{X: cellX + ox, Y: cellY + oy, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(Model)
	if m.hoverSlot != "A1" {
		t.Errorf("Expected hover on A1, got %q", m.hoverSlot)
	}
	if !strings.Contains(m.inspectPopup, "A1") {
		t.Errorf("Expected popup for A1, got %q", m.inspectPopup)
	}
}

func TestWaitForStatus(t *testing.T) {
	ch := make(chan status.Result, 1)
	ch <- status.Result{Lookup: status.Lookup{}}
	if _, ok := waitForStatus(ch)().(statusMsg); !ok {
		t.Errorf("Expected statusMsg")
	}
	close(ch)
	if _, ok := waitForStatus(ch)().(pollStoppedMsg); !ok {
		t.Errorf("Expected pollStoppedMsg after close")
	}
}
