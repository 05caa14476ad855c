package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"parkmap/internal/geom"
	"parkmap/internal/layout"
	"parkmap/internal/mapview"
	"parkmap/internal/render"
	"parkmap/internal/status"
)

const lotJSON = `{"type":"FeatureCollection","features":[
 {"type":"Feature","properties":{"slot_id":"A1","status":"vacant"},
  "geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}},
 {"type":"Feature","properties":{"slot_id":"A2"},
  "geometry":{"type":"Polygon","coordinates":[[[2,0],[3,0],[3,1],[2,1],[2,0]]]}}
]}`

func testLot(t *testing.T) *layout.Collection {
	t.Helper()
	c, err := layout.Decode(strings.NewReader(lotJSON))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return c
}

func TestServeShapes(t *testing.T) {
	s := newServer(testLot(t), geom.DefaultCanvas, mapview.Config{}, nil)
	s.setLookup(status.Merge([]status.Record{{SlotID: "A2", Status: "occupied"}}))
	srv := httptest.NewServer(s.routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/shapes.json")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var shapes []struct {
		SlotID string `json:"slot_id"`
		Status string `json:"status"`
		Class  string `json:"class"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&shapes); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(shapes) != 2 {
		t.Fatalf("Expected 2 shapes, got %d", len(shapes))
	}
	if shapes[0].Class != "vacant" {
		t.Errorf("Expected A1 vacant from embedded status, got %q", shapes[0].Class)
	}
	if shapes[1].Status != "occupied" || shapes[1].Class != "occupied" {
		t.Errorf("Expected A2 occupied from live status, got %+v", shapes[1])
	}
}

func TestServeGeoJSON(t *testing.T) {
	s := newServer(testLot(t), geom.DefaultCanvas, mapview.Config{}, nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slots.geojson", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Errorf("Expected geo+json content type, got %q", ct)
	}
	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &fc); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != 2 {
		t.Fatalf("Expected a 2 feature collection, got %q with %d", fc.Type, len(fc.Features))
	}
	if got := fc.Features[1].Properties["status"]; got != status.Unknown {
		t.Errorf("Expected unknown status for A2, got %v", got)
	}
}

func TestServeEmptyLayout(t *testing.T) {
	s := newServer(&layout.Collection{}, geom.DefaultCanvas, mapview.Config{}, nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shapes.json", nil))
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("Expected empty array, got %q", got)
	}
}

func TestServeStyle(t *testing.T) {
	tests := []struct {
		name string
		maps mapview.Config
		code int
	}{
		{"unconfigured", mapview.Config{}, http.StatusNotFound},
		{"configured", mapview.Config{Region: "us-east-1", MapName: "lot", APIKey: "k"}, http.StatusFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(testLot(t), geom.DefaultCanvas, tt.maps, nil)
			rec := httptest.NewRecorder()
			s.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/style", nil))
			if rec.Code != tt.code {
				t.Fatalf("Expected %d, got %d", tt.code, rec.Code)
			}
			if tt.code == http.StatusFound && rec.Header().Get("Location") != tt.maps.StyleURL() {
				t.Errorf("Expected redirect to %q, got %q", tt.maps.StyleURL(), rec.Header().Get("Location"))
			}
		})
	}
}

func TestServeLookupSwap(t *testing.T) {
	s := newServer(testLot(t), geom.DefaultCanvas, mapview.Config{}, nil)
	if len(s.current()) != 0 {
		t.Fatalf("Expected empty initial lookup")
	}
	proj := s.proj
	before := s.shapes(s.current())
	s.setLookup(status.Merge([]status.Record{{SlotID: "A1", Status: "occupied"}}))
	if st, _ := s.current().Status("A1"); st != "occupied" {
		t.Errorf("Expected occupied after swap, got %q", st)
	}
	if s.proj != proj {
		t.Errorf("Expected the projector to survive a status change")
	}
	after := s.shapes(s.current())
	if after[0].Class != render.ClassOccupied {
		t.Errorf("Expected live status to win over embedded")
	}
	for i := range before {
		if !before[i].Outline.Equal(after[i].Outline) || before[i].Centroid != after[i].Centroid {
			t.Errorf("Expected shape %d geometry unchanged by a status change", i)
		}
	}
}

func TestServeShapesUseServerProjector(t *testing.T) {
	small := geom.Canvas{Width: 100, Height: 50, Margin: 5}
	s := newServer(testLot(t), small, mapview.Config{}, nil)
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shapes.json", nil))
	var shapes []render.Shape
	if err := json.Unmarshal(rec.Body.Bytes(), &shapes); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	want := render.AssembleWith(s.coll, s.current(), s.proj)
	if len(shapes) != len(want) {
		t.Fatalf("Expected %d shapes, got %d", len(want), len(shapes))
	}
	for i := range want {
		if !shapes[i].Outline.Equal(want[i].Outline) {
			t.Errorf("Expected outline %v, got %v", want[i].Outline, shapes[i].Outline)
		}
	}
}
