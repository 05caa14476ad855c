package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"parkmap/internal/geom"
	"parkmap/internal/status"
)

func TestDefaultFormat(t *testing.T) {
	if got := defaultFormat(true); got != "table" {
		t.Errorf("Expected table on a terminal, got %q", got)
	}
	if got := defaultFormat(false); got != "geojson" {
		t.Errorf("Expected geojson when piped, got %q", got)
	}
}

func TestExportFormats(t *testing.T) {
	cfg.Canvas = geom.DefaultCanvas
	coll := testLot(t)
	lookup := status.Merge([]status.Record{{SlotID: "A2", Status: "occupied", LastUpdated: "2024-05-01T10:00:00Z"}})

	t.Run("shapes", func(t *testing.T) {
		var buf bytes.Buffer
		if err := export(&buf, "shapes", coll, lookup); err != nil {
			t.Fatalf("export failed: %v", err)
		}
		var shapes []map[string]any
		if err := json.Unmarshal(buf.Bytes(), &shapes); err != nil {
			t.Fatalf("Expected JSON array, got %v", err)
		}
		if len(shapes) != 2 {
			t.Errorf("Expected 2 shapes, got %d", len(shapes))
		}
	})

	t.Run("geojson", func(t *testing.T) {
		var buf bytes.Buffer
		if err := export(&buf, "geojson", coll, lookup); err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if !strings.Contains(buf.String(), `"last_updated":"2024-05-01T10:00:00Z"`) {
			t.Errorf("Expected last_updated in output, got %s", buf.String())
		}
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		if err := export(&buf, "table", coll, lookup); err != nil {
			t.Fatalf("export failed: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"A1", "A2", "occupied", "vacant", "2 slots: 1 occupied, 1 vacant, 0 other"} {
			if !strings.Contains(out, want) {
				t.Errorf("Expected %q in table, got:\n%s", want, out)
			}
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := export(&bytes.Buffer{}, "svg", coll, lookup); err == nil {
			t.Error("Expected error for unknown format")
		}
	})
}
