package render

import (
	"testing"

	"github.com/paulmach/orb"
)

func square(id string, x, y, size float64) Shape {
	r := orb.Ring{{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}}
	return Shape{SlotID: id, Outline: r, Centroid: centroid(r)}
}

func TestIndexHit(t *testing.T) {
	ix := NewIndex([]Shape{
		square("A", 0, 0, 10),
		square("B", 20, 0, 10),
		square("C", 5, 5, 10),
	})
	if ix.tree.Len() != 3 {
		t.Fatalf("Expected 3 indexed shapes, got %d", ix.tree.Len())
	}

	tests := []struct {
		name string
		pt   orb.Point
		want string
	}{
		{"inside A", orb.Point{2, 2}, "A"},
		{"inside B", orb.Point{25, 5}, "B"},
		{"overlap prefers later", orb.Point{7, 7}, "C"},
		{"miss", orb.Point{17, 2}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := ix.Hit(tt.pt)
			if tt.want == "" {
				if ok {
					t.Errorf("Expected miss, got %s", s.SlotID)
				}
				return
			}
			if !ok || s.SlotID != tt.want {
				t.Errorf("Expected %s, got %q (%v)", tt.want, s.SlotID, ok)
			}
		})
	}
}

func TestIndexNearest(t *testing.T) {
	ix := NewIndex([]Shape{square("A", 0, 0, 10), square("B", 20, 0, 10)})
	if s, ok := ix.Nearest(orb.Point{18, 5}, 10); !ok || s.SlotID != "B" {
		t.Errorf("Expected B, got %q (%v)", s.SlotID, ok)
	}
	if _, ok := ix.Nearest(orb.Point{100, 100}, 5); ok {
		t.Errorf("Expected nothing within radius")
	}
}
