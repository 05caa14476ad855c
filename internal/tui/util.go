package tui

import (
	"fmt"

	"parkmap/internal/render"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// slotSummary formats per-class counts for the status line.
func slotSummary(shapes []render.Shape) string {
	c := render.Counts(shapes)
	return fmt.Sprintf("  slots: %d occupied, %d vacant, %d other",
		c[render.ClassOccupied], c[render.ClassVacant], c[render.ClassNeutral])
}
