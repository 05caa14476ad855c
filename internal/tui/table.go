package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"parkmap/internal/render"
	"parkmap/internal/status"
)

func slotColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Slot ID", Width: 14},
		{Title: "Status", Width: 12},
		{Title: "Updated", Width: 24},
	}
}

// slotRows lists every feature of the layout with its resolved status, in
// layout order.
func (m Model) slotRows() []table.Row {
	if m.coll == nil {
		return nil
	}
	rows := make([]table.Row, 0, len(m.coll.Features))
	for i, f := range m.coll.Features {
		st := status.Resolve(m.lookup, f.SlotID, f.Status)
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			f.SlotID,
			classMark(render.Classify(st)) + " " + st,
			m.lookup.LastUpdated(f.SlotID),
		})
	}
	return rows
}

func classMark(c render.Class) string {
	switch c {
	case render.ClassOccupied:
		return "●"
	case render.ClassVacant:
		return "○"
	}
	return "·"
}

// refreshTable rebuilds the dashboard rows from the current data.
func (m *Model) refreshTable() {
	// Clear rows before setting new ones so the cursor never points past
	// the end during the swap.
	m.tbl.SetRows(nil)
	m.tbl.SetRows(m.slotRows())
}
