package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"parkmap/internal/layout"
	"parkmap/internal/logger"
	"parkmap/internal/render"
	"parkmap/internal/status"
)

func exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export [layout]",
		Short: "Fetch the feed once and print shapes, annotated GeoJSON or a slot table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.Layout = args[0]
			}
			if !cmd.Flags().Changed("format") {
				format = defaultFormat(term.IsTerminal(int(os.Stdout.Fd())))
			}
			ctx := cmd.Context()
			l := logger.Setup(os.Stderr)
			coll, err := loadLayout(ctx, cfg.Layout)
			if err != nil {
				return err
			}
			lookup := fetchOnce(ctx, newPoller(l))
			return export(cmd.OutOrStdout(), format, coll, lookup)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: shapes, geojson or table")
	return cmd
}

// defaultFormat picks a human readable table for terminals and GeoJSON for
// pipes.
func defaultFormat(tty bool) string {
	if tty {
		return "table"
	}
	return "geojson"
}

func export(w io.Writer, format string, coll *layout.Collection, lookup status.Lookup) error {
	switch format {
	case "shapes":
		shapes, ok := render.AssembleAll(coll, lookup, cfg.Canvas)
		if !ok {
			shapes = []render.Shape{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(shapes)
	case "geojson":
		b, err := render.Annotate(coll, lookup).MarshalJSON()
		if err != nil {
			return fmt.Errorf("encode geojson: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "table":
		_, err := fmt.Fprintln(w, slotTable(coll, lookup))
		return err
	}
	return fmt.Errorf("unknown format %q (want shapes, geojson or table)", format)
}

// slotTable renders slot id, resolved status and last update, one row per
// feature in layout order.
func slotTable(coll *layout.Collection, lookup status.Lookup) string {
	rows := make([][]string, 0, len(coll.Features))
	counts := map[render.Class]int{}
	for _, f := range coll.Features {
		st := status.Resolve(lookup, f.SlotID, f.Status)
		counts[render.Classify(st)]++
		rows = append(rows, []string{f.SlotID, st, lookup.LastUpdated(f.SlotID)})
	}
	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers("SLOT", "STATUS", "LAST UPDATED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row >= 0 && col == 1 {
				s = s.Foreground(lipgloss.Color(render.Classify(rows[row][1]).Color()))
			}
			return s
		})
	return fmt.Sprintf("%s\n%d slots: %d occupied, %d vacant, %d other",
		t.String(), len(rows), counts[render.ClassOccupied], counts[render.ClassVacant], counts[render.ClassNeutral])
}
