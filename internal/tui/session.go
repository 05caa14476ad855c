package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"parkmap/internal/layout"
	"parkmap/internal/status"
)

type layoutMsg struct {
	src  string
	coll *layout.Collection
	err  error
}

type statusMsg status.Result

type pollStoppedMsg struct{}

func loadLayout(ctx context.Context, load LoadFunc, src string) tea.Cmd {
	return func() tea.Msg {
		c, err := load(ctx, src)
		return layoutMsg{src: src, coll: c, err: err}
	}
}

// waitForStatus hands the next poll result to Update. It is re-issued after
// every result so exactly one receive is pending at a time.
func waitForStatus(ch <-chan status.Result) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return pollStoppedMsg{}
		}
		return statusMsg(r)
	}
}

// applyLayout swaps in a new layout and rebuilds the envelope. The status
// lookup is kept.
func (m *Model) applyLayout(msg layoutMsg) {
	m.loading = false
	if msg.err != nil {
		m.layoutErr = msg.err
		m.status = "layout error: " + msg.err.Error()
		m.log.Error("layout_load_error", "src", msg.src, "err", msg.err)
		return
	}
	m.layoutErr = nil
	m.selPath = msg.src
	m.coll = msg.coll
	m.env, m.hasEnv = msg.coll.Envelope()
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.inspectPopup = ""
	m.rebuild(true)
	m.status = "loaded: " + msg.src + slotSummary(m.shapes)
	m.log.Info("layout_loaded", "src", msg.src, "features", len(msg.coll.Features), "shapes", len(m.shapes))
}

// applyStatus replaces the lookup wholesale on success. A failed poll keeps
// the previous lookup, so slots fall back to what was last known.
func (m *Model) applyStatus(r status.Result) {
	m.lastPoll = r
	if !r.OK() {
		m.status = "live status unavailable: " + r.Err.Error()
		return
	}
	m.lookup = r.Lookup
	m.rebuild(false)
	m.status = "live status " + r.At.Format("15:04:05") + slotSummary(m.shapes)
}
