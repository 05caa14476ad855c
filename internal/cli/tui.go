package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"parkmap/internal/logger"
	"parkmap/internal/status"
	"parkmap/internal/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [layout]",
		Short: "Open the terminal dashboard (default command)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.Layout = args[0]
			}
			return runTUI(cmd.Context())
		},
	}
}

// runTUI owns the session context: the poller and any in-flight layout load
// stop when the program exits.
func runTUI(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	l, closer, err := logger.SetupFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	opts := tui.Options{
		Context: ctx,
		Layout:  cfg.Layout,
		Load:    loadLayout,
		Logger:  l,
	}
	if p := newPoller(l); p != nil {
		results := make(chan status.Result)
		go p.Run(ctx, results)
		opts.Results = results
	}
	l.Info("session_start", "layout", cfg.Layout, "status_url", cfg.StatusURL, "interval", cfg.PollInterval)

	prog := tea.NewProgram(tui.New(opts), tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = prog.Run()
	cancel()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	l.Info("session_end")
	return nil
}
