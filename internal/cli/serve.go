package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"parkmap/internal/config"
	"parkmap/internal/geom"
	"parkmap/internal/layout"
	"parkmap/internal/logger"
	"parkmap/internal/mapview"
	"parkmap/internal/metrics"
	"parkmap/internal/render"
	"parkmap/internal/status"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [layout]",
		Short: "Serve the annotated layout, render shapes and metrics over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.Layout = args[0]
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
	cmd.Flags().StringVar(&cfg.Listen, "listen", config.Default().Listen, "HTTP listen address (PARKMAP_LISTEN)")
	return cmd
}

func runServe(ctx context.Context) error {
	l := logger.Setup(os.Stderr)
	coll, err := loadLayout(ctx, cfg.Layout)
	if err != nil {
		return err
	}
	s := newServer(coll, cfg.Canvas, cfg.Map, l)

	if p := newPoller(l); p != nil {
		results := make(chan status.Result)
		go p.Run(ctx, results)
		go func() {
			for res := range results {
				if res.OK() {
					s.setLookup(res.Lookup)
				}
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	l.Info("serve_start", "addr", cfg.Listen, "layout", cfg.Layout, "slots", len(coll.Features))

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	l.Info("serve_stop")
	return srv.Shutdown(shutdownCtx)
}

// server holds the layout and its projector for the lifetime of the
// process, and the most recent lookup, which the poll loop swaps in.
type server struct {
	coll   *layout.Collection
	proj   geom.Projector
	hasEnv bool
	maps   mapview.Config
	log    *slog.Logger
	lookup atomic.Pointer[status.Lookup]
}

func newServer(coll *layout.Collection, canvas geom.Canvas, maps mapview.Config, l *slog.Logger) *server {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &server{coll: coll, maps: maps, log: l}
	if env, ok := coll.Envelope(); ok {
		s.proj, s.hasEnv = geom.NewProjector(env, canvas), true
	}
	s.setLookup(status.Lookup{})
	return s
}

// shapes assembles the layout against lookup with the server's projector.
// A layout without positions yields no shapes.
func (s *server) shapes(lookup status.Lookup) []render.Shape {
	if !s.hasEnv {
		return []render.Shape{}
	}
	return render.AssembleWith(s.coll, lookup, s.proj)
}

func (s *server) setLookup(lookup status.Lookup) {
	s.lookup.Store(&lookup)
	for cls, n := range render.Counts(s.shapes(lookup)) {
		metrics.Slots.WithLabelValues(cls.String()).Set(float64(n))
	}
}

func (s *server) current() status.Lookup {
	if p := s.lookup.Load(); p != nil {
		return *p
	}
	return status.Lookup{}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /slots.geojson", s.handleGeoJSON)
	mux.HandleFunc("GET /shapes.json", s.handleShapes)
	mux.HandleFunc("GET /style", s.handleStyle)
	mux.Handle("GET /metrics", metrics.Handler())
	return logger.AccessMiddleware(s.log)(mux)
}

func (s *server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	b, err := render.Annotate(s.coll, s.current()).MarshalJSON()
	if err != nil {
		s.log.Error("encode_geojson_error", "err", err)
		http.Error(w, "encode error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(b)
}

func (s *server) handleShapes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.shapes(s.current())); err != nil {
		s.log.Warn("encode_shapes_error", "err", err)
	}
}

func (s *server) handleStyle(w http.ResponseWriter, r *http.Request) {
	if !s.maps.Enabled() {
		http.Error(w, "map style not configured", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, s.maps.StyleURL(), http.StatusFound)
}
