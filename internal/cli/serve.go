package cli

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/skillfield/skillfield/pkg/buildinfo"
	sferrors "github.com/skillfield/skillfield/pkg/errors"
	"github.com/skillfield/skillfield/pkg/observability"
	"github.com/skillfield/skillfield/pkg/pipeline"
	"github.com/skillfield/skillfield/pkg/skills"
)

const shutdownTimeout = 5 * time.Second

// serveCommand creates the local preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags layoutFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve [catalog.toml]",
		Short: "Serve a live preview of the skill field",
		Long: `Serve a live preview of the skill field over HTTP.

Every request is a fresh mount with a new random layout. Add ?seed=N to pin
a layout; seeded responses are cached.

Routes:
  /            animated HTML page
  /field.svg   SVG
  /field.json  layout JSON
  /healthz     liveness probe

Query parameters: seed, strategy, category (repeatable), animate, guide.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, _, err := c.loadCatalog(args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Serve.Addr
			}

			runner := c.newRunner(ctx, flags.noCache)
			defer runner.Close()

			s := newServer(runner, cat, c.layoutOptions(cmd, &flags), loggerFromContext(ctx))
			return s.listenAndServe(ctx, addr)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, localhost:8080)")
	return cmd
}

// =============================================================================
// Server
// =============================================================================

type server struct {
	runner *pipeline.Runner
	cat    skills.Catalog
	base   pipeline.Options
	logger *log.Logger
}

func newServer(runner *pipeline.Runner, cat skills.Catalog, base pipeline.Options, logger *log.Logger) *server {
	base.Logger = logger
	return &server{runner: runner, cat: cat, base: base, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(serverHeader)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/", s.artifact(pipeline.FormatHTML, "text/html; charset=utf-8"))
	r.Get("/field.svg", s.artifact(pipeline.FormatSVG, "image/svg+xml"))
	r.Get("/field.json", s.artifact(pipeline.FormatJSON, "application/json"))

	return r
}

func (s *server) listenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Serving skill field", "addr", "http://"+addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("Shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// artifact renders one format per request.
func (s *server) artifact(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.optionsFor(r)
		if err != nil {
			writeError(w, err)
			return
		}
		opts.Formats = []string{format}

		res, err := s.runner.Execute(r.Context(), s.cat, opts)
		if err != nil {
			s.logger.Error("render failed", "format", format, "err", err, "request_id", middleware.GetReqID(r.Context()))
			writeError(w, err)
			return
		}

		h := w.Header()
		h.Set("Content-Type", contentType)
		h.Set("X-Skillfield-Run", res.Field.RunID)
		if res.Field.Seeded {
			h.Set("Cache-Control", "public, max-age=3600")
		} else {
			h.Set("Cache-Control", "no-store")
		}
		_, _ = w.Write(res.Artifacts[format])
	}
}

// optionsFor applies query parameters to the server's base options.
func (s *server) optionsFor(r *http.Request) (pipeline.Options, error) {
	opts := s.base
	q := r.URL.Query()

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, sferrors.New(sferrors.ErrCodeInvalidInput, "seed must be a non-negative integer, got %q", v)
		}
		opts.SetSeed(seed)
	}
	if v := q.Get("strategy"); v != "" {
		opts.Strategy = v
	}
	if cats := q["category"]; len(cats) > 0 {
		opts.Categories = cats
	}
	for name, dst := range map[string]*bool{"animate": &opts.Animate, "guide": &opts.Guide} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, sferrors.New(sferrors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
			}
			*dst = b
		}
	}
	return opts, nil
}

// writeError maps validation failures to 400 and everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch sferrors.GetCode(err) {
	case sferrors.ErrCodeInvalidInput, sferrors.ErrCodeInvalidConfig, sferrors.ErrCodeInvalidStrategy, sferrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	}
	if errors.Is(err, context.Canceled) {
		status = 499
	}
	http.Error(w, sferrors.UserMessage(err), status)
}

// observe logs each request and reports it to the serve hooks.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)

		observability.Serve().OnRequest(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"took", d.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func serverHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", buildinfo.UserAgent())
		next.ServeHTTP(w, r)
	})
}
