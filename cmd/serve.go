package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vanam-labs/plantation-cli/internal/export"
	"github.com/vanam-labs/plantation-cli/internal/model"
	"github.com/vanam-labs/plantation-cli/internal/monitoring"
	"github.com/vanam-labs/plantation-cli/internal/planner"
	"github.com/vanam-labs/plantation-cli/internal/store"
)

var servePort int

// api holds handler dependencies for the HTTP server.
type api struct {
	planner   *planner.Planner
	store     store.Store
	collector *monitoring.Collector
	metrics   *monitoring.Metrics
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for site analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initApp(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		a := &api{
			planner:   env.Planner,
			store:     env.Store,
			collector: monitoring.NewCollector(env.Store),
			metrics:   monitoring.NewMetrics(),
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           a.routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func (a *api) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Post("/analyze", a.handleAnalyze)
		api.Get("/runs", a.handleListRuns)
		api.Get("/runs/{id}", a.handleGetRun)
		api.Get("/runs/{id}/export", a.handleExportRun)
		api.Get("/stats", a.handleStats)
	})

	return r
}

func (a *api) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req model.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		writeError(w, http.StatusBadRequest, "latitude/longitude out of range")
		return
	}

	run, err := a.store.CreateRun(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not record run")
		return
	}

	start := time.Now()
	result, err := a.planner.Run(r.Context(), req)
	if err != nil {
		a.metrics.AnalysesTotal.WithLabelValues("unknown", "error").Inc()
		if failErr := a.store.FailRun(r.Context(), run.ID, err.Error()); failErr != nil {
			zap.L().Warn("recording failed run", zap.Error(failErr))
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	a.metrics.AnalysesTotal.WithLabelValues(result.Source, "ok").Inc()
	a.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	a.metrics.PointsSelected.Observe(float64(len(result.Points)))
	if result.Fallback {
		a.metrics.RemoteFallbacks.Inc()
	}

	if err := a.store.CompleteRun(r.Context(), run.ID, result); err != nil {
		zap.L().Warn("recording completed run", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"run_id": run.ID,
		"result": result,
	})
}

func (a *api) handleListRuns(w http.ResponseWriter, r *http.Request) {
	filter := store.RunFilter{
		Status: model.RunStatus(r.URL.Query().Get("status")),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}

	runs, err := a.store.ListRuns(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not list runs")
		return
	}
	if runs == nil {
		runs = []model.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (a *api) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := a.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if store.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not load run")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// handleExportRun streams a completed run's points in the requested format.
func (a *api) handleExportRun(w http.ResponseWriter, r *http.Request) {
	run, err := a.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if store.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not load run")
		return
	}
	if run.Result == nil || len(run.Result.Points) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "run has no points to export")
		return
	}

	name := r.URL.Query().Get("format")
	if name == "" {
		name = string(export.FormatCSV)
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if format == export.FormatShapefile {
		writeError(w, http.StatusBadRequest, "shapefile export writes a file set; use the analyze command")
		return
	}

	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("plantation_%s.%s", run.ID[:8], format)))
	if err := export.Write(w, format, run.Result.Points); err != nil {
		zap.L().Warn("streaming export", zap.Error(err))
		return
	}
	a.metrics.ExportsTotal.WithLabelValues(string(format)).Inc()
}

func (a *api) handleStats(w http.ResponseWriter, r *http.Request) {
	lookback := 24
	if v := r.URL.Query().Get("hours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid hours")
			return
		}
		lookback = n
	}

	snap, err := a.collector.Collect(r.Context(), lookback)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not collect stats")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encoding response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
