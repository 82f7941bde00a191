package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/cardscan-cli/internal/model"
	"github.com/sells-group/cardscan-cli/internal/pipeline"
	"github.com/sells-group/cardscan-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scan API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		// In-flight scans must drain before the store closes.
		var scans sync.WaitGroup
		defer scans.Wait()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(ctx, env, &scans),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

func newRouter(baseCtx context.Context, env *pipelineEnv, scans *sync.WaitGroup) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/scan", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			ImagePath    string            `json:"image_path"`
			SheetID      string            `json:"sheet_id"`
			Metadata     map[string]string `json:"metadata"`
			NoEnrichment bool              `json:"no_enrichment"`
			NoGrading    bool              `json:"no_grading"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if body.ImagePath == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "image_path is required"})
			return
		}

		input := pipeline.SheetInput{
			SheetID:   sheetIDOrDefault(body.SheetID, body.ImagePath),
			ImagePath: body.ImagePath,
			Metadata:  body.Metadata,
		}
		flags := model.StageFlags{
			EnrichmentEnabled: !body.NoEnrichment,
			GradingEnabled:    !body.NoGrading,
		}

		// Process detached from the request but tied to the server
		// lifecycle; progress is visible via /runs.
		scans.Add(1)
		go func() {
			defer scans.Done()
			if _, err := env.Pipeline.Run(baseCtx, input, flags); err != nil {
				zap.L().Error("scan request failed",
					zap.String("sheet", input.SheetID),
					zap.Error(err),
				)
			}
		}()

		writeJSON(w, http.StatusAccepted, map[string]string{
			"status": "accepted",
			"sheet":  input.SheetID,
		})
	})

	r.Get("/runs", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		runs, err := env.Store.ListRuns(req.Context(), store.RunFilter{
			Status:  model.RunStatus(q.Get("status")),
			SheetID: q.Get("sheet"),
		})
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if runs == nil {
			runs = []model.ScanRun{}
		}
		writeJSON(w, http.StatusOK, runs)
	})

	r.Get("/runs/{id}", func(w http.ResponseWriter, req *http.Request) {
		run, err := env.Store.GetRun(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "run not found"})
			return
		}
		writeJSON(w, http.StatusOK, run)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
