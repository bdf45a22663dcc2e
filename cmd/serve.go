package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/recipe-cli/internal/pipeline"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env.Pipeline),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter builds the HTTP API around a pipeline.
func newRouter(p *pipeline.Pipeline) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/analyze-simple", func(w http.ResponseWriter, r *http.Request) {
		req := pipeline.Request{
			Ingredient: r.URL.Query().Get("ingredient"),
			Preference: r.URL.Query().Get("preference"),
		}
		if topN := r.URL.Query().Get("top_n"); topN != "" {
			n, err := strconv.Atoi(topN)
			if err != nil {
				writeError(w, http.StatusBadRequest, "top_n must be an integer")
				return
			}
			req.MaxResults = n
		}
		runAnalysis(w, r, p, req)
	})

	r.Post("/analyze", func(w http.ResponseWriter, r *http.Request) {
		var req pipeline.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		runAnalysis(w, r, p, req)
	})

	return r
}

// runAnalysis executes the pipeline for one request and maps its error
// taxonomy onto HTTP status codes.
func runAnalysis(w http.ResponseWriter, r *http.Request, p *pipeline.Pipeline, req pipeline.Request) {
	if req.Ingredient == "" {
		writeError(w, http.StatusBadRequest, "ingredient is required")
		return
	}

	report, err := p.Analyze(r.Context(), req)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoSearchResults) || errors.Is(err, pipeline.ErrNoRecipe) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		zap.L().Error("analysis failed",
			zap.String("ingredient", req.Ingredient),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
