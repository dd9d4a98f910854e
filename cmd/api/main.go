package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"healthlens/internal/config"
	"healthlens/internal/container"
	"healthlens/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

// Headless JSON API without the report front end. Serves the same metric
// summaries as the main server for scripted consumers.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	c, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	if err := c.Init(); err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer c.Shutdown(context.Background())

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/summary/{dataset}", func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		var payload interface{}
		var err error

		switch chi.URLParam(req, "dataset") {
		case "activity":
			payload, err = c.Health.ActivitySummary(ctx)
		case "sleep":
			payload, err = c.Health.SleepSummary(ctx)
		case "heart_rate":
			payload, err = c.Health.HeartRateSummary(ctx)
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown dataset"})
			return
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, payload)
	})

	r.Get("/api/insights", func(w http.ResponseWriter, req *http.Request) {
		insights, err := c.Health.Insights(req.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"insights": insights, "count": len(insights)})
	})

	r.Get("/api/retrieve", func(w http.ResponseWriter, req *http.Request) {
		query := req.URL.Query().Get("q")
		if query == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter q is required"})
			return
		}
		docs := c.Retriever.Retrieve(req.Context(), query, cfg.Retrieval.Collections, cfg.Retrieval.TopK)
		writeJSON(w, http.StatusOK, map[string]interface{}{"documents": docs, "count": len(docs)})
	})

	addr := ":" + cfg.Server.Port
	log.Printf("Starting HealthLens API on %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeDatasetNotFound, errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeSchemaValidation, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error(), "code": errors.GetCode(err)})
}
