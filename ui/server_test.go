package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"healthlens/internal/config"
	"healthlens/internal/container"
)

func testServer(t *testing.T, dataDir string) *Server {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", GinMode: "test"},
		Data:   config.DataConfig{Dir: dataDir},
		Retrieval: config.RetrievalConfig{
			TopK:          5,
			ContextBudget: 4000,
			Collections:   []string{"nutrition_docs", "pubmed_abstracts"},
		},
	}

	c, err := container.New(cfg)
	if err != nil {
		t.Fatalf("container.New failed: %v", err)
	}
	if err := c.Init(); err != nil {
		t.Fatalf("container.Init failed: %v", err)
	}
	return NewServer(c)
}

func seedDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	write("activity.csv",
		"date,steps,calories_burned,distance_km,active_minutes\n"+
			"2026-01-05,8000,2000,6.1,38\n"+
			"2026-01-06,9500,2100,7.2,45\n"+
			"2026-01-07,8800,2050,6.8,41\n")
	write("heart_rate.csv",
		"timestamp,bpm\n"+
			"2026-01-05 09:00:00,65\n"+
			"2026-01-05 09:05:00,72\n"+
			"2026-01-05 10:00:00,110\n")
	write("sleep.csv",
		"date,sleep_start,sleep_end,duration_hours,deep_sleep_pct,light_sleep_pct,rem_pct\n"+
			"2026-01-05,23:30,07:00,7.5,18.2,58.1,23.7\n"+
			"2026-01-06,23:00,06:30,7.5,17.0,60.0,23.0\n")

	return dir
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestServer_SummaryEndpoints(t *testing.T) {
	s := testServer(t, seedDataDir(t))

	for _, path := range []string{
		"/healthz",
		"/api/summary/activity",
		"/api/summary/sleep",
		"/api/summary/heart_rate",
		"/api/insights",
		"/api/activity/weekly",
		"/api/activity/rolling",
		"/api/activity/anomalies",
		"/api/heart_rate/hourly",
	} {
		w := get(t, s, path)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d: %s", path, w.Code, w.Body.String())
		}
	}

	w := get(t, s, "/api/summary/activity")
	var summary map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if summary["mean_steps"].(float64) == 0 {
		t.Error("mean_steps should be non-zero")
	}
}

func TestServer_MissingDataset(t *testing.T) {
	s := testServer(t, t.TempDir())

	w := get(t, s, "/api/summary/activity")
	if w.Code != http.StatusNotFound {
		t.Errorf("GET on empty data dir = %d, want 404: %s", w.Code, w.Body.String())
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["code"] != "DATASET_NOT_FOUND" {
		t.Errorf("code = %v, want DATASET_NOT_FOUND", body["code"])
	}
}

func TestServer_Nutrition(t *testing.T) {
	s := testServer(t, seedDataDir(t))

	body := `{"weight_kg":70,"height_cm":170,"age":30,"sex":"male","activity_level":"moderately_active","goal":"maintenance"}`
	req := httptest.NewRequest(http.MethodPost, "/api/nutrition/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var recs map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &recs); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if recs["bmr"].(float64) != 1618 {
		t.Errorf("bmr = %v, want 1618", recs["bmr"])
	}

	// Invalid profile: zero weight.
	req = httptest.NewRequest(http.MethodPost, "/api/nutrition/recommendations",
		strings.NewReader(`{"weight_kg":0,"height_cm":170,"age":30,"activity_level":"sedentary"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid profile status = %d, want 400", w.Code)
	}
}

func TestServer_Retrieval(t *testing.T) {
	s := testServer(t, seedDataDir(t))

	w := get(t, s, "/api/retrieve?q=protein+intake")
	if w.Code != http.StatusOK {
		t.Fatalf("retrieve status = %d: %s", w.Code, w.Body.String())
	}
	var payload struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Count == 0 {
		t.Error("seeded corpus returned no documents for protein intake")
	}

	if w := get(t, s, "/api/retrieve"); w.Code != http.StatusBadRequest {
		t.Errorf("missing q status = %d, want 400", w.Code)
	}

	w = get(t, s, "/api/context?q=protein+intake")
	if w.Code != http.StatusOK {
		t.Fatalf("context status = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "[Source 1 (") {
		t.Errorf("context missing attribution header: %s", w.Body.String())
	}

	w = get(t, s, "/api/collections/nutrition_docs/stats")
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
}

func TestServer_Report(t *testing.T) {
	s := testServer(t, seedDataDir(t))

	w := get(t, s, "/report")
	if w.Code != http.StatusOK {
		t.Fatalf("report status = %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "<h1") || !strings.Contains(body, "Health Report") {
		t.Errorf("report HTML missing title: %s", body)
	}
}
