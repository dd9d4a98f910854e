package ui

import (
	"net/http"
	"strconv"
	"time"

	"healthlens/domain/nutrition"
	"healthlens/domain/retrieval"
	"healthlens/internal"
	"healthlens/internal/container"
	"healthlens/internal/errors"
	nutricalc "healthlens/internal/nutrition"
	"healthlens/internal/report"

	"github.com/gin-gonic/gin"
)

// Server is the HTTP front end over the health metrics services.
type Server struct {
	router    *gin.Engine
	container *container.Container
	logger    *internal.Logger
}

// NewServer creates a server over an initialized container.
func NewServer(c *container.Container) *Server {
	gin.SetMode(c.Config.Server.GinMode)
	s := &Server{
		router:    gin.Default(),
		container: c,
		logger:    internal.DefaultLogger,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealthz)

	api := s.router.Group("/api")
	{
		api.GET("/summary/activity", s.handleActivitySummary)
		api.GET("/summary/sleep", s.handleSleepSummary)
		api.GET("/summary/heart_rate", s.handleHeartRateSummary)
		api.GET("/insights", s.handleInsights)

		api.GET("/activity/weekly", s.handleWeeklyActivity)
		api.GET("/activity/rolling", s.handleRollingSteps)
		api.GET("/activity/anomalies", s.handleStepAnomalies)
		api.GET("/heart_rate/hourly", s.handleHourlyHeartRate)

		api.POST("/nutrition/recommendations", s.handleNutrition)

		api.GET("/retrieve", s.handleRetrieve)
		api.GET("/context", s.handleContext)
		api.GET("/collections/:name/stats", s.handleCollectionStats)
		api.POST("/collections/:name/ingest", s.handleIngest)
	}

	s.router.GET("/report", s.handleReport)
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("starting HealthLens UI on http://%s", addr)
	return s.router.Run(addr)
}

// Router exposes the underlying handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleActivitySummary(c *gin.Context) {
	summary, err := s.container.Health.ActivitySummary(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleSleepSummary(c *gin.Context) {
	summary, err := s.container.Health.SleepSummary(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleHeartRateSummary(c *gin.Context) {
	summary, err := s.container.Health.HeartRateSummary(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleInsights(c *gin.Context) {
	insights, err := s.container.Health.Insights(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": insights, "count": len(insights)})
}

func (s *Server) handleWeeklyActivity(c *gin.Context) {
	weeks, err := s.container.Health.WeeklyActivity(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, weeks)
}

func (s *Server) handleRollingSteps(c *gin.Context) {
	points, err := s.container.Health.RollingSteps(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

func (s *Server) handleStepAnomalies(c *gin.Context) {
	points, err := s.container.Health.StepAnomalies(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

func (s *Server) handleHourlyHeartRate(c *gin.Context) {
	hours, err := s.container.Health.HourlyHeartRate(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, hours)
}

func (s *Server) handleNutrition(c *gin.Context) {
	var profile nutrition.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile: " + err.Error()})
		return
	}

	recs, err := nutricalc.GetRecommendations(profile)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (s *Server) handleRetrieve(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	k, _ := strconv.Atoi(c.DefaultQuery("k", "0"))

	docs := s.container.Retriever.Retrieve(c.Request.Context(), query,
		s.container.Config.Retrieval.Collections, k)
	c.JSON(http.StatusOK, gin.H{"documents": docs, "count": len(docs)})
}

func (s *Server) handleContext(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	cfg := s.container.Config.Retrieval
	docs := s.container.Retriever.Retrieve(c.Request.Context(), query, cfg.Collections, cfg.TopK)
	formatted := s.container.Retriever.FormatContext(docs, cfg.ContextBudget)
	c.JSON(http.StatusOK, gin.H{"context": formatted, "documents": len(docs)})
}

func (s *Server) handleCollectionStats(c *gin.Context) {
	name := c.Param("name")
	count := s.container.Ingestor.CollectionStats(c.Request.Context(), name)
	c.JSON(http.StatusOK, gin.H{"collection": name, "documents": count})
}

func (s *Server) handleIngest(c *gin.Context) {
	name := c.Param("name")
	var docs []retrieval.IngestDocument
	if err := c.ShouldBindJSON(&docs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid documents: " + err.Error()})
		return
	}

	chunks, err := s.container.Ingestor.Ingest(c.Request.Context(), name, docs)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collection": name, "chunks": chunks})
}

// handleReport renders the full markdown report as HTML.
func (s *Server) handleReport(c *gin.Context) {
	activity, sleep, heartRate, err := s.container.Health.Summaries(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}

	insights, _ := s.container.Health.Insights(c.Request.Context())
	md := report.BuildMarkdown(report.Report{
		GeneratedAt: time.Now(),
		Activity:    activity,
		Sleep:       sleep,
		HeartRate:   heartRate,
		Insights:    insights,
	})

	c.Data(http.StatusOK, "text/html; charset=utf-8", report.RenderHTML(md))
}

// renderError maps error codes onto HTTP statuses.
func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeDatasetNotFound, errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeSchemaValidation, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}
