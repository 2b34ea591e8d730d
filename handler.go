package main

import (
	"log"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler holds shared dependencies for all route handlers. The calculator is
// stateless by design — no database, no per-user storage — so the only
// dependency is the metrics set.
type Handler struct {
	metrics *Metrics
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// requestIDMiddleware attaches an X-Request-ID to every API call, generating
// one when the client didn't send its own. Log lines reference it so a form
// error report can be matched to a server log entry.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api", requestIDMiddleware())
	api.POST("/calculate", h.calculate)
	api.GET("/calculate/live", h.calculateLive)
	api.GET("/activity-levels", h.getActivityLevels)
	api.GET("/defaults", h.getDefaults)
}

/* ─── Calculation ────────────────────────────────────────────────────── */

// calculate runs one form submission through the engine.
// POST /api/calculate. Stateless: nothing about the request is stored.
func (h *Handler) calculate(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.CalculationsTotal.WithLabelValues("invalid").Inc()
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	results, status, err := h.runCalculation(req)
	if err != nil {
		if status == http.StatusInternalServerError {
			log.Printf("[calculate] engine error (request %s): %v", c.GetString("request_id"), err)
		}
		apiError(c, status, err.Error())
		return
	}

	c.JSON(http.StatusOK, results)
}

// runCalculation is the normalize-then-calculate path shared by the HTTP and
// WebSocket surfaces. A normalization failure is the caller's fault (400); an
// engine failure means the normalizer let a broken profile through (500).
func (h *Handler) runCalculation(req calculateRequest) (calcResults, int, error) {
	profile, err := normalizeProfile(req)
	if err != nil {
		h.metrics.CalculationsTotal.WithLabelValues("invalid").Inc()
		return calcResults{}, http.StatusBadRequest, err
	}

	results, err := calculateAll(profile)
	if err != nil {
		h.metrics.CalculationsTotal.WithLabelValues("error").Inc()
		return calcResults{}, http.StatusInternalServerError, err
	}

	h.metrics.CalculationsTotal.WithLabelValues("ok").Inc()
	h.metrics.FatWarningsTotal.Add(float64(len(results.Warnings)))
	return results, http.StatusOK, nil
}

/* ─── Form support endpoints ─────────────────────────────────────────── */

// activityLevel is one entry in the GET /api/activity-levels response.
type activityLevel struct {
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

// getActivityLevels returns the selectable activity presets, ascending by
// multiplier, for the form's dropdown.
// GET /api/activity-levels.
func (h *Handler) getActivityLevels(c *gin.Context) {
	levels := make([]activityLevel, 0, len(activityPresets))
	for mult, label := range activityPresets {
		levels = append(levels, activityLevel{Label: label, Multiplier: mult})
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Multiplier < levels[j].Multiplier })
	c.JSON(http.StatusOK, levels)
}

// getDefaults returns the values the form pre-fills for optional fields.
// GET /api/defaults.
func (h *Handler) getDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cut_delta":             defaultCutDelta,
		"bulk_delta":            defaultBulkDelta,
		"recomp_delta":          defaultRecompDelta,
		"bulk_protein_g_per_lb": defaultBulkProteinGPerLb,
	})
}
