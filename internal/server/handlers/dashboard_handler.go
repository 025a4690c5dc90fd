package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/service/dashboard"
)

// DashboardHandler exposes dashboard sessions over HTTP.
type DashboardHandler struct {
	sessions *dashboard.Manager
	logger   *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(sessions *dashboard.Manager, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{sessions: sessions, logger: logger}
}

// FilterRequest is the body accepted by SetFilter.
type FilterRequest struct {
	YearFrom *int   `json:"year_from" binding:"required"`
	YearTo   *int   `json:"year_to" binding:"required"`
	Category string `json:"category"`
}

// CreateSession opens a session and returns the cow cards of the landing view.
func (h *DashboardHandler) CreateSession(c *gin.Context) {
	s := h.sessions.Create(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"id": s.ID(), "cows": s.Cards(c.Request.Context())})
}

// DeleteSession ends a session.
func (h *DashboardHandler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCows returns the cow cards.
func (h *DashboardHandler) ListCows(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Cards(c.Request.Context()))
}

// GetCow returns one cow's profile, looked up by ID or name.
func (h *DashboardHandler) GetCow(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	cow, err := s.Cow(c.Request.Context(), c.Param("cow"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cow)
}

// OpenAnalytics loads the analytics datasets and resets the filter.
func (h *DashboardHandler) OpenAnalytics(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.OpenAnalytics(c.Request.Context()))
}

// GetAnalytics returns the views for the current filter.
func (h *DashboardHandler) GetAnalytics(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Analytics())
}

// SetFilter applies a new year range and category.
func (h *DashboardHandler) SetFilter(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid filter payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bundle, err := s.SetFilter(*req.YearFrom, *req.YearTo, req.Category)
	if err != nil {
		if errors.Is(err, models.ErrInvalidYearRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed applying filter", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply filter"})
		return
	}

	c.JSON(http.StatusOK, bundle)
}

// ListCharts returns the targets that currently hold a chart.
func (h *DashboardHandler) ListCharts(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.ChartTargets())
}

// GetChart returns the chart rendered for a target.
func (h *DashboardHandler) GetChart(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	ch, found := s.Chart(c.Param("target"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "chart not rendered"})
		return
	}
	c.JSON(http.StatusOK, ch)
}

// Reload fetches the session's datasets again.
func (h *DashboardHandler) Reload(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	if err := s.Reload(c.Request.Context()); err != nil {
		h.logger.Warn("reload incomplete", zap.String("session", s.ID()), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "reload incomplete", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"datasets": s.LoadedDatasets()})
}

func (h *DashboardHandler) session(c *gin.Context) (*dashboard.Session, bool) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return s, true
}
