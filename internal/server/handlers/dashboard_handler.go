package handlers

import (
	"context"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/ecolog/internal/domain/models"
	"github.com/mamadbah2/ecolog/internal/service/dashboard"
)

// DashboardService builds the dashboard view.
type DashboardService interface {
	Load(ctx context.Context, filter dashboard.Filter) dashboard.View
}

// DashboardHandler renders the home page.
type DashboardHandler struct {
	svc    DashboardService
	logger *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(svc DashboardService, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, logger: logger}
}

// Bar is one column of the weekly chart.
type Bar struct {
	models.DailyTotal
	Height   int
	Negative bool
}

// Show renders the dashboard for the search and category query parameters.
// The search text is matched as typed. An unknown category is treated as no filter.
func (h *DashboardHandler) Show(c *gin.Context) {
	filter := dashboard.Filter{Search: c.Query("search")}
	if category, ok := models.ParseCategory(c.Query("category")); ok {
		filter.Category = category
	}

	view := h.svc.Load(c.Request.Context(), filter)

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"View": view,
		"Bars": chartBars(view.Chart),
	})
}

// chartBars scales the series so the largest magnitude fills the chart.
func chartBars(series []models.DailyTotal) []Bar {
	var peak float64
	for _, d := range series {
		peak = math.Max(peak, math.Abs(d.CO2))
	}

	bars := make([]Bar, 0, len(series))
	for _, d := range series {
		height := 0
		if peak > 0 {
			height = int(math.Round(math.Abs(d.CO2) / peak * 100))
		}
		bars = append(bars, Bar{DailyTotal: d, Height: height, Negative: d.CO2 < 0})
	}
	return bars
}
