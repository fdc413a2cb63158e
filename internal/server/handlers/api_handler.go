package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/ecolog/internal/domain/models"
	"github.com/mamadbah2/ecolog/internal/emissions"
	"github.com/mamadbah2/ecolog/internal/service/logform"
)

// APIHandler exposes the calculator as JSON for client-side previews.
type APIHandler struct{}

// NewAPIHandler constructs the JSON handler adapter.
func NewAPIHandler() *APIHandler {
	return &APIHandler{}
}

type previewResponse struct {
	CO2Estimate float64 `json:"co2_estimate"`
	Unit        string  `json:"unit"`
	Details     string  `json:"details"`
	Emitted     bool    `json:"emitted"`
}

// Preview estimates the CO2 for the category, activity and quantity query
// parameters. It answers 422 when no estimate can be computed yet.
func (h *APIHandler) Preview(c *gin.Context) {
	form := logform.FromValues(logform.Values{
		Category: c.Query("category"),
		Activity: c.Query("activity"),
		Quantity: c.Query("quantity"),
	}, time.Time{})

	co2, ok := form.Preview()
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no estimate available", "stage": form.Stage().String()})
		return
	}

	c.JSON(http.StatusOK, previewResponse{
		CO2Estimate: co2,
		Unit:        form.Unit(),
		Details:     form.Details(),
		Emitted:     emissions.Emitted(co2),
	})
}

type factorGroup struct {
	Category models.Category    `json:"category"`
	Unit     string             `json:"unit"`
	Factors  []emissions.Factor `json:"factors"`
}

// Factors lists the emission factor table in category display order.
func (h *APIHandler) Factors(c *gin.Context) {
	table := emissions.Table()
	out := make([]factorGroup, 0, len(models.Categories))
	for _, category := range models.Categories {
		out = append(out, factorGroup{
			Category: category,
			Unit:     emissions.Unit(category),
			Factors:  table[category],
		})
	}
	c.JSON(http.StatusOK, out)
}
