package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/ecolog/internal/domain/models"
	"github.com/mamadbah2/ecolog/internal/emissions"
	"github.com/mamadbah2/ecolog/internal/service/logform"
)

// Submitter saves a completed log form.
type Submitter interface {
	Submit(ctx context.Context, token string, form *logform.Form) (logform.Confirmation, error)
}

// LogHandler serves the log activity form.
type LogHandler struct {
	submitter Submitter
	loc       *time.Location
	logger    *zap.Logger
	now       func() time.Time
}

// NewLogHandler constructs the HTTP handler adapter. Dates default to today in loc.
func NewLogHandler(submitter Submitter, loc *time.Location, logger *zap.Logger) *LogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &LogHandler{submitter: submitter, loc: loc, logger: logger, now: time.Now}
}

type logPage struct {
	Token          string
	Categories     []models.Category
	Values         logform.Values
	Options        []string
	Unit           string
	ShowActivity   bool
	ShowQuantity   bool
	HasPreview     bool
	Preview        float64
	PreviewEmitted bool
	Saving         bool
	Error          string
	Confirmation   *logform.Confirmation
}

// Show renders the form. Query parameters replay the field choices so each
// change re-renders the form with the next field unlocked and a fresh preview.
func (h *LogHandler) Show(c *gin.Context) {
	form := logform.FromValues(logform.Values{
		Category:         c.Query("category"),
		Activity:         c.Query("activity"),
		Quantity:         c.Query("quantity"),
		Date:             c.Query("date"),
		PreviousCategory: c.Query("prev_category"),
	}, h.today())

	c.HTML(http.StatusOK, "log.html", h.page(form, tokenOrNew(c.Query("token"))))
}

// Submit posts the form to the backend. Failures keep every entered value.
func (h *LogHandler) Submit(c *gin.Context) {
	form := logform.FromValues(logform.Values{
		Category: c.PostForm("category"),
		Activity: c.PostForm("activity"),
		Quantity: c.PostForm("quantity"),
		Date:     c.PostForm("date"),
	}, h.today())
	token := tokenOrNew(c.PostForm("token"))

	page := h.page(form, token)
	conf, err := h.submitter.Submit(c.Request.Context(), token, form)
	switch {
	case err == nil:
		page.Confirmation = &conf
		// a fresh token so a reload of this page cannot double-post
		page.Token = uuid.NewString()
		c.HTML(http.StatusCreated, "log.html", page)
	case errors.Is(err, logform.ErrIncomplete):
		c.HTML(http.StatusUnprocessableEntity, "log.html", page)
	case errors.Is(err, logform.ErrSubmitInFlight):
		page.Saving = true
		c.HTML(http.StatusConflict, "log.html", page)
	default:
		h.logger.Warn("activity submission failed", zap.String("token", token), zap.Error(err))
		page.Error = logform.SaveFailedMessage
		c.HTML(http.StatusBadGateway, "log.html", page)
	}
}

func (h *LogHandler) page(form *logform.Form, token string) logPage {
	page := logPage{
		Token:        token,
		Categories:   models.Categories,
		Values:       form.Values(),
		Options:      form.Options(),
		Unit:         form.Unit(),
		ShowActivity: form.Stage() >= logform.StageChooseActivity,
		ShowQuantity: form.Stage() >= logform.StageEnterQuantity,
	}
	if co2, ok := form.Preview(); ok {
		page.HasPreview = true
		page.Preview = co2
		page.PreviewEmitted = emissions.Emitted(co2)
	}
	return page
}

func (h *LogHandler) today() time.Time {
	return h.now().In(h.loc)
}

func tokenOrNew(token string) string {
	if _, err := uuid.Parse(token); err == nil {
		return token
	}
	return uuid.NewString()
}
