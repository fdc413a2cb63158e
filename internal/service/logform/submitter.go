package logform

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/ecolog/internal/domain/models"
	"github.com/mamadbah2/ecolog/internal/observability"
)

// SaveFailedMessage is shown to the user when the backend rejects a submission.
const SaveFailedMessage = "Error saving activity. Is backend running?"

var (
	// ErrIncomplete indicates the form cannot be submitted yet.
	ErrIncomplete = errors.New("form is incomplete")
	// ErrSubmitInFlight indicates the same form is already being saved.
	ErrSubmitInFlight = errors.New("submission already in flight")
	// ErrSaveFailed wraps any backend failure while saving.
	ErrSaveFailed = errors.New("failed to save activity")
)

// Creator is the write side of the activities backend.
type Creator interface {
	CreateActivity(ctx context.Context, activity models.NewActivity) error
}

// Confirmation summarises a saved activity.
type Confirmation struct {
	Category models.Category
	Details  string
	CO2      float64
	Date     string
}

// Submitter posts completed forms, allowing one request in flight per form token.
type Submitter struct {
	creator Creator
	logger  *zap.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewSubmitter wires a new submitter.
func NewSubmitter(creator Creator, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{
		creator:  creator,
		logger:   logger,
		inFlight: make(map[string]struct{}),
	}
}

// Submit saves the form. Incomplete forms are a no-op returning ErrIncomplete.
// A second call with the same token while the first is outstanding returns
// ErrSubmitInFlight without contacting the backend.
func (s *Submitter) Submit(ctx context.Context, token string, form *Form) (Confirmation, error) {
	if form == nil || !form.CanSubmit() {
		return Confirmation{}, ErrIncomplete
	}

	if !s.acquire(token) {
		s.logger.Debug("duplicate submission ignored", zap.String("token", token))
		return Confirmation{}, ErrSubmitInFlight
	}
	defer s.release(token)

	co2, _ := form.Preview()
	payload := models.NewActivity{
		Category:    form.Category(),
		Details:     form.Details(),
		CO2Estimate: co2,
		Date:        form.Date(),
	}

	if err := s.creator.CreateActivity(ctx, payload); err != nil {
		s.logger.Error("failed to save activity", zap.String("category", string(payload.Category)), zap.Error(err))
		return Confirmation{}, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	observability.RecordActivityLogged(string(payload.Category))
	s.logger.Info("activity logged",
		zap.String("category", string(payload.Category)),
		zap.String("details", payload.Details),
		zap.Float64("co2_estimate", payload.CO2Estimate),
		zap.String("date", payload.Date))

	return Confirmation{
		Category: payload.Category,
		Details:  payload.Details,
		CO2:      co2,
		Date:     payload.Date,
	}, nil
}

func (s *Submitter) acquire(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[token]; busy {
		return false
	}
	s.inFlight[token] = struct{}{}
	return true
}

func (s *Submitter) release(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, token)
}
