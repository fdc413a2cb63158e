package logform

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/ecolog/internal/domain/models"
)

type fakeCreator struct {
	mu      sync.Mutex
	created []models.NewActivity
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeCreator) CreateActivity(ctx context.Context, activity models.NewActivity) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, activity)
	return nil
}

func TestSubmitPostsCompletedForm(t *testing.T) {
	creator := &fakeCreator{}
	sub := NewSubmitter(creator, nil)
	form := FromValues(Values{Category: "Transport", Activity: "car", Quantity: "20", Date: "2025-12-22"}, today)

	conf, err := sub.Submit(context.Background(), "tok", form)
	require.NoError(t, err)

	require.Len(t, creator.created, 1)
	assert.Equal(t, models.NewActivity{
		Category:    models.CategoryTransport,
		Details:     "Car (20 km)",
		CO2Estimate: 4.2,
		Date:        "2025-12-22",
	}, creator.created[0])
	assert.InDelta(t, 4.2, conf.CO2, 1e-9)
	assert.Equal(t, "Car (20 km)", conf.Details)
}

func TestSubmitIncompleteIsNoop(t *testing.T) {
	creator := &fakeCreator{}
	sub := NewSubmitter(creator, nil)

	for _, v := range []Values{
		{},
		{Category: "Food"},
		{Category: "Food", Activity: "beef"},
		{Category: "Food", Activity: "pizza", Quantity: "1"},
	} {
		_, err := sub.Submit(context.Background(), "tok", FromValues(v, today))
		assert.ErrorIs(t, err, ErrIncomplete)
	}
	_, err := sub.Submit(context.Background(), "tok", nil)
	assert.ErrorIs(t, err, ErrIncomplete)

	assert.Empty(t, creator.created)
}

func TestSubmitWrapsBackendFailure(t *testing.T) {
	cause := errors.New("connection refused")
	sub := NewSubmitter(&fakeCreator{err: cause}, nil)
	form := FromValues(Values{Category: "Waste", Activity: "landfill", Quantity: "1"}, today)

	_, err := sub.Submit(context.Background(), "tok", form)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSaveFailed)
	assert.ErrorIs(t, err, cause)

	// The token is released so the user can retry.
	sub2creator := &fakeCreator{}
	sub.creator = sub2creator
	_, err = sub.Submit(context.Background(), "tok", form)
	require.NoError(t, err)
	assert.Len(t, sub2creator.created, 1)
}

func TestSubmitRejectsConcurrentDuplicate(t *testing.T) {
	creator := &fakeCreator{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	sub := NewSubmitter(creator, nil)
	form := FromValues(Values{Category: "Food", Activity: "fish", Quantity: "1"}, today)

	done := make(chan error, 1)
	go func() {
		_, err := sub.Submit(context.Background(), "tok", form)
		done <- err
	}()
	<-creator.entered

	_, err := sub.Submit(context.Background(), "tok", form)
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(creator.block)
	require.NoError(t, <-done)
	assert.Len(t, creator.created, 1)
}

func TestSubmitDifferentTokensAreIndependent(t *testing.T) {
	creator := &fakeCreator{}
	sub := NewSubmitter(creator, nil)
	form := FromValues(Values{Category: "Food", Activity: "chicken", Quantity: "1"}, today)

	_, err := sub.Submit(context.Background(), "a", form)
	require.NoError(t, err)
	_, err = sub.Submit(context.Background(), "b", form)
	require.NoError(t, err)
	assert.Len(t, creator.created, 2)
}
