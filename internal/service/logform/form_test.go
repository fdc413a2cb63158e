package logform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/ecolog/internal/domain/models"
)

var today = time.Date(2025, time.December, 23, 9, 0, 0, 0, time.UTC)

func TestNewFormDefaultsToToday(t *testing.T) {
	f := New(today)
	assert.Equal(t, "2025-12-23", f.Date())
	assert.Equal(t, StageChooseCategory, f.Stage())
	assert.Nil(t, f.Options())
	_, ok := f.Preview()
	assert.False(t, ok)
	assert.False(t, f.CanSubmit())
}

func TestFieldsUnlockInOrder(t *testing.T) {
	f := New(today)

	f.SetActivity("car")
	f.SetQuantity("20")
	assert.Equal(t, StageChooseCategory, f.Stage())
	assert.Empty(t, f.Activity())
	assert.Empty(t, f.Quantity())

	f.SetCategory("Transport")
	assert.Equal(t, StageChooseActivity, f.Stage())
	assert.Equal(t, []string{"car", "bus", "train", "bike", "walk"}, f.Options())

	f.SetQuantity("20")
	assert.Empty(t, f.Quantity(), "quantity is locked until an activity is chosen")

	f.SetActivity("car")
	assert.Equal(t, StageEnterQuantity, f.Stage())
	_, ok := f.Preview()
	assert.False(t, ok)

	f.SetQuantity("20")
	assert.Equal(t, StageReady, f.Stage())
	co2, ok := f.Preview()
	require.True(t, ok)
	assert.InDelta(t, 4.20, co2, 1e-9)
	assert.True(t, f.CanSubmit())
	assert.Equal(t, "Car (20 km)", f.Details())
}

func TestChangingCategoryResetsDownstreamFields(t *testing.T) {
	f := FromValues(Values{Category: "Food", Activity: "beef", Quantity: "2"}, today)
	require.True(t, f.CanSubmit())

	f.SetCategory("Energy")
	assert.Equal(t, models.CategoryEnergy, f.Category())
	assert.Empty(t, f.Activity())
	assert.Empty(t, f.Quantity())
	_, ok := f.Preview()
	assert.False(t, ok)
	assert.Equal(t, StageChooseActivity, f.Stage())
}

func TestChangingActivityRecomputesPreview(t *testing.T) {
	f := FromValues(Values{Category: "Food", Activity: "beef", Quantity: "2"}, today)
	co2, _ := f.Preview()
	assert.InDelta(t, 14.0, co2, 1e-9)

	f.SetActivity("vegan")
	co2, ok := f.Preview()
	require.True(t, ok)
	assert.InDelta(t, 1.6, co2, 1e-9)
	assert.Equal(t, "2", f.Quantity())
}

func TestRecycledScenario(t *testing.T) {
	f := FromValues(Values{Category: "Waste", Activity: "recycled", Quantity: "3"}, today)
	co2, ok := f.Preview()
	require.True(t, ok)
	assert.InDelta(t, -1.50, co2, 1e-9)
	assert.Equal(t, "Recycled (3 servings/items)", f.Details())
}

func TestUnknownActivityBlocksSubmission(t *testing.T) {
	f := FromValues(Values{Category: "Transport", Activity: "rocket", Quantity: "5"}, today)
	assert.Equal(t, StageReady, f.Stage())
	_, ok := f.Preview()
	assert.False(t, ok)
	assert.False(t, f.CanSubmit())
}

func TestNonNumericQuantityBlocksSubmission(t *testing.T) {
	f := FromValues(Values{Category: "Energy", Activity: "heating", Quantity: "lots"}, today)
	_, ok := f.Preview()
	assert.False(t, ok)
	assert.False(t, f.CanSubmit())
}

func TestUnknownCategoryStaysAtFirstStage(t *testing.T) {
	f := FromValues(Values{Category: "Water", Activity: "tap", Quantity: "1"}, today)
	assert.Equal(t, StageChooseCategory, f.Stage())
	assert.False(t, f.CanSubmit())
}

func TestFromValuesKeepsDateAndRoundTrips(t *testing.T) {
	in := Values{Category: "Energy", Activity: "Electricity", Quantity: "2.5", Date: "2025-12-20"}
	f := FromValues(in, today)

	assert.Equal(t, in, f.Values())
	assert.Equal(t, "hours/kWh", f.Unit())
	assert.Equal(t, "Electricity (2.5 hours/kWh)", f.Details())
	co2, ok := f.Preview()
	require.True(t, ok)
	assert.InDelta(t, 1.0, co2, 1e-9)
}

func TestClearingActivityClearsQuantity(t *testing.T) {
	f := FromValues(Values{Category: "Transport", Activity: "bus", Quantity: "10"}, today)
	f.SetActivity("")
	assert.Empty(t, f.Quantity())
	assert.Equal(t, StageChooseActivity, f.Stage())
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "choose_category", StageChooseCategory.String())
	assert.Equal(t, "ready", StageReady.String())
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Car", Capitalize("car"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Émissions", Capitalize("émissions"))
}

func TestFromValuesDropsStaleFieldsWhenCategoryChanged(t *testing.T) {
	f := FromValues(Values{Category: "Energy", Activity: "beef", Quantity: "2", PreviousCategory: "Food"}, today)
	assert.Equal(t, models.CategoryEnergy, f.Category())
	assert.Empty(t, f.Activity())
	assert.Empty(t, f.Quantity())
	assert.Equal(t, StageChooseActivity, f.Stage())

	f = FromValues(Values{Category: "Food", Activity: "beef", Quantity: "2", PreviousCategory: "Food"}, today)
	assert.True(t, f.CanSubmit())
}
