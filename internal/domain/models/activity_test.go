package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityDecodesNumericAndStringCO2(t *testing.T) {
	payload := `[
		{"id": 1, "category": "Transport", "details": "Car (20 km)", "co2_estimate": 4.2, "date": "2025-12-23", "created_at": "2025-12-23T10:30:00Z"},
		{"id": 2, "category": "Food", "details": "Beef (1 servings/items)", "co2_estimate": "7.00", "date": "2025-12-23", "created_at": "2025-12-23T13:15:00.123456Z"},
		{"id": 3, "category": "Waste", "details": "Recycled (1 servings/items)", "co2_estimate": null, "date": "2025-12-22"},
		{"id": 4, "category": "Energy", "details": "Heating (2 hours/kWh)", "co2_estimate": "n/a", "date": "2025-12-21"},
		{"id": 5, "category": "Energy", "details": "Electricity (1 hours/kWh)", "date": "2025-12-21"}
	]`

	var got []Activity
	require.NoError(t, json.Unmarshal([]byte(payload), &got))
	require.Len(t, got, 5)

	assert.Equal(t, 4.2, got[0].CO2Estimate.Float())
	assert.Equal(t, 7.0, got[1].CO2Estimate.Float())
	assert.Zero(t, got[2].CO2Estimate.Float())
	assert.Zero(t, got[3].CO2Estimate.Float())
	assert.Zero(t, got[4].CO2Estimate.Float())
	assert.Equal(t, CategoryFood, got[1].Category)
	assert.Equal(t, 2025, got[0].CreatedAt.Year())
}

func TestActivityDecodesLooseTimestamps(t *testing.T) {
	payload := `[
		{"id": 1, "category": "Food", "details": "Vegan (1 servings/items)", "co2_estimate": 0.8, "date": "2025-12-23", "created_at": "2025-12-23T10:30:00.123456"},
		{"id": 2, "category": "Food", "details": "Fish (1 servings/items)", "co2_estimate": 2, "date": "2025-12-23", "created_at": "2025-12-23 11:00:00"},
		{"id": 3, "category": "Food", "details": "Chicken (1 servings/items)", "co2_estimate": 2.5, "date": "2025-12-23", "created_at": "last tuesday"},
		{"id": 4, "category": "Food", "details": "Beef (1 servings/items)", "co2_estimate": 7, "date": "2025-12-23", "created_at": 1766485800}
	]`

	var got []Activity
	require.NoError(t, json.Unmarshal([]byte(payload), &got))
	require.Len(t, got, 4)

	assert.True(t, time.Date(2025, time.December, 23, 10, 30, 0, 123456000, time.UTC).Equal(got[0].CreatedAt.Time))
	assert.Equal(t, 11, got[1].CreatedAt.Hour())
	assert.True(t, got[2].CreatedAt.IsZero())
	assert.True(t, got[3].CreatedAt.IsZero())
	assert.Equal(t, 7.0, got[3].CO2Estimate.Float())
}

func TestActivityDay(t *testing.T) {
	day, ok := Activity{Date: "2025-12-23"}.Day()
	require.True(t, ok)
	assert.Equal(t, "2025-12-23", day.Format(DateLayout))

	day, ok = Activity{Date: "2025-12-23T00:00:00Z"}.Day()
	require.True(t, ok)
	assert.Equal(t, 23, day.Day())

	_, ok = Activity{Date: "yesterday"}.Day()
	assert.False(t, ok)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("Waste")
	assert.True(t, ok)
	assert.Equal(t, CategoryWaste, c)

	_, ok = ParseCategory("waste")
	assert.False(t, ok)
	_, ok = ParseCategory("")
	assert.False(t, ok)
}

func TestNewActivityWireShape(t *testing.T) {
	body, err := json.Marshal(NewActivity{
		Category:    CategoryTransport,
		Details:     "Car (20 km)",
		CO2Estimate: 4.2,
		Date:        "2025-12-23",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"Transport","details":"Car (20 km)","co2_estimate":4.2,"date":"2025-12-23"}`, string(body))
}
