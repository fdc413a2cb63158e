package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format exchanged with the backend and the forms.
const DateLayout = "2006-01-02"

// Category enumerates the activity groups tracked by EcoLog.
type Category string

const (
	CategoryTransport Category = "Transport"
	CategoryFood      Category = "Food"
	CategoryEnergy    Category = "Energy"
	CategoryWaste     Category = "Waste"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryTransport, CategoryFood, CategoryEnergy, CategoryWaste}

// ParseCategory matches the exact category name. The empty string and unknown
// names report false.
func ParseCategory(value string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == value {
			return c, true
		}
	}
	return "", false
}

// CO2 is a signed amount of kilograms of CO2-equivalent. Positive values are
// emitted, negative values are avoided.
//
// The backend may serialise it as a number or as a decimal string; anything
// that does not parse decodes as zero.
type CO2 float64

// UnmarshalJSON implements json.Unmarshaler.
func (c *CO2) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*c = 0
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*c = 0
		return nil
	}
	*c = CO2(value)
	return nil
}

// Float returns the raw value.
func (c CO2) Float() float64 {
	return float64(c)
}

// timestampLayouts are tried in order when decoding created_at.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// Timestamp is a creation time as sent by the backend. RFC3339, offset-less
// and space-separated forms are accepted; offset-less values are UTC. Anything
// else decodes as the zero time.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

// Activity mirrors one record of the backend activities endpoint.
type Activity struct {
	ID          int       `json:"id"`
	Category    Category  `json:"category"`
	Details     string    `json:"details"`
	CO2Estimate CO2       `json:"co2_estimate"`
	Date        string    `json:"date"`
	CreatedAt   Timestamp `json:"created_at"`
}

// Day parses the activity date. The boolean is false when the backend sent
// something that is not a YYYY-MM-DD date.
func (a Activity) Day() (time.Time, bool) {
	str := a.Date
	if len(str) > 10 {
		str = str[:10]
	}
	day, err := time.Parse(DateLayout, str)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// NewActivity is the payload posted to the backend when logging an activity.
type NewActivity struct {
	Category    Category `json:"category"`
	Details     string   `json:"details"`
	CO2Estimate float64  `json:"co2_estimate"`
	Date        string   `json:"date"`
}
