// Package emissions holds the static emission factor table and the estimate
// arithmetic used by the log form.
package emissions

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mamadbah2/ecolog/internal/domain/models"
)

// Factor is the CO2 coefficient of one activity type, in kg per unit.
type Factor struct {
	Activity  string  `json:"activity"`
	KgPerUnit float64 `json:"kg_per_unit"`
}

// factors keeps declaration order so the form lists options predictably.
var factors = map[models.Category][]Factor{
	models.CategoryTransport: {
		{Activity: "car", KgPerUnit: 0.21},
		{Activity: "bus", KgPerUnit: 0.08},
		{Activity: "train", KgPerUnit: 0.04},
		{Activity: "bike", KgPerUnit: 0},
		{Activity: "walk", KgPerUnit: 0},
	},
	models.CategoryFood: {
		{Activity: "beef", KgPerUnit: 7.0},
		{Activity: "chicken", KgPerUnit: 2.5},
		{Activity: "fish", KgPerUnit: 2.0},
		{Activity: "vegetarian", KgPerUnit: 1.2},
		{Activity: "vegan", KgPerUnit: 0.8},
	},
	models.CategoryEnergy: {
		{Activity: "electricity", KgPerUnit: 0.4},
		{Activity: "heating", KgPerUnit: 0.2},
	},
	models.CategoryWaste: {
		{Activity: "recycled", KgPerUnit: -0.5},
		{Activity: "landfill", KgPerUnit: 0.6},
	},
}

// Lookup returns the factor registered for the pair. Activity types match
// case-insensitively.
func Lookup(category models.Category, activityType string) (float64, bool) {
	name := strings.ToLower(strings.TrimSpace(activityType))
	if name == "" {
		return 0, false
	}
	for _, f := range factors[category] {
		if f.Activity == name {
			return f.KgPerUnit, true
		}
	}
	return 0, false
}

// Calculate estimates the CO2 of an activity, rounded half-up to 2 decimals.
// It reports false when the category or activity type is missing or when no
// factor is registered for the pair; callers treat that as "nothing to show yet".
// Quantities are not range checked.
func Calculate(category models.Category, activityType string, quantity float64) (float64, bool) {
	if category == "" {
		return 0, false
	}
	factor, ok := Lookup(category, activityType)
	if !ok {
		return 0, false
	}
	return Round(factor*quantity, 2), true
}

// Options lists the activity types known for a category.
func Options(category models.Category) []string {
	list := factors[category]
	out := make([]string, 0, len(list))
	for _, f := range list {
		out = append(out, f.Activity)
	}
	return out
}

// Table returns a copy of the factor table.
func Table() map[models.Category][]Factor {
	out := make(map[models.Category][]Factor, len(factors))
	for c, list := range factors {
		out[c] = append([]Factor(nil), list...)
	}
	return out
}

// Unit names what one unit of quantity means for a category.
func Unit(category models.Category) string {
	switch category {
	case models.CategoryTransport:
		return "km"
	case models.CategoryEnergy:
		return "hours/kWh"
	default:
		return "servings/items"
	}
}

// ParseQuantity reads the quantity as typed in the form. An empty or
// non-numeric value reports false.
func ParseQuantity(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// Round rounds half away from zero to the given number of decimals.
func Round(value float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(value*pow) / pow
}

// Signed formats a CO2 amount with the given decimals. Any positive amount is
// an emission and gets a "+" prefix, even when it rounds to zero. Savings keep
// their own sign and a rounded zero is never shown as "-0".
func Signed(value float64, decimals int) string {
	rounded := Round(value, decimals)
	if rounded == 0 {
		rounded = 0
	}
	label := fmt.Sprintf("%.*f", decimals, rounded)
	if Emitted(value) {
		return "+" + label
	}
	return label
}

// Emitted reports whether an amount adds CO2 rather than saving it.
func Emitted(value float64) bool {
	return value > 0
}
