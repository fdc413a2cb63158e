package models

import "time"

// DailyTotal is one bar of the 7-day emissions series.
type DailyTotal struct {
	Date  string  `bson:"date" json:"date"`
	Label string  `bson:"label" json:"label"`
	CO2   float64 `bson:"co2" json:"co2"`
}

// WeeklyReport aggregates the footprint of the 7 days ending on End.
type WeeklyReport struct {
	Start         string               `bson:"start" json:"start"`
	End           string               `bson:"end" json:"end"`
	Days          []DailyTotal         `bson:"days" json:"days"`
	ByCategory    map[Category]float64 `bson:"by_category" json:"by_category"`
	TotalCO2      float64              `bson:"total_co2" json:"total_co2"`
	DailyAverage  float64              `bson:"daily_average" json:"daily_average"`
	ActivityCount int                  `bson:"activity_count" json:"activity_count"`
	CreatedAt     time.Time            `bson:"created_at" json:"created_at"`
}
