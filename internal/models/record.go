package models

import (
	"fmt"
	"time"
)

type Record struct {
	ID         string    `json:"id"`
	PlaceID    string    `json:"placeId"`
	Date       time.Time `json:"date"`
	MoneyGiven float64   `json:"moneyGiven"`
	MoneyUsed  float64   `json:"moneyUsed"`
	PowerUnits float64   `json:"powerUnits"`
	CreatedAt  time.Time `json:"createdAt"`
}

// recordDateLayouts are the accepted forms for a record date. Clients send
// RFC3339, ISO-8601 without a zone (fractional seconds optional), or a bare
// date.
var recordDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseRecordDate parses a record date string in any accepted layout.
func ParseRecordDate(s string) (time.Time, error) {
	for _, layout := range recordDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
