// FilePath: internal/models/api.models.filters.go
package models

import "time"

// MeasureFilters defines the available query filters for measure listings.
// Decoded from the query string with gorilla/schema.
type MeasureFilters struct {
	IsleID string     `schema:"isle_id"`
	From   *time.Time `schema:"from"`
	To     *time.Time `schema:"to"`
}

// Matches reports whether a measure passes the filter set.
func (f MeasureFilters) Matches(m *Measure) bool {
	if f.IsleID != "" && m.IsleID != f.IsleID {
		return false
	}
	if f.From != nil && m.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && m.Timestamp.After(*f.To) {
		return false
	}
	return true
}
