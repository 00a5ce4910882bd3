package models

import "time"

// RateLimit tracks submissions from one IP within a rolling 24-hour window.
// A new record replaces the old one once ResetDate has passed; counts are
// never carried across windows.
type RateLimit struct {
	IP        string    `json:"ip"`
	Count     int       `json:"count"`
	ResetDate time.Time `json:"resetDate"`
}

// Expired reports whether the record's window has ended as of now.
func (r RateLimit) Expired(now time.Time) bool {
	return r.ResetDate.Before(now)
}
