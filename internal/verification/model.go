package verification

import "time"

// Record is an outstanding one-time code bound to a canonical phone number.
// At most one live record exists per phone; a newer request replaces it.
type Record struct {
	Phone     string
	Code      string
	ExpiresAt time.Time
}

// Live reports whether the record is still valid at the given instant.
func (r Record) Live(now time.Time) bool {
	return now.Before(r.ExpiresAt)
}
