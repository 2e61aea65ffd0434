package audit

import "time"

// Log entry categories.
const (
	TypeAuth      = "AUTH"
	TypeSignal    = "SIGNAL"
	TypeLiquidity = "LIQUIDITY"
	TypeAlert     = "ALERT"
	TypeSystem    = "SYSTEM"
)

// Entry is an append-only audit record. Entries are never updated or
// deleted. Delta carries a signed balance change for LIQUIDITY entries.
type Entry struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Delta     string    `json:"delta"`
}

// ValidType reports whether t is one of the known entry categories.
func ValidType(t string) bool {
	switch t {
	case TypeAuth, TypeSignal, TypeLiquidity, TypeAlert, TypeSystem:
		return true
	}
	return false
}
