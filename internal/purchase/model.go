package purchase

import "time"

// Purchase request lifecycle. A request moves from pending to exactly one
// of approved or rejected and is never deleted afterwards.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Request is a user's claim of an out-of-band payment awaiting an admin
// decision. Username is a denormalized snapshot taken at submission time.
type Request struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Username    string    `json:"username"`
	Amount      string    `json:"amount"`
	Method      string    `json:"method"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}
