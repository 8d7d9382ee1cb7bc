package models

import "time"

// Match type labels, a coarse post-hoc banding for UI and audit.
const (
	MatchTypeImage       = "image"
	MatchTypeDescription = "description"
	MatchTypeLocation    = "location"
	MatchTypeCombined    = "combined"
)

// Match lifecycle: pending -> accepted|rejected, pending/accepted -> completed.
const (
	MatchStatusPending   = "pending"
	MatchStatusAccepted  = "accepted"
	MatchStatusRejected  = "rejected"
	MatchStatusCompleted = "completed"
)

// Match links a lost report to a found report with a confidence score.
// At most one match exists per (lost, found) pair.
type Match struct {
	ID              int64     `db:"id" json:"id"`
	LostItemID      int64     `db:"lost_item_id" json:"lost_item_id"`
	FoundItemID     int64     `db:"found_item_id" json:"found_item_id"`
	MatchType       string    `db:"match_type" json:"match_type"`
	ConfidenceScore float64   `db:"confidence_score" json:"confidence_score"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// ChatMessage is a message between the two parties of a match.
type ChatMessage struct {
	ID        int64     `db:"id" json:"id"`
	MatchID   int64     `db:"match_id" json:"match_id"`
	SenderID  int64     `db:"sender_id" json:"sender_id"`
	Message   string    `db:"message" json:"message"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
