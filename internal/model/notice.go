package model

import "time"

type Notice struct {
	ID         string    `json:"id"`
	LandlordID string    `json:"landlord_id"`
	FromID     string    `json:"from_id"`
	ToID       string    `json:"to_id"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	StatusNote string    `json:"status_note"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// NoticeStatusChange is one entry of a notice's append-only status history.
type NoticeStatusChange struct {
	ID        int64     `json:"id"`
	NoticeID  string    `json:"notice_id"`
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}
