package model

import "time"

type ActionLog struct {
	ID     int64     `json:"id"`
	Action string    `json:"action"`
	UserID string    `json:"user_id"`
	Detail string    `json:"detail"`
	TS     time.Time `json:"ts"`
}
