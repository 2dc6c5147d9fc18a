package model

import "time"

type Landlord struct {
	ID         string    `json:"id"`
	InviteCode string    `json:"invite_code"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Address    string    `json:"address"`
	Location   string    `json:"location"`
	HoldingNo  string    `json:"holding_no"`
	TinNo      string    `json:"tin_no"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
