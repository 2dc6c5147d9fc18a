package model

import "time"

type Expense struct {
	ID          string    `json:"id"`
	LandlordID  string    `json:"landlord_id"`
	PropertyID  *string   `json:"property_id"`
	Category    string    `json:"category"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}
