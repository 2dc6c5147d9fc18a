package model

import "time"

// Agreement is a point-in-time snapshot of a tenancy. Later rent changes do
// not rewrite an existing agreement.
type Agreement struct {
	ID             string    `json:"id"`
	LandlordID     string    `json:"landlord_id"`
	TenantID       string    `json:"tenant_id"`
	UnitID         string    `json:"unit_id"`
	Rent           int64     `json:"rent"`
	Advance        int64     `json:"advance"`
	StartDate      string    `json:"start_date"`
	DurationMonths int       `json:"duration_months"`
	Terms          string    `json:"terms"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
