package model

import "time"

type Tenant struct {
	ID         string    `json:"id"`
	LandlordID string    `json:"landlord_id"`
	UnitID     *string   `json:"unit_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	NID        string    `json:"nid"`
	Members    int       `json:"members"`
	Rent       int64     `json:"rent"`
	Advance    int64     `json:"advance"`
	MoveInDate string    `json:"move_in_date"`
	Notes      string    `json:"notes"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// RentChange is one entry of a tenant's append-only rent history.
// PrevRent is nil for the initial entry written at assignment.
type RentChange struct {
	ID        int64     `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Rent      int64     `json:"rent"`
	PrevRent  *int64    `json:"prev_rent"`
	Reason    string    `json:"reason"`
	ChangedAt time.Time `json:"changed_at"`
}
