package model

import "time"

// Payment methods accepted by the write boundary.
const (
	MethodBkash  = "bkash"
	MethodNagad  = "nagad"
	MethodRocket = "rocket"
	MethodBank   = "bank"
	MethodCash   = "cash"
)

// Payment types. TypeRent is the rent sub-ledger; everything else is a
// utility category. An empty type on old records is treated as rent.
const (
	TypeRent        = "rent"
	TypeElectricity = "electricity"
	TypeGas         = "gas"
	TypeWater       = "water"
	TypeService     = "service"
	TypeOther       = "other"
)

type Payment struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	LandlordID string    `json:"landlord_id"`
	Amount     int64     `json:"amount"`
	Method     string    `json:"method"`
	MonthKey   string    `json:"month_key"`
	Status     string    `json:"status"`
	Type       string    `json:"type"`
	Note       string    `json:"note"`
	RecordedBy string    `json:"recorded_by"`
	PaidAt     time.Time `json:"paid_at"`
}
