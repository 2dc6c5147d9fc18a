package ledger

import (
	"github.com/munsiapp/munsi/internal/monthkey"
)

// PropertyOccupancy is one row of the per-property occupancy report.
type PropertyOccupancy struct {
	PropertyID string `json:"property_id"`
	Name       string `json:"name"`
	Total      int    `json:"total"`
	Occupied   int    `json:"occupied"`
	Vacant     int    `json:"vacant"`
}

// OccupancyByProperty reports unit counts for each of a landlord's properties.
func (l *Ledger) OccupancyByProperty(landlordID string) ([]PropertyOccupancy, error) {
	properties, err := l.properties.ListByLandlord(landlordID)
	if err != nil {
		return nil, err
	}
	report := make([]PropertyOccupancy, 0, len(properties))
	for _, p := range properties {
		total, occupied, err := l.units.CountByProperty(p.ID)
		if err != nil {
			return nil, err
		}
		report = append(report, PropertyOccupancy{
			PropertyID: p.ID,
			Name:       p.Name,
			Total:      total,
			Occupied:   occupied,
			Vacant:     total - occupied,
		})
	}
	return report, nil
}

// DashboardSummary is the landlord's at-a-glance view for the current month.
type DashboardSummary struct {
	MonthKey         string `json:"month_key"`
	Properties       int    `json:"properties"`
	Units            int    `json:"units"`
	OccupiedUnits    int    `json:"occupied_units"`
	Tenants          int    `json:"tenants"`
	RentCollected    int64  `json:"rent_collected"`
	UtilityCollected int64  `json:"utility_collected"`
	Expenses         int64  `json:"expenses"`
	NetProfit        int64  `json:"net_profit"`
	DueCount         int    `json:"due_count"`
	DueAmount        int64  `json:"due_amount"`
}

// Dashboard assembles portfolio counts, the month's collections, and the due
// list size for one landlord and month.
func (l *Ledger) Dashboard(landlordID, monthKey string) (*DashboardSummary, error) {
	if !monthkey.Valid(monthKey) {
		return nil, invalidf("month key must be YYYY-MM, got %q", monthKey)
	}
	properties, err := l.properties.ListByLandlord(landlordID)
	if err != nil {
		return nil, err
	}
	units, err := l.units.ListByLandlord(landlordID)
	if err != nil {
		return nil, err
	}
	occupied := 0
	for _, u := range units {
		if !u.IsVacant {
			occupied++
		}
	}
	tenants, err := l.tenants.ListByLandlord(landlordID)
	if err != nil {
		return nil, err
	}
	totals, err := l.MonthlyTotals(landlordID, monthKey)
	if err != nil {
		return nil, err
	}
	due, err := l.DueTenants(landlordID, monthKey)
	if err != nil {
		return nil, err
	}
	var dueAmount int64
	for _, d := range due {
		dueAmount += d.Remaining
	}

	return &DashboardSummary{
		MonthKey:         monthKey,
		Properties:       len(properties),
		Units:            len(units),
		OccupiedUnits:    occupied,
		Tenants:          len(tenants),
		RentCollected:    totals.RentCollected,
		UtilityCollected: totals.UtilityCollected,
		Expenses:         totals.Expenses,
		NetProfit:        totals.NetProfit,
		DueCount:         len(due),
		DueAmount:        dueAmount,
	}, nil
}
