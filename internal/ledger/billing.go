package ledger

import (
	"github.com/munsiapp/munsi/internal/model"
	"github.com/munsiapp/munsi/internal/monthkey"
)

// RentPaid returns the sum of a tenant's rent payments for a month. Records
// with no type are legacy rent and count toward the total.
func (l *Ledger) RentPaid(tenantID, monthKey string) (int64, error) {
	return l.payments.SumRent(tenantID, monthKey)
}

// UtilityPaid returns the sum of a tenant's utility payments for a month,
// optionally restricted to one category. An empty utilityType sums them all.
func (l *Ledger) UtilityPaid(tenantID, monthKey, utilityType string) (int64, error) {
	return l.payments.SumUtility(tenantID, monthKey, utilityType)
}

// IsFullyPaid reports whether a tenant's summed rent payments for a month
// cover its current rent. The stored per-payment status flag is advisory
// metadata and never consulted here; the sum-vs-rent comparison is the
// authoritative answer. An unassigned tenant has no obligation and is always
// considered paid.
func (l *Ledger) IsFullyPaid(tenant *model.Tenant, monthKey string) (bool, error) {
	if tenant.UnitID == nil {
		return true, nil
	}
	paid, err := l.RentPaid(tenant.ID, monthKey)
	if err != nil {
		return false, err
	}
	return paid >= tenant.Rent, nil
}

// DueTenant is one row of the landlord's due list for a month.
type DueTenant struct {
	Tenant    model.Tenant `json:"tenant"`
	MonthKey  string       `json:"month_key"`
	RentPaid  int64        `json:"rent_paid"`
	Remaining int64        `json:"remaining"`
}

// DueTenants lists the landlord's assigned tenants whose summed rent payments
// for the month fall short of their current rent.
func (l *Ledger) DueTenants(landlordID, monthKey string) ([]DueTenant, error) {
	if !monthkey.Valid(monthKey) {
		return nil, invalidf("month key must be YYYY-MM, got %q", monthKey)
	}
	tenants, err := l.tenants.ListByLandlord(landlordID)
	if err != nil {
		return nil, err
	}

	var due []DueTenant
	for _, t := range tenants {
		if t.UnitID == nil {
			continue
		}
		paid, err := l.RentPaid(t.ID, monthKey)
		if err != nil {
			return nil, err
		}
		if paid < t.Rent {
			due = append(due, DueTenant{
				Tenant:    t,
				MonthKey:  monthKey,
				RentPaid:  paid,
				Remaining: t.Rent - paid,
			})
		}
	}
	return due, nil
}

// MonthTotals aggregates a landlord's collections and expenses for one month.
type MonthTotals struct {
	MonthKey         string           `json:"month_key"`
	RentCollected    int64            `json:"rent_collected"`
	UtilityCollected int64            `json:"utility_collected"`
	ByCategory       map[string]int64 `json:"by_category"`
	Expenses         int64            `json:"expenses"`
	NetProfit        int64            `json:"net_profit"`
}

// MonthlyTotals computes landlord-level collected totals and net profit for a
// month by summing across all of the landlord's tenants.
func (l *Ledger) MonthlyTotals(landlordID, monthKey string) (*MonthTotals, error) {
	if !monthkey.Valid(monthKey) {
		return nil, invalidf("month key must be YYYY-MM, got %q", monthKey)
	}
	rent, utility, err := l.payments.SumLandlordMonth(landlordID, monthKey)
	if err != nil {
		return nil, err
	}
	byCategory, err := l.payments.SumByCategory(landlordID, monthKey)
	if err != nil {
		return nil, err
	}
	expenses, err := l.expenses.SumByLandlordMonth(landlordID, monthKey)
	if err != nil {
		return nil, err
	}
	return &MonthTotals{
		MonthKey:         monthKey,
		RentCollected:    rent,
		UtilityCollected: utility,
		ByCategory:       byCategory,
		Expenses:         expenses,
		NetProfit:        rent + utility - expenses,
	}, nil
}

// Trend repeats the monthly aggregation for the n trailing months ending at
// endMonth, oldest first. Month arithmetic rolls over year boundaries.
func (l *Ledger) Trend(landlordID, endMonth string, n int) ([]MonthTotals, error) {
	keys, err := monthkey.Trailing(endMonth, n)
	if err != nil {
		return nil, invalidf("%v", err)
	}
	trend := make([]MonthTotals, 0, len(keys))
	for _, k := range keys {
		t, err := l.MonthlyTotals(landlordID, k)
		if err != nil {
			return nil, err
		}
		trend = append(trend, *t)
	}
	return trend, nil
}
