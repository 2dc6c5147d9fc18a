package ledger

import (
	"fmt"

	"github.com/munsiapp/munsi/internal/model"
	"github.com/munsiapp/munsi/internal/store"
)

// ExpenseInput carries the fields supplied when an expense is recorded.
// PropertyID is optional; when set the expense is scoped to one property,
// otherwise it counts against the landlord's whole portfolio.
type ExpenseInput struct {
	PropertyID  *string
	Category    string
	Amount      int64
	Description string
	Date        string
}

// AddExpense records an operating cost against a landlord. Expenses reduce
// net profit in the monthly aggregation.
func (l *Ledger) AddExpense(landlordID string, in ExpenseInput) (*model.Expense, error) {
	if in.Amount <= 0 {
		return nil, invalidf("amount must be positive")
	}
	if in.Category == "" {
		return nil, invalidf("category is required")
	}
	if in.Date == "" {
		return nil, invalidf("date is required")
	}
	if in.PropertyID != nil {
		prop, err := l.properties.GetByID(*in.PropertyID)
		if err != nil {
			return nil, err
		}
		if prop == nil {
			return nil, notFoundf("property %s", *in.PropertyID)
		}
		if prop.LandlordID != landlordID {
			return nil, invalidf("property %s belongs to a different landlord", *in.PropertyID)
		}
	}

	created, err := l.expenses.Create(model.Expense{
		ID:          store.NewID(),
		LandlordID:  landlordID,
		PropertyID:  in.PropertyID,
		Category:    in.Category,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
	})
	if err != nil {
		return nil, err
	}
	l.log("expense", landlordID, fmt.Sprintf("%s: %d", in.Category, in.Amount))
	return created, nil
}

// DeleteExpense removes an expense record.
func (l *Ledger) DeleteExpense(id string) error {
	existing, err := l.expenses.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFoundf("expense %s", id)
	}
	if err := l.expenses.Delete(id); err != nil {
		return err
	}
	l.log("delete_expense", existing.LandlordID, fmt.Sprintf("Expense %s (%d)", id, existing.Amount))
	return nil
}
