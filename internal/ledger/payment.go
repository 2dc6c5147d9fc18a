package ledger

import (
	"fmt"

	"github.com/munsiapp/munsi/internal/model"
	"github.com/munsiapp/munsi/internal/monthkey"
	"github.com/munsiapp/munsi/internal/store"
)

var validMethods = map[string]bool{
	model.MethodBkash:  true,
	model.MethodNagad:  true,
	model.MethodRocket: true,
	model.MethodBank:   true,
	model.MethodCash:   true,
}

var validTypes = map[string]bool{
	model.TypeRent:        true,
	model.TypeElectricity: true,
	model.TypeGas:         true,
	model.TypeWater:       true,
	model.TypeService:     true,
	model.TypeOther:       true,
}

// PaymentInput carries the fields supplied when a payment is recorded. The
// amount is a confirmed figure from an external settlement channel; the
// ledger does not move money.
type PaymentInput struct {
	TenantID   string
	Amount     int64
	Method     string
	MonthKey   string
	Status     string
	Type       string
	Note       string
	RecordedBy string
}

// RecordPayment appends an immutable payment toward a tenant's monthly
// obligation. Multiple payments may accumulate toward the same (tenant,
// month, type); partial payment is the sum of them, and overpayment is
// accepted without clamping.
func (l *Ledger) RecordPayment(in PaymentInput) (*model.Payment, error) {
	if in.Amount <= 0 {
		return nil, invalidf("amount must be positive")
	}
	if !validMethods[in.Method] {
		return nil, invalidf("unknown payment method %q", in.Method)
	}
	if !monthkey.Valid(in.MonthKey) {
		return nil, invalidf("month key must be YYYY-MM, got %q", in.MonthKey)
	}
	if in.Type == "" {
		in.Type = model.TypeRent
	}
	if !validTypes[in.Type] {
		return nil, invalidf("unknown payment type %q", in.Type)
	}
	if in.Status == "" {
		in.Status = "paid"
	}
	if in.Status != "paid" && in.Status != "partial" {
		return nil, invalidf("status must be paid or partial, got %q", in.Status)
	}

	tenant, err := l.tenants.GetByID(in.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, notFoundf("tenant %s", in.TenantID)
	}

	created, err := l.payments.Create(model.Payment{
		ID:         store.NewID(),
		TenantID:   in.TenantID,
		LandlordID: tenant.LandlordID,
		Amount:     in.Amount,
		Method:     in.Method,
		MonthKey:   in.MonthKey,
		Status:     in.Status,
		Type:       in.Type,
		Note:       in.Note,
		RecordedBy: in.RecordedBy,
	})
	if err != nil {
		return nil, err
	}
	by := in.RecordedBy
	if by == "" {
		by = in.TenantID
	}
	l.log("payment", by, fmt.Sprintf("%d via %s for %s", in.Amount, in.Method, in.MonthKey))
	return created, nil
}

// EditPayment applies a privileged correction to a payment's amount and note.
// This is a bookkeeping fix, not a financial reversal.
func (l *Ledger) EditPayment(id string, amount int64, note string) (*model.Payment, error) {
	if amount <= 0 {
		return nil, invalidf("amount must be positive")
	}
	existing, err := l.payments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFoundf("payment %s", id)
	}
	updated, err := l.payments.UpdateCorrection(id, amount, note)
	if err != nil {
		return nil, err
	}
	l.log("edit_payment", existing.TenantID, fmt.Sprintf("Payment %s: %d -> %d", id, existing.Amount, amount))
	return updated, nil
}

// DeletePayment removes a payment as a privileged correction.
func (l *Ledger) DeletePayment(id string) error {
	existing, err := l.payments.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFoundf("payment %s", id)
	}
	if err := l.payments.Delete(id); err != nil {
		return err
	}
	l.log("delete_payment", existing.TenantID, fmt.Sprintf("Payment %s (%d)", id, existing.Amount))
	return nil
}
