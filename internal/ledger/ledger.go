// Package ledger implements the tenancy and billing core: occupancy
// coordination between tenants and units, the append-only rent audit trail,
// payment aggregation, notice ticketing, and the read-only reporting surface.
// Every multi-record operation runs inside a single transaction so the
// occupancy and rent-audit invariants cannot be observed half-applied.
package ledger

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/munsiapp/munsi/internal/model"
	"github.com/munsiapp/munsi/internal/store"
)

type Ledger struct {
	db         *sql.DB
	landlords  *store.LandlordStore
	tenants    *store.TenantStore
	properties *store.PropertyStore
	units      *store.UnitStore
	payments   *store.PaymentStore
	notices    *store.NoticeStore
	agreements *store.AgreementStore
	expenses   *store.ExpenseStore
	logs       *store.ActionLogStore
	logger     *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Ledger {
	return &Ledger{
		db:         db,
		landlords:  store.NewLandlordStore(db),
		tenants:    store.NewTenantStore(db),
		properties: store.NewPropertyStore(db),
		units:      store.NewUnitStore(db),
		payments:   store.NewPaymentStore(db),
		notices:    store.NewNoticeStore(db),
		agreements: store.NewAgreementStore(db),
		expenses:   store.NewExpenseStore(db),
		logs:       store.NewActionLogStore(db),
		logger:     logger,
	}
}

// Store accessors for the read-only query surface.

func (l *Ledger) Landlords() *store.LandlordStore   { return l.landlords }
func (l *Ledger) Tenants() *store.TenantStore       { return l.tenants }
func (l *Ledger) Properties() *store.PropertyStore  { return l.properties }
func (l *Ledger) Units() *store.UnitStore           { return l.units }
func (l *Ledger) Payments() *store.PaymentStore     { return l.payments }
func (l *Ledger) Notices() *store.NoticeStore       { return l.notices }
func (l *Ledger) Agreements() *store.AgreementStore { return l.agreements }
func (l *Ledger) Expenses() *store.ExpenseStore     { return l.expenses }
func (l *Ledger) ActionLogs() *store.ActionLogStore { return l.logs }

func (l *Ledger) log(action, userID, detail string) {
	if err := l.logs.Append(action, userID, detail); err != nil {
		l.logger.Error("append action log", "action", action, "error", err)
	}
}

// LandlordInput carries the fields a landlord supplies at registration.
type LandlordInput struct {
	Name      string
	Phone     string
	Email     string
	Address   string
	Location  string
	HoldingNo string
	TinNo     string
}

// RegisterLandlord creates a landlord profile keyed by the external auth ID
// and mints its invite code.
func (l *Ledger) RegisterLandlord(userID string, in LandlordInput) (*model.Landlord, error) {
	if userID == "" {
		return nil, invalidf("user id is required")
	}
	if in.Name == "" {
		return nil, invalidf("name is required")
	}
	existing, err := l.landlords.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, invalidf("landlord %s already registered", userID)
	}

	created, err := l.landlords.Create(model.Landlord{
		ID:         userID,
		InviteCode: store.NewInviteCode(),
		Name:       in.Name,
		Phone:      in.Phone,
		Email:      in.Email,
		Address:    in.Address,
		Location:   in.Location,
		HoldingNo:  in.HoldingNo,
		TinNo:      in.TinNo,
	})
	if err != nil {
		return nil, err
	}
	l.log("register", userID, fmt.Sprintf("Landlord: %s (%s)", created.Name, created.InviteCode))
	return created, nil
}
