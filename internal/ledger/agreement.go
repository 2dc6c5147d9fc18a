package ledger

import (
	"fmt"

	"github.com/munsiapp/munsi/internal/model"
	"github.com/munsiapp/munsi/internal/store"
)

// AgreementInput carries the fields supplied when an agreement is drawn up.
type AgreementInput struct {
	TenantID       string
	StartDate      string
	DurationMonths int
	Terms          string
}

// CreateAgreement snapshots the tenant's current tenancy terms (rent, advance,
// unit) into a new active agreement. The tenant must be assigned; later rent
// changes never rewrite the snapshot.
func (l *Ledger) CreateAgreement(landlordID string, in AgreementInput) (*model.Agreement, error) {
	if in.StartDate == "" {
		return nil, invalidf("start date is required")
	}
	if in.DurationMonths <= 0 {
		return nil, invalidf("duration must be positive")
	}
	tenant, err := l.tenants.GetByID(in.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, notFoundf("tenant %s", in.TenantID)
	}
	if tenant.LandlordID != landlordID {
		return nil, invalidf("tenant %s belongs to a different landlord", in.TenantID)
	}
	if tenant.UnitID == nil {
		return nil, invalidf("tenant %s has no active tenancy to snapshot", in.TenantID)
	}

	created, err := l.agreements.Create(model.Agreement{
		ID:             store.NewID(),
		LandlordID:     landlordID,
		TenantID:       tenant.ID,
		UnitID:         *tenant.UnitID,
		Rent:           tenant.Rent,
		Advance:        tenant.Advance,
		StartDate:      in.StartDate,
		DurationMonths: in.DurationMonths,
		Terms:          in.Terms,
	})
	if err != nil {
		return nil, err
	}
	l.log("agreement", landlordID, fmt.Sprintf("Agreement for tenant %s (rent %d)", tenant.ID, tenant.Rent))
	return created, nil
}

// EndAgreement marks an agreement ended. The snapshot fields are untouched and
// the tenancy itself is not affected; ending a tenancy is Unassign's job.
func (l *Ledger) EndAgreement(id string) (*model.Agreement, error) {
	existing, err := l.agreements.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFoundf("agreement %s", id)
	}
	if existing.Status == "ended" {
		return existing, nil
	}
	ended, err := l.agreements.End(id)
	if err != nil {
		return nil, err
	}
	l.log("end_agreement", existing.LandlordID, fmt.Sprintf("Agreement %s ended", id))
	return ended, nil
}
