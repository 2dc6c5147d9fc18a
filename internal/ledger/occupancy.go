package ledger

import (
	"database/sql"
	"fmt"

	"github.com/munsiapp/munsi/internal/database"
	"github.com/munsiapp/munsi/internal/model"
)

// Assign establishes a tenancy: the tenant takes the unit at the given rent,
// an "initial" entry is appended to the rent audit trail, and the unit is
// marked occupied — all in one transaction. Re-running an identical assign
// (same tenant, same unit, same rent) is a no-op rather than a double append,
// so a retry after an unknown-outcome write is safe.
func (l *Ledger) Assign(tenantID, unitID string, rent, advance int64, moveInDate, notes string) (*model.Tenant, error) {
	if rent <= 0 {
		return nil, invalidf("rent must be positive")
	}
	if advance < 0 {
		return nil, invalidf("advance cannot be negative")
	}

	tenant, err := l.tenants.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, notFoundf("tenant %s", tenantID)
	}
	unit, err := l.units.GetByID(unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, notFoundf("unit %s", unitID)
	}
	if unit.LandlordID != tenant.LandlordID {
		return nil, invalidf("unit %s belongs to a different landlord", unitID)
	}

	if tenant.UnitID != nil {
		if *tenant.UnitID == unitID && tenant.Rent == rent {
			return tenant, nil
		}
		return nil, invalidf("tenant %s is already assigned to unit %s", tenantID, *tenant.UnitID)
	}
	if !unit.IsVacant {
		return nil, invalidf("unit %s is occupied", unitID)
	}

	err = database.InTx(l.db, func(tx *sql.Tx) error {
		tenants := l.tenants.WithTx(tx)
		if err := tenants.SetAssignment(tenantID, unitID, rent, advance, moveInDate, notes); err != nil {
			return err
		}
		if err := tenants.AppendRentChange(tenantID, rent, nil, "initial"); err != nil {
			return err
		}
		return l.units.WithTx(tx).SetVacant(unitID, false)
	})
	if err != nil {
		return nil, err
	}

	l.log("assign", tenantID, fmt.Sprintf("Tenant -> Unit %s", unitID))
	return l.tenants.GetByID(tenantID)
}

// Unassign releases a tenant's unit and zeroes its tenancy terms. The rent
// history is retained for audit. Unassigning an already-unassigned tenant is
// a no-op.
func (l *Ledger) Unassign(tenantID string) (*model.Tenant, error) {
	tenant, err := l.tenants.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, notFoundf("tenant %s", tenantID)
	}
	if tenant.UnitID == nil {
		return tenant, nil
	}
	unitID := *tenant.UnitID

	err = database.InTx(l.db, func(tx *sql.Tx) error {
		if err := l.units.WithTx(tx).SetVacant(unitID, true); err != nil {
			return err
		}
		return l.tenants.WithTx(tx).ClearAssignment(tenantID)
	})
	if err != nil {
		return nil, err
	}

	l.log("unassign", tenantID, "Tenant removed from unit")
	return l.tenants.GetByID(tenantID)
}

// ChangeRent appends a rent change to the tenant's audit trail and updates
// the current rent in the same transaction, so the current-rent field always
// agrees with the history tail. Setting the rent to its current value is a
// no-op.
func (l *Ledger) ChangeRent(tenantID string, newRent int64, reason string) (*model.Tenant, error) {
	if newRent <= 0 {
		return nil, invalidf("rent must be positive")
	}
	if reason == "" {
		return nil, invalidf("reason is required")
	}

	tenant, err := l.tenants.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, notFoundf("tenant %s", tenantID)
	}
	if tenant.UnitID == nil {
		return nil, invalidf("tenant %s has no active tenancy", tenantID)
	}
	if tenant.Rent == newRent {
		return tenant, nil
	}
	prev := tenant.Rent

	err = database.InTx(l.db, func(tx *sql.Tx) error {
		tenants := l.tenants.WithTx(tx)
		if err := tenants.AppendRentChange(tenantID, newRent, &prev, reason); err != nil {
			return err
		}
		return tenants.SetRent(tenantID, newRent)
	})
	if err != nil {
		return nil, err
	}

	l.log("change_rent", tenantID, fmt.Sprintf("Rent %d -> %d (%s)", prev, newRent, reason))
	return l.tenants.GetByID(tenantID)
}

// Inconsistency describes one occupancy invariant violation found by Audit.
type Inconsistency struct {
	UnitID   string `json:"unit_id"`
	UnitNo   string `json:"unit_no"`
	TenantID string `json:"tenant_id,omitempty"`
	Problem  string `json:"problem"`
}

// Audit checks every unit of a landlord against the tenants referencing it
// and reports violations of the occupancy invariant. It never repairs; see
// Reconcile.
func (l *Ledger) Audit(landlordID string) ([]Inconsistency, error) {
	units, err := l.units.ListByLandlord(landlordID)
	if err != nil {
		return nil, err
	}
	tenants, err := l.tenants.ListByLandlord(landlordID)
	if err != nil {
		return nil, err
	}

	occupants := make(map[string]string) // unitID -> tenantID
	for _, t := range tenants {
		if t.UnitID != nil {
			occupants[*t.UnitID] = t.ID
		}
	}

	var findings []Inconsistency
	for _, u := range units {
		tenantID, occupied := occupants[u.ID]
		switch {
		case u.IsVacant && occupied:
			findings = append(findings, Inconsistency{
				UnitID:   u.ID,
				UnitNo:   u.UnitNo,
				TenantID: tenantID,
				Problem:  "unit marked vacant but a tenant references it",
			})
		case !u.IsVacant && !occupied:
			findings = append(findings, Inconsistency{
				UnitID:  u.ID,
				UnitNo:  u.UnitNo,
				Problem: "unit marked occupied but no tenant references it",
			})
		}
	}
	return findings, nil
}

// Reconcile repairs the occupancy invariant for a landlord by treating the
// tenant side as authoritative: a unit's vacancy flag is rewritten to agree
// with whether some tenant currently references it. Returns the findings it
// repaired, each wrapped so callers can surface them as consistency errors.
func (l *Ledger) Reconcile(landlordID string) ([]Inconsistency, error) {
	findings, err := l.Audit(landlordID)
	if err != nil {
		return nil, err
	}
	if len(findings) == 0 {
		return nil, nil
	}

	err = database.InTx(l.db, func(tx *sql.Tx) error {
		units := l.units.WithTx(tx)
		for _, f := range findings {
			if err := units.SetVacant(f.UnitID, f.TenantID == ""); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, f := range findings {
		l.logger.Warn("repaired occupancy inconsistency",
			"unit_id", f.UnitID, "tenant_id", f.TenantID, "problem", f.Problem)
	}
	l.log("reconcile", landlordID, fmt.Sprintf("Repaired %d occupancy findings", len(findings)))
	return findings, nil
}
