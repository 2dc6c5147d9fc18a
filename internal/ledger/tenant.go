package ledger

import (
	"database/sql"
	"fmt"

	"github.com/munsiapp/munsi/internal/database"
	"github.com/munsiapp/munsi/internal/model"
	"github.com/munsiapp/munsi/internal/store"
)

// TenantInput carries the fields supplied when a tenant record is created.
type TenantInput struct {
	Name    string
	Phone   string
	Email   string
	NID     string
	Members int
}

// RegisterTenant creates a tenant profile keyed by the external auth ID,
// linked to a landlord found via invite code. If unitID is non-empty the
// tenant also selects a vacant unit during registration and the tenancy is
// established in the same transaction, with rent taken from the unit's
// default. Both self-registration paths and manual creation converge on the
// same record shape.
func (l *Ledger) RegisterTenant(userID, inviteCode, unitID string, in TenantInput) (*model.Tenant, error) {
	if userID == "" {
		return nil, invalidf("user id is required")
	}
	landlord, err := l.landlords.GetByInvite(inviteCode)
	if err != nil {
		return nil, err
	}
	if landlord == nil {
		return nil, notFoundf("no landlord with invite code %q", inviteCode)
	}
	existing, err := l.tenants.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, invalidf("tenant %s already registered", userID)
	}

	t, err := l.createTenant(userID, landlord.ID, unitID, 0, "", in)
	if err != nil {
		return nil, err
	}
	l.log("register", userID, fmt.Sprintf("Tenant: %s -> Landlord: %s", t.Name, landlord.ID))
	return t, nil
}

// AddManualTenant creates a tenant on behalf of a landlord, optionally
// assigning a unit at a stated rent in the same transaction.
func (l *Ledger) AddManualTenant(landlordID, unitID string, rent int64, moveInDate string, in TenantInput) (*model.Tenant, error) {
	landlord, err := l.landlords.GetByID(landlordID)
	if err != nil {
		return nil, err
	}
	if landlord == nil {
		return nil, notFoundf("landlord %s", landlordID)
	}

	t, err := l.createTenant(store.NewID(), landlordID, unitID, rent, moveInDate, in)
	if err != nil {
		return nil, err
	}
	l.log("add_tenant", landlordID, fmt.Sprintf("Tenant: %s", t.Name))
	return t, nil
}

func (l *Ledger) createTenant(id, landlordID, unitID string, rent int64, moveInDate string, in TenantInput) (*model.Tenant, error) {
	if in.Name == "" {
		return nil, invalidf("name is required")
	}
	if in.Members <= 0 {
		in.Members = 1
	}

	var unit *model.Unit
	if unitID != "" {
		var err error
		unit, err = l.units.GetByID(unitID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			return nil, notFoundf("unit %s", unitID)
		}
		if unit.LandlordID != landlordID {
			return nil, invalidf("unit %s does not belong to landlord %s", unitID, landlordID)
		}
		if !unit.IsVacant {
			return nil, invalidf("unit %s is occupied", unitID)
		}
		if rent <= 0 {
			rent = unit.DefaultRent
		}
		if rent <= 0 {
			return nil, invalidf("rent must be positive to assign a unit")
		}
	}

	err := database.InTx(l.db, func(tx *sql.Tx) error {
		tenants := l.tenants.WithTx(tx)
		t := model.Tenant{
			ID:         id,
			LandlordID: landlordID,
			Name:       in.Name,
			Phone:      in.Phone,
			Email:      in.Email,
			NID:        in.NID,
			Members:    in.Members,
		}
		if unit != nil {
			t.UnitID = &unit.ID
			t.Rent = rent
			t.MoveInDate = moveInDate
		}
		if _, err := tenants.Create(t); err != nil {
			return err
		}
		if unit != nil {
			if err := tenants.AppendRentChange(id, rent, nil, "initial"); err != nil {
				return err
			}
			if err := l.units.WithTx(tx).SetVacant(unit.ID, false); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l.tenants.GetByID(id)
}
