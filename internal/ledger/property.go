package ledger

import (
	"database/sql"
	"fmt"

	"github.com/munsiapp/munsi/internal/database"
	"github.com/munsiapp/munsi/internal/model"
	"github.com/munsiapp/munsi/internal/store"
)

const (
	UnitTypeFlat = "flat"
	UnitTypeRoom = "room"
)

// PropertyInput carries the fields supplied when a property is created. The
// layout descriptor (Floors, UnitsPerFloor, UnitType) drives unit generation
// at creation time only; it is never re-applied to existing units.
type PropertyInput struct {
	Name          string
	Address       string
	Color         string
	Floors        int
	UnitsPerFloor int
	UnitType      string
	DefaultRent   int64
	Bedrooms      int
	Bathrooms     int
	Conditions    string
}

// AddProperty creates a property and fans out its unit records in one
// transaction. Template attributes (default rent, bedrooms, bathrooms,
// conditions) are copied onto each unit at creation.
func (l *Ledger) AddProperty(landlordID string, in PropertyInput) (*model.Property, error) {
	if in.Name == "" {
		return nil, invalidf("name is required")
	}
	if in.Floors <= 0 || in.UnitsPerFloor <= 0 {
		return nil, invalidf("floors and units per floor must be positive")
	}
	if in.UnitType != UnitTypeFlat && in.UnitType != UnitTypeRoom {
		return nil, invalidf("unit type must be %q or %q", UnitTypeFlat, UnitTypeRoom)
	}
	if in.UnitType == UnitTypeFlat && in.UnitsPerFloor > 26 {
		return nil, invalidf("flat layout supports at most 26 units per floor")
	}
	landlord, err := l.landlords.GetByID(landlordID)
	if err != nil {
		return nil, err
	}
	if landlord == nil {
		return nil, notFoundf("landlord %s", landlordID)
	}
	if in.Color == "" {
		in.Color = "#10B981"
	}

	propID := store.NewID()
	err = database.InTx(l.db, func(tx *sql.Tx) error {
		if err := l.properties.WithTx(tx).Create(model.Property{
			ID:            propID,
			LandlordID:    landlordID,
			Name:          in.Name,
			Address:       in.Address,
			Color:         in.Color,
			Floors:        in.Floors,
			UnitsPerFloor: in.UnitsPerFloor,
			UnitType:      in.UnitType,
			DefaultRent:   in.DefaultRent,
			Bedrooms:      in.Bedrooms,
			Bathrooms:     in.Bathrooms,
			Conditions:    in.Conditions,
		}); err != nil {
			return err
		}

		units := l.units.WithTx(tx)
		for f := 1; f <= in.Floors; f++ {
			for u := 1; u <= in.UnitsPerFloor; u++ {
				if err := units.Create(model.Unit{
					ID:          store.NewID(),
					PropertyID:  propID,
					LandlordID:  landlordID,
					Floor:       f,
					UnitNo:      UnitLabel(in.UnitType, f, u),
					Type:        in.UnitType,
					IsVacant:    true,
					DefaultRent: in.DefaultRent,
					Bedrooms:    in.Bedrooms,
					Bathrooms:   in.Bathrooms,
					Conditions:  in.Conditions,
				}); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log("add_property", landlordID, fmt.Sprintf("Property: %s", in.Name))
	return l.properties.GetByID(propID)
}

// UnitLabel derives the display label for a unit from its floor and position:
// row letters for flats ("1A", "2C"), zero-padded indices for rooms ("101",
// "203").
func UnitLabel(unitType string, floor, pos int) string {
	if unitType == UnitTypeFlat {
		return fmt.Sprintf("%d%c", floor, 'A'+pos-1)
	}
	return fmt.Sprintf("%d%02d", floor, pos)
}
