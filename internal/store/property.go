package store

import (
	"database/sql"
	"fmt"

	"github.com/munsiapp/munsi/internal/model"
)

type PropertyStore struct {
	db DBTX
}

func NewPropertyStore(db *sql.DB) *PropertyStore {
	return &PropertyStore{db: db}
}

// WithTx returns a view of the store running inside tx.
func (s *PropertyStore) WithTx(tx *sql.Tx) *PropertyStore {
	return &PropertyStore{db: tx}
}

func scanProperty(scanner interface{ Scan(...any) error }) (*model.Property, error) {
	var p model.Property
	err := scanner.Scan(
		&p.ID, &p.LandlordID, &p.Name, &p.Address, &p.Color,
		&p.Floors, &p.UnitsPerFloor, &p.UnitType,
		&p.DefaultRent, &p.Bedrooms, &p.Bathrooms, &p.Conditions,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const propertyCols = `id, landlord_id, name, address, color, floors, units_per_floor, unit_type, default_rent, bedrooms, bathrooms, conditions, created_at`

func (s *PropertyStore) Create(p model.Property) error {
	_, err := s.db.Exec(
		`INSERT INTO properties (id, landlord_id, name, address, color, floors, units_per_floor, unit_type, default_rent, bedrooms, bathrooms, conditions)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.LandlordID, p.Name, p.Address, p.Color,
		p.Floors, p.UnitsPerFloor, p.UnitType,
		p.DefaultRent, p.Bedrooms, p.Bathrooms, p.Conditions,
	)
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

func (s *PropertyStore) GetByID(id string) (*model.Property, error) {
	row := s.db.QueryRow(`SELECT `+propertyCols+` FROM properties WHERE id = ?`, id)
	p, err := scanProperty(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

func (s *PropertyStore) ListByLandlord(landlordID string) ([]model.Property, error) {
	rows, err := s.db.Query(
		`SELECT `+propertyCols+` FROM properties WHERE landlord_id = ? ORDER BY created_at ASC`,
		landlordID,
	)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var properties []model.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, *p)
	}
	return properties, rows.Err()
}
