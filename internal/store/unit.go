package store

import (
	"database/sql"
	"fmt"

	"github.com/munsiapp/munsi/internal/model"
)

type UnitStore struct {
	db DBTX
}

func NewUnitStore(db *sql.DB) *UnitStore {
	return &UnitStore{db: db}
}

// WithTx returns a view of the store running inside tx.
func (s *UnitStore) WithTx(tx *sql.Tx) *UnitStore {
	return &UnitStore{db: tx}
}

func scanUnit(scanner interface{ Scan(...any) error }) (*model.Unit, error) {
	var u model.Unit
	var vacant int
	err := scanner.Scan(
		&u.ID, &u.PropertyID, &u.LandlordID, &u.Floor, &u.UnitNo, &u.Type,
		&vacant, &u.DefaultRent, &u.Bedrooms, &u.Bathrooms, &u.Conditions,
	)
	if err != nil {
		return nil, err
	}
	u.IsVacant = vacant != 0
	return &u, nil
}

const unitCols = `id, property_id, landlord_id, floor, unit_no, type, is_vacant, default_rent, bedrooms, bathrooms, conditions`

func (s *UnitStore) Create(u model.Unit) error {
	vacant := 0
	if u.IsVacant {
		vacant = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO units (id, property_id, landlord_id, floor, unit_no, type, is_vacant, default_rent, bedrooms, bathrooms, conditions)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.PropertyID, u.LandlordID, u.Floor, u.UnitNo, u.Type,
		vacant, u.DefaultRent, u.Bedrooms, u.Bathrooms, u.Conditions,
	)
	if err != nil {
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (s *UnitStore) GetByID(id string) (*model.Unit, error) {
	row := s.db.QueryRow(`SELECT `+unitCols+` FROM units WHERE id = ?`, id)
	u, err := scanUnit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return u, nil
}

func (s *UnitStore) ListByProperty(propertyID string) ([]model.Unit, error) {
	return s.list(`SELECT `+unitCols+` FROM units WHERE property_id = ? ORDER BY floor ASC, unit_no ASC`, propertyID)
}

func (s *UnitStore) ListByLandlord(landlordID string) ([]model.Unit, error) {
	return s.list(`SELECT `+unitCols+` FROM units WHERE landlord_id = ? ORDER BY floor ASC, unit_no ASC`, landlordID)
}

func (s *UnitStore) ListVacantByLandlord(landlordID string) ([]model.Unit, error) {
	return s.list(`SELECT `+unitCols+` FROM units WHERE landlord_id = ? AND is_vacant = 1 ORDER BY floor ASC, unit_no ASC`, landlordID)
}

func (s *UnitStore) list(query string, args ...any) ([]model.Unit, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var units []model.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		units = append(units, *u)
	}
	return units, rows.Err()
}

func (s *UnitStore) SetVacant(id string, vacant bool) error {
	v := 0
	if vacant {
		v = 1
	}
	_, err := s.db.Exec(`UPDATE units SET is_vacant = ? WHERE id = ?`, v, id)
	if err != nil {
		return fmt.Errorf("set unit vacancy: %w", err)
	}
	return nil
}

// CountByProperty returns total and occupied unit counts for a property.
func (s *UnitStore) CountByProperty(propertyID string) (total, occupied int, err error) {
	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN is_vacant = 0 THEN 1 ELSE 0 END), 0) FROM units WHERE property_id = ?`,
		propertyID,
	).Scan(&total, &occupied)
	if err != nil {
		return 0, 0, fmt.Errorf("count units: %w", err)
	}
	return total, occupied, nil
}
