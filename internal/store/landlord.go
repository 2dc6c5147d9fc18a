package store

import (
	"database/sql"
	"fmt"

	"github.com/munsiapp/munsi/internal/model"
	"github.com/munsiapp/munsi/internal/phone"
)

type LandlordStore struct {
	db DBTX
}

func NewLandlordStore(db *sql.DB) *LandlordStore {
	return &LandlordStore{db: db}
}

// WithTx returns a view of the store running inside tx.
func (s *LandlordStore) WithTx(tx *sql.Tx) *LandlordStore {
	return &LandlordStore{db: tx}
}

func scanLandlord(scanner interface{ Scan(...any) error }) (*model.Landlord, error) {
	var l model.Landlord
	err := scanner.Scan(
		&l.ID, &l.InviteCode, &l.Name, &l.Phone, &l.Email,
		&l.Address, &l.Location, &l.HoldingNo, &l.TinNo,
		&l.Status, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

const landlordCols = `id, invite_code, name, phone, email, address, location, holding_no, tin_no, status, created_at`

func (s *LandlordStore) Create(l model.Landlord) (*model.Landlord, error) {
	_, err := s.db.Exec(
		`INSERT INTO landlords (id, invite_code, name, phone, email, address, location, holding_no, tin_no) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.InviteCode, l.Name, l.Phone, l.Email, l.Address, l.Location, l.HoldingNo, l.TinNo,
	)
	if err != nil {
		return nil, fmt.Errorf("insert landlord: %w", err)
	}
	return s.GetByID(l.ID)
}

func (s *LandlordStore) GetByID(id string) (*model.Landlord, error) {
	row := s.db.QueryRow(`SELECT `+landlordCols+` FROM landlords WHERE id = ?`, id)
	l, err := scanLandlord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get landlord: %w", err)
	}
	return l, nil
}

func (s *LandlordStore) GetByInvite(code string) (*model.Landlord, error) {
	row := s.db.QueryRow(`SELECT `+landlordCols+` FROM landlords WHERE invite_code = ?`, code)
	l, err := scanLandlord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get landlord by invite: %w", err)
	}
	return l, nil
}

func (s *LandlordStore) List() ([]model.Landlord, error) {
	rows, err := s.db.Query(`SELECT ` + landlordCols + ` FROM landlords ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list landlords: %w", err)
	}
	defer rows.Close()

	var landlords []model.Landlord
	for rows.Next() {
		l, err := scanLandlord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan landlord: %w", err)
		}
		landlords = append(landlords, *l)
	}
	return landlords, rows.Err()
}

// FindByPhone returns landlords whose phone number matches the query by
// normalized digit-suffix comparison. The landlord table is small enough that
// the match runs in Go rather than SQL.
func (s *LandlordStore) FindByPhone(query string) ([]model.Landlord, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var matched []model.Landlord
	for _, l := range all {
		if phone.Match(l.Phone, query) {
			matched = append(matched, l)
		}
	}
	return matched, nil
}

// UpdateContact updates the mutable contact fields; identity fields and the
// invite code never change.
func (s *LandlordStore) UpdateContact(id, phoneNo, email, address string) (*model.Landlord, error) {
	_, err := s.db.Exec(
		`UPDATE landlords SET phone = ?, email = ?, address = ? WHERE id = ?`,
		phoneNo, email, address, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update landlord: %w", err)
	}
	return s.GetByID(id)
}
