package store

import (
	"database/sql"
	"fmt"

	"github.com/munsiapp/munsi/internal/model"
)

type AgreementStore struct {
	db DBTX
}

func NewAgreementStore(db *sql.DB) *AgreementStore {
	return &AgreementStore{db: db}
}

func scanAgreement(scanner interface{ Scan(...any) error }) (*model.Agreement, error) {
	var a model.Agreement
	err := scanner.Scan(
		&a.ID, &a.LandlordID, &a.TenantID, &a.UnitID, &a.Rent, &a.Advance,
		&a.StartDate, &a.DurationMonths, &a.Terms, &a.Status, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

const agreementCols = `id, landlord_id, tenant_id, unit_id, rent, advance, start_date, duration_months, terms, status, created_at`

func (s *AgreementStore) Create(a model.Agreement) (*model.Agreement, error) {
	_, err := s.db.Exec(
		`INSERT INTO agreements (id, landlord_id, tenant_id, unit_id, rent, advance, start_date, duration_months, terms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.LandlordID, a.TenantID, a.UnitID, a.Rent, a.Advance,
		a.StartDate, a.DurationMonths, a.Terms,
	)
	if err != nil {
		return nil, fmt.Errorf("insert agreement: %w", err)
	}
	return s.GetByID(a.ID)
}

func (s *AgreementStore) GetByID(id string) (*model.Agreement, error) {
	row := s.db.QueryRow(`SELECT `+agreementCols+` FROM agreements WHERE id = ?`, id)
	a, err := scanAgreement(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get agreement: %w", err)
	}
	return a, nil
}

func (s *AgreementStore) ListByLandlord(landlordID string) ([]model.Agreement, error) {
	return s.list(`SELECT `+agreementCols+` FROM agreements WHERE landlord_id = ? ORDER BY created_at DESC`, landlordID)
}

func (s *AgreementStore) ListByTenant(tenantID string) ([]model.Agreement, error) {
	return s.list(`SELECT `+agreementCols+` FROM agreements WHERE tenant_id = ? ORDER BY created_at DESC`, tenantID)
}

func (s *AgreementStore) list(query string, args ...any) ([]model.Agreement, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list agreements: %w", err)
	}
	defer rows.Close()

	var agreements []model.Agreement
	for rows.Next() {
		a, err := scanAgreement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agreement: %w", err)
		}
		agreements = append(agreements, *a)
	}
	return agreements, rows.Err()
}

// End marks an agreement's lifecycle as ended. The snapshot fields stay as
// written at creation.
func (s *AgreementStore) End(id string) (*model.Agreement, error) {
	_, err := s.db.Exec(`UPDATE agreements SET status = 'ended' WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("end agreement: %w", err)
	}
	return s.GetByID(id)
}
