package store

import (
	"database/sql"
	"fmt"

	"github.com/munsiapp/munsi/internal/model"
)

type PaymentStore struct {
	db DBTX
}

func NewPaymentStore(db *sql.DB) *PaymentStore {
	return &PaymentStore{db: db}
}

// WithTx returns a view of the store running inside tx.
func (s *PaymentStore) WithTx(tx *sql.Tx) *PaymentStore {
	return &PaymentStore{db: tx}
}

func scanPayment(scanner interface{ Scan(...any) error }) (*model.Payment, error) {
	var p model.Payment
	err := scanner.Scan(
		&p.ID, &p.TenantID, &p.LandlordID, &p.Amount, &p.Method,
		&p.MonthKey, &p.Status, &p.Type, &p.Note, &p.RecordedBy, &p.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const paymentCols = `id, tenant_id, landlord_id, amount, method, month_key, status, type, note, recorded_by, paid_at`

func (s *PaymentStore) Create(p model.Payment) (*model.Payment, error) {
	_, err := s.db.Exec(
		`INSERT INTO payments (id, tenant_id, landlord_id, amount, method, month_key, status, type, note, recorded_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TenantID, p.LandlordID, p.Amount, p.Method,
		p.MonthKey, p.Status, p.Type, p.Note, p.RecordedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return s.GetByID(p.ID)
}

func (s *PaymentStore) GetByID(id string) (*model.Payment, error) {
	row := s.db.QueryRow(`SELECT `+paymentCols+` FROM payments WHERE id = ?`, id)
	p, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// UpdateCorrection applies the bounded privileged edit: amount and note only.
func (s *PaymentStore) UpdateCorrection(id string, amount int64, note string) (*model.Payment, error) {
	_, err := s.db.Exec(`UPDATE payments SET amount = ?, note = ? WHERE id = ?`, amount, note, id)
	if err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}
	return s.GetByID(id)
}

func (s *PaymentStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

func (s *PaymentStore) ListByTenant(tenantID string) ([]model.Payment, error) {
	return s.list(`SELECT `+paymentCols+` FROM payments WHERE tenant_id = ? ORDER BY paid_at DESC`, tenantID)
}

func (s *PaymentStore) ListByTenantMonth(tenantID, monthKey string) ([]model.Payment, error) {
	return s.list(
		`SELECT `+paymentCols+` FROM payments WHERE tenant_id = ? AND month_key = ? ORDER BY paid_at ASC`,
		tenantID, monthKey,
	)
}

func (s *PaymentStore) ListByLandlordMonth(landlordID, monthKey string) ([]model.Payment, error) {
	return s.list(
		`SELECT `+paymentCols+` FROM payments WHERE landlord_id = ? AND month_key = ? ORDER BY paid_at DESC`,
		landlordID, monthKey,
	)
}

func (s *PaymentStore) list(query string, args ...any) ([]model.Payment, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

// --- Aggregation methods ---

// SumRent totals a tenant's rent payments for a month. Rows with an empty
// type are legacy rent records and count toward the rent sub-ledger.
func (s *PaymentStore) SumRent(tenantID, monthKey string) (int64, error) {
	var sum int64
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM payments
		 WHERE tenant_id = ? AND month_key = ? AND (type = ? OR type = '')`,
		tenantID, monthKey, model.TypeRent,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum rent paid: %w", err)
	}
	return sum, nil
}

// SumUtility totals a tenant's non-rent payments for a month, optionally
// restricted to one utility category.
func (s *PaymentStore) SumUtility(tenantID, monthKey, utilityType string) (int64, error) {
	var sum int64
	var err error
	if utilityType == "" {
		err = s.db.QueryRow(
			`SELECT COALESCE(SUM(amount), 0) FROM payments
			 WHERE tenant_id = ? AND month_key = ? AND type != ? AND type != ''`,
			tenantID, monthKey, model.TypeRent,
		).Scan(&sum)
	} else {
		err = s.db.QueryRow(
			`SELECT COALESCE(SUM(amount), 0) FROM payments
			 WHERE tenant_id = ? AND month_key = ? AND type = ?`,
			tenantID, monthKey, utilityType,
		).Scan(&sum)
	}
	if err != nil {
		return 0, fmt.Errorf("sum utility paid: %w", err)
	}
	return sum, nil
}

// SumLandlordMonth totals collections across all of a landlord's tenants for
// a month, split into rent and utility.
func (s *PaymentStore) SumLandlordMonth(landlordID, monthKey string) (rent, utility int64, err error) {
	err = s.db.QueryRow(
		`SELECT
		   COALESCE(SUM(CASE WHEN type = ? OR type = '' THEN amount ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN type != ? AND type != '' THEN amount ELSE 0 END), 0)
		 FROM payments WHERE landlord_id = ? AND month_key = ?`,
		model.TypeRent, model.TypeRent, landlordID, monthKey,
	).Scan(&rent, &utility)
	if err != nil {
		return 0, 0, fmt.Errorf("sum landlord month: %w", err)
	}
	return rent, utility, nil
}

// SumByCategory returns collected amounts per payment type for a landlord and
// month. Legacy empty types are folded into rent.
func (s *PaymentStore) SumByCategory(landlordID, monthKey string) (map[string]int64, error) {
	rows, err := s.db.Query(
		`SELECT CASE WHEN type = '' THEN ? ELSE type END, COALESCE(SUM(amount), 0)
		 FROM payments WHERE landlord_id = ? AND month_key = ?
		 GROUP BY CASE WHEN type = '' THEN ? ELSE type END`,
		model.TypeRent, landlordID, monthKey, model.TypeRent,
	)
	if err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var category string
		var sum int64
		if err := rows.Scan(&category, &sum); err != nil {
			return nil, fmt.Errorf("scan category sum: %w", err)
		}
		totals[category] = sum
	}
	return totals, rows.Err()
}
