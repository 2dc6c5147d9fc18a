package store

import (
	"database/sql"
	"fmt"

	"github.com/munsiapp/munsi/internal/model"
)

type TenantStore struct {
	db DBTX
}

func NewTenantStore(db *sql.DB) *TenantStore {
	return &TenantStore{db: db}
}

// WithTx returns a view of the store running inside tx.
func (s *TenantStore) WithTx(tx *sql.Tx) *TenantStore {
	return &TenantStore{db: tx}
}

func scanTenant(scanner interface{ Scan(...any) error }) (*model.Tenant, error) {
	var t model.Tenant
	var unitID sql.NullString
	err := scanner.Scan(
		&t.ID, &t.LandlordID, &unitID, &t.Name, &t.Phone, &t.Email,
		&t.NID, &t.Members, &t.Rent, &t.Advance, &t.MoveInDate,
		&t.Notes, &t.Status, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if unitID.Valid {
		t.UnitID = &unitID.String
	}
	return &t, nil
}

const tenantCols = `id, landlord_id, unit_id, name, phone, email, nid, members, rent, advance, move_in_date, notes, status, created_at`

func (s *TenantStore) Create(t model.Tenant) (*model.Tenant, error) {
	var unitID sql.NullString
	if t.UnitID != nil {
		unitID = sql.NullString{String: *t.UnitID, Valid: true}
	}
	_, err := s.db.Exec(
		`INSERT INTO tenants (id, landlord_id, unit_id, name, phone, email, nid, members, rent, advance, move_in_date, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.LandlordID, unitID, t.Name, t.Phone, t.Email,
		t.NID, t.Members, t.Rent, t.Advance, t.MoveInDate, t.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert tenant: %w", err)
	}
	return s.GetByID(t.ID)
}

func (s *TenantStore) GetByID(id string) (*model.Tenant, error) {
	row := s.db.QueryRow(`SELECT `+tenantCols+` FROM tenants WHERE id = ?`, id)
	t, err := scanTenant(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}

// GetByUnit returns the tenant currently assigned to a unit, nil if none.
func (s *TenantStore) GetByUnit(unitID string) (*model.Tenant, error) {
	row := s.db.QueryRow(`SELECT `+tenantCols+` FROM tenants WHERE unit_id = ?`, unitID)
	t, err := scanTenant(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tenant by unit: %w", err)
	}
	return t, nil
}

func (s *TenantStore) ListByLandlord(landlordID string) ([]model.Tenant, error) {
	rows, err := s.db.Query(
		`SELECT `+tenantCols+` FROM tenants WHERE landlord_id = ? ORDER BY created_at ASC`,
		landlordID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []model.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, *t)
	}
	return tenants, rows.Err()
}

// SetAssignment links a tenant to a unit with its tenancy terms.
func (s *TenantStore) SetAssignment(id, unitID string, rent, advance int64, moveInDate, notes string) error {
	_, err := s.db.Exec(
		`UPDATE tenants SET unit_id = ?, rent = ?, advance = ?, move_in_date = ?, notes = ? WHERE id = ?`,
		unitID, rent, advance, moveInDate, notes, id,
	)
	if err != nil {
		return fmt.Errorf("set assignment: %w", err)
	}
	return nil
}

// ClearAssignment detaches a tenant from its unit and zeroes the tenancy
// terms. Rent history rows are left untouched.
func (s *TenantStore) ClearAssignment(id string) error {
	_, err := s.db.Exec(
		`UPDATE tenants SET unit_id = NULL, rent = 0, advance = 0 WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("clear assignment: %w", err)
	}
	return nil
}

// SetRent updates only the current rent field. Callers must append the
// matching rent history entry in the same transaction.
func (s *TenantStore) SetRent(id string, rent int64) error {
	_, err := s.db.Exec(`UPDATE tenants SET rent = ? WHERE id = ?`, rent, id)
	if err != nil {
		return fmt.Errorf("set rent: %w", err)
	}
	return nil
}

// --- Rent history methods ---

func scanRentChange(scanner interface{ Scan(...any) error }) (*model.RentChange, error) {
	var rc model.RentChange
	var prev sql.NullInt64
	err := scanner.Scan(&rc.ID, &rc.TenantID, &rc.Rent, &prev, &rc.Reason, &rc.ChangedAt)
	if err != nil {
		return nil, err
	}
	if prev.Valid {
		rc.PrevRent = &prev.Int64
	}
	return &rc, nil
}

const rentChangeCols = `id, tenant_id, rent, prev_rent, reason, changed_at`

func (s *TenantStore) AppendRentChange(tenantID string, rent int64, prevRent *int64, reason string) error {
	var prev sql.NullInt64
	if prevRent != nil {
		prev = sql.NullInt64{Int64: *prevRent, Valid: true}
	}
	_, err := s.db.Exec(
		`INSERT INTO rent_changes (tenant_id, rent, prev_rent, reason) VALUES (?, ?, ?, ?)`,
		tenantID, rent, prev, reason,
	)
	if err != nil {
		return fmt.Errorf("append rent change: %w", err)
	}
	return nil
}

// RentHistory returns a tenant's rent changes in chronological order.
func (s *TenantStore) RentHistory(tenantID string) ([]model.RentChange, error) {
	rows, err := s.db.Query(
		`SELECT `+rentChangeCols+` FROM rent_changes WHERE tenant_id = ? ORDER BY id ASC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list rent changes: %w", err)
	}
	defer rows.Close()

	var history []model.RentChange
	for rows.Next() {
		rc, err := scanRentChange(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rent change: %w", err)
		}
		history = append(history, *rc)
	}
	return history, rows.Err()
}

// LastRentChange returns the tail of a tenant's rent history, nil if empty.
func (s *TenantStore) LastRentChange(tenantID string) (*model.RentChange, error) {
	row := s.db.QueryRow(
		`SELECT `+rentChangeCols+` FROM rent_changes WHERE tenant_id = ? ORDER BY id DESC LIMIT 1`,
		tenantID,
	)
	rc, err := scanRentChange(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last rent change: %w", err)
	}
	return rc, nil
}
