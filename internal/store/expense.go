package store

import (
	"database/sql"
	"fmt"

	"github.com/munsiapp/munsi/internal/model"
)

type ExpenseStore struct {
	db DBTX
}

func NewExpenseStore(db *sql.DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

func scanExpense(scanner interface{ Scan(...any) error }) (*model.Expense, error) {
	var e model.Expense
	var propertyID sql.NullString
	err := scanner.Scan(
		&e.ID, &e.LandlordID, &propertyID, &e.Category, &e.Amount,
		&e.Description, &e.Date, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if propertyID.Valid {
		e.PropertyID = &propertyID.String
	}
	return &e, nil
}

const expenseCols = `id, landlord_id, property_id, category, amount, description, date, created_at`

func (s *ExpenseStore) Create(e model.Expense) (*model.Expense, error) {
	var propertyID sql.NullString
	if e.PropertyID != nil {
		propertyID = sql.NullString{String: *e.PropertyID, Valid: true}
	}
	_, err := s.db.Exec(
		`INSERT INTO expenses (id, landlord_id, property_id, category, amount, description, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.LandlordID, propertyID, e.Category, e.Amount, e.Description, e.Date,
	)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	return s.GetByID(e.ID)
}

func (s *ExpenseStore) GetByID(id string) (*model.Expense, error) {
	row := s.db.QueryRow(`SELECT `+expenseCols+` FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (s *ExpenseStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func (s *ExpenseStore) ListByLandlord(landlordID string) ([]model.Expense, error) {
	rows, err := s.db.Query(
		`SELECT `+expenseCols+` FROM expenses WHERE landlord_id = ? ORDER BY date DESC`,
		landlordID,
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

// SumByLandlordMonth totals expenses whose date falls in the given month key.
// Expense dates are stored as "YYYY-MM-DD", so the month is the 7-char prefix.
func (s *ExpenseStore) SumByLandlordMonth(landlordID, monthKey string) (int64, error) {
	var sum int64
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE landlord_id = ? AND substr(date, 1, 7) = ?`,
		landlordID, monthKey,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum expenses: %w", err)
	}
	return sum, nil
}
