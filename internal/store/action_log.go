package store

import (
	"database/sql"
	"fmt"

	"github.com/munsiapp/munsi/internal/model"
)

type ActionLogStore struct {
	db DBTX
}

func NewActionLogStore(db *sql.DB) *ActionLogStore {
	return &ActionLogStore{db: db}
}

// WithTx returns a view of the store running inside tx.
func (s *ActionLogStore) WithTx(tx *sql.Tx) *ActionLogStore {
	return &ActionLogStore{db: tx}
}

func (s *ActionLogStore) Append(action, userID, detail string) error {
	_, err := s.db.Exec(
		`INSERT INTO action_logs (action, user_id, detail) VALUES (?, ?, ?)`,
		action, userID, detail,
	)
	if err != nil {
		return fmt.Errorf("append action log: %w", err)
	}
	return nil
}

// ListRecent returns the most recent entries, newest first.
func (s *ActionLogStore) ListRecent(limit int) ([]model.ActionLog, error) {
	rows, err := s.db.Query(
		`SELECT id, action, user_id, detail, ts FROM action_logs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list action logs: %w", err)
	}
	defer rows.Close()

	var logs []model.ActionLog
	for rows.Next() {
		var l model.ActionLog
		if err := rows.Scan(&l.ID, &l.Action, &l.UserID, &l.Detail, &l.TS); err != nil {
			return nil, fmt.Errorf("scan action log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
