package store

import (
	"database/sql"
	"fmt"

	"github.com/munsiapp/munsi/internal/model"
)

type SnapshotStore struct {
	db DBTX
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

const snapshotCols = `id, object_key, size_bytes, status, error, created_at`

func (s *SnapshotStore) Record(objectKey string, sizeBytes int64, status, errMsg string) (*model.Snapshot, error) {
	result, err := s.db.Exec(
		`INSERT INTO snapshot_history (object_key, size_bytes, status, error) VALUES (?, ?, ?, ?)`,
		objectKey, sizeBytes, status, errMsg,
	)
	if err != nil {
		return nil, fmt.Errorf("insert snapshot record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+snapshotCols+` FROM snapshot_history WHERE id = ?`, id)
	var snap model.Snapshot
	if err := row.Scan(&snap.ID, &snap.ObjectKey, &snap.SizeBytes, &snap.Status, &snap.Error, &snap.CreatedAt); err != nil {
		return nil, fmt.Errorf("get snapshot record: %w", err)
	}
	return &snap, nil
}

// List returns snapshot history, newest first.
func (s *SnapshotStore) List(limit int) ([]model.Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT `+snapshotCols+` FROM snapshot_history ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		if err := rows.Scan(&snap.ID, &snap.ObjectKey, &snap.SizeBytes, &snap.Status, &snap.Error, &snap.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}
