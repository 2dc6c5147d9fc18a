package store

import (
	"database/sql"
	"fmt"

	"github.com/munsiapp/munsi/internal/model"
)

type NoticeStore struct {
	db DBTX
}

func NewNoticeStore(db *sql.DB) *NoticeStore {
	return &NoticeStore{db: db}
}

// WithTx returns a view of the store running inside tx.
func (s *NoticeStore) WithTx(tx *sql.Tx) *NoticeStore {
	return &NoticeStore{db: tx}
}

func scanNotice(scanner interface{ Scan(...any) error }) (*model.Notice, error) {
	var n model.Notice
	var read int
	err := scanner.Scan(
		&n.ID, &n.LandlordID, &n.FromID, &n.ToID, &n.Subject,
		&n.Message, &n.Status, &n.StatusNote, &read, &n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	n.Read = read != 0
	return &n, nil
}

const noticeCols = `id, landlord_id, from_id, to_id, subject, message, status, status_note, read, created_at`

func (s *NoticeStore) Create(n model.Notice) error {
	_, err := s.db.Exec(
		`INSERT INTO notices (id, landlord_id, from_id, to_id, subject, message, status) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.LandlordID, n.FromID, n.ToID, n.Subject, n.Message, n.Status,
	)
	if err != nil {
		return fmt.Errorf("insert notice: %w", err)
	}
	return nil
}

func (s *NoticeStore) GetByID(id string) (*model.Notice, error) {
	row := s.db.QueryRow(`SELECT `+noticeCols+` FROM notices WHERE id = ?`, id)
	n, err := scanNotice(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get notice: %w", err)
	}
	return n, nil
}

// ListByParticipant returns notices the user sent or received, newest first.
func (s *NoticeStore) ListByParticipant(userID string) ([]model.Notice, error) {
	return s.list(
		`SELECT `+noticeCols+` FROM notices WHERE from_id = ? OR to_id = ? ORDER BY created_at DESC`,
		userID, userID,
	)
}

func (s *NoticeStore) ListByLandlord(landlordID string) ([]model.Notice, error) {
	return s.list(
		`SELECT `+noticeCols+` FROM notices WHERE landlord_id = ? ORDER BY created_at DESC`,
		landlordID,
	)
}

func (s *NoticeStore) list(query string, args ...any) ([]model.Notice, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	defer rows.Close()

	var notices []model.Notice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notice: %w", err)
		}
		notices = append(notices, *n)
	}
	return notices, rows.Err()
}

// SetStatus updates the notice's top-level status fields. Callers must append
// the matching history entry in the same transaction.
func (s *NoticeStore) SetStatus(id, status, note string) error {
	_, err := s.db.Exec(`UPDATE notices SET status = ?, status_note = ? WHERE id = ?`, status, note, id)
	if err != nil {
		return fmt.Errorf("set notice status: %w", err)
	}
	return nil
}

func (s *NoticeStore) MarkRead(id string) error {
	_, err := s.db.Exec(`UPDATE notices SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark notice read: %w", err)
	}
	return nil
}

// --- Status history methods ---

func scanNoticeStatusChange(scanner interface{ Scan(...any) error }) (*model.NoticeStatusChange, error) {
	var c model.NoticeStatusChange
	err := scanner.Scan(&c.ID, &c.NoticeID, &c.Status, &c.Note, &c.ChangedBy, &c.ChangedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const noticeStatusChangeCols = `id, notice_id, status, note, changed_by, changed_at`

func (s *NoticeStore) AppendStatusChange(noticeID, status, note, changedBy string) error {
	_, err := s.db.Exec(
		`INSERT INTO notice_status_changes (notice_id, status, note, changed_by) VALUES (?, ?, ?, ?)`,
		noticeID, status, note, changedBy,
	)
	if err != nil {
		return fmt.Errorf("append status change: %w", err)
	}
	return nil
}

// StatusHistory returns a notice's status changes in chronological order.
func (s *NoticeStore) StatusHistory(noticeID string) ([]model.NoticeStatusChange, error) {
	rows, err := s.db.Query(
		`SELECT `+noticeStatusChangeCols+` FROM notice_status_changes WHERE notice_id = ? ORDER BY id ASC`,
		noticeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list status changes: %w", err)
	}
	defer rows.Close()

	var history []model.NoticeStatusChange
	for rows.Next() {
		c, err := scanNoticeStatusChange(rows)
		if err != nil {
			return nil, fmt.Errorf("scan status change: %w", err)
		}
		history = append(history, *c)
	}
	return history, rows.Err()
}
