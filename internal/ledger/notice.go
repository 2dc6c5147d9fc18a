package ledger

import (
	"database/sql"
	"fmt"

	"github.com/munsiapp/munsi/internal/database"
	"github.com/munsiapp/munsi/internal/model"
	"github.com/munsiapp/munsi/internal/notice"
	"github.com/munsiapp/munsi/internal/store"
)

// SendNotice opens a ticket between fromID and toID under a landlord's
// account. The ticket starts open and unread, with an initial history entry
// recorded by the sender.
func (l *Ledger) SendNotice(landlordID, fromID, toID, subject, message string) (*model.Notice, error) {
	if subject == "" {
		return nil, invalidf("subject is required")
	}
	if fromID == "" || toID == "" {
		return nil, invalidf("from and to are required")
	}
	if fromID == toID {
		return nil, invalidf("cannot send a notice to yourself")
	}

	id := store.NewID()
	err := database.InTx(l.db, func(tx *sql.Tx) error {
		return l.createNoticeTx(tx, id, landlordID, fromID, toID, subject, message)
	})
	if err != nil {
		return nil, err
	}
	l.log("notice", fromID, fmt.Sprintf("Notice -> %s: %s", toID, subject))
	return l.notices.GetByID(id)
}

// BroadcastNotice fans one subject/message out to every tenant of a landlord
// as independent tickets, each with its own status and read state. All
// tickets are created in one transaction.
func (l *Ledger) BroadcastNotice(landlordID, subject, message string) ([]model.Notice, error) {
	if subject == "" {
		return nil, invalidf("subject is required")
	}
	tenants, err := l.tenants.ListByLandlord(landlordID)
	if err != nil {
		return nil, err
	}
	if len(tenants) == 0 {
		return nil, invalidf("landlord %s has no tenants to notify", landlordID)
	}

	ids := make([]string, len(tenants))
	err = database.InTx(l.db, func(tx *sql.Tx) error {
		for i, t := range tenants {
			ids[i] = store.NewID()
			if err := l.createNoticeTx(tx, ids[i], landlordID, landlordID, t.ID, subject, message); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log("notice_broadcast", landlordID, fmt.Sprintf("%s (%d tenants)", subject, len(tenants)))
	created := make([]model.Notice, 0, len(ids))
	for _, id := range ids {
		n, err := l.notices.GetByID(id)
		if err != nil {
			return nil, err
		}
		created = append(created, *n)
	}
	return created, nil
}

func (l *Ledger) createNoticeTx(tx *sql.Tx, id, landlordID, fromID, toID, subject, message string) error {
	notices := l.notices.WithTx(tx)
	if err := notices.Create(model.Notice{
		ID:         id,
		LandlordID: landlordID,
		FromID:     fromID,
		ToID:       toID,
		Subject:    subject,
		Message:    message,
		Status:     string(notice.StatusOpen),
	}); err != nil {
		return err
	}
	return notices.AppendStatusChange(id, string(notice.StatusOpen), "", fromID)
}

// UpdateNoticeStatus transitions a ticket and appends the matching history
// entry in one transaction. Resolved tickets are terminal; transitioning one
// is a validation error.
func (l *Ledger) UpdateNoticeStatus(noticeID, newStatus, note, actorID string) (*model.Notice, error) {
	n, err := l.notices.GetByID(noticeID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, notFoundf("notice %s", noticeID)
	}
	if err := notice.CanTransition(notice.Status(n.Status), notice.Status(newStatus)); err != nil {
		return nil, invalidf("%v", err)
	}

	err = database.InTx(l.db, func(tx *sql.Tx) error {
		notices := l.notices.WithTx(tx)
		if err := notices.SetStatus(noticeID, newStatus, note); err != nil {
			return err
		}
		return notices.AppendStatusChange(noticeID, newStatus, note, actorID)
	})
	if err != nil {
		return nil, err
	}

	l.log("notice_status", actorID, fmt.Sprintf("Notice %s -> %s", noticeID, newStatus))
	return l.notices.GetByID(noticeID)
}

// MarkNoticeRead flags a ticket read the first time its recipient views it.
// The sender viewing its own ticket does not mark it, and re-marking is a
// no-op.
func (l *Ledger) MarkNoticeRead(noticeID, viewerID string) (*model.Notice, error) {
	n, err := l.notices.GetByID(noticeID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, notFoundf("notice %s", noticeID)
	}
	if n.Read || viewerID == n.FromID {
		return n, nil
	}
	if viewerID != n.ToID {
		return nil, invalidf("user %s is not a participant of notice %s", viewerID, noticeID)
	}
	if err := l.notices.MarkRead(noticeID); err != nil {
		return nil, err
	}
	return l.notices.GetByID(noticeID)
}
