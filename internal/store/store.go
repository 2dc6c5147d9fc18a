package store

import (
	"crypto/rand"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// DBTX is the subset of *sql.DB and *sql.Tx the stores use, so a store can
// run against the shared handle or participate in a transaction via WithTx.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// NewID returns a fresh opaque record ID.
func NewID() string {
	return uuid.NewString()
}

const inviteCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// NewInviteCode returns a short human-shareable landlord code, e.g. "MN-7KQ2".
func NewInviteCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("read random: %v", err))
	}
	for i := range b {
		b[i] = inviteCharset[int(b[i])%len(inviteCharset)]
	}
	return "MN-" + string(b)
}
