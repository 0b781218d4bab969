// Package sequence mints gap-free, prefixed, zero-padded codes from
// the naming_series table, one independent series per prefix.
package sequence

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Conn is satisfied by *sql.Tx. NextCode must run on a caller-owned
// transaction so the counter increment commits or rolls back together
// with whatever the code is minted for.
type Conn interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

// NextCode increments the series for prefix and returns the formatted
// code, e.g. NextCode(tx, "BIZ", 12, ...) -> "BIZ000000000001" on a
// fresh series. paddingLength and description apply only when the
// series does not exist yet.
//
// The UPDATE takes a row-level lock held until the caller's
// transaction ends, so concurrent allocations for one prefix are
// strictly serialized and never hand out the same number. NextCode
// never commits; rolling back the caller's transaction also rolls
// back the increment.
func NextCode(tx Conn, prefix string, paddingLength int, description string) (string, error) {
	n, pad, err := increment(tx, prefix)
	if err == sql.ErrNoRows {
		// First allocation for this prefix: create the row, then retry.
		// The unique constraint on code_prefix is the backstop when two
		// first-time callers race; DO NOTHING lets the loser fall
		// through to lock the winner's row.
		if description == "" {
			description = prefix + " code series"
		}
		_, err = tx.Exec(`
			INSERT INTO naming_series (id, code_prefix, last_number, padding_length, description)
			VALUES ($1, $2, 0, $3, $4)
			ON CONFLICT (code_prefix) DO NOTHING
		`, uuid.New(), prefix, paddingLength, description)
		if err != nil {
			return "", fmt.Errorf("create series %s: %w", prefix, err)
		}
		n, pad, err = increment(tx, prefix)
	}
	if err != nil {
		return "", fmt.Errorf("allocate %s: %w", prefix, err)
	}

	// Values beyond the padding width grow the code, never truncate.
	return fmt.Sprintf("%s%0*d", prefix, pad, n), nil
}

func increment(tx Conn, prefix string) (n int64, pad int, err error) {
	err = tx.QueryRow(`
		UPDATE naming_series
		SET last_number = last_number + 1, updated_at = now()
		WHERE code_prefix = $1
		RETURNING last_number, padding_length
	`, prefix).Scan(&n, &pad)
	return n, pad, err
}
