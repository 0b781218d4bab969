package db

import "database/sql"

// Conn is the subset of database/sql satisfied by both *sql.DB and
// *sql.Tx. Repositories accept it so the same code runs standalone or
// inside a caller-owned transaction.
type Conn interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

// WithinTx runs fn inside a transaction and always resolves it:
// commit on nil error, rollback on error or panic. Row locks taken by
// fn (naming_series allocations in particular) are therefore released
// no later than WithinTx returns.
func WithinTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
