package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// withTx runs fn inside a transaction. The transaction is rolled back when
// fn returns an error or panics and committed otherwise. Inside fn all
// statements must go through tx, never the pool.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	return fn(tx)
}

// existsTx reports whether a row with id exists in table. table is always a
// constant supplied by this package.
func existsTx(ctx context.Context, tx *sql.Tx, table string, id uint64) (bool, error) {
	var got uint64
	err := tx.QueryRowContext(ctx, "SELECT id FROM "+table+" WHERE id = ?", id).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// likeEscape is the escape character used in name searches. '!' needs no
// quoting in either MySQL or SQLite string literals.
const likeEscape = "!"

// nameContains matches the name column against a containsPattern argument.
// Both sides are folded by the database so they share one notion of case.
const nameContains = "LOWER(name) LIKE LOWER(?) ESCAPE '" + likeEscape + "'"

// containsPattern builds a LIKE pattern that matches term as a literal
// substring.
func containsPattern(term string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(term) + "%"
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}
