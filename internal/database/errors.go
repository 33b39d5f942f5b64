package database

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// mysqlErrNoReferencedRow is "Cannot add or update a child row: a foreign
// key constraint fails".
const mysqlErrNoReferencedRow = 1452

// IsForeignKeyViolation reports whether err was raised because a row
// referenced a parent that does not exist.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlErrNoReferencedRow
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
