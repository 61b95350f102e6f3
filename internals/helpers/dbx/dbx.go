// file: internals/helpers/dbx/dbx.go
package dbx

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgSQLErr matches pgconn.PgError without importing the driver directly.
type pgSQLErr interface {
	SQLState() string
	Error() string
}

const (
	sqlStateUniqueViolation = "23505"
	sqlStateFKViolation     = "23503"
)

func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == sqlStateUniqueViolation
	}
	// SQLite (tests) reports constraint failures without SQLState.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func IsFKViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == sqlStateFKViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// LockForUpdate applies SELECT ... FOR UPDATE where the dialect supports it.
// SQLite serializes writers on its own and rejects the clause.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// LockUserScope takes an advisory transaction lock keyed by (user, scope),
// so two casts by the same user on the same voting/round serialize while
// different users stay fully parallel. Held until commit or rollback.
func LockUserScope(tx *gorm.DB, userID, scopeID uuid.UUID) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	key := userID.String() + "/" + scopeID.String()
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", key).Error
}
