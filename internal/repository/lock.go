package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds a row lock on dialects that support it. SQLite has a
// single writer and rejects the FOR UPDATE syntax, so the clause is skipped
// there.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}

	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
