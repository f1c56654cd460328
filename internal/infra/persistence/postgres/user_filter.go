package postgres

import (
	"strings"

	"github.com/gvr1220/user-management/internal/domain/repository"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE substring pattern with wildcards in s escaped.
// Backslash is PostgreSQL's default LIKE escape character.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// userFilterScope applies filter to a users query. Search and Count both use
// it, so the page and the total always see the same predicates.
func userFilterScope(filter repository.UserFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Nickname != "" {
			db = db.Where("nickname ILIKE ?", containsPattern(filter.Nickname))
		}
		if filter.Email != "" {
			db = db.Where("email ILIKE ?", containsPattern(filter.Email))
		}
		if filter.Role != nil {
			db = db.Where("role = ?", filter.Role.String())
		}
		if filter.IsProfessional != nil {
			db = db.Where("is_professional = ?", *filter.IsProfessional)
		}
		if filter.IsLocked != nil {
			db = db.Where("is_locked = ?", *filter.IsLocked)
		}
		if filter.CreatedFrom != nil {
			db = db.Where("created_at >= ?", *filter.CreatedFrom)
		}
		if filter.CreatedTo != nil {
			db = db.Where("created_at <= ?", *filter.CreatedTo)
		}

		return db
	}
}
