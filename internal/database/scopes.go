package database

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/project-management-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// ContainsFold matches rows whose column contains term, ignoring case.
// LIKE wildcards in term are matched literally.
func ContainsFold(column, term string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(FoldCondition(column), ContainsPattern(term))
	}
}

// AnyContainsFold is ContainsFold over several columns joined with OR.
func AnyContainsFold(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		pattern := ContainsPattern(term)
		for i, c := range columns {
			conds[i] = FoldCondition(c)
			args[i] = pattern
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// FoldCondition is the case-insensitive LIKE condition for column.
func FoldCondition(column string) string {
	return "LOWER(" + column + ") LIKE ? ESCAPE '!'"
}

// ContainsPattern builds the LIKE pattern matching term anywhere.
func ContainsPattern(term string) string {
	return "%" + EscapeLike(strings.ToLower(term)) + "%"
}

// Active keeps rows whose is_active flag is set.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// EscapeLike escapes the LIKE metacharacters in s with '!'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)
	return r.Replace(s)
}
