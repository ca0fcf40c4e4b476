package storage

import (
	"strings"

	"gorm.io/gorm"
)

// likeEscaper makes LIKE metacharacters literal under ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SkillMatchesAny returns a scope that keeps users whose skill text contains
// any of keywords as a case-insensitive substring. The clauses are OR-ed and
// wrapped in parentheses so the scope composes with other conditions. An
// empty keyword list matches nothing.
//
// Keywords match literally: %, _ and \ are escaped. Short keywords still
// over-match: "c" also matches "c++" and "javascript".
func SkillMatchesAny(keywords []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(keywords) == 0 {
			return db.Where("1 = 0")
		}
		clauses := make([]string, 0, len(keywords))
		args := make([]interface{}, 0, len(keywords))
		for _, k := range keywords {
			clauses = append(clauses, `LOWER(skills) LIKE ? ESCAPE '\'`)
			args = append(args, "%"+likeEscaper.Replace(strings.ToLower(k))+"%")
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// ExcludingUser drops the user with id from the result. An id of 0 is a no-op.
func ExcludingUser(id uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id == 0 {
			return db
		}
		return db.Where("id <> ?", id)
	}
}

// DirectoryOrder sorts users the way the directory lists them.
func DirectoryOrder(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
