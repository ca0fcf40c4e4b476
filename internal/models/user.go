package models

import "strings"

// User is a registered participant of the matching directory.
type User struct {
	BaseModel
	Username       string `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	PasswordHash   string `gorm:"type:varchar(255);not null" json:"-"`
	Skills         string `gorm:"type:varchar(300);not null" json:"skills"` // lowercase, comma separated
	Bio            string `gorm:"type:varchar(500)" json:"bio,omitempty"`
	Location       string `gorm:"type:varchar(100)" json:"location,omitempty"`
	GitHub         string `gorm:"column:github;type:varchar(200)" json:"github,omitempty"`
	LinkedIn       string `gorm:"column:linkedin;type:varchar(200)" json:"linkedin,omitempty"`
	ProfilePicture string `gorm:"type:varchar(200)" json:"profilePicture,omitempty"`

	SearchHistory []SearchHistory `gorm:"foreignKey:UserID" json:"-"`
}

// TableName overrides the table name used by User.
func (User) TableName() string {
	return "users"
}

// SkillSet splits the skill string on commas. Tokens are lowercased but not
// trimmed, so "python, ml" yields "python" and " ml".
func (u User) SkillSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, s := range strings.Split(strings.ToLower(u.Skills), ",") {
		set[s] = struct{}{}
	}
	return set
}

// SkillList returns the trimmed, non-empty skills for display.
func (u User) SkillList() []string {
	var out []string
	for _, s := range strings.Split(u.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
