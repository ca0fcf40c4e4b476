package taxonomy

import "strings"

// MatchAny returns a predicate reporting whether a skill string contains any of
// keywords as a case-insensitive substring, the same test storage.SkillMatchesAny
// runs in SQL.
func MatchAny(keywords []string) func(skills string) bool {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return func(skills string) bool {
		skills = strings.ToLower(skills)
		for _, k := range lowered {
			if strings.Contains(skills, k) {
				return true
			}
		}
		return false
	}
}

// CategoriesMatching lists, in table order, the categories whose directory
// scan would include a user with this skill text.
func (t *Taxonomy) CategoriesMatching(skills string) []string {
	if t == nil {
		return nil
	}
	var names []string
	for _, c := range t.categories {
		if MatchAny(c.Keywords)(skills) {
			names = append(names, c.Name)
		}
	}
	return names
}
