// Package taxonomy holds the skill-category table used to group search terms.
package taxonomy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCategoryName     = errors.New("taxonomy: category name is empty")
	ErrDuplicateCategoryName = errors.New("taxonomy: duplicate category name")
)

// Category is a named bucket of skill keywords.
type Category struct {
	Name     string   `mapstructure:"NAME"`
	Keywords []string `mapstructure:"KEYWORDS"`
}

// Taxonomy is an immutable, ordered category table. The zero value is an empty taxonomy.
type Taxonomy struct {
	categories []Category
	index      map[string]int
}

// DefaultCategories returns the built-in category table.
func DefaultCategories() []Category {
	return []Category{
		{Name: "language", Keywords: []string{"english", "hindi", "marathi", "spanish", "french"}},
		{Name: "coding", Keywords: []string{"python", "java", "c++", "c", "javascript"}},
		{Name: "web3", Keywords: []string{"blockchain", "remix developer", "smart contracts", "ethereum"}},
		{Name: "data science", Keywords: []string{"machine learning", "deep learning", "data analysis", "statistics"}},
		{Name: "design", Keywords: []string{"ui/ux design", "graphic design", "illustration"}},
	}
}

// Default builds the taxonomy from DefaultCategories.
func Default() *Taxonomy {
	t, err := New(DefaultCategories())
	if err != nil {
		panic(err)
	}
	return t
}

// New copies the given categories into a Taxonomy. Keywords are lowercased and
// trimmed; their order is kept.
func New(categories []Category) (*Taxonomy, error) {
	t := &Taxonomy{
		categories: make([]Category, 0, len(categories)),
		index:      make(map[string]int, len(categories)),
	}
	for _, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, ErrEmptyCategoryName
		}
		if _, dup := t.index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCategoryName, name)
		}
		keywords := make([]string, 0, len(c.Keywords))
		for _, k := range c.Keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" {
				keywords = append(keywords, k)
			}
		}
		t.index[name] = len(t.categories)
		t.categories = append(t.categories, Category{Name: name, Keywords: keywords})
	}
	return t, nil
}

// Lookup returns the first category whose keyword list contains term
// (case-insensitive exact match). ok is false when the term is uncategorized.
func (t *Taxonomy) Lookup(term string) (category string, ok bool) {
	if t == nil {
		return "", false
	}
	term = strings.ToLower(term)
	for _, c := range t.categories {
		for _, k := range c.Keywords {
			if k == term {
				return c.Name, true
			}
		}
	}
	return "", false
}

// Keywords returns a copy of the keywords of category, or nil if it does not exist.
func (t *Taxonomy) Keywords(category string) []string {
	if t == nil {
		return nil
	}
	i, ok := t.index[category]
	if !ok {
		return nil
	}
	out := make([]string, len(t.categories[i].Keywords))
	copy(out, t.categories[i].Keywords)
	return out
}

// Has reports whether category exists.
func (t *Taxonomy) Has(category string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[category]
	return ok
}

// Categories returns the category names in table order.
func (t *Taxonomy) Categories() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.categories))
	for i, c := range t.categories {
		names[i] = c.Name
	}
	return names
}
