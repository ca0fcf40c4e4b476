package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_DefaultTable(t *testing.T) {
	tx := Default()

	tests := []struct {
		term     string
		category string
		ok       bool
	}{
		{"python", "coding", true},
		{"PYTHON", "coding", true},
		{"c", "coding", true},
		{"remix developer", "web3", true},
		{"statistics", "data science", true},
		{"illustration", "design", true},
		{"french", "language", true},
		{"go", "", false},
		{"pyth", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, ok := tx.Lookup(tt.term)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.category, got)
		})
	}
}

func TestLookup_FirstCategoryWins(t *testing.T) {
	tx, err := New([]Category{
		{Name: "first", Keywords: []string{"rust"}},
		{Name: "second", Keywords: []string{"rust", "zig"}},
	})
	require.NoError(t, err)

	got, ok := tx.Lookup("rust")
	require.True(t, ok)
	assert.Equal(t, "first", got)
}

func TestNew_NormalizesAndValidates(t *testing.T) {
	tx, err := New([]Category{{Name: "ops", Keywords: []string{" Docker ", "", "K8S"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"docker", "k8s"}, tx.Keywords("ops"))

	_, err = New([]Category{{Name: " "}})
	assert.ErrorIs(t, err, ErrEmptyCategoryName)

	_, err = New([]Category{{Name: "a"}, {Name: "a"}})
	assert.ErrorIs(t, err, ErrDuplicateCategoryName)
}

func TestKeywords_ReturnsCopy(t *testing.T) {
	tx := Default()
	kw := tx.Keywords("coding")
	require.Equal(t, []string{"python", "java", "c++", "c", "javascript"}, kw)

	kw[0] = "cobol"
	assert.Equal(t, "python", tx.Keywords("coding")[0])
	assert.Nil(t, tx.Keywords("unknown"))
}

func TestCategoriesAndHas(t *testing.T) {
	tx := Default()
	assert.Equal(t, []string{"language", "coding", "web3", "data science", "design"}, tx.Categories())
	assert.True(t, tx.Has("web3"))
	assert.False(t, tx.Has("cooking"))

	var nilTx *Taxonomy
	_, ok := nilTx.Lookup("python")
	assert.False(t, ok)
	assert.False(t, nilTx.Has("coding"))
}

func TestMatchAny_SubstringSemantics(t *testing.T) {
	coding := MatchAny(Default().Keywords("coding"))

	assert.True(t, coding("python,ml"))
	assert.True(t, coding("JAVA,sql"))
	assert.True(t, coding("music,dance")) // "c" is a substring of "music" and "dance"
	assert.False(t, coding("go"))
	assert.False(t, MatchAny(nil)("python"))
}

func TestCategoriesMatching(t *testing.T) {
	tx := Default()

	assert.Equal(t, []string{"coding", "data science"}, tx.CategoriesMatching("Python,Statistics"))
	// "c" over-matches, so any skill text with a c lands in coding.
	assert.Equal(t, []string{"coding", "web3"}, tx.CategoriesMatching("smart contracts"))
	assert.Empty(t, tx.CategoriesMatching("rust,go"))

	var nilTx *Taxonomy
	assert.Nil(t, nilTx.CategoriesMatching("python"))
}
