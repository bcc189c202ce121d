package fontset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Should split a comma-separated list and trim entries", func(t *testing.T) {
		set, err := Parse(" Roboto , Lato,Open Sans ")
		require.NoError(t, err)
		assert.Equal(t, []string{"Roboto", "Lato", "Open Sans"}, set.Prefixes())
	})

	t.Run("Should reject an empty spec", func(t *testing.T) {
		_, err := Parse("")
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("Should reject a spec of only separators and spaces", func(t *testing.T) {
		_, err := Parse(" , ,, ")
		assert.ErrorIs(t, err, ErrEmpty)
	})
}

func TestNew(t *testing.T) {
	t.Run("Should drop empty entries but keep the rest", func(t *testing.T) {
		set, err := New([]string{"", "Roboto", "  "})
		require.NoError(t, err)
		assert.Equal(t, []string{"Roboto"}, set.Prefixes())
	})

	t.Run("Should reject an empty list", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, ErrEmpty)
	})
}

func TestSet_Matches(t *testing.T) {
	t.Run("Should match when the family starts with a prefix", func(t *testing.T) {
		set, err := Parse("Hel")
		require.NoError(t, err)
		assert.True(t, set.Matches("Helvetica"))
	})

	t.Run("Should not match when the prefix appears mid-name", func(t *testing.T) {
		set, err := Parse("Hel")
		require.NoError(t, err)
		assert.False(t, set.Matches("MyHelper"))
	})

	t.Run("Should be case-sensitive", func(t *testing.T) {
		set, err := Parse("Roboto")
		require.NoError(t, err)
		assert.False(t, set.Matches("roboto"))
	})

	t.Run("Should strip the PostScript style suffix before matching", func(t *testing.T) {
		set, err := Parse("Roboto")
		require.NoError(t, err)
		assert.True(t, set.Matches("Roboto-BoldItalic"))
	})

	t.Run("Should not match names shorter than every prefix", func(t *testing.T) {
		set, err := Parse("Helvetica")
		require.NoError(t, err)
		assert.False(t, set.Matches("Hel"))
	})

	t.Run("Should match against any prefix in the set", func(t *testing.T) {
		set, err := Parse("Lato,Roboto")
		require.NoError(t, err)
		assert.True(t, set.Matches("Roboto-Light"))
		assert.True(t, set.Matches("Lato"))
		assert.False(t, set.Matches("Arial"))
	})
}

func TestFamily(t *testing.T) {
	t.Run("Should truncate at the first hyphen only", func(t *testing.T) {
		assert.Equal(t, "Roboto", Family("Roboto-Bold-Condensed"))
		assert.Equal(t, "Arial", Family("Arial"))
	})
}
