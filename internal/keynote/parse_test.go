package keynote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCount(t *testing.T) {
	t.Run("Should parse a plain integer reply", func(t *testing.T) {
		n, err := parseCount("3\n")
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := parseCount("missing value")
		assert.Error(t, err)
	})
}

func TestParseItemLines(t *testing.T) {
	t.Run("Should decode text items and shapes with fonts", func(t *testing.T) {
		out := "text item\t1\tfalse\ttitle\tRoboto-Bold\n" +
			"text item\t2\tfalse\tnone\tArial\n" +
			"shape\t1\ttrue\tnone\tHelvetica"

		infos, err := parseItemLines(out)
		require.NoError(t, err)
		require.Len(t, infos, 3)

		assert.Equal(t, ClassText, infos[0].class)
		assert.Equal(t, 1, infos[0].index)
		assert.Equal(t, PlaceholderTitle, infos[0].placeholder)
		assert.Equal(t, "Roboto-Bold", infos[0].font)
		assert.False(t, infos[0].locked)

		assert.Equal(t, PlaceholderNone, infos[1].placeholder)

		assert.Equal(t, ClassShape, infos[2].class)
		assert.True(t, infos[2].locked)
	})

	t.Run("Should treat a missing font field as empty", func(t *testing.T) {
		infos, err := parseItemLines("shape\t1\tfalse\tnone\t")
		require.NoError(t, err)
		require.Len(t, infos, 1)
		assert.Empty(t, infos[0].font)
	})

	t.Run("Should return nothing for an empty slide", func(t *testing.T) {
		infos, err := parseItemLines("")
		require.NoError(t, err)
		assert.Empty(t, infos)
	})

	t.Run("Should reject malformed lines", func(t *testing.T) {
		_, err := parseItemLines("shape\t1")
		assert.Error(t, err)
	})

	t.Run("Should reject non-numeric indexes", func(t *testing.T) {
		_, err := parseItemLines("shape\tx\tfalse\tnone\t")
		assert.Error(t, err)
	})
}

func TestParsePlaceholder(t *testing.T) {
	t.Run("Should map roles and default to none", func(t *testing.T) {
		assert.Equal(t, PlaceholderTitle, parsePlaceholder("title"))
		assert.Equal(t, PlaceholderBody, parsePlaceholder("body"))
		assert.Equal(t, PlaceholderNone, parsePlaceholder("anything else"))
	})
}
