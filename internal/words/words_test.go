package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoadsEmbeddedDefaults(t *testing.T) {
	require.NoError(t, Init())

	perLength, daily := Stats()
	assert.Greater(t, perLength[5], 0)
	assert.Greater(t, perLength[6], 0)
	assert.Greater(t, daily, 0)
}

func TestIsAccepted(t *testing.T) {
	require.NoError(t, Init())

	assert.True(t, IsAccepted("koira"))
	assert.True(t, IsAccepted("KOIRA")) // case-insensitive
	assert.True(t, IsAccepted("juusto"))
	assert.True(t, IsAccepted("pöytä")) // non-ASCII letters count as one
	assert.False(t, IsAccepted("xyzzy"))
	assert.False(t, IsAccepted("koir"))
}

func TestRandomMatchesLength(t *testing.T) {
	require.NoError(t, Init())

	for _, n := range []int{5, 6} {
		w, err := Random(n)
		require.NoError(t, err)
		assert.Len(t, []rune(w), n)
		assert.True(t, IsAccepted(w))
	}
	_, err := Random(11)
	assert.Error(t, err)
}

func TestDailyListIsOrderedAndAccepted(t *testing.T) {
	require.NoError(t, Init())

	first, ok := Daily(0)
	require.True(t, ok)
	assert.Equal(t, "avain", first)
	second, ok := Daily(1)
	require.True(t, ok)
	assert.Equal(t, "koira", second)

	_, ok = Daily(-1)
	assert.False(t, ok)
	_, ok = Daily(DailyCount())
	assert.False(t, ok)

	for i := 0; i < DailyCount(); i++ {
		w, _ := Daily(i)
		assert.True(t, IsAccepted(w), "daily word %q must be guessable", w)
	}
}

func TestIsAlphabet(t *testing.T) {
	assert.True(t, IsAlphabet("avain"))
	assert.True(t, IsAlphabet("pöytä"))
	assert.True(t, IsAlphabet("åland"))
	assert.False(t, IsAlphabet("abc1"))
	assert.False(t, IsAlphabet("a b"))
	assert.False(t, IsAlphabet(""))
}

func TestNormalize(t *testing.T) {
	w, err := Normalize("  KOIRA ")
	require.NoError(t, err)
	assert.Equal(t, "koira", w)

	_, err = Normalize("abc!")
	assert.Error(t, err)
}
