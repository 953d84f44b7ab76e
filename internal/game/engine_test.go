package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listDict is a fixed accepted-word list for tests.
type listDict map[string]struct{}

func (d listDict) IsAccepted(w string) bool {
	_, ok := d[w]
	return ok
}

func dict(words ...string) listDict {
	d := make(listDict, len(words))
	for _, w := range words {
		d[w] = struct{}{}
	}
	return d
}

func TestSubmitGuessTooShortLeavesStateUntouched(t *testing.T) {
	g := New(ModeClassic, runes("avain"), dict("avain", "koira"))

	_, state, err := g.SubmitGuess("ava")
	require.ErrorIs(t, err, ErrTooShort)
	assert.Equal(t, "playing", state)
	assert.Equal(t, "Liian vähän kirjaimia!", g.Message)
	assert.Equal(t, 0, g.Current)
	assert.Equal(t, StateUnknown, g.Knowledge().State(0, 'a', 0))
}

func TestSubmitGuessUnknownWordLeavesStateUntouched(t *testing.T) {
	g := New(ModeClassic, runes("avain"), dict("avain", "koira"))

	_, state, err := g.SubmitGuess("xxxxx")
	require.ErrorIs(t, err, ErrUnknownWord)
	assert.Equal(t, "playing", state)
	assert.Equal(t, "Ei sanalistalla.", g.Message)
	assert.Equal(t, 0, g.Current)
	assert.Zero(t, g.Knowledge().MinCount(0, 'x'))
}

func TestWinAtAnyRound(t *testing.T) {
	for _, misses := range []int{0, 2, 5} {
		g := New(ModeClassic, runes("avain"), dict("avain", "koira"))
		for i := 0; i < misses; i++ {
			_, state, err := g.SubmitGuess("koira")
			require.NoError(t, err)
			require.Equal(t, "playing", state)
		}

		marks, state, err := g.SubmitGuess("avain")
		require.NoError(t, err)
		assert.Equal(t, "won", state)
		assert.Equal(t, []Tile{TileCorrect, TileCorrect, TileCorrect, TileCorrect, TileCorrect}, marks)
		assert.Equal(t, 1, g.Streak)
		assert.True(t, strings.HasPrefix(g.Message, "Löysit sanan!"))

		_, _, err = g.SubmitGuess("koira")
		assert.ErrorIs(t, err, ErrGameOver)
	}
}

func TestLossRevealsSecret(t *testing.T) {
	g := New(ModeClassic, runes("avain"), dict("avain", "koira"))
	g.Streak = 3

	for i := 0; i < DefaultMaxGuesses-1; i++ {
		_, state, err := g.SubmitGuess("koira")
		require.NoError(t, err)
		require.Equal(t, "playing", state)
	}
	_, state, err := g.SubmitGuess("koira")
	require.NoError(t, err)
	assert.Equal(t, "lost", state)
	assert.Contains(t, g.Message, `"avain"`)
	assert.Zero(t, g.Streak)
}

func TestSubmitGuessNormalizesCase(t *testing.T) {
	g := New(ModeClassic, runes("avain"), dict("avain"))
	_, state, err := g.SubmitGuess("  AVAIN ")
	require.NoError(t, err)
	assert.Equal(t, "won", state)
}

func TestSeedRowCarriesRelayWord(t *testing.T) {
	g := New(ModeRelay, runes("koira"), dict("avain", "koira"))
	require.True(t, g.SeedRow(runes("avain")))

	assert.Equal(t, 1, g.Current)
	// The seeded row revealed its knowledge: a and i are discovered.
	assert.True(t, g.Knowledge().Discovered('a'))
	assert.True(t, g.Knowledge().Discovered('i'))
	// 'a' is misplaced everywhere in koira, so it renders Present.
	marks := g.RowMarks(0)
	assert.Equal(t, TilePresent, marks[0])

	// Length mismatch or non-fresh game refuses the seed.
	assert.False(t, g.SeedRow(runes("avain")))
	g2 := New(ModeRelay, runes("koira"), nil)
	assert.False(t, g2.SeedRow(runes("juusto")))
}

// Replaying the recorded guesses from empty state must reproduce the
// exact same knowledge a live game accumulated.
func TestReplayMatchesLiveGame(t *testing.T) {
	words := []string{"apina", "aivan", "tammi"}
	live := New(ModeClassic, runes("avain"), dict(words...))
	for _, w := range words {
		_, _, err := live.SubmitGuess(w)
		require.NoError(t, err)
	}

	replayed := New(ModeClassic, runes("avain"), dict(words...))
	guesses := make([][]rune, len(words))
	for i, w := range words {
		guesses[i] = runes(w)
	}
	require.NoError(t, replayed.Replay(guesses))
	replayed.Current = live.Current

	for i := range words {
		assert.Equal(t, live.RowMarks(i), replayed.RowMarks(i), "row %d", i)
	}
	for _, ch := range runes("apinvtm") {
		assert.Equal(t,
			live.Knowledge().MinCount(live.Current, ch),
			replayed.Knowledge().MinCount(replayed.Current, ch), "minCount %c", ch)
		assert.Equal(t, live.Knowledge().Discovered(ch), replayed.Knowledge().Discovered(ch), "discovered %c", ch)
		assert.Equal(t,
			live.Knowledge().KeyMark(live.Current, ch),
			replayed.Knowledge().KeyMark(replayed.Current, ch), "keymark %c", ch)
	}
}

func TestReplayRejectsWrongLength(t *testing.T) {
	g := New(ModeClassic, runes("avain"), nil)
	err := g.Replay([][]rune{runes("juusto")})
	assert.Error(t, err)
}

func TestResetForNewSecret(t *testing.T) {
	g := New(ModeClassic, runes("avain"), dict("avain", "koira"))
	_, _, err := g.SubmitGuess("koira")
	require.NoError(t, err)
	g.Streak = 2

	g.ResetForNewSecret(runes("juusto"))
	assert.Equal(t, 6, g.WordLength)
	assert.Equal(t, 0, g.Current)
	assert.True(t, g.Guessing)
	assert.False(t, g.Winner)
	assert.Equal(t, 2, g.Streak) // streak survives a reset
	assert.False(t, g.Knowledge().Discovered('a'))
	assert.Equal(t, StateUnknown, g.Knowledge().State(0, 'k', 0))
}
