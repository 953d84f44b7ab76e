package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) []rune { return []rune(s) }

func TestRevealMarksCorrectIffEqual(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		guess  string
	}{
		{"all wrong", "koira", "sauna"},
		{"all right", "koira", "koira"},
		{"partial overlap", "avain", "aivan"},
		{"repeated letters", "tuuli", "uutuu"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k := NewKnowledge(len(runes(tc.answer)), DefaultMaxGuesses)
			k.Reveal(0, runes(tc.answer), runes(tc.guess))

			correct := 0
			for i, ch := range runes(tc.guess) {
				want := StateAbsent
				if runes(tc.answer)[i] == ch {
					want = StateCorrect
					correct++
				}
				assert.Equal(t, want, k.State(0, ch, i), "position %d", i)
			}
			assert.LessOrEqual(t, correct, len(runes(tc.answer)))
		})
	}
}

// Secret AVAIN, guess AIVAN: the second A must come out Present (one A is
// already Correct and minCount[a] reaches 2), V and I Present, never a
// second Correct.
func TestRowMarksAvainAivan(t *testing.T) {
	k := NewKnowledge(5, DefaultMaxGuesses)
	answer, guess := runes("avain"), runes("aivan")
	k.Reveal(0, answer, guess)

	require.Equal(t, 2, k.MinCount(0, 'a'))
	require.Equal(t, 1, k.MinCount(0, 'v'))
	require.Equal(t, 1, k.MinCount(0, 'i'))
	assert.True(t, k.Discovered('v'))
	assert.True(t, k.Discovered('a'))

	marks := k.RowMarks(0, guess)
	assert.Equal(t, []Tile{TileCorrect, TilePresent, TilePresent, TilePresent, TileCorrect}, marks)
}

// A repeated guess letter earns Present only up to the letter's minimum
// count, and the earliest unmatched positions win the yellows.
func TestRowMarksRepeatedLetterCap(t *testing.T) {
	k := NewKnowledge(5, DefaultMaxGuesses)
	answer, guess := runes("tuuli"), runes("uutuu")
	k.Reveal(0, answer, guess)

	require.Equal(t, 2, k.MinCount(0, 'u'))
	marks := k.RowMarks(0, guess)
	assert.Equal(t, []Tile{TilePresent, TileCorrect, TilePresent, TileAbsent, TileAbsent}, marks)
}

// A letter whose copies are all consumed as Correct gets no Present tiles.
func TestRowMarksNoPresentWhenFullyRevealed(t *testing.T) {
	k := NewKnowledge(5, DefaultMaxGuesses)
	answer, guess := runes("koira"), runes("kakka")
	k.Reveal(0, answer, guess)

	marks := k.RowMarks(0, guess)
	assert.Equal(t, []Tile{TileCorrect, TileAbsent, TileAbsent, TileAbsent, TileCorrect}, marks)
}

func TestMinCountMonotonic(t *testing.T) {
	k := NewKnowledge(5, DefaultMaxGuesses)
	answer := runes("avain")

	k.Reveal(0, answer, runes("apina")) // one misplaced a → minCount[a] ≥ 1
	first := k.MinCount(0, 'a')
	require.GreaterOrEqual(t, first, 1)

	k.Reveal(1, answer, runes("aivan")) // two a's → raises toward 2
	assert.GreaterOrEqual(t, k.MinCount(1, 'a'), first)
	assert.Equal(t, 2, k.MinCount(1, 'a'))

	k.Reveal(2, answer, runes("koira")) // single a again; must not decrease
	assert.Equal(t, 2, k.MinCount(2, 'a'))
}

// Round n+1 starts as an exact copy of round n's post-evaluation maps.
func TestCopyForward(t *testing.T) {
	k := NewKnowledge(5, DefaultMaxGuesses)
	answer, guess := runes("avain"), runes("aivan")
	k.Reveal(0, answer, guess)

	for i, ch := range guess {
		assert.Equal(t, k.State(0, ch, i), k.State(1, ch, i))
	}
	for _, ch := range runes("aivn") {
		assert.Equal(t, k.MinCount(0, ch), k.MinCount(1, ch))
	}

	// Row marks for the old round render identically from the next round.
	assert.Equal(t, k.RowMarks(0, guess), k.RowMarks(1, guess))
}

func TestCharacterNeverInSecret(t *testing.T) {
	k := NewKnowledge(5, DefaultMaxGuesses)
	k.Reveal(0, runes("avain"), runes("kosto"))

	for i, ch := range runes("kosto") {
		assert.Equal(t, StateAbsent, k.State(0, ch, i))
	}
	for _, ch := range runes("ksto") {
		assert.False(t, k.Discovered(ch))
		assert.Zero(t, k.MinCount(0, ch))
		assert.Equal(t, TileAbsent, k.KeyMark(0, ch))
	}
}

func TestTileMarkPrecedence(t *testing.T) {
	k := NewKnowledge(5, DefaultMaxGuesses)
	answer := runes("avain")
	k.Reveal(0, answer, runes("aivan"))

	// Exact correct position wins.
	assert.Equal(t, TileCorrect, k.TileMark(1, 'a', 0))
	// Discovered with a known count classifies Present while typing.
	assert.Equal(t, TilePresent, k.TileMark(1, 'v', 1))
	assert.Equal(t, TilePresent, k.TileMark(1, 'i', 3))
	// Never observed at all: nothing.
	assert.Equal(t, TileNone, k.TileMark(1, 'z', 0))

	// No count known + an Absent observation somewhere → Absent.
	k2 := NewKnowledge(5, DefaultMaxGuesses)
	k2.Reveal(0, answer, runes("kosto"))
	assert.Equal(t, TileAbsent, k2.TileMark(1, 'k', 2))
	assert.Equal(t, TileAbsent, k2.TileMark(1, 'o', 0))
}

func TestKeyMarkPrecedence(t *testing.T) {
	k := NewKnowledge(5, DefaultMaxGuesses)
	answer := runes("avain")
	k.Reveal(0, answer, runes("aivan"))

	assert.Equal(t, TileCorrect, k.KeyMark(1, 'a')) // correct at position 0
	assert.Equal(t, TileCorrect, k.KeyMark(1, 'n'))
	assert.Equal(t, TilePresent, k.KeyMark(1, 'v')) // misplaced but counted
	assert.Equal(t, TileNone, k.KeyMark(1, 'z'))

	k.Reveal(1, answer, runes("kosto"))
	assert.Equal(t, TileAbsent, k.KeyMark(2, 'k'))
	// Earlier knowledge survives the new round.
	assert.Equal(t, TileCorrect, k.KeyMark(2, 'a'))
	assert.Equal(t, TilePresent, k.KeyMark(2, 'v'))
}
