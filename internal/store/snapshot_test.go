package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sanapeli/internal/game"
)

type allowAll struct{}

func (allowAll) IsAccepted(string) bool { return true }

func TestKVAbsentKey(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "owner", "word")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "owner", "word", "avain"))
	v, ok, err := kv.Get(ctx, "owner", "word")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "avain", v)

	// Scopes are isolated.
	_, ok, err = kv.Get(ctx, "other", "word")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Delete(ctx, "owner", "word"))
	_, ok, _ = kv.Get(ctx, "owner", "word")
	assert.False(t, ok)
}

// A save/load cycle must reproduce identical knowledge: same row marks,
// same counts, same flags. Replay order is what makes this hold.
func TestGameSnapshotRoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	g := game.New(game.ModeClassic, []rune("avain"), allowAll{})
	for _, w := range []string{"koira", "aivan"} {
		_, _, err := g.SubmitGuess(w)
		require.NoError(t, err)
	}
	g.Streak = 4
	require.NoError(t, SaveGame(ctx, kv, "owner|classic", g))

	loaded, ok, err := LoadGame(ctx, kv, "owner|classic", allowAll{})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, g.Mode, loaded.Mode)
	assert.Equal(t, string(g.Answer), string(loaded.Answer))
	assert.Equal(t, g.Current, loaded.Current)
	assert.Equal(t, g.Guessing, loaded.Guessing)
	assert.Equal(t, g.Winner, loaded.Winner)
	assert.Equal(t, 4, loaded.Streak)
	for i := 0; i < 2; i++ {
		assert.Equal(t, g.RowMarks(i), loaded.RowMarks(i), "row %d", i)
	}
	for _, ch := range []rune("avinkor") {
		assert.Equal(t,
			g.Knowledge().MinCount(g.Current, ch),
			loaded.Knowledge().MinCount(loaded.Current, ch), "minCount %c", ch)
		assert.Equal(t, g.Knowledge().Discovered(ch), loaded.Knowledge().Discovered(ch), "discovered %c", ch)
	}
}

func TestLoadGameAbsent(t *testing.T) {
	kv := NewMemoryKV()
	_, ok, err := LoadGame(context.Background(), kv, "nobody|classic", allowAll{})
	require.NoError(t, err)
	assert.False(t, ok)
}

// Malformed persisted state is discarded, not fatal: the caller gets
// "no snapshot" and starts a fresh game.
func TestLoadGameDiscardsCorruptRecord(t *testing.T) {
	ctx := context.Background()

	cases := map[string]map[string]string{
		"bad word_length": {
			"word": "avain", "word_length": "banana",
		},
		"length mismatch": {
			"word": "avain", "word_length": "6",
		},
		"bad mode": {
			"word": "avain", "game_mode": "speedrun",
		},
		"guess after gap": {
			"word": "avain", "guesses": "koira,,aivan,,,",
		},
		"replay length mismatch": {
			"word": "avain", "guesses": "juusto,,,,,",
		},
		"current out of range": {
			"word": "avain", "current_guess": "11",
		},
		"bad flag": {
			"word": "avain", "is_winner": "maybe",
		},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			kv := NewMemoryKV()
			for k, v := range fields {
				require.NoError(t, kv.Set(ctx, "s", k, v))
			}
			g, ok, err := LoadGame(ctx, kv, "s", allowAll{})
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, g)
		})
	}
}

func TestDailyEntryRoundTripAndIndex(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	e := DailyEntry{
		Word:     "avain",
		Date:     "2022-01-07",
		Guesses:  [][]rune{[]rune("koira"), []rune("avain"), nil, nil, nil, nil},
		Current:  1,
		Guessing: false,
		Winner:   true,
	}
	require.NoError(t, SaveDailyEntry(ctx, kv, "owner|daily", e))
	require.NoError(t, SaveDailyEntry(ctx, kv, "owner|daily", e)) // idempotent index

	got, ok, err := LoadDailyEntry(ctx, kv, "owner|daily", "2022-01-07")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "avain", got.Word)
	assert.Equal(t, 1, got.Current)
	assert.False(t, got.Guessing)
	assert.True(t, got.Winner)
	require.Len(t, got.Guesses, 2)
	assert.Equal(t, "koira", string(got.Guesses[0]))
	assert.Equal(t, "avain", string(got.Guesses[1]))

	dates, err := DailyDates(ctx, kv, "owner|daily")
	require.NoError(t, err)
	assert.Equal(t, []string{"2022-01-07"}, dates)
}

func TestLoadDailyEntryDiscardsCorruptRecord(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "s", "daily_word_history[2022-01-08]", "avain|2022-01-08|koira"))
	_, ok, err := LoadDailyEntry(ctx, kv, "s", "2022-01-08")
	require.NoError(t, err)
	assert.False(t, ok)
}
