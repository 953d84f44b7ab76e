// internal/store/snapshot.go
//
// Flat-string snapshot codec for game state over the KV store. The key
// layout and record formats are the original client's local-storage
// scheme, kept so stored fields stay human-readable:
//
//	word, word_length, game_mode, current_guess,
//	guesses        "koira,avain,,,,,"   (one slot per row, comma-joined)
//	is_guessing, is_winner, streak, message
//	daily_word_history        "2022-01-07,2022-01-08"  (date index)
//	daily_word_history[DATE]  "WORD|DATE|g1,g2,…|current|guessing|winner"
//
// Loading rebuilds the knowledge store by replaying the stored guesses in
// their original order. A malformed record is discarded — the caller gets
// (nil, false, nil) and starts a fresh game instead of failing the session.

package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"sanapeli/internal/game"
)

const (
	keyWord         = "word"
	keyWordLength   = "word_length"
	keyGameMode     = "game_mode"
	keyCurrentGuess = "current_guess"
	keyGuesses      = "guesses"
	keyIsGuessing   = "is_guessing"
	keyIsWinner     = "is_winner"
	keyStreak       = "streak"
	keyMessage      = "message"
	keyDailyIndex   = "daily_word_history"
)

// SaveGame writes the full snapshot of g under scope.
func SaveGame(ctx context.Context, kv KV, scope string, g *game.Game) error {
	fields := map[string]string{
		keyWord:         string(g.Answer),
		keyWordLength:   strconv.Itoa(g.WordLength),
		keyGameMode:     string(g.Mode),
		keyCurrentGuess: strconv.Itoa(g.Current),
		keyGuesses:      joinGuesses(g.Guesses),
		keyIsGuessing:   strconv.FormatBool(g.Guessing),
		keyIsWinner:     strconv.FormatBool(g.Winner),
		keyStreak:       strconv.Itoa(g.Streak),
		keyMessage:      g.Message,
	}
	for k, v := range fields {
		if err := kv.Set(ctx, scope, k, v); err != nil {
			return fmt.Errorf("save game: %w", err)
		}
	}
	return nil
}

// LoadGame reconstructs a game from the snapshot under scope. The second
// return is false when no snapshot exists or the stored record is corrupt;
// corrupt records are logged and dropped, never fatal.
func LoadGame(ctx context.Context, kv KV, scope string, dict game.Dictionary) (*game.Game, bool, error) {
	word, ok, err := kv.Get(ctx, scope, keyWord)
	if err != nil {
		return nil, false, err
	}
	if !ok || word == "" {
		return nil, false, nil
	}

	g, err := decodeGame(ctx, kv, scope, word, dict)
	if err != nil {
		log.Warn().Err(err).Str("scope", scope).Msg("discarding corrupt game snapshot")
		return nil, false, nil
	}
	return g, true, nil
}

// decodeGame parses every stored field and replays the guesses. Any parse
// failure aborts the whole reconstruction.
func decodeGame(ctx context.Context, kv KV, scope, word string, dict game.Dictionary) (*game.Game, error) {
	answer := []rune(word)

	if raw, ok, err := kv.Get(ctx, scope, keyWordLength); err != nil {
		return nil, err
	} else if ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("word_length %q: %w", raw, err)
		}
		if n != len(answer) {
			return nil, fmt.Errorf("word_length %d does not match stored word %q", n, word)
		}
	}

	mode := game.ModeClassic
	if raw, ok, err := kv.Get(ctx, scope, keyGameMode); err != nil {
		return nil, err
	} else if ok {
		m, err := game.ParseMode(raw)
		if err != nil {
			return nil, err
		}
		mode = m
	}

	g := game.New(mode, answer, dict)

	if raw, ok, err := kv.Get(ctx, scope, keyGuesses); err != nil {
		return nil, err
	} else if ok {
		guesses, err := splitGuesses(raw)
		if err != nil {
			return nil, err
		}
		if err := g.Replay(guesses); err != nil {
			return nil, err
		}
	}

	if raw, ok, err := kv.Get(ctx, scope, keyCurrentGuess); err != nil {
		return nil, err
	} else if ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n >= g.MaxGuesses {
			return nil, fmt.Errorf("current_guess %q out of range", raw)
		}
		g.Current = n
	}

	for key, dst := range map[string]*bool{keyIsGuessing: &g.Guessing, keyIsWinner: &g.Winner} {
		if raw, ok, err := kv.Get(ctx, scope, key); err != nil {
			return nil, err
		} else if ok {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("%s %q: %w", key, raw, err)
			}
			*dst = b
		}
	}

	if raw, ok, err := kv.Get(ctx, scope, keyStreak); err != nil {
		return nil, err
	} else if ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("streak %q: not a count", raw)
		}
		g.Streak = n
	}

	if raw, ok, err := kv.Get(ctx, scope, keyMessage); err != nil {
		return nil, err
	} else if ok {
		g.Message = raw
	}

	return g, nil
}

// DailyEntry is one persisted daily-word play.
type DailyEntry struct {
	Word     string
	Date     string // YYYY-MM-DD
	Guesses  [][]rune
	Current  int
	Guessing bool
	Winner   bool
}

// SaveDailyEntry writes the entry record and adds its date to the index.
func SaveDailyEntry(ctx context.Context, kv KV, scope string, e DailyEntry) error {
	record := strings.Join([]string{
		e.Word,
		e.Date,
		joinGuesses(e.Guesses),
		strconv.Itoa(e.Current),
		strconv.FormatBool(e.Guessing),
		strconv.FormatBool(e.Winner),
	}, "|")
	if err := kv.Set(ctx, scope, dailyKey(e.Date), record); err != nil {
		return fmt.Errorf("save daily entry: %w", err)
	}

	index, _, err := kv.Get(ctx, scope, keyDailyIndex)
	if err != nil {
		return err
	}
	dates := splitNonEmpty(index, ",")
	for _, d := range dates {
		if d == e.Date {
			return nil
		}
	}
	dates = append(dates, e.Date)
	return kv.Set(ctx, scope, keyDailyIndex, strings.Join(dates, ","))
}

// LoadDailyEntry reads one date's record. Corrupt records are discarded
// the same way LoadGame discards them.
func LoadDailyEntry(ctx context.Context, kv KV, scope, date string) (DailyEntry, bool, error) {
	raw, ok, err := kv.Get(ctx, scope, dailyKey(date))
	if err != nil || !ok {
		return DailyEntry{}, false, err
	}
	e, err := parseDailyEntry(raw)
	if err != nil {
		log.Warn().Err(err).Str("scope", scope).Str("date", date).Msg("discarding corrupt daily record")
		return DailyEntry{}, false, nil
	}
	return e, true, nil
}

// DailyDates lists the dates present in the scope's daily index.
func DailyDates(ctx context.Context, kv KV, scope string) ([]string, error) {
	raw, _, err := kv.Get(ctx, scope, keyDailyIndex)
	if err != nil {
		return nil, err
	}
	return splitNonEmpty(raw, ","), nil
}

func parseDailyEntry(raw string) (DailyEntry, error) {
	parts := strings.Split(raw, "|")
	if len(parts) != 6 {
		return DailyEntry{}, fmt.Errorf("daily record has %d fields, want 6", len(parts))
	}
	guesses, err := splitGuesses(parts[2])
	if err != nil {
		return DailyEntry{}, err
	}
	current, err := strconv.Atoi(parts[3])
	if err != nil {
		return DailyEntry{}, fmt.Errorf("daily current %q: %w", parts[3], err)
	}
	guessing, err := strconv.ParseBool(parts[4])
	if err != nil {
		return DailyEntry{}, fmt.Errorf("daily guessing %q: %w", parts[4], err)
	}
	winner, err := strconv.ParseBool(parts[5])
	if err != nil {
		return DailyEntry{}, fmt.Errorf("daily winner %q: %w", parts[5], err)
	}
	return DailyEntry{
		Word:     parts[0],
		Date:     parts[1],
		Guesses:  guesses,
		Current:  current,
		Guessing: guessing,
		Winner:   winner,
	}, nil
}

func dailyKey(date string) string {
	return keyDailyIndex + "[" + date + "]"
}

// joinGuesses renders every row slot, empty ones included, comma-joined.
func joinGuesses(guesses [][]rune) string {
	parts := make([]string, len(guesses))
	for i, g := range guesses {
		parts[i] = string(g)
	}
	return strings.Join(parts, ",")
}

// splitGuesses parses the comma-joined form back into the submitted
// prefix: rows after the first empty slot must also be empty.
func splitGuesses(raw string) ([][]rune, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	var out [][]rune
	done := false
	for i, p := range parts {
		if p == "" {
			done = true
			continue
		}
		if done {
			return nil, fmt.Errorf("guess row %d follows an empty row", i)
		}
		out = append(out, []rune(p))
	}
	return out, nil
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
