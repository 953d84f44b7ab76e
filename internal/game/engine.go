// internal/game/engine.go
//
// Game lifecycle for a single session.
// Responsibilities:
//   - Create games with the requested mode, word length and secret.
//   - Validate and apply guesses (length, accepted-word list).
//   - Merge each reveal into the knowledge store and advance rounds.
//   - Track state transitions: playing → won/lost, streak and messages.
//   - Replay stored guesses in order to reconstruct knowledge on load.
//
// Notes:
//   - Secrets are chosen by the caller (words package or daily list); the
//     engine never picks its own word.
//   - Guess legality uses an injected Dictionary, never the secret.
//   - randomID() is a compact hex identifier for correlating server state.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Dictionary answers the accepted-word membership test. It is consulted
// only for guess legality, never for evaluation semantics.
type Dictionary interface {
	IsAccepted(word string) bool
}

// Sentinel conditions surfaced by SubmitGuess. None of them mutate game
// state; the first two also leave a Finnish message on the game so callers
// can show them as ordinary UI state rather than faults.
var (
	ErrGameOver    = errors.New("game finished")
	ErrTooShort    = errors.New("guess length mismatch")
	ErrUnknownWord = errors.New("not in word list")
)

// New constructs a playing game around the given secret.
func New(mode Mode, answer []rune, dict Dictionary) *Game {
	length := len(answer)
	g := &Game{
		ID:         randomID(),
		Mode:       mode,
		Answer:     answer,
		WordLength: length,
		MaxGuesses: DefaultMaxGuesses,
		Guesses:    make([][]rune, DefaultMaxGuesses),
		Guessing:   true,
		knowledge:  NewKnowledge(length, DefaultMaxGuesses),
		dict:       dict,
	}
	return g
}

// SubmitGuess validates and applies one guess to the current round.
//
// Rejections happen before any state change: a wrong-length guess reports
// ErrTooShort, a guess missing from the accepted list ErrUnknownWord; both
// set g.Message and leave every map untouched. A legal guess is revealed
// into the knowledge store, the accumulated maps are carried into the next
// round, and the game transitions to won/lost when the guess matches the
// secret or the final round is consumed.
//
// Returns the display marks for the submitted row and the new state.
func (g *Game) SubmitGuess(guess string) ([]Tile, string, error) {
	if !g.Guessing {
		return nil, g.State(), ErrGameOver
	}
	word := []rune(strings.ToLower(strings.TrimSpace(guess)))
	if len(word) != g.WordLength {
		g.Message = msgTooShort
		return nil, g.State(), ErrTooShort
	}
	if g.dict != nil && !g.dict.IsAccepted(string(word)) {
		g.Message = msgUnknownWord
		return nil, g.State(), ErrUnknownWord
	}

	g.Winner = runesEqual(word, g.Answer)
	g.Guesses[g.Current] = word
	g.knowledge.Reveal(g.Current, g.Answer, word)

	marks := g.knowledge.RowMarks(g.Current, word)

	ended := g.Winner || g.Current == g.MaxGuesses-1
	if ended {
		g.Guessing = false
		if g.Winner {
			g.Streak++
			g.Message = winMessage(g.Mode)
		} else {
			g.Streak = 0
			g.Message = fmt.Sprintf("Sana oli %q", string(g.Answer))
		}
	} else {
		g.Message = ""
		g.Current++
	}
	return marks, g.State(), nil
}

// SeedRow pre-plays a word as row 0 with its knowledge revealed, used by
// relay mode to carry the previous winning word into the next game. Only
// valid on a fresh game whose word length matches the seed.
func (g *Game) SeedRow(word []rune) bool {
	if g.Current != 0 || len(word) != g.WordLength {
		return false
	}
	g.Guesses[0] = word
	g.knowledge.Reveal(0, g.Answer, word)
	g.Current = 1
	return true
}

// Replay re-evaluates previously submitted guesses in their original
// order, starting from empty round-0 knowledge. Order is load-bearing:
// both the minimum counts and the row tally depend on it. Flags (current
// round, guessing, winner) are restored separately by the caller from
// stored state.
func (g *Game) Replay(guesses [][]rune) error {
	for i, word := range guesses {
		if len(word) == 0 {
			continue
		}
		if len(word) != g.WordLength {
			return fmt.Errorf("replay guess %d: length %d, want %d", i, len(word), g.WordLength)
		}
		if i >= g.MaxGuesses {
			return fmt.Errorf("replay guess %d: only %d rounds", i, g.MaxGuesses)
		}
		g.Guesses[i] = word
		g.Current = i
		g.knowledge.Reveal(i, g.Answer, word)
	}
	return nil
}

// ResetForNewSecret discards every round and rebuilds the game around a
// new secret, which may have a different length. The streak and dictionary
// carry over; everything else starts fresh.
func (g *Game) ResetForNewSecret(answer []rune) {
	g.Answer = answer
	g.WordLength = len(answer)
	g.Guesses = make([][]rune, g.MaxGuesses)
	g.Current = 0
	g.Guessing = true
	g.Winner = false
	g.Message = ""
	g.knowledge = NewKnowledge(g.WordLength, g.MaxGuesses)
}

// RowMarks exposes display marks for any submitted row.
func (g *Game) RowMarks(round int) []Tile {
	if round < 0 || round >= g.MaxGuesses || len(g.Guesses[round]) == 0 {
		return make([]Tile, g.WordLength)
	}
	return g.knowledge.RowMarks(round, g.Guesses[round])
}

// winMessage builds the Finnish win message with a random celebration.
func winMessage(mode Mode) string {
	base := msgWin
	if mode == ModeDailyWord {
		base = msgDailyWin
	}
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(successEmojis))))
	return base + " " + successEmojis[n.Int64()]
}

// DailyDoneMessage is shown when a finished daily game is reopened.
func DailyDoneMessage() string { return msgDailyDone }

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
