// internal/game/types.go
//
// Core type definitions for the word game engine.
// Defines:
//   - CharState: accumulated per (character, position) fact.
//   - Tile: derived display hint for a single board tile or keyboard key.
//   - Mode: game mode (classic / relay / daily word).
//   - Game: state for a single in-progress or finished game.

package game

import "fmt"

// CharState is what has been learned about one (character, position) pair.
// The zero value is StateUnknown so that map lookups on never-observed
// pairs read as unknown without an existence check.
type CharState int

const (
	StateUnknown CharState = iota
	StateCorrect           // character confirmed at this position
	StateAbsent            // character confirmed not at this position
)

// Tile is the display classification derived from accumulated knowledge.
// It is a strict superset of CharState: Present only ever comes out of the
// knowledge store, never out of the raw reveal pass.
type Tile int

const (
	TileNone Tile = iota
	TileCorrect
	TilePresent
	TileAbsent
)

// String returns the wire/CSS name used by clients ("", "correct",
// "present", "absent").
func (t Tile) String() string {
	switch t {
	case TileCorrect:
		return "correct"
	case TilePresent:
		return "present"
	case TileAbsent:
		return "absent"
	}
	return ""
}

// Mode selects how the secret is chosen and how game-over is handled.
type Mode string

const (
	ModeClassic   Mode = "classic"
	ModeRelay     Mode = "relay"
	ModeDailyWord Mode = "daily_word"
)

// ParseMode maps a stored or client-supplied string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeClassic, ModeRelay, ModeDailyWord:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown game mode %q", s)
}

const (
	DefaultWordLength = 5
	DefaultMaxGuesses = 6
)

// Finnish user-facing messages, kept from the original game.
const (
	msgTooShort    = "Liian vähän kirjaimia!"
	msgUnknownWord = "Ei sanalistalla."
	msgWin         = "Löysit sanan!"
	msgDailyWin    = "Löysit päivän sanan!"
	msgDailyDone   = "Uusi sana huomenna!"
)

// successEmojis is appended to win messages, picked at random.
var successEmojis = []string{"🥳", "🤩", "🤗", "🎉", "😊", "😺", "😎", "👏"}

// Game holds the state of a single game session. The knowledge store is
// owned exclusively by the game and only mutated by SubmitGuess.
type Game struct {
	ID         string // unique identifier (random hex string)
	Mode       Mode
	Answer     []rune   // the secret, lowercase, fixed length
	WordLength int      // L; constant for the lifetime of the game
	MaxGuesses int      // number of guess rows
	Guesses    [][]rune // one slot per row; empty slots past Current
	Current    int      // index of the row currently being guessed
	Guessing   bool     // false once the game is over
	Winner     bool
	Streak     int    // running win streak, carried across games
	Message    string // last user-facing message (Finnish)

	knowledge *Knowledge
	dict      Dictionary
}

// SetDictionary attaches the accepted-word test, e.g. after loading a game
// from storage where the dictionary is not part of the persisted state.
func (g *Game) SetDictionary(d Dictionary) { g.dict = d }

// State reports a coarse string representation: "playing", "won" or "lost".
func (g *Game) State() string {
	if g.Guessing {
		return "playing"
	}
	if g.Winner {
		return "won"
	}
	return "lost"
}

// Knowledge exposes the accumulated knowledge store for hint derivation.
func (g *Game) Knowledge() *Knowledge { return g.knowledge }
