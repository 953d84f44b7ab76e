// internal/game/knowledge.go
//
// Accumulated knowledge about the secret, carried across guess rounds.
//
// Three structures, accumulated per round and copied forward:
//   - states:     (character, position) → CharState; entries are only ever
//                 added or overwritten, never deleted.
//   - minCounts:  character → smallest guaranteed occurrence count in the
//                 secret; monotonically non-decreasing per character.
//   - discovered: characters known to occur somewhere in the secret.
//                 Game-global: reset only on a new game, not per round, so
//                 the keyboard keeps its "present" hints for the whole game.
//
// Tile and keyboard hints are derived from these maps, never from a raw
// guess evaluation, so a repeated letter resolves the same way on every
// later render.

package game

// charPos keys the per-position state map.
type charPos struct {
	Ch  rune
	Pos int
}

// Knowledge accumulates per-round facts about one secret word.
type Knowledge struct {
	length     int
	rounds     int
	states     []map[charPos]CharState
	minCounts  []map[rune]int
	discovered map[rune]struct{}
}

// NewKnowledge allocates empty knowledge for a game of rounds guesses at
// the given word length. Changing the length means rebuilding everything,
// so there is deliberately no resize operation.
func NewKnowledge(length, rounds int) *Knowledge {
	k := &Knowledge{
		length:     length,
		rounds:     rounds,
		states:     make([]map[charPos]CharState, rounds),
		minCounts:  make([]map[rune]int, rounds),
		discovered: make(map[rune]struct{}),
	}
	for i := 0; i < rounds; i++ {
		k.states[i] = make(map[charPos]CharState)
		k.minCounts[i] = make(map[rune]int)
	}
	return k
}

// Reveal evaluates one submitted guess against the answer and merges the
// result into the given round, then copies the round's maps forward.
//
// The raw pass only ever writes Correct or Absent; "present" is a derived
// display concept (see RowMarks). For every misplaced character that does
// occur in the answer, the minimum occurrence count is raised:
//
//	countInGuess >= countInSecret → the guess used up every copy, so the
//	                                true count is known exactly.
//	countInGuess <  countInSecret → only a lower bound.
//
// Both raises are clamped to never decrease an earlier bound.
func (k *Knowledge) Reveal(round int, answer, guess []rune) {
	for i, ch := range guess {
		if answer[i] == ch {
			k.states[round][charPos{ch, i}] = StateCorrect
			continue
		}
		k.states[round][charPos{ch, i}] = StateAbsent

		if countRune(answer, ch) == 0 {
			continue
		}
		inWord := countRune(answer, ch)
		inGuess := countRune(guess, ch)
		atLeast := k.minCounts[round][ch]
		if inGuess >= inWord {
			if inWord > atLeast {
				k.minCounts[round][ch] = inWord
			}
		} else if inGuess > atLeast {
			k.minCounts[round][ch] = inGuess
		}
		k.discovered[ch] = struct{}{}
	}

	// Carry the accumulated maps into the next round.
	if round < k.rounds-1 {
		k.states[round+1] = cloneStates(k.states[round])
		k.minCounts[round+1] = cloneCounts(k.minCounts[round])
	}
}

// RowMarks classifies a fully submitted guess row for display.
//
// First pass counts, per character, how many tiles are already revealed as
// Correct. Second pass walks left to right again: a Correct entry renders
// Correct; an Absent entry bumps the revealed tally and renders Present
// while the tally still fits under the character's minimum count, Absent
// once it no longer does. The post-increment compare caps the number of
// Present tiles for a repeated letter at minCount and hands them to the
// earliest unmatched positions.
func (k *Knowledge) RowMarks(round int, guess []rune) []Tile {
	marks := make([]Tile, k.length)
	revealed := make(map[rune]int)

	for i, ch := range guess {
		if i >= k.length {
			break
		}
		if k.states[round][charPos{ch, i}] == StateCorrect {
			revealed[ch]++
		}
	}

	for i, ch := range guess {
		if i >= k.length {
			break
		}
		switch k.states[round][charPos{ch, i}] {
		case StateCorrect:
			marks[i] = TileCorrect
		case StateAbsent:
			revealed[ch]++
			if revealed[ch] <= k.minCounts[round][ch] {
				marks[i] = TilePresent
			} else {
				marks[i] = TileAbsent
			}
		default:
			marks[i] = TileNone
		}
	}
	return marks
}

// TileMark classifies one tile of the in-progress row, before the row can
// be evaluated as a whole. Deliberately coarser than RowMarks: no
// left-to-right tally is possible on a partial row.
//
// Precedence: exact Correct; then Absent when the character has no known
// minimum count but has been seen Absent somewhere; then Present for any
// discovered character; otherwise nothing.
func (k *Knowledge) TileMark(round int, ch rune, pos int) Tile {
	if k.states[round][charPos{ch, pos}] == StateCorrect {
		return TileCorrect
	}
	if _, counted := k.minCounts[round][ch]; !counted && k.absentSomewhere(round, ch) {
		return TileAbsent
	}
	if _, ok := k.discovered[ch]; ok {
		return TilePresent
	}
	return TileNone
}

// KeyMark classifies a keyboard key: like TileMark but scanning every
// position, so Correct wins if the character is correctly placed anywhere.
func (k *Knowledge) KeyMark(round int, ch rune) Tile {
	for pos := 0; pos < k.length; pos++ {
		if k.states[round][charPos{ch, pos}] == StateCorrect {
			return TileCorrect
		}
	}
	if _, counted := k.minCounts[round][ch]; !counted && k.absentSomewhere(round, ch) {
		return TileAbsent
	}
	if _, ok := k.discovered[ch]; ok {
		return TilePresent
	}
	return TileNone
}

// MinCount reports the smallest guaranteed occurrence count learned for ch
// as of the given round (0 when nothing is known).
func (k *Knowledge) MinCount(round int, ch rune) int {
	return k.minCounts[round][ch]
}

// Discovered reports whether ch is known to occur somewhere in the secret.
func (k *Knowledge) Discovered(ch rune) bool {
	_, ok := k.discovered[ch]
	return ok
}

// State reports the accumulated fact for a (character, position) pair.
func (k *Knowledge) State(round int, ch rune, pos int) CharState {
	return k.states[round][charPos{ch, pos}]
}

// absentSomewhere reports whether ch has an Absent entry at any position
// of the given round.
func (k *Knowledge) absentSomewhere(round int, ch rune) bool {
	for pos := 0; pos < k.length; pos++ {
		if k.states[round][charPos{ch, pos}] == StateAbsent {
			return true
		}
	}
	return false
}

func cloneStates(m map[charPos]CharState) map[charPos]CharState {
	out := make(map[charPos]CharState, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneCounts(m map[rune]int) map[rune]int {
	out := make(map[rune]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func countRune(word []rune, ch rune) int {
	n := 0
	for _, c := range word {
		if c == ch {
			n++
		}
	}
	return n
}
