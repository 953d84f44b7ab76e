// internal/words/words.go
//
// Word list management for the game engine.
//
// Responsibilities:
//   - Load the accepted-word list and the ordered daily list from
//     environment-provided files or fall back to embedded defaults.
//   - Key accepted words by rune length (the game supports 5 and 6
//     letter words; any length present in the list works).
//   - Supply Random, IsAccepted, Daily and Stats.
//
// Word Lists:
//   - "words": every accepted guess; secrets for classic/relay games are
//     drawn uniformly from the words of the active length.
//   - "daily": ordered list indexed by day offset from the daily epoch.
//
// Environment variables:
//   WORDS_FILE=/path/to/words.txt
//   DAILY_WORDS_FILE=/path/to/daily.txt
//
// Constraints:
//   • Words must consist of Finnish letters (a–z, å, ä, ö).
//   • Lists are normalized to lowercase.
//   • Initialization runs once (sync.Once).

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"

	"sanapeli/assets"
)

// Alphabet is the accepted character set, in keyboard order.
const Alphabet = "qwertyuiopåasdfghjklöäzxcvbnm"

var (
	initOnce   sync.Once
	byLength   map[int][]string            // accepted words keyed by rune length
	setsByLen  map[int]map[string]struct{} // lookup sets per length
	dailyWords []string                    // ordered daily list
	initialErr error
)

// Init loads word lists exactly once.
// Returns an error if the accepted list ends up empty.
func Init() error {
	initOnce.Do(func() {
		var list, daily []string
		var err error

		if path := os.Getenv("WORDS_FILE"); path != "" {
			list, err = readWordFile(path)
		} else {
			list, err = assets.WordList()
		}
		if err != nil {
			initialErr = err
			return
		}

		if path := os.Getenv("DAILY_WORDS_FILE"); path != "" {
			daily, err = readWordFile(path)
		} else {
			daily, err = assets.DailyList()
		}
		if err != nil {
			initialErr = err
			return
		}

		byLength = make(map[int][]string)
		setsByLen = make(map[int]map[string]struct{})
		for _, w := range list {
			n := len([]rune(w))
			byLength[n] = append(byLength[n], w)
			if setsByLen[n] == nil {
				setsByLen[n] = make(map[string]struct{})
			}
			setsByLen[n][w] = struct{}{}
		}

		// Daily words must also be guessable.
		dailyWords = daily
		for _, w := range daily {
			n := len([]rune(w))
			if setsByLen[n] == nil {
				setsByLen[n] = make(map[string]struct{})
			}
			if _, ok := setsByLen[n][w]; !ok {
				setsByLen[n][w] = struct{}{}
				byLength[n] = append(byLength[n], w)
			}
		}

		if len(byLength) == 0 {
			initialErr = errors.New("words: accepted list is empty")
		}
	})
	return initialErr
}

// readWordFile loads one word per line, lowercases, trims, and keeps only
// words made of Finnish letters. Blank lines and #-comments are skipped.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if IsAlphabet(w) {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// IsAlphabet reports whether s consists only of Finnish letters.
func IsAlphabet(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}
	return s != ""
}

// Normalize lowercases and trims a guess and validates its characters.
func Normalize(s string) (string, error) {
	w := strings.TrimSpace(strings.ToLower(s))
	if !IsAlphabet(w) {
		return "", fmt.Errorf("word %q has characters outside the alphabet", s)
	}
	return w, nil
}

// Random returns a cryptographically random accepted word of the given
// rune length.
func Random(length int) (string, error) {
	list := byLength[length]
	if len(list) == 0 {
		return "", fmt.Errorf("no words of length %d", length)
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		return "", err
	}
	return list[nBig.Int64()], nil
}

// IsAccepted reports whether w is a legal guess (member of the accepted
// list of its own length).
func IsAccepted(w string) bool {
	w = strings.ToLower(w)
	set := setsByLen[len([]rune(w))]
	_, ok := set[w]
	return ok
}

// Daily returns the daily word at the given index, or false when the
// index falls outside the list.
func Daily(index int) (string, bool) {
	if index < 0 || index >= len(dailyWords) {
		return "", false
	}
	return dailyWords[index], true
}

// DailyCount returns the length of the ordered daily list.
func DailyCount() int { return len(dailyWords) }

// Lengths lists the word lengths available in the accepted list.
func Lengths() []int {
	out := make([]int, 0, len(byLength))
	for n := range byLength {
		out = append(out, n)
	}
	return out
}

// Stats returns accepted-word counts per length plus the daily count.
func Stats() (perLength map[int]int, daily int) {
	perLength = make(map[int]int, len(byLength))
	for n, list := range byLength {
		perLength[n] = len(list)
	}
	return perLength, len(dailyWords)
}

// Checker adapts the package to the engine's Dictionary interface.
type Checker struct{}

// IsAccepted implements the accepted-word membership test.
func (Checker) IsAccepted(w string) bool { return IsAccepted(w) }
