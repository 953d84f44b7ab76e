package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words.txt daily_words.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the embedded default accepted-word list, all lengths
// mixed; callers filter by length.
func WordList() ([]string, error) {
	return readLines("words.txt")
}

// DailyList returns the embedded ordered daily-word list. Order matters:
// the daily mode indexes into it by day offset.
func DailyList() ([]string, error) {
	return readLines("daily_words.txt")
}
