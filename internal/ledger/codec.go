package ledger

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/memoy/tui-go/internal/model"
)

// Encode writes one "name moves elapsedSeconds score" line per entry
func Encode(w io.Writer, entries []model.HighScoreEntry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s %d %d %d\n", SanitizeName(e.PlayerName), e.Moves, e.ElapsedSeconds, e.Score); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads entries until EOF or the first malformed line. A malformed line
// ends the ledger; the entries before it are kept.
func Decode(r io.Reader) ([]model.HighScoreEntry, error) {
	var entries []model.HighScoreEntry
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		e, ok := parseRecord(fields)
		if !ok {
			break
		}
		entries = append(entries, e)
	}
	return entries, sc.Err()
}

func parseRecord(fields []string) (model.HighScoreEntry, bool) {
	if len(fields) != 4 {
		return model.HighScoreEntry{}, false
	}
	var nums [3]int
	for i, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return model.HighScoreEntry{}, false
		}
		nums[i] = n
	}
	return model.HighScoreEntry{
		PlayerName:     fields[0],
		Moves:          nums[0],
		ElapsedSeconds: nums[1],
		Score:          nums[2],
	}, true
}

// SanitizeName folds whitespace to underscores so a name stays a single field.
// An empty name becomes the default player name.
func SanitizeName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return model.DefaultPlayerName
	}
	return strings.Join(fields, "_")
}
