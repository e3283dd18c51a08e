// Package highscore keeps the best scores and line counts between games in a
// two-line text file: scores on the first line, line counts on the second.
package highscore

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Capacity is how many entries each list keeps.
const Capacity = 5

// Table is the stored history.
type Table struct {
	Scores []uint32
	Lines  []uint32
}

// Result reports what Record did with a finished game.
type Result struct {
	Table     Table
	NewScore  bool
	NewLines  bool
	SaveError error
}

// DefaultPath returns the scores file under the user config directory.
func DefaultPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "tetrigo", "scores.txt"), nil
}

// Load reads the table at path. A missing file, a file without exactly two
// lines, or any token that is not a number yields ok == false.
func Load(path string) (Table, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("read high scores")
		}
		return Table{}, false
	}
	table, err := Parse(string(data))
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("ignoring malformed high scores")
		return Table{}, false
	}
	return table, true
}

// Parse decodes the two-line format.
func Parse(content string) (Table, error) {
	lines := strings.Split(strings.TrimRight(content, "\r\n"), "\n")
	if len(lines) != 2 {
		return Table{}, fmt.Errorf("want 2 lines, got %d", len(lines))
	}
	scores, err := parseList(lines[0])
	if err != nil {
		return Table{}, fmt.Errorf("scores: %w", err)
	}
	counts, err := parseList(lines[1])
	if err != nil {
		return Table{}, fmt.Errorf("lines: %w", err)
	}
	return Table{Scores: scores, Lines: counts}, nil
}

func parseList(line string) ([]uint32, error) {
	fields := strings.Fields(line)
	out := make([]uint32, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, err
		}
		out = append(out, uint32(n))
	}
	return out, nil
}

// Format encodes a table in the two-line format.
func Format(t Table) string {
	return formatList(t.Scores) + "\n" + formatList(t.Lines) + "\n"
}

func formatList(v []uint32) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.FormatUint(uint64(n), 10)
	}
	return strings.Join(parts, " ")
}

// Save writes t to path, creating the parent directory if needed.
func Save(path string, t Table) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(Format(t)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Update offers value to list. Below Capacity it is appended and the list
// re-sorted ascending. At Capacity it replaces the first stored entry it
// exceeds, in stored order, and the list is left unsorted. The bool reports
// whether the list changed.
func Update(list []uint32, value uint32) ([]uint32, bool) {
	if len(list) < Capacity {
		list = append(list, value)
		slices.Sort(list)
		return list, true
	}
	for i, entry := range list {
		if value > entry {
			list[i] = value
			return list, true
		}
	}
	return list, false
}

// Record files a finished game's score and line count in the table at path.
// With no usable table a new one is written holding just this game, and both
// values count as new records. Otherwise the file is rewritten only if either
// list changed. A failed write is reported in Result.SaveError.
func Record(path string, score, lines uint32) Result {
	table, ok := Load(path)
	if !ok {
		res := Result{
			Table:    Table{Scores: []uint32{score}, Lines: []uint32{lines}},
			NewScore: true,
			NewLines: true,
		}
		res.SaveError = Save(path, res.Table)
		return res
	}
	var res Result
	table.Scores, res.NewScore = Update(table.Scores, score)
	table.Lines, res.NewLines = Update(table.Lines, lines)
	res.Table = table
	if res.NewScore || res.NewLines {
		res.SaveError = Save(path, table)
	}
	return res
}
