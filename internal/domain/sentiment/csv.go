package sentiment

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadGames reads games.csv, picking the appid and name columns by header.
func LoadGames(path string) ([]Game, error) {
	rows, err := readCSV(path, "appid", "name")
	if err != nil {
		return nil, err
	}
	games := make([]Game, len(rows))
	for i, r := range rows {
		games[i] = Game{AppID: r[0], Name: r[1]}
	}
	return games, nil
}

// LoadReviews reads reviews.csv, picking the app_id and content columns by header.
func LoadReviews(path string) ([]Review, error) {
	rows, err := readCSV(path, "app_id", "content")
	if err != nil {
		return nil, err
	}
	reviews := make([]Review, len(rows))
	for i, r := range rows {
		reviews[i] = Review{AppID: r[0], Content: r[1]}
	}
	return reviews, nil
}

// readCSV returns, for every data row, the values of columns in the order given.
func readCSV(path string, columns ...string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", path, err)
	}

	idx := make([]int, len(columns))
	for i, col := range columns {
		idx[i] = indexOf(header, col)
		if idx[i] < 0 {
			return nil, fmt.Errorf("%s: missing column %q", path, col)
		}
	}

	var rows [][]string
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", path, line, err)
		}
		row := make([]string, len(idx))
		for i, j := range idx {
			if j < len(rec) {
				row[i] = rec[j]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func indexOf(header []string, col string) int {
	for i, h := range header {
		// Excel exports prepend a BOM to the first header cell.
		if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) == col {
			return i
		}
	}
	return -1
}
