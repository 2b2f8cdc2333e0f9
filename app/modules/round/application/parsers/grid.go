package parsers

import (
	"fmt"
	"strconv"
	"strings"

	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// parseGrid interprets a row grid: a header row whose first cell names the
// golfer column and whose remaining cells are hole numbers, then one row per
// golfer. Blank cells are skipped.
func parseGrid(rows [][]string) (*ParsedScorecard, error) {
	rows = dropEmptyRows(rows)
	if len(rows) < 2 {
		return nil, fmt.Errorf("scorecard needs a header row and at least one golfer row")
	}

	header := rows[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("header row needs at least one hole column")
	}

	holes := make([]sharedtypes.HoleNumber, 0, len(header)-1)
	for i, cell := range header[1:] {
		n, err := strconv.Atoi(strings.TrimSpace(cell))
		if err != nil {
			return nil, fmt.Errorf("header column %d is not a hole number: %q", i+2, cell)
		}
		if n < 1 || n > 18 {
			return nil, fmt.Errorf("hole number %d out of range in header", n)
		}
		holes = append(holes, sharedtypes.HoleNumber(n))
	}

	card := &ParsedScorecard{}
	for rowIdx, row := range rows[1:] {
		golfer := sharedtypes.GolferID(strings.TrimSpace(row[0]))
		if golfer == "" {
			return nil, fmt.Errorf("row %d has no golfer id", rowIdx+2)
		}

		for col := 1; col < len(row) && col-1 < len(holes); col++ {
			cell := strings.TrimSpace(row[col])
			if cell == "" || cell == "-" {
				continue
			}
			strokes, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d hole %d: invalid stroke count %q", rowIdx+2, holes[col-1], cell)
			}
			if strokes < 1 {
				return nil, fmt.Errorf("row %d hole %d: stroke count must be positive", rowIdx+2, holes[col-1])
			}
			card.Scores = append(card.Scores, Score{
				GolferID: golfer,
				Hole:     holes[col-1],
				Strokes:  sharedtypes.Strokes(strokes),
			})
		}
	}

	if len(card.Scores) == 0 {
		return nil, fmt.Errorf("scorecard contains no scores")
	}
	return card, nil
}

func dropEmptyRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}
