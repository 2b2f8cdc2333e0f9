// Package parsers turns uploaded scorecard files into score entries. The
// expected layout is a header row of hole numbers followed by one row per
// golfer; blank cells mean the hole has not been played.
package parsers

import (
	"fmt"
	"strings"

	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// Score is one parsed scorecard cell.
type Score struct {
	GolferID sharedtypes.GolferID
	Hole     sharedtypes.HoleNumber
	Strokes  sharedtypes.Strokes
}

// ParsedScorecard is the extracted content of an upload.
type ParsedScorecard struct {
	Scores []Score
}

// Parser is the per-format parsing surface.
type Parser interface {
	Parse(data []byte) (*ParsedScorecard, error)
}

// Factory creates the appropriate parser based on file extension.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// GetParser returns the parser for the given filename.
func (f *Factory) GetParser(filename string) (Parser, error) {
	ext := strings.ToLower(fileExtension(filename))

	switch ext {
	case ".csv":
		return NewCSVParser(), nil
	case ".xlsx", ".xls":
		return NewXLSXParser(), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

func fileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx == -1 {
		return ""
	}
	return filename[idx:]
}
