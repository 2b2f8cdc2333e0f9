package sharedtypes

import (
	"fmt"

	"github.com/google/uuid"
)

// GolferID identifies a golfer across rounds. IDs are supplied by the roster
// client (the mobile app) and treated as opaque.
type GolferID string

// RoundID identifies a single round.
type RoundID string

// NewRoundID generates a fresh RoundID.
func NewRoundID() RoundID {
	return RoundID(uuid.New().String())
}

func (id RoundID) String() string { return string(id) }

// HoleNumber is a physical hole number on the course, 1..18.
type HoleNumber int

// Strokes is a stroke count, either gross or net depending on context.
type Strokes int

// HandicapIndex is a golfer's USGA-style handicap index.
type HandicapIndex float64

// TeamSide is the closed two-side tag for team games. There are exactly two
// sides; golfer-to-side assignment is validated when a round is configured.
type TeamSide int8

const (
	TeamSideA TeamSide = 1
	TeamSideB TeamSide = -1
)

func (s TeamSide) String() string {
	switch s {
	case TeamSideA:
		return "A"
	case TeamSideB:
		return "B"
	default:
		return fmt.Sprintf("TeamSide(%d)", int8(s))
	}
}

// Opposite returns the other side.
func (s TeamSide) Opposite() TeamSide { return -s }

// RoundFormat selects which stretch of the course a round covers.
type RoundFormat string

const (
	FormatFull18 RoundFormat = "full18"
	FormatFront9 RoundFormat = "front9"
	FormatBack9  RoundFormat = "back9"
)

// StartingHole returns the first hole of the format.
func (f RoundFormat) StartingHole() HoleNumber {
	if f == FormatBack9 {
		return 10
	}
	return 1
}

// HoleCount returns the number of holes in the format.
func (f RoundFormat) HoleCount() int {
	if f == FormatFull18 {
		return 18
	}
	return 9
}

// LastHole returns the final hole of the format.
func (f RoundFormat) LastHole() HoleNumber {
	return f.StartingHole() + HoleNumber(f.HoleCount()) - 1
}

// ContainsHole reports whether h falls inside the format's stretch.
func (f RoundFormat) ContainsHole(h HoleNumber) bool {
	return h >= f.StartingHole() && h <= f.LastHole()
}

// HoleToIndex maps a physical hole number to a zero-based cell index for the
// format. Callers must check ContainsHole first.
func (f RoundFormat) HoleToIndex(h HoleNumber) int {
	return int(h - f.StartingHole())
}

// Valid reports whether f is one of the known formats.
func (f RoundFormat) Valid() bool {
	switch f {
	case FormatFull18, FormatFront9, FormatBack9:
		return true
	}
	return false
}

// Hole is immutable per-hole reference data for a course/tee.
type Hole struct {
	Number       HoleNumber `json:"number"`
	Par          int        `json:"par"`
	HandicapRank int        `json:"handicap_rank"` // 1 = hardest, 18 = easiest
	Yardage      int        `json:"yardage"`
}

// Tee is the rated tee a round is played from.
type Tee struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	Slope  int     `json:"slope"`
	Par    int     `json:"par"`
	Yards  int     `json:"yards"`
}

// Golfer is a round participant. Handicap fields are populated when the tee is
// selected at round setup and are immutable for the rest of the round.
type Golfer struct {
	ID             GolferID      `json:"id"`
	Name           string        `json:"name"`
	HandicapIndex  HandicapIndex `json:"handicap_index"`
	CourseHandicap *int          `json:"course_handicap,omitempty"`
	Side           *TeamSide     `json:"side,omitempty"`
}

// HasCourseHandicap reports whether the course handicap has been computed.
func (g Golfer) HasCourseHandicap() bool { return g.CourseHandicap != nil }
