// Package match implements a two-sided hole-by-hole match state machine with
// press sub-matches. Match play uses it with individual golfers as sides;
// better ball uses it with team lowest-ball net scores. The engine only sees
// per-hole results (side A wins / halved / side B wins); net-score derivation
// belongs to the caller.
package match

import (
	"errors"
	"fmt"

	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// Result is the outcome of a single hole from side A's perspective.
type Result int8

const (
	SideAWinsHole Result = 1
	HoleHalved    Result = 0
	SideBWinsHole Result = -1
)

var (
	ErrHoleOutOfRange = errors.New("hole outside the match range")
	ErrInvalidFormat  = errors.New("invalid round format")
	ErrInvalidResult  = errors.New("invalid hole result")
)

// Match is a two-sided match over a contiguous stretch of holes. The zero
// value is not usable; construct with New or NewFrom.
//
// Results are stored per hole in a cell array indexed by hole - startHole.
// All status evaluation is a full replay over the cells, so correcting an
// already-recorded hole can never double count, and a correction that undoes
// a win simply reopens the match on the next replay.
type Match struct {
	format    sharedtypes.RoundFormat
	startHole sharedtypes.HoleNumber
	cells     []Result
	played    []bool
}

// New creates a match covering the full format stretch.
func New(format sharedtypes.RoundFormat) (*Match, error) {
	return NewFrom(format, format.StartingHole())
}

// NewFrom creates a match starting mid-format, covering
// [startHole, format.LastHole()]. Presses are built this way.
func NewFrom(format sharedtypes.RoundFormat, startHole sharedtypes.HoleNumber) (*Match, error) {
	if !format.Valid() {
		return nil, ErrInvalidFormat
	}
	if !format.ContainsHole(startHole) {
		return nil, fmt.Errorf("%w: start hole %d not in %s", ErrHoleOutOfRange, startHole, format)
	}
	n := int(format.LastHole()-startHole) + 1
	return &Match{
		format:    format,
		startHole: startHole,
		cells:     make([]Result, n),
		played:    make([]bool, n),
	}, nil
}

// Format returns the round format the match is scoped to.
func (m *Match) Format() sharedtypes.RoundFormat { return m.format }

// StartHole returns the first hole of the match.
func (m *Match) StartHole() sharedtypes.HoleNumber { return m.startHole }

// LastHole returns the final hole of the match.
func (m *Match) LastHole() sharedtypes.HoleNumber { return m.format.LastHole() }

// TotalHoles returns the number of holes in the match.
func (m *Match) TotalHoles() int { return len(m.cells) }

func (m *Match) index(hole sharedtypes.HoleNumber) (int, error) {
	if hole < m.startHole || hole > m.LastHole() {
		return 0, fmt.Errorf("%w: hole %d not in [%d,%d]", ErrHoleOutOfRange, hole, m.startHole, m.LastHole())
	}
	return int(hole - m.startHole), nil
}

// RecordResult writes the result for a hole. Writing a hole that was already
// recorded overwrites it (score correction). Results for holes past the hole
// that already decided the match are ignored: the match is frozen there.
func (m *Match) RecordResult(hole sharedtypes.HoleNumber, r Result) error {
	if r != SideAWinsHole && r != HoleHalved && r != SideBWinsHole {
		return fmt.Errorf("%w: %d", ErrInvalidResult, r)
	}
	idx, err := m.index(hole)
	if err != nil {
		return err
	}

	if st := m.Status(); st.Decided && hole > st.WinningHole {
		return nil
	}

	m.cells[idx] = r
	m.played[idx] = true
	return nil
}

// ClearResult removes a previously recorded hole result.
func (m *Match) ClearResult(hole sharedtypes.HoleNumber) error {
	idx, err := m.index(hole)
	if err != nil {
		return err
	}
	m.cells[idx] = HoleHalved
	m.played[idx] = false
	return nil
}

// Status is the evaluated state of a match.
type Status struct {
	// Cumulative is the running sum of hole results through ThruHole, from
	// side A's perspective.
	Cumulative int `json:"cumulative"`
	// ThruHole is the last hole considered; zero while nothing is recorded.
	ThruHole sharedtypes.HoleNumber `json:"thru_hole"`
	// HolesPlayed and Remaining are positional: they count holes up to and
	// past ThruHole within the match stretch.
	HolesPlayed int `json:"holes_played"`
	Remaining   int `json:"remaining"`
	// Dormie is informational: the trailing side must win every remaining
	// hole to square the match.
	Dormie bool `json:"dormie"`
	// Decided reports a terminal won match; Winner/WinningHole/Score are
	// meaningful only when set.
	Decided     bool                   `json:"decided"`
	Winner      sharedtypes.TeamSide   `json:"winner,omitempty"`
	WinningHole sharedtypes.HoleNumber `json:"winning_hole,omitempty"`
	Score       string                 `json:"score,omitempty"`
	// AllSquareFinal is the terminal tied state after the last hole.
	AllSquareFinal bool `json:"all_square_final"`
}

// Leader returns the side currently ahead, or 0 when all square.
func (s Status) Leader() sharedtypes.TeamSide {
	switch {
	case s.Cumulative > 0:
		return sharedtypes.TeamSideA
	case s.Cumulative < 0:
		return sharedtypes.TeamSideB
	default:
		return 0
	}
}

// Status replays the cell array and returns the current match state. The
// replay walks holes in order and stops at the first hole where the win
// condition |cumulative| > remaining holds; cells past that hole never
// contribute.
func (m *Match) Status() Status {
	var st Status
	cum := 0
	total := len(m.cells)

	for i := 0; i < total; i++ {
		if !m.played[i] {
			continue
		}
		cum += int(m.cells[i])

		holesPlayed := i + 1
		remaining := total - holesPlayed
		st.Cumulative = cum
		st.ThruHole = m.startHole + sharedtypes.HoleNumber(i)
		st.HolesPlayed = holesPlayed
		st.Remaining = remaining

		lead := cum
		if lead < 0 {
			lead = -lead
		}

		if lead > remaining {
			st.Decided = true
			st.Winner = st.Leader()
			st.WinningHole = st.ThruHole
			st.Score = formatWinScore(lead, remaining)
			st.Dormie = false
			return st
		}

		if remaining == 0 && cum == 0 {
			st.AllSquareFinal = true
			st.Dormie = false
			return st
		}

		st.Dormie = lead == remaining && remaining > 0 && lead > 0
	}

	return st
}

// formatWinScore renders a win margin. A "&0" margin is normalized to the
// "NUP" form: winning with zero holes remaining is a last-hole finish.
func formatWinScore(lead, remaining int) string {
	if remaining == 0 {
		return fmt.Sprintf("%dUP", lead)
	}
	return fmt.Sprintf("%d&%d", lead, remaining)
}

// StatusLine renders a human-readable status the way scorecards print them:
// "A 2UP thru 6", "AS thru 9", "dormie B 3 thru 15", "A wins 3&2", "AS".
func (s Status) StatusLine() string {
	switch {
	case s.Decided:
		return fmt.Sprintf("%s wins %s", s.Winner, s.Score)
	case s.AllSquareFinal:
		return "AS"
	case s.HolesPlayed == 0:
		return "not started"
	case s.Cumulative == 0:
		return fmt.Sprintf("AS thru %d", s.ThruHole)
	case s.Dormie:
		lead := s.Cumulative
		if lead < 0 {
			lead = -lead
		}
		return fmt.Sprintf("dormie %s %d thru %d", s.Leader(), lead, s.ThruHole)
	default:
		lead := s.Cumulative
		if lead < 0 {
			lead = -lead
		}
		return fmt.Sprintf("%s %dUP thru %d", s.Leader(), lead, s.ThruHole)
	}
}
