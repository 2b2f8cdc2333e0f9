// Package betterball derives team lowest-ball hole results for the match
// engine. A team's score for a hole is the minimum net score over the members
// who have a recorded score; members without one are excluded from the min,
// not treated as zero.
package betterball

import (
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/match"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

var (
	ErrEmptyTeam        = errors.New("better ball team has no members")
	ErrUnassignedGolfer = errors.New("golfer not assigned to a side")
)

// Teams is a validated two-side golfer assignment.
type Teams struct {
	sides map[sharedtypes.GolferID]sharedtypes.TeamSide
	a, b  []sharedtypes.GolferID
}

// NewTeams validates that both sides are non-empty and every golfer has a
// side. Assignment problems are construction errors, not use-time surprises.
func NewTeams(assignment map[sharedtypes.GolferID]sharedtypes.TeamSide) (*Teams, error) {
	t := &Teams{sides: make(map[sharedtypes.GolferID]sharedtypes.TeamSide, len(assignment))}
	for id, side := range assignment {
		switch side {
		case sharedtypes.TeamSideA:
			t.a = append(t.a, id)
		case sharedtypes.TeamSideB:
			t.b = append(t.b, id)
		default:
			return nil, fmt.Errorf("%w: %s has side %d", ErrUnassignedGolfer, id, side)
		}
		t.sides[id] = side
	}
	if len(t.a) == 0 {
		return nil, fmt.Errorf("%w: side A", ErrEmptyTeam)
	}
	if len(t.b) == 0 {
		return nil, fmt.Errorf("%w: side B", ErrEmptyTeam)
	}
	return t, nil
}

// Members returns the golfers on one side.
func (t *Teams) Members(side sharedtypes.TeamSide) []sharedtypes.GolferID {
	if side == sharedtypes.TeamSideA {
		return t.a
	}
	return t.b
}

// Side returns a golfer's side assignment.
func (t *Teams) Side(id sharedtypes.GolferID) (sharedtypes.TeamSide, bool) {
	s, ok := t.sides[id]
	return s, ok
}

// AllGolfers returns every assigned golfer.
func (t *Teams) AllGolfers() []sharedtypes.GolferID {
	out := make([]sharedtypes.GolferID, 0, len(t.a)+len(t.b))
	out = append(out, t.a...)
	out = append(out, t.b...)
	return out
}

// TeamScore returns the lowest-ball net score for one side on a hole. ok is
// false when no member of the side has a recorded score.
func (t *Teams) TeamScore(side sharedtypes.TeamSide, netScores map[sharedtypes.GolferID]sharedtypes.Strokes) (sharedtypes.Strokes, bool) {
	var best sharedtypes.Strokes
	found := false
	for _, id := range t.Members(side) {
		s, ok := netScores[id]
		if !ok {
			continue
		}
		if !found || s < best {
			best = s
			found = true
		}
	}
	return best, found
}

// HoleResult resolves one hole from both teams' net scores. ok is false when
// either side has no scored member; the hole is then left untallied and will
// resolve on a later recompute once a score arrives.
func (t *Teams) HoleResult(netScores map[sharedtypes.GolferID]sharedtypes.Strokes) (match.Result, bool) {
	scoreA, okA := t.TeamScore(sharedtypes.TeamSideA, netScores)
	scoreB, okB := t.TeamScore(sharedtypes.TeamSideB, netScores)
	if !okA || !okB {
		return match.HoleHalved, false
	}
	switch {
	case scoreA < scoreB:
		return match.SideAWinsHole, true
	case scoreB < scoreA:
		return match.SideBWinsHole, true
	default:
		return match.HoleHalved, true
	}
}
