// Package ninepoint scores the 3-player nine-point game: every hole is worth
// nine points, split by net-score ranking with fixed tie shapes.
package ninepoint

import (
	"errors"
	"fmt"
	"sort"

	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// ErrPlayerCount rejects any roster that is not exactly three golfers. The
// point shapes below only make sense for three players, so the game refuses
// to start in an inconsistent state.
var ErrPlayerCount = errors.New("nine point requires exactly 3 players")

var ErrDuplicatePlayer = errors.New("duplicate player in nine point roster")

// HolePoints distributes points for one hole given the three players' net
// scores, in roster order:
//
//	all three tied           3/3/3
//	two lowest tied          4/4/1
//	two highest tied         5/2/2
//	all distinct             5/3/1
func HolePoints(net [3]sharedtypes.Strokes) [3]int {
	type ranked struct {
		pos   int
		score sharedtypes.Strokes
	}
	order := []ranked{{0, net[0]}, {1, net[1]}, {2, net[2]}}
	sort.SliceStable(order, func(i, j int) bool { return order[i].score < order[j].score })

	var award [3]int
	switch {
	case order[0].score == order[2].score:
		award = [3]int{3, 3, 3}
	case order[0].score == order[1].score:
		award = [3]int{4, 4, 1}
	case order[1].score == order[2].score:
		award = [3]int{5, 2, 2}
	default:
		award = [3]int{5, 3, 1}
	}

	var out [3]int
	for i, r := range order {
		out[r.pos] = award[i]
	}
	return out
}

// Game tallies nine-point totals across a round. Totals are always rebuilt by
// a full replay over completed holes, never patched incrementally, so editing
// a past score cannot cause drift.
type Game struct {
	players [3]sharedtypes.GolferID
}

// New validates the roster and creates a game.
func New(players []sharedtypes.GolferID) (*Game, error) {
	if len(players) != 3 {
		return nil, fmt.Errorf("%w: got %d", ErrPlayerCount, len(players))
	}
	seen := make(map[sharedtypes.GolferID]bool, 3)
	for _, p := range players {
		if seen[p] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, p)
		}
		seen[p] = true
	}
	return &Game{players: [3]sharedtypes.GolferID{players[0], players[1], players[2]}}, nil
}

// Players returns the roster in order.
func (g *Game) Players() [3]sharedtypes.GolferID { return g.players }

// Tally is the computed result of a nine-point game.
type Tally struct {
	// PerHole holds the point split for each completed hole.
	PerHole map[sharedtypes.HoleNumber][3]int
	// Totals is the running sum per golfer over completed holes.
	Totals map[sharedtypes.GolferID]int
}

// Compute folds net scores into a fresh tally. netScores maps hole -> golfer
// -> net score; a hole contributes only when all three players have a score,
// otherwise it is skipped and picked up on a later recompute.
func (g *Game) Compute(netScores map[sharedtypes.HoleNumber]map[sharedtypes.GolferID]sharedtypes.Strokes) Tally {
	tally := Tally{
		PerHole: make(map[sharedtypes.HoleNumber][3]int),
		Totals:  make(map[sharedtypes.GolferID]int, 3),
	}
	for _, p := range g.players {
		tally.Totals[p] = 0
	}

	for hole, scores := range netScores {
		var net [3]sharedtypes.Strokes
		complete := true
		for i, p := range g.players {
			s, ok := scores[p]
			if !ok {
				complete = false
				break
			}
			net[i] = s
		}
		if !complete {
			continue
		}

		points := HolePoints(net)
		tally.PerHole[hole] = points
		for i, p := range g.players {
			tally.Totals[p] += points[i]
		}
	}

	return tally
}
