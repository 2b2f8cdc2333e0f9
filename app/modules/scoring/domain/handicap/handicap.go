// Package handicap converts handicap indexes into course handicaps and
// per-hole stroke allocations.
package handicap

import (
	"math"
	"sort"

	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// CourseHandicap computes the integer course handicap for a tee:
// index * slope / 113 + (rating - par), rounded to the nearest integer with
// .5 always rounding up toward +inf. A negative result is a "plus" handicap.
//
// The tie rule is deliberate: -2.5 rounds to -2, not -3. Changing it would
// silently shift stroke allocations for plus golfers.
func CourseHandicap(index sharedtypes.HandicapIndex, slope int, rating float64, par int) int {
	raw := float64(index)*float64(slope)/113.0 + (rating - float64(par))
	return int(math.Floor(raw + 0.5))
}

// StrokeHoles returns the hole numbers on which a golfer playing off
// targetHandicap receives (or gives back) a stroke.
//
// Holes are ordered by handicap rank ascending (1 = hardest). A non-negative
// handicap takes the prefix: strokes land on the hardest holes. A plus
// handicap takes the suffix: strokes are given back on the easiest holes.
// The allocation is capped at the number of holes supplied.
func StrokeHoles(targetHandicap int, holes []sharedtypes.Hole) []sharedtypes.HoleNumber {
	if len(holes) == 0 {
		return nil
	}

	byRank := make([]sharedtypes.Hole, len(holes))
	copy(byRank, holes)
	sort.Slice(byRank, func(i, j int) bool {
		return byRank[i].HandicapRank < byRank[j].HandicapRank
	})

	n := targetHandicap
	if n < 0 {
		n = -n
	}
	if n > len(byRank) {
		n = len(byRank)
	}
	if n == 0 {
		return nil
	}

	var picked []sharedtypes.Hole
	if targetHandicap >= 0 {
		picked = byRank[:n]
	} else {
		picked = byRank[len(byRank)-n:]
	}

	out := make([]sharedtypes.HoleNumber, 0, len(picked))
	for _, h := range picked {
		out = append(out, h.Number)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// StrokeHoleSet is a membership set of stroke holes for one golfer in one
// game context.
type StrokeHoleSet map[sharedtypes.HoleNumber]bool

// NewStrokeHoleSet builds a set from StrokeHoles output.
func NewStrokeHoleSet(holes []sharedtypes.HoleNumber) StrokeHoleSet {
	set := make(StrokeHoleSet, len(holes))
	for _, h := range holes {
		set[h] = true
	}
	return set
}

// NetScore applies the one-stroke adjustment for a stroke hole.
func (s StrokeHoleSet) NetScore(hole sharedtypes.HoleNumber, gross sharedtypes.Strokes) sharedtypes.Strokes {
	if s[hole] {
		return gross - 1
	}
	return gross
}

// RelativeStrokes computes per-golfer relative strokes for a specific game:
// the lowest course handicap in the group plays off scratch and everyone else
// receives the difference. Handicaps are keyed by golfer.
func RelativeStrokes(courseHandicaps map[sharedtypes.GolferID]int) map[sharedtypes.GolferID]int {
	if len(courseHandicaps) == 0 {
		return nil
	}

	low := math.MaxInt
	for _, ch := range courseHandicaps {
		if ch < low {
			low = ch
		}
	}

	out := make(map[sharedtypes.GolferID]int, len(courseHandicaps))
	for id, ch := range courseHandicaps {
		rel := ch - low
		if rel < 0 {
			rel = 0
		}
		out[id] = rel
	}
	return out
}
