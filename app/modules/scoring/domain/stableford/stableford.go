// Package stableford scores the stableford quota game, in gross and net
// variants. Both variants share the same point table; they differ only in
// which score (gross or handicap-adjusted net) is compared against par.
package stableford

import (
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// Variant selects which score feeds the point table.
type Variant string

const (
	Gross Variant = "gross"
	Net   Variant = "net"
)

// Points maps a score-to-par differential to stableford points on the 0-8
// scale: double eagle or better 8, eagle 6, birdie 4, par 2, bogey 1,
// double bogey or worse 0.
func Points(scoreToPar int) int {
	switch {
	case scoreToPar <= -3:
		return 8
	case scoreToPar == -2:
		return 6
	case scoreToPar == -1:
		return 4
	case scoreToPar == 0:
		return 2
	case scoreToPar == 1:
		return 1
	default:
		return 0
	}
}

// Tally is one golfer's stableford result.
type Tally struct {
	PerHole map[sharedtypes.HoleNumber]int `json:"per_hole"`
	Total   int                            `json:"total"`
	// Quota is the pre-assigned point target; Delta is Total - Quota, so a
	// positive delta means the golfer is over quota.
	Quota int `json:"quota"`
	Delta int `json:"delta"`
}

// Compute folds one golfer's scores into a fresh tally. scores maps hole to
// the variant-appropriate score (gross or net); holes without a score or
// without par data are skipped. Recomputation is a full reset-then-replay.
func Compute(scores map[sharedtypes.HoleNumber]sharedtypes.Strokes, holes map[sharedtypes.HoleNumber]sharedtypes.Hole, quota int) Tally {
	tally := Tally{
		PerHole: make(map[sharedtypes.HoleNumber]int),
		Quota:   quota,
	}

	for holeNum, score := range scores {
		hole, ok := holes[holeNum]
		if !ok {
			continue
		}
		pts := Points(int(score) - hole.Par)
		tally.PerHole[holeNum] = pts
		tally.Total += pts
	}

	tally.Delta = tally.Total - quota
	return tally
}
