package coursedb

import (
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// Course is the stored course layout: the hole reference data plus the tee
// options golfers can play from.
type Course struct {
	ID    string             `bun:"id,pk"`
	Name  string             `bun:"name,notnull"`
	City  string             `bun:"city"`
	State string             `bun:"state"`
	Holes []sharedtypes.Hole `bun:"holes,type:jsonb,notnull"`
	Tees  []sharedtypes.Tee  `bun:"tees,type:jsonb,notnull"`
}

// Tee returns the named tee set, if the course has it.
func (c *Course) Tee(name string) (sharedtypes.Tee, bool) {
	for _, t := range c.Tees {
		if t.Name == name {
			return t, true
		}
	}
	return sharedtypes.Tee{}, false
}

// FrontNine reports whether the course carries holes 1-9.
func (c *Course) FrontNine() []sharedtypes.Hole {
	return c.holeRange(1, 9)
}

// BackNine reports whether the course carries holes 10-18.
func (c *Course) BackNine() []sharedtypes.Hole {
	return c.holeRange(10, 18)
}

func (c *Course) holeRange(lo, hi sharedtypes.HoleNumber) []sharedtypes.Hole {
	out := make([]sharedtypes.Hole, 0, hi-lo+1)
	for _, h := range c.Holes {
		if h.Number >= lo && h.Number <= hi {
			out = append(out, h)
		}
	}
	return out
}
