// Package scorecard holds the round-state aggregate: the hole reference data,
// the roster, the per-hole per-golfer gross ledger, the configured games, and
// the single Compute pass that replays every engine over the ledger.
//
// Compute is a full recalculation every time. Scores arrive out of order and
// get edited; rather than patch running totals incrementally, the whole round
// (at most 18 holes) is replayed, which makes every standings snapshot a pure
// function of the ledger.
package scorecard

import (
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/betterball"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/handicap"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/match"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/ninepoint"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/stableford"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

var (
	ErrNoGolfers      = errors.New("round has no golfers")
	ErrUnknownGolfer  = errors.New("golfer not in round roster")
	ErrDuplicateID    = errors.New("duplicate golfer id in roster")
	ErrInvalidFormat  = errors.New("invalid round format")
	ErrInvalidStrokes = errors.New("stroke count must be positive")
	ErrSamePlayer     = errors.New("match play needs two distinct golfers")
	ErrGameNotEnabled = errors.New("game not enabled for this round")
)

// MatchPlayConfig is a two-golfer head-to-head match.
type MatchPlayConfig struct {
	GolferA sharedtypes.GolferID `json:"golfer_a"`
	GolferB sharedtypes.GolferID `json:"golfer_b"`
}

// BetterBallConfig assigns each participating golfer to one of two sides.
type BetterBallConfig struct {
	Assignment map[sharedtypes.GolferID]sharedtypes.TeamSide `json:"assignment"`
}

// NinePointConfig names the three nine-point players.
type NinePointConfig struct {
	Players []sharedtypes.GolferID `json:"players"`
}

// StablefordConfig sets the variant and per-golfer quotas.
type StablefordConfig struct {
	Variant stableford.Variant           `json:"variant"`
	Quotas  map[sharedtypes.GolferID]int `json:"quotas"`
}

// GameConfig toggles which games run for the round. Stroke play is always
// tallied; the rest are optional.
type GameConfig struct {
	MatchPlay  *MatchPlayConfig  `json:"match_play,omitempty"`
	BetterBall *BetterBallConfig `json:"better_ball,omitempty"`
	NinePoint  *NinePointConfig  `json:"nine_point,omitempty"`
	Stableford *StablefordConfig `json:"stableford,omitempty"`
}

// RoundState is the aggregate passed into every scoring operation. It owns
// the ledger; engines never see anything but derived views of it.
type RoundState struct {
	RoundID sharedtypes.RoundID     `json:"round_id"`
	Format  sharedtypes.RoundFormat `json:"format"`

	Holes   map[sharedtypes.HoleNumber]sharedtypes.Hole `json:"holes"`
	Golfers []sharedtypes.Golfer                        `json:"golfers"`
	Games   GameConfig                                  `json:"games"`

	// Gross is the ledger: hole -> golfer -> gross strokes.
	Gross map[sharedtypes.HoleNumber]map[sharedtypes.GolferID]sharedtypes.Strokes `json:"gross"`

	// Press start holes, replayed into fresh books on every Compute.
	MatchPresses      []sharedtypes.HoleNumber `json:"match_presses,omitempty"`
	BetterBallPresses []sharedtypes.HoleNumber `json:"better_ball_presses,omitempty"`

	golferIndex map[sharedtypes.GolferID]int
	bbTeams     *betterball.Teams
	npGame      *ninepoint.Game
}

// New validates and builds a round state. Game configuration errors are
// rejected here so no engine ever starts inconsistent.
func New(roundID sharedtypes.RoundID, format sharedtypes.RoundFormat, holes []sharedtypes.Hole, golfers []sharedtypes.Golfer, games GameConfig) (*RoundState, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
	if len(golfers) == 0 {
		return nil, ErrNoGolfers
	}

	rs := &RoundState{
		RoundID:     roundID,
		Format:      format,
		Holes:       make(map[sharedtypes.HoleNumber]sharedtypes.Hole, len(holes)),
		Golfers:     golfers,
		Games:       games,
		Gross:       make(map[sharedtypes.HoleNumber]map[sharedtypes.GolferID]sharedtypes.Strokes),
		golferIndex: make(map[sharedtypes.GolferID]int, len(golfers)),
	}

	for _, h := range holes {
		if format.ContainsHole(h.Number) {
			rs.Holes[h.Number] = h
		}
	}

	for i, g := range golfers {
		if _, dup := rs.golferIndex[g.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, g.ID)
		}
		rs.golferIndex[g.ID] = i
	}

	if err := rs.validateGames(); err != nil {
		return nil, err
	}
	return rs, nil
}

func (rs *RoundState) validateGames() error {
	if mp := rs.Games.MatchPlay; mp != nil {
		if mp.GolferA == mp.GolferB {
			return ErrSamePlayer
		}
		for _, id := range []sharedtypes.GolferID{mp.GolferA, mp.GolferB} {
			if _, ok := rs.golferIndex[id]; !ok {
				return fmt.Errorf("%w: match play golfer %s", ErrUnknownGolfer, id)
			}
		}
	}

	if bb := rs.Games.BetterBall; bb != nil {
		for id := range bb.Assignment {
			if _, ok := rs.golferIndex[id]; !ok {
				return fmt.Errorf("%w: better ball golfer %s", ErrUnknownGolfer, id)
			}
		}
		teams, err := betterball.NewTeams(bb.Assignment)
		if err != nil {
			return err
		}
		rs.bbTeams = teams
	}

	if np := rs.Games.NinePoint; np != nil {
		for _, id := range np.Players {
			if _, ok := rs.golferIndex[id]; !ok {
				return fmt.Errorf("%w: nine point golfer %s", ErrUnknownGolfer, id)
			}
		}
		game, err := ninepoint.New(np.Players)
		if err != nil {
			return err
		}
		rs.npGame = game
	}

	if sf := rs.Games.Stableford; sf != nil {
		if sf.Variant != stableford.Gross && sf.Variant != stableford.Net {
			return fmt.Errorf("invalid stableford variant %q", sf.Variant)
		}
		for id := range sf.Quotas {
			if _, ok := rs.golferIndex[id]; !ok {
				return fmt.Errorf("%w: stableford golfer %s", ErrUnknownGolfer, id)
			}
		}
	}

	return nil
}

// Rehydrate rebuilds the internal validated game state after the aggregate is
// loaded from storage (only exported fields survive serialization).
func (rs *RoundState) Rehydrate() error {
	if rs.golferIndex == nil {
		rs.golferIndex = make(map[sharedtypes.GolferID]int, len(rs.Golfers))
		for i, g := range rs.Golfers {
			if _, dup := rs.golferIndex[g.ID]; dup {
				return fmt.Errorf("%w: %s", ErrDuplicateID, g.ID)
			}
			rs.golferIndex[g.ID] = i
		}
	}
	if rs.Gross == nil {
		rs.Gross = make(map[sharedtypes.HoleNumber]map[sharedtypes.GolferID]sharedtypes.Strokes)
	}
	return rs.validateGames()
}

// Golfer looks up a roster member.
func (rs *RoundState) Golfer(id sharedtypes.GolferID) (sharedtypes.Golfer, bool) {
	i, ok := rs.golferIndex[id]
	if !ok {
		return sharedtypes.Golfer{}, false
	}
	return rs.Golfers[i], true
}

// SetGross records a gross score. Out-of-order entry and overwriting are both
// fine; standings are recomputed from scratch afterwards.
func (rs *RoundState) SetGross(hole sharedtypes.HoleNumber, golfer sharedtypes.GolferID, strokes sharedtypes.Strokes) error {
	if !rs.Format.ContainsHole(hole) {
		return fmt.Errorf("%w: hole %d not in %s", match.ErrHoleOutOfRange, hole, rs.Format)
	}
	if _, ok := rs.golferIndex[golfer]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGolfer, golfer)
	}
	if strokes < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidStrokes, strokes)
	}
	if rs.Gross[hole] == nil {
		rs.Gross[hole] = make(map[sharedtypes.GolferID]sharedtypes.Strokes)
	}
	rs.Gross[hole][golfer] = strokes
	return nil
}

// ClearGross removes a gross score entry.
func (rs *RoundState) ClearGross(hole sharedtypes.HoleNumber, golfer sharedtypes.GolferID) error {
	if !rs.Format.ContainsHole(hole) {
		return fmt.Errorf("%w: hole %d not in %s", match.ErrHoleOutOfRange, hole, rs.Format)
	}
	if _, ok := rs.golferIndex[golfer]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGolfer, golfer)
	}
	if holeScores, ok := rs.Gross[hole]; ok {
		delete(holeScores, golfer)
		if len(holeScores) == 0 {
			delete(rs.Gross, hole)
		}
	}
	return nil
}

// GrossScore reads one ledger cell.
func (rs *RoundState) GrossScore(hole sharedtypes.HoleNumber, golfer sharedtypes.GolferID) (sharedtypes.Strokes, bool) {
	s, ok := rs.Gross[hole][golfer]
	return s, ok
}

// StartMatchPress opens a press on the head-to-head match from startHole.
func (rs *RoundState) StartMatchPress(startHole sharedtypes.HoleNumber) error {
	if rs.Games.MatchPlay == nil {
		return fmt.Errorf("%w: match play", ErrGameNotEnabled)
	}
	return rs.addPress(&rs.MatchPresses, startHole)
}

// StartBetterBallPress opens a press on the team match from startHole.
func (rs *RoundState) StartBetterBallPress(startHole sharedtypes.HoleNumber) error {
	if rs.Games.BetterBall == nil {
		return fmt.Errorf("%w: better ball", ErrGameNotEnabled)
	}
	return rs.addPress(&rs.BetterBallPresses, startHole)
}

func (rs *RoundState) addPress(presses *[]sharedtypes.HoleNumber, startHole sharedtypes.HoleNumber) error {
	if !rs.Format.ContainsHole(startHole) {
		return fmt.Errorf("%w: hole %d not in %s", match.ErrHoleOutOfRange, startHole, rs.Format)
	}
	for _, h := range *presses {
		if h == startHole {
			return fmt.Errorf("%w: hole %d", match.ErrDuplicatePress, startHole)
		}
	}
	*presses = append(*presses, startHole)
	return nil
}

// holeList returns the reference holes for the round, for stroke allocation.
func (rs *RoundState) holeList() []sharedtypes.Hole {
	out := make([]sharedtypes.Hole, 0, len(rs.Holes))
	for _, h := range rs.Holes {
		out = append(out, h)
	}
	return out
}

// courseHandicaps returns handicaps for the golfers that have one computed.
func (rs *RoundState) courseHandicaps(ids []sharedtypes.GolferID) (map[sharedtypes.GolferID]int, bool) {
	out := make(map[sharedtypes.GolferID]int, len(ids))
	for _, id := range ids {
		g, ok := rs.Golfer(id)
		if !ok || !g.HasCourseHandicap() {
			return nil, false
		}
		out[id] = *g.CourseHandicap
	}
	return out, true
}

// netScores derives hole -> golfer -> net for the given golfers using the
// supplied per-golfer stroke-hole sets. Golfers missing from strokeSets are
// left out entirely.
func (rs *RoundState) netScores(strokeSets map[sharedtypes.GolferID]handicap.StrokeHoleSet) map[sharedtypes.HoleNumber]map[sharedtypes.GolferID]sharedtypes.Strokes {
	out := make(map[sharedtypes.HoleNumber]map[sharedtypes.GolferID]sharedtypes.Strokes, len(rs.Gross))
	for hole, holeScores := range rs.Gross {
		for golfer, gross := range holeScores {
			set, ok := strokeSets[golfer]
			if !ok {
				continue
			}
			if out[hole] == nil {
				out[hole] = make(map[sharedtypes.GolferID]sharedtypes.Strokes)
			}
			out[hole][golfer] = set.NetScore(hole, gross)
		}
	}
	return out
}

// relativeStrokeSets computes game-relative stroke-hole sets (lowest course
// handicap in the group plays off scratch) for the given golfers. ok is false
// when any of them is missing a course handicap; the game is then skipped.
func (rs *RoundState) relativeStrokeSets(ids []sharedtypes.GolferID) (map[sharedtypes.GolferID]handicap.StrokeHoleSet, bool) {
	chs, ok := rs.courseHandicaps(ids)
	if !ok {
		return nil, false
	}
	rel := handicap.RelativeStrokes(chs)
	holes := rs.holeList()

	sets := make(map[sharedtypes.GolferID]handicap.StrokeHoleSet, len(rel))
	for id, strokes := range rel {
		sets[id] = handicap.NewStrokeHoleSet(handicap.StrokeHoles(strokes, holes))
	}
	return sets, true
}

// ownStrokeSets computes per-golfer stroke-hole sets off each golfer's own
// course handicap (stroke play, nine point, net stableford). Golfers without
// a computed course handicap are omitted.
func (rs *RoundState) ownStrokeSets(ids []sharedtypes.GolferID) map[sharedtypes.GolferID]handicap.StrokeHoleSet {
	holes := rs.holeList()
	sets := make(map[sharedtypes.GolferID]handicap.StrokeHoleSet, len(ids))
	for _, id := range ids {
		g, ok := rs.Golfer(id)
		if !ok || !g.HasCourseHandicap() {
			continue
		}
		sets[id] = handicap.NewStrokeHoleSet(handicap.StrokeHoles(*g.CourseHandicap, holes))
	}
	return sets
}

func (rs *RoundState) rosterIDs() []sharedtypes.GolferID {
	out := make([]sharedtypes.GolferID, 0, len(rs.Golfers))
	for _, g := range rs.Golfers {
		out = append(out, g.ID)
	}
	return out
}

// orderedHoles iterates the format's stretch first-to-last.
func (rs *RoundState) orderedHoles() []sharedtypes.HoleNumber {
	out := make([]sharedtypes.HoleNumber, 0, rs.Format.HoleCount())
	for h := rs.Format.StartingHole(); h <= rs.Format.LastHole(); h++ {
		out = append(out, h)
	}
	return out
}
