package scorecard

import (
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/match"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/stableford"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// StrokePlayLine is one golfer's stroke-play tally. Net fields are present
// only once the golfer's course handicap is computed.
type StrokePlayLine struct {
	GolferID    sharedtypes.GolferID `json:"golfer_id"`
	HolesPlayed int                  `json:"holes_played"`
	GrossTotal  sharedtypes.Strokes  `json:"gross_total"`
	NetTotal    *sharedtypes.Strokes `json:"net_total,omitempty"`
	ToPar       int                  `json:"to_par"`
}

// MatchPlayStanding is the evaluated head-to-head match with its presses.
type MatchPlayStanding struct {
	GolferA sharedtypes.GolferID `json:"golfer_a"`
	GolferB sharedtypes.GolferID `json:"golfer_b"`
	Book    match.BookStatus     `json:"book"`
	// StatusLines is the presentation-ready rendering: the main match first,
	// then one line per press.
	StatusLines []string `json:"status_lines"`
}

// BetterBallStanding is the evaluated team match with its presses.
type BetterBallStanding struct {
	SideA       []sharedtypes.GolferID `json:"side_a"`
	SideB       []sharedtypes.GolferID `json:"side_b"`
	Book        match.BookStatus       `json:"book"`
	StatusLines []string               `json:"status_lines"`
}

// NinePointStanding carries per-hole splits and running totals.
type NinePointStanding struct {
	Players []sharedtypes.GolferID            `json:"players"`
	PerHole map[sharedtypes.HoleNumber][3]int `json:"per_hole"`
	Totals  map[sharedtypes.GolferID]int      `json:"totals"`
}

// Results is the full standings snapshot for a round, produced by one
// Compute pass and consumed by presentation and persistence collaborators.
type Results struct {
	RoundID    sharedtypes.RoundID                       `json:"round_id"`
	StrokePlay []StrokePlayLine                          `json:"stroke_play"`
	MatchPlay  *MatchPlayStanding                        `json:"match_play,omitempty"`
	BetterBall *BetterBallStanding                       `json:"better_ball,omitempty"`
	NinePoint  *NinePointStanding                        `json:"nine_point,omitempty"`
	Stableford map[sharedtypes.GolferID]stableford.Tally `json:"stableford,omitempty"`
}

// Compute replays the whole ledger through every configured game and returns
// a fresh standings snapshot. Holes with incomplete input for a game are
// skipped for that game; nothing here ever fails on missing data.
func (rs *RoundState) Compute() (*Results, error) {
	res := &Results{RoundID: rs.RoundID}

	res.StrokePlay = rs.computeStrokePlay()

	if rs.Games.MatchPlay != nil {
		mp, err := rs.computeMatchPlay()
		if err != nil {
			return nil, err
		}
		res.MatchPlay = mp
	}

	if rs.Games.BetterBall != nil {
		bb, err := rs.computeBetterBall()
		if err != nil {
			return nil, err
		}
		res.BetterBall = bb
	}

	if rs.npGame != nil {
		res.NinePoint = rs.computeNinePoint()
	}

	if rs.Games.Stableford != nil {
		res.Stableford = rs.computeStableford()
	}

	return res, nil
}

func (rs *RoundState) computeStrokePlay() []StrokePlayLine {
	ownSets := rs.ownStrokeSets(rs.rosterIDs())

	lines := make([]StrokePlayLine, 0, len(rs.Golfers))
	for _, g := range rs.Golfers {
		line := StrokePlayLine{GolferID: g.ID}
		set, haveSet := ownSets[g.ID]

		var net sharedtypes.Strokes
		for hole, holeScores := range rs.Gross {
			gross, ok := holeScores[g.ID]
			if !ok {
				continue
			}
			line.HolesPlayed++
			line.GrossTotal += gross
			if refHole, ok := rs.Holes[hole]; ok {
				line.ToPar += int(gross) - refHole.Par
			}
			if haveSet {
				net += set.NetScore(hole, gross)
			}
		}

		if haveSet && line.HolesPlayed > 0 {
			line.NetTotal = &net
		}
		lines = append(lines, line)
	}
	return lines
}

func (rs *RoundState) computeMatchPlay() (*MatchPlayStanding, error) {
	cfg := rs.Games.MatchPlay
	pair := []sharedtypes.GolferID{cfg.GolferA, cfg.GolferB}

	book, err := match.NewBook(rs.Format)
	if err != nil {
		return nil, err
	}
	for _, start := range rs.MatchPresses {
		if _, err := book.StartPress(start); err != nil {
			return nil, err
		}
	}

	standing := &MatchPlayStanding{GolferA: cfg.GolferA, GolferB: cfg.GolferB}

	// A missing course handicap means match-relative stroke holes cannot be
	// derived yet; the match stays unstarted rather than guessing.
	sets, ok := rs.relativeStrokeSets(pair)
	if ok {
		net := rs.netScores(sets)
		for _, hole := range rs.orderedHoles() {
			holeNet, ok := net[hole]
			if !ok {
				continue
			}
			netA, okA := holeNet[cfg.GolferA]
			netB, okB := holeNet[cfg.GolferB]
			// Match play needs exactly both scores in.
			if !okA || !okB {
				continue
			}
			var result match.Result
			switch {
			case netA < netB:
				result = match.SideAWinsHole
			case netB < netA:
				result = match.SideBWinsHole
			default:
				result = match.HoleHalved
			}
			if err := book.Record(hole, result); err != nil {
				return nil, err
			}
		}
	}

	standing.Book = book.Status()
	standing.StatusLines = statusLines(standing.Book)
	return standing, nil
}

func (rs *RoundState) computeBetterBall() (*BetterBallStanding, error) {
	teams := rs.bbTeams

	book, err := match.NewBook(rs.Format)
	if err != nil {
		return nil, err
	}
	for _, start := range rs.BetterBallPresses {
		if _, err := book.StartPress(start); err != nil {
			return nil, err
		}
	}

	standing := &BetterBallStanding{
		SideA: teams.Members(sharedtypes.TeamSideA),
		SideB: teams.Members(sharedtypes.TeamSideB),
	}

	// Stroke holes are relative to the lowest course handicap across both
	// teams combined, not lowest-per-team.
	sets, ok := rs.relativeStrokeSets(teams.AllGolfers())
	if ok {
		net := rs.netScores(sets)
		for _, hole := range rs.orderedHoles() {
			result, resolved := teams.HoleResult(net[hole])
			if !resolved {
				continue
			}
			if err := book.Record(hole, result); err != nil {
				return nil, err
			}
		}
	}

	standing.Book = book.Status()
	standing.StatusLines = statusLines(standing.Book)
	return standing, nil
}

func (rs *RoundState) computeNinePoint() *NinePointStanding {
	players := rs.npGame.Players()

	// Nine point plays off each golfer's own course-handicap stroke holes.
	sets := rs.ownStrokeSets(players[:])
	net := rs.netScores(sets)

	tally := rs.npGame.Compute(net)
	return &NinePointStanding{
		Players: players[:],
		PerHole: tally.PerHole,
		Totals:  tally.Totals,
	}
}

func (rs *RoundState) computeStableford() map[sharedtypes.GolferID]stableford.Tally {
	cfg := rs.Games.Stableford
	out := make(map[sharedtypes.GolferID]stableford.Tally, len(cfg.Quotas))
	ownSets := rs.ownStrokeSets(rs.rosterIDs())

	for golfer, quota := range cfg.Quotas {
		scores := make(map[sharedtypes.HoleNumber]sharedtypes.Strokes)
		for hole, holeScores := range rs.Gross {
			gross, ok := holeScores[golfer]
			if !ok {
				continue
			}
			switch cfg.Variant {
			case stableford.Net:
				set, ok := ownSets[golfer]
				if !ok {
					// No course handicap yet: net variant cannot score this
					// golfer, leave the tally at quota deficit.
					continue
				}
				scores[hole] = set.NetScore(hole, gross)
			default:
				scores[hole] = gross
			}
		}
		out[golfer] = stableford.Compute(scores, rs.Holes, quota)
	}
	return out
}

func statusLines(book match.BookStatus) []string {
	lines := make([]string, 0, 1+len(book.Presses))
	lines = append(lines, book.Main.StatusLine())
	for _, p := range book.Presses {
		lines = append(lines, p.Line())
	}
	return lines
}
