package scoringservice

import (
	"context"
	"fmt"

	roundevents "github.com/Black-And-White-Club/fairway-bot/app/modules/round/domain/events"
	scoringevents "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/events"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// RecordScore enters or corrects one gross score and recomputes standings.
func (s *ScoringService) RecordScore(ctx context.Context, payload scoringevents.ScoreSubmittedPayloadV1) (StandingsOperationResult, error) {
	return s.mutate(ctx, "RecordScore", payload.RoundID, func(state *scorecard.RoundState) error {
		return state.SetGross(payload.Hole, payload.GolferID, payload.Strokes)
	})
}

// ClearScore removes a previously entered score and recomputes standings.
func (s *ScoringService) ClearScore(ctx context.Context, payload scoringevents.ScoreClearedPayloadV1) (StandingsOperationResult, error) {
	return s.mutate(ctx, "ClearScore", payload.RoundID, func(state *scorecard.RoundState) error {
		return state.ClearGross(payload.Hole, payload.GolferID)
	})
}

// StartPress opens a press on the named game and recomputes standings.
func (s *ScoringService) StartPress(ctx context.Context, payload scoringevents.PressStartedPayloadV1) (StandingsOperationResult, error) {
	return s.mutate(ctx, "StartPress", payload.RoundID, func(state *scorecard.RoundState) error {
		switch payload.Game {
		case scoringevents.GameMatchPlay:
			return state.StartMatchPress(payload.StartHole)
		case scoringevents.GameBetterBall:
			return state.StartBetterBallPress(payload.StartHole)
		default:
			return fmt.Errorf("unknown pressable game %q", payload.Game)
		}
	})
}

// ApplyImport enters a parsed scorecard batch in one mutation. The batch is
// all or nothing: any bad entry rejects the whole file.
func (s *ScoringService) ApplyImport(ctx context.Context, roundID sharedtypes.RoundID, scores []roundevents.ImportedScore) (StandingsOperationResult, error) {
	return s.mutate(ctx, "ApplyImport", roundID, func(state *scorecard.RoundState) error {
		for _, sc := range scores {
			if err := state.SetGross(sc.Hole, sc.GolferID, sc.Strokes); err != nil {
				return fmt.Errorf("hole %d golfer %s: %w", sc.Hole, sc.GolferID, err)
			}
		}
		return nil
	})
}
