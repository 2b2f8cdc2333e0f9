package roundservice

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	roundevents "github.com/Black-And-White-Club/fairway-bot/app/modules/round/domain/events"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/fairway-bot/internal/results"
)

// ImportScorecard parses an uploaded scorecard file and validates every
// entry against the round's roster and format. The parsed batch comes back
// as a success payload for scoring to apply; nothing is written here.
func (s *RoundService) ImportScorecard(ctx context.Context, payload roundevents.RoundScorecardImportRequestedPayloadV1) (ImportOperationResult, error) {
	ctx, span := s.tracer.Start(ctx, "ImportScorecard", trace.WithAttributes(
		attribute.String("round_id", payload.RoundID.String()),
		attribute.String("filename", payload.Filename),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "ImportScorecard")
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "ImportScorecard", time.Since(start))
	}()

	fail := func(reason string) ImportOperationResult {
		s.logger.WarnContext(ctx, "Rejected scorecard import",
			attr.RoundID("round_id", payload.RoundID),
			attr.String("filename", payload.Filename),
			attr.String("reason", reason),
		)
		s.metrics.RecordOperationFailure(ctx, "ImportScorecard")
		return results.FailureResult[roundevents.RoundScorecardImportedPayloadV1](roundevents.RoundScorecardImportFailedPayloadV1{
			RoundID:  payload.RoundID,
			Filename: payload.Filename,
			Reason:   reason,
		})
	}

	round, err := s.repo.GetRound(ctx, payload.RoundID)
	if err != nil {
		return fail(fmt.Sprintf("round %s not found", payload.RoundID)), nil
	}

	parser, err := s.parsers.GetParser(payload.Filename)
	if err != nil {
		return fail(err.Error()), nil
	}

	parsed, err := parser.Parse(payload.Content)
	if err != nil {
		return fail(fmt.Sprintf("unreadable scorecard: %v", err)), nil
	}

	scores := make([]roundevents.ImportedScore, 0, len(parsed.Scores))
	for _, sc := range parsed.Scores {
		if _, ok := round.State.Golfer(sc.GolferID); !ok {
			return fail(fmt.Sprintf("golfer %s is not in the round roster", sc.GolferID)), nil
		}
		if !round.Format.ContainsHole(sc.Hole) {
			return fail(fmt.Sprintf("hole %d is outside a %s round", sc.Hole, round.Format)), nil
		}
		scores = append(scores, roundevents.ImportedScore{
			GolferID: sc.GolferID,
			Hole:     sc.Hole,
			Strokes:  sc.Strokes,
		})
	}

	s.logger.InfoContext(ctx, "Scorecard parsed",
		attr.RoundID("round_id", payload.RoundID),
		attr.String("filename", payload.Filename),
		attr.Int("scores", len(scores)),
	)
	s.metrics.RecordOperationSuccess(ctx, "ImportScorecard")
	return results.SuccessResult[roundevents.RoundScorecardImportedPayloadV1, roundevents.RoundScorecardImportFailedPayloadV1](roundevents.RoundScorecardImportedPayloadV1{
		RoundID: payload.RoundID,
		Scores:  scores,
	}), nil
}
