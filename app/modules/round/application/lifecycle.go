package roundservice

import (
	"context"
	"fmt"
	"sort"
	"time"

	roundevents "github.com/Black-And-White-Club/fairway-bot/app/modules/round/domain/events"
	rounddb "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/handicap"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/fairway-bot/internal/results"
)

// AddGolfer extends a round's roster. The roster closes at tee time: once the
// round is in progress scores exist downstream, and reseeding scoring's state
// copy would drop them.
func (s *RoundService) AddGolfer(ctx context.Context, payload roundevents.RoundGolferAddRequestedPayloadV1) (GolferAddOperationResult, error) {
	ctx, span := s.tracer.Start(ctx, "AddGolfer")
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "AddGolfer")
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "AddGolfer", time.Since(start))
	}()

	fail := func(reason string) GolferAddOperationResult {
		s.logger.WarnContext(ctx, "Rejected roster change",
			attr.RoundID("round_id", payload.RoundID),
			attr.String("reason", reason),
		)
		s.metrics.RecordOperationFailure(ctx, "AddGolfer")
		return results.FailureResult[roundevents.RoundGolferAddedPayloadV1](roundevents.RoundGolferAddFailedPayloadV1{
			RoundID: payload.RoundID,
			Reason:  reason,
		})
	}

	round, err := s.repo.GetRound(ctx, payload.RoundID)
	if err != nil {
		return fail(fmt.Sprintf("round %s not found", payload.RoundID)), nil
	}
	if round.Status != rounddb.StatusScheduled {
		return fail(fmt.Sprintf("roster is closed, round is %s", round.Status)), nil
	}
	if _, exists := round.State.Golfer(payload.Golfer.GolferID); exists {
		return fail(fmt.Sprintf("golfer %s is already on the round", payload.Golfer.GolferID)), nil
	}

	course, err := s.courses.GetCourse(ctx, round.CourseID)
	if err != nil {
		return fail(fmt.Sprintf("course %s not found", round.CourseID)), nil
	}

	in := payload.Golfer
	golfer := sharedtypes.Golfer{
		ID:   in.GolferID,
		Name: in.Name,
		Side: in.Side,
	}
	if in.HandicapIndex != nil {
		tee, ok := course.Tee(in.TeeName)
		if !ok {
			return fail(fmt.Sprintf("golfer %s plays unknown tee %q", in.GolferID, in.TeeName)), nil
		}
		ch := handicap.CourseHandicap(*in.HandicapIndex, tee.Slope, tee.Rating, tee.Par)
		golfer.HandicapIndex = *in.HandicapIndex
		golfer.CourseHandicap = &ch
	}

	roster := append(append([]sharedtypes.Golfer(nil), round.State.Golfers...), golfer)
	state, err := scorecard.New(round.ID, round.Format, stateHoles(round.State), roster, round.State.Games)
	if err != nil {
		return fail(err.Error()), nil
	}

	if err := s.repo.UpdateState(ctx, round.ID, state); err != nil {
		s.metrics.RecordOperationFailure(ctx, "AddGolfer")
		span.RecordError(err)
		return GolferAddOperationResult{}, fmt.Errorf("AddGolfer: %w", err)
	}

	s.logger.InfoContext(ctx, "Golfer added to round",
		attr.RoundID("round_id", round.ID),
		attr.String("golfer_id", string(golfer.ID)),
	)
	s.metrics.RecordOperationSuccess(ctx, "AddGolfer")
	return results.SuccessResult[roundevents.RoundGolferAddedPayloadV1, roundevents.RoundGolferAddFailedPayloadV1](roundevents.RoundGolferAddedPayloadV1{
		RoundID: round.ID,
		State:   *state,
	}), nil
}

// CancelRound calls a round off and drops its pending queue jobs.
func (s *RoundService) CancelRound(ctx context.Context, payload roundevents.RoundCancelRequestedPayloadV1) (CancelOperationResult, error) {
	ctx, span := s.tracer.Start(ctx, "CancelRound")
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "CancelRound")
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "CancelRound", time.Since(start))
	}()

	fail := func(reason string) CancelOperationResult {
		s.logger.WarnContext(ctx, "Rejected round cancellation",
			attr.RoundID("round_id", payload.RoundID),
			attr.String("reason", reason),
		)
		s.metrics.RecordOperationFailure(ctx, "CancelRound")
		return results.FailureResult[roundevents.RoundCancelledPayloadV1](roundevents.RoundCancelFailedPayloadV1{
			RoundID: payload.RoundID,
			Reason:  reason,
		})
	}

	round, err := s.repo.GetRound(ctx, payload.RoundID)
	if err != nil {
		return fail(fmt.Sprintf("round %s not found", payload.RoundID)), nil
	}
	if round.Status == rounddb.StatusFinalized {
		return fail("round is already finalized"), nil
	}

	if err := s.repo.UpdateStatus(ctx, round.ID, rounddb.StatusCancelled); err != nil {
		s.metrics.RecordOperationFailure(ctx, "CancelRound")
		span.RecordError(err)
		return CancelOperationResult{}, fmt.Errorf("CancelRound: %w", err)
	}

	// Job cleanup is best effort. StartRound skips non-scheduled rounds, so
	// a leftover job that still fires is harmless.
	if err := s.queue.CancelRoundJobs(ctx, round.ID); err != nil {
		s.logger.WarnContext(ctx, "Failed to cancel round jobs",
			attr.RoundID("round_id", round.ID), attr.Error(err))
	}

	s.logger.InfoContext(ctx, "Round cancelled",
		attr.RoundID("round_id", round.ID),
		attr.String("reason", payload.Reason),
	)
	s.metrics.RecordOperationSuccess(ctx, "CancelRound")
	return results.SuccessResult[roundevents.RoundCancelledPayloadV1, roundevents.RoundCancelFailedPayloadV1](roundevents.RoundCancelledPayloadV1{
		RoundID: round.ID,
		Reason:  payload.Reason,
	}), nil
}

// stateHoles flattens the state's hole map back into course order.
func stateHoles(state *scorecard.RoundState) []sharedtypes.Hole {
	holes := make([]sharedtypes.Hole, 0, len(state.Holes))
	for _, h := range state.Holes {
		holes = append(holes, h)
	}
	sort.Slice(holes, func(i, j int) bool { return holes[i].Number < holes[j].Number })
	return holes
}
