package roundservice

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	roundevents "github.com/Black-And-White-Club/fairway-bot/app/modules/round/domain/events"
	rounddb "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/handicap"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/fairway-bot/internal/results"
)

// reminderLead is how far before the tee time the reminder fires.
const reminderLead = time.Hour

// CreateRound resolves the course, computes handicaps, builds the initial
// scorecard state, persists the round, and schedules its tee-time jobs.
// Validation problems come back as a failure payload; storage problems as an
// error.
func (s *RoundService) CreateRound(ctx context.Context, payload roundevents.RoundCreateRequestedPayloadV1) (RoundOperationResult, error) {
	ctx, span := s.tracer.Start(ctx, "CreateRound", trace.WithAttributes(
		attribute.String("course_id", payload.CourseID),
		attribute.String("format", string(payload.Format)),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "CreateRound")
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "CreateRound", time.Since(start))
	}()

	fail := func(reason string) RoundOperationResult {
		s.logger.WarnContext(ctx, "Rejected round setup",
			attr.String("course_id", payload.CourseID),
			attr.String("reason", reason),
		)
		s.metrics.RecordOperationFailure(ctx, "CreateRound")
		return results.FailureResult[roundevents.RoundCreatedPayloadV1](roundevents.RoundCreateFailedPayloadV1{
			CourseID: payload.CourseID,
			Reason:   reason,
		})
	}

	if !payload.Format.Valid() {
		return fail(fmt.Sprintf("unknown round format %q", payload.Format)), nil
	}
	if len(payload.Golfers) == 0 {
		return fail("round needs at least one golfer"), nil
	}

	teeTime, err := s.timeParser.ParseTeeTime(payload.TeeTime, payload.Timezone, s.clock)
	if err != nil {
		return fail(fmt.Sprintf("unusable tee time %q: %v", payload.TeeTime, err)), nil
	}

	course, err := s.courses.GetCourse(ctx, payload.CourseID)
	if err != nil {
		return fail(fmt.Sprintf("course %s not found", payload.CourseID)), nil
	}

	holes := holesForFormat(course.Holes, payload.Format)
	if len(holes) != payload.Format.HoleCount() {
		return fail(fmt.Sprintf("course %s does not cover format %s", course.ID, payload.Format)), nil
	}

	golfers := make([]sharedtypes.Golfer, 0, len(payload.Golfers))
	for _, in := range payload.Golfers {
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
		golfers = append(golfers, golfer)
	}

	roundID := sharedtypes.NewRoundID()
	state, err := scorecard.New(roundID, payload.Format, holes, golfers, payload.Games)
	if err != nil {
		return fail(err.Error()), nil
	}

	round := &rounddb.Round{
		ID:        roundID,
		CourseID:  course.ID,
		Format:    payload.Format,
		TeeTime:   teeTime,
		Status:    rounddb.StatusScheduled,
		CreatedBy: payload.CreatedBy,
		State:     state,
	}
	if err := s.repo.CreateRound(ctx, round); err != nil {
		s.metrics.RecordOperationFailure(ctx, "CreateRound")
		span.RecordError(err)
		return RoundOperationResult{}, fmt.Errorf("CreateRound: %w", err)
	}

	// Scheduling is best effort. The round is already stored; a missed job
	// only costs the automatic status flip and reminder.
	if err := s.queue.ScheduleRoundStart(ctx, roundID, teeTime); err != nil {
		s.logger.WarnContext(ctx, "Failed to schedule round start",
			attr.RoundID("round_id", roundID), attr.Error(err))
	}
	if err := s.queue.ScheduleRoundReminder(ctx, roundID, teeTime.Add(-reminderLead), teeTime); err != nil {
		s.logger.WarnContext(ctx, "Failed to schedule round reminder",
			attr.RoundID("round_id", roundID), attr.Error(err))
	}

	s.logger.InfoContext(ctx, "Round created",
		attr.RoundID("round_id", roundID),
		attr.String("course_id", course.ID),
		attr.Time("tee_time", teeTime),
		attr.Int("golfers", len(golfers)),
	)
	s.metrics.RecordOperationSuccess(ctx, "CreateRound")
	return results.SuccessResult[roundevents.RoundCreatedPayloadV1, roundevents.RoundCreateFailedPayloadV1](roundevents.RoundCreatedPayloadV1{
		RoundID:  roundID,
		CourseID: course.ID,
		TeeTime:  teeTime,
		State:    *state,
	}), nil
}

// StartRound flips a scheduled round to in progress when its start job fires.
func (s *RoundService) StartRound(ctx context.Context, roundID sharedtypes.RoundID) error {
	ctx, span := s.tracer.Start(ctx, "StartRound")
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "StartRound")
	round, err := s.repo.GetRound(ctx, roundID)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "StartRound")
		return fmt.Errorf("StartRound: %w", err)
	}
	if round.Status != rounddb.StatusScheduled {
		// A stale start job, usually after a cancellation.
		s.logger.InfoContext(ctx, "Skipping start for non-scheduled round",
			attr.RoundID("round_id", roundID),
			attr.String("status", round.Status),
		)
		return nil
	}
	if err := s.repo.UpdateStatus(ctx, roundID, rounddb.StatusInProgress); err != nil {
		s.metrics.RecordOperationFailure(ctx, "StartRound")
		return fmt.Errorf("StartRound: %w", err)
	}
	s.logger.InfoContext(ctx, "Round started", attr.RoundID("round_id", roundID))
	s.metrics.RecordOperationSuccess(ctx, "StartRound")
	return nil
}

// FinalizeRound flips a round to finalized once scoring locks it.
func (s *RoundService) FinalizeRound(ctx context.Context, roundID sharedtypes.RoundID) error {
	ctx, span := s.tracer.Start(ctx, "FinalizeRound")
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "FinalizeRound")
	if err := s.repo.UpdateStatus(ctx, roundID, rounddb.StatusFinalized); err != nil {
		s.metrics.RecordOperationFailure(ctx, "FinalizeRound")
		return fmt.Errorf("FinalizeRound: %w", err)
	}
	s.logger.InfoContext(ctx, "Round finalized", attr.RoundID("round_id", roundID))
	s.metrics.RecordOperationSuccess(ctx, "FinalizeRound")
	return nil
}

// holesForFormat returns the course holes the format covers, in course order.
func holesForFormat(holes []sharedtypes.Hole, format sharedtypes.RoundFormat) []sharedtypes.Hole {
	out := make([]sharedtypes.Hole, 0, format.HoleCount())
	for _, h := range holes {
		if format.ContainsHole(h.Number) {
			out = append(out, h)
		}
	}
	return out
}
