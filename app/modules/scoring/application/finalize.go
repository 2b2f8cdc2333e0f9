package scoringservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	scoringevents "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/events"
	scoringdb "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/infrastructure/repositories"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/fairway-bot/internal/results"
)

// FinalizeRound locks a round and publishes its final results. Finalizing an
// already locked round is rejected rather than replayed so the leaderboard
// never folds the same round twice.
func (s *ScoringService) FinalizeRound(ctx context.Context, payload scoringevents.FinalizeRequestedPayloadV1) (FinalizeOperationResult, error) {
	ctx, span := s.tracer.Start(ctx, "FinalizeRound", trace.WithAttributes(
		attribute.String("round_id", payload.RoundID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "FinalizeRound")
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "FinalizeRound", time.Since(start))
	}()

	fail := func(reason string) FinalizeOperationResult {
		s.logger.WarnContext(ctx, "Rejected finalize request",
			attr.RoundID("round_id", payload.RoundID),
			attr.String("reason", reason),
		)
		s.metrics.RecordOperationFailure(ctx, "FinalizeRound")
		return results.FailureResult[scoringevents.FinalizedPayloadV1](scoringevents.FinalizeFailedPayloadV1{
			RoundID: payload.RoundID,
			Reason:  reason,
		})
	}

	record, err := s.repo.GetRoundState(ctx, payload.RoundID)
	if err != nil {
		if errors.Is(err, scoringdb.ErrRoundStateNotFound) {
			return fail(fmt.Sprintf("unknown round %s", payload.RoundID)), nil
		}
		s.metrics.RecordOperationFailure(ctx, "FinalizeRound")
		span.RecordError(err)
		return FinalizeOperationResult{}, fmt.Errorf("FinalizeRound: %w", err)
	}
	if record.Finalized() {
		return fail(ErrRoundFinalized.Error()), nil
	}

	state := record.State
	if err := state.Rehydrate(); err != nil {
		s.metrics.RecordOperationFailure(ctx, "FinalizeRound")
		span.RecordError(err)
		return FinalizeOperationResult{}, fmt.Errorf("FinalizeRound: corrupt round state: %w", err)
	}

	computed, err := state.Compute()
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "FinalizeRound")
		span.RecordError(err)
		return FinalizeOperationResult{}, fmt.Errorf("FinalizeRound: %w", err)
	}

	finalizedAt := s.clock.Now().UTC()
	if err := s.repo.SaveStandings(ctx, payload.RoundID, computed); err != nil {
		s.metrics.RecordOperationFailure(ctx, "FinalizeRound")
		span.RecordError(err)
		return FinalizeOperationResult{}, fmt.Errorf("FinalizeRound: %w", err)
	}
	if err := s.repo.MarkFinalized(ctx, payload.RoundID, finalizedAt); err != nil {
		s.metrics.RecordOperationFailure(ctx, "FinalizeRound")
		span.RecordError(err)
		return FinalizeOperationResult{}, fmt.Errorf("FinalizeRound: %w", err)
	}

	s.logger.InfoContext(ctx, "Round finalized",
		attr.RoundID("round_id", payload.RoundID),
		attr.Time("finalized_at", finalizedAt),
	)
	s.metrics.RecordOperationSuccess(ctx, "FinalizeRound")
	return results.SuccessResult[scoringevents.FinalizedPayloadV1, scoringevents.FinalizeFailedPayloadV1](scoringevents.FinalizedPayloadV1{
		RoundID:     payload.RoundID,
		FinalizedAt: finalizedAt,
		Golfers:     state.Golfers,
		Results:     *computed,
	}), nil
}
