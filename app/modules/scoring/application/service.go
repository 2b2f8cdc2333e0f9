// Package scoringservice applies score mutations to the round-state copy and
// recomputes standings. Every accepted mutation replays the whole ledger; the
// snapshot that comes back is a pure function of it.
package scoringservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	scoringevents "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/events"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	scoringdb "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/metrics"
	"github.com/Black-And-White-Club/fairway-bot/internal/results"
	"github.com/Black-And-White-Club/fairway-bot/internal/utils"
)

// ErrRoundFinalized rejects mutations on locked rounds.
var ErrRoundFinalized = errors.New("round is finalized")

// ScoringService implements Service.
type ScoringService struct {
	repo    scoringdb.Repository
	clock   utils.Clock
	logger  *slog.Logger
	metrics metrics.OperationMetrics
	tracer  trace.Tracer
}

var _ Service = (*ScoringService)(nil)

// NewScoringService creates a new ScoringService.
func NewScoringService(repo scoringdb.Repository, clock utils.Clock, logger *slog.Logger, m metrics.OperationMetrics, tracer trace.Tracer) *ScoringService {
	return &ScoringService{
		repo:    repo,
		clock:   clock,
		logger:  logger,
		metrics: m,
		tracer:  tracer,
	}
}

// SeedRound stores this module's copy of a newly created round's state.
func (s *ScoringService) SeedRound(ctx context.Context, state scorecard.RoundState) error {
	ctx, span := s.tracer.Start(ctx, "SeedRound", trace.WithAttributes(
		attribute.String("round_id", state.RoundID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "SeedRound")
	if err := s.repo.SeedRoundState(ctx, &state); err != nil {
		s.metrics.RecordOperationFailure(ctx, "SeedRound")
		span.RecordError(err)
		return fmt.Errorf("SeedRound: %w", err)
	}

	s.logger.InfoContext(ctx, "Round state seeded",
		attr.RoundID("round_id", state.RoundID),
		attr.Int("golfers", len(state.Golfers)),
	)
	s.metrics.RecordOperationSuccess(ctx, "SeedRound")
	return nil
}

// GetStandings fetches the latest computed snapshot.
func (s *ScoringService) GetStandings(ctx context.Context, roundID sharedtypes.RoundID) (*scorecard.Results, error) {
	return s.repo.GetStandings(ctx, roundID)
}

// mutate runs one ledger mutation end to end: load, rehydrate, apply,
// recompute, persist. Domain rejections come back as a failure payload with
// the ledger untouched; storage problems as an error.
func (s *ScoringService) mutate(ctx context.Context, operation string, roundID sharedtypes.RoundID, apply func(*scorecard.RoundState) error) (StandingsOperationResult, error) {
	ctx, span := s.tracer.Start(ctx, operation, trace.WithAttributes(
		attribute.String("round_id", roundID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operation)
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operation, time.Since(start))
	}()

	fail := func(reason string) StandingsOperationResult {
		s.logger.WarnContext(ctx, "Rejected score mutation",
			attr.RoundID("round_id", roundID),
			attr.String("operation", operation),
			attr.String("reason", reason),
		)
		s.metrics.RecordOperationFailure(ctx, operation)
		return results.FailureResult[scoringevents.StandingsUpdatedPayloadV1](scoringevents.ScoreRejectedPayloadV1{
			RoundID: roundID,
			Reason:  reason,
		})
	}

	record, err := s.repo.GetRoundState(ctx, roundID)
	if err != nil {
		if errors.Is(err, scoringdb.ErrRoundStateNotFound) {
			return fail(fmt.Sprintf("unknown round %s", roundID)), nil
		}
		s.metrics.RecordOperationFailure(ctx, operation)
		span.RecordError(err)
		return StandingsOperationResult{}, fmt.Errorf("%s: %w", operation, err)
	}
	if record.Finalized() {
		return fail(ErrRoundFinalized.Error()), nil
	}

	state := record.State
	if err := state.Rehydrate(); err != nil {
		s.metrics.RecordOperationFailure(ctx, operation)
		span.RecordError(err)
		return StandingsOperationResult{}, fmt.Errorf("%s: corrupt round state: %w", operation, err)
	}

	if err := apply(state); err != nil {
		return fail(err.Error()), nil
	}

	computed, err := state.Compute()
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, operation)
		span.RecordError(err)
		return StandingsOperationResult{}, fmt.Errorf("%s: %w", operation, err)
	}

	if err := s.repo.SaveRoundState(ctx, state); err != nil {
		s.metrics.RecordOperationFailure(ctx, operation)
		span.RecordError(err)
		return StandingsOperationResult{}, fmt.Errorf("%s: %w", operation, err)
	}
	if err := s.repo.SaveStandings(ctx, roundID, computed); err != nil {
		s.metrics.RecordOperationFailure(ctx, operation)
		span.RecordError(err)
		return StandingsOperationResult{}, fmt.Errorf("%s: %w", operation, err)
	}

	s.metrics.RecordOperationSuccess(ctx, operation)
	return results.SuccessResult[scoringevents.StandingsUpdatedPayloadV1, scoringevents.ScoreRejectedPayloadV1](scoringevents.StandingsUpdatedPayloadV1{
		RoundID: roundID,
		Results: *computed,
	}), nil
}
