// Package leaderboardservice folds finalized rounds into per-golfer
// aggregates and renders trend charts from them.
package leaderboardservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	leaderboardevents "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/domain/events"
	leaderboarddb "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/infrastructure/repositories"
	scoringevents "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/events"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/metrics"
)

// LeaderboardService implements Service.
type LeaderboardService struct {
	repo    leaderboarddb.Repository
	logger  *slog.Logger
	metrics metrics.OperationMetrics
	tracer  trace.Tracer
}

var _ Service = (*LeaderboardService)(nil)

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(repo leaderboarddb.Repository, logger *slog.Logger, m metrics.OperationMetrics, tracer trace.Tracer) *LeaderboardService {
	return &LeaderboardService{
		repo:    repo,
		logger:  logger,
		metrics: m,
		tracer:  tracer,
	}
}

// ProcessRoundFinalized folds each golfer's to-par result into their running
// aggregate. The trend table's uniqueness makes redelivered events no-ops.
func (s *LeaderboardService) ProcessRoundFinalized(ctx context.Context, payload scoringevents.FinalizedPayloadV1) (*leaderboardevents.LeaderboardUpdatedPayloadV1, error) {
	ctx, span := s.tracer.Start(ctx, "ProcessRoundFinalized", trace.WithAttributes(
		attribute.String("round_id", payload.RoundID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "ProcessRoundFinalized")
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "ProcessRoundFinalized", time.Since(start))
	}()

	names := make(map[sharedtypes.GolferID]string, len(payload.Golfers))
	for _, g := range payload.Golfers {
		names[g.ID] = g.Name
	}

	winners := matchWinners(payload.Results)
	folded := 0
	for _, line := range payload.Results.StrokePlay {
		if line.HolesPlayed == 0 {
			continue
		}

		toPar := effectiveToPar(line)
		applied, err := s.repo.RecordTrendPoint(ctx, &leaderboarddb.TrendPoint{
			GolferID: line.GolferID,
			RoundID:  payload.RoundID,
			PlayedAt: payload.FinalizedAt,
			ToPar:    toPar,
		})
		if err != nil {
			s.metrics.RecordOperationFailure(ctx, "ProcessRoundFinalized")
			span.RecordError(err)
			return nil, fmt.Errorf("ProcessRoundFinalized: %w", err)
		}
		if !applied {
			continue
		}

		stats := roundStats{
			toPar:    toPar,
			matchWin: winners[line.GolferID],
		}
		if tally, ok := payload.Results.Stableford[line.GolferID]; ok {
			stats.stableford = tally.Total
		}
		if err := s.foldEntry(ctx, line.GolferID, names[line.GolferID], stats, payload.FinalizedAt); err != nil {
			s.metrics.RecordOperationFailure(ctx, "ProcessRoundFinalized")
			span.RecordError(err)
			return nil, fmt.Errorf("ProcessRoundFinalized: %w", err)
		}
		folded++
	}

	if folded == 0 {
		s.logger.InfoContext(ctx, "Round already folded into leaderboard",
			attr.RoundID("round_id", payload.RoundID),
		)
		s.metrics.RecordOperationSuccess(ctx, "ProcessRoundFinalized")
		return nil, nil
	}

	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "ProcessRoundFinalized")
		span.RecordError(err)
		return nil, fmt.Errorf("ProcessRoundFinalized: %w", err)
	}

	views := make([]leaderboardevents.EntryView, len(entries))
	for i, e := range entries {
		views[i] = leaderboardevents.EntryView{
			GolferID:         e.GolferID,
			Name:             e.Name,
			RoundsPlayed:     e.RoundsPlayed,
			TotalToPar:       e.TotalToPar,
			AvgToPar:         e.AvgToPar(),
			BestToPar:        e.BestToPar,
			StablefordPoints: e.StablefordPoints,
			MatchWins:        e.MatchWins,
			LastPlayed:       e.LastPlayed,
		}
	}

	s.logger.InfoContext(ctx, "Leaderboard updated",
		attr.RoundID("round_id", payload.RoundID),
		attr.Int("golfers_folded", folded),
	)
	s.metrics.RecordOperationSuccess(ctx, "ProcessRoundFinalized")
	return &leaderboardevents.LeaderboardUpdatedPayloadV1{
		RoundID: payload.RoundID,
		Entries: views,
	}, nil
}

// roundStats is one golfer's foldable figures from a finalized round.
type roundStats struct {
	toPar      int
	stableford int
	matchWin   bool
}

func (s *LeaderboardService) foldEntry(ctx context.Context, golferID sharedtypes.GolferID, name string, stats roundStats, playedAt time.Time) error {
	entry, err := s.repo.GetEntry(ctx, golferID)
	if err != nil {
		if !errors.Is(err, leaderboarddb.ErrEntryNotFound) {
			return err
		}
		entry = &leaderboarddb.Entry{GolferID: golferID}
	}

	if name != "" {
		entry.Name = name
	}
	entry.RoundsPlayed++
	entry.TotalToPar += stats.toPar
	entry.StablefordPoints += stats.stableford
	if stats.matchWin {
		entry.MatchWins++
	}
	if entry.BestToPar == nil || stats.toPar < *entry.BestToPar {
		best := stats.toPar
		entry.BestToPar = &best
	}
	if playedAt.After(entry.LastPlayed) {
		entry.LastPlayed = playedAt
	}

	return s.repo.UpsertEntry(ctx, entry)
}

// matchWinners maps golfers to whether they won their decided head-to-head
// match, main game only. Presses and team games do not count here.
func matchWinners(results scorecard.Results) map[sharedtypes.GolferID]bool {
	winners := make(map[sharedtypes.GolferID]bool)
	mp := results.MatchPlay
	if mp == nil || !mp.Book.Main.Decided {
		return winners
	}
	if mp.Book.Main.Winner == sharedtypes.TeamSideA {
		winners[mp.GolferA] = true
	} else {
		winners[mp.GolferB] = true
	}
	return winners
}

// GetLeaderboard lists aggregates best first.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context) ([]leaderboarddb.Entry, error) {
	return s.repo.ListEntries(ctx)
}

// GetTrend lists one golfer's per-round results oldest first.
func (s *LeaderboardService) GetTrend(ctx context.Context, golferID sharedtypes.GolferID) ([]leaderboarddb.TrendPoint, error) {
	return s.repo.ListTrend(ctx, golferID)
}

// RenderTrendChart renders one golfer's to-par trend as a PNG.
func (s *LeaderboardService) RenderTrendChart(ctx context.Context, golferID sharedtypes.GolferID) ([]byte, error) {
	points, err := s.repo.ListTrend(ctx, golferID)
	if err != nil {
		return nil, err
	}
	return GenerateTrendChart(points, DefaultPalette)
}

// effectiveToPar prefers the net figure when the golfer played with a course
// handicap. Net and gross differ by the strokes received on played holes.
func effectiveToPar(line scorecard.StrokePlayLine) int {
	if line.NetTotal == nil {
		return line.ToPar
	}
	return line.ToPar - int(line.GrossTotal-*line.NetTotal)
}
