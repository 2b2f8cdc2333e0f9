package leaderboardservice

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	leaderboarddb "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/infrastructure/repositories"
	scoringevents "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/events"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/match"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/stableford"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/metrics"
)

func newTestService(repo *FakeLeaderboardRepository) *LeaderboardService {
	return NewLeaderboardService(
		repo,
		slog.New(slog.DiscardHandler),
		metrics.NoOp{},
		noop.NewTracerProvider().Tracer("test"),
	)
}

func strokesPtr(v sharedtypes.Strokes) *sharedtypes.Strokes { return &v }

func finalizedPayload(roundID sharedtypes.RoundID, at time.Time) scoringevents.FinalizedPayloadV1 {
	return scoringevents.FinalizedPayloadV1{
		RoundID:     roundID,
		FinalizedAt: at,
		Golfers: []sharedtypes.Golfer{
			{ID: "amy", Name: "Amy"},
			{ID: "ben", Name: "Ben"},
		},
		Results: scorecard.Results{
			RoundID: roundID,
			StrokePlay: []scorecard.StrokePlayLine{
				// Amy: gross 40 on par 36 with 4 strokes received, net even.
				{GolferID: "amy", HolesPlayed: 9, GrossTotal: 40, NetTotal: strokesPtr(36), ToPar: 4},
				// Ben: no handicap, 3 over gross.
				{GolferID: "ben", HolesPlayed: 9, GrossTotal: 39, ToPar: 3},
			},
		},
	}
}

func TestProcessRoundFinalized(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 6, 6, 18, 0, 0, 0, time.UTC)

	t.Run("folds net when a handicap was in play", func(t *testing.T) {
		repo := NewFakeLeaderboardRepository()
		svc := newTestService(repo)

		updated, err := svc.ProcessRoundFinalized(ctx, finalizedPayload("r-1", day))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated == nil {
			t.Fatal("expected an updated payload")
		}
		if len(updated.Entries) != 2 {
			t.Fatalf("entries = %d, want 2", len(updated.Entries))
		}

		amy := repo.Entries["amy"]
		if amy == nil || amy.TotalToPar != 0 {
			t.Errorf("amy total to par = %+v, want 0 (net)", amy)
		}
		ben := repo.Entries["ben"]
		if ben == nil || ben.TotalToPar != 3 {
			t.Errorf("ben total to par = %+v, want 3 (gross)", ben)
		}
	})

	t.Run("aggregates across rounds and tracks the best", func(t *testing.T) {
		repo := NewFakeLeaderboardRepository()
		svc := newTestService(repo)

		if _, err := svc.ProcessRoundFinalized(ctx, finalizedPayload("r-1", day)); err != nil {
			t.Fatal(err)
		}

		second := finalizedPayload("r-2", day.Add(7*24*time.Hour))
		second.Results.StrokePlay[1].ToPar = -2 // ben's career round
		second.Results.StrokePlay[1].GrossTotal = 34
		if _, err := svc.ProcessRoundFinalized(ctx, second); err != nil {
			t.Fatal(err)
		}

		ben := repo.Entries["ben"]
		if ben.RoundsPlayed != 2 {
			t.Errorf("ben rounds = %d, want 2", ben.RoundsPlayed)
		}
		if ben.TotalToPar != 1 {
			t.Errorf("ben total = %d, want 1", ben.TotalToPar)
		}
		if ben.BestToPar == nil || *ben.BestToPar != -2 {
			t.Errorf("ben best = %v, want -2", ben.BestToPar)
		}
		if !ben.LastPlayed.Equal(day.Add(7 * 24 * time.Hour)) {
			t.Errorf("ben last played = %v", ben.LastPlayed)
		}
	})

	t.Run("redelivered event is a no-op", func(t *testing.T) {
		repo := NewFakeLeaderboardRepository()
		svc := newTestService(repo)

		if _, err := svc.ProcessRoundFinalized(ctx, finalizedPayload("r-1", day)); err != nil {
			t.Fatal(err)
		}
		updated, err := svc.ProcessRoundFinalized(ctx, finalizedPayload("r-1", day))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated != nil {
			t.Error("replay must not publish a second update")
		}
		if amy := repo.Entries["amy"]; amy.RoundsPlayed != 1 {
			t.Errorf("amy rounds after replay = %d, want 1", amy.RoundsPlayed)
		}
	})

	t.Run("folds stableford points and the match win", func(t *testing.T) {
		repo := NewFakeLeaderboardRepository()
		svc := newTestService(repo)

		payload := finalizedPayload("r-1", day)
		payload.Results.Stableford = map[sharedtypes.GolferID]stableford.Tally{
			"amy": {Total: 18, Quota: 16, Delta: 2},
			"ben": {Total: 15, Quota: 18, Delta: -3},
		}
		payload.Results.MatchPlay = &scorecard.MatchPlayStanding{
			GolferA: "amy",
			GolferB: "ben",
			Book: match.BookStatus{
				Main: match.Status{Decided: true, Winner: sharedtypes.TeamSideA, Score: "3&2"},
			},
		}

		if _, err := svc.ProcessRoundFinalized(ctx, payload); err != nil {
			t.Fatal(err)
		}

		amy := repo.Entries["amy"]
		if amy.StablefordPoints != 18 {
			t.Errorf("amy stableford = %d, want 18", amy.StablefordPoints)
		}
		if amy.MatchWins != 1 {
			t.Errorf("amy match wins = %d, want 1", amy.MatchWins)
		}
		ben := repo.Entries["ben"]
		if ben.StablefordPoints != 15 {
			t.Errorf("ben stableford = %d, want 15", ben.StablefordPoints)
		}
		if ben.MatchWins != 0 {
			t.Errorf("ben match wins = %d, want 0", ben.MatchWins)
		}
	})

	t.Run("undecided match credits nobody", func(t *testing.T) {
		repo := NewFakeLeaderboardRepository()
		svc := newTestService(repo)

		payload := finalizedPayload("r-1", day)
		payload.Results.MatchPlay = &scorecard.MatchPlayStanding{
			GolferA: "amy",
			GolferB: "ben",
			Book: match.BookStatus{
				Main: match.Status{AllSquareFinal: true},
			},
		}

		if _, err := svc.ProcessRoundFinalized(ctx, payload); err != nil {
			t.Fatal(err)
		}
		if repo.Entries["amy"].MatchWins != 0 || repo.Entries["ben"].MatchWins != 0 {
			t.Error("all-square match must not credit a win")
		}
	})

	t.Run("golfer with no scores is skipped", func(t *testing.T) {
		repo := NewFakeLeaderboardRepository()
		svc := newTestService(repo)

		payload := finalizedPayload("r-1", day)
		payload.Results.StrokePlay[0].HolesPlayed = 0
		if _, err := svc.ProcessRoundFinalized(ctx, payload); err != nil {
			t.Fatal(err)
		}
		if _, ok := repo.Entries["amy"]; ok {
			t.Error("amy should not be folded without scores")
		}
	})
}

func TestGenerateTrendChart(t *testing.T) {
	pngHeader := []byte{0x89, 'P', 'N', 'G'}

	points := []leaderboarddb.TrendPoint{
		{GolferID: "amy", RoundID: "r-1", PlayedAt: time.Now().Add(-48 * time.Hour), ToPar: 4},
		{GolferID: "amy", RoundID: "r-2", PlayedAt: time.Now().Add(-24 * time.Hour), ToPar: 1},
		{GolferID: "amy", RoundID: "r-3", PlayedAt: time.Now(), ToPar: -1},
	}

	png, err := GenerateTrendChart(points, DefaultPalette)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Error("output is not a PNG")
	}

	empty, err := GenerateTrendChart(nil, DefaultPalette)
	if err != nil {
		t.Fatalf("render placeholder: %v", err)
	}
	if !bytes.HasPrefix(empty, pngHeader) {
		t.Error("placeholder is not a PNG")
	}
}
