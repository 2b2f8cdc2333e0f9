package leaderboardservice

import (
	"context"

	leaderboarddb "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

type trendKey struct {
	golfer sharedtypes.GolferID
	round  sharedtypes.RoundID
}

// FakeLeaderboardRepository is a programmable in-memory stub for the
// leaderboarddb.Repository interface.
type FakeLeaderboardRepository struct {
	Entries map[sharedtypes.GolferID]*leaderboarddb.Entry
	Trends  map[trendKey]*leaderboarddb.TrendPoint

	UpsertEntryFunc func(ctx context.Context, entry *leaderboarddb.Entry) error
}

func NewFakeLeaderboardRepository() *FakeLeaderboardRepository {
	return &FakeLeaderboardRepository{
		Entries: map[sharedtypes.GolferID]*leaderboarddb.Entry{},
		Trends:  map[trendKey]*leaderboarddb.TrendPoint{},
	}
}

func (f *FakeLeaderboardRepository) RecordTrendPoint(ctx context.Context, point *leaderboarddb.TrendPoint) (bool, error) {
	key := trendKey{golfer: point.GolferID, round: point.RoundID}
	if _, exists := f.Trends[key]; exists {
		return false, nil
	}
	f.Trends[key] = point
	return true, nil
}

func (f *FakeLeaderboardRepository) GetEntry(ctx context.Context, golferID sharedtypes.GolferID) (*leaderboarddb.Entry, error) {
	entry, ok := f.Entries[golferID]
	if !ok {
		return nil, leaderboarddb.ErrEntryNotFound
	}
	clone := *entry
	return &clone, nil
}

func (f *FakeLeaderboardRepository) UpsertEntry(ctx context.Context, entry *leaderboarddb.Entry) error {
	if f.UpsertEntryFunc != nil {
		return f.UpsertEntryFunc(ctx, entry)
	}
	clone := *entry
	f.Entries[entry.GolferID] = &clone
	return nil
}

func (f *FakeLeaderboardRepository) ListEntries(ctx context.Context) ([]leaderboarddb.Entry, error) {
	out := make([]leaderboarddb.Entry, 0, len(f.Entries))
	for _, e := range f.Entries {
		out = append(out, *e)
	}
	return out, nil
}

func (f *FakeLeaderboardRepository) ListTrend(ctx context.Context, golferID sharedtypes.GolferID) ([]leaderboarddb.TrendPoint, error) {
	out := []leaderboarddb.TrendPoint{}
	for _, p := range f.Trends {
		if p.GolferID == golferID {
			out = append(out, *p)
		}
	}
	return out, nil
}

var _ leaderboarddb.Repository = (*FakeLeaderboardRepository)(nil)
