package leaderboarddb

import (
	"context"

	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// Repository is the leaderboard storage surface.
type Repository interface {
	// RecordTrendPoint stores one golfer's result for one round. It reports
	// false when that round was already folded for the golfer.
	RecordTrendPoint(ctx context.Context, point *TrendPoint) (bool, error)
	GetEntry(ctx context.Context, golferID sharedtypes.GolferID) (*Entry, error)
	UpsertEntry(ctx context.Context, entry *Entry) error
	ListEntries(ctx context.Context) ([]Entry, error)
	ListTrend(ctx context.Context, golferID sharedtypes.GolferID) ([]TrendPoint, error)
}
