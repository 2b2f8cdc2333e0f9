// Package leaderboarddb stores golfer aggregates and trend points in
// Postgres via bun.
package leaderboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// ErrEntryNotFound marks a lookup for a golfer with no folded rounds.
var ErrEntryNotFound = errors.New("leaderboard entry not found")

// LeaderboardDBImpl is the bun-backed Repository.
type LeaderboardDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*LeaderboardDBImpl)(nil)

func (db *LeaderboardDBImpl) RecordTrendPoint(ctx context.Context, point *TrendPoint) (bool, error) {
	res, err := db.DB.NewInsert().
		Model(point).
		On("CONFLICT (golfer_id, round_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to record trend point for %s: %w", point.GolferID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read trend insert result: %w", err)
	}
	return rows > 0, nil
}

func (db *LeaderboardDBImpl) GetEntry(ctx context.Context, golferID sharedtypes.GolferID) (*Entry, error) {
	var entry Entry
	err := db.DB.NewSelect().
		Model(&entry).
		Where("golfer_id = ?", golferID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, golferID)
		}
		return nil, fmt.Errorf("failed to fetch entry %s: %w", golferID, err)
	}
	return &entry, nil
}

func (db *LeaderboardDBImpl) UpsertEntry(ctx context.Context, entry *Entry) error {
	entry.UpdatedAt = time.Now().UTC()
	_, err := db.DB.NewInsert().
		Model(entry).
		On("CONFLICT (golfer_id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("rounds_played = EXCLUDED.rounds_played").
		Set("total_to_par = EXCLUDED.total_to_par").
		Set("best_to_par = EXCLUDED.best_to_par").
		Set("stableford_points = EXCLUDED.stableford_points").
		Set("match_wins = EXCLUDED.match_wins").
		Set("last_played = EXCLUDED.last_played").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert entry %s: %w", entry.GolferID, err)
	}
	return nil
}

func (db *LeaderboardDBImpl) ListEntries(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := db.DB.NewSelect().
		Model(&entries).
		Order("total_to_par ASC", "rounds_played DESC", "golfer_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard entries: %w", err)
	}
	return entries, nil
}

func (db *LeaderboardDBImpl) ListTrend(ctx context.Context, golferID sharedtypes.GolferID) ([]TrendPoint, error) {
	var points []TrendPoint
	err := db.DB.NewSelect().
		Model(&points).
		Where("golfer_id = ?", golferID).
		Order("played_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trend for %s: %w", golferID, err)
	}
	return points, nil
}
