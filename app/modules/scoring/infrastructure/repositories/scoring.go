// Package scoringdb stores scorecard state and standings in Postgres via bun.
package scoringdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// ErrRoundStateNotFound marks a lookup for a round scoring never saw.
var ErrRoundStateNotFound = errors.New("round state not found")

// ErrStandingsNotFound marks a standings lookup before any score arrived.
var ErrStandingsNotFound = errors.New("standings not found")

// ScoringDBImpl is the bun-backed Repository.
type ScoringDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*ScoringDBImpl)(nil)

// SeedRoundState stores the initial state copy. Replays of the same
// round-created event overwrite rather than error so redelivery stays safe.
func (db *ScoringDBImpl) SeedRoundState(ctx context.Context, state *scorecard.RoundState) error {
	now := time.Now().UTC()
	record := &RoundStateRecord{
		RoundID:   state.RoundID,
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := db.DB.NewInsert().
		Model(record).
		On("CONFLICT (round_id) DO UPDATE").
		Set("state = EXCLUDED.state").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed round state %s: %w", state.RoundID, err)
	}
	return nil
}

func (db *ScoringDBImpl) GetRoundState(ctx context.Context, roundID sharedtypes.RoundID) (*RoundStateRecord, error) {
	var record RoundStateRecord
	err := db.DB.NewSelect().
		Model(&record).
		Where("round_id = ?", roundID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrRoundStateNotFound, roundID)
		}
		return nil, fmt.Errorf("failed to fetch round state %s: %w", roundID, err)
	}
	return &record, nil
}

func (db *ScoringDBImpl) SaveRoundState(ctx context.Context, state *scorecard.RoundState) error {
	res, err := db.DB.NewUpdate().
		Model((*RoundStateRecord)(nil)).
		Set("state = ?", state).
		Set("updated_at = ?", time.Now().UTC()).
		Where("round_id = ?", state.RoundID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save round state %s: %w", state.RoundID, err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("%w: %s", ErrRoundStateNotFound, state.RoundID)
	}
	return nil
}

func (db *ScoringDBImpl) MarkFinalized(ctx context.Context, roundID sharedtypes.RoundID, at time.Time) error {
	res, err := db.DB.NewUpdate().
		Model((*RoundStateRecord)(nil)).
		Set("finalized_at = ?", at.UTC()).
		Set("updated_at = ?", time.Now().UTC()).
		Where("round_id = ?", roundID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to finalize round %s: %w", roundID, err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("%w: %s", ErrRoundStateNotFound, roundID)
	}
	return nil
}

func (db *ScoringDBImpl) SaveStandings(ctx context.Context, roundID sharedtypes.RoundID, results *scorecard.Results) error {
	record := &StandingsRecord{
		RoundID:   roundID,
		Results:   results,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := db.DB.NewInsert().
		Model(record).
		On("CONFLICT (round_id) DO UPDATE").
		Set("results = EXCLUDED.results").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save standings %s: %w", roundID, err)
	}
	return nil
}

func (db *ScoringDBImpl) GetStandings(ctx context.Context, roundID sharedtypes.RoundID) (*scorecard.Results, error) {
	var record StandingsRecord
	err := db.DB.NewSelect().
		Model(&record).
		Where("round_id = ?", roundID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrStandingsNotFound, roundID)
		}
		return nil, fmt.Errorf("failed to fetch standings %s: %w", roundID, err)
	}
	return record.Results, nil
}
