// Package rounddb stores rounds in Postgres via bun.
package rounddb

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

// ErrRoundNotFound marks a lookup for an unknown round ID.
var ErrRoundNotFound = errors.New("round not found")

// RoundDBImpl is the bun-backed Repository.
type RoundDBImpl struct {
	DB *bun.DB
}

var _ Repository = (*RoundDBImpl)(nil)

func (db *RoundDBImpl) CreateRound(ctx context.Context, round *Round) error {
	now := time.Now().UTC()
	round.CreatedAt = now
	round.UpdatedAt = now
	if round.Status == "" {
		round.Status = StatusScheduled
	}

	_, err := db.DB.NewInsert().Model(round).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert round %s: %w", round.ID, err)
	}
	return nil
}

func (db *RoundDBImpl) GetRound(ctx context.Context, id sharedtypes.RoundID) (*Round, error) {
	var round Round
	err := db.DB.NewSelect().
		Model(&round).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrRoundNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch round %s: %w", id, err)
	}
	return &round, nil
}

func (db *RoundDBImpl) UpdateStatus(ctx context.Context, id sharedtypes.RoundID, status string) error {
	res, err := db.DB.NewUpdate().
		Model((*Round)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update status for round %s: %w", id, err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("%w: %s", ErrRoundNotFound, id)
	}
	return nil
}

func (db *RoundDBImpl) UpdateState(ctx context.Context, id sharedtypes.RoundID, state *scorecard.RoundState) error {
	res, err := db.DB.NewUpdate().
		Model((*Round)(nil)).
		Set("state = ?", state).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update state for round %s: %w", id, err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("%w: %s", ErrRoundNotFound, id)
	}
	return nil
}

func (db *RoundDBImpl) ListScheduledBefore(ctx context.Context, cutoff time.Time) ([]Round, error) {
	var rounds []Round
	err := db.DB.NewSelect().
		Model(&rounds).
		Where("status = ?", StatusScheduled).
		Where("tee_time <= ?", cutoff).
		Order("tee_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled rounds: %w", err)
	}
	return rounds, nil
}
