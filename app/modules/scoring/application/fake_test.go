package scoringservice

import (
	"context"
	"time"

	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	scoringdb "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

// FakeScoringRepository is a programmable in-memory stub for the
// scoringdb.Repository interface.
type FakeScoringRepository struct {
	trace []string

	States    map[sharedtypes.RoundID]*scoringdb.RoundStateRecord
	Standings map[sharedtypes.RoundID]*scorecard.Results

	SaveRoundStateFunc func(ctx context.Context, state *scorecard.RoundState) error
	SaveStandingsFunc  func(ctx context.Context, roundID sharedtypes.RoundID, results *scorecard.Results) error
}

func NewFakeScoringRepository() *FakeScoringRepository {
	return &FakeScoringRepository{
		trace:     []string{},
		States:    map[sharedtypes.RoundID]*scoringdb.RoundStateRecord{},
		Standings: map[sharedtypes.RoundID]*scorecard.Results{},
	}
}

func (f *FakeScoringRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoringRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeScoringRepository) SeedRoundState(ctx context.Context, state *scorecard.RoundState) error {
	f.record("SeedRoundState")
	f.States[state.RoundID] = &scoringdb.RoundStateRecord{
		RoundID: state.RoundID,
		State:   state,
	}
	return nil
}

func (f *FakeScoringRepository) GetRoundState(ctx context.Context, roundID sharedtypes.RoundID) (*scoringdb.RoundStateRecord, error) {
	f.record("GetRoundState")
	record, ok := f.States[roundID]
	if !ok {
		return nil, scoringdb.ErrRoundStateNotFound
	}
	return record, nil
}

func (f *FakeScoringRepository) SaveRoundState(ctx context.Context, state *scorecard.RoundState) error {
	f.record("SaveRoundState")
	if f.SaveRoundStateFunc != nil {
		return f.SaveRoundStateFunc(ctx, state)
	}
	record, ok := f.States[state.RoundID]
	if !ok {
		return scoringdb.ErrRoundStateNotFound
	}
	record.State = state
	return nil
}

func (f *FakeScoringRepository) MarkFinalized(ctx context.Context, roundID sharedtypes.RoundID, at time.Time) error {
	f.record("MarkFinalized")
	record, ok := f.States[roundID]
	if !ok {
		return scoringdb.ErrRoundStateNotFound
	}
	record.FinalizedAt = &at
	return nil
}

func (f *FakeScoringRepository) SaveStandings(ctx context.Context, roundID sharedtypes.RoundID, results *scorecard.Results) error {
	f.record("SaveStandings")
	if f.SaveStandingsFunc != nil {
		return f.SaveStandingsFunc(ctx, roundID, results)
	}
	f.Standings[roundID] = results
	return nil
}

func (f *FakeScoringRepository) GetStandings(ctx context.Context, roundID sharedtypes.RoundID) (*scorecard.Results, error) {
	f.record("GetStandings")
	results, ok := f.Standings[roundID]
	if !ok {
		return nil, scoringdb.ErrStandingsNotFound
	}
	return results, nil
}

var _ scoringdb.Repository = (*FakeScoringRepository)(nil)
