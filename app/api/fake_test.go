package api

import (
	"context"
	"errors"

	courseservice "github.com/Black-And-White-Club/fairway-bot/app/modules/course/application"
	courseevents "github.com/Black-And-White-Club/fairway-bot/app/modules/course/domain/events"
	coursedb "github.com/Black-And-White-Club/fairway-bot/app/modules/course/infrastructure/repositories"
	leaderboardevents "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/domain/events"
	leaderboarddb "github.com/Black-And-White-Club/fairway-bot/app/modules/leaderboard/infrastructure/repositories"
	roundservice "github.com/Black-And-White-Club/fairway-bot/app/modules/round/application"
	roundevents "github.com/Black-And-White-Club/fairway-bot/app/modules/round/domain/events"
	rounddb "github.com/Black-And-White-Club/fairway-bot/app/modules/round/infrastructure/repositories"
	scoringservice "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/application"
	scoringevents "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/events"
	"github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/scorecard"
	scoringdb "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

var errFakeNotWired = errors.New("fake method not wired")

// FakeCourseService is a programmable courseservice.Service.
type FakeCourseService struct {
	ListCoursesFunc func(ctx context.Context) ([]coursedb.Course, error)
}

func (f *FakeCourseService) CreateCourse(ctx context.Context, payload courseevents.CourseCreateRequestedPayloadV1) (courseservice.CourseOperationResult, error) {
	return courseservice.CourseOperationResult{}, errFakeNotWired
}

func (f *FakeCourseService) GetCourse(ctx context.Context, courseID string) (*coursedb.Course, error) {
	return nil, errFakeNotWired
}

func (f *FakeCourseService) ListCourses(ctx context.Context) ([]coursedb.Course, error) {
	if f.ListCoursesFunc != nil {
		return f.ListCoursesFunc(ctx)
	}
	return nil, nil
}

// FakeRoundService is a programmable roundservice.Service.
type FakeRoundService struct {
	GetRoundFunc func(ctx context.Context, roundID sharedtypes.RoundID) (*rounddb.Round, error)
}

func (f *FakeRoundService) CreateRound(ctx context.Context, payload roundevents.RoundCreateRequestedPayloadV1) (roundservice.RoundOperationResult, error) {
	return roundservice.RoundOperationResult{}, errFakeNotWired
}

func (f *FakeRoundService) ImportScorecard(ctx context.Context, payload roundevents.RoundScorecardImportRequestedPayloadV1) (roundservice.ImportOperationResult, error) {
	return roundservice.ImportOperationResult{}, errFakeNotWired
}

func (f *FakeRoundService) AddGolfer(ctx context.Context, payload roundevents.RoundGolferAddRequestedPayloadV1) (roundservice.GolferAddOperationResult, error) {
	return roundservice.GolferAddOperationResult{}, errFakeNotWired
}

func (f *FakeRoundService) CancelRound(ctx context.Context, payload roundevents.RoundCancelRequestedPayloadV1) (roundservice.CancelOperationResult, error) {
	return roundservice.CancelOperationResult{}, errFakeNotWired
}

func (f *FakeRoundService) StartRound(ctx context.Context, roundID sharedtypes.RoundID) error {
	return errFakeNotWired
}

func (f *FakeRoundService) RecoverOverdueRounds(ctx context.Context) error {
	return errFakeNotWired
}

func (f *FakeRoundService) FinalizeRound(ctx context.Context, roundID sharedtypes.RoundID) error {
	return errFakeNotWired
}

func (f *FakeRoundService) GetRound(ctx context.Context, roundID sharedtypes.RoundID) (*rounddb.Round, error) {
	if f.GetRoundFunc != nil {
		return f.GetRoundFunc(ctx, roundID)
	}
	return nil, rounddb.ErrRoundNotFound
}

// FakeScoringService is a programmable scoringservice.Service.
type FakeScoringService struct {
	GetStandingsFunc func(ctx context.Context, roundID sharedtypes.RoundID) (*scorecard.Results, error)
}

func (f *FakeScoringService) SeedRound(ctx context.Context, state scorecard.RoundState) error {
	return errFakeNotWired
}

func (f *FakeScoringService) RecordScore(ctx context.Context, payload scoringevents.ScoreSubmittedPayloadV1) (scoringservice.StandingsOperationResult, error) {
	return scoringservice.StandingsOperationResult{}, errFakeNotWired
}

func (f *FakeScoringService) ClearScore(ctx context.Context, payload scoringevents.ScoreClearedPayloadV1) (scoringservice.StandingsOperationResult, error) {
	return scoringservice.StandingsOperationResult{}, errFakeNotWired
}

func (f *FakeScoringService) StartPress(ctx context.Context, payload scoringevents.PressStartedPayloadV1) (scoringservice.StandingsOperationResult, error) {
	return scoringservice.StandingsOperationResult{}, errFakeNotWired
}

func (f *FakeScoringService) ApplyImport(ctx context.Context, roundID sharedtypes.RoundID, scores []roundevents.ImportedScore) (scoringservice.StandingsOperationResult, error) {
	return scoringservice.StandingsOperationResult{}, errFakeNotWired
}

func (f *FakeScoringService) FinalizeRound(ctx context.Context, payload scoringevents.FinalizeRequestedPayloadV1) (scoringservice.FinalizeOperationResult, error) {
	return scoringservice.FinalizeOperationResult{}, errFakeNotWired
}

func (f *FakeScoringService) GetStandings(ctx context.Context, roundID sharedtypes.RoundID) (*scorecard.Results, error) {
	if f.GetStandingsFunc != nil {
		return f.GetStandingsFunc(ctx, roundID)
	}
	return nil, scoringdb.ErrStandingsNotFound
}

// FakeLeaderboardService is a programmable leaderboardservice.Service.
type FakeLeaderboardService struct {
	GetLeaderboardFunc   func(ctx context.Context) ([]leaderboarddb.Entry, error)
	RenderTrendChartFunc func(ctx context.Context, golferID sharedtypes.GolferID) ([]byte, error)
}

func (f *FakeLeaderboardService) ProcessRoundFinalized(ctx context.Context, payload scoringevents.FinalizedPayloadV1) (*leaderboardevents.LeaderboardUpdatedPayloadV1, error) {
	return nil, errFakeNotWired
}

func (f *FakeLeaderboardService) GetLeaderboard(ctx context.Context) ([]leaderboarddb.Entry, error) {
	if f.GetLeaderboardFunc != nil {
		return f.GetLeaderboardFunc(ctx)
	}
	return nil, nil
}

func (f *FakeLeaderboardService) GetTrend(ctx context.Context, golferID sharedtypes.GolferID) ([]leaderboarddb.TrendPoint, error) {
	return nil, errFakeNotWired
}

func (f *FakeLeaderboardService) RenderTrendChart(ctx context.Context, golferID sharedtypes.GolferID) ([]byte, error) {
	if f.RenderTrendChartFunc != nil {
		return f.RenderTrendChartFunc(ctx, golferID)
	}
	return nil, errFakeNotWired
}
