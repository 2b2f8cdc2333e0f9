// Package scoringhandlers maps scoring topics onto service operations.
package scoringhandlers

import (
	"context"
	"fmt"
	"log/slog"

	roundevents "github.com/Black-And-White-Club/fairway-bot/app/modules/round/domain/events"
	scoringservice "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/application"
	scoringevents "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/events"
	"github.com/Black-And-White-Club/fairway-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/attr"
)

// Handlers is the scoring module's handler surface.
type Handlers interface {
	HandleRoundCreated(ctx context.Context, payload *roundevents.RoundCreatedPayloadV1) ([]handlerwrapper.Result, error)
	HandleGolferAdded(ctx context.Context, payload *roundevents.RoundGolferAddedPayloadV1) ([]handlerwrapper.Result, error)
	HandleScoreSubmitted(ctx context.Context, payload *scoringevents.ScoreSubmittedPayloadV1) ([]handlerwrapper.Result, error)
	HandleScoreCleared(ctx context.Context, payload *scoringevents.ScoreClearedPayloadV1) ([]handlerwrapper.Result, error)
	HandlePressStarted(ctx context.Context, payload *scoringevents.PressStartedPayloadV1) ([]handlerwrapper.Result, error)
	HandleScorecardImported(ctx context.Context, payload *roundevents.RoundScorecardImportedPayloadV1) ([]handlerwrapper.Result, error)
	HandleFinalizeRequest(ctx context.Context, payload *scoringevents.FinalizeRequestedPayloadV1) ([]handlerwrapper.Result, error)
}

// ScoringHandlers handles score mutations and finalization.
type ScoringHandlers struct {
	service scoringservice.Service
	logger  *slog.Logger
}

var _ Handlers = (*ScoringHandlers)(nil)

// NewScoringHandlers creates a new ScoringHandlers.
func NewScoringHandlers(service scoringservice.Service, logger *slog.Logger) *ScoringHandlers {
	return &ScoringHandlers{service: service, logger: logger}
}

// HandleRoundCreated seeds this module's copy of the round state.
func (h *ScoringHandlers) HandleRoundCreated(ctx context.Context, payload *roundevents.RoundCreatedPayloadV1) ([]handlerwrapper.Result, error) {
	h.logger.InfoContext(ctx, "Seeding round state from round created event",
		attr.RoundID("round_id", payload.RoundID),
	)
	if err := h.service.SeedRound(ctx, payload.State); err != nil {
		return nil, fmt.Errorf("failed to seed round state: %w", err)
	}
	return nil, nil
}

// HandleGolferAdded reseeds the state copy after a roster change. The round
// module only sends these before tee time, so no recorded scores are lost.
func (h *ScoringHandlers) HandleGolferAdded(ctx context.Context, payload *roundevents.RoundGolferAddedPayloadV1) ([]handlerwrapper.Result, error) {
	h.logger.InfoContext(ctx, "Reseeding round state after roster change",
		attr.RoundID("round_id", payload.RoundID),
	)
	if err := h.service.SeedRound(ctx, payload.State); err != nil {
		return nil, fmt.Errorf("failed to reseed round state: %w", err)
	}
	return nil, nil
}

// standingsResults converts a mutation outcome into its result messages.
func standingsResults(result scoringservice.StandingsOperationResult) []handlerwrapper.Result {
	if result.Failure != nil {
		return []handlerwrapper.Result{{Topic: scoringevents.RoundScoreRejectedV1, Payload: result.Failure}}
	}
	return []handlerwrapper.Result{{Topic: scoringevents.RoundStandingsUpdatedV1, Payload: result.Success}}
}

// HandleScoreSubmitted enters or corrects one gross score.
func (h *ScoringHandlers) HandleScoreSubmitted(ctx context.Context, payload *scoringevents.ScoreSubmittedPayloadV1) ([]handlerwrapper.Result, error) {
	result, err := h.service.RecordScore(ctx, *payload)
	if err != nil {
		return nil, fmt.Errorf("failed to handle score submission: %w", err)
	}
	return standingsResults(result), nil
}

// HandleScoreCleared removes a previously entered score.
func (h *ScoringHandlers) HandleScoreCleared(ctx context.Context, payload *scoringevents.ScoreClearedPayloadV1) ([]handlerwrapper.Result, error) {
	result, err := h.service.ClearScore(ctx, *payload)
	if err != nil {
		return nil, fmt.Errorf("failed to handle score clear: %w", err)
	}
	return standingsResults(result), nil
}

// HandlePressStarted opens a press on a running game.
func (h *ScoringHandlers) HandlePressStarted(ctx context.Context, payload *scoringevents.PressStartedPayloadV1) ([]handlerwrapper.Result, error) {
	result, err := h.service.StartPress(ctx, *payload)
	if err != nil {
		return nil, fmt.Errorf("failed to handle press start: %w", err)
	}
	return standingsResults(result), nil
}

// HandleScorecardImported applies a parsed scorecard batch.
func (h *ScoringHandlers) HandleScorecardImported(ctx context.Context, payload *roundevents.RoundScorecardImportedPayloadV1) ([]handlerwrapper.Result, error) {
	h.logger.InfoContext(ctx, "Applying imported scorecard",
		attr.RoundID("round_id", payload.RoundID),
		attr.Int("scores", len(payload.Scores)),
	)

	result, err := h.service.ApplyImport(ctx, payload.RoundID, payload.Scores)
	if err != nil {
		return nil, fmt.Errorf("failed to apply imported scorecard: %w", err)
	}
	return standingsResults(result), nil
}

// HandleFinalizeRequest locks a round's standings.
func (h *ScoringHandlers) HandleFinalizeRequest(ctx context.Context, payload *scoringevents.FinalizeRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	result, err := h.service.FinalizeRound(ctx, *payload)
	if err != nil {
		return nil, fmt.Errorf("failed to handle finalize request: %w", err)
	}

	if result.Failure != nil {
		return []handlerwrapper.Result{{Topic: scoringevents.RoundFinalizeFailedV1, Payload: result.Failure}}, nil
	}
	return []handlerwrapper.Result{{Topic: scoringevents.RoundFinalizedV1, Payload: result.Success}}, nil
}
