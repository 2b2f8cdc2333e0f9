// Package roundhandlers maps round topics onto service operations.
package roundhandlers

import (
	"context"
	"fmt"
	"log/slog"

	roundservice "github.com/Black-And-White-Club/fairway-bot/app/modules/round/application"
	roundevents "github.com/Black-And-White-Club/fairway-bot/app/modules/round/domain/events"
	scoringevents "github.com/Black-And-White-Club/fairway-bot/app/modules/scoring/domain/events"
	"github.com/Black-And-White-Club/fairway-bot/internal/handlerwrapper"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability/attr"
)

// Handlers is the round module's handler surface.
type Handlers interface {
	HandleCreateRoundRequest(ctx context.Context, payload *roundevents.RoundCreateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleScorecardImportRequest(ctx context.Context, payload *roundevents.RoundScorecardImportRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleGolferAddRequest(ctx context.Context, payload *roundevents.RoundGolferAddRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleCancelRequest(ctx context.Context, payload *roundevents.RoundCancelRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRoundStartDue(ctx context.Context, payload *roundevents.RoundStartDuePayloadV1) ([]handlerwrapper.Result, error)
	HandleRoundFinalized(ctx context.Context, payload *scoringevents.FinalizedPayloadV1) ([]handlerwrapper.Result, error)
}

// RoundHandlers handles round lifecycle events.
type RoundHandlers struct {
	service roundservice.Service
	logger  *slog.Logger
}

var _ Handlers = (*RoundHandlers)(nil)

// NewRoundHandlers creates a new RoundHandlers.
func NewRoundHandlers(service roundservice.Service, logger *slog.Logger) *RoundHandlers {
	return &RoundHandlers{service: service, logger: logger}
}

// HandleCreateRoundRequest sets up a round and reports the outcome.
func (h *RoundHandlers) HandleCreateRoundRequest(ctx context.Context, payload *roundevents.RoundCreateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	h.logger.InfoContext(ctx, "Received round create request",
		attr.String("course_id", payload.CourseID),
		attr.String("format", string(payload.Format)),
	)

	result, err := h.service.CreateRound(ctx, *payload)
	if err != nil {
		return nil, fmt.Errorf("failed to handle round create request: %w", err)
	}

	if result.Failure != nil {
		return []handlerwrapper.Result{{Topic: roundevents.RoundCreateFailedV1, Payload: result.Failure}}, nil
	}
	return []handlerwrapper.Result{{Topic: roundevents.RoundCreatedV1, Payload: result.Success}}, nil
}

// HandleScorecardImportRequest parses an uploaded scorecard. The parsed batch
// goes out for the scoring module to apply.
func (h *RoundHandlers) HandleScorecardImportRequest(ctx context.Context, payload *roundevents.RoundScorecardImportRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	h.logger.InfoContext(ctx, "Received scorecard import request",
		attr.RoundID("round_id", payload.RoundID),
		attr.String("filename", payload.Filename),
	)

	result, err := h.service.ImportScorecard(ctx, *payload)
	if err != nil {
		return nil, fmt.Errorf("failed to handle scorecard import request: %w", err)
	}

	if result.Failure != nil {
		return []handlerwrapper.Result{{Topic: roundevents.RoundScorecardImportFailedV1, Payload: result.Failure}}, nil
	}
	return []handlerwrapper.Result{{Topic: roundevents.RoundScorecardImportedV1, Payload: result.Success}}, nil
}

// HandleGolferAddRequest extends the roster of a round that has not started.
func (h *RoundHandlers) HandleGolferAddRequest(ctx context.Context, payload *roundevents.RoundGolferAddRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	h.logger.InfoContext(ctx, "Received golfer add request",
		attr.RoundID("round_id", payload.RoundID),
		attr.String("golfer_id", string(payload.Golfer.GolferID)),
	)

	result, err := h.service.AddGolfer(ctx, *payload)
	if err != nil {
		return nil, fmt.Errorf("failed to handle golfer add request: %w", err)
	}

	if result.Failure != nil {
		return []handlerwrapper.Result{{Topic: roundevents.RoundGolferAddFailedV1, Payload: result.Failure}}, nil
	}
	return []handlerwrapper.Result{{Topic: roundevents.RoundGolferAddedV1, Payload: result.Success}}, nil
}

// HandleCancelRequest calls a round off.
func (h *RoundHandlers) HandleCancelRequest(ctx context.Context, payload *roundevents.RoundCancelRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	h.logger.InfoContext(ctx, "Received round cancel request",
		attr.RoundID("round_id", payload.RoundID),
	)

	result, err := h.service.CancelRound(ctx, *payload)
	if err != nil {
		return nil, fmt.Errorf("failed to handle round cancel request: %w", err)
	}

	if result.Failure != nil {
		return []handlerwrapper.Result{{Topic: roundevents.RoundCancelFailedV1, Payload: result.Failure}}, nil
	}
	return []handlerwrapper.Result{{Topic: roundevents.RoundCancelledV1, Payload: result.Success}}, nil
}

// HandleRoundStartDue flips the round to in progress at its tee time.
func (h *RoundHandlers) HandleRoundStartDue(ctx context.Context, payload *roundevents.RoundStartDuePayloadV1) ([]handlerwrapper.Result, error) {
	if err := h.service.StartRound(ctx, payload.RoundID); err != nil {
		return nil, fmt.Errorf("failed to start round %s: %w", payload.RoundID, err)
	}
	return nil, nil
}

// HandleRoundFinalized mirrors the scoring module's lock into the round's
// status.
func (h *RoundHandlers) HandleRoundFinalized(ctx context.Context, payload *scoringevents.FinalizedPayloadV1) ([]handlerwrapper.Result, error) {
	if err := h.service.FinalizeRound(ctx, payload.RoundID); err != nil {
		return nil, fmt.Errorf("failed to finalize round %s: %w", payload.RoundID, err)
	}
	return nil, nil
}
