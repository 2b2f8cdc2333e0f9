// Package attr provides slog attribute constructors shared across modules so
// log fields keep consistent names and types.
package attr

import (
	"context"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	sharedtypes "github.com/Black-And-White-Club/fairway-bot/app/shared/types"
)

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Time(key string, value time.Time) slog.Attr { return slog.Time(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Error(err error) slog.Attr { return slog.Any("error", err) }

func RoundID(key string, id sharedtypes.RoundID) slog.Attr {
	return slog.String(key, string(id))
}

func GolferID(key string, id sharedtypes.GolferID) slog.Attr {
	return slog.String(key, string(id))
}

func HoleNumber(key string, hole sharedtypes.HoleNumber) slog.Attr {
	return slog.Int(key, int(hole))
}

// CorrelationIDFromMsg reads the watermill correlation ID off a message.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	return slog.String("correlation_id", msg.Metadata.Get(middleware.CorrelationIDMetadataKey))
}

type correlationIDKey struct{}

// WithCorrelationID stores a correlation ID on the context for downstream logs.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// ExtractCorrelationID reads the correlation ID previously stored on the
// context; the attribute is empty when none was set.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	if v, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return slog.String("correlation_id", v)
	}
	return slog.String("correlation_id", "")
}
