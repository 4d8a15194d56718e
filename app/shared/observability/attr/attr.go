// Package attr provides slog attribute constructors with consistent keys so
// log fields stay queryable across modules.
package attr

import (
	"context"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

func Int64(key string, value int64) slog.Attr {
	return slog.Int64(key, value)
}

func Float(key string, value float64) slog.Attr {
	return slog.Float64(key, value)
}

func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

func Any(key string, value interface{}) slog.Attr {
	return slog.Any(key, value)
}

func Time(key string, value time.Time) slog.Attr {
	return slog.Time(key, value)
}

func Duration(key string, value time.Duration) slog.Attr {
	return slog.Duration(key, value)
}

// Error logs an error under the fixed "error" key; nil is logged as "".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func TournamentID(key string, id sharedtypes.TournamentID) slog.Attr {
	return slog.String(key, id.String())
}

func CompetitorID(key string, id sharedtypes.CompetitorID) slog.Attr {
	return slog.String(key, id.String())
}

func CategoryID(key string, id sharedtypes.CategoryID) slog.Attr {
	return slog.String(key, id.String())
}

func GroupID(key string, id sharedtypes.GroupID) slog.Attr {
	return slog.String(key, id.String())
}

func UUIDValue(key string, id uuid.UUID) slog.Attr {
	return slog.String(key, id.String())
}

// correlationIDKey carries the correlation id through context between the
// router middleware and service-layer logging.
type correlationIDKey struct{}

// WithCorrelationID stores a correlation id on the context.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// ExtractCorrelationID logs the correlation id previously stored on the
// context, or an empty value when none is present.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return slog.String("correlation_id", id)
	}
	return slog.String("correlation_id", "")
}

// CorrelationIDFromMsg logs the watermill correlation id of a message.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	return slog.String("correlation_id", middleware.MessageCorrelationID(msg))
}
