package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/roundtable-hub/roundtable/internal/usecase/notification"
)

// LogNotifier is a Notifier that records dispatches in the application log.
// Rendering and delivery (email templates, SMTP) live in a separate worker
// that consumes these records; the engine itself never blocks on delivery.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the notification. It never returns an error: dispatch failures
// must not roll back the operation that triggered them.
func (n *LogNotifier) Notify(_ context.Context, kind notification.Kind, recipient string, payload map[string]string) {
	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.String("recipient", recipient),
	}
	for k, v := range payload {
		fields = append(fields, zap.String(k, v))
	}
	n.logger.Info("notification dispatched", fields...)
}
