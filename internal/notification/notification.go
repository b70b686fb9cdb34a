package notification

import (
	"context"
	"log/slog"
)

// Event describes one recorded ledger event worth telling downstream
// systems about (statements, alerting, a future notification service).
type Event struct {
	Kind          string
	AccountNumber string
	TransactionID string
	Detail        string
}

// Notifier delivers ledger events to downstream systems.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// LoggerNotifier is a stub implementation that writes events to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Notify writes the event to the structured logger.
func (n *LoggerNotifier) Notify(_ context.Context, event Event) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("ledger event",
		"kind", event.Kind,
		"account", event.AccountNumber,
		"transaction_id", event.TransactionID,
		"detail", event.Detail,
	)
	return nil
}
