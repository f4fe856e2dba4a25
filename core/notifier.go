package core

import (
	"context"
	"log/slog"
)

// LogNotifier writes deliveries to a structured logger instead of a real
// SMS/email gateway. Development and test use only: the message carries the
// challenge secret.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier wraps a logger; nil selects slog.Default().
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Deliver(ctx context.Context, destination, message string) error {
	n.log.InfoContext(ctx, "challenge delivery", "destination", destination, "message", message)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
