package messenger

import (
	"context"
	"log/slog"

	"github.com/oekaki/charabot/pkg/logger"
)

// LogMessenger writes outbound messages to the log instead of delivering
// them. Used in development when no push endpoint is configured.
type LogMessenger struct {
	log *slog.Logger
}

// NewLogMessenger creates a log-backed messenger.
func NewLogMessenger(log *slog.Logger) *LogMessenger {
	return &LogMessenger{log: log}
}

func (l *LogMessenger) Send(ctx context.Context, userID string, msgs []Message) error {
	for _, msg := range msgs {
		l.log.InfoContext(ctx, "outbound message", logger.UserID(userID), slog.String("text", msg.Text))
	}
	return nil
}
