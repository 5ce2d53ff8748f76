package reminder

import (
	"context"

	"github.com/tomas/studydeck/internal/logger"
)

// LogNotifier writes reminders to the application log. It stands in for a
// push or email channel when none is configured.
type LogNotifier struct{}

func (LogNotifier) SendReminder(ctx context.Context, learnerID int64, username string, dueCount int) error {
	logger.FromContext(ctx).WithFields(map[string]any{
		"learner_id": learnerID,
		"username":   username,
		"due_count":  dueCount,
	}).Info("reminder: items due for review")
	return nil
}
