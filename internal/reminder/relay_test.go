package reminder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tomas/studydeck/internal/models"
	"github.com/tomas/studydeck/internal/reminder"
	"github.com/tomas/studydeck/internal/testutil/mocks"
	"github.com/tomas/studydeck/internal/worker"
)

type recordingNotifier struct {
	calls []models.DueSummary
}

func (n *recordingNotifier) SendReminder(ctx context.Context, learnerID int64, username string, dueCount int) error {
	n.calls = append(n.calls, models.DueSummary{LearnerID: learnerID, Username: username, DueCount: dueCount})
	return nil
}

func TestRunManualCheck_SendsWhenItemsDue(t *testing.T) {
	progress := new(mocks.MockProgressRepository)
	notifier := &recordingNotifier{}
	relay := reminder.NewRelay(progress, worker.NewPool(1, 4), notifier, reminder.Options{})

	progress.On("CountDue", mock.Anything, int64(7), mock.Anything).Return(3, nil)

	err := relay.RunManualCheck(context.Background(), 7, "tomas")
	require.NoError(t, err)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, int64(7), notifier.calls[0].LearnerID)
	assert.Equal(t, 3, notifier.calls[0].DueCount)
}

func TestRunManualCheck_SkipsWhenNothingDue(t *testing.T) {
	progress := new(mocks.MockProgressRepository)
	notifier := &recordingNotifier{}
	relay := reminder.NewRelay(progress, worker.NewPool(1, 4), notifier, reminder.Options{})

	progress.On("CountDue", mock.Anything, int64(7), mock.Anything).Return(0, nil)

	err := relay.RunManualCheck(context.Background(), 7, "tomas")
	require.NoError(t, err)
	assert.Empty(t, notifier.calls)
}

func TestNotifyJob_DeliversSummary(t *testing.T) {
	notifier := &recordingNotifier{}
	job := &reminder.NotifyJob{
		Notifier: notifier,
		Summary:  models.DueSummary{LearnerID: 5, Username: "ana", DueCount: 2},
	}

	assert.Equal(t, "send_reminder", job.Name())
	require.NoError(t, job.Run(context.Background()))

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "ana", notifier.calls[0].Username)
}
