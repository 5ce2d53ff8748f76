package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tomas/studydeck/internal/logger"
	"github.com/tomas/studydeck/internal/reminder"
)

// Ensure Client satisfies the reminder delivery interface.
var _ reminder.Notifier = (*Client)(nil)

// Client posts reminder payloads to a configured webhook endpoint.
type Client struct {
	httpClient *http.Client
	url        string
	log        *logger.Logger
}

func New(url string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		url:        url,
		log:        logger.Default().WithPrefix("webhook"),
	}
}

type reminderPayload struct {
	LearnerID int64  `json:"learner_id"`
	Username  string `json:"username"`
	DueCount  int    `json:"due_count"`
	SentAt    int64  `json:"sent_at"`
}

// SendReminder delivers a due-items reminder as a JSON POST.
func (c *Client) SendReminder(ctx context.Context, learnerID int64, username string, dueCount int) error {
	log := logger.FromContext(ctx).WithPrefix("webhook").WithField("username", username)

	body, err := json.Marshal(reminderPayload{
		LearnerID: learnerID,
		Username:  username,
		DueCount:  dueCount,
		SentAt:    time.Now().Unix(),
	})
	if err != nil {
		return err
	}

	log.Debug("posting reminder to: %s", c.url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		log.Error("failed to create request: %v", err)
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to post reminder: %v", err)
		return err
	}
	defer resp.Body.Close()

	log.Debug("webhook response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("webhook request failed: status=%d, body=%s", resp.StatusCode, string(respBody))
		return fmt.Errorf("webhook status %d: %s", resp.StatusCode, string(respBody))
	}

	log.Info("reminder delivered: %d items due", dueCount)
	return nil
}
