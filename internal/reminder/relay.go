package reminder

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/tomas/studydeck/internal/logger"
	"github.com/tomas/studydeck/internal/models"
	"github.com/tomas/studydeck/internal/repository"
	"github.com/tomas/studydeck/internal/worker"
)

// Notifier delivers a due-items reminder to a learner.
type Notifier interface {
	SendReminder(ctx context.Context, learnerID int64, username string, dueCount int) error
}

// Relay periodically scans for learners with due items and fans the
// notifications out to a worker pool.
type Relay struct {
	scheduler *gocron.Scheduler
	progress  repository.ProgressRepository
	pool      *worker.Pool
	notifier  Notifier
	every     time.Duration
	startHour int
	endHour   int
	log       *logger.Logger
}

type Options struct {
	Every     time.Duration
	StartHour int
	EndHour   int
}

func NewRelay(progress repository.ProgressRepository, pool *worker.Pool, notifier Notifier, opts Options) *Relay {
	if opts.Every <= 0 {
		opts.Every = time.Hour
	}
	return &Relay{
		scheduler: gocron.NewScheduler(time.UTC),
		progress:  progress,
		pool:      pool,
		notifier:  notifier,
		every:     opts.Every,
		startHour: opts.StartHour,
		endHour:   opts.EndHour,
		log:       logger.Default().WithPrefix("reminder"),
	}
}

// Start begins the periodic scan. It does not block.
func (r *Relay) Start() {
	r.scheduler.Every(r.every).Do(r.scan)
	r.scheduler.StartAsync()
	r.log.Info("reminder relay started, scanning every %v", r.every)
}

// Stop terminates the periodic scan.
func (r *Relay) Stop() {
	r.scheduler.Stop()
	r.log.Info("reminder relay stopped")
}

// withinNotifyHours reports whether reminders may be sent at the given time.
// A zero start and end disables the window check.
func (r *Relay) withinNotifyHours(now time.Time) bool {
	if r.startHour == 0 && r.endHour == 0 {
		return true
	}
	hour := now.Hour()
	return hour >= r.startHour && hour <= r.endHour
}

func (r *Relay) scan() {
	now := time.Now()
	if !r.withinNotifyHours(now) {
		r.log.Debug("hour %d outside notification window (%d-%d), skipping scan",
			now.Hour(), r.startHour, r.endHour)
		return
	}

	ctx := logger.NewContext(context.Background(), r.log)
	summaries, err := r.progress.LearnersWithDue(ctx, now)
	if err != nil {
		r.log.Error("failed to list learners with due items: %v", err)
		return
	}
	if len(summaries) == 0 {
		r.log.Debug("no learners with due items")
		return
	}

	r.log.Info("queueing reminders for %d learners", len(summaries))
	for _, summary := range summaries {
		r.pool.TrySubmit(&NotifyJob{
			Notifier: r.notifier,
			Summary:  summary,
		})
	}
}

// RunManualCheck sends a reminder to one learner immediately if they have
// items due, bypassing the notification window.
func (r *Relay) RunManualCheck(ctx context.Context, learnerID int64, username string) error {
	count, err := r.progress.CountDue(ctx, learnerID, time.Now())
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	return r.notifier.SendReminder(ctx, learnerID, username, count)
}

// NotifyJob delivers a single reminder on a pool worker.
type NotifyJob struct {
	Notifier Notifier
	Summary  models.DueSummary
}

func (j *NotifyJob) Name() string { return "send_reminder" }

func (j *NotifyJob) Run(ctx context.Context) error {
	return j.Notifier.SendReminder(ctx, j.Summary.LearnerID, j.Summary.Username, j.Summary.DueCount)
}
