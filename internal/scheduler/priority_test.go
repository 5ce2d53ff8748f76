package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomas/studydeck/internal/models"
	"github.com/tomas/studydeck/internal/scheduler"
)

func queueItem(id int64, level int, due time.Time) scheduler.QueueItem {
	return scheduler.QueueItem{
		Item:     models.Item{ID: id},
		Progress: models.ProgressRecord{ItemID: id, Level: level, NextReviewAt: due},
	}
}

func ids(items []scheduler.QueueItem) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.Item.ID
	}
	return out
}

func TestSortByPriority_OverdueBeforeUpcoming(t *testing.T) {
	a := queueItem(1, 2, now.Add(-72*time.Hour)) // overdue by 3 days
	b := queueItem(2, 1, now.Add(48*time.Hour))  // due in 2 days

	sorted := scheduler.SortByPriority([]scheduler.QueueItem{b, a}, now)

	assert.Equal(t, []int64{1, 2}, ids(sorted))
}

func TestSortByPriority_MostOverdueFirst(t *testing.T) {
	items := []scheduler.QueueItem{
		queueItem(1, 0, now.Add(-24*time.Hour)),
		queueItem(2, 0, now.Add(-120*time.Hour)),
		queueItem(3, 0, now.Add(-48*time.Hour)),
	}

	sorted := scheduler.SortByPriority(items, now)

	assert.Equal(t, []int64{2, 3, 1}, ids(sorted))
}

func TestSortByPriority_SoonDueBeforeLaterDue(t *testing.T) {
	items := []scheduler.QueueItem{
		queueItem(1, 0, now.Add(96*time.Hour)),
		queueItem(2, 0, now.Add(24*time.Hour)),
	}

	sorted := scheduler.SortByPriority(items, now)

	assert.Equal(t, []int64{2, 1}, ids(sorted))
}

func TestSortByPriority_TieBreaks(t *testing.T) {
	due := now.Add(-24 * time.Hour)
	items := []scheduler.QueueItem{
		queueItem(5, 2, due),
		queueItem(3, 0, due),
		queueItem(4, 0, due),
	}

	sorted := scheduler.SortByPriority(items, now)

	// Lower level first, then item ID.
	assert.Equal(t, []int64{3, 4, 5}, ids(sorted))
}

func TestSortByPriority_Idempotent(t *testing.T) {
	items := []scheduler.QueueItem{
		queueItem(1, 1, now.Add(-24*time.Hour)),
		queueItem(2, 0, now.Add(-24*time.Hour)),
		queueItem(3, 2, now.Add(12*time.Hour)),
		queueItem(4, 0, now.Add(-90*time.Hour)),
	}

	once := scheduler.SortByPriority(items, now)
	twice := scheduler.SortByPriority(once, now)

	assert.Equal(t, ids(once), ids(twice))
}

func TestSortByPriority_DoesNotMutateInput(t *testing.T) {
	items := []scheduler.QueueItem{
		queueItem(2, 0, now.Add(-24*time.Hour)),
		queueItem(1, 0, now.Add(-48*time.Hour)),
	}

	_ = scheduler.SortByPriority(items, now)

	require.Equal(t, int64(2), items[0].Item.ID, "input order must be preserved")
}
