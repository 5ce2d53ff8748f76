package scheduler

import (
	"sort"
	"time"

	"github.com/tomas/studydeck/internal/models"
)

// QueueItem pairs an item with its progress record for session ordering.
type QueueItem struct {
	Item     models.Item
	Progress models.ProgressRecord
}

// SortByPriority orders a session pool for study: overdue items first (most
// overdue leading), then not-yet-due items soonest first. Ties break by lower
// level, then by item ID, so the ordering is fully deterministic and
// idempotent. The input slice is not modified.
func SortByPriority(items []QueueItem, now time.Time) []QueueItem {
	out := make([]QueueItem, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		di := DaysUntilDue(out[i].Progress, now)
		dj := DaysUntilDue(out[j].Progress, now)
		if di != dj {
			return di < dj
		}
		if out[i].Progress.Level != out[j].Progress.Level {
			return out[i].Progress.Level < out[j].Progress.Level
		}
		return out[i].Item.ID < out[j].Item.ID
	})
	return out
}
