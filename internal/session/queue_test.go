package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomas/studydeck/internal/models"
	"github.com/tomas/studydeck/internal/scheduler"
	"github.com/tomas/studydeck/internal/session"
)

func pool(ids ...int64) []scheduler.QueueItem {
	out := make([]scheduler.QueueItem, len(ids))
	for i, id := range ids {
		out[i] = scheduler.QueueItem{Item: models.Item{ID: id}}
	}
	return out
}

func drain(q *session.Queue) []int64 {
	var out []int64
	for {
		item, ok := q.Next()
		if !ok {
			return out
		}
		out = append(out, item.Item.ID)
	}
}

func TestQueue_PopsInOrder(t *testing.T) {
	q := session.NewQueue(pool(1, 2, 3), 3, 2)
	assert.Equal(t, []int64{1, 2, 3}, drain(q))
}

func TestQueue_MissReappearsSpacingLater(t *testing.T) {
	q := session.NewQueue(pool(1, 2, 3, 4, 5), 3, 2)

	first, ok := q.Next()
	require.True(t, ok)
	require.Equal(t, int64(1), first.Item.ID)

	second, ok := q.Next()
	require.True(t, ok)
	require.Equal(t, int64(2), second.Item.ID)

	// Miss item 2: it should come back three positions into the remainder.
	require.True(t, q.RequeueMiss(second))
	assert.Equal(t, []int64{3, 4, 5, 2}, drain(q))
}

func TestQueue_MissNearEndAppends(t *testing.T) {
	q := session.NewQueue(pool(1, 2), 3, 2)

	item, _ := q.Next()
	require.True(t, q.RequeueMiss(item))

	assert.Equal(t, []int64{2, 1}, drain(q))
}

func TestQueue_RepeatLimit(t *testing.T) {
	q := session.NewQueue(pool(1, 2, 3), 3, 2)

	item, _ := q.Next()
	assert.True(t, q.RequeueMiss(item), "first miss requeues")
	assert.True(t, q.RequeueMiss(item), "second miss requeues")
	assert.False(t, q.RequeueMiss(item), "third miss is dropped")
}

func TestQueue_AlwaysTerminates(t *testing.T) {
	// Miss every single answer; the repeat cap still drains the queue.
	q := session.NewQueue(pool(1, 2, 3, 4, 5), 3, 2)

	seen := 0
	for {
		item, ok := q.Next()
		if !ok {
			break
		}
		seen++
		q.RequeueMiss(item)
		require.Less(t, seen, 100, "queue must terminate")
	}
	// 5 items, at most 2 extra passes each.
	assert.Equal(t, 15, seen)
}
