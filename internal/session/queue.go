// Package session holds the in-memory study queue for one active session:
// the ordered pool produced by the scheduler plus the reinsertion policy for
// missed items. Nothing here touches persisted progress; that happens through
// the normal per-answer update in the study service.
package session

import "github.com/tomas/studydeck/internal/scheduler"

// Queue is the remaining items of an active study session. It is not safe
// for concurrent use; the owning service serializes access.
type Queue struct {
	pending    []scheduler.QueueItem
	repeats    map[int64]int
	spacing    int
	maxRepeats int
}

// NewQueue builds a session queue from an already-prioritized item list.
// spacing is how many positions later a missed item reappears; maxRepeats
// bounds extra reappearances per item so the session always terminates.
func NewQueue(items []scheduler.QueueItem, spacing, maxRepeats int) *Queue {
	if spacing < 1 {
		spacing = 1
	}
	if maxRepeats < 0 {
		maxRepeats = 0
	}
	pending := make([]scheduler.QueueItem, len(items))
	copy(pending, items)
	return &Queue{
		pending:    pending,
		repeats:    make(map[int64]int),
		spacing:    spacing,
		maxRepeats: maxRepeats,
	}
}

// Next pops the front of the queue. ok is false when the session is finished.
func (q *Queue) Next() (item scheduler.QueueItem, ok bool) {
	if len(q.pending) == 0 {
		return scheduler.QueueItem{}, false
	}
	item = q.pending[0]
	q.pending = q.pending[1:]
	return item, true
}

// RequeueMiss reinserts a just-missed item spacing positions into the
// remaining queue (or at the end when fewer items remain). Once the item has
// been requeued maxRepeats times it is dropped instead, and the method
// reports whether the item was requeued.
func (q *Queue) RequeueMiss(item scheduler.QueueItem) bool {
	id := item.Item.ID
	if q.repeats[id] >= q.maxRepeats {
		return false
	}
	q.repeats[id]++

	pos := q.spacing
	if pos > len(q.pending) {
		pos = len(q.pending)
	}
	q.pending = append(q.pending, scheduler.QueueItem{})
	copy(q.pending[pos+1:], q.pending[pos:])
	q.pending[pos] = item
	return true
}

// Len returns the number of items still queued.
func (q *Queue) Len() int {
	return len(q.pending)
}
