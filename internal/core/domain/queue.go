package domain

import (
	"sort"
	"time"
)

// QueueStatus is the queue lifecycle state. Stopped is terminal.
type QueueStatus string

const (
	QueueActive  QueueStatus = "active"
	QueuePaused  QueueStatus = "paused"
	QueueStopped QueueStatus = "stopped"
)

// QueueEntry is a customer's membership record in a queue. Position is
// 1-based, contiguous, and FIFO-ordered by JoinTime. EstimatedWaitTime is
// derived and recomputed on every structural change of the queue.
type QueueEntry struct {
	CustomerID        string    `json:"customer_id"`
	JoinTime          time.Time `json:"join_time"`
	Position          int       `json:"position"`
	EstimatedWaitTime int       `json:"estimated_wait_time"`
}

// Queue is one lifecycle instance of service delivery for a service
// location. All mutating methods maintain the position and wait-time
// invariants; callers are expected to serialize mutations per queue.
type Queue struct {
	QueueID              string       `json:"queue_id"`
	ServiceID            string       `json:"service_id"`
	Status               QueueStatus  `json:"status"`
	StartTime            time.Time    `json:"start_time"`
	CurrentServingNumber int          `json:"current_serving_number"`
	Entries              []QueueEntry `json:"entries"`
}

// NewQueue creates an active queue with the serving pointer at zero.
func NewQueue(id, serviceID string, now time.Time) *Queue {
	return &Queue{
		QueueID:   id,
		ServiceID: serviceID,
		Status:    QueueActive,
		StartTime: now,
	}
}

// Pause transitions active -> paused. Entries and the serving pointer are
// untouched.
func (q *Queue) Pause() error {
	if q.Status == QueueStopped {
		return ErrQueueStopped
	}
	if q.Status != QueueActive {
		return ErrQueueNotActive
	}
	q.Status = QueuePaused
	return nil
}

// Resume transitions paused -> active.
func (q *Queue) Resume() error {
	if q.Status == QueueStopped {
		return ErrQueueStopped
	}
	if q.Status != QueuePaused {
		return ErrQueueNotPaused
	}
	q.Status = QueueActive
	return nil
}

// Stop terminates the queue from active or paused. Entries are retained for
// reads but no further mutation is accepted.
func (q *Queue) Stop() error {
	if q.Status == QueueStopped {
		return ErrQueueStopped
	}
	q.Status = QueueStopped
	return nil
}

// Join appends a new entry for customerID at position len(entries)+1 and
// returns the assigned position. serviceMinutes is the configured
// per-customer service time (zero when unset).
func (q *Queue) Join(customerID string, now time.Time, serviceMinutes int) (int, error) {
	if q.Status != QueueActive {
		return 0, ErrQueueNotActive
	}
	if q.indexOf(customerID) >= 0 {
		return 0, ErrAlreadyInQueue
	}
	position := len(q.Entries) + 1
	q.Entries = append(q.Entries, QueueEntry{
		CustomerID:        customerID,
		JoinTime:          now,
		Position:          position,
		EstimatedWaitTime: EstimatedWait(position, q.CurrentServingNumber, serviceMinutes),
	})
	return position, nil
}

// Leave removes the customer's entry and renumbers the remaining entries so
// positions stay contiguous 1..N in FIFO order, recomputing every remaining
// wait estimate.
func (q *Queue) Leave(customerID string, serviceMinutes int) error {
	if q.Status == QueueStopped {
		return ErrQueueStopped
	}
	idx := q.indexOf(customerID)
	if idx < 0 {
		return ErrNotInQueue
	}
	q.Entries = append(q.Entries[:idx], q.Entries[idx+1:]...)
	q.renumber(serviceMinutes)
	return nil
}

// AdvanceServing moves the serving pointer forward. The pointer is
// monotonically non-decreasing; a smaller value fails and leaves the queue
// unchanged. Wait estimates are recomputed for every entry.
func (q *Queue) AdvanceServing(newNumber, serviceMinutes int) error {
	if q.Status == QueueStopped {
		return ErrQueueStopped
	}
	if newNumber < q.CurrentServingNumber {
		return ErrServingBackward
	}
	q.CurrentServingNumber = newNumber
	q.recomputeWaits(serviceMinutes)
	return nil
}

// Entry returns the entry for customerID, if present.
func (q *Queue) Entry(customerID string) (QueueEntry, bool) {
	idx := q.indexOf(customerID)
	if idx < 0 {
		return QueueEntry{}, false
	}
	return q.Entries[idx], true
}

// Clone returns a deep copy so readers see a consistent snapshot.
func (q *Queue) Clone() *Queue {
	cp := *q
	cp.Entries = make([]QueueEntry, len(q.Entries))
	copy(cp.Entries, q.Entries)
	return &cp
}

func (q *Queue) indexOf(customerID string) int {
	for i := range q.Entries {
		if q.Entries[i].CustomerID == customerID {
			return i
		}
	}
	return -1
}

// renumber restores contiguous 1..N positions ordered by join time, never
// by insertion index, then refreshes wait estimates.
func (q *Queue) renumber(serviceMinutes int) {
	sort.SliceStable(q.Entries, func(i, j int) bool {
		return q.Entries[i].JoinTime.Before(q.Entries[j].JoinTime)
	})
	for i := range q.Entries {
		q.Entries[i].Position = i + 1
	}
	q.recomputeWaits(serviceMinutes)
}

func (q *Queue) recomputeWaits(serviceMinutes int) {
	for i := range q.Entries {
		q.Entries[i].EstimatedWaitTime = EstimatedWait(q.Entries[i].Position, q.CurrentServingNumber, serviceMinutes)
	}
}
