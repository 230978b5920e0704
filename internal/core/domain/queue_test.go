package domain

import (
	"errors"
	"testing"
	"time"
)

var testStart = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func activeQueue() *Queue {
	return NewQueue("q1", "svc1", testStart)
}

func TestLifecycleTransitions(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(q *Queue)
		apply   func(q *Queue) error
		wantErr error
		want    QueueStatus
	}{
		{
			name:    "pause active",
			prepare: func(q *Queue) {},
			apply:   func(q *Queue) error { return q.Pause() },
			want:    QueuePaused,
		},
		{
			name:    "pause paused",
			prepare: func(q *Queue) { _ = q.Pause() },
			apply:   func(q *Queue) error { return q.Pause() },
			wantErr: ErrQueueNotActive,
			want:    QueuePaused,
		},
		{
			name:    "pause stopped",
			prepare: func(q *Queue) { _ = q.Stop() },
			apply:   func(q *Queue) error { return q.Pause() },
			wantErr: ErrQueueStopped,
			want:    QueueStopped,
		},
		{
			name:    "resume paused",
			prepare: func(q *Queue) { _ = q.Pause() },
			apply:   func(q *Queue) error { return q.Resume() },
			want:    QueueActive,
		},
		{
			name:    "resume active",
			prepare: func(q *Queue) {},
			apply:   func(q *Queue) error { return q.Resume() },
			wantErr: ErrQueueNotPaused,
			want:    QueueActive,
		},
		{
			name:    "resume stopped",
			prepare: func(q *Queue) { _ = q.Stop() },
			apply:   func(q *Queue) error { return q.Resume() },
			wantErr: ErrQueueStopped,
			want:    QueueStopped,
		},
		{
			name:    "stop active",
			prepare: func(q *Queue) {},
			apply:   func(q *Queue) error { return q.Stop() },
			want:    QueueStopped,
		},
		{
			name:    "stop paused",
			prepare: func(q *Queue) { _ = q.Pause() },
			apply:   func(q *Queue) error { return q.Stop() },
			want:    QueueStopped,
		},
		{
			name:    "stop stopped",
			prepare: func(q *Queue) { _ = q.Stop() },
			apply:   func(q *Queue) error { return q.Stop() },
			wantErr: ErrQueueStopped,
			want:    QueueStopped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := activeQueue()
			tt.prepare(q)

			err := tt.apply(q)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
			if q.Status != tt.want {
				t.Errorf("got status %s, want %s", q.Status, tt.want)
			}
		})
	}
}

func TestJoin_AssignsSequentialPositions(t *testing.T) {
	q := activeQueue()

	for i, customer := range []string{"c1", "c2", "c3"} {
		pos, err := q.Join(customer, testStart.Add(time.Duration(i)*time.Minute), 10)
		if err != nil {
			t.Fatalf("join %s: %v", customer, err)
		}
		if pos != i+1 {
			t.Errorf("join %s: got position %d, want %d", customer, pos, i+1)
		}
	}

	// serving at 0, 10 min per customer
	wantWaits := []int{10, 20, 30}
	for i, e := range q.Entries {
		if e.EstimatedWaitTime != wantWaits[i] {
			t.Errorf("entry %d: got wait %d, want %d", i, e.EstimatedWaitTime, wantWaits[i])
		}
	}
}

func TestJoin_Duplicate(t *testing.T) {
	q := activeQueue()
	if _, err := q.Join("c1", testStart, 10); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, err := q.Join("c1", testStart.Add(time.Minute), 10); !errors.Is(err, ErrAlreadyInQueue) {
		t.Errorf("got %v, want ErrAlreadyInQueue", err)
	}
	if len(q.Entries) != 1 {
		t.Errorf("got %d entries, want 1", len(q.Entries))
	}
}

func TestJoin_NotActive(t *testing.T) {
	q := activeQueue()
	_ = q.Pause()
	if _, err := q.Join("c1", testStart, 10); !errors.Is(err, ErrQueueNotActive) {
		t.Errorf("paused: got %v, want ErrQueueNotActive", err)
	}

	q = activeQueue()
	_ = q.Stop()
	if _, err := q.Join("c1", testStart, 10); !errors.Is(err, ErrQueueNotActive) {
		t.Errorf("stopped: got %v, want ErrQueueNotActive", err)
	}
}

func TestLeave_RenumbersContiguously(t *testing.T) {
	q := activeQueue()
	for i, customer := range []string{"c1", "c2", "c3", "c4"} {
		if _, err := q.Join(customer, testStart.Add(time.Duration(i)*time.Minute), 5); err != nil {
			t.Fatalf("join %s: %v", customer, err)
		}
	}

	if err := q.Leave("c2", 5); err != nil {
		t.Fatalf("leave: %v", err)
	}

	wantOrder := []string{"c1", "c3", "c4"}
	for i, e := range q.Entries {
		if e.CustomerID != wantOrder[i] {
			t.Errorf("entry %d: got %s, want %s", i, e.CustomerID, wantOrder[i])
		}
		if e.Position != i+1 {
			t.Errorf("entry %d: got position %d, want %d", i, e.Position, i+1)
		}
		if want := (i + 1) * 5; e.EstimatedWaitTime != want {
			t.Errorf("entry %d: got wait %d, want %d", i, e.EstimatedWaitTime, want)
		}
	}
}

func TestLeave_Errors(t *testing.T) {
	q := activeQueue()
	if err := q.Leave("ghost", 5); !errors.Is(err, ErrNotInQueue) {
		t.Errorf("got %v, want ErrNotInQueue", err)
	}

	_, _ = q.Join("c1", testStart, 5)
	_ = q.Stop()
	if err := q.Leave("c1", 5); !errors.Is(err, ErrQueueStopped) {
		t.Errorf("got %v, want ErrQueueStopped", err)
	}
	if len(q.Entries) != 1 {
		t.Errorf("stopped queue lost entries: got %d, want 1", len(q.Entries))
	}
}

func TestAdvanceServing(t *testing.T) {
	q := activeQueue()
	for i, customer := range []string{"c1", "c2", "c3"} {
		_, _ = q.Join(customer, testStart.Add(time.Duration(i)*time.Minute), 10)
	}

	if err := q.AdvanceServing(2, 10); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if q.CurrentServingNumber != 2 {
		t.Errorf("got serving %d, want 2", q.CurrentServingNumber)
	}

	// c1 and c2 are at or behind the pointer, only c3 still waits
	wantWaits := []int{0, 0, 10}
	for i, e := range q.Entries {
		if e.EstimatedWaitTime != wantWaits[i] {
			t.Errorf("entry %d: got wait %d, want %d", i, e.EstimatedWaitTime, wantWaits[i])
		}
	}

	// same value is allowed, going back is not
	if err := q.AdvanceServing(2, 10); err != nil {
		t.Errorf("advance to same value: %v", err)
	}
	if err := q.AdvanceServing(1, 10); !errors.Is(err, ErrServingBackward) {
		t.Errorf("got %v, want ErrServingBackward", err)
	}
	if q.CurrentServingNumber != 2 {
		t.Errorf("failed advance mutated pointer: got %d, want 2", q.CurrentServingNumber)
	}
}

func TestClone_IsDeep(t *testing.T) {
	q := activeQueue()
	_, _ = q.Join("c1", testStart, 10)

	cp := q.Clone()
	cp.Entries[0].Position = 99
	cp.Status = QueueStopped

	if q.Entries[0].Position != 1 {
		t.Errorf("clone shares entries with original")
	}
	if q.Status != QueueActive {
		t.Errorf("clone shares status with original")
	}
}
