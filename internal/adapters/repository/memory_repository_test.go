package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/walkline/queue-service/internal/core/domain"
)

var repoNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func seedService(t *testing.T, r *MemoryRepository, serviceID string) {
	t.Helper()
	svc, err := domain.NewServiceLocation(serviceID, "owner1", "Corner Barbers", "1 Main St", 4, repoNow)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.CreateService(context.Background(), *svc); err != nil {
		t.Fatal(err)
	}
}

func TestMemoryRepository_SnapshotIsolation(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()
	seedService(t, r, "svc1")

	q := domain.NewQueue("q1", "svc1", repoNow)
	_, _ = q.Join("c1", repoNow, 10)
	svc, _ := r.GetService(ctx, "svc1")
	if err := r.CreateQueue(ctx, *q, *svc, nil); err != nil {
		t.Fatalf("create queue: %v", err)
	}

	got, err := r.GetQueue(ctx, "q1")
	if err != nil {
		t.Fatalf("get queue: %v", err)
	}
	got.Entries[0].Position = 99
	got.Status = domain.QueueStopped

	again, _ := r.GetQueue(ctx, "q1")
	if again.Entries[0].Position != 1 || again.Status != domain.QueueActive {
		t.Error("reader mutation leaked into the store")
	}
}

func TestMemoryRepository_RunningQueueForService(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()
	seedService(t, r, "svc1")
	svc, _ := r.GetService(ctx, "svc1")

	q, err := r.RunningQueueForService(ctx, "svc1")
	if err != nil || q != nil {
		t.Errorf("no queue yet: got (%v, %v), want (nil, nil)", q, err)
	}

	queue := domain.NewQueue("q1", "svc1", repoNow)
	_ = r.CreateQueue(ctx, *queue, *svc, nil)

	q, err = r.RunningQueueForService(ctx, "svc1")
	if err != nil || q == nil || q.QueueID != "q1" {
		t.Fatalf("got (%v, %v)", q, err)
	}

	// paused still counts as running
	queue.Status = domain.QueuePaused
	_ = r.UpdateQueue(ctx, *queue, nil)
	if q, _ = r.RunningQueueForService(ctx, "svc1"); q == nil {
		t.Error("paused queue should count as running")
	}

	// stopped does not
	queue.Status = domain.QueueStopped
	_ = r.UpdateQueue(ctx, *queue, nil)
	if q, _ = r.RunningQueueForService(ctx, "svc1"); q != nil {
		t.Error("stopped queue should not count as running")
	}
}

func TestMemoryRepository_OutboxRecording(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()
	seedService(t, r, "svc1")
	svc, _ := r.GetService(ctx, "svc1")

	queue := domain.NewQueue("q1", "svc1", repoNow)
	_ = r.CreateQueue(ctx, *queue, *svc, []byte(`{"type":"queue.started"}`))
	_ = r.UpdateQueue(ctx, *queue, []byte(`{"type":"customer.joined"}`))
	_ = r.UpdateQueueAndService(ctx, *queue, *svc, []byte(`{"type":"queue.stopped"}`))

	payloads := r.OutboxPayloads()
	if len(payloads) != 3 {
		t.Fatalf("got %d payloads, want 3", len(payloads))
	}
	if string(payloads[0]) != `{"type":"queue.started"}` {
		t.Errorf("payloads out of order: %s", payloads[0])
	}
}

func TestMemoryRepository_NotFound(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	if _, err := r.GetService(ctx, "x"); !errors.Is(err, domain.ErrServiceNotFound) {
		t.Errorf("got %v, want ErrServiceNotFound", err)
	}
	if _, err := r.GetQueue(ctx, "x"); !errors.Is(err, domain.ErrQueueNotFound) {
		t.Errorf("got %v, want ErrQueueNotFound", err)
	}
	if err := r.UpdateQueue(ctx, domain.Queue{QueueID: "x"}, nil); !errors.Is(err, domain.ErrQueueNotFound) {
		t.Errorf("got %v, want ErrQueueNotFound", err)
	}
	if err := r.DeleteService(ctx, "x"); !errors.Is(err, domain.ErrServiceNotFound) {
		t.Errorf("got %v, want ErrServiceNotFound", err)
	}
}

func TestMemoryRepository_Profiles(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	p, err := r.GetProfile(ctx, "p1")
	if err != nil || p != nil {
		t.Errorf("missing profile: got (%v, %v), want (nil, nil)", p, err)
	}

	role, err := r.GetAdminRole(ctx, "p1")
	if err != nil || role != domain.AdminRoleGuest {
		t.Errorf("default admin role: got (%s, %v), want guest", role, err)
	}

	_ = r.SaveProfile(ctx, domain.UserProfile{Principal: "p1", Name: "Ada", Role: domain.RoleCustomer})
	_ = r.SetAdminRole(ctx, "p1", domain.AdminRoleAdmin)

	p, _ = r.GetProfile(ctx, "p1")
	if p == nil || p.Name != "Ada" {
		t.Errorf("got %+v", p)
	}
	role, _ = r.GetAdminRole(ctx, "p1")
	if role != domain.AdminRoleAdmin {
		t.Errorf("got %s, want admin", role)
	}
}
