package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/displaydynamix/studio-api/internal/core/domain"
)

type recordingAuditService struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	done   chan struct{}
	want   int
}

func (s *recordingAuditService) Record(_ context.Context, event domain.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func TestDispatcher_PreservesPerUserOrder(t *testing.T) {
	const perUser = 20
	svc := &recordingAuditService{done: make(chan struct{}), want: perUser * 2}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(ctx)

	actions := []domain.AuditAction{domain.AuditLoginFailed, domain.AuditLoginSucceeded}
	for i := 0; i < perUser; i++ {
		for _, username := range []string{"alice", "bob"} {
			d.Publish(domain.AuditEvent{
				Username:   username,
				Action:     actions[i%2],
				ActorID:    int64(i),
				OccurredAt: time.Now().UTC(),
			})
		}
	}

	select {
	case <-svc.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for events")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	perUserSeen := map[string]int64{"alice": -1, "bob": -1}
	for _, e := range svc.events {
		last, ok := perUserSeen[e.Username]
		if !ok {
			t.Fatalf("unexpected username %q", e.Username)
		}
		if e.ActorID <= last {
			t.Fatalf("out-of-order event for %s: %d after %d", e.Username, e.ActorID, last)
		}
		perUserSeen[e.Username] = e.ActorID
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, &recordingAuditService{done: make(chan struct{}), want: 1}, zerolog.Nop())

	for _, username := range []string{"alice", "bob", "carol"} {
		first := d.shardIndex(username)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(username); got != first {
				t.Fatalf("shard for %q not stable: %d vs %d", username, got, first)
			}
		}
	}
}

func TestDispatcher_DropsWhenSaturated(t *testing.T) {
	// Workers never started: the buffer fills and further publishes must
	// return immediately instead of blocking the caller.
	svc := &recordingAuditService{done: make(chan struct{}), want: 1 << 30}
	d := NewDispatcher(1, svc, zerolog.Nop())

	finished := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Publish(domain.AuditEvent{Username: "alice", Action: domain.AuditLoginFailed})
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatalf("publish blocked on a saturated queue")
	}
}
