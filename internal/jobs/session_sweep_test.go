package jobs

import (
	"context"
	"testing"
	"time"

	"regadmin/dashboard/internal/logging"
	"regadmin/dashboard/internal/session"
)

func TestSweepSessionsCountsAllTiers(t *testing.T) {
	ctx := context.Background()
	a, b := session.NewMemoryKV(), session.NewMemoryKV()
	if err := a.Set(ctx, "k1", "v", time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := b.Set(ctx, "k2", "v", time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := b.Set(ctx, "k3", "v", time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if removed := SweepSessions(logging.Discard(), a, b); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if b.Len() != 1 {
		t.Fatalf("expected live entry to survive, got %d entries", b.Len())
	}
}

func TestStartSessionSweepJobRejectsBadSchedule(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := StartSessionSweepJob(ctx, "not a schedule", logging.Discard(), session.NewMemoryKV()); err == nil {
		t.Fatalf("expected schedule error")
	}
	c, err := StartSessionSweepJob(ctx, "", logging.Discard(), session.NewMemoryKV())
	if err != nil || c != nil {
		t.Fatalf("expected disabled job, got %v %v", c, err)
	}
}

func TestStartSessionSweepJobRuns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kv := session.NewMemoryKV()
	if err := kv.Set(ctx, "k", "v", time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	c, err := StartSessionSweepJob(ctx, "@every 1s", logging.Discard(), kv)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Fatalf("expected one scheduled entry")
	}

	deadline := time.Now().Add(3 * time.Second)
	for kv.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if kv.Len() != 0 {
		t.Fatalf("expected sweep to remove the expired entry")
	}
}
