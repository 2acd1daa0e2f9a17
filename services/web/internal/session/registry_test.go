package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRegistryReturnsSameManagerPerSession(t *testing.T) {
	r := NewRegistry(&fakeBackend{}, time.Minute)
	a := r.Get("sess-1")
	b := r.Get("sess-1")
	if a != b {
		t.Fatal("expected the same manager for one session id")
	}
	if other := r.Get("sess-2"); other == a {
		t.Fatal("expected distinct managers for distinct sessions")
	}
}

func TestRegistryEvictsIdleSessions(t *testing.T) {
	r := NewRegistry(&fakeBackend{}, time.Minute)
	base := time.Now()
	r.now = func() time.Time { return base }
	r.Get("sess-1")
	if r.Len() != 1 {
		t.Fatalf("expected one live session, got %d", r.Len())
	}
	r.now = func() time.Time { return base.Add(2 * time.Minute) }
	r.Get("sess-2")
	if r.Len() != 1 {
		t.Fatalf("expected idle session swept, got %d live", r.Len())
	}
}

func TestRegistryDropInvalidatesManager(t *testing.T) {
	r := NewRegistry(&fakeBackend{}, time.Minute)
	m := r.Get("sess-1")
	m.Refresh(context.Background(), "")
	r.Drop("sess-1")
	if r.Len() != 0 {
		t.Fatalf("expected dropped session gone, got %d", r.Len())
	}
	if snap := m.Snapshot(); snap.Resolved {
		t.Fatalf("dropped manager should be reset to Unknown, got %+v", snap)
	}
}

func TestFromContextFailsLoudWithoutRegistry(t *testing.T) {
	if _, err := FromContext(context.Background()); !errors.Is(err, ErrNoRegistry) {
		t.Fatalf("expected ErrNoRegistry, got %v", err)
	}

	r := NewRegistry(&fakeBackend{}, time.Minute)
	ctx := WithRegistry(context.Background(), r)
	got, err := FromContext(ctx)
	if err != nil || got != r {
		t.Fatalf("expected registry back from context, got %v err %v", got, err)
	}
}
