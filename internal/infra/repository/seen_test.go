package repository

import (
	"context"
	"testing"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/testutil"
)

func TestSeenAddAndMembers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewSeenRepository(client)

	members, err := repo.Members(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("expected empty seen set, got %d members", len(members))
	}

	for _, id := range []string{"daily-1", "daily-2", "daily-1"} {
		if err := repo.Add(ctx, id); err != nil {
			t.Fatalf("failed to add %q: %v", id, err)
		}
	}

	members, err = repo.Members(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("expected 2 members after idempotent adds, got %d", len(members))
	}
	if _, ok := members["daily-1"]; !ok {
		t.Errorf("daily-1 missing from seen set: %v", members)
	}
	if _, ok := members["daily-2"]; !ok {
		t.Errorf("daily-2 missing from seen set: %v", members)
	}
}
