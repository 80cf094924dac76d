package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/itsatony/stationhub/internal/errors"
	"github.com/itsatony/stationhub/internal/models"
	"github.com/redis/go-redis/v9"
)

func testUser() *models.User {
	return &models.User{ID: "usr_1", Username: "ana", IsAdmin: true}
}

func runStoreSuite(t *testing.T, store Store) {
	ctx := context.Background()

	s, err := store.Create(ctx, testUser())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if s.Token == "" || !s.ExpiresAt.After(s.CreatedAt) {
		t.Fatalf("unexpected session: %+v", s)
	}

	got, err := store.Get(ctx, s.Token)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.UserID != "usr_1" || got.Username != "ana" || !got.IsAdmin {
		t.Errorf("unexpected session: %+v", got)
	}

	if err := store.Delete(ctx, s.Token); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, s.Token); !errors.IsAuth(err) {
		t.Errorf("expected auth error after delete, got %v", err)
	}
	if _, err := store.Get(ctx, "unknown"); !errors.IsAuth(err) {
		t.Errorf("expected auth error for unknown token, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, NewMemoryStore(time.Hour))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	current := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	s, err := store.Create(context.Background(), testUser())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	current = current.Add(2 * time.Minute)
	if _, err := store.Get(context.Background(), s.Token); !errors.IsAuth(err) {
		t.Fatalf("expected expired session to be rejected, got %v", err)
	}
}

// TestRedisStore runs against a real server when TEST_REDIS_ADDR is set.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set, skipping redis integration test")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("redis not reachable: %v", err)
	}

	runStoreSuite(t, NewRedisStore(client, time.Minute))
}
