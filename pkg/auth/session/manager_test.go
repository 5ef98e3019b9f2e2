package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.values[key] = value.(string)
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type prefixKeyer struct{}

func (prefixKeyer) AccessSessionKey(accessID string) string { return "session:access:" + accessID }

func testManager() (*Manager, *memoryStore) {
	store := newMemoryStore()
	return &Manager{store: store, keyer: prefixKeyer{}, ttl: time.Hour}, store
}

func TestGenerateAndHasSession(t *testing.T) {
	m, _ := testManager()

	token, err := m.Generate(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatal("expected token")
	}

	ok, err := m.HasSession(context.Background(), "acc-1")
	if err != nil || !ok {
		t.Fatalf("expected live session, got ok=%v err=%v", ok, err)
	}

	ok, err = m.HasSession(context.Background(), "acc-unknown")
	if err != nil || ok {
		t.Fatalf("expected no session, got ok=%v err=%v", ok, err)
	}
}

func TestRotateInvalidatesOldSession(t *testing.T) {
	m, _ := testManager()

	token, err := m.Generate(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	newID, newToken, err := m.Rotate(context.Background(), "acc-1", token)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if newID == "acc-1" || newToken == token {
		t.Fatal("rotation must issue fresh credentials")
	}

	if ok, _ := m.HasSession(context.Background(), "acc-1"); ok {
		t.Fatal("old session must be gone after rotation")
	}
	if ok, _ := m.HasSession(context.Background(), newID); !ok {
		t.Fatal("new session must exist after rotation")
	}
}

func TestRotateRejectsWrongToken(t *testing.T) {
	m, _ := testManager()
	if _, err := m.Generate(context.Background(), "acc-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, _, err := m.Rotate(context.Background(), "acc-1", "forged"); err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRevoke(t *testing.T) {
	m, _ := testManager()
	if _, err := m.Generate(context.Background(), "acc-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := m.Revoke(context.Background(), "acc-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ok, _ := m.HasSession(context.Background(), "acc-1"); ok {
		t.Fatal("revoked session must not validate")
	}
}
