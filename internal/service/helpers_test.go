package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

type recordedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	m, _ := event.(map[string]any)
	p.events = append(p.events, recordedEvent{Topic: topic, Key: key, Event: m})
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Event["type"].(string))
	}
	return out
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	gdb, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })

	return repo.New(gdb)
}

func newTestServices(t *testing.T) (*AuthService, *CatalogService, *OrderService, *fakePublisher) {
	t.Helper()

	rp := newTestRepo(t)
	pub := &fakePublisher{}

	auth := &AuthService{Repo: rp, Tokens: tokens.NewIssuer([]byte("test-jwt-secret"), time.Hour), Events: pub}
	catalog := &CatalogService{Repo: rp, Events: pub}
	orders := &OrderService{Repo: rp, Events: pub}

	return auth, catalog, orders, pub
}
