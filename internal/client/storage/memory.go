package storage

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/adearn/internal/client/gateway"
	"github.com/dmitrijs2005/adearn/internal/client/i18n"
)

// MemoryLocaleStore keeps the locale choice for the life of the process.
type MemoryLocaleStore struct {
	mu sync.Mutex
	l  i18n.Locale
}

func (m *MemoryLocaleStore) LoadLocale(context.Context) (i18n.Locale, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.l, m.l != "", nil
}

func (m *MemoryLocaleStore) SaveLocale(_ context.Context, l i18n.Locale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.l = l
	return nil
}

// Memory is the ephemeral stand-in for Store, used when no data directory
// is configured. Nothing survives a restart.
type Memory struct {
	MemoryLocaleStore
	gateway.MemoryStore
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Reset(ctx context.Context) error {
	m.MemoryLocaleStore.mu.Lock()
	m.l = ""
	m.MemoryLocaleStore.mu.Unlock()
	return m.ClearCredentials(ctx)
}

func (m *Memory) Close() error { return nil }
