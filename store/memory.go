package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is a process-local Store used by tests and the seed tool.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[Collection]map[string]Document
	hub  *hub
	seq  int64
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[Collection]map[string]Document),
		hub:  newHub(),
		now:  time.Now,
	}
}

func (m *MemoryStore) Put(ctx context.Context, col Collection, key string, doc any) error {
	data, err := marshalDocument(doc)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.docs[col] == nil {
		m.docs[col] = make(map[string]Document)
	}
	created := m.createdAt(col, key)
	m.docs[col][key] = Document{Collection: col, Key: key, Data: data, CreatedAt: created}
	m.mu.Unlock()

	m.hub.notify(col)
	return nil
}

func (m *MemoryStore) Patch(ctx context.Context, col Collection, key string, fields map[string]any) error {
	m.mu.Lock()
	existing, ok := m.docs[col][key]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	data, err := mergePatch(existing.Data, fields)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	existing.Data = data
	m.docs[col][key] = existing
	m.mu.Unlock()

	m.hub.notify(col)
	return nil
}

func (m *MemoryStore) CreateIfAbsent(ctx context.Context, col Collection, key string, doc any) error {
	data, err := marshalDocument(doc)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.docs[col] == nil {
		m.docs[col] = make(map[string]Document)
	}
	if _, exists := m.docs[col][key]; exists {
		m.mu.Unlock()
		return ErrDuplicateKey
	}
	m.seq++
	m.docs[col][key] = Document{
		Collection: col,
		Key:        key,
		Data:       data,
		CreatedAt:  m.now().Add(time.Duration(m.seq)), // strictly increasing
	}
	m.mu.Unlock()

	m.hub.notify(col)
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, col Collection, key string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[col][key]
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}

func (m *MemoryStore) List(ctx context.Context, col Collection, order OrderBy) ([]Document, error) {
	m.mu.RLock()
	out := make([]Document, 0, len(m.docs[col]))
	for _, doc := range m.docs[col] {
		out = append(out, doc)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if order == ByCreatedDesc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) Subscribe(col Collection, fn func()) func() {
	return m.hub.subscribe(col, fn)
}

// createdAt preserves the original creation instant across upserts. Caller
// holds the lock.
func (m *MemoryStore) createdAt(col Collection, key string) time.Time {
	if existing, ok := m.docs[col][key]; ok {
		return existing.CreatedAt
	}
	m.seq++
	return m.now().Add(time.Duration(m.seq))
}
