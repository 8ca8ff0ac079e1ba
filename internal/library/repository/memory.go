package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gogotex/library-service/internal/library"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory repository used by unit tests and by the
// STORE_FALLBACK=memory mode. Stored entries are copied on the way in and out.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]library.Entry
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[primitive.ObjectID]library.Entry), now: time.Now}
}

func (m *MemoryRepo) Create(ctx context.Context, e *library.Entry) (*library.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := library.Entry{
		ID:          primitive.NewObjectID(),
		Author:      e.Author,
		Description: e.Description,
		// match the millisecond precision of BSON dates
		CreatedAt: m.now().UTC().Truncate(time.Millisecond),
	}
	m.store[doc.ID] = doc
	return &doc, nil
}

func (m *MemoryRepo) Get(ctx context.Context, id primitive.ObjectID) (*library.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[id]; ok {
		return &d, nil
	}
	return nil, library.ErrNotFound
}

// List returns entries in creation order.
func (m *MemoryRepo) List(ctx context.Context) ([]*library.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*library.Entry, 0, len(m.store))
	for _, d := range m.store {
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out, nil
}

func (m *MemoryRepo) Update(ctx context.Context, id primitive.ObjectID, p library.Patch) (*library.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok {
		return nil, library.ErrNotFound
	}
	p.Apply(&d)
	m.store[id] = d
	return &d, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id primitive.ObjectID) (*library.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok {
		return nil, library.ErrNotFound
	}
	delete(m.store, id)
	return &d, nil
}

func (m *MemoryRepo) Ping(ctx context.Context) error { return nil }
