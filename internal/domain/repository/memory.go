package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryConfig wires entity-specific accessors into a Memory store. Key and
// WithKey are required; NextKey enables key assignment on Create; Touch sets
// the timestamps; UserID enables GetByUserID.
type MemoryConfig[T any, K comparable] struct {
	Key     func(T) K
	WithKey func(T, K) T
	NextKey func(seq int) K
	Touch   func(T, time.Time, bool) T
	UserID  func(T) string
}

// Memory is an in-memory Repository used by the service tests. It counts
// calls per method so tests can assert that forbidden operations never
// mutate the store, and OnCall observes invocation order.
type Memory[T any, K comparable] struct {
	mu    sync.Mutex
	cfg   MemoryConfig[T, K]
	items map[K]T
	seq   int

	// Err, when set, is returned by every call.
	Err error

	Calls  map[string]int
	OnCall func(method string)
}

func NewMemory[T any, K comparable](cfg MemoryConfig[T, K]) *Memory[T, K] {
	return &Memory[T, K]{
		cfg:   cfg,
		items: make(map[K]T),
		Calls: make(map[string]int),
	}
}

func (m *Memory[T, K]) record(method string) {
	m.Calls[method]++
	if m.OnCall != nil {
		m.OnCall(method)
	}
}

// Seed stores entities directly, bypassing key assignment and timestamps.
func (m *Memory[T, K]) Seed(entities ...T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entity := range entities {
		m.items[m.cfg.Key(entity)] = entity
	}
}

func (m *Memory[T, K]) Create(ctx context.Context, entity *T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Create")
	if m.Err != nil {
		return nil, m.Err
	}

	stored := *entity
	var zero K
	if m.cfg.Key(stored) == zero && m.cfg.NextKey != nil {
		m.seq++
		stored = m.cfg.WithKey(stored, m.cfg.NextKey(m.seq))
	}
	if m.cfg.Touch != nil {
		stored = m.cfg.Touch(stored, time.Now().UTC(), true)
	}
	m.items[m.cfg.Key(stored)] = stored
	result := stored
	return &result, nil
}

func (m *Memory[T, K]) GetByID(ctx context.Context, id K) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("GetByID")
	if m.Err != nil {
		return nil, m.Err
	}
	entity, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	result := entity
	return &result, nil
}

func (m *Memory[T, K]) GetAll(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("GetAll")
	if m.Err != nil {
		return nil, m.Err
	}
	all := make([]T, 0, len(m.items))
	for _, entity := range m.items {
		all = append(all, entity)
	}
	return all, nil
}

func (m *Memory[T, K]) Update(ctx context.Context, entity *T) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Update")
	if m.Err != nil {
		return nil, m.Err
	}
	stored := *entity
	if m.cfg.Touch != nil {
		stored = m.cfg.Touch(stored, time.Now().UTC(), false)
	}
	m.items[m.cfg.Key(stored)] = stored
	result := stored
	return &result, nil
}

func (m *Memory[T, K]) Delete(ctx context.Context, id K) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Delete")
	if m.Err != nil {
		return m.Err
	}
	delete(m.items, id)
	return nil
}

func (m *Memory[T, K]) Exists(ctx context.Context, id K) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Exists")
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.items[id]
	return ok, nil
}

func (m *Memory[T, K]) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Count")
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.items), nil
}

func (m *Memory[T, K]) GetByUserID(ctx context.Context, userID string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("GetByUserID")
	if m.Err != nil {
		return nil, m.Err
	}
	if m.cfg.UserID == nil {
		return nil, nil
	}
	for _, entity := range m.items {
		if m.cfg.UserID(entity) == userID {
			result := entity
			return &result, nil
		}
	}
	return nil, nil
}
