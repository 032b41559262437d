package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pawnpuzzle/internal/puzzle"
)

// Memory is a LayoutStore that lives only as long as the process.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]Record), now: time.Now}
}

func (m *Memory) Save(ctx context.Context, name string, layout puzzle.Layout) (Record, error) {
	name, err := validate(name, layout)
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		ID:        uuid.NewString(),
		Name:      name,
		Layout:    layout.Clone(),
		CreatedAt: m.now().UTC(),
	}
	m.mu.Lock()
	m.records[rec.ID] = rec
	m.mu.Unlock()
	return copyRecord(rec), nil
}

func (m *Memory) Load(ctx context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return copyRecord(rec), nil
}

func (m *Memory) List(ctx context.Context) ([]Record, error) {
	m.mu.RLock()
	out := make([]Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, copyRecord(rec))
	}
	m.mu.RUnlock()
	sortRecords(out)
	return out, nil
}

func copyRecord(rec Record) Record {
	rec.Layout = rec.Layout.Clone()
	return rec
}
