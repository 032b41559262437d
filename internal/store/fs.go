package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pawnpuzzle/internal/puzzle"
)

// FS keeps one JSON file per layout under dir.
type FS struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

func NewFS(dir string) *FS { return &FS{dir: dir, now: time.Now} }

func (s *FS) pathFor(id string) string {
	return filepath.Join(s.dir, strings.TrimSpace(id)+".json")
}

func (s *FS) Save(ctx context.Context, name string, layout puzzle.Layout) (Record, error) {
	name, err := validate(name, layout)
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		ID:        uuid.NewString(),
		Name:      name,
		Layout:    layout.Clone(),
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Record{}, err
	}
	target := s.pathFor(rec.ID)
	tmp, err := os.CreateTemp(s.dir, ".layout-*")
	if err != nil {
		return Record{}, err
	}
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return Record{}, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return Record{}, err
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return Record{}, err
	}
	return rec, nil
}

func (s *FS) Load(ctx context.Context, id string) (Record, error) {
	// ids are uuids; anything else cannot name a file we wrote
	if _, err := uuid.Parse(id); err != nil {
		return Record{}, ErrNotFound
	}
	data, err := os.ReadFile(s.pathFor(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *FS) List(ctx context.Context) ([]Record, error) {
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []Record
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil || rec.ID == "" {
			continue
		}
		out = append(out, rec)
	}
	sortRecords(out)
	return out, nil
}
