// Package store persists named puzzle layouts.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"pawnpuzzle/internal/puzzle"
)

// Record is one saved layout.
type Record struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Layout    puzzle.Layout `json:"layout"`
	CreatedAt time.Time     `json:"created_at"`
}

// LayoutStore lists and saves layouts. Implementations are safe for
// concurrent use.
type LayoutStore interface {
	List(ctx context.Context) ([]Record, error)
	Save(ctx context.Context, name string, layout puzzle.Layout) (Record, error)
	Load(ctx context.Context, id string) (Record, error)
}

var (
	ErrNotFound    = errors.New("layout not found")
	ErrInvalidName = errors.New("layout name is required")
)

// validate checks what every store requires before writing.
func validate(name string, layout puzzle.Layout) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	b, err := puzzle.ParseLayout(layout)
	if err != nil {
		return "", err
	}
	if err := puzzle.ValidatePuzzle(&b); err != nil {
		return "", fmt.Errorf("%w: %v", puzzle.ErrInvalidLayout, err)
	}
	return name, nil
}

func sortRecords(out []Record) {
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Name < out[j].Name
	})
}
