package sheets

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store, used by tests and the offline CLI.
type MemoryStore struct {
	mu     sync.RWMutex
	sheets map[string][][]string
	reads  int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sheets: make(map[string][][]string)}
}

// Load replaces the content of sheet.
func (s *MemoryStore) Load(sheet string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[sheet] = copyRows(rows)
}

func (s *MemoryStore) ReadRows(ctx context.Context, sheet string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	rows, ok := s.sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}
	return copyRows(rows), nil
}

func (s *MemoryStore) AppendRow(ctx context.Context, sheet string, row []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[sheet] = append(s.sheets[sheet], append([]string(nil), row...))
	return nil
}

// Reads returns how many times ReadRows was called.
func (s *MemoryStore) Reads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reads
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
