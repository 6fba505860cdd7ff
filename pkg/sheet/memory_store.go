package sheet

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu     sync.RWMutex
	sheets map[string][][]string
}

// NewMemoryStore keeps sheets in process memory. Data is lost on restart.
func NewMemoryStore() Store {
	return &memoryStore{sheets: map[string][][]string{}}
}

func (s *memoryStore) EnsureSheet(_ context.Context, sheet string, header []string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rows, ok := s.sheets[sheet]; ok && len(rows) > 0 {
		return false, nil
	}
	s.sheets[sheet] = [][]string{copyRow(header)}
	return true, nil
}

func (s *memoryStore) Rows(_ context.Context, sheet string) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, ok := s.sheets[sheet]
	if !ok {
		return nil, ErrSheetNotFound
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = copyRow(r)
	}
	return out, nil
}

func (s *memoryStore) AppendRow(_ context.Context, sheet string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.sheets[sheet]
	if !ok {
		return ErrSheetNotFound
	}
	s.sheets[sheet] = append(rows, copyRow(row))
	return nil
}

func (s *memoryStore) UpdateCell(_ context.Context, sheet string, row, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.sheets[sheet]
	if !ok {
		return ErrSheetNotFound
	}
	if row < 0 || row >= len(rows) {
		return ErrRowOutOfRange
	}
	if col < 0 {
		return ErrInvalidPosition
	}
	rows[row] = setCell(rows[row], col, value)
	return nil
}

func copyRow(r []string) []string {
	out := make([]string, len(r))
	copy(out, r)
	return out
}

// setCell pads short rows so a cell past the end can be written.
func setCell(r []string, col int, value string) []string {
	for len(r) <= col {
		r = append(r, "")
	}
	r[col] = value
	return r
}
