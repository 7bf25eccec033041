package infra

import (
	"sync"

	"habit-tracker/habits/domain"
)

// MemoryStore guarda os hábitos em um slice, na ordem de inserção.
// Vive enquanto o processo viver; não há persistência.
type MemoryStore struct {
	mu     sync.RWMutex
	habits []domain.Habit
}

var _ domain.HabitStore = (*MemoryStore)(nil)

func NewMemoryStore(initial ...domain.Habit) *MemoryStore {
	return &MemoryStore{habits: append([]domain.Habit(nil), initial...)}
}

func (s *MemoryStore) List() []domain.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Habit, len(s.habits))
	copy(out, s.habits)
	return out
}

func (s *MemoryStore) Contains(h domain.Habit) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.habits {
		if v == h {
			return true
		}
	}
	return false
}

func (s *MemoryStore) Append(h domain.Habit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.habits = append(s.habits, h)
}

func (s *MemoryStore) RemoveAt(i int) (domain.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.habits) {
		return "", &domain.NotFoundError{Index: i, Len: len(s.habits)}
	}
	h := s.habits[i]
	s.habits = append(s.habits[:i], s.habits[i+1:]...)
	return h, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.habits)
}
