package infra

import (
	"context"
	"sync"

	"habit-tracker/habits/domain"
)

// Counters conta resultados por Outcome.
type Counters map[domain.Outcome]int64

// StatsSnapshot é a visão serializável do MemoryStatsStore.
type StatsSnapshot struct {
	Total Counters               `json:"total"`
	ByOp  map[domain.Op]Counters `json:"byOp"`
}

// MemoryStatsStore é uma implementação simples em memória.
// Não faz expiração; os contadores somem junto com o processo.
type MemoryStatsStore struct {
	mu    sync.Mutex
	total Counters
	byOp  map[domain.Op]Counters
}

func NewMemoryStatsStore() *MemoryStatsStore {
	return &MemoryStatsStore{
		total: make(Counters),
		byOp:  make(map[domain.Op]Counters),
	}
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total[ev.Outcome]++
	c, ok := s.byOp[ev.Op]
	if !ok {
		c = make(Counters)
		s.byOp[ev.Op] = c
	}
	c[ev.Outcome]++
	return nil
}

func (s *MemoryStatsStore) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := StatsSnapshot{
		Total: make(Counters, len(s.total)),
		ByOp:  make(map[domain.Op]Counters, len(s.byOp)),
	}
	for k, v := range s.total {
		out.Total[k] = v
	}
	for op, c := range s.byOp {
		cc := make(Counters, len(c))
		for k, v := range c {
			cc[k] = v
		}
		out.ByOp[op] = cc
	}
	return out
}
