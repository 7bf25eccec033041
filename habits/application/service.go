package application

import (
	"context"
	"sync"
	"time"

	"habit-tracker/habits/domain"
	"habit-tracker/internal/logger"
)

// Service concentra as regras do store de hábitos: validação, duplicidade,
// remoção por índice e undo por valor.
//
// Mutações passam pelo Gate (capacidade 1), que serializa o par
// "checa e altera". Leituras vão direto ao Store.
type Service struct {
	Store domain.HabitStore
	Gate  domain.SlotPool
	Stats domain.StatsStore
	// AcquireTimeout limita a espera pelo Gate. <= 0 espera até o ctx encerrar.
	AcquireTimeout time.Duration
	Logger         logger.Logger

	mu          sync.Mutex
	lastDeleted domain.Habit
	hasDeleted  bool
}

func (s *Service) List(_ context.Context) []domain.Habit {
	return s.Store.List()
}

// Add anexa h ao final. Vazio é ValidationError; já presente é DuplicateError.
func (s *Service) Add(ctx context.Context, h domain.Habit) ([]domain.Habit, error) {
	var out []domain.Habit
	err := s.mutate(ctx, domain.OpAdd, func() (domain.Habit, error) {
		if h.Empty() {
			return h, &domain.ValidationError{Field: "habit", Message: domain.MsgHabitRequired}
		}
		if s.Store.Contains(h) {
			return h, &domain.DuplicateError{Habit: h}
		}
		s.Store.Append(h)
		out = s.Store.List()
		return h, nil
	})
	return out, err
}

// DeleteAt remove a entrada em index e a guarda no slot de último removido.
func (s *Service) DeleteAt(ctx context.Context, index int) (domain.Habit, int, error) {
	var removed domain.Habit
	err := s.mutate(ctx, domain.OpDelete, func() (domain.Habit, error) {
		h, err := s.Store.RemoveAt(index)
		if err != nil {
			return "", err
		}
		removed = h

		s.mu.Lock()
		s.lastDeleted, s.hasDeleted = h, true
		s.mu.Unlock()
		return h, nil
	})
	return removed, index, err
}

// Undo reinsere h no FINAL da lista (não na posição original).
// Se h for o último removido, o slot é limpo.
func (s *Service) Undo(ctx context.Context, h domain.Habit) ([]domain.Habit, error) {
	var out []domain.Habit
	err := s.mutate(ctx, domain.OpUndo, func() (domain.Habit, error) {
		if h.Empty() {
			return h, &domain.ValidationError{Field: "deletedHabit", Message: domain.MsgHabitRequired}
		}
		if s.Store.Contains(h) {
			return h, &domain.DuplicateError{Habit: h}
		}
		s.Store.Append(h)
		out = s.Store.List()

		s.mu.Lock()
		if s.hasDeleted && s.lastDeleted == h {
			s.lastDeleted, s.hasDeleted = "", false
		}
		s.mu.Unlock()
		return h, nil
	})
	return out, err
}

// LastDeleted retorna o último hábito removido que ainda não foi desfeito.
func (s *Service) LastDeleted() (domain.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastDeleted, s.hasDeleted
}

func (s *Service) mutate(ctx context.Context, op domain.Op, fn func() (domain.Habit, error)) error {
	var (
		h   domain.Habit
		err error
	)
	if release, ok := s.acquire(ctx); ok {
		h, err = fn()
		release()
	} else {
		err = domain.ErrUnavailable
	}

	s.record(ctx, op, h, err)
	return err
}

// acquire segue a mesma regra do pool: sem timeout espera até o ctx encerrar.
func (s *Service) acquire(ctx context.Context) (func(), bool) {
	if s.Gate == nil {
		return func() {}, true
	}
	if s.AcquireTimeout <= 0 {
		return s.Gate.Acquire(ctx)
	}
	acqCtx, cancel := context.WithTimeout(ctx, s.AcquireTimeout)
	defer cancel()
	return s.Gate.Acquire(acqCtx)
}

func (s *Service) record(ctx context.Context, op domain.Op, h domain.Habit, err error) {
	outcome := domain.OutcomeOf(err)
	lggr := s.log()
	if err != nil {
		lggr.Infow("habit mutation rejected", "op", op, "outcome", outcome, "err", err)
	} else {
		lggr.Infow("habit mutation applied", "op", op, "habit", h)
	}

	if s.Stats == nil {
		return
	}
	ev := domain.StatsEvent{Op: op, Outcome: outcome, Habit: h, At: time.Now()}
	if recErr := s.Stats.Record(context.WithoutCancel(ctx), ev); recErr != nil {
		lggr.Warnw("stats record failed", "op", op, "err", recErr)
	}
}

func (s *Service) log() logger.Logger {
	if s.Logger == nil {
		return logger.Nop()
	}
	return s.Logger
}
