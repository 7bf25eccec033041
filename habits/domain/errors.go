package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrDuplicate   = errors.New("duplicate habit")
	ErrNotFound    = errors.New("habit not found")
	ErrUnavailable = errors.New("store unavailable")
)

// MsgHabitRequired é a mensagem de campo de hábito ausente ou vazio.
const MsgHabitRequired = "Habit is required"

// ValidationError indica campo obrigatório ausente ou vazio.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// DuplicateError indica que o hábito já está no store.
type DuplicateError struct {
	Habit Habit
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("habit %q already exists", string(e.Habit))
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// NotFoundError indica índice fora de [0, Len).
type NotFoundError struct {
	Index int
	Len   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("index %d out of range [0,%d)", e.Index, e.Len)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// OutcomeOf traduz um erro do serviço para o Outcome de estatística.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrValidation):
		return OutcomeValidation
	case errors.Is(err, ErrDuplicate):
		return OutcomeDuplicate
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeUnavailable
	}
}
