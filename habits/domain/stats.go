package domain

import (
	"context"
	"time"
)

type Op string

const (
	OpAdd    Op = "add"
	OpDelete Op = "delete"
	OpUndo   Op = "undo"
)

type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeValidation  Outcome = "validation"
	OutcomeDuplicate   Outcome = "duplicate"
	OutcomeNotFound    Outcome = "not_found"
	OutcomeUnavailable Outcome = "unavailable"
)

// StatsEvent representa o resultado de uma mutação no store.
//
// Observação: Habit é texto livre do usuário; implementações não devem usá-lo
// como parte de chave (cardinalidade).
type StatsEvent struct {
	Op      Op
	Outcome Outcome
	Habit   Habit
	At      time.Time
}

// StatsStore é a estratégia de persistência das estatísticas de mutação.
// O Service trata erro como best-effort (não derruba a request).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
