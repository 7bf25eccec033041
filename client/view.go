package client

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// API é o subconjunto do Client usado pelo View.
type API interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, habit string) (HabitsResult, error)
	Delete(ctx context.Context, index int) (DeleteResult, error)
	Undo(ctx context.Context, deleted string) (HabitsResult, error)
}

// Row é uma linha renderizada: o hábito e o estado do checkbox.
type Row struct {
	Habit   string
	Checked bool
}

// View mantém o estado da tela do rastreador de hábitos.
type View struct {
	api API
	ack *Ack

	mu           sync.Mutex
	rows         []Row
	deletedHabit string
	deletedIndex int
	undoVisible  bool
	// AckMessage é o texto exibido enquanto o Ack está visível.
	AckMessage string
}

type ViewOption func(*View)

// WithAckDuration troca a duração padrão (2.5s) da mensagem de reconhecimento.
func WithAckDuration(d time.Duration) ViewOption {
	return func(v *View) { v.ack = NewAck(d, nil) }
}

// WithAckNotify registra um callback para mudanças de visibilidade do Ack.
func WithAckNotify(d time.Duration, fn func(visible bool)) ViewOption {
	return func(v *View) { v.ack = NewAck(d, fn) }
}

func NewView(api API, opts ...ViewOption) *View {
	v := &View{
		api:          api,
		ack:          NewAck(DefaultAckDuration, nil),
		deletedIndex: -1,
		AckMessage:   "Great job! Keep it up!",
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Refresh refaz o fetch da lista inteira e reconstrói as linhas.
// Checkboxes voltam desmarcados, como numa nova renderização.
func (v *View) Refresh(ctx context.Context) error {
	habits, err := v.api.List(ctx)
	if err != nil {
		return err
	}
	v.setRows(habits)
	return nil
}

// Submit adiciona o hábito e recarrega a lista. Entrada vazia é ignorada.
func (v *View) Submit(ctx context.Context, habit string) error {
	if habit == "" {
		return nil
	}
	if _, err := v.api.Add(ctx, habit); err != nil {
		return err
	}
	return v.Refresh(ctx)
}

// Delete remove a linha index, guarda o valor removido e revela o undo.
func (v *View) Delete(ctx context.Context, index int) error {
	res, err := v.api.Delete(ctx, index)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.deletedHabit = res.DeletedHabit
	v.deletedIndex = res.DeletedIndex
	// o undo aparece mesmo se o refresh falhar: o servidor já removeu.
	v.undoVisible = true
	v.mu.Unlock()

	return v.Refresh(ctx)
}

// Undo reenvia o último valor removido, reconstrói a lista a partir da
// resposta e esconde o controle de undo.
func (v *View) Undo(ctx context.Context) error {
	v.mu.Lock()
	deleted, visible := v.deletedHabit, v.undoVisible
	v.mu.Unlock()
	if !visible {
		return nil
	}

	res, err := v.api.Undo(ctx, deleted)
	if err != nil {
		return err
	}
	v.setRows(res.Habits)

	v.mu.Lock()
	v.undoVisible = false
	v.deletedHabit, v.deletedIndex = "", -1
	v.mu.Unlock()
	return nil
}

// Toggle muda o checkbox da linha index. Marcar mostra a mensagem de
// reconhecimento por um tempo fixo; desmarcar esconde na hora.
func (v *View) Toggle(index int, checked bool) error {
	v.mu.Lock()
	if index < 0 || index >= len(v.rows) {
		n := len(v.rows)
		v.mu.Unlock()
		return fmt.Errorf("row %d out of range [0,%d)", index, n)
	}
	v.rows[index].Checked = checked
	v.mu.Unlock()

	if checked {
		v.ack.Show()
	} else {
		v.ack.Hide()
	}
	return nil
}

func (v *View) Rows() []Row {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Row, len(v.rows))
	copy(out, v.rows)
	return out
}

func (v *View) UndoVisible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.undoVisible
}

// Deleted retorna o último hábito removido por este View e seu índice.
func (v *View) Deleted() (string, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.deletedHabit, v.deletedIndex
}

func (v *View) AckVisible() bool { return v.ack.Visible() }

// Render escreve a tela em texto puro.
func (v *View) Render(w io.Writer) error {
	rows := v.Rows()
	undo := v.UndoVisible()
	deleted, _ := v.Deleted()

	if len(rows) == 0 {
		if _, err := fmt.Fprintln(w, "(no habits yet)"); err != nil {
			return err
		}
	}
	for i, r := range rows {
		box := "[ ]"
		if r.Checked {
			box = "[x]"
		}
		if _, err := fmt.Fprintf(w, "%2d. %s %s\n", i, box, r.Habit); err != nil {
			return err
		}
	}
	if undo {
		if _, err := fmt.Fprintf(w, "-- deleted %q, type 'undo' to restore\n", deleted); err != nil {
			return err
		}
	}
	if v.AckVisible() {
		if _, err := fmt.Fprintf(w, "** %s **\n", v.AckMessage); err != nil {
			return err
		}
	}
	return nil
}

func (v *View) setRows(habits []string) {
	rows := make([]Row, len(habits))
	for i, h := range habits {
		rows[i] = Row{Habit: h}
	}
	v.mu.Lock()
	v.rows = rows
	v.mu.Unlock()
}
