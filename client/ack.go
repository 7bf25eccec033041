package client

import (
	"sync"
	"time"
)

// DefaultAckDuration é quanto tempo a mensagem de reconhecimento fica visível.
const DefaultAckDuration = 2500 * time.Millisecond

// Ack controla a mensagem de reconhecimento exibida ao marcar um hábito.
//
// Há um único timer por vez: Show cancela o auto-hide pendente antes de
// agendar outro, e Hide cancela e esconde na hora.
type Ack struct {
	mu       sync.Mutex
	visible  bool
	timer    *time.Timer
	gen      uint64
	duration time.Duration
	// onChange é chamado (fora do lock) quando a visibilidade muda.
	onChange func(visible bool)
}

func NewAck(d time.Duration, onChange func(visible bool)) *Ack {
	if d <= 0 {
		d = DefaultAckDuration
	}
	return &Ack{duration: d, onChange: onChange}
}

func (a *Ack) Visible() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.visible
}

func (a *Ack) Show() {
	a.mu.Lock()
	a.stopLocked()
	a.gen++
	gen := a.gen
	changed := !a.visible
	a.visible = true
	a.timer = time.AfterFunc(a.duration, func() { a.expire(gen) })
	a.mu.Unlock()

	a.notify(changed, true)
}

func (a *Ack) Hide() {
	a.mu.Lock()
	a.stopLocked()
	a.gen++
	changed := a.visible
	a.visible = false
	a.mu.Unlock()

	a.notify(changed, false)
}

// expire ignora disparos de timers já substituídos (Stop pode perder a corrida
// com um AfterFunc que já começou a rodar).
func (a *Ack) expire(gen uint64) {
	a.mu.Lock()
	if gen != a.gen || !a.visible {
		a.mu.Unlock()
		return
	}
	a.visible = false
	a.timer = nil
	a.mu.Unlock()

	a.notify(true, false)
}

func (a *Ack) stopLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *Ack) notify(changed, visible bool) {
	if changed && a.onChange != nil {
		a.onChange(visible)
	}
}
