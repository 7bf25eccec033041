package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"habit-tracker/client"
	"habit-tracker/habits/application"
	"habit-tracker/habits/httpapi"
	"habit-tracker/habits/infra"

	"github.com/stretchr/testify/require"
)

func TestRepl_Session(t *testing.T) {
	svc := &application.Service{Store: infra.NewMemoryStore("Recycle"), Gate: infra.NewChanPool(1)}
	srv := httptest.NewServer(httpapi.NewRouter(&httpapi.Handler{Service: svc}))
	t.Cleanup(srv.Close)

	in := strings.NewReader(strings.Join([]string{
		"add Compost",
		"add Compost",
		"del 0",
		"undo",
		"check 1",
		"del x",
		"bogus",
		"quit",
	}, "\n"))
	var out bytes.Buffer

	require.NoError(t, repl(context.Background(), in, &out, client.New(srv.URL), time.Hour))

	got := out.String()
	require.Contains(t, got, " 0. [ ] Recycle\n")
	require.Contains(t, got, "error: Habit already exists\n")
	require.Contains(t, got, "-- deleted \"Recycle\", type 'undo' to restore\n")
	require.Contains(t, got, " 0. [ ] Compost\n 1. [x] Recycle\n** Great job! Keep it up! **\n")
	require.Contains(t, got, "error: expected a row number, got \"x\"\n")
	require.Contains(t, got, "error: unknown command \"bogus\" (try help)\n")
}

// lockedBuffer permite ler a saída enquanto timers do Ack ainda escrevem.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Rodar com -race: o aviso de "message hidden" vem da goroutine do timer.
func TestRepl_AckNotifyDoesNotRaceWithRender(t *testing.T) {
	svc := &application.Service{Store: infra.NewMemoryStore("Recycle"), Gate: infra.NewChanPool(1)}
	srv := httptest.NewServer(httpapi.NewRouter(&httpapi.Handler{Service: svc}))
	t.Cleanup(srv.Close)

	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, "check 0", "list")
	}
	lines = append(lines, "quit")
	out := &lockedBuffer{}

	require.NoError(t, repl(context.Background(), strings.NewReader(strings.Join(lines, "\n")), out, client.New(srv.URL), time.Millisecond))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "(message hidden)")
	}, time.Second, 5*time.Millisecond)
}
