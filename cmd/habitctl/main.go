package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"habit-tracker/client"

	"github.com/spf13/pflag"
)

const help = `commands:
  list              re-fetch and show habits
  add <habit>       add a habit
  del <n>           delete habit n
  undo              restore the last deleted habit
  check <n>         mark habit n as done
  uncheck <n>       unmark habit n
  quit`

func main() {
	fs := pflag.NewFlagSet("habitctl", pflag.ExitOnError)
	server := fs.StringP("server", "s", envDefault("HABITS_SERVER", "http://localhost:4000"), "habit API base URL")
	ack := fs.Duration("ack", client.DefaultAckDuration, "how long the done message stays visible")
	_ = fs.Parse(os.Args[1:])

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := repl(ctx, os.Stdin, os.Stdout, client.New(*server), *ack); err != nil {
		fmt.Fprintf(os.Stderr, "habitctl: %v\n", err)
		os.Exit(1)
	}
}

// syncWriter serializa escritas: o aviso do Ack chega de outra goroutine.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func repl(ctx context.Context, in io.Reader, out io.Writer, api client.API, ack time.Duration) error {
	out = &syncWriter{w: out}
	v := client.NewView(api, client.WithAckNotify(ack, func(visible bool) {
		if !visible {
			fmt.Fprintln(out, "(message hidden)")
		}
	}))

	if err := v.Refresh(ctx); err != nil {
		return fmt.Errorf("load habits: %w", err)
	}
	_ = v.Render(out)

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		arg = strings.TrimSpace(arg)

		var err error
		switch cmd {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, help)
			continue
		case "list":
			err = v.Refresh(ctx)
		case "add":
			err = v.Submit(ctx, arg)
		case "del", "delete":
			err = withIndex(arg, func(i int) error { return v.Delete(ctx, i) })
		case "undo":
			err = v.Undo(ctx)
		case "check", "uncheck":
			err = withIndex(arg, func(i int) error { return v.Toggle(i, cmd == "check") })
		default:
			err = fmt.Errorf("unknown command %q (try help)", cmd)
		}

		if err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) {
				fmt.Fprintf(out, "error: %s\n", apiErr.Message)
			} else {
				fmt.Fprintf(out, "error: %v\n", err)
			}
			continue
		}
		_ = v.Render(out)
	}
}

func withIndex(arg string, fn func(int) error) error {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("expected a row number, got %q", arg)
	}
	return fn(i)
}

func envDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
