package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// APIError é uma resposta não-2xx com corpo {"message": ...}.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsStatus informa se err é um *APIError com o status dado.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type Client struct {
	baseURL  string
	http     *http.Client
	attempts uint
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithListAttempts define quantas tentativas o List faz em erro de transporte.
func WithListAttempts(n uint) Option {
	return func(c *Client) {
		// retry-go trata 0 como ilimitado
		c.attempts = max(n, 1)
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				ResponseHeaderTimeout: 5 * time.Second,
				IdleConnTimeout:       30 * time.Second,
				MaxIdleConnsPerHost:   2,
			},
		},
		attempts: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type HabitsResult struct {
	Message string   `json:"message"`
	Habits  []string `json:"habits"`
}

type DeleteResult struct {
	Message      string `json:"message"`
	DeletedHabit string `json:"deletedHabit"`
	DeletedIndex int    `json:"deletedIndex"`
}

// List busca a lista completa. É idempotente, então erros de transporte são
// re-tentados; respostas da API (APIError) não.
func (c *Client) List(ctx context.Context) ([]string, error) {
	var out []string
	err := retry.Do(
		func() error {
			out = nil
			return c.do(ctx, http.MethodGet, "/habits", nil, &out)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(50*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var apiErr *APIError
			return !errors.As(err, &apiErr)
		}),
	)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func (c *Client) Add(ctx context.Context, habit string) (HabitsResult, error) {
	var out HabitsResult
	err := c.do(ctx, http.MethodPost, "/habits", map[string]string{"habit": habit}, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, index int) (DeleteResult, error) {
	var out DeleteResult
	err := c.do(ctx, http.MethodPost, "/habits/delete", map[string]int{"index": index}, &out)
	return out, err
}

func (c *Client) Undo(ctx context.Context, deleted string) (HabitsResult, error) {
	var out HabitsResult
	err := c.do(ctx, http.MethodPost, "/habits/undo", map[string]string{"deletedHabit": deleted}, &out)
	return out, err
}

// LastDeleted retorna o slot de undo do servidor; ok=false se vazio.
func (c *Client) LastDeleted(ctx context.Context) (string, bool, error) {
	var out struct {
		DeletedHabit string `json:"deletedHabit"`
	}
	err := c.do(ctx, http.MethodGet, "/habits/last-deleted", nil, &out)
	if IsStatus(err, http.StatusNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return out.DeletedHabit, true, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		if msg.Message == "" {
			msg.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
