package ratelimit

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"time"
)

type Options struct {
	Store               *ClientStore
	KeyFn               KeyFunc
	KeyHeader           string
	TrustXForwardedFor  bool
	RetryAfter          time.Duration
	AddRateLimitHeaders bool
	// Methods limitados. Vazio = apenas POST.
	Methods []string
	// OnReject é chamado a cada bloqueio (ex: log). Pode ser nil.
	OnReject func(r *http.Request, key string)
}

// Decision é o resultado de Decide.
type Decision struct {
	Allowed bool
	// RetryAfter é o valor de Retry-After quando bloquear.
	RetryAfter time.Duration
}

// Decide consome um token da chave. Sem store, sempre permite.
func Decide(store *ClientStore, key string, retryAfter time.Duration) Decision {
	if store == nil {
		return Decision{Allowed: true}
	}
	if retryAfter <= 0 {
		retryAfter = 1 * time.Second
	}
	if store.Limiter(key).Allow() {
		return Decision{Allowed: true}
	}
	return Decision{Allowed: false, RetryAfter: retryAfter}
}

// WriteLimit limita as requests cujos métodos estão em opts.Methods.
func WriteLimit(opts Options) func(next http.Handler) http.Handler {
	if opts.Store == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	if opts.RetryAfter == 0 {
		opts.RetryAfter = 1 * time.Second
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc(opts.KeyHeader, opts.TrustXForwardedFor)
	}
	if len(opts.Methods) == 0 {
		opts.Methods = []string{http.MethodPost}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(opts.Methods, r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			key := opts.KeyFn(r)
			if opts.AddRateLimitHeaders {
				w.Header().Set("X-RateLimit-Key", key)
				w.Header().Set("X-RateLimit-RPS", strconv.FormatFloat(opts.Store.RPS(), 'f', -1, 64))
				w.Header().Set("X-RateLimit-Burst", strconv.Itoa(opts.Store.Burst()))
			}

			dec := Decide(opts.Store, key, opts.RetryAfter)
			if !dec.Allowed {
				if opts.OnReject != nil {
					opts.OnReject(r, key)
				}
				w.Header().Set("Retry-After", strconv.Itoa(int(dec.RetryAfter.Seconds())))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "Too many requests"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
