package httpx

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/trigger/pkg/cryptox"
	"github.com/aussiebroadwan/trigger/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimit is a token bucket: Requests per Window on average, at most Burst
// at once.
type RateLimit struct {
	Requests int
	Window   time.Duration
	Burst    int
}

var (
	// StrictLimit guards operations that reach the upstream API on every
	// call: token generation, config changes and CSV submissions.
	StrictLimit = RateLimit{Requests: 10, Window: time.Minute, Burst: 5}

	// LenientLimit guards local reads (config, token status, history, health).
	LenientLimit = RateLimit{Requests: 120, Window: time.Minute, Burst: 120}
)

// Valid reports whether every field is positive.
func (l RateLimit) Valid() bool {
	return l.Requests > 0 && l.Window > 0 && l.Burst > 0
}

func (l RateLimit) perSecond() rate.Limit {
	return rate.Limit(float64(l.Requests) / l.Window.Seconds())
}

// refill is how long an untouched bucket takes to fill up again.
func (l RateLimit) refill() time.Duration {
	return time.Duration(float64(l.Burst) / float64(l.perSecond()) * float64(time.Second))
}

// KeyFunc groups requests into buckets. An empty key bypasses the limit.
type KeyFunc func(*http.Request) string

// ClientIP keys on the peer address. X-Forwarded-For and X-Real-IP are only
// honoured when trustProxy is set, since any client can send them.
func ClientIP(trustProxy bool) KeyFunc {
	return func(r *http.Request) string {
		if trustProxy {
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				first, _, _ := strings.Cut(xff, ",")
				return strings.TrimSpace(first)
			}
			if xri := r.Header.Get("X-Real-IP"); xri != "" {
				return strings.TrimSpace(xri)
			}
		}

		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return r.RemoteAddr
		}
		return host
	}
}

// OperatorKey keys on a fingerprint of the bearer token so raw tokens never
// sit in the limiter.
func OperatorKey(r *http.Request) string {
	raw, ok := BearerToken(r)
	if !ok {
		return ""
	}
	return cryptox.FingerprintToken(raw)
}

// JoinKeys concatenates the non-empty keys of fns with "|".
func JoinKeys(fns ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(fns))
		for _, fn := range fns {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, "|")
	}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// keyedLimiter holds one bucket per key. Buckets idle long enough to have
// refilled are forgotten, at most once per sweep interval.
type keyedLimiter struct {
	limit RateLimit
	idle  time.Duration
	now   func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newKeyedLimiter(limit RateLimit, now func() time.Time) *keyedLimiter {
	return &keyedLimiter{
		limit:     limit,
		idle:      max(limit.Window, limit.refill()),
		now:       now,
		buckets:   make(map[string]*bucket),
		lastSweep: now(),
	}
}

// take spends one token for key. When none is left it reports how long until
// one will be.
func (k *keyedLimiter) take(key string) (bool, time.Duration) {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	k.sweep(now)

	b, ok := k.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(k.limit.perSecond(), k.limit.Burst)}
		k.buckets[key] = b
	}
	b.lastSeen = now

	r := b.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, k.limit.Window
	}
	if wait := r.DelayFrom(now); wait > 0 {
		r.CancelAt(now)
		return false, wait
	}
	return true, 0
}

func (k *keyedLimiter) sweep(now time.Time) {
	if now.Sub(k.lastSweep) < k.idle {
		return
	}
	k.lastSweep = now

	for key, b := range k.buckets {
		if now.Sub(b.lastSeen) >= k.idle {
			delete(k.buckets, key)
		}
	}
}

func (k *keyedLimiter) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}

// RateLimitMiddleware rejects requests over limit with 429 and Retry-After.
func RateLimitMiddleware(limit RateLimit, key KeyFunc) Middleware {
	return rateLimit(newKeyedLimiter(limit, time.Now), key)
}

func rateLimit(kl *keyedLimiter, key KeyFunc) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			k := key(r)
			if k == "" {
				log.Warn("rate limit: no key for request, allowing")
				next.ServeHTTP(w, r)
				return
			}

			allowed, wait := kl.take(k)
			if !allowed {
				retryAfter := max(int(math.Ceil(wait.Seconds())), 1)

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(kl.limit.Requests))
				w.Header().Set("X-RateLimit-Window", kl.limit.Window.String())

				log.Warn("rate limit exceeded", "retry_after", retryAfter)
				WriteError(w, http.StatusTooManyRequests,
					"rate_limit_exceeded", "Too many requests. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP limits by client address.
func RateLimitByIP(limit RateLimit, trustProxy bool) Middleware {
	return RateLimitMiddleware(limit, ClientIP(trustProxy))
}

// RateLimitByOperator limits by operator token and client address, so one
// leaked token cannot drain another client's budget.
func RateLimitByOperator(limit RateLimit, trustProxy bool) Middleware {
	return RateLimitMiddleware(limit, JoinKeys(OperatorKey, ClientIP(trustProxy)))
}
