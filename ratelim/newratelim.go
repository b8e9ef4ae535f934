package ratelim

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"

	"goodjob/apperr"
	"goodjob/globals"
	"goodjob/utils"
)

// idleTTL is how long an unused visitor limiter is kept.
const idleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per authenticated user, falling back to
// the client address for anonymous requests.
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex

	every rate.Limit
	burst int
	now   func() time.Time
}

// NewRateLimiter allows perMinute requests per minute for each visitor,
// with bursts of the same size.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		every:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		now:      time.Now,
	}
}

// Get or create a limiter for key, dropping visitors idle for too long.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for k, v := range rl.visitors {
		if now.Sub(v.lastSeen) > idleTTL {
			delete(rl.visitors, k)
		}
	}

	if v, exists := rl.visitors[key]; exists {
		v.lastSeen = now
		return v.limiter
	}

	limiter := rate.NewLimiter(rl.every, rl.burst)
	rl.visitors[key] = &visitor{limiter: limiter, lastSeen: now}
	return limiter
}

// Allow consumes one request for key.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).AllowN(rl.now(), 1)
}

// Limit enforces rate limiting. Wrap it inside the auth middleware so the
// user id is available.
func (rl *RateLimiter) Limit(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if !rl.Allow(visitorKey(r)) {
			utils.RespondWithAppError(w, apperr.New("RATE_LIMITED", "too many requests, please try again later", http.StatusTooManyRequests))
			return
		}
		next(w, r, ps)
	}
}

func visitorKey(r *http.Request) string {
	if id, ok := r.Context().Value(globals.UserIDKey).(string); ok && id != "" {
		return "user:" + id
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
