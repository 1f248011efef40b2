package middlewares

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"easybooking/internal/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter tracks one limiter per client IP: a burst of max requests
// refilled over the window, so the (max+1)th rapid request inside one window
// is rejected. Applied only to the API surface, not to static/root
// responses. Callers are fully independent of each other.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	window   time.Duration
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(max) / window.Seconds()),
		burst:    max,
		window:   window,
	}
	go rl.cleanupVisitors()
	return rl
}

// getLimiter looks up or creates the caller's limiter under the lock, so a
// burst of simultaneous requests from one caller can never undercount.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > rl.window {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		limiter := rl.getLimiter(ip)
		if !limiter.Allow() {
			res := limiter.Reserve()
			retryAfter := int(math.Ceil(res.Delay().Seconds()))
			res.Cancel()
			if retryAfter < 1 {
				retryAfter = 1
			}

			utils.RateLimitedTotal.Inc()
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			utils.RespondWithError(w, http.StatusTooManyRequests,
				"Too many requests, please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}
