package middleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const visitorTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitors holds one token bucket per client address.
type visitors struct {
	mu    sync.Mutex
	byIP  map[string]*visitor
	limit rate.Limit
	burst int
}

func newVisitors(rps float64, burst int) *visitors {
	return &visitors{
		byIP:  make(map[string]*visitor),
		limit: rate.Limit(rps),
		burst: burst,
	}
}

// allow takes a token from ip's bucket, creating the bucket on first use.
func (vs *visitors) allow(ip string, now time.Time) bool {
	vs.mu.Lock()
	v, ok := vs.byIP[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(vs.limit, vs.burst)}
		vs.byIP[ip] = v
	}
	v.lastSeen = now
	vs.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// evict drops visitors not seen since before cutoff.
func (vs *visitors) evict(cutoff time.Time) {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	for ip, v := range vs.byIP {
		if v.lastSeen.Before(cutoff) {
			delete(vs.byIP, ip)
		}
	}
}

func (vs *visitors) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(visitorTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			vs.evict(now.Add(-visitorTTL))
		}
	}
}

// retryAfter is the wait for one token, in whole seconds.
func (vs *visitors) retryAfter() string {
	if vs.limit <= 0 {
		return "60"
	}
	return strconv.Itoa(int(math.Ceil(1 / float64(vs.limit))))
}

// RateLimit limits requests per client IP to rps with bursts up to burst.
// Idle clients are forgotten until ctx is done.
func RateLimit(ctx context.Context, rps float64, burst int) func(http.Handler) http.Handler {
	vs := newVisitors(rps, burst)
	go vs.evictLoop(ctx)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !vs.allow(clientIP(r), time.Now()) {
				w.Header().Set("Retry-After", vs.retryAfter())
				writeJSONError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
