package registry

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"peerid/internal/util/logx"
)

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	mu     sync.Mutex
	limits map[string]*rate.Limiter
	r      rate.Limit
	b      int

	stop chan struct{}
	once sync.Once
}

// NewIPRateLimiter returns a limiter allowing r events per second with burst b
// per IP, and starts a goroutine dropping idle buckets until Close.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	l := &IPRateLimiter{
		limits: make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
		stop:   make(chan struct{}),
	}
	go l.cleanUpVisitors(3 * time.Minute)
	return l
}

// GetLimiter returns the bucket for ip, creating it on first use.
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limits[ip]
	if !ok {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limits[ip] = limiter
	}
	return limiter
}

// Close stops the cleanup goroutine.
func (l *IPRateLimiter) Close() {
	l.once.Do(func() { close(l.stop) })
}

// cleanUpVisitors drops buckets that are full again, i.e. idle clients.
func (l *IPRateLimiter) cleanUpVisitors(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case now := <-ticker.C:
			l.mu.Lock()
			removed := 0
			for ip, limiter := range l.limits {
				if limiter.TokensAt(now) >= float64(limiter.Burst()) {
					delete(l.limits, ip)
					removed++
				}
			}
			active := len(l.limits)
			l.mu.Unlock()
			logx.Debug("Rate limiter cleanup", "removed", removed, "active", active)
		}
	}
}

// Middleware rejects requests from IPs that exhausted their bucket with 429.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if ip == "" {
			ip = "unknown_ip"
		}

		if !l.GetLimiter(ip).Allow() {
			respondError(w, NewError(ErrRateLimitExceeded))
			return
		}
		next.ServeHTTP(w, r)
	})
}
