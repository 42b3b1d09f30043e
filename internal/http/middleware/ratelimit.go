package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/lordsmint/portal-api/internal/auth"
	"github.com/lordsmint/portal-api/internal/config"
	"go.uber.org/zap"
)

// RateLimiter throttles anonymous traffic per IP, signed-in traffic per portal
// user, and login attempts per IP with a tighter budget
type RateLimiter struct {
	cfg            *config.RateLimitConfig
	logger         *zap.Logger
	ipLimiter      func(http.Handler) http.Handler
	userLimiter    func(http.Handler) http.Handler
	loginLimiter   func(http.Handler) http.Handler
	whitelistIPs   map[string]bool
	whitelistPaths []string
	// trustedProxies may set X-Forwarded-For; nobody else can
	trustedProxies []*net.IPNet
}

func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		cfg:            cfg,
		logger:         logger,
		whitelistIPs:   make(map[string]bool, len(cfg.WhitelistIPs)),
		whitelistPaths: cfg.WhitelistPaths,
	}
	for _, ip := range cfg.WhitelistIPs {
		rl.whitelistIPs[ip] = true
	}
	for _, proxy := range cfg.TrustedProxies {
		network, err := parseNetwork(proxy)
		if err != nil {
			logger.Warn("ignoring invalid trusted proxy", zap.String("proxy", proxy), zap.Error(err))
			continue
		}
		rl.trustedProxies = append(rl.trustedProxies, network)
	}

	byIP := httprate.KeyByIP
	if len(rl.trustedProxies) > 0 {
		byIP = func(r *http.Request) (string, error) { return "ip:" + rl.clientIP(r), nil }
	}

	rl.ipLimiter = httprate.Limit(
		cfg.RequestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(byIP),
		httprate.WithLimitHandler(rl.limitExceeded(time.Minute)),
	)
	rl.userLimiter = httprate.Limit(
		cfg.RequestsPerMinuteAuth,
		time.Minute,
		httprate.WithKeyFuncs(rl.keyByUserOrIP),
		httprate.WithLimitHandler(rl.limitExceeded(time.Minute)),
	)
	loginBudget := cfg.LoginAttemptsPerMinute
	if loginBudget <= 0 {
		loginBudget = 10
	}
	rl.loginLimiter = httprate.Limit(
		loginBudget,
		time.Minute,
		httprate.WithKeyFuncs(byIP),
		httprate.WithLimitHandler(rl.limitExceeded(time.Minute)),
	)

	logger.Info("rate limiter initialized",
		zap.Bool("enabled", cfg.Enabled),
		zap.Int("requests_per_minute", cfg.RequestsPerMinute),
		zap.Int("requests_per_minute_auth", cfg.RequestsPerMinuteAuth),
		zap.Int("login_attempts_per_minute", loginBudget),
		zap.Int("trusted_proxies", len(rl.trustedProxies)),
	)
	return rl
}

func (rl *RateLimiter) exempt(r *http.Request) bool {
	if rl.whitelistIPs[rl.clientIP(r)] {
		return true
	}
	for _, wp := range rl.whitelistPaths {
		if r.URL.Path == wp {
			return true
		}
		if prefix, ok := strings.CutSuffix(wp, "/*"); ok && strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}

func (rl *RateLimiter) wrap(limiter func(http.Handler) http.Handler, next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}
	limited := limiter(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.exempt(r) {
			next.ServeHTTP(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	})
}

// LimitByIP applies the anonymous budget; mount it before authentication
func (rl *RateLimiter) LimitByIP(next http.Handler) http.Handler {
	return rl.wrap(rl.ipLimiter, next)
}

// LimitByUser applies the per-user budget; mount it after authentication
func (rl *RateLimiter) LimitByUser(next http.Handler) http.Handler {
	return rl.wrap(rl.userLimiter, next)
}

// LimitLogin guards the login endpoint against password guessing
func (rl *RateLimiter) LimitLogin(next http.Handler) http.Handler {
	return rl.wrap(rl.loginLimiter, next)
}

func (rl *RateLimiter) keyByUserOrIP(r *http.Request) (string, error) {
	if user, ok := auth.FromContext(r.Context()); ok {
		return "user:" + user.Username, nil
	}
	return "ip:" + rl.clientIP(r), nil
}

func (rl *RateLimiter) limitExceeded(window time.Duration) http.HandlerFunc {
	retryAfter := strconv.Itoa(int(window.Seconds()))
	return func(w http.ResponseWriter, r *http.Request) {
		username := ""
		if user, ok := auth.FromContext(r.Context()); ok {
			username = user.Username
		}
		rl.logger.Warn("rate limit exceeded",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.String("client_ip", rl.clientIP(r)),
			zap.String("username", username),
		)
		w.Header().Set("Retry-After", retryAfter)
		writeJSONError(w, http.StatusTooManyRequests, "Too Many Requests", "Too many requests. Please try again later.")
	}
}

// clientIP is the socket address unless the request came through a trusted
// proxy. Then X-Forwarded-For is walked from the right, skipping the proxy
// chain, and X-Real-IP is the fallback.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	remote := socketIP(r)
	if !rl.trusted(remote) {
		return remote
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" || rl.trusted(hop) {
				continue
			}
			return hop
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return remote
}

func (rl *RateLimiter) trusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, network := range rl.trustedProxies {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func socketIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// parseNetwork accepts a CIDR or a bare address
func parseNetwork(s string) (*net.IPNet, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		_, network, err := net.ParseCIDR(s)
		return network, err
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return nil, fmt.Errorf("invalid IP address %q", s)
	}
	bits := 128
	if ip.To4() != nil {
		ip = ip.To4()
		bits = 32
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
}
