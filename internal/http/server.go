// Package http exposes the spending analytics over a JSON API.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/text/language"

	"gastos/internal/amqp"
	"gastos/internal/analytics"
	"gastos/internal/cache"
	"gastos/internal/core"
)

// ExpenseSource lists stored expenses for one user inside a date
// range. Empty bounds leave that side open.
type ExpenseSource interface {
	ListExpenses(ctx context.Context, userID, from, to string) ([]core.ExpenseRecord, error)
}

// MutationPublisher hands expense mutations to the ingest queue.
type MutationPublisher interface {
	PublishUpsert(ctx context.Context, msg *amqp.ExpenseUpsertMessage) error
	PublishDelete(ctx context.Context, msg *amqp.ExpenseDeleteMessage) error
}

type Server struct {
	http.Server
	store     ExpenseSource
	publisher MutationPublisher
	paceCfg   analytics.MonthPaceConfig
	lang      language.Tag

	rateLimiter *rateLimiter

	// Computed analytics responses, keyed by user so mutations can
	// invalidate per user.
	responseCache *cache.LRU[[]byte]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and returns a ready-to-run server. The
// publisher may be nil, which disables the mutation endpoints.
func NewServer(addr string, store ExpenseSource, publisher MutationPublisher, paceCfg analytics.MonthPaceConfig, lang language.Tag) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:            store,
		publisher:        publisher,
		paceCfg:          paceCfg,
		lang:             lang,
		rateLimiter:      newRateLimiter(),
		responseCache:    cache.NewLRU[[]byte](500, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	s.responseCache.StartJanitor(10*time.Minute, s.stopCacheCleanup)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/analytics/evolution", s.withRequestLogging(s.handleEvolution))
	mux.HandleFunc("GET /api/analytics/thirds", s.withRequestLogging(s.handleThirds))
	mux.HandleFunc("GET /api/analytics/pace", s.withRequestLogging(s.handlePace))
	mux.HandleFunc("GET /api/analytics/summary", s.withRequestLogging(s.handleSummary))

	mux.HandleFunc("POST /api/expenses", s.withRequestLogging(s.handleCreateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.withRequestLogging(s.handleDeleteExpense))

	return s
}

// Shutdown stops the background goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withRequestLogging adds a request ID, rate limiting on mutations,
// and start/completion logs.
func (s *Server) withRequestLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// Simple in-memory rate limiter for mutation endpoints.
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes client entries older than 10 minutes
func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		if rl.stopCleanup != nil {
			close(rl.stopCleanup)
		}
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]

	if !exists {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	// Reset counter if more than 1 minute has passed
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	// Allow up to 60 requests per minute
	client.requests++
	client.lastRequest = now

	return client.requests <= 60
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
