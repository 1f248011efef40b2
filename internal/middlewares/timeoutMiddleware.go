package middlewares

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"easybooking/internal/utils"
)

// Timeout bounds request processing to d. On overrun it writes a single
// classified 504 response and discards whatever the original handler
// produces afterwards; the client never receives two responses for one
// request. The hosting platform kills requests at ~10s, so this must fire
// first with a clean error.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			tw := &timeoutWriter{w: w, h: make(http.Header)}
			done := make(chan struct{})
			panicChan := make(chan interface{}, 1)

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicChan <- p
					}
				}()
				next.ServeHTTP(tw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case <-done:
			case p := <-panicChan:
				log.Error().Interface("panic", p).Str("path", r.URL.Path).Msg("Handler panicked")
				if tw.markTimedOut() {
					utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
				}
			case <-ctx.Done():
				if tw.markTimedOut() {
					utils.RequestTimeoutsTotal.Inc()
					log.Warn().Str("method", r.Method).Str("path", r.URL.Path).Msg("Request timed out")
					utils.RespondWithError(w, http.StatusGatewayTimeout, "Request timeout")
				}
			}
		})
	}
}

// timeoutWriter buffers header mutations and refuses all writes once the
// deadline has fired. Follows the response-wrapper shape of the metrics
// middleware.
type timeoutWriter struct {
	w http.ResponseWriter
	h http.Header

	mu          sync.Mutex
	wroteHeader bool
	timedOut    bool
}

func (tw *timeoutWriter) Header() http.Header { return tw.h }

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.writeHeaderLocked(code)
}

func (tw *timeoutWriter) writeHeaderLocked(code int) {
	if tw.timedOut || tw.wroteHeader {
		return
	}
	tw.wroteHeader = true
	dst := tw.w.Header()
	for k, vv := range tw.h {
		dst[k] = vv
	}
	tw.w.WriteHeader(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		// Late result from a timed-out handler; swallow it.
		return len(b), nil
	}
	if !tw.wroteHeader {
		tw.writeHeaderLocked(http.StatusOK)
	}
	return tw.w.Write(b)
}

// markTimedOut claims the response for the guard. It fails if the handler
// already started writing, in which case the client keeps that response.
func (tw *timeoutWriter) markTimedOut() bool {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.wroteHeader {
		return false
	}
	tw.timedOut = true
	return true
}
