package api

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

const requestIDHeader = "X-Request-ID"

type middlewareFunc func(http.Handler) http.Handler

// chainMiddleware wraps h in the given order, so the last middleware sees
// the request first.
func chainMiddleware(h http.Handler, m ...middlewareFunc) http.Handler {
	for _, wrap := range m {
		h = wrap(h)
	}
	return h
}

func recoverHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			hlog.FromRequest(r).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("handler panicked")
			writeError(w, http.StatusInternalServerError, "Server error")
		}()
		next.ServeHTTP(w, r)
	})
}

// loggerHandler writes an access log line for every request that skip does
// not filter out.
func loggerHandler(skip func(w http.ResponseWriter, r *http.Request) bool) middlewareFunc {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, took time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", size).
			Str("remote_addr", r.RemoteAddr).
			Str("user_agent", r.UserAgent()).
			Dur("took", took).
			Msg("request")
	})

	return func(next http.Handler) http.Handler {
		logged := access(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip != nil && skip(w, r) {
				next.ServeHTTP(w, r)
				return
			}
			logged.ServeHTTP(w, r)
		})
	}
}

// realIPHandler sets RemoteAddr from X-Real-IP or X-Forwarded-For.
func realIPHandler(next http.Handler) http.Handler {
	return middleware.RealIP(next)
}

// requestIDHandler attaches the global logger to the request, tags it with
// a request id and echoes the id back in X-Request-ID.
func requestIDHandler(next http.Handler) http.Handler {
	return hlog.NewHandler(log.Logger)(hlog.RequestIDHandler("request_id", requestIDHeader)(next))
}

func corsHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		h.Set("Access-Control-Expose-Headers", requestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
