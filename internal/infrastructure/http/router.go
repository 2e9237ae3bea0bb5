package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey struct{}

// requestMeta carries correlation ids through the request context.
type requestMeta struct {
	RequestID string
	TraceID   string
}

func metaFrom(ctx context.Context) requestMeta {
	m, _ := ctx.Value(ctxKey{}).(requestMeta)
	return m
}

func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(correlate, s.recoverPanics, s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := s.svc.Ready(r.Context()); err != nil {
			s.log.Warn("http.not_ready", zap.Error(err))
			writeError(w, http.StatusServiceUnavailable, "store not ready")
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/prices", s.ListPrices)
		r.Get("/prices/latest", s.LatestPrice)
		r.Post("/prices/refresh", s.Refresh)
		r.Get("/sync/status", s.SyncStatus)
	})
	return r
}

func headerOrNew(r *http.Request, name string) string {
	if v := r.Header.Get(name); v != "" {
		return v
	}
	return uuid.NewString()
}

// correlate echoes X-Request-ID and X-Trace-Id, generating missing ones.
func correlate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := requestMeta{
			RequestID: headerOrNew(r, "X-Request-ID"),
			TraceID:   headerOrNew(r, "X-Trace-Id"),
		}
		w.Header().Set("X-Request-ID", m.RequestID)
		w.Header().Set("X-Trace-Id", m.TraceID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, m)))
	})
}

func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			s.log.Error("http.panic",
				zap.Any("error", rec),
				zap.String("path", r.URL.Path),
				zap.String("request_id", metaFrom(r.Context()).RequestID),
			)
			writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}()
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	code int
	n    int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.code = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.code == 0 {
		rw.code = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.n += n
	return n, err
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		began := time.Now()
		rw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		m := metaFrom(r.Context())
		s.log.Info("http_request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", rw.code),
			zap.Int("bytes", rw.n),
			zap.String("request_id", m.RequestID),
			zap.String("trace_id", m.TraceID),
			zap.Duration("took", time.Since(began)),
		)
	})
}
