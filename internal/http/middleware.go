package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"splitter/internal/log"
)

// RequestIDHeader carries the request id back to the client.
const RequestIDHeader = "X-Request-ID"

// requestIDFor honours a well-formed incoming X-Request-ID and mints a
// fresh uuid otherwise.
func requestIDFor(r *http.Request) string {
	id := r.Header.Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		return uuid.NewString()
	}
	return id
}

// statusRecorder wraps http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.wroteHeader = true
	}
	return rw.ResponseWriter.Write(b)
}

// instrument wraps a route handler with the request id header, security headers,
// rate limiting of POSTs, structured request logging and latency metrics.
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)

		ctx := r.Context()
		requestID := log.RequestIDFromContext(ctx)
		if requestID == "" {
			requestID = requestIDFor(r)
			ctx = log.NewContext(ctx, log.FromContext(ctx).With(log.FieldRequestID, requestID))
			r = r.WithContext(ctx)
		}
		w.Header().Set(RequestIDHeader, requestID)
		logger := log.FromContext(ctx)

		logger.DebugContext(ctx, "HTTP request started",
			log.NewFields().WithHTTPRequest(r.Method, r.URL.Path, clientIP, r.UserAgent()).ToSlice()...)

		if isSuspiciousRequest(r) {
			logger.WarnContext(ctx, "Suspicious request detected",
				log.NewFields().WithHTTPRequest(r.Method, r.URL.Path, clientIP, r.UserAgent()).ToSlice()...)
			if s.metrics != nil {
				s.metrics.ObserveSuspicious()
			}
		}

		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		setSecurityHeaders(rw.Header())

		if r.Method == http.MethodPost && !s.limiter.allow(clientIP) {
			logger.WarnContext(ctx, "Rate limit exceeded", log.FieldClientIP, clientIP, log.FieldPath, r.URL.Path)
			rw.Header().Set("Retry-After", "60")
			http.Error(rw, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
		} else {
			next(rw, r)
		}

		duration := time.Since(start)
		if s.metrics != nil {
			s.metrics.ObserveRequest(r.Method, route, rw.statusCode, duration)
		}

		level := logger.InfoContext
		if rw.statusCode >= 500 {
			level = logger.ErrorContext
		} else if rw.statusCode >= 400 {
			level = logger.WarnContext
		}
		level(ctx, "HTTP request completed",
			log.NewFields().
				WithHTTPRequest(r.Method, r.URL.Path, clientIP, r.UserAgent()).
				WithHTTPResponse(rw.statusCode, duration.Milliseconds()).
				ToSlice()...)
	}
}
