package util

import (
	"net/http"
	"time"
)

type responseMeta struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (m *responseMeta) WriteHeader(statusCode int) {
	if m.status == 0 {
		m.status = statusCode
	}
	m.ResponseWriter.WriteHeader(statusCode)
}

func (m *responseMeta) Write(b []byte) (int, error) {
	if m.status == 0 {
		m.status = http.StatusOK
	}
	n, err := m.ResponseWriter.Write(b)
	m.bytes += n
	return n, err
}

// WithRequestLog emits one structured line per request. The logger comes
// from the context, so the request id attached by WithRequestID rides along
// automatically. Health probes are skipped to keep the log readable.
func WithRequestLog(service string, trusted *TrustedProxies, next http.Handler) http.Handler {
	if service == "" {
		service = "web"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		meta := &responseMeta{ResponseWriter: w}
		next.ServeHTTP(meta, r)
		status := meta.status
		if status == 0 {
			status = http.StatusOK
		}
		LoggerFromContext(r.Context()).Info(
			"http_request",
			"service", service,
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", meta.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", trusted.ClientIP(r),
		)
	})
}
