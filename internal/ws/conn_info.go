package ws

import (
	"net"
	"net/http"
	"strings"
	"time"
)

// ConnInfo is the per-session metadata captured at handshake time.
type ConnInfo struct {
	ConnID      string
	DeviceID    string
	IP          string
	RequestID   string
	TraceID     string
	ConnectedAt time.Time
}

// newConnInfo captures the upgrade request's correlation metadata. It is read
// once here; the session carries it for its lifetime.
func newConnInfo(r *http.Request, traceID string) ConnInfo {
	return ConnInfo{
		ConnID:      newConnID(),
		DeviceID:    r.Header.Get("X-Device-Id"),
		IP:          clientIP(r),
		RequestID:   r.Header.Get("X-Request-Id"),
		TraceID:     traceID,
		ConnectedAt: time.Now(),
	}
}

// clientIP prefers the first X-Forwarded-For hop; later entries are proxies.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
