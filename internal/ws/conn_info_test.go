package ws

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConnInfo(t *testing.T) {
	req := httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("X-Device-Id", "device-9")
	req.Header.Set("X-Request-Id", "req-42")
	req.RemoteAddr = "203.0.113.7:51234"

	info := newConnInfo(req, "trace-1")

	require.NotEmpty(t, info.ConnID)
	require.Equal(t, "device-9", info.DeviceID)
	require.Equal(t, "req-42", info.RequestID)
	require.Equal(t, "203.0.113.7", info.IP)
	require.Equal(t, "trace-1", info.TraceID)
	require.False(t, info.ConnectedAt.IsZero())
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest("GET", "/ws", nil)
	req.RemoteAddr = "10.0.0.1:443"
	req.Header.Set("X-Forwarded-For", "198.51.100.4, 10.0.0.1")

	require.Equal(t, "198.51.100.4", clientIP(req))
}

func TestClientIPBareRemoteAddr(t *testing.T) {
	req := httptest.NewRequest("GET", "/ws", nil)
	req.RemoteAddr = "198.51.100.4"

	require.Equal(t, "198.51.100.4", clientIP(req))
}
