package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// ServerInstance represents a running HTTP test server.
type ServerInstance struct {
	BaseURL string
	Close   func()
}

// StartServer serves handler on a loopback test server that closes with
// the test.
func StartServer(t testing.TB, handler http.Handler) *ServerInstance {
	t.Helper()
	if handler == nil {
		t.Fatalf("start server: handler is nil")
	}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &ServerInstance{
		BaseURL: server.URL,
		Close:   server.Close,
	}
}
