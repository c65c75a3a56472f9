package testutil

import (
	"io"
	"net/http"
	"testing"
	"time"
)

// Response is a fully read HTTP response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// HTTPGet sends a GET request with optional headers and reads the whole
// response. Transport failures end the test; any status is returned.
func HTTPGet(t *testing.T, url string, headers map[string]string) Response {
	t.Helper()
	return doRequest(t, http.MethodGet, url, headers)
}

func doRequest(t *testing.T, method, url string, headers map[string]string) Response {
	t.Helper()
	ctx := Context(t, 2*time.Second)
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("http request: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return Response{Status: resp.StatusCode, Header: resp.Header, Body: body}
}
