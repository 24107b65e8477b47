package sdkwa

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
)

const (
	testInstanceID = "123"
	testAPIToken   = "secret-token"
)

// withEnv replaces the process environment with env for one client.
func withEnv(env map[string]string) Option {
	return func(o *Options) {
		o.lookupEnv = func(key string) (string, bool) {
			value, ok := env[key]
			return value, ok
		}
	}
}

func newTestClient(t *testing.T, host string, opts ...Option) *Client {
	t.Helper()

	base := []Option{
		withEnv(nil),
		WithInstanceID(testInstanceID),
		WithAPIToken(testAPIToken),
		WithAPIHost(host),
	}
	client, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// capturedRequest is what a test server saw of the last request.
type capturedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

func (c capturedRequest) jsonBody(t *testing.T) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(c.Body, &body); err != nil {
		t.Fatalf("request body is not a JSON object: %v (%s)", err, c.Body)
	}
	return body
}

// recorder captures requests made to a test server.
type recorder struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (r *recorder) record(req *http.Request) {
	body, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, capturedRequest{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.RawQuery,
		Header: req.Header.Clone(),
		Body:   body,
	})
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

func (r *recorder) last(t *testing.T) capturedRequest {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		t.Fatal("expected at least one request")
	}
	return r.requests[len(r.requests)-1]
}

// recordingLogger keeps every formatted message.
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) add(level, format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, level+": "+fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Errorf(format string, v ...any) { l.add("error", format, v...) }
func (l *recordingLogger) Warnf(format string, v ...any)  { l.add("warn", format, v...) }
func (l *recordingLogger) Debugf(format string, v ...any) { l.add("debug", format, v...) }

func (l *recordingLogger) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}
