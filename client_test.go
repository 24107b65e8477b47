package sdkwa

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

func TestNew(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "https://api.sdkwa.pro", WithTimeout(5*time.Second))

	if client == nil {
		t.Fatal("expected client to be created")
	}

	if client.config.InstanceID != testInstanceID {
		t.Errorf("expected instanceID=%s, got %s", testInstanceID, client.config.InstanceID)
	}

	if client.dispatcher == nil || client.dispatcher.http == nil {
		t.Fatal("expected dispatcher to be initialised")
	}
}

func TestClient_StringHidesToken(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "https://api.sdkwa.pro")

	s := client.String()
	if strings.Contains(s, testAPIToken) {
		t.Errorf("String() must not expose the token: %s", s)
	}
	if !strings.Contains(s, testInstanceID) {
		t.Errorf("expected String() to mention the instance, got %s", s)
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "https://api.sdkwa.pro")

	tests := []struct {
		name     string
		path     string
		override Messenger
		expected string
	}{
		{"default messenger", "/sendMessage", "", "https://api.sdkwa.pro/whatsapp/123/sendMessage"},
		{"telegram override", "/sendMessage", MessengerTelegram, "https://api.sdkwa.pro/telegram/123/sendMessage"},
		{"missing leading slash", "getSettings", "", "https://api.sdkwa.pro/whatsapp/123/getSettings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := client.BuildURL(tt.path, tt.override)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestBuildURL_InvalidMessenger(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "https://api.sdkwa.pro")

	_, err := client.BuildURL("/sendMessage", "viber")
	if err == nil {
		t.Fatal("expected error for unknown messenger")
	}
	if !errors.Is(err, ErrInvalidMessenger) {
		t.Errorf("expected ErrInvalidMessenger, got %v", err)
	}
	if !IsKind(err, KindValidation) {
		t.Errorf("expected KindValidation, got %v", err)
	}
}

func TestExecute_InvalidMessengerMakesNoRequest(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Execute(context.Background(), &Request{Method: http.MethodGet, Path: "/getSettings", Messenger: "viber"})
	if err == nil {
		t.Fatal("expected error for unknown messenger")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.TextCode != "INVALID_MESSENGER" {
		t.Errorf("expected INVALID_MESSENGER envelope, got %v", err)
	}

	if rec.count() != 0 {
		t.Errorf("expected no request, got %d", rec.count())
	}
}

func TestExecute_SetsHeaders(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL,
		WithRequestHeader("X-Custom", "custom-value"),
		WithUserID("user-1"),
		WithUserToken("user-secret"),
		WithUserAgent("tests/1.0"),
	)

	if _, err := client.Execute(context.Background(), &Request{Path: "/getStateInstance"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := rec.last(t)
	expected := map[string]string{
		"Authorization": "Bearer " + testAPIToken,
		"Content-Type":  "application/json",
		"User-Agent":    "tests/1.0",
		"X-Custom":      "custom-value",
		"x-user-id":     "user-1",
		"x-user-token":  "user-secret",
	}
	for header, value := range expected {
		if got.Header.Get(header) != value {
			t.Errorf("expected %s=%s, got %s", header, value, got.Header.Get(header))
		}
	}

	if got.Method != http.MethodGet {
		t.Errorf("expected default method GET, got %s", got.Method)
	}
	if got.Path != "/whatsapp/123/getStateInstance" {
		t.Errorf("expected path=/whatsapp/123/getStateInstance, got %s", got.Path)
	}
}

func TestExecute_OmitsUserHeadersWhenUnset(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	if _, err := client.Execute(context.Background(), &Request{Path: "/getStateInstance"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := rec.last(t)
	if got.Header.Get(HeaderUserID) != "" || got.Header.Get(HeaderUserToken) != "" {
		t.Errorf("expected no user headers, got %v", got.Header)
	}
}

func TestExecute_PerRequestHeadersOverride(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithRequestHeader("X-Trace", "client"))

	_, err := client.Execute(context.Background(), &Request{
		Method:  http.MethodPost,
		Path:    "/uploadFile",
		Raw:     []byte("binary"),
		Headers: map[string]string{"Content-Type": "application/octet-stream", "X-Trace": "request"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := rec.last(t)
	if got.Header.Get("Content-Type") != "application/octet-stream" {
		t.Errorf("expected octet-stream content type, got %s", got.Header.Get("Content-Type"))
	}
	if got.Header.Get("X-Trace") != "request" {
		t.Errorf("expected request header to win, got %s", got.Header.Get("X-Trace"))
	}
	if string(got.Body) != "binary" {
		t.Errorf("expected raw body to be sent unchanged, got %q", got.Body)
	}
}

func TestExecute_ResponseBodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		kind     BodyKind
		validate func(t *testing.T, resp *Response)
	}{
		{
			name: "empty body is no content",
			body: "",
			kind: BodyEmpty,
			validate: func(t *testing.T, resp *Response) {
				if !resp.NoContent() {
					t.Error("expected NoContent")
				}
			},
		},
		{
			name: "json body is parsed",
			body: `{"stateInstance":"authorized"}`,
			kind: BodyJSON,
			validate: func(t *testing.T, resp *Response) {
				value, ok := resp.Value.(map[string]any)
				if !ok || value["stateInstance"] != "authorized" {
					t.Errorf("unexpected value: %#v", resp.Value)
				}
			},
		},
		{
			name: "non-json body is returned unchanged",
			body: "OK, not json",
			kind: BodyRaw,
			validate: func(t *testing.T, resp *Response) {
				if string(resp.Body) != "OK, not json" {
					t.Errorf("expected raw body unchanged, got %q", resp.Body)
				}
				if resp.Value != nil {
					t.Errorf("expected no parsed value, got %#v", resp.Value)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			resp, err := client.Execute(context.Background(), &Request{Path: "/getStateInstance"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Kind != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, resp.Kind)
			}
			if resp.StatusCode != http.StatusOK {
				t.Errorf("expected status 200, got %d", resp.StatusCode)
			}
			tt.validate(t, resp)
		})
	}
}

func TestExecute_StatusErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		kind        ErrorKind
		message     string
		expectError string
	}{
		{"400 json message", http.StatusBadRequest, `{"message":"chatId is invalid"}`, KindValidation, "chatId is invalid", "sdkwa: validation error (status 400): chatId is invalid"},
		{"401 plain text", http.StatusUnauthorized, "Unauthorized", KindAuthentication, "Unauthorized", "sdkwa: authentication error (status 401): Unauthorized"},
		{"429 empty body", http.StatusTooManyRequests, "", KindRateLimit, "429 Too Many Requests", ""},
		{"403 is generic", http.StatusForbidden, `{"message":"forbidden"}`, KindGeneric, "forbidden", ""},
		{"404 is generic", http.StatusNotFound, "", KindGeneric, "404 Not Found", ""},
		{"500 json without message", http.StatusInternalServerError, `{"error":"boom"}`, KindGeneric, `{"error":"boom"}`, ""},
		{"502 non-string message", http.StatusBadGateway, `{"message":42}`, KindGeneric, `{"message":42}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &recorder{}
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				rec.record(r)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			resp, err := client.Execute(context.Background(), &Request{Method: http.MethodPost, Path: "/sendMessage", JSON: map[string]any{"chatId": "x"}})
			if err == nil {
				t.Fatal("expected error")
			}
			if resp != nil {
				t.Errorf("expected no response, got %+v", resp)
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T", err)
			}
			if apiErr.Kind != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, apiErr.Kind)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, apiErr.StatusCode)
			}
			if apiErr.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, apiErr.Message)
			}
			if tt.expectError != "" && err.Error() != tt.expectError {
				t.Errorf("expected error %q, got %q", tt.expectError, err.Error())
			}

			if rec.count() != 1 {
				t.Errorf("expected exactly one attempt (no retries), got %d", rec.count())
			}
		})
	}
}

func TestExecute_NetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	host := server.URL
	server.Close()

	logger := &recordingLogger{}
	client := newTestClient(t, host, WithRequestLogger(logger))

	_, err := client.Execute(context.Background(), &Request{Path: "/getStateInstance"})
	if err == nil {
		t.Fatal("expected network error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Kind != KindNetwork {
		t.Errorf("expected KindNetwork, got %s", apiErr.Kind)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("expected no status for network errors, got %d", apiErr.StatusCode)
	}
	if apiErr.Err == nil {
		t.Error("expected the transport cause to be wrapped")
	}
	if !strings.HasPrefix(err.Error(), "sdkwa: network error: ") {
		t.Errorf("unexpected error text: %v", err)
	}

	var sawError bool
	for _, message := range logger.all() {
		if strings.HasPrefix(message, "error: ") {
			sawError = true
		}
		if strings.Contains(message, testAPIToken) {
			t.Errorf("log message exposes the token: %s", message)
		}
	}
	if !sawError {
		t.Errorf("expected an error log entry, got %v", logger.all())
	}
}

func TestExecute_ContextCanceled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Execute(ctx, &Request{Path: "/getStateInstance"})
	if !IsKind(err, KindNetwork) {
		t.Fatalf("expected KindNetwork for a canceled context, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected the cause to be context.Canceled, got %v", err)
	}
}

func TestExecute_TimeoutIsNetwork(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-release:
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(t, server.URL, WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := client.Execute(context.Background(), &Request{Path: "/getStateInstance"})
	elapsed := time.Since(start)

	if !IsKind(err, KindNetwork) {
		t.Fatalf("expected KindNetwork for a timed out call, got %v", err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode != 0 {
		t.Errorf("expected no status for a timeout, got %d", apiErr.StatusCode)
	}
	if elapsed >= 400*time.Millisecond {
		t.Errorf("expected the call to give up near the 50ms timeout, took %s", elapsed)
	}
}

func TestNew_HTTPClientIsNotModified(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		transport http.RoundTripper
	}{
		{"nil transport", nil},
		{"shared transport", &http.Transport{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hc := &http.Client{Timeout: 7 * time.Second, Transport: tt.transport}
			client := newTestClient(t, "https://api.example.test",
				WithHTTPClient(hc),
				WithTimeout(2*time.Second),
				WithVerifyTLS(false),
			)

			if hc.Timeout != 7*time.Second {
				t.Errorf("expected caller timeout to stay 7s, got %s", hc.Timeout)
			}
			if hc.Transport != tt.transport {
				t.Errorf("expected caller transport to be untouched, got %T", hc.Transport)
			}
			if shared, ok := tt.transport.(*http.Transport); ok && shared.TLSClientConfig != nil {
				t.Error("expected caller TLS config to stay nil")
			}

			used := client.dispatcher.http.GetClient()
			if used == hc {
				t.Fatal("expected the client to work on a copy")
			}
			if used.Timeout != 2*time.Second {
				t.Errorf("expected the copy to carry the configured timeout, got %s", used.Timeout)
			}
			transport, ok := used.Transport.(*http.Transport)
			if !ok || transport.TLSClientConfig == nil || !transport.TLSClientConfig.InsecureSkipVerify {
				t.Error("expected the copy to skip TLS verification")
			}
		})
	}
}

func TestNew_HTTPClientKeepsTLSSettings(t *testing.T) {
	t.Parallel()

	shared := &http.Transport{TLSClientConfig: &tls.Config{ServerName: "pinned.example.test", MinVersion: tls.VersionTLS12}}
	client := newTestClient(t, "https://api.example.test",
		WithHTTPClient(&http.Client{Transport: shared}),
		WithVerifyTLS(false),
	)

	if shared.TLSClientConfig.InsecureSkipVerify {
		t.Fatal("expected the caller TLS config to keep verifying certificates")
	}
	transport := client.dispatcher.http.GetClient().Transport.(*http.Transport)
	if transport.TLSClientConfig.ServerName != "pinned.example.test" {
		t.Errorf("expected ServerName to be carried over, got %q", transport.TLSClientConfig.ServerName)
	}
	if !transport.TLSClientConfig.InsecureSkipVerify {
		t.Error("expected the copy to skip TLS verification")
	}
}

type idleCountingTransport struct {
	closed atomic.Int32
}

func (rt *idleCountingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	return http.DefaultTransport.RoundTrip(r)
}

func (rt *idleCountingTransport) CloseIdleConnections() {
	rt.closed.Add(1)
}

func TestClose_LeavesCallerTransportOpen(t *testing.T) {
	t.Parallel()

	rt := &idleCountingTransport{}
	client, err := New(
		withEnv(nil),
		WithInstanceID(testInstanceID),
		WithAPIToken(testAPIToken),
		WithHTTPClient(&http.Client{Transport: rt}),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if got := rt.closed.Load(); got != 0 {
		t.Errorf("expected caller transport idle connections to stay open, closed %d times", got)
	}
}

func TestExecute_InvalidRequest(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	tests := []struct {
		name string
		req  *Request
	}{
		{"nil request", nil},
		{"json and raw", &Request{Path: "/x", JSON: map[string]any{}, Raw: []byte("x")}},
		{"file without reader", &Request{Path: "/x", File: &FilePart{Field: "file"}}},
		{"form without file", &Request{Path: "/x", Form: map[string]string{"a": "b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Execute(context.Background(), tt.req)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
			if !goerrors.IsCategory(err, goerrors.CategoryBadInput) {
				t.Errorf("expected bad input category, got %v", err)
			}
		})
	}

	if rec.count() != 0 {
		t.Errorf("expected no requests, got %d", rec.count())
	}
}

func TestClose(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	if err := client.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got %v", err)
	}

	_, err := client.Execute(context.Background(), &Request{Path: "/getStateInstance"})
	if !errors.Is(err, ErrClientClosed) {
		t.Errorf("expected ErrClientClosed, got %v", err)
	}
}
