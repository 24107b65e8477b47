package sdkwa

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	goerrors "github.com/goliatone/go-errors"
)

// dispatcher owns the pooled resty client shared by every call of a Client or
// InstanceClient and turns transport outcomes into a Response or an APIError.
type dispatcher struct {
	http    *resty.Client
	logger  RequestLogger
	metrics *Metrics
	closed  atomic.Bool
	// ownsTransport is false when a caller-supplied RoundTripper is shared
	// with the caller and must not have its idle connections closed.
	ownsTransport bool
}

// call is one resolved request: the absolute URL plus the labels used for
// logging and metrics.
type call struct {
	url     string
	scope   string // messenger name, or "instance" for the lifecycle API
	bearer  string
	request *Request
}

func newDispatcher(cfg Config, o *Options, headers map[string]string) *dispatcher {
	var rc *resty.Client
	ownsTransport := true
	if o.httpClient != nil {
		var hc *http.Client
		hc, ownsTransport = copyHTTPClient(o.httpClient)
		rc = resty.NewWithClient(hc)
	} else {
		rc = resty.New()
	}

	rc.SetTimeout(cfg.Timeout).
		SetLogger(o.requestLogger).
		SetHeader("User-Agent", cfg.UserAgent)

	if !cfg.VerifyTLS {
		tlsConfig := &tls.Config{}
		if t, ok := rc.GetClient().Transport.(*http.Transport); ok && t.TLSClientConfig != nil {
			tlsConfig = t.TLSClientConfig.Clone()
		}
		tlsConfig.InsecureSkipVerify = true //nolint:gosec // explicit opt-out
		rc.SetTLSClientConfig(tlsConfig)
	}

	for header, value := range o.requestHeaders {
		rc.SetHeader(header, value)
	}
	for header, value := range headers {
		rc.SetHeader(header, value)
	}

	return &dispatcher{
		http:          rc,
		logger:        o.requestLogger,
		metrics:       o.metrics,
		ownsTransport: ownsTransport,
	}
}

// copyHTTPClient returns a shallow copy of hc whose *http.Transport, if any,
// is cloned, so timeout and TLS settings never leak back into hc. The boolean
// reports whether the copy's transport belongs to the dispatcher.
func copyHTTPClient(hc *http.Client) (*http.Client, bool) {
	clone := *hc
	switch t := hc.Transport.(type) {
	case nil:
		return &clone, true
	case *http.Transport:
		clone.Transport = t.Clone()
		return &clone, true
	default:
		return &clone, false
	}
}

func (d *dispatcher) do(ctx context.Context, c call) (*Response, error) {
	if d.closed.Load() {
		return nil, localWrapError(ErrClientClosed, goerrors.CategoryInternal, "sdkwa: client is closed", "CLIENT_CLOSED", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req := c.request
	r := d.http.R().SetContext(ctx)

	if c.bearer != "" {
		r.SetAuthToken(c.bearer)
	}
	// Multipart requests get their content type, boundary included, from the
	// multipart writer.
	if req.File == nil {
		r.SetHeader("Content-Type", "application/json")
	}
	if len(req.Headers) > 0 {
		r.SetHeaders(req.Headers)
	}
	if len(req.Query) > 0 {
		r.SetQueryParams(formatQuery(req.Query))
	}

	switch {
	case req.File != nil:
		if len(req.Form) > 0 {
			r.SetMultipartFormData(req.Form)
		}
		if req.File.ContentType != "" {
			r.SetMultipartField(req.File.Field, req.File.FileName, req.File.ContentType, req.File.Reader)
		} else {
			r.SetFileReader(req.File.Field, req.File.FileName, req.File.Reader)
		}
	case req.Raw != nil:
		r.SetBody(req.Raw)
	case req.JSON != nil:
		r.SetBody(req.JSON)
	}

	d.logger.Debugf("sdkwa: %s %s", req.Method, c.url)

	startedAt := time.Now()
	res, err := r.Execute(req.Method, c.url)
	elapsed := time.Since(startedAt)

	if err != nil {
		apiErr := newNetworkError(err)
		d.logger.Errorf("sdkwa: %s %s failed: %v", req.Method, c.url, err)
		d.metrics.observe(c.scope, req.Method, req.Path, string(KindNetwork), elapsed)
		return nil, apiErr
	}

	status := res.StatusCode()
	if status >= 400 {
		apiErr := newStatusError(status, res.Body())
		d.logger.Warnf("sdkwa: %s %s returned %d (%s): %s", req.Method, c.url, status, apiErr.Kind, apiErr.Message)
		d.metrics.observe(c.scope, req.Method, req.Path, string(apiErr.Kind), elapsed)
		return nil, apiErr
	}

	d.metrics.observe(c.scope, req.Method, req.Path, outcomeSuccess, elapsed)
	return newResponse(status, res.Header(), res.Body()), nil
}

// close marks the dispatcher closed and drops idle pooled connections. It is
// safe to call more than once.
func (d *dispatcher) close() {
	if d.closed.Swap(true) {
		return
	}
	if d.ownsTransport {
		d.http.GetClient().CloseIdleConnections()
	}
}

func formatQuery(query map[string]any) map[string]string {
	params := make(map[string]string, len(query))
	for key, value := range query {
		if value == nil {
			continue
		}
		params[key] = fmt.Sprint(value)
	}
	return params
}
