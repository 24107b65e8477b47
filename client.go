package sdkwa

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Client calls the instance-scoped API. It is safe for concurrent use; all
// calls share one pooled HTTP transport until [Client.Close].
type Client struct {
	config     Config
	dispatcher *dispatcher
}

// New resolves the configuration from opts and the SDKWA_* environment
// variables and returns a ready client. It fails without touching the network
// when the instance id or API token is missing or blank.
func New(opts ...Option) (*Client, error) {
	options := newClientOptions()
	for _, opt := range opts {
		opt(options)
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	config := resolveConfig(options)
	if err := config.validateInstance(); err != nil {
		return nil, err
	}

	headers := map[string]string{}
	if config.UserID != "" {
		headers[HeaderUserID] = config.UserID
	}
	if config.UserToken != "" {
		headers[HeaderUserToken] = config.UserToken
	}

	return &Client{
		config:     config,
		dispatcher: newDispatcher(config, options, headers),
	}, nil
}

// Config returns a copy of the resolved configuration.
func (c *Client) Config() Config {
	return c.config
}

// Execute performs req against {host}/{messenger}/{instance}{path}.
//
// A transport failure yields an [APIError] of kind [KindNetwork]; a status of
// 400 or above yields an [APIError] classified by [Classify]. Nothing is
// retried. Successful responses with an empty body are reported through
// [Response.NoContent]; bodies that are not JSON are returned unchanged.
func (c *Client) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	messenger, err := c.messenger(req.Messenger)
	if err != nil {
		return nil, err
	}

	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	normalized := *req
	normalized.Method = method
	normalized.Path = normalizePath(req.Path)

	return c.dispatcher.do(ctx, call{
		url:     c.url(messenger, normalized.Path),
		scope:   messenger.String(),
		bearer:  c.config.APIToken,
		request: &normalized,
	})
}

// BuildURL returns the absolute URL for path, routed to override when given or
// to the default messenger otherwise.
func (c *Client) BuildURL(path string, override Messenger) (string, error) {
	messenger, err := c.messenger(override)
	if err != nil {
		return "", err
	}
	return c.url(messenger, normalizePath(path)), nil
}

// Close releases pooled connections. Calls made after Close fail with
// [ErrClientClosed].
func (c *Client) Close() error {
	c.dispatcher.close()
	return nil
}

func (c *Client) String() string {
	return fmt.Sprintf("sdkwa.Client(instance=%q, host=%q)", c.config.InstanceID, c.config.APIHost)
}

func (c *Client) messenger(override Messenger) (Messenger, error) {
	if override == "" {
		return c.config.DefaultMessenger, nil
	}
	return ParseMessenger(string(override))
}

func (c *Client) url(messenger Messenger, path string) string {
	return c.config.APIHost + "/" + messenger.String() + "/" + c.config.InstanceID + path
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

// send builds the request for an endpoint method and applies call options.
func (c *Client) send(ctx context.Context, req Request, opts []CallOption) (*Response, error) {
	for _, opt := range opts {
		opt(&req)
	}
	return c.Execute(ctx, &req)
}

// invoke sends req and decodes a JSON reply into T. An empty reply yields the
// zero T.
func invoke[T any](ctx context.Context, c *Client, req Request, opts []CallOption) (*T, error) {
	resp, err := c.send(ctx, req, opts)
	if err != nil {
		return nil, err
	}
	return decodeInto[T](resp)
}

func decodeInto[T any](resp *Response) (*T, error) {
	out := new(T)
	if resp.NoContent() {
		return out, nil
	}
	if err := resp.Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}
