package sdkwa

import (
	"context"
	"net/http"
	"strings"
)

const (
	instanceAPIPrefix = "/api/v1/instance/user"
	scopeInstance     = "instance"
)

// InstanceClient manages the instances of a user account. It authenticates
// with the x-user-id and x-user-token headers only.
type InstanceClient struct {
	config     Config
	dispatcher *dispatcher
}

// InstanceOrder selects the tariff and billing period of a created or
// extended instance.
type InstanceOrder struct {
	Tariff      string `json:"tariff"`
	Period      string `json:"period"`
	PaymentType string `json:"paymentType,omitempty"`
}

// InstanceResponse is the open document returned by the lifecycle endpoints.
type InstanceResponse map[string]any

// NewInstanceClient resolves the user credentials from opts or SDKWA_USER_ID
// and SDKWA_USER_TOKEN. Instance id and API token are not needed.
func NewInstanceClient(opts ...Option) (*InstanceClient, error) {
	options := newClientOptions()
	for _, opt := range opts {
		opt(options)
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	config := resolveConfig(options)
	if err := config.validateUser(); err != nil {
		return nil, err
	}

	return &InstanceClient{
		config: config,
		dispatcher: newDispatcher(config, options, map[string]string{
			HeaderUserID:    config.UserID,
			HeaderUserToken: config.UserToken,
		}),
	}, nil
}

func (c *InstanceClient) Config() Config {
	return c.config
}

func (c *InstanceClient) ListInstances(ctx context.Context) (*InstanceResponse, error) {
	return c.post(ctx, "/instances/list", nil)
}

func (c *InstanceClient) CreateInstance(ctx context.Context, order InstanceOrder) (*InstanceResponse, error) {
	return c.post(ctx, "/instance/createByOrder", order)
}

func (c *InstanceClient) ExtendInstance(ctx context.Context, idInstance int64, order InstanceOrder) (*InstanceResponse, error) {
	body := map[string]any{
		"idInstance": idInstance,
		"tariff":     order.Tariff,
		"period":     order.Period,
	}
	if order.PaymentType != "" {
		body["paymentType"] = order.PaymentType
	}
	return c.post(ctx, "/instance/extendByOrder", body)
}

func (c *InstanceClient) DeleteInstance(ctx context.Context, idInstance int64) (*InstanceResponse, error) {
	return c.post(ctx, "/instance/delete", map[string]any{"idInstance": idInstance})
}

func (c *InstanceClient) RestoreInstance(ctx context.Context, idInstance int64) (*InstanceResponse, error) {
	return c.post(ctx, "/instance/restore", map[string]any{"idInstance": idInstance})
}

func (c *InstanceClient) Close() error {
	c.dispatcher.close()
	return nil
}

func (c *InstanceClient) post(ctx context.Context, path string, body any) (*InstanceResponse, error) {
	req := &Request{Method: http.MethodPost, Path: path, JSON: body}
	resp, err := c.dispatcher.do(ctx, call{
		url:     c.url(path),
		scope:   scopeInstance,
		request: req,
	})
	if err != nil {
		return nil, err
	}
	return decodeInto[InstanceResponse](resp)
}

func (c *InstanceClient) url(path string) string {
	return c.config.APIHost + instanceAPIPrefix + normalizePath(strings.TrimSpace(path))
}
