package sdkwa

import (
	"context"
	"net/http"
)

// The calls below only make sense against the telegram messenger. They use
// the client default unless WithMessenger(MessengerTelegram) is passed.

func (c *Client) CreateApp(ctx context.Context, req CreateAppRequest, opts ...CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c, Request{Method: http.MethodPost, Path: "/createApp", JSON: req}, opts)
}

func (c *Client) SendConfirmationCode(ctx context.Context, phoneNumber int64, opts ...CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/sendConfirmationCode",
		JSON:   map[string]any{"phoneNumber": phoneNumber},
	}, opts)
}

func (c *Client) SignInWithConfirmationCode(ctx context.Context, code string, opts ...CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/signInWithConfirmationCode",
		JSON:   map[string]any{"code": code},
	}, opts)
}
