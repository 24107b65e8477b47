package sdkwa

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
)

func (c *Client) GetSettings(ctx context.Context, opts ...CallOption) (*Settings, error) {
	return invoke[Settings](ctx, c, Request{Method: http.MethodGet, Path: "/getSettings"}, opts)
}

func (c *Client) SetSettings(ctx context.Context, settings Settings, opts ...CallOption) (*SetSettingsResponse, error) {
	return invoke[SetSettingsResponse](ctx, c, Request{Method: http.MethodPost, Path: "/setSettings", JSON: settings}, opts)
}

func (c *Client) GetStateInstance(ctx context.Context, opts ...CallOption) (*StateInstanceResponse, error) {
	return invoke[StateInstanceResponse](ctx, c, Request{Method: http.MethodGet, Path: "/getStateInstance"}, opts)
}

func (c *Client) GetWarmingPhoneStatus(ctx context.Context, opts ...CallOption) (*WarmingPhoneStatusResponse, error) {
	return invoke[WarmingPhoneStatusResponse](ctx, c, Request{Method: http.MethodGet, Path: "/getWarmingPhoneStatus"}, opts)
}

func (c *Client) Reboot(ctx context.Context, opts ...CallOption) (*RebootResponse, error) {
	return invoke[RebootResponse](ctx, c, Request{Method: http.MethodGet, Path: "/reboot"}, opts)
}

func (c *Client) Logout(ctx context.Context, opts ...CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c, Request{Method: http.MethodGet, Path: "/logout"}, opts)
}

// QRResponse is returned by the qr endpoint. Type is "qrCode" when Message
// holds the code, otherwise Message explains why no code is available (for
// example "alreadyLogged" or "error").
type QRResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

const QRTypeCode = "qrCode"

// PNG decodes Message as a base64 image. The data-URL prefix is optional.
func (q *QRResponse) PNG() ([]byte, error) {
	payload := q.Message
	if i := strings.Index(payload, ";base64,"); i >= 0 {
		payload = payload[i+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(payload)
}

func (c *Client) GetQR(ctx context.Context, opts ...CallOption) (*QRResponse, error) {
	return invoke[QRResponse](ctx, c, Request{Method: http.MethodGet, Path: "/qr"}, opts)
}

// GetAuthorizationCode requests a code for linking the account by phone number
// instead of a QR scan.
func (c *Client) GetAuthorizationCode(ctx context.Context, phoneNumber int64, opts ...CallOption) (*AuthorizationCodeResponse, error) {
	return invoke[AuthorizationCodeResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/getAuthorizationCode",
		JSON:   map[string]any{"phoneNumber": phoneNumber},
	}, opts)
}

func (c *Client) RequestRegistrationCode(ctx context.Context, phoneNumber int64, method RegistrationCodeMethod, opts ...CallOption) (*StatusResponse, error) {
	if method == "" {
		method = RegistrationBySMS
	}
	return invoke[StatusResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/requestRegistrationCode",
		JSON:   map[string]any{"phoneNumber": phoneNumber, "method": method},
	}, opts)
}

func (c *Client) SendRegistrationCode(ctx context.Context, code string, opts ...CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/sendRegistrationCode",
		JSON:   map[string]any{"code": code},
	}, opts)
}
