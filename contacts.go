package sdkwa

import (
	"context"
	"io"
	"net/http"
)

func (c *Client) GetContacts(ctx context.Context, opts ...CallOption) ([]ContactEntry, error) {
	out, err := invoke[[]ContactEntry](ctx, c, Request{Method: http.MethodGet, Path: "/getContacts"}, opts)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (c *Client) GetChats(ctx context.Context, opts ...CallOption) ([]ContactEntry, error) {
	out, err := invoke[[]ContactEntry](ctx, c, Request{Method: http.MethodGet, Path: "/getChats"}, opts)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (c *Client) GetContactInfo(ctx context.Context, chatID string, opts ...CallOption) (*ContactInfo, error) {
	return invoke[ContactInfo](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/getContactInfo",
		JSON:   map[string]any{"chatId": chatID},
	}, opts)
}

func (c *Client) CheckWhatsapp(ctx context.Context, phoneNumber int64, opts ...CallOption) (*CheckWhatsappResponse, error) {
	return invoke[CheckWhatsappResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/checkWhatsapp",
		JSON:   map[string]any{"phoneNumber": phoneNumber},
	}, opts)
}

func (c *Client) GetAvatar(ctx context.Context, chatID string, opts ...CallOption) (*AvatarResponse, error) {
	return invoke[AvatarResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/getAvatar",
		JSON:   map[string]any{"chatId": chatID},
	}, opts)
}

// SetProfilePicture uploads image as the account avatar. fileName is only used
// for the multipart part name and content type hints.
func (c *Client) SetProfilePicture(ctx context.Context, fileName string, image io.Reader, opts ...CallOption) (*SetProfilePictureResponse, error) {
	return invoke[SetProfilePictureResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/setProfilePicture",
		File:   &FilePart{Field: "file", FileName: fileName, Reader: image},
	}, opts)
}

func (c *Client) SetProfileName(ctx context.Context, name string, opts ...CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/setProfileName",
		JSON:   map[string]any{"name": name},
	}, opts)
}

func (c *Client) SetProfileStatus(ctx context.Context, status string, opts ...CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/setProfileStatus",
		JSON:   map[string]any{"status": status},
	}, opts)
}
