package sdkwa

import (
	"context"
	"net/http"
)

// ReadChat marks the chat as read. When idMessage is empty every message in
// the chat is marked.
func (c *Client) ReadChat(ctx context.Context, chatID, idMessage string, opts ...CallOption) (*ReadChatResponse, error) {
	body := map[string]any{"chatId": chatID}
	if idMessage != "" {
		body["idMessage"] = idMessage
	}
	return invoke[ReadChatResponse](ctx, c, Request{Method: http.MethodPost, Path: "/readChat", JSON: body}, opts)
}

func (c *Client) ArchiveChat(ctx context.Context, chatID string, opts ...CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/archiveChat",
		JSON:   map[string]any{"chatId": chatID},
	}, opts)
}

func (c *Client) UnarchiveChat(ctx context.Context, chatID string, opts ...CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/unarchiveChat",
		JSON:   map[string]any{"chatId": chatID},
	}, opts)
}

func (c *Client) DeleteMessage(ctx context.Context, chatID, idMessage string, opts ...CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/deleteMessage",
		JSON:   map[string]any{"chatId": chatID, "idMessage": idMessage},
	}, opts)
}

func (c *Client) ClearMessagesQueue(ctx context.Context, opts ...CallOption) (*ClearQueueResponse, error) {
	return invoke[ClearQueueResponse](ctx, c, Request{Method: http.MethodGet, Path: "/clearMessagesQueue"}, opts)
}

func (c *Client) ShowMessagesQueue(ctx context.Context, opts ...CallOption) ([]QueuedMessage, error) {
	out, err := invoke[[]QueuedMessage](ctx, c, Request{Method: http.MethodGet, Path: "/showMessagesQueue"}, opts)
	if err != nil {
		return nil, err
	}
	return *out, nil
}
