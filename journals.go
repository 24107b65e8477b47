package sdkwa

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// defaultJournalMinutes is the window the server applies when minutes is not
// sent.
const defaultJournalMinutes = 1440

func (c *Client) GetChatHistory(ctx context.Context, req ChatHistoryRequest, opts ...CallOption) ([]Message, error) {
	out, err := invoke[[]Message](ctx, c, Request{Method: http.MethodPost, Path: "/getChatHistory", JSON: req}, opts)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// LastOutgoingMessages lists messages sent during the last minutes. Zero
// means the server default of 1440; negative values are rejected.
func (c *Client) LastOutgoingMessages(ctx context.Context, minutes int, opts ...CallOption) ([]Message, error) {
	return c.journal(ctx, "/lastOutgoingMessages", minutes, opts)
}

// LastIncomingMessages is the incoming counterpart of LastOutgoingMessages.
func (c *Client) LastIncomingMessages(ctx context.Context, minutes int, opts ...CallOption) ([]Message, error) {
	return c.journal(ctx, "/lastIncomingMessages", minutes, opts)
}

func (c *Client) journal(ctx context.Context, path string, minutes int, opts []CallOption) ([]Message, error) {
	if minutes < 0 {
		return nil, invalidRequestError(fmt.Sprintf("sdkwa: minutes must not be negative, got %d", minutes), path)
	}
	req := Request{Method: http.MethodGet, Path: path}
	if minutes != 0 && minutes != defaultJournalMinutes {
		req.Query = map[string]any{"minutes": minutes}
	}
	out, err := invoke[[]Message](ctx, c, req, opts)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// DownloadedFile is the result of DownloadFile. Depending on the server the
// file arrives either as the raw body (Data) or as JSON metadata pointing at
// a download URL (Info).
type DownloadedFile struct {
	Data        []byte
	ContentType string
	Info        *DownloadFileResponse
}

func (c *Client) DownloadFile(ctx context.Context, chatID, idMessage string, opts ...CallOption) (*DownloadedFile, error) {
	resp, err := c.send(ctx, Request{
		Method: http.MethodPost,
		Path:   "/downloadFile/" + url.PathEscape(idMessage),
		JSON:   map[string]any{"chatId": chatID},
	}, opts)
	if err != nil {
		return nil, err
	}

	file := &DownloadedFile{ContentType: resp.Header.Get("Content-Type")}
	if resp.Kind != BodyJSON {
		file.Data = resp.Body
		return file, nil
	}
	info, err := decodeInto[DownloadFileResponse](resp)
	if err != nil {
		return nil, err
	}
	file.Info = info
	return file, nil
}
