package sdkwa

import (
	"context"
	"io"
	"net/http"
)

func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest, opts ...CallOption) (*SendResponse, error) {
	return invoke[SendResponse](ctx, c, Request{Method: http.MethodPost, Path: "/sendMessage", JSON: req}, opts)
}

func (c *Client) SendContact(ctx context.Context, req SendContactRequest, opts ...CallOption) (*SendResponse, error) {
	return invoke[SendResponse](ctx, c, Request{Method: http.MethodPost, Path: "/sendContact", JSON: req}, opts)
}

// SendFileByUpload sends file as a multipart upload together with the message
// fields of req.
func (c *Client) SendFileByUpload(ctx context.Context, req SendFileByUploadRequest, file io.Reader, opts ...CallOption) (*SendResponse, error) {
	form := map[string]string{
		"chatId":   req.ChatID,
		"fileName": req.FileName,
	}
	if req.Caption != "" {
		form["caption"] = req.Caption
	}
	if req.QuotedMessageID != "" {
		form["quotedMessageId"] = req.QuotedMessageID
	}
	return invoke[SendResponse](ctx, c, Request{
		Method: http.MethodPost,
		Path:   "/sendFileByUpload",
		File:   &FilePart{Field: "file", FileName: req.FileName, Reader: file},
		Form:   form,
	}, opts)
}

func (c *Client) SendFileByURL(ctx context.Context, req SendFileByURLRequest, opts ...CallOption) (*SendResponse, error) {
	return invoke[SendResponse](ctx, c, Request{Method: http.MethodPost, Path: "/sendFileByUrl", JSON: req}, opts)
}

func (c *Client) SendLocation(ctx context.Context, req SendLocationRequest, opts ...CallOption) (*SendResponse, error) {
	return invoke[SendResponse](ctx, c, Request{Method: http.MethodPost, Path: "/sendLocation", JSON: req}, opts)
}

// UploadFile stores data on the API's file storage and returns its URL for a
// later SendFileByURL.
func (c *Client) UploadFile(ctx context.Context, data []byte, opts ...CallOption) (*UploadFileResponse, error) {
	if data == nil {
		data = []byte{}
	}
	return invoke[UploadFileResponse](ctx, c, Request{
		Method:  http.MethodPost,
		Path:    "/uploadFile",
		Raw:     data,
		Headers: map[string]string{"Content-Type": "application/octet-stream"},
	}, opts)
}
