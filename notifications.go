package sdkwa

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sdkwa/sdkwa-go/webhook"
)

// ReceiveNotification takes the oldest queued notification. It returns nil
// and no error when the queue is empty.
func (c *Client) ReceiveNotification(ctx context.Context, opts ...CallOption) (*webhook.Notification, error) {
	resp, err := c.send(ctx, Request{Method: http.MethodGet, Path: "/receiveNotification"}, opts)
	if err != nil {
		return nil, err
	}
	if resp.NoContent() || (resp.Kind == BodyJSON && resp.Value == nil) {
		return nil, nil
	}
	return decodeInto[webhook.Notification](resp)
}

// DeleteNotification removes a processed notification from the queue.
// Deleting the same receipt twice surfaces the server's status for the second
// call as an APIError.
func (c *Client) DeleteNotification(ctx context.Context, receiptID int64, opts ...CallOption) (*DeleteNotificationResponse, error) {
	return invoke[DeleteNotificationResponse](ctx, c, Request{
		Method: http.MethodDelete,
		Path:   "/deleteNotification/" + strconv.FormatInt(receiptID, 10),
	}, opts)
}

// ProcessNotification runs one receive, dispatch and delete cycle through
// router. It reports false when the queue was empty. When the callback fails
// its error is returned and the notification stays queued for a later poll.
func (c *Client) ProcessNotification(ctx context.Context, router *webhook.Router, opts ...CallOption) (bool, error) {
	notification, err := c.ReceiveNotification(ctx, opts...)
	if err != nil {
		return false, err
	}
	if notification == nil {
		return false, nil
	}

	if err := router.Dispatch(ctx, notification); err != nil {
		c.dispatcher.logger.Warnf("sdkwa: notification %d callback failed: %v", notification.ReceiptID, err)
		return true, err
	}

	_, err = c.DeleteNotification(ctx, notification.ReceiptID, opts...)
	return true, err
}
