// Package sdkwa provides an HTTP client for the SDKWA messaging API
// (WhatsApp and Telegram).
//
// The client wraps [github.com/go-resty/resty/v2] with typed endpoint methods,
// a single classification of failed calls, and pluggable logging and metrics.
//
// # Basic Usage
//
//	c, err := sdkwa.New(
//	    sdkwa.WithInstanceID("1101000001"),
//	    sdkwa.WithAPIToken("my-token"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	sent, err := c.SendMessage(ctx, sdkwa.SendMessageRequest{
//	    ChatID:  "79001234567@c.us",
//	    Message: "hello",
//	})
//
// Every request goes to {host}/{messenger}/{instance}{path}. The messenger is
// the configured default unless a call passes [WithMessenger].
//
// # Configuration
//
// Configuration is supplied as [Option] functions passed to [New]. Values not
// given as options are read once from SDKWA_ID_INSTANCE, SDKWA_API_TOKEN,
// SDKWA_API_HOST, SDKWA_USER_ID and SDKWA_USER_TOKEN. Invalid option values
// are ignored and the default retained; a missing instance id or token fails
// [New] before any network access.
//
// # Errors
//
// Calls that reach the network and fail return an [*APIError] whose Kind is
// derived from the status code alone: 401 authentication, 400 validation,
// 429 rate limit, anything else from 400 up generic. Transport failures,
// timeouts included, are network errors. Nothing is retried.
//
// Problems detected locally (bad configuration, unknown messenger, malformed
// request) are [github.com/goliatone/go-errors] envelopes; [KindOf] reports
// the validation-category ones as [KindValidation].
//
// # Notifications
//
// [Client.ReceiveNotification] and [Client.DeleteNotification] expose the
// notification queue. [Client.ProcessNotification] runs one receive, dispatch
// and delete cycle through a [github.com/sdkwa/sdkwa-go/webhook.Router].
//
// # Logging
//
// Implement [RequestLogger] and supply it via [WithRequestLogger], or wrap a
// zerolog logger with [NewZerologLogger]. The default [NoopLogger] discards
// all log output. Tokens are never written to the log.
package sdkwa
