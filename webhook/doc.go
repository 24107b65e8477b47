// Package webhook routes SDKWA notifications to callbacks by their
// typeWebhook tag.
//
// Notifications reach an application either through polling
// (receiveNotification on the instance API) or by being pushed to an HTTP
// endpoint configured in the account settings. Both paths end in a [Router]:
//
//	router := webhook.NewRouter()
//	router.RegisterFunc(webhook.TypeIncomingMessageReceived, func(ctx context.Context, body webhook.Body) error {
//	    log.Printf("message from %s", body.SenderChatID())
//	    return nil
//	})
//
//	http.Handle("/webhook", webhook.NewHandler(router))
//
// A Router holds at most one callback per tag and calls it synchronously on
// the dispatching goroutine. Notifications with no tag, or with a tag nobody
// registered, are dropped without error.
package webhook
