package webhook

import (
	"context"
	"encoding/json"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// Callback handles one notification body.
type Callback interface {
	Handle(ctx context.Context, body Body) error
}

// CallbackFunc adapts a function to [Callback].
type CallbackFunc func(ctx context.Context, body Body) error

func (f CallbackFunc) Handle(ctx context.Context, body Body) error {
	return f(ctx, body)
}

// Router maps a notification tag to a single callback. It is safe for
// concurrent use.
type Router struct {
	mu        sync.RWMutex
	callbacks map[Type]Callback
}

func NewRouter() *Router {
	return &Router{callbacks: map[Type]Callback{}}
}

// Register installs callback for tag, replacing any earlier registration. A
// nil callback removes the registration.
func (r *Router) Register(tag Type, callback Callback) {
	if callback == nil {
		r.Unregister(tag)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.callbacks == nil {
		r.callbacks = map[Type]Callback{}
	}
	r.callbacks[tag] = callback
}

func (r *Router) RegisterFunc(tag Type, fn func(ctx context.Context, body Body) error) {
	if fn == nil {
		r.Unregister(tag)
		return
	}
	r.Register(tag, CallbackFunc(fn))
}

func (r *Router) Unregister(tag Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.callbacks, tag)
}

// Registered reports whether a callback is installed for tag.
func (r *Router) Registered(tag Type) bool {
	_, ok := r.lookup(tag)
	return ok
}

// Dispatch invokes the callback registered for the notification's tag with the
// notification body and returns its error unchanged. A nil notification, a
// body without a string typeWebhook, or an unregistered tag is a no-op, as is
// dispatching through a nil Router.
func (r *Router) Dispatch(ctx context.Context, notification *Notification) error {
	if r == nil || notification == nil || notification.Body == nil {
		return nil
	}
	tag, ok := notification.Body.TypeWebhook()
	if !ok {
		return nil
	}
	callback, ok := r.lookup(tag)
	if !ok {
		return nil
	}
	return callback.Handle(ctx, notification.Body)
}

// DispatchJSON decodes a {receiptId, body} document and dispatches it.
func (r *Router) DispatchJSON(ctx context.Context, payload []byte) error {
	notification, err := Decode(payload)
	if err != nil {
		return err
	}
	return r.Dispatch(ctx, notification)
}

// Decode parses a notification envelope. JSON null decodes to a nil
// notification.
func Decode(payload []byte) (*Notification, error) {
	var notification *Notification
	if err := json.Unmarshal(payload, &notification); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "webhook: decode notification").
			WithTextCode("INVALID_NOTIFICATION")
	}
	return notification, nil
}

func (r *Router) lookup(tag Type) (Callback, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	callback, ok := r.callbacks[tag]
	return callback, ok
}
