package sdkwa

import (
	"net/http"
	"os"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type Option func(*Options)

type Options struct {
	instanceID       string
	apiToken         string
	apiHost          string
	userID           string
	userToken        string
	timeout          time.Duration
	verifyTLS        bool
	defaultMessenger Messenger
	userAgent        string
	requestLogger    RequestLogger
	requestHeaders   map[string]string
	httpClient       *http.Client
	metrics          *Metrics
	lookupEnv        func(string) (string, bool)
}

func newClientOptions() *Options {
	return &Options{
		timeout:          DefaultTimeout,
		verifyTLS:        true,
		defaultMessenger: MessengerWhatsApp,
		userAgent:        DefaultUserAgent,
		requestLogger:    &NoopLogger{},
		requestHeaders:   map[string]string{},
		lookupEnv:        os.LookupEnv,
	}
}

func WithInstanceID(id string) Option {
	return func(o *Options) {
		o.instanceID = id
	}
}

func WithAPIToken(token string) Option {
	return func(o *Options) {
		o.apiToken = token
	}
}

func WithAPIHost(host string) Option {
	return func(o *Options) {
		o.apiHost = host
	}
}

func WithUserID(id string) Option {
	return func(o *Options) {
		o.userID = id
	}
}

func WithUserToken(token string) Option {
	return func(o *Options) {
		o.userToken = token
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithVerifyTLS toggles TLS certificate verification. Verification is on by
// default.
func WithVerifyTLS(verify bool) Option {
	return func(o *Options) {
		o.verifyTLS = verify
	}
}

func WithDefaultMessenger(messenger Messenger) Option {
	return func(o *Options) {
		if messenger != "" {
			o.defaultMessenger = messenger
		}
	}
}

func WithUserAgent(userAgent string) Option {
	return func(o *Options) {
		if userAgent = strings.TrimSpace(userAgent); userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

func WithRequestLogger(logger RequestLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.requestLogger = logger
		}
	}
}

// WithRequestHeader adds a header sent with every request. Authorization,
// Content-Type and the x-user-* credential headers are managed by the client
// and cannot be overridden here.
func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" || isManagedHeader(header) {
			return
		}

		o.requestHeaders[header] = value
	}
}

// WithHTTPClient makes the client send requests through a copy of hc. The
// timeout and TLS settings are applied to the copy; hc itself is not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *Options) {
		if hc != nil {
			o.httpClient = hc
		}
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(o *Options) {
		if metrics != nil {
			o.metrics = metrics
		}
	}
}

func isManagedHeader(header string) bool {
	for _, managed := range []string{"Authorization", "Content-Type", HeaderUserID, HeaderUserToken} {
		if strings.EqualFold(header, managed) {
			return true
		}
	}
	return false
}

// Validate checks the option values that cannot be repaired by falling back to
// a default. Credentials are checked separately once the environment has been
// consulted.
func (o *Options) Validate() error {
	var fields []goerrors.FieldError

	if o.timeout <= 0 {
		fields = append(fields, goerrors.FieldError{Field: "timeout", Message: "must be positive", Value: o.timeout.String()})
	} else if o.timeout > maxTimeout {
		fields = append(fields, goerrors.FieldError{
			Field:   "timeout",
			Message: "must not exceed " + maxTimeout.String(),
			Value:   o.timeout.String(),
		})
	}

	if !o.defaultMessenger.Valid() {
		fields = append(fields, goerrors.FieldError{
			Field:   "default_messenger",
			Message: "must be 'whatsapp' or 'telegram'",
			Value:   string(o.defaultMessenger),
		})
	}

	if o.requestLogger == nil {
		fields = append(fields, goerrors.FieldError{Field: "request_logger", Message: "must not be nil"})
	}

	if o.lookupEnv == nil {
		fields = append(fields, goerrors.FieldError{Field: "lookup_env", Message: "must not be nil"})
	}

	if len(fields) > 0 {
		return configError(fields...)
	}
	return nil
}
