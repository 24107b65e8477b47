package sdkwa

import (
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

const (
	DefaultAPIHost   = "https://api.sdkwa.pro"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "sdkwa-go/1.0.0"

	maxTimeout = 10 * time.Minute
)

// Environment variables consulted once, at construction, for values not
// supplied as options.
const (
	EnvInstanceID = "SDKWA_ID_INSTANCE"
	EnvAPIToken   = "SDKWA_API_TOKEN"
	EnvAPIHost    = "SDKWA_API_HOST"
	EnvUserID     = "SDKWA_USER_ID"
	EnvUserToken  = "SDKWA_USER_TOKEN"
)

const (
	HeaderUserID    = "x-user-id"
	HeaderUserToken = "x-user-token"
)

// Config is the resolved, immutable configuration of a [Client] or
// [InstanceClient].
type Config struct {
	InstanceID       string
	APIToken         string
	APIHost          string
	UserID           string
	UserToken        string
	Timeout          time.Duration
	VerifyTLS        bool
	DefaultMessenger Messenger
	UserAgent        string
}

func resolveConfig(o *Options) Config {
	return Config{
		InstanceID:       strings.TrimSpace(o.resolve(o.instanceID, EnvInstanceID, "")),
		APIToken:         strings.TrimSpace(o.resolve(o.apiToken, EnvAPIToken, "")),
		APIHost:          strings.TrimRight(strings.TrimSpace(o.resolve(o.apiHost, EnvAPIHost, DefaultAPIHost)), "/"),
		UserID:           strings.TrimSpace(o.resolve(o.userID, EnvUserID, "")),
		UserToken:        strings.TrimSpace(o.resolve(o.userToken, EnvUserToken, "")),
		Timeout:          o.timeout,
		VerifyTLS:        o.verifyTLS,
		DefaultMessenger: o.defaultMessenger,
		UserAgent:        o.userAgent,
	}
}

// resolve picks the explicit value, then the environment, then the fallback.
// An explicit value made only of whitespace still wins so that it is reported
// as blank rather than silently replaced.
func (o *Options) resolve(explicit, env, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if value, ok := o.lookupEnv(env); ok && value != "" {
		return value
	}
	return fallback
}

func (c Config) validateInstance() error {
	var fields []goerrors.FieldError

	if c.InstanceID == "" {
		fields = append(fields, goerrors.FieldError{
			Field:   "instance_id",
			Message: "is required; set it with WithInstanceID or " + EnvInstanceID,
		})
	}
	if c.APIToken == "" {
		fields = append(fields, goerrors.FieldError{
			Field:   "api_token",
			Message: "is required; set it with WithAPIToken or " + EnvAPIToken,
		})
	}
	fields = append(fields, c.hostFieldErrors()...)

	if len(fields) > 0 {
		return configError(fields...)
	}
	return nil
}

func (c Config) validateUser() error {
	var fields []goerrors.FieldError

	if c.UserID == "" {
		fields = append(fields, goerrors.FieldError{
			Field:   "user_id",
			Message: "is required; set it with WithUserID or " + EnvUserID,
		})
	}
	if c.UserToken == "" {
		fields = append(fields, goerrors.FieldError{
			Field:   "user_token",
			Message: "is required; set it with WithUserToken or " + EnvUserToken,
		})
	}
	fields = append(fields, c.hostFieldErrors()...)

	if len(fields) > 0 {
		return configError(fields...)
	}
	return nil
}

func (c Config) hostFieldErrors() []goerrors.FieldError {
	if c.APIHost == "" {
		return []goerrors.FieldError{{Field: "api_host", Message: "must not be empty"}}
	}
	parsed, err := url.Parse(c.APIHost)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return []goerrors.FieldError{{Field: "api_host", Message: "must be an absolute http(s) URL", Value: c.APIHost}}
	}
	return nil
}
