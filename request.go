package sdkwa

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Request describes a single call relative to the messenger/instance base
// path. At most one of JSON, Raw and File may be set.
type Request struct {
	Method    string
	Path      string
	Query     map[string]any
	JSON      any
	Raw       []byte
	File      *FilePart
	Form      map[string]string // multipart text fields, sent alongside File
	Headers   map[string]string
	Messenger Messenger // overrides the client default when set
}

// FilePart is the file section of a multipart upload. When ContentType is
// empty it is detected from the first bytes of Reader.
type FilePart struct {
	Field       string
	FileName    string
	ContentType string
	Reader      io.Reader
}

func (r *Request) validate() error {
	if r == nil {
		return localWrapError(ErrInvalidRequest, goerrors.CategoryBadInput, "sdkwa: request is nil", "INVALID_REQUEST", nil)
	}
	bodies := 0
	if r.JSON != nil {
		bodies++
	}
	if r.Raw != nil {
		bodies++
	}
	if r.File != nil {
		bodies++
		if r.File.Reader == nil {
			return invalidRequestError("sdkwa: file part has no reader", r.Path)
		}
	}
	if bodies > 1 {
		return invalidRequestError("sdkwa: request may carry only one of JSON, raw or file body", r.Path)
	}
	if len(r.Form) > 0 && r.File == nil {
		return invalidRequestError("sdkwa: form fields require a file part", r.Path)
	}
	return nil
}

func invalidRequestError(message, path string) error {
	return localWrapError(ErrInvalidRequest, goerrors.CategoryBadInput, message, "INVALID_REQUEST", map[string]any{"path": path})
}

// CallOption adjusts a request built by one of the endpoint methods.
type CallOption func(*Request)

// WithMessenger routes a single call to messenger instead of the client
// default.
func WithMessenger(messenger Messenger) CallOption {
	return func(r *Request) {
		r.Messenger = messenger
	}
}

type BodyKind int

const (
	BodyEmpty BodyKind = iota
	BodyJSON
	BodyRaw
)

func (k BodyKind) String() string {
	switch k {
	case BodyEmpty:
		return "empty"
	case BodyJSON:
		return "json"
	case BodyRaw:
		return "raw"
	default:
		return fmt.Sprintf("BodyKind(%d)", int(k))
	}
}

// Response is a successful (status < 400) reply. Body always holds the bytes
// as received; Value holds the decoded JSON when Kind is BodyJSON.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Value      any
	Kind       BodyKind
}

// NoContent reports whether the server returned an empty body.
func (r *Response) NoContent() bool {
	return r.Kind == BodyEmpty
}

// Decode unmarshals a JSON body into v.
func (r *Response) Decode(v any) error {
	if r.Kind != BodyJSON {
		return localError(
			fmt.Sprintf("sdkwa: cannot decode %s response body as JSON", r.Kind),
			goerrors.CategoryExternal,
			"DECODE_FAILED",
			map[string]any{"status_code": r.StatusCode},
		)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return localWrapError(err, goerrors.CategoryExternal, "sdkwa: decode response body", "DECODE_FAILED",
			map[string]any{"status_code": r.StatusCode})
	}
	return nil
}

func newResponse(status int, header http.Header, body []byte) *Response {
	resp := &Response{StatusCode: status, Header: header, Body: body}
	if len(body) == 0 {
		resp.Kind = BodyEmpty
		return resp
	}
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		resp.Kind = BodyRaw
		return resp
	}
	resp.Kind = BodyJSON
	resp.Value = value
	return resp
}
