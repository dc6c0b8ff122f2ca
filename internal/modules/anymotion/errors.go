package anymotion

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration  = errors.New("invalid client configuration")
	ErrFileType       = errors.New("unsupported file type")
	ErrRequest        = errors.New("http request failed")
	ErrAuthentication = errors.New("authentication failed")
	ErrResponse       = errors.New("invalid http response")
)

// RequestError is returned for transport failures and non-2xx responses.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += "\n" + body
	}
	return msg
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequest
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
