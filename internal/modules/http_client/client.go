package http_client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"
)

type HttpClient struct {
	HttpClient *http.Client
}

type RequestOption func(options *RequestOptions)

type RequestOptions struct {
	ctx           context.Context
	body          any
	header        http.Header
	query         url.Values
	contentLength int64
}

func WithBody(body any) RequestOption {
	return func(c *RequestOptions) {
		c.body = body
	}
}

func WithHeader(key, value string) RequestOption {
	return func(c *RequestOptions) {
		c.header.Set(key, value)
	}
}

func WithHeaders(header http.Header) RequestOption {
	return func(c *RequestOptions) {
		for k, values := range header {
			for _, v := range values {
				c.header.Add(k, v)
			}
		}
	}
}

// WithQuery merges values into the URL query. Keys already present in the
// URL are kept as they are.
func WithQuery(values url.Values) RequestOption {
	return func(c *RequestOptions) {
		for k, v := range values {
			c.query[k] = v
		}
	}
}

func WithContext(ctx context.Context) RequestOption {
	return func(c *RequestOptions) {
		c.ctx = ctx
	}
}

func WithContentLength(n int64) RequestOption {
	return func(c *RequestOptions) {
		c.contentLength = n
	}
}

func New() *HttpClient {
	return &HttpClient{
		HttpClient: http.DefaultClient,
	}
}

func (c *HttpClient) NewRequest(method string, rawURL string, option ...RequestOption) (*http.Request, error) {
	options := &RequestOptions{ctx: context.Background(), header: http.Header{}, query: url.Values{}}
	for _, opt := range option {
		opt(options)
	}
	var body io.Reader
	if options.body != nil {
		switch v := options.body.(type) {
		case io.Reader:
			body = v
		default:
			data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v)
			if err != nil {
				return nil, err
			}
			body = bytes.NewBuffer(data)
		}
	}
	if len(options.query) != 0 {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, err
		}
		q := u.Query()
		for k, v := range options.query {
			if _, ok := q[k]; !ok {
				q[k] = v
			}
		}
		u.RawQuery = q.Encode()
		rawURL = u.String()
	}
	req, err := http.NewRequestWithContext(options.ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	if options.header != nil {
		req.Header = options.header
	}
	if options.contentLength > 0 {
		req.ContentLength = options.contentLength
	}
	return req, nil
}

func (c *HttpClient) Do(req *http.Request) (*http.Response, error) {
	return c.HttpClient.Do(req)
}
