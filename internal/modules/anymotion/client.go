package anymotion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/reusedev/anymotion-cli/internal/consts"
	"github.com/reusedev/anymotion-cli/internal/modules/cache"
	"github.com/reusedev/anymotion-cli/internal/modules/http_client"
	"github.com/reusedev/anymotion-cli/internal/modules/observer"
	"github.com/reusedev/anymotion-cli/tools"
)

// Options configures a Client. Interval and Timeout are in seconds.
type Options struct {
	ClientID     string
	ClientSecret string
	APIURL       string
	Interval     int
	Timeout      int
	HTTPClient   *http.Client
	Logger       *zerolog.Logger
	Observers    []observer.Observer
}

// Client talks to the AnyMotion API. It is not safe for concurrent use.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	apiURL       string
	pageSize     int

	httpClient *http_client.HttpClient
	tokens     *cache.Manager[string]
	poller     *Poller
	logger     *zerolog.Logger
	observers  *observer.Observers
}

func New(opts Options) (*Client, error) {
	clientID := strings.TrimSpace(opts.ClientID)
	if clientID == "" {
		return nil, fmt.Errorf("%w: client id is required", ErrConfiguration)
	}
	clientSecret := strings.TrimSpace(opts.ClientSecret)
	if clientSecret == "" {
		return nil, fmt.Errorf("%w: client secret is required", ErrConfiguration)
	}
	baseURL, apiURL, err := parseAPIURL(opts.APIURL)
	if err != nil {
		return nil, err
	}

	httpClient := http_client.New()
	if opts.HTTPClient != nil {
		httpClient.HttpClient = opts.HTTPClient
	}
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		logger = &discard
	}
	observers := &observer.Observers{}
	for _, o := range opts.Observers {
		observers.Attach(o)
	}

	c := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
		apiURL:       apiURL,
		pageSize:     consts.PageSize,
		httpClient:   httpClient,
		tokens:       cache.NewManager[string](gocache.NoExpiration),
		logger:       logger,
		observers:    observers,
	}
	c.poller = NewPoller(opts.Interval, opts.Timeout, func(ctx context.Context, jobURL string) (*Envelope, error) {
		return c.request(ctx, http.MethodGet, jobURL)
	})
	return c, nil
}

func parseAPIURL(raw string) (baseURL, apiURL string, err error) {
	origin, path, err := tools.SplitAPIURL(raw)
	if err != nil || !strings.Contains(path, consts.APIPathMarker) {
		return "", "", fmt.Errorf("%w: invalid api url: %s", ErrConfiguration, raw)
	}
	return origin, origin + path, nil
}

// APIURL is the normalized API root, always ending with a slash.
func (c *Client) APIURL() string {
	return c.apiURL
}

func (c *Client) Interval() time.Duration {
	return c.poller.RequestInterval
}

func (c *Client) MaxAttempts() int {
	return c.poller.MaxAttempts
}

// Attach registers an observer for request/response tracing.
func (c *Client) Attach(o observer.Observer) {
	c.observers.Attach(o)
}

func (c *Client) endpointURL(path string) string {
	return tools.FullURL(c.apiURL, path)
}

type requestOptions struct {
	params        url.Values
	json          any
	data          io.Reader
	contentLength int64
	headers       http.Header
}

type requestOption func(*requestOptions)

func withParams(params url.Values) requestOption {
	return func(o *requestOptions) { o.params = params }
}

func withJSON(body any) requestOption {
	return func(o *requestOptions) { o.json = body }
}

func withData(r io.Reader, size int64) requestOption {
	return func(o *requestOptions) {
		o.data = r
		o.contentLength = size
	}
}

// withHeaders replaces the default authorization headers. An empty, non-nil
// header sends an unauthenticated request.
func withHeaders(h http.Header) requestOption {
	return func(o *requestOptions) { o.headers = h }
}

func (c *Client) request(ctx context.Context, method, rawURL string, opts ...requestOption) (*Envelope, error) {
	ro := &requestOptions{}
	for _, opt := range opts {
		opt(ro)
	}
	if ro.headers == nil {
		token, err := c.Token(ctx)
		if err != nil {
			return nil, err
		}
		ro.headers = http.Header{}
		ro.headers.Set("Authorization", "Bearer "+token)
		if method == http.MethodPost {
			ro.headers.Set("Content-Type", "application/json")
		}
	}
	resp, err := c.send(ctx, method, rawURL, ro)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Method: method, URL: rawURL, Err: err}
	}
	c.observers.Notify(consts.EventResponse, &observer.ResponseRecord{
		Proto:      resp.Proto,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	})
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{
			Method:     method,
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}
	return NewEnvelope(resp.StatusCode, resp.Header, body), nil
}

// send performs the exchange and returns the open response. The caller owns
// resp.Body.
func (c *Client) send(ctx context.Context, method, rawURL string, ro *requestOptions) (*http.Response, error) {
	reqOpts := []http_client.RequestOption{
		http_client.WithContext(ctx),
		http_client.WithHeaders(ro.headers),
	}
	if len(ro.params) != 0 {
		reqOpts = append(reqOpts, http_client.WithQuery(ro.params))
	}
	switch {
	case ro.data != nil:
		reqOpts = append(reqOpts, http_client.WithBody(ro.data), http_client.WithContentLength(ro.contentLength))
	case ro.json != nil:
		reqOpts = append(reqOpts, http_client.WithBody(ro.json))
	}
	req, err := c.httpClient.NewRequest(method, rawURL, reqOpts...)
	if err != nil {
		return nil, &RequestError{Method: method, URL: rawURL, Err: err}
	}
	c.observers.Notify(consts.EventRequest, &observer.RequestRecord{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header,
		JSON:   ro.json,
	})

	reqAt := time.Now()
	resp, err := c.httpClient.Do(req)
	respAt := time.Now()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &RequestError{Method: method, URL: rawURL, Err: err}
	}
	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status_code", resp.StatusCode).
		Dur("req_consume_ms", respAt.Sub(reqAt)).
		Msg("anymotion request")
	return resp, nil
}
