package goodreads

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the Goodreads host every request goes to
	DefaultBaseURL = "https://www.goodreads.com"
	// DefaultTimeout bounds a single HTTP exchange
	DefaultTimeout = 30 * time.Second
)

// Client represents a Goodreads API client. Construct one and pass it to every
// collaborator that needs API access; all of them then share its rate limiter.
type Client struct {
	baseURL         string
	developerKey    string
	developerSecret string
	timeout         time.Duration
	httpClient      *http.Client
	transport       Transport
	limiter         *Limiter
	clock           Clock
	oauth           *oauth1.Config
	logger          zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at a different host
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient sets the HTTP client used for unauthenticated requests and as
// the base transport of OAuth sessions
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTransport replaces the HTTP transport
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLimiter shares an existing limiter between clients
func WithLimiter(l *Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithClock sets the clock of the client's own limiter
func WithClock(clock Clock) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

// NewClient creates a new Goodreads client. The developer key and secret may be
// empty; operations that need them then fail with *ConfigurationError.
func NewClient(developerKey, developerSecret string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:         DefaultBaseURL,
		developerKey:    developerKey,
		developerSecret: developerSecret,
		timeout:         DefaultTimeout,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.baseURL = strings.TrimRight(c.baseURL, "/")
	u, err := url.Parse(c.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid goodreads URL %q", c.baseURL)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	c.httpClient = withoutRedirects(c.httpClient)

	if c.transport == nil {
		c.transport = NewHTTPTransport(c.baseURL, c.httpClient)
	}
	if c.limiter == nil {
		c.limiter = NewLimiter(c.clock)
	}
	c.oauth = newOAuthConfig(c.baseURL, developerKey, developerSecret)

	return c, nil
}

// HasDeveloperCredentials reports whether the key/secret pair is configured
func (c *Client) HasDeveloperCredentials() bool {
	return c.developerKey != "" && c.developerSecret != ""
}

func (c *Client) requireDeveloper(operation string) error {
	if !c.HasDeveloperCredentials() {
		return &ConfigurationError{Operation: operation, Err: ErrDeveloperCredentials}
	}
	return nil
}

// authorize enforces the operation's tier and injects the developer key. It
// runs before the limiter and the transport, so a call that fails here costs
// no request.
func (c *Client) authorize(op Operation, session *Session, params Params) (Params, error) {
	if params == nil {
		params = Params{}
	}

	switch op.Tier {
	case TierDeveloper:
		if err := c.requireDeveloper(op.Name); err != nil {
			return nil, err
		}
		params["key"] = c.developerKey
	case TierUser:
		if session == nil {
			return nil, &ConfigurationError{Operation: op.Name, Err: ErrSessionRequired}
		}
	}

	return params, nil
}

// call runs one operation through the pipeline:
// gate -> parameter flattening -> rate limit -> transport -> normalization.
func (c *Client) call(ctx context.Context, op Operation, session *Session, params Params) (*Value, error) {
	params, err := c.authorize(op, session, params)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Operation: op.Name,
		Method:    op.Method,
		Path:      op.Path,
		Params:    params.Flatten(),
		Session:   session,
	}

	waited, err := c.limiter.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: rate limit wait: %w", op.Name, err)
	}

	c.logger.Debug().
		Str("operation", op.Name).
		Str("method", op.Method).
		Str("path", op.Path).
		Str("tier", op.Tier.String()).
		Dur("waited", waited).
		Msg("Making Goodreads API request")

	body, err := c.transport.Send(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op.Name, err)
	}

	c.logger.Trace().
		Str("operation", op.Name).
		Int("bytes", len(body)).
		Msg("Received Goodreads API response")

	result, err := Normalize(body, op.Format, op.Container)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op.Name, err)
	}
	return result, nil
}
