package goodreads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Request is one outbound call handed to a Transport
type Request struct {
	Operation string
	Method    string
	Path      string
	Params    url.Values
	// Session is set for user-tier calls; its signed client is used instead of
	// the unauthenticated one.
	Session *Session
}

// Transport issues exactly one HTTP request per Send and returns the body of a
// 2xx response. Any other status is reported as *HTTPError.
type Transport interface {
	Send(ctx context.Context, req *Request) ([]byte, error)
}

// HTTPTransport sends requests to a fixed base URL
type HTTPTransport struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPTransport creates a transport for baseURL. Redirects are never followed:
// an OAuth signature covers the original URI and is invalid after a redirect.
func NewHTTPTransport(baseURL string, httpClient *http.Client) *HTTPTransport {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HTTPTransport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: withoutRedirects(httpClient),
	}
}

func withoutRedirects(c *http.Client) *http.Client {
	cp := *c
	cp.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &cp
}

// Send performs the request. GET parameters go in the query string, POST
// parameters in a form-encoded body. PUT and DELETE are not implemented.
func (t *HTTPTransport) Send(ctx context.Context, req *Request) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/%s", t.baseURL, strings.TrimLeft(req.Path, "/"))

	var (
		target = endpoint
		body   io.Reader
	)
	switch req.Method {
	case http.MethodGet:
		if len(req.Params) > 0 {
			target += "?" + req.Params.Encode()
		}
	case http.MethodPost:
		body = strings.NewReader(req.Params.Encode())
	default:
		return nil, &UnsupportedOperationError{Method: req.Method, Path: req.Path}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	client := t.httpClient
	if req.Session != nil {
		if req.Session.httpClient == nil {
			return nil, errors.New("session has no signed client; create it with Client.NewSession or Client.GetSession")
		}
		client = req.Session.httpClient
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		// the query carries the developer key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = endpoint
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			Method:     req.Method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return respBody, nil
}
