package goodreads

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dghubble/oauth1"
)

// Session is an OAuth-authorized user. It is request-scoped: callers pass it to
// user-tier operations explicitly and the Client never stores it.
type Session struct {
	AccessToken  string
	AccessSecret string
	httpClient   *http.Client
}

func newOAuthConfig(baseURL, key, secret string) *oauth1.Config {
	return &oauth1.Config{
		ConsumerKey:    key,
		ConsumerSecret: secret,
		Endpoint: oauth1.Endpoint{
			RequestTokenURL: baseURL + "/oauth/request_token",
			AuthorizeURL:    baseURL + "/oauth/authorize",
			AccessTokenURL:  baseURL + "/oauth/access_token",
		},
	}
}

// RequestToken obtains a request token to build the authorization URL from
func (c *Client) RequestToken() (token, secret string, err error) {
	if err := c.requireDeveloper("request_token"); err != nil {
		return "", "", err
	}

	token, secret, err = c.oauth.RequestToken()
	if err != nil {
		return "", "", fmt.Errorf("failed to get request token: %w", err)
	}

	c.logger.Debug().Msg("Obtained OAuth request token")
	return token, secret, nil
}

// AuthorizeURL returns the URL the user visits to authorize the application.
// A non-empty callback and mobile=true only add query parameters.
func (c *Client) AuthorizeURL(requestToken, callback string, mobile bool) (string, error) {
	if err := c.requireDeveloper("authorize_url"); err != nil {
		return "", err
	}

	u, err := c.oauth.AuthorizationURL(requestToken)
	if err != nil {
		return "", fmt.Errorf("failed to build authorize URL: %w", err)
	}

	q := u.Query()
	if callback != "" {
		q.Set("oauth_callback", callback)
	}
	if mobile {
		q.Set("mobile", "1")
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// GetSession exchanges an authorized request token for an access token and
// returns a session signed with it
func (c *Client) GetSession(requestToken, requestSecret string) (*Session, error) {
	if err := c.requireDeveloper("get_session"); err != nil {
		return nil, err
	}

	accessToken, accessSecret, err := c.oauth.AccessToken(requestToken, requestSecret, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	c.logger.Debug().Msg("Exchanged request token for access token")
	return c.NewSession(accessToken, accessSecret)
}

// NewSession builds a session from a previously obtained access token pair
func (c *Client) NewSession(accessToken, accessSecret string) (*Session, error) {
	if err := c.requireDeveloper("new_session"); err != nil {
		return nil, err
	}
	if accessToken == "" || accessSecret == "" {
		return nil, errors.New("access token and secret are required")
	}

	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, c.httpClient)
	signed := withoutRedirects(c.oauth.Client(ctx, oauth1.NewToken(accessToken, accessSecret)))
	signed.Timeout = c.httpClient.Timeout

	return &Session{
		AccessToken:  accessToken,
		AccessSecret: accessSecret,
		httpClient:   signed,
	}, nil
}
