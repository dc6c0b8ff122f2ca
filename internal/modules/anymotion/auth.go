package anymotion

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/reusedev/anymotion-cli/internal/consts"
	"github.com/reusedev/anymotion-cli/tools"
)

type tokenRequest struct {
	GrantType    string `json:"grantType"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

// Token returns the bearer token, exchanging the client credentials on the
// first call. The token is kept for the lifetime of the client.
func (c *Client) Token(ctx context.Context) (string, error) {
	token, err := c.tokens.GetValue(c.clientID)
	if err != nil {
		return "", err
	}
	if token != "" {
		return token, nil
	}
	token, err = c.fetchToken(ctx)
	if err != nil {
		return "", err
	}
	if err := c.tokens.Set(c.clientID, token); err != nil {
		return "", err
	}
	return token, nil
}

func (c *Client) fetchToken(ctx context.Context) (string, error) {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	env, err := c.request(ctx, http.MethodPost, tools.FullURL(c.baseURL, consts.TokenPath),
		withHeaders(header),
		withJSON(tokenRequest{
			GrantType:    "client_credentials",
			ClientID:     c.clientID,
			ClientSecret: c.clientSecret,
		}),
	)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) && reqErr.StatusCode != 0 {
			return "", fmt.Errorf("%w: %w", ErrAuthentication, err)
		}
		return "", err
	}
	token, err := env.String("accessToken")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	if token == "" {
		return "", fmt.Errorf("%w: empty access token", ErrAuthentication)
	}
	return token, nil
}
