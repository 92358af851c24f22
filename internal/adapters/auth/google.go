package auth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const GoogleAuthURL = "https://accounts.google.com/o/oauth2/v2/auth"

var GoogleScopes = []string{"openid", "email", "profile"}

type GoogleRedirectRequest struct {
	AuthURL     string
	ClientID    string
	CallbackURL string
	State       string
}

func NewState() string {
	return uuid.NewString()
}

// BuildGoogleRedirectURL returns the consent URL. Google sends the user
// back to CallbackURL, which is the remote auth service, not this process.
func BuildGoogleRedirectURL(req GoogleRedirectRequest) (string, error) {
	if strings.TrimSpace(req.ClientID) == "" {
		return "", errors.New("google client id is required")
	}
	if strings.TrimSpace(req.CallbackURL) == "" {
		return "", errors.New("google callback url is required")
	}
	if req.State == "" {
		return "", errors.New("state is required")
	}

	authURL := req.AuthURL
	if authURL == "" {
		authURL = GoogleAuthURL
	}

	parsed, err := url.Parse(authURL)
	if err != nil {
		return "", fmt.Errorf("parse auth url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("auth url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("auth url host is required")
	}

	q := parsed.Query()
	q.Set("client_id", req.ClientID)
	q.Set("redirect_uri", req.CallbackURL)
	q.Set("access_type", "offline")
	q.Set("response_type", "code")
	q.Set("state", req.State)
	q.Set("scope", strings.Join(GoogleScopes, " "))
	parsed.RawQuery = q.Encode()

	return parsed.String(), nil
}
