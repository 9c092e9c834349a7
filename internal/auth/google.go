package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleConfig holds the OAuth client registration for Google sign-in.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string

	// RedirectURL is the callback this server registered with Google,
	// e.g. https://host/api/v1/auth/callback/google
	RedirectURL string
}

// Enabled reports whether a Google client is configured.
func (c *GoogleConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// GoogleProvider drives the Google authorization-code flow and fetches the
// user profile after the code exchange.
type GoogleProvider struct {
	oauth *oauth2.Config
}

// NewGoogleProvider creates a Google OAuth provider.
func NewGoogleProvider(config GoogleConfig) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RedirectURL:  config.RedirectURL,
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// NewState returns a fresh random state parameter for a login attempt.
func NewState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating oauth state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// AuthURL returns the Google consent page URL for the given state.
func (p *GoogleProvider) AuthURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// Exchange redeems the authorization code and fetches the user's profile.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (Profile, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return Profile{}, fmt.Errorf("exchanging authorization code: %w", err)
	}

	client := p.oauth.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return Profile{}, fmt.Errorf("fetching user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("user info request failed with status %d", resp.StatusCode)
	}

	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return Profile{}, fmt.Errorf("decoding user info: %w", err)
	}

	return Profile{Email: info.Email, DisplayName: info.Name}, nil
}
