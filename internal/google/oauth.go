package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	tasks "google.golang.org/api/tasks/v1"
)

// tokenFileName is the cached OAuth token, stored as JSON under the user
// cache directory.
const tokenFileName = "google-token.json"

// OAuthConfig returns the OAuth2 configuration for the Tasks scope.
// Credentials come from the environment.
func OAuthConfig() (*oauth2.Config, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("google OAuth credentials not configured; set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")
	}

	const oob = "urn:ietf:wg:oauth:2.0:oob"
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  oob,
		Scopes:       []string{tasks.TasksScope},
	}, nil
}

// HasToken checks if a cached OAuth token exists.
func HasToken() bool {
	_, err := os.Stat(tokenFile())
	return err == nil
}

// GetAuthURL returns the OAuth URL for user authorization.
func GetAuthURL() (string, error) {
	conf, err := OAuthConfig()
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL("state", oauth2.AccessTypeOffline), nil
}

// SaveToken exchanges an authorization code for tokens and persists them.
func SaveToken(ctx context.Context, authCode string) error {
	conf, err := OAuthConfig()
	if err != nil {
		return err
	}

	t, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	return writeToken(t)
}

// GetHTTPClient returns an HTTP client configured with OAuth2 authentication
// from the cached token. The client refreshes the token automatically.
func GetHTTPClient(ctx context.Context) (*http.Client, error) {
	conf, err := OAuthConfig()
	if err != nil {
		return nil, err
	}

	t, err := readToken()
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found: %w; run 'asanasync auth' to authorize", err)
	}

	return oauth2.NewClient(ctx, conf.TokenSource(ctx, t)), nil
}

func writeToken(t *oauth2.Token) error {
	file := tokenFile()
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(t); err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return nil
}

func readToken() (*oauth2.Token, error) {
	f, err := os.Open(tokenFile())
	if err != nil {
		return nil, fmt.Errorf("failed to open token file: %w", err)
	}
	defer f.Close()

	var t oauth2.Token
	if err := json.NewDecoder(f).Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to decode token file: %w", err)
	}
	return &t, nil
}

func tokenFile() string {
	return filepath.Join(userCacheDir(), "asanasync", tokenFileName)
}

func userCacheDir() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Caches")
	case "windows":
		for _, ev := range []string{"TEMP", "TMP"} {
			if v := os.Getenv(ev); v != "" {
				return v
			}
		}
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".cache")
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
