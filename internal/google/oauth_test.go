package google

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOAuthConfig_RequiresCredentials(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")

	_, err := OAuthConfig()
	assert.Error(t, err)
}

func TestOAuthConfig(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")

	conf, err := OAuthConfig()
	require.NoError(t, err)
	assert.Equal(t, "client-id", conf.ClientID)
	assert.Len(t, conf.Scopes, 1)
}

func TestGetAuthURL(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")

	url, err := GetAuthURL()
	require.NoError(t, err)
	assert.Contains(t, url, "client-id")
}

func TestHasToken_NoToken(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	assert.False(t, HasToken())
}
