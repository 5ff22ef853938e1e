package integration

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"spendo/internal/api"
	"spendo/internal/auth"
	"spendo/internal/logger"
	"spendo/internal/testutil"
)

const testEmail = "dana@spendo.dev"

func init() {
	logger.Init("test")
}

// mintToken issues a real signed token so claim inspection works end to
// end. The secret is irrelevant; the client never verifies signatures.
func mintToken(t *testing.T) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   "user-1",
		"email": testEmail,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("integration-secret"))
	require.NoError(t, err)
	return token
}

// setup starts a fake backend and returns a client pointed at it. The
// client starts without a session; tests log in when they need one.
func setup(t *testing.T) (*api.Client, *testutil.FakeBackend) {
	t.Helper()

	backend := testutil.NewFakeBackend(mintToken(t))
	baseURL, httpClient := backend.Start(t)

	client, err := api.New(api.Config{
		BaseURL:    baseURL,
		HTTPClient: httpClient,
		Tokens:     auth.NewMemoryStore(),
	})
	require.NoError(t, err)
	return client, backend
}

func login(t *testing.T, client *api.Client) string {
	t.Helper()

	token, err := client.Users.Login(context.Background(), testEmail)
	require.NoError(t, err)
	return token
}
