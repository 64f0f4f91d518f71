package session_test

import (
	"net/http/httptest"
	"testing"

	session "github.com/Hot00Sauce/go-session"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *session.Config {
	return &session.Config{
		ServiceURL: "https://auth.example.com",
		ServiceKey: "public-key",
		ListenAddr: ":3000",
	}
}

func TestNewAppConstructionOrder(t *testing.T) {
	t.Run("valid wiring", func(t *testing.T) {
		app, err := session.NewApp(validConfig(), &MockProvider{})
		require.NoError(t, err)

		assert.NotNil(t, app.Store())
		assert.NotNil(t, app.Accounts())
		assert.False(t, app.Store().Current().IsAuthenticated())
	})

	t.Run("missing configuration is fatal", func(t *testing.T) {
		app, err := session.NewApp(nil, &MockProvider{})
		assert.Nil(t, app)
		assert.Error(t, err)
	})

	t.Run("missing provider is fatal", func(t *testing.T) {
		app, err := session.NewApp(validConfig(), nil)
		assert.Nil(t, app)
		assert.ErrorIs(t, err, session.ErrProviderNotProvided)
	})
}

func TestAppMountServesViews(t *testing.T) {
	app, err := session.NewApp(validConfig(), &MockProvider{})
	require.NoError(t, err)

	srv := fiber.New(fiber.Config{Views: &stubViews{}})
	controller := app.Mount(srv)
	require.NotNil(t, controller)

	resp, err := srv.Test(httptest.NewRequest(fiber.MethodGet, "/login", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
