package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/config"
	"lms/middleware"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", middleware.JWTMiddleware, func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"user_id": c.Locals("userId"),
		})
	})
	app.Get("/optional", middleware.OptionalJWTMiddleware, func(c *fiber.Ctx) error {
		_, loggedIn := c.Locals("userId").(uint)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"logged_in": loggedIn,
		})
	})
	return app
}

func TestJWTMiddleware(t *testing.T) {
	config.LoadConfig()
	app := newApp()

	// No header
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Garbage token
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Valid token
	token, err := middleware.GenerateJWT(42, "Tester", "STUDENT", "tester@example.com")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNonNumericUserIDClaimRejected(t *testing.T) {
	config.LoadConfig()
	app := newApp()

	// Correctly signed token, but userId is a string instead of a number
	claims := jwt.MapClaims{
		"userId": "42",
		"role":   "STUDENT",
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.AppConfig.JWTKey))
	require.NoError(t, err)

	for _, path := range []string{"/protected", "/optional"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestOptionalJWTMiddleware(t *testing.T) {
	config.LoadConfig()
	app := newApp()

	// No header continues anonymously
	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A bad token is still rejected
	req = httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A good token sets the caller identity
	token, err := middleware.GenerateJWT(42, "Tester", "STUDENT", "tester@example.com")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
