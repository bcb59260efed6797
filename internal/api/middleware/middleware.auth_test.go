package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "47290320668846711828869882046916"

func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Use(AuthMiddleware(testToken))
	app.Get("/api/ping", func(c fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	cases := []struct {
		name       string
		target     string
		header     string
		wantStatus int
		wantCode   string
	}{
		{name: "bearer header", target: "/api/ping", header: "Bearer " + testToken, wantStatus: fiber.StatusOK},
		{name: "lowercase scheme", target: "/api/ping", header: "bearer " + testToken, wantStatus: fiber.StatusOK},
		{name: "query token", target: "/api/ping?access_token=" + testToken, wantStatus: fiber.StatusOK},
		{name: "missing", target: "/api/ping", wantStatus: fiber.StatusUnauthorized, wantCode: "AUTH_001"},
		{name: "wrong token", target: "/api/ping", header: "Bearer nope", wantStatus: fiber.StatusUnauthorized, wantCode: "AUTH_001"},
		{name: "wrong scheme", target: "/api/ping", header: "Basic " + testToken, wantStatus: fiber.StatusUnauthorized, wantCode: "AUTH_001"},
		{name: "wrong query token", target: "/api/ping?access_token=nope", wantStatus: fiber.StatusUnauthorized, wantCode: "AUTH_001"},
	}

	app := newAuthApp()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, tc.target, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			if tc.wantCode != "" {
				var body map[string]interface{}
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tc.wantCode, body["code"])
				assert.Equal(t, "error", body["status"])
			}
		})
	}
}

func TestAuthMiddleware_EmptyConfiguredTokenRejectsAll(t *testing.T) {
	app := fiber.New()
	app.Use(AuthMiddleware(""))
	app.Get("/api/ping", func(c fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/ping?access_token=", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
