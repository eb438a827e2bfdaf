package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/finderapp/finder-service/internal/domain"
)

func newGateApp(t *testing.T, tm *TokenManager) *fiber.App {
	t.Helper()

	app := fiber.New()
	gate := NewSessionGate(tm, zap.NewNop())
	app.Use(gate.Handle)
	app.All("/*", func(c *fiber.Ctx) error {
		if claims, ok := ClaimsFromContext(c); ok {
			return c.JSON(fiber.Map{"userId": claims.UserID})
		}
		return c.SendString("ok")
	})
	return app
}

func issueFor(t *testing.T, tm *TokenManager, role domain.UserRole) string {
	t.Helper()

	token, _, err := tm.Generate(&domain.User{
		ID:    7,
		Email: "user@example.com",
		Name:  "User",
		Role:  role,
	})
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path string, mutate ...func(*http.Request)) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	for _, m := range mutate {
		m(req)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func withCookie(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
}

func withBearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func TestGatePublicPathsPassWithoutToken(t *testing.T) {
	tm := NewTokenManager("gate-secret", time.Hour)
	app := newGateApp(t, tm)

	for _, path := range []string{"/", "/search", "/images/x.png", "/favicon.ico"} {
		resp := doRequest(t, app, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "path %s", path)
	}
}

func TestGatePublicPathsPassWithInvalidToken(t *testing.T) {
	tm := NewTokenManager("gate-secret", time.Hour)
	app := newGateApp(t, tm)

	resp := doRequest(t, app, http.MethodGet, "/search", withCookie("garbage"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateMissingTokenRedirectsToLogin(t *testing.T) {
	tm := NewTokenManager("gate-secret", time.Hour)
	app := newGateApp(t, tm)

	resp := doRequest(t, app, http.MethodGet, "/my-searches")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Fmy-searches", resp.Header.Get("Location"))
}

func TestGateAuthPagesReachableWithoutToken(t *testing.T) {
	tm := NewTokenManager("gate-secret", time.Hour)
	app := newGateApp(t, tm)

	for _, path := range []string{"/login", "/register", "/verification-pending"} {
		resp := doRequest(t, app, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "path %s", path)
	}
}

func TestGateAuthenticatedUserBouncedOffAuthPages(t *testing.T) {
	tm := NewTokenManager("gate-secret", time.Hour)
	app := newGateApp(t, tm)
	token := issueFor(t, tm, domain.RoleFamily)

	for _, path := range []string{"/login", "/register", "/authority-register"} {
		resp := doRequest(t, app, http.MethodGet, path, withCookie(token))
		assert.Equal(t, http.StatusFound, resp.StatusCode, "path %s", path)
		assert.Equal(t, "/", resp.Header.Get("Location"), "path %s", path)
	}
}

func TestGateInvalidTokenClearedAndRedirected(t *testing.T) {
	tm := NewTokenManager("gate-secret", time.Hour)
	app := newGateApp(t, tm)

	resp := doRequest(t, app, http.MethodGet, "/prisoners", withCookie("not-a-real-token"))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Fprisoners", resp.Header.Get("Location"))

	cookies := resp.Header.Values("Set-Cookie")
	require.NotEmpty(t, cookies)
	found := false
	for _, c := range cookies {
		if len(c) >= len(SessionCookieName) && c[:len(SessionCookieName)] == SessionCookieName {
			found = true
		}
	}
	assert.True(t, found, "expected the stale session cookie to be cleared")
}

func TestGateExpiredTokenRedirects(t *testing.T) {
	tm := NewTokenManager("gate-secret", time.Millisecond)
	app := newGateApp(t, tm)
	token := issueFor(t, tm, domain.RoleFamily)

	time.Sleep(5 * time.Millisecond)

	resp := doRequest(t, app, http.MethodGet, "/prisoners", withCookie(token))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Fprisoners", resp.Header.Get("Location"))
}

func TestGateFamilyRoleDowngradedOnAuthorityPaths(t *testing.T) {
	tm := NewTokenManager("gate-secret", time.Hour)
	app := newGateApp(t, tm)
	token := issueFor(t, tm, domain.RoleFamily)

	for _, path := range []string{"/manage-prisoners", "/add-released", "/api/prisoners/manage/9"} {
		resp := doRequest(t, app, http.MethodGet, path, withCookie(token))
		assert.Equal(t, http.StatusFound, resp.StatusCode, "path %s", path)
		assert.Equal(t, "/", resp.Header.Get("Location"), "path %s", path)
	}
}

func TestGateAuthorityRolePassesAuthorityPaths(t *testing.T) {
	tm := NewTokenManager("gate-secret", time.Hour)
	app := newGateApp(t, tm)
	token := issueFor(t, tm, domain.RoleAuthority)

	resp := doRequest(t, app, http.MethodGet, "/manage-prisoners", withCookie(token))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateBearerHeaderAccepted(t *testing.T) {
	tm := NewTokenManager("gate-secret", time.Hour)
	app := newGateApp(t, tm)
	token := issueFor(t, tm, domain.RoleFamily)

	resp := doRequest(t, app, http.MethodGet, "/api/auth/me", withBearer(token))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateStoresClaimsForDownstream(t *testing.T) {
	tm := NewTokenManager("gate-secret", time.Hour)
	app := newGateApp(t, tm)
	token := issueFor(t, tm, domain.RoleFamily)

	resp := doRequest(t, app, http.MethodGet, "/prisoners", withCookie(token))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}
