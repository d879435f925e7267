package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/pollify/backend/internal/dto"
)

func newGuardedEcho() *echo.Echo {
	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("test-secret"))))

	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	e.GET("/dashboard", ok, RequireUser)
	e.GET("/admin", ok, RequireAdmin)

	// Test-only login that stamps the session the way the auth controller does.
	e.POST("/test-login", func(c echo.Context) error {
		sess, err := session.Get(dto.SessionName, c)
		if err != nil {
			return err
		}
		sess.Values[dto.SessionUserID] = uint(1)
		sess.Values[dto.SessionUsername] = "alice"
		sess.Values[dto.SessionIsAdmin] = c.QueryParam("admin") == "1"
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return err
		}
		return c.NoContent(http.StatusOK)
	})

	return e
}

func loginCookie(t *testing.T, e *echo.Echo, admin bool) string {
	t.Helper()

	target := "/test-login"
	if admin {
		target += "?admin=1"
	}
	req := httptest.NewRequest(http.MethodPost, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("test login failed with %d", rec.Code)
	}

	cookie := rec.Header().Get("Set-Cookie")
	if cookie == "" {
		t.Fatal("no session cookie issued")
	}
	return cookie
}

func get(e *echo.Echo, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireUserRejectsAnonymous(t *testing.T) {
	e := newGuardedEcho()

	if rec := get(e, "/dashboard", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireUserAllowsSession(t *testing.T) {
	e := newGuardedEcho()
	cookie := loginCookie(t, e, false)

	if rec := get(e, "/dashboard", cookie); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAdminRejectsAnonymous(t *testing.T) {
	e := newGuardedEcho()

	if rec := get(e, "/admin", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	e := newGuardedEcho()
	cookie := loginCookie(t, e, false)

	if rec := get(e, "/admin", cookie); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	e := newGuardedEcho()
	cookie := loginCookie(t, e, true)

	if rec := get(e, "/admin", cookie); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
