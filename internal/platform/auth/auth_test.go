package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestIssueAndVerify(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	signed, err := tokens.Issue(42, "nurse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "42" {
		t.Errorf("expected subject 42, got %q", claims.Subject)
	}
	if claims.Role != "nurse" {
		t.Errorf("expected role nurse, got %q", claims.Role)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	signed, _ := NewTokens("secret-a", time.Hour).Issue(1, "admin")
	if _, err := NewTokens("secret-b", time.Hour).Verify(signed); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestVerify_Expired(t *testing.T) {
	signed, _ := NewTokens("secret", -time.Minute).Issue(1, "admin")
	if _, err := NewTokens("secret", -time.Minute).Verify(signed); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	h := Middleware(NewTokens("secret", time.Hour))(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	err := h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	signed, _ := tokens.Issue(7, "doctor")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	c := e.NewContext(req, httptest.NewRecorder())

	h := Middleware(tokens)(func(c echo.Context) error {
		if UserIDFromContext(c.Request().Context()) != "7" {
			t.Error("expected user id 7 on context")
		}
		if RoleFromContext(c.Request().Context()) != "doctor" {
			t.Error("expected role doctor on context")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	tokens := NewTokens("secret", time.Hour)
	signed, _ := tokens.Issue(1, "nurse")
	req.Header.Set("Authorization", "Bearer "+signed)

	chain := Middleware(tokens)(RequireRole("admin")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}))
	err := chain(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for nurse on admin route, got %v", err)
	}
}
