package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
)

type stubValidator struct {
	user model.User
	err  error
}

func (s stubValidator) ValidateToken(ctx context.Context, token string) (model.User, error) {
	return s.user, s.err
}

func invoke(mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/flights", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	_ = handler(c)
	return rec, c
}

func TestSessionAuth(t *testing.T) {
	t.Run("valid token injects identity", func(t *testing.T) {
		mw := SessionAuth(stubValidator{user: model.User{ID: 42, Role: model.RoleAgent}})
		rec, c := invoke(mw, "Bearer ABCDEF")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint64(42), c.Get("user_id"))
		assert.Equal(t, "AGENT", c.Get("role"))
	})

	t.Run("missing header", func(t *testing.T) {
		mw := SessionAuth(stubValidator{user: model.User{ID: 42}})
		rec, _ := invoke(mw, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		mw := SessionAuth(stubValidator{user: model.User{ID: 42}})
		rec, _ := invoke(mw, "Basic dXNlcjpwYXNz")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		mw := SessionAuth(stubValidator{err: errors.New("expired")})
		rec, _ := invoke(mw, "Bearer STALE")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestBearerToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer  TOK123 ")
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, "TOK123", BearerToken(c))
}
