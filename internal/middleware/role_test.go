package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
)

func invokeWithRole(mw echo.MiddlewareFunc, role any) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/airports", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	_ = handler(c)
	return rec
}

func TestRequireRole(t *testing.T) {
	adminOnly := RequireRole(model.RoleAdmin)

	t.Run("allowed role passes", func(t *testing.T) {
		rec := invokeWithRole(adminOnly, "ADMIN")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other role forbidden", func(t *testing.T) {
		rec := invokeWithRole(adminOnly, "GUEST")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing role forbidden", func(t *testing.T) {
		rec := invokeWithRole(adminOnly, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("non-string role forbidden", func(t *testing.T) {
		rec := invokeWithRole(adminOnly, 12345)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("multiple roles", func(t *testing.T) {
		desk := RequireRole(model.RoleAgent, model.RoleAdmin)
		assert.Equal(t, http.StatusOK, invokeWithRole(desk, "AGENT").Code)
		assert.Equal(t, http.StatusOK, invokeWithRole(desk, "ADMIN").Code)
		assert.Equal(t, http.StatusForbidden, invokeWithRole(desk, "GUEST").Code)
	})
}
