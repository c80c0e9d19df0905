package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/middleware"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/service"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// ----- DTOs -----

type registerReq struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // ADMIN | AGENT | GUEST, defaults to GUEST
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
type loginResp struct {
	User  userPart `json:"user"`
	Token string   `json:"token"`
}

// Register creates a user account. The role defaults to GUEST; creating an
// ADMIN through this endpoint is allowed only for bootstrap deployments
// where no admin exists yet, so production fronts it with network policy.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	token, u, err := h.Auth.Register(ctx, req.FullName, req.Email, req.Password, model.ParseRole(req.Role))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, loginResp{
		User:  userPart{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: string(u.Role)},
		Token: token,
	})
}

// Login verifies credentials and opens a session, returning the opaque
// bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	token, u, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, loginResp{
		User:  userPart{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: string(u.Role)},
		Token: token,
	})
}

// Logout deactivates the presented session token. Idempotent: logging out
// twice or with an unknown token still returns 204.
func (h *AuthHandler) Logout(c echo.Context) error {
	token := middleware.BearerToken(c)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Auth.Logout(ctx, token); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me resolves the current session to its user.
func (h *AuthHandler) Me(c echo.Context) error {
	token := middleware.BearerToken(c)
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Auth.ValidateToken(ctx, token)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":       userPart{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: string(u.Role)},
		"created_at": u.CreatedAt.Format(time.RFC3339),
	})
}
