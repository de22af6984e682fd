package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	identityapp "github.com/stockdash/backend/internal/application/identity"
	"github.com/stockdash/backend/internal/interfaces/http/middleware"
)

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionCookieConfig describes the session cookie written on login
type SessionCookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	cookie      SessionCookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identityapp.AuthService, cookie SessionCookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
	}
}

// Login authenticates with email and password.
// The token is returned in the body and also set as the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identityapp.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token, 0)
	h.SuccessWithMessage(c, result, "Login successful")
}

// Register is not offered by the dashboard
func (h *AuthHandler) Register(c *gin.Context) {
	h.BadRequest(c, "Registration is disabled")
}

// Logout clears the session cookie. Tokens are not revoked.
func (h *AuthHandler) Logout(c *gin.Context) {
	if principal, ok := middleware.CurrentPrincipal(c); ok {
		h.authService.Logout(c.Request.Context(), principal)
	}
	h.setSessionCookie(c, "", -1)
	h.SuccessWithMessage(c, nil, "Logout successful")
}

// Me returns the signed-in user
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		h.Unauthorized(c, middleware.ReasonAuthRequired)
		return
	}

	user, err := h.authService.Me(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	if h.cookie.Name == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
