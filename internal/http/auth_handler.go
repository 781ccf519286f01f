package http

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"toolkeep/internal/service"
)

// SessionCookieName es el nombre de la cookie de sesión HTTP-only.
const SessionCookieName = "toolkeep_session"

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthHandler mantiene dependencias para los endpoints de autenticación.
type AuthHandler struct {
	logger   *zap.Logger
	users    *service.UserService
	sessions *service.SessionService
	limiter  service.LoginRateLimiter
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, users *service.UserService, sessions *service.SessionService, limiter service.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		users:    users,
		sessions: sessions,
		limiter:  limiter,
	}
}

// Register maneja POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	// Validación previa al store: sintaxis de email y largo mínimo.
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_credentials"})
		return
	}
	if !emailPattern.MatchString(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_email"})
		return
	}
	if len(req.Password) < minPasswordLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weak_password"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Email:    email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email_taken"})
			return
		}
		h.logger.Error("register failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could_not_register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Login maneja POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if h.limiter != nil && !h.limiter.Allow(req.Email) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too_many_attempts"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could_not_login"})
		return
	}

	token, err := h.sessions.Issue(user)
	if err != nil {
		h.logger.Error("session issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could_not_issue_session"})
		return
	}

	h.setSessionCookie(c, token, int(h.sessions.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Session maneja GET /auth/session. Cookie ausente, token inválido o
// vencido y usuario desconocido responden igual: {ok:false, user:null}.
func (h *AuthHandler) Session(c *gin.Context) {
	token, err := c.Cookie(SessionCookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusOK, gin.H{"ok": false, "user": nil})
		return
	}

	claims, err := h.sessions.Verify(token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "user": nil})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if !errors.Is(err, service.ErrUserNotFound) {
			h.logger.Error("session lookup failed", zap.Error(err))
		}
		c.JSON(http.StatusOK, gin.H{"ok": false, "user": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}

// Logout maneja POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

// Me maneja GET /users/me detrás del middleware de sesión.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := GetSessionClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if !errors.Is(err, service.ErrUserNotFound) {
			h.logger.Error("me lookup failed", zap.Error(err))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", false, true)
}
