package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/askanon/board/pkg/response"
)

// CookieName is the admin session cookie.
const CookieName = "admin_token"

// defaultFailureDelay is the fixed pause before answering a failed login, as
// brute-force friction.
const defaultFailureDelay = 2 * time.Second

// LoginRequest is the body for POST /admin/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Handler handles admin login and session verification.
type Handler struct {
	verifier     *Verifier
	tokens       *TokenService
	logger       *zap.Logger
	secureCookie bool
	failureDelay time.Duration
}

// NewHandler creates an auth handler. secureCookie marks the session cookie
// Secure, for deployments behind TLS.
func NewHandler(verifier *Verifier, tokens *TokenService, secureCookie bool, logger *zap.Logger) *Handler {
	return &Handler{
		verifier:     verifier,
		tokens:       tokens,
		logger:       logger,
		secureCookie: secureCookie,
		failureDelay: defaultFailureDelay,
	}
}

// Login handles POST /admin/login. Invalid credentials pause before the 401
// response; valid ones set the http-only session cookie and return the token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username and password required")
		return
	}

	if !h.verifier.Verify(req.Username, req.Password) {
		time.Sleep(h.failureDelay)
		response.Unauthorized(c, "invalid credentials")
		return
	}

	token, err := h.tokens.Generate(req.Username)
	if err != nil {
		h.logger.Error("generate admin token", zap.Error(err))
		response.Internal(c, "internal server error")
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, token, int(TokenTTL.Seconds()), "/", "", h.secureCookie, true)
	response.OK(c, gin.H{"token": token})
}

// VerifySession handles GET /admin/verify. It reports cookie validity and
// never fails: a missing or bad cookie just means not admin.
func (h *Handler) VerifySession(c *gin.Context) {
	token, err := c.Cookie(CookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusOK, gin.H{"isAdmin": false})
		return
	}
	claims, err := h.tokens.Verify(token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"isAdmin": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAdmin": true, "username": claims.Username})
}
