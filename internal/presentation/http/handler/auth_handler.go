package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/boutique-api/internal/application/service"
	"github.com/sangkips/boutique-api/internal/presentation/http/dto/request"
	"github.com/sangkips/boutique-api/internal/presentation/http/dto/response"
	"github.com/sangkips/boutique-api/pkg/apperror"
	"github.com/sangkips/boutique-api/pkg/oauth"
	"go.uber.org/zap"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateMaxAge = 600
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService  *service.AuthService
	googleOAuth  *oauth.GoogleOAuthService
	secureCookie bool
	log          *zap.Logger
}

// NewAuthHandler creates a new auth handler. googleOAuth may be nil when
// Google sign-in is not set up.
func NewAuthHandler(authService *service.AuthService, googleOAuth *oauth.GoogleOAuthService, secureCookie bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		googleOAuth:  googleOAuth,
		secureCookie: secureCookie,
		log:          log,
	}
}

func tokenPayload(out *service.LoginOutput) gin.H {
	return gin.H{
		"user":          out.User,
		"permissions":   out.User.GetPermissions(),
		"access_token":  out.AccessToken,
		"refresh_token": out.RefreshToken,
		"token_type":    "Bearer",
		"expires_in":    out.ExpiresIn,
	}
}

// Login handles user login
// @Summary Login
// @Description Authenticate staff with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Login successful", tokenPayload(output))
}

// RefreshToken handles token refresh
// @Summary Refresh Token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Token refreshed successfully", tokenPayload(output))
}

// Me returns the signed-in staff member
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetCurrentUser(c.Request.Context(), GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Profile retrieved successfully", gin.H{
		"user":        user,
		"permissions": user.GetPermissions(),
	})
}

// GoogleAuth redirects to Google's consent page. The state travels in a
// short-lived cookie and is checked on the callback.
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	if h.googleOAuth == nil || !h.googleOAuth.IsConfigured() {
		response.Error(c, apperror.NewAppError(http.StatusNotImplemented, "Google sign-in is not configured"))
		return
	}

	state := oauth.NewState()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuth.GetAuthURL(state))
}

// GoogleCallback finishes Google sign-in and hands the tokens to the
// frontend in the URL fragment.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.googleOAuth == nil || !h.googleOAuth.IsConfigured() {
		response.Error(c, apperror.NewAppError(http.StatusNotImplemented, "Google sign-in is not configured"))
		return
	}

	expected, _ := c.Cookie(oauthStateCookie)
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secureCookie, true)
	if expected == "" || c.Query("state") != expected {
		h.oauthFailure(c, "invalid_state")
		return
	}
	if reason := c.Query("error"); reason != "" {
		h.oauthFailure(c, reason)
		return
	}

	ctx := c.Request.Context()
	info, err := h.googleOAuth.Authenticate(ctx, c.Query("code"))
	if err != nil {
		h.log.Warn("google authentication failed", zap.Error(err))
		h.oauthFailure(c, "exchange_failed")
		return
	}
	output, err := h.authService.GoogleLogin(ctx, info)
	if err != nil {
		h.oauthFailure(c, "not_authorized")
		return
	}

	fragment := url.Values{}
	fragment.Set("access_token", output.AccessToken)
	fragment.Set("refresh_token", output.RefreshToken)
	fragment.Set("token_type", "Bearer")
	c.Redirect(http.StatusFound, h.googleOAuth.GetFrontendSuccessURL()+"#"+fragment.Encode())
}

func (h *AuthHandler) oauthFailure(c *gin.Context, reason string) {
	target := h.googleOAuth.GetFrontendErrorURL()
	if target == "" {
		response.Unauthorized(c, "Google sign-in failed: "+reason)
		return
	}
	c.Redirect(http.StatusFound, target+"?"+url.Values{"error": {reason}}.Encode())
}
