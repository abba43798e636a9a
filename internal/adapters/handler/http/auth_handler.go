package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/niyam-buddy/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/services"
)

const homePath = "/dashboard"

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

type sessionResponse struct {
	User     *domain.User `json:"user"`
	Redirect string       `json:"redirect"`
}

type messageResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

type emailRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	authGroup := public.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register/otp", h.SendRegistrationOTP)
		authGroup.POST("/register/verify", h.VerifyRegistration)
		authGroup.POST("/password/otp", h.SendPasswordResetOTP)
		authGroup.POST("/password/reset", h.ResetPassword)
	}

	protected.POST("/auth/logout", h.Logout)
	protected.GET("/me", h.Me)
}

// Login godoc
// @Summary  Sign in with email and password
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body domain.Credentials true "Credentials"
// @Success  200 {object} sessionResponse
// @Failure  400,401 {object} map[string]string
// @Router   /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	store, ok := currentStore(c)
	if !ok {
		return
	}

	var req domain.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sess, err := h.service.Login(c.Request.Context(), store, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse{User: sess.User, Redirect: homePath})
}

// SendRegistrationOTP godoc
// @Summary  Start a registration, or resend its code
// @Tags     auth
// @Accept   json
// @Param    body body domain.Registration true "New account"
// @Success  200 {object} messageResponse
// @Router   /auth/register/otp [post]
func (h *AuthHandler) SendRegistrationOTP(c *gin.Context) {
	var req domain.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.service.SendRegistrationOTP(c.Request.Context(), req); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "OTP sent to your email"})
}

// VerifyRegistration godoc
// @Summary  Complete a registration with the emailed code
// @Tags     auth
// @Accept   json
// @Param    body body domain.RegistrationVerification true "Code"
// @Success  200 {object} sessionResponse
// @Router   /auth/register/verify [post]
func (h *AuthHandler) VerifyRegistration(c *gin.Context) {
	store, ok := currentStore(c)
	if !ok {
		return
	}

	var req domain.RegistrationVerification
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sess, err := h.service.VerifyRegistration(c.Request.Context(), store, req)
	if err != nil {
		handleError(c, err)
		return
	}

	if sess == nil {
		c.JSON(http.StatusOK, messageResponse{
			Message:  "Registration successful. Please login.",
			Redirect: middleware.AuthPath,
		})
		return
	}
	c.JSON(http.StatusOK, sessionResponse{User: sess.User, Redirect: homePath})
}

// SendPasswordResetOTP godoc
// @Summary  Email a password reset code
// @Tags     auth
// @Accept   json
// @Param    body body emailRequest true "Account email"
// @Success  200 {object} messageResponse
// @Router   /auth/password/otp [post]
func (h *AuthHandler) SendPasswordResetOTP(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.service.SendPasswordResetOTP(c.Request.Context(), req.Email); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "OTP sent to your email"})
}

// ResetPassword godoc
// @Summary  Set a new password with the emailed code
// @Tags     auth
// @Accept   json
// @Param    body body domain.PasswordReset true "Reset"
// @Success  200 {object} messageResponse
// @Router   /auth/password/reset [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req domain.PasswordReset
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{
		Message:  "Password reset successful. Please login.",
		Redirect: middleware.AuthPath,
	})
}

// Logout godoc
// @Summary  Sign out and forget every stored value of the session
// @Tags     auth
// @Success  200 {object} messageResponse
// @Router   /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	store, ok := currentStore(c)
	if !ok {
		return
	}

	if err := h.service.Logout(c.Request.Context(), store); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Signed out", Redirect: middleware.AuthPath})
}

// Me godoc
// @Summary  Current user
// @Tags     auth
// @Success  200 {object} domain.User
// @Router   /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	store, ok := currentStore(c)
	if !ok {
		return
	}

	user := store.Current().User
	if user == nil {
		user = &domain.User{}
	}
	c.JSON(http.StatusOK, user)
}
