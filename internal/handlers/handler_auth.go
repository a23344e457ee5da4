package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finance_dashboard/internal/core/ports/services"
	"github.com/SscSPs/finance_dashboard/internal/dto"
	"github.com/SscSPs/finance_dashboard/internal/middleware"
	"github.com/SscSPs/finance_dashboard/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// loginRate throttles credential guessing per client IP.
const loginRate = "5-M"

// authHandler handles authentication related requests.
type authHandler struct {
	authService  portssvc.AuthSvcFacade
	tokenService portssvc.TokenSvc
	analytics    *utils.PosthogClientWrapper
}

func newAuthHandler(as portssvc.AuthSvcFacade, ts portssvc.TokenSvc, analytics *utils.PosthogClientWrapper) *authHandler {
	return &authHandler{authService: as, tokenService: ts, analytics: analytics}
}

// registerPublicAuthRoutes sets up the routes that issue tokens.
func registerPublicAuthRoutes(r *gin.Engine, h *authHandler) {
	rate, _ := limiter.NewRateFromFormatted(loginRate)
	limitMiddleware := limitergin.NewMiddleware(limiter.New(memory.NewStore(), rate))

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.login)
		auth.POST("/register", h.register)
	}
}

// registerSessionRoutes sets up the routes that need a live session.
func registerSessionRoutes(rg *gin.RouterGroup, h *authHandler) {
	auth := rg.Group("/auth")
	{
		auth.POST("/logout", h.logout)
		auth.GET("/me", h.me)
		auth.PUT("/profile", h.updateProfile)
		auth.PUT("/password", h.updatePassword)
	}
}

// register godoc
// @Summary Register new user
// @Description Creates a user in the local directory, signs them in and returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} dto.AuthResult "Email already in use"
// @Failure 503 {object} dto.AuthResult "Storage unavailable"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		logger.Warn("Registration failed", slog.String("error", err.Error()))
		c.JSON(statusForError(err), dto.ToAuthResult(dto.OpRegister, err))
		return
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), *user)
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	h.analytics.Enqueue(user.ID, "user_registered", nil)
	c.JSON(http.StatusCreated, dto.AuthResponse{
		AuthResult: dto.ToAuthResult(dto.OpRegister, nil),
		Token:      token,
		ExpiresAt:  expiresAt,
		User:       dto.ToUserResponse(user),
	})
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} dto.AuthResult "Invalid email or password"
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(statusForError(err), dto.ToAuthResult(dto.OpLogin, err))
		return
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), *user)
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	h.analytics.Enqueue(user.ID, "user_logged_in", nil)
	c.JSON(http.StatusOK, dto.AuthResponse{
		AuthResult: dto.ToAuthResult(dto.OpLogin, nil),
		Token:      token,
		ExpiresAt:  expiresAt,
		User:       dto.ToUserResponse(user),
	})
}

// logout godoc
// @Summary Log out
// @Description Ends the current session. Tokens issued for it stop working.
// @Tags auth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		respondError(c, logger, err, "Failed to logout")
		return
	}
	c.Status(http.StatusNoContent)
}

// me godoc
// @Summary Current user
// @Description Returns the signed-in user.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	session, ok := h.authService.CurrentSession(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(&session.User))
}

// updateProfile godoc
// @Summary Update account details
// @Description Changes the signed-in user's name and email.
// @Tags auth
// @Accept json
// @Produce json
// @Param profile body dto.UpdateUserProfileRequest true "New name and email"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} dto.AuthResult "User not found"
// @Failure 409 {object} dto.AuthResult "Email already in use"
// @Security BearerAuth
// @Router /auth/profile [put]
func (h *authHandler) updateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req dto.UpdateUserProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, req.Name, req.Email)
	if err != nil {
		c.JSON(statusForError(err), dto.ToAuthResult(dto.OpUpdateProfile, err))
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updatePassword godoc
// @Summary Change password
// @Description Replaces the signed-in user's password after checking the current one.
// @Tags auth
// @Accept json
// @Produce json
// @Param password body dto.UpdatePasswordRequest true "Current and new password"
// @Success 200 {object} dto.AuthResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} dto.AuthResult "Current password is incorrect"
// @Security BearerAuth
// @Router /auth/password [put]
func (h *authHandler) updatePassword(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	err := h.authService.UpdatePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword)
	result := dto.ToAuthResult(dto.OpUpdatePassword, err)
	if err != nil {
		c.JSON(statusForError(err), result)
		return
	}
	c.JSON(http.StatusOK, result)
}
