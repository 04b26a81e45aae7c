package api

import (
	"net/http"

	reqdto "campus-parking/internal/handler/dto/request"
	resdto "campus-parking/internal/handler/dto/response"
	"campus-parking/internal/handler/middleware"
	"campus-parking/internal/pkg/config"
	"campus-parking/internal/pkg/cookie"
	"campus-parking/internal/usecase/commands"
	"campus-parking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
	userQueries  queries.UserQueries
	cfg          config.Config
}

func NewAuthHandler(authCommands commands.AuthCommands, userQueries queries.UserQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		userQueries:  userQueries,
		cfg:          cfg,
	}
}

// @Summary User login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	cookie.SetAccessTokenCookie(c, h.cfg.Cookie, result.Token, h.cfg.JWT.Duration)
	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.Token,
		User:        result.User,
	})
}

// @Summary User logout
// @Description Clear the session cookie
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessTokenCookie(c, h.cfg.Cookie)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.UserView
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	u, err := h.userQueries.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}
