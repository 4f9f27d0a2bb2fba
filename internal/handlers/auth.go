package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/bb3/bodybuddy/internal/auth"
	"github.com/bb3/bodybuddy/internal/middleware"
	"github.com/bb3/bodybuddy/internal/models"
	"github.com/bb3/bodybuddy/internal/services"
	"github.com/bb3/bodybuddy/pkg/response"
)

type AuthHandler struct {
	users    *services.UserService
	sessions *auth.Sessions
}

func NewAuthHandler(users *services.UserService, sessions *auth.Sessions) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=64"`
}

// userView is the account shape returned to clients. The password hash never
// leaves the model thanks to its json:"-" tag, but the view keeps responses
// stable regardless of model growth.
type userView struct {
	ID         uint    `json:"id"`
	Email      string  `json:"email,omitempty"`
	Nickname   string  `json:"nickname"`
	Gender     string  `json:"gender"`
	Role       string  `json:"role"`
	ImageURL   string  `json:"imageUrl,omitempty"`
	Intro      string  `json:"intro,omitempty"`
	HeightCm   float64 `json:"heightCm,omitempty"`
	WeightKg   float64 `json:"weightKg,omitempty"`
	HasProfile bool    `json:"hasProfile"`
	Age        int     `json:"age"`
}

func newUserView(u *models.User) userView {
	return userView{
		ID:         u.ID,
		Email:      u.Email,
		Nickname:   u.Nickname,
		Gender:     u.Gender,
		Role:       u.Role,
		ImageURL:   u.ImageURL,
		Intro:      u.Intro,
		HeightCm:   u.HeightCm,
		WeightKg:   u.WeightKg,
		HasProfile: u.HasProfile,
		Age:        u.Age(),
	}
}

// Signup registers a new account.
// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.Signup(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, newUserView(user))
}

// Login authenticates an email/password pair and issues a token pair. The
// access token rides the Authorization response header; the refresh token is
// in the body.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	pair, err := h.sessions.IssuePair(c.Request.Context(), user.ID, user.Email, user.Role)
	if err != nil {
		response.ServerError(c, "failed to issue tokens")
		return
	}

	c.Header("Authorization", "Bearer "+pair.AccessToken)
	response.Success(c, gin.H{
		"refreshToken": pair.RefreshToken,
		"user":         newUserView(user),
	})
}

// Refresh rotates a refresh token for a fresh pair. The spent token is gone
// after this call; clients must switch to the returned one.
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pair, err := h.sessions.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidRefresh):
			response.Unauthorized(c, "invalid refresh token")
		case errors.Is(err, auth.ErrRefreshNotFound):
			response.Unauthorized(c, "refresh token is no longer valid")
		case errors.Is(err, auth.ErrUserNotFound):
			response.Unauthorized(c, "account no longer exists")
		default:
			response.ServerError(c, "failed to refresh tokens")
		}
		return
	}

	c.Header("Authorization", "Bearer "+pair.AccessToken)
	response.Success(c, gin.H{"refreshToken": pair.RefreshToken})
}

// Logout ends the session: the refresh token is deleted and the presented
// access token is denylisted for its remaining lifetime.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	accessToken := c.GetString(middleware.ContextAccessToken)
	err := h.sessions.Logout(c.Request.Context(), req.RefreshToken, accessToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidRefresh):
			response.Unauthorized(c, "invalid refresh token")
		case errors.Is(err, auth.ErrRefreshNotFound):
			response.Unauthorized(c, "refresh token is no longer valid")
		default:
			response.ServerError(c, "failed to log out")
		}
		return
	}

	response.Success(c, gin.H{"message": "logged out successfully"})
}

// Me returns the current account.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.users.GetByID(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, newUserView(user))
}

// ChangePassword rotates the account password after verifying the old one.
// PUT /api/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.users.ChangePassword(middleware.GetUserID(c), req.OldPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "password changed"})
}
