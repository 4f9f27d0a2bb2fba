package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bb3/bodybuddy/internal/middleware"
	"github.com/bb3/bodybuddy/internal/services"
	"github.com/bb3/bodybuddy/pkg/response"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type deleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// pathID parses a :id route parameter. A zero return means the response has
// already been written.
func pathID(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid id")
		return 0
	}
	return uint(id)
}

// UpdateProfile fills in or replaces the caller's fitness profile.
// PUT /api/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req services.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.UpdateProfile(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, newUserView(user))
}

// GetProfile returns another member's public profile.
// GET /api/profiles/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	user, err := h.users.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	view := newUserView(user)
	view.Email = "" // not exposed on public profiles
	response.Success(c, view)
}

// DeleteAccount removes the caller's account after a password confirmation.
// DELETE /api/users/me
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	var req deleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.users.Delete(middleware.GetUserID(c), req.Password); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "account deleted"})
}

// List returns a page of accounts.
// GET /api/admin/users
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	users, total, err := h.users.List(page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, newUserView(&users[i]))
	}
	response.Success(c, gin.H{
		"users": views,
		"total": total,
		"page":  page,
	})
}

// SetActive enables or disables an account. Disabling also kills the
// account's refresh tokens at their next use.
// PUT /api/admin/users/:id/active
func (h *UserHandler) SetActive(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.users.SetActive(id, *req.Active); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "updated"})
}
