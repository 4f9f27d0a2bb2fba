package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bb3/bodybuddy/internal/middleware"
	"github.com/bb3/bodybuddy/internal/services"
	"github.com/bb3/bodybuddy/pkg/response"
)

type GymHandler struct {
	gyms *services.GymService
}

func NewGymHandler(gyms *services.GymService) *GymHandler {
	return &GymHandler{gyms: gyms}
}

// Create registers a gym. Admin only.
// POST /api/admin/gyms
func (h *GymHandler) Create(c *gin.Context) {
	var req services.GymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	gym, err := h.gyms.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gym)
}

// List returns gyms, filtered by the optional keyword query.
// GET /api/gyms
func (h *GymHandler) List(c *gin.Context) {
	gyms, err := h.gyms.List(c.Query("keyword"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gyms)
}

// Get returns a single gym.
// GET /api/gyms/:id
func (h *GymHandler) Get(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	gym, err := h.gyms.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gym)
}

// Join adds the caller to the gym's member list.
// POST /api/gyms/:id/join
func (h *GymHandler) Join(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	if err := h.gyms.Join(middleware.GetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "joined"})
}

// Leave drops the caller's membership.
// DELETE /api/gyms/:id/join
func (h *GymHandler) Leave(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}

	if err := h.gyms.Leave(middleware.GetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "left"})
}
