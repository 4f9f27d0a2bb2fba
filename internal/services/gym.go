package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bb3/bodybuddy/internal/models"
	"github.com/bb3/bodybuddy/pkg/response"
)

type GymService struct {
	db *gorm.DB
}

func NewGymService(db *gorm.DB) *GymService {
	return &GymService{db: db}
}

type GymRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=200"`
	Address string `json:"address" binding:"required,max=500"`
}

func (s *GymService) Create(req *GymRequest, createdBy uint) (*models.Gym, error) {
	var count int64
	if err := s.db.Model(&models.Gym{}).
		Where("name = ? AND address = ?", req.Name, req.Address).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict("gym already registered at this address")
	}

	gym := models.Gym{
		Name:      req.Name,
		Address:   req.Address,
		CreatedBy: createdBy,
	}
	if err := s.db.Create(&gym).Error; err != nil {
		return nil, err
	}
	return &gym, nil
}

// List returns gyms, optionally filtered by a name substring.
func (s *GymService) List(keyword string) ([]models.Gym, error) {
	q := s.db.Order("name")
	if keyword != "" {
		q = q.Where("name LIKE ?", "%"+keyword+"%")
	}

	var gyms []models.Gym
	if err := q.Find(&gyms).Error; err != nil {
		return nil, err
	}
	return gyms, nil
}

func (s *GymService) GetByID(id uint) (*models.Gym, error) {
	var gym models.Gym
	if err := s.db.First(&gym, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("gym not found")
		}
		return nil, err
	}
	return &gym, nil
}

// Join registers the user with the gym. Joining twice is a conflict.
func (s *GymService) Join(userID, gymID uint) error {
	if _, err := s.GetByID(gymID); err != nil {
		return err
	}

	member, err := s.IsMember(userID, gymID)
	if err != nil {
		return err
	}
	if member {
		return response.NewConflict("already a member of this gym")
	}

	return s.db.Create(&models.GymMembership{UserID: userID, GymID: gymID}).Error
}

// Leave drops the membership. Leaving a gym the user never joined is a
// no-op.
func (s *GymService) Leave(userID, gymID uint) error {
	return s.db.
		Where("user_id = ? AND gym_id = ?", userID, gymID).
		Delete(&models.GymMembership{}).Error
}

func (s *GymService) IsMember(userID, gymID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.GymMembership{}).
		Where("user_id = ? AND gym_id = ?", userID, gymID).
		Count(&count).Error
	return count > 0, err
}
