package models

import (
	"time"

	"gorm.io/gorm"
)

// Gym is a fitness facility members can register with.
type Gym struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:200;not null;index" json:"name"`
	Address   string         `gorm:"size:500;not null" json:"address"`
	CreatedBy uint           `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Gym) TableName() string { return "gyms" }

// GymMembership links a user to a gym. A user may register several gyms; the
// pair is unique.
type GymMembership struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_gym_member;not null" json:"user_id"`
	GymID     uint      `gorm:"uniqueIndex:idx_gym_member;not null" json:"gym_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (GymMembership) TableName() string { return "gym_memberships" }
