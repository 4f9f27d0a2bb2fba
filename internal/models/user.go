package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. The role travels inside access tokens under the "auth" claim.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is the canonical account record. The email doubles as the token
// subject (the external login identifier).
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Email      string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password   string         `gorm:"size:255;not null" json:"-"`
	Nickname   string         `gorm:"size:100" json:"nickname"`
	Gender     string         `gorm:"size:10" json:"gender"` // MALE, FEMALE
	BirthDate  time.Time      `json:"birth_date"`
	Role       string         `gorm:"size:20;default:USER" json:"role"`
	ImageURL   string         `gorm:"size:500" json:"image_url"`
	Intro      string         `gorm:"size:500" json:"intro"`
	HeightCm   float64        `json:"height_cm"`
	WeightKg   float64        `json:"weight_kg"`
	HasProfile bool           `gorm:"default:false" json:"has_profile"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	LastLogin  *time.Time     `json:"last_login"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// Age in full years as of now.
func (u *User) Age() int {
	now := time.Now()
	age := now.Year() - u.BirthDate.Year()
	if now.YearDay() < u.BirthDate.YearDay() {
		age--
	}
	return age
}
