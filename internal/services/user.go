package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/bb3/bodybuddy/internal/auth"
	"github.com/bb3/bodybuddy/internal/models"
	"github.com/bb3/bodybuddy/internal/utils"
	"github.com/bb3/bodybuddy/pkg/response"
)

// Youngest age allowed to sign up.
const minSignupAge = 14

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=64"`
	Nickname  string `json:"nickname" binding:"required,min=2,max=30"`
	Gender    string `json:"gender" binding:"required,oneof=MALE FEMALE"`
	BirthDate string `json:"birthDate" binding:"required"` // YYYY-MM-DD
}

type ProfileRequest struct {
	Nickname string  `json:"nickname" binding:"required,min=2,max=30"`
	Intro    string  `json:"intro" binding:"max=500"`
	HeightCm float64 `json:"heightCm" binding:"omitempty,gt=0"`
	WeightKg float64 `json:"weightKg" binding:"omitempty,gt=0"`
}

// Signup registers a local account with a unique email and a bcrypt-hashed
// password.
func (s *UserService) Signup(req *SignupRequest) (*models.User, error) {
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, response.NewBadRequest("birthDate must be formatted as YYYY-MM-DD")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict("email already registered")
	}

	user := models.User{
		Email:     req.Email,
		Nickname:  req.Nickname,
		Gender:    req.Gender,
		BirthDate: birthDate,
		Role:      models.RoleUser,
		IsActive:  true,
	}
	if user.Age() < minSignupAge {
		return nil, response.NewBadRequest("you must be at least 14 years old to sign up")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hash

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks the email/password pair. The error message does not
// reveal which of the two was wrong.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}

	if !utils.CheckPassword(password, user.Password) {
		return nil, response.NewUnauthorized("invalid email or password")
	}
	if !user.IsActive {
		return nil, response.NewUnauthorized("account is disabled")
	}

	now := time.Now()
	user.LastLogin = &now
	s.db.Model(&user).Update("last_login", now)

	return &user, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// ResolveUser recovers the token subject and role for a refresh record's
// owner. Disabled accounts resolve as absent so their refresh tokens die.
func (s *UserService) ResolveUser(_ context.Context, id uint) (string, string, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", auth.ErrUserNotFound
		}
		return "", "", err
	}
	if !user.IsActive {
		return "", "", auth.ErrUserNotFound
	}
	return user.Email, user.Role, nil
}

func (s *UserService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.GetByID(userID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(oldPassword, user.Password) {
		return response.NewUnauthorized("incorrect old password")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.db.Model(user).Update("password", hash).Error
}

// Delete removes an account after confirming the password with a bcrypt
// verify; bcrypt salts per call, so comparing a fresh hash against the
// stored one can never succeed.
func (s *UserService) Delete(userID uint, password string) error {
	user, err := s.GetByID(userID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(password, user.Password) {
		return response.NewUnauthorized("password does not match")
	}
	return s.db.Delete(user).Error
}

func (s *UserService) UpdateProfile(userID uint, req *ProfileRequest) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	user.Nickname = req.Nickname
	user.Intro = req.Intro
	user.HeightCm = req.HeightCm
	user.WeightKg = req.WeightKg
	user.HasProfile = true

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(page, pageSize int) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := s.db.Order("id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *UserService) SetActive(userID uint, active bool) error {
	user, err := s.GetByID(userID)
	if err != nil {
		return err
	}
	return s.db.Model(user).Update("is_active", active).Error
}

// EnsureAdmin creates the default admin account if no admin exists yet.
func (s *UserService) EnsureAdmin() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword("admin")
	if err != nil {
		return err
	}

	admin := models.User{
		Email:     "admin@bodybuddy.local",
		Password:  hash,
		Nickname:  "Administrator",
		Gender:    "MALE",
		BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Role:      models.RoleAdmin,
		IsActive:  true,
	}
	return s.db.Create(&admin).Error
}
