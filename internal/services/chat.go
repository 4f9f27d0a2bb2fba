package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bb3/bodybuddy/internal/models"
	"github.com/bb3/bodybuddy/pkg/response"
)

type ChatService struct {
	db   *gorm.DB
	gyms *GymService
}

func NewChatService(db *gorm.DB, gyms *GymService) *ChatService {
	return &ChatService{db: db, gyms: gyms}
}

type ChatRequest struct {
	Name string `json:"name" binding:"required,min=2,max=200"`
}

type MessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// CreateChat opens a room in a gym. Only members of that gym may open rooms;
// the creator joins their own room immediately.
func (s *ChatService) CreateChat(gymID, ownerID uint, req *ChatRequest) (*models.Chat, error) {
	member, err := s.gyms.IsMember(ownerID, gymID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, response.NewForbidden("join the gym before opening a chat room")
	}

	chat := models.Chat{GymID: gymID, Name: req.Name, OwnerID: ownerID}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&chat).Error; err != nil {
			return err
		}
		return tx.Create(&models.ChatMembership{ChatID: chat.ID, UserID: ownerID}).Error
	})
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (s *ChatService) ListByGym(gymID uint) ([]models.Chat, error) {
	if _, err := s.gyms.GetByID(gymID); err != nil {
		return nil, err
	}

	var chats []models.Chat
	if err := s.db.Where("gym_id = ?", gymID).Order("created_at").Find(&chats).Error; err != nil {
		return nil, err
	}
	return chats, nil
}

func (s *ChatService) GetByID(id uint) (*models.Chat, error) {
	var chat models.Chat
	if err := s.db.First(&chat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("chat not found")
		}
		return nil, err
	}
	return &chat, nil
}

// Join adds the user to a chat room after checking they belong to the room's
// gym. Joining twice is a no-op.
func (s *ChatService) Join(chatID, userID uint) error {
	chat, err := s.GetByID(chatID)
	if err != nil {
		return err
	}

	member, err := s.gyms.IsMember(userID, chat.GymID)
	if err != nil {
		return err
	}
	if !member {
		return response.NewForbidden("this chat belongs to a gym you have not joined")
	}

	joined, err := s.isJoined(chatID, userID)
	if err != nil {
		return err
	}
	if joined {
		return nil
	}
	return s.db.Create(&models.ChatMembership{ChatID: chatID, UserID: userID}).Error
}

// SendMessage persists a message from a room member.
func (s *ChatService) SendMessage(chatID, senderID uint, req *MessageRequest) (*models.Message, error) {
	if _, err := s.GetByID(chatID); err != nil {
		return nil, err
	}

	joined, err := s.isJoined(chatID, senderID)
	if err != nil {
		return nil, err
	}
	if !joined {
		return nil, response.NewForbidden("join the chat before sending messages")
	}

	msg := models.Message{ChatID: chatID, SenderID: senderID, Content: req.Content}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// Messages returns a room's history, oldest first.
func (s *ChatService) Messages(chatID, userID uint) ([]models.Message, error) {
	if _, err := s.GetByID(chatID); err != nil {
		return nil, err
	}

	joined, err := s.isJoined(chatID, userID)
	if err != nil {
		return nil, err
	}
	if !joined {
		return nil, response.NewForbidden("join the chat to read its history")
	}

	var msgs []models.Message
	if err := s.db.Where("chat_id = ?", chatID).Order("created_at").Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *ChatService) isJoined(chatID, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.ChatMembership{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	return count > 0, err
}
