package models

import (
	"time"

	"gorm.io/gorm"
)

// Chat is a room scoped to a single gym; only that gym's members may join.
type Chat struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	GymID     uint           `gorm:"index;not null" json:"gym_id"`
	Name      string         `gorm:"size:200;not null" json:"name"`
	OwnerID   uint           `gorm:"not null" json:"owner_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Chat) TableName() string { return "chats" }

// ChatMembership records who has joined a chat room.
type ChatMembership struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChatID    uint      `gorm:"uniqueIndex:idx_chat_member;not null" json:"chat_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_chat_member;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ChatMembership) TableName() string { return "chat_memberships" }

// Message is a persisted chat message, fetched over REST as room history.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChatID    uint      `gorm:"index;not null" json:"chat_id"`
	SenderID  uint      `gorm:"index;not null" json:"sender_id"`
	Content   string    `gorm:"size:2000;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Message) TableName() string { return "messages" }
