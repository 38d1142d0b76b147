package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatSession struct {
	Id          string         `gorm:"type:text;primaryKey"` // client generated
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title       string         `gorm:"type:text;not null"`
	Messages    datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	LastUpdated int64          `gorm:"not null;index"` // unix milliseconds
}

func (ChatSession) TableName() string {
	return "eli5_chats"
}
