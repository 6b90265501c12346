package model

import "time"

type Message struct {
	UUIDBase
	SenderID   string    `gorm:"size:36;index:idx_messages_pair;not null" json:"senderId"`
	ReceiverID string    `gorm:"size:36;index:idx_messages_pair;not null" json:"receiverId"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	Timestamp  time.Time `gorm:"index" json:"timestamp"`
	IsRead     bool      `gorm:"default:false" json:"isRead"`
}

func (Message) TableName() string {
	return "messages"
}
