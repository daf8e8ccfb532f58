package models

import "time"

// Chat 私聊会话，一对用户只有一条记录。
// MainUser/SubParticipant 只是固定的存储槽位（首条消息的发送方/接收方），
// 查询时两个方向都要匹配。会话不会被删除。
type Chat struct {
	ID             uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	MainUser       uint          `gorm:"index:idx_chat_pair" json:"main_user"`
	SubParticipant uint          `gorm:"index:idx_chat_pair" json:"sub_participant"`
	Messages       []ChatMessage `gorm:"foreignKey:ChatID" json:"messages"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// ChatMessage 会话内的一条消息，插入后不可变
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatID    uint      `gorm:"index" json:"chat_id"`
	SenderID  uint      `gorm:"index" json:"sender_id"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
