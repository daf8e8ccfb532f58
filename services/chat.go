package services

import (
	"errors"
	"fmt"
	"sync"

	"social-network/models"

	"gorm.io/gorm"
)

// ChatService 私聊会话存储。同一对用户的并发写入用会话级锁串行化，
// 不同会话之间互不影响。
type ChatService struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{
		db:    db,
		locks: make(map[string]*sync.Mutex),
	}
}

// pairKey 归一化的会话键，与收发方向无关
func pairKey(userA, userB uint) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return fmt.Sprintf("%d_%d", userA, userB)
}

func (s *ChatService) pairLock(userA, userB uint) *sync.Mutex {
	key := pairKey(userA, userB)
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// AppendMessage 追加一条消息。会话不存在时带着首条消息一起创建，
// 返回含完整消息列表的会话
func (s *ChatService) AppendMessage(senderID, destID uint, body string) (*models.Chat, error) {
	lock := s.pairLock(senderID, destID)
	lock.Lock()
	defer lock.Unlock()

	var chat models.Chat
	err := s.db.
		Where("(main_user = ? AND sub_participant = ?) OR (main_user = ? AND sub_participant = ?)",
			senderID, destID, destID, senderID).
		First(&chat).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		chat = models.Chat{
			MainUser:       senderID,
			SubParticipant: destID,
			Messages: []models.ChatMessage{
				{SenderID: senderID, Message: body},
			},
		}
		if err := s.db.Create(&chat).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		message := models.ChatMessage{
			ChatID:   chat.ID,
			SenderID: senderID,
			Message:  body,
		}
		if err := s.db.Create(&message).Error; err != nil {
			return nil, err
		}
	}

	return s.loadChat(chat.ID)
}

// GetChat 查询两个用户之间的会话，不存在返回 nil（不算错误）
func (s *ChatService) GetChat(userA, userB uint) (*models.Chat, error) {
	var chat models.Chat
	err := s.db.
		Where("(main_user = ? AND sub_participant = ?) OR (main_user = ? AND sub_participant = ?)",
			userA, userB, userB, userA).
		First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.loadChat(chat.ID)
}

func (s *ChatService) loadChat(chatID uint) (*models.Chat, error) {
	var chat models.Chat
	err := s.db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&chat, chatID).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}
