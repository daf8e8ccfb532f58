package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"social-network/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个用例一个独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Chat{},
		&models.ChatMessage{},
	))
	return db
}

func TestAppendMessageCreatesChatLazily(t *testing.T) {
	chats := NewChatService(newTestDB(t))

	chat, err := chats.AppendMessage(1, 2, "hi")
	require.NoError(t, err)
	require.NotNil(t, chat)

	assert.Equal(t, uint(1), chat.MainUser)
	assert.Equal(t, uint(2), chat.SubParticipant)
	require.Len(t, chat.Messages, 1)
	assert.Equal(t, uint(1), chat.Messages[0].SenderID)
	assert.Equal(t, "hi", chat.Messages[0].Message)
}

func TestAppendMessagePairIsSymmetric(t *testing.T) {
	chats := NewChatService(newTestDB(t))

	first, err := chats.AppendMessage(1, 2, "hello")
	require.NoError(t, err)
	second, err := chats.AppendMessage(2, 1, "hey back")
	require.NoError(t, err)

	// 两个方向落到同一个会话
	assert.Equal(t, first.ID, second.ID)
	require.Len(t, second.Messages, 2)
	assert.Equal(t, uint(1), second.Messages[0].SenderID)
	assert.Equal(t, uint(2), second.Messages[1].SenderID)
}

func TestGetChatMatchesEitherSlotOrder(t *testing.T) {
	chats := NewChatService(newTestDB(t))

	created, err := chats.AppendMessage(3, 7, "ping")
	require.NoError(t, err)

	chat, err := chats.GetChat(7, 3)
	require.NoError(t, err)
	require.NotNil(t, chat)
	assert.Equal(t, created.ID, chat.ID)
}

func TestGetChatReturnsNilWhenAbsent(t *testing.T) {
	chats := NewChatService(newTestDB(t))

	chat, err := chats.GetChat(1, 2)
	require.NoError(t, err)
	assert.Nil(t, chat)
}

func TestAppendMessagePreservesOrder(t *testing.T) {
	chats := NewChatService(newTestDB(t))

	const n = 10
	for i := 0; i < n; i++ {
		_, err := chats.AppendMessage(1, 2, fmt.Sprintf("msg-%d", i))
		require.NoError(t, err)
	}

	chat, err := chats.GetChat(1, 2)
	require.NoError(t, err)
	require.NotNil(t, chat)
	require.Len(t, chat.Messages, n)
	for i, message := range chat.Messages {
		assert.Equal(t, fmt.Sprintf("msg-%d", i), message.Message)
	}
}

func TestConcurrentAppendsSamePairAllSurvive(t *testing.T) {
	chats := NewChatService(newTestDB(t))

	const k = 20
	var wg sync.WaitGroup
	errs := make(chan error, k)
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// 双方同时往同一个会话里写
			sender, dest := uint(1), uint(2)
			if i%2 == 1 {
				sender, dest = dest, sender
			}
			_, err := chats.AppendMessage(sender, dest, fmt.Sprintf("msg-%d", i))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	chat, err := chats.GetChat(1, 2)
	require.NoError(t, err)
	require.NotNil(t, chat)
	// 不丢不重，且只建出一个会话
	assert.Len(t, chat.Messages, k)

	var count int64
	require.NoError(t, chats.db.Model(&models.Chat{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConcurrentAppendsDifferentPairsIndependent(t *testing.T) {
	chats := NewChatService(newTestDB(t))

	var wg sync.WaitGroup
	for pair := 0; pair < 4; pair++ {
		wg.Add(1)
		go func(pair int) {
			defer wg.Done()
			sender := uint(pair*2 + 1)
			dest := uint(pair*2 + 2)
			for i := 0; i < 5; i++ {
				_, err := chats.AppendMessage(sender, dest, fmt.Sprintf("p%d-%d", pair, i))
				assert.NoError(t, err)
			}
		}(pair)
	}
	wg.Wait()

	for pair := 0; pair < 4; pair++ {
		chat, err := chats.GetChat(uint(pair*2+1), uint(pair*2+2))
		require.NoError(t, err)
		require.NotNil(t, chat)
		assert.Len(t, chat.Messages, 5)
	}
}
