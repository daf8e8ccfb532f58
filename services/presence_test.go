package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenceRegisterAndLookup(t *testing.T) {
	p := NewPresenceRegistry()

	_, ok := p.Lookup(1)
	assert.False(t, ok)

	p.Register(1, "session-1")
	sessionID, ok := p.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "session-1", sessionID)

	// 其他用户不受影响
	_, ok = p.Lookup(2)
	assert.False(t, ok)
}

func TestPresenceRegisterOverwritesPreviousSession(t *testing.T) {
	p := NewPresenceRegistry()

	p.Register(1, "session-1")
	p.Register(1, "session-2")

	sessionID, ok := p.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "session-2", sessionID)
}

func TestPresenceUnregisterRemovesMatchingSession(t *testing.T) {
	p := NewPresenceRegistry()

	p.Register(1, "session-1")
	p.Unregister(1, "session-1")

	_, ok := p.Lookup(1)
	assert.False(t, ok)
}

func TestPresenceUnregisterIgnoresStaleSession(t *testing.T) {
	p := NewPresenceRegistry()

	// 旧连接的迟到断开不能顶掉新连接
	p.Register(1, "session-old")
	p.Register(1, "session-new")
	p.Unregister(1, "session-old")

	sessionID, ok := p.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "session-new", sessionID)
}

func TestPresenceUnregisterUnknownUserIsNoop(t *testing.T) {
	p := NewPresenceRegistry()
	p.Unregister(42, "session-1")

	_, ok := p.Lookup(42)
	assert.False(t, ok)
}

func TestPresenceConcurrentAccess(t *testing.T) {
	p := NewPresenceRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		userID := uint(i % 5)
		go func(i int) {
			defer wg.Done()
			p.Register(userID, fmt.Sprintf("session-%d", i))
		}(i)
		go func() {
			defer wg.Done()
			p.Lookup(userID)
		}()
	}
	wg.Wait()

	// 每个用户最终都有且只有一条记录
	for userID := uint(0); userID < 5; userID++ {
		_, ok := p.Lookup(userID)
		assert.True(t, ok)
	}
}
