package services

import "sync"

// PresenceRegistry 在线状态表：用户ID -> 最近一次注册的会话ID。
// 纯内存状态，进程重启后全部离线。每个用户同一时刻只保留一个会话，
// 后注册的直接覆盖前一个（旧连接不会被强制关闭，只是查不到了）。
type PresenceRegistry struct {
	mu       sync.RWMutex
	sessions map[uint]string
}

func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{
		sessions: make(map[uint]string),
	}
}

// Register 无条件覆盖该用户的在线记录
func (p *PresenceRegistry) Register(userID uint, sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions[userID] = sessionID
}

// Unregister 只有当前记录还指向这个会话时才删除。
// 旧连接的迟到断开事件不能把新连接的在线记录顶掉。
func (p *PresenceRegistry) Unregister(userID uint, sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sessions[userID] == sessionID {
		delete(p.sessions, userID)
	}
}

// Lookup 查询用户当前的会话ID
func (p *PresenceRegistry) Lookup(userID uint) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	sessionID, ok := p.sessions[userID]
	return sessionID, ok
}
