package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"social-network/middlewares"
	"social-network/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	pingInterval = 10 * time.Second // 发送 ping 的间隔
	pongTimeout  = 15 * time.Second // 超过 15 秒未收到 pong 断开连接
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// 协议事件
const (
	eventSendMessage    = "sendMessage"
	eventSuccessMessage = "successMessage"
	eventReceiveMessage = "receiveMessage"
	eventAuthError      = "authError"
	eventErrorMessage   = "errorMessage"
)

// wsEvent 连接上双向收发的事件帧
type wsEvent struct {
	Event      string       `json:"event"`
	Message    string       `json:"message,omitempty"`
	DestID     uint         `json:"destId,omitempty"`
	StatusCode int          `json:"statusCode,omitempty"`
	Chat       *models.Chat `json:"chat,omitempty"`
}

// Client 一条 WebSocket 连接。Authorization 保存握手时带上的凭证，
// 每个事件都拿它重新校验
type Client struct {
	Conn          *websocket.Conn
	Send          chan []byte
	SessionID     string
	Authorization string
	UserID        uint // 连接鉴权成功后绑定
	LastPing      time.Time

	mu     sync.Mutex
	closed bool
}

// emit 把事件帧排进发送队列，连接已关闭则丢弃
func (c *Client) emit(ev wsEvent) {
	raw, err := json.Marshal(ev)
	if err != nil {
		log.Println("Failed to marshal event:", err)
		return
	}
	c.emitRaw(raw)
}

func (c *Client) emitRaw(raw []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- raw:
	default:
		log.Println("Send buffer full, dropping frame for session:", c.SessionID)
	}
}

// Close 关闭连接并结束写循环，可重复调用
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.Send)
	c.mu.Unlock()

	if c.Conn != nil {
		c.Conn.Close()
	}
}

// WriteMessages 写循环，连接上所有写操作都走这里
func (c *Client) WriteMessages() {
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// ChatGateway 实时消息网关：管理连接的在线注册、每事件鉴权、
// 消息落库和在线投递
type ChatGateway struct {
	presence *PresenceRegistry
	chats    *ChatService

	mu       sync.RWMutex
	sessions map[string]*Client // 会话ID -> 连接句柄
}

func NewChatGateway(presence *PresenceRegistry, chats *ChatService) *ChatGateway {
	return &ChatGateway{
		presence: presence,
		chats:    chats,
		sessions: make(map[string]*Client),
	}
}

// HandleWebSocket 升级连接并启动收发循环
func (g *ChatGateway) HandleWebSocket(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	authorization := ctx.GetHeader("Authorization")
	if authorization == "" {
		authorization = ctx.Query("authorization")
	}

	client := &Client{
		Conn:          conn,
		Send:          make(chan []byte, 16),
		SessionID:     uuid.New().String(),
		Authorization: authorization,
		LastPing:      time.Now(),
	}

	g.addSession(client)
	go client.WriteMessages()

	g.registerAccount(client)

	go g.heartbeat(client)
	go g.readMessages(client)
}

// registerAccount 连接阶段：校验握手凭证并注册在线状态。
// 失败只回 authError，连接保留，由客户端决定重试还是断开
func (g *ChatGateway) registerAccount(client *Client) {
	user, authErr := middlewares.DecodedToken(client.Authorization)
	if authErr != nil {
		client.emit(wsEvent{Event: eventAuthError, Message: authErr.Message, StatusCode: authErr.StatusCode})
		return
	}
	client.UserID = user.ID
	g.presence.Register(user.ID, client.SessionID)
	log.Printf("Client connected: user %d session %s", user.ID, client.SessionID)
}

// readMessages 读循环，本连接的事件按到达顺序依次处理
func (g *ChatGateway) readMessages(client *Client) {
	defer g.disconnect(client)
	for {
		_, raw, err := client.Conn.ReadMessage()
		if err != nil {
			break
		}
		if string(raw) == "pong" {
			client.mu.Lock()
			client.LastPing = time.Now()
			client.mu.Unlock()
			continue
		}

		var ev wsEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Println("Invalid message format:", string(raw))
			continue
		}

		switch ev.Event {
		case eventSendMessage:
			g.sendMessage(client, ev.Message, ev.DestID)
		default:
			log.Println("Unknown event:", ev.Event)
		}
	}
}

// sendMessage 处理一次发送：先重新鉴权（凭证可能在连接期间失效），
// 再落库、回执发送方，最后按在线状态投递给接收方
func (g *ChatGateway) sendMessage(client *Client, body string, destID uint) {
	user, authErr := middlewares.DecodedToken(client.Authorization)
	if authErr != nil {
		client.emit(wsEvent{Event: eventAuthError, Message: authErr.Message, StatusCode: authErr.StatusCode})
		return
	}

	chat, err := g.chats.AppendMessage(user.ID, destID, body)
	if err != nil {
		log.Println("Failed to append message:", err)
		client.emit(wsEvent{Event: eventErrorMessage, Message: "Failed to send message", StatusCode: http.StatusInternalServerError})
		return
	}

	// 回执不依赖接收方是否在线
	client.emit(wsEvent{Event: eventSuccessMessage, Message: body})

	sessionID, online := g.presence.Lookup(destID)
	if !online {
		// 消息已落库，接收方上线后拉历史即可
		return
	}
	peer, ok := g.session(sessionID)
	if !ok {
		return
	}
	peer.emit(wsEvent{Event: eventReceiveMessage, Message: body, Chat: chat})
}

// disconnect 断开阶段。按源系统的行为，这里重新解析握手凭证来取回身份，
// 而不是用连接时绑定的 UserID：凭证在连接期间过期会导致注销被跳过，
// 在线记录残留到该用户下次重连被覆盖为止
func (g *ChatGateway) disconnect(client *Client) {
	g.removeSession(client)

	user, authErr := middlewares.DecodedToken(client.Authorization)
	if authErr != nil {
		// 连接多半已经不在了，通知只是尽力而为
		client.emit(wsEvent{Event: eventAuthError, Message: authErr.Message, StatusCode: authErr.StatusCode})
		log.Printf("Session closed without unregister: user %d session %s", client.UserID, client.SessionID)
	} else {
		g.presence.Unregister(user.ID, client.SessionID)
		log.Printf("Client disconnected: user %d session %s", user.ID, client.SessionID)
	}

	client.Close()
}

// heartbeat 周期发 ping，pong 超时就关连接，读循环随之退出并触发注销
func (g *ChatGateway) heartbeat(client *Client) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		client.mu.Lock()
		if client.closed {
			client.mu.Unlock()
			return
		}
		expired := time.Since(client.LastPing) > pongTimeout
		client.mu.Unlock()

		if expired {
			log.Println("Client timeout, closing connection:", client.SessionID)
			client.Conn.Close()
			return
		}
		client.emitRaw([]byte("ping"))
	}
}

func (g *ChatGateway) addSession(client *Client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessions[client.SessionID] = client
}

func (g *ChatGateway) removeSession(client *Client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sessions, client.SessionID)
}

func (g *ChatGateway) session(sessionID string) (*Client, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	client, ok := g.sessions[sessionID]
	return client, ok
}
