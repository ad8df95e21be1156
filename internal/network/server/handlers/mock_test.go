package handlers

import (
	"sync"

	"github.com/briscohub/briscola-server/internal/config"
	"github.com/briscohub/briscola-server/internal/game/session"
	"github.com/briscohub/briscola-server/internal/network/server/types"
	"github.com/briscohub/briscola-server/internal/protocol"
	"github.com/briscohub/briscola-server/internal/testutil"
)

// mockServer 测试用的服务器上下文，后端是真实的会话管理器
// 与生产服务器一样，自身充当引擎的通知出口
type mockServer struct {
	manager     *session.Manager
	maintenance bool

	mu    sync.Mutex
	bound map[string]types.ClientInterface
}

func newMockServer() *mockServer {
	cfg := config.Default()
	s := &mockServer{bound: make(map[string]types.ClientInterface)}
	s.manager = session.NewManager(&cfg.Game, testutil.NewMemoryStore(), s)
	return s
}

// Send 实现 session.Notifier
func (s *mockServer) Send(playerID string, msg *protocol.Message) {
	s.mu.Lock()
	c := s.bound[playerID]
	s.mu.Unlock()
	if c != nil {
		c.SendMessage(msg)
	}
}

// Detach 实现 session.Notifier
func (s *mockServer) Detach(playerID string) {
	s.mu.Lock()
	c := s.bound[playerID]
	delete(s.bound, playerID)
	s.mu.Unlock()
	if c != nil {
		c.ClearLobby()
	}
}

func (s *mockServer) GetManager() *session.Manager { return s.manager }
func (s *mockServer) IsMaintenanceMode() bool      { return s.maintenance }
func (s *mockServer) GetOnlineCount() int          { return 0 }

func (s *mockServer) BindPlayer(playerID string, client types.ClientInterface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bound[playerID] = client
}

func (s *mockServer) UnbindPlayer(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bound, playerID)
}

func (s *mockServer) isBound(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.bound[playerID]
	return ok
}

// mockClient 测试用客户端，记录收到的所有消息
type mockClient struct {
	id   string
	name string

	mu        sync.Mutex
	lobbyCode string
	playerID  string
	messages  []*protocol.Message
}

func newMockClient(id, name string) *mockClient {
	return &mockClient{id: id, name: name}
}

func (c *mockClient) GetID() string   { return c.id }
func (c *mockClient) GetName() string { return c.name }
func (c *mockClient) Close()          {}

func (c *mockClient) GetLobby() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lobbyCode
}

func (c *mockClient) GetPlayerID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playerID
}

func (c *mockClient) BindLobby(code, playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lobbyCode = code
	c.playerID = playerID
}

func (c *mockClient) ClearLobby() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lobbyCode = ""
	c.playerID = ""
}

func (c *mockClient) SendMessage(msg *protocol.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

// lastMessage 返回最近收到的一条消息
func (c *mockClient) lastMessage() *protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		return nil
	}
	return c.messages[len(c.messages)-1]
}
