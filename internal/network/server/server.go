package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/briscohub/briscola-server/internal/config"
	"github.com/briscohub/briscola-server/internal/game/session"
	"github.com/briscohub/briscola-server/internal/network/server/handlers"
	"github.com/briscohub/briscola-server/internal/network/server/types"
	"github.com/briscohub/briscola-server/internal/protocol"
	"github.com/briscohub/briscola-server/internal/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源，生产环境需要限制
	},
}

// shutdownCheckInterval 优雅关闭时轮询进行中对局的间隔
const shutdownCheckInterval = 5 * time.Second

// Server WebSocket 服务器
// 同时实现 session.Notifier：引擎推送经由玩家 ID 到连接的绑定扇出
type Server struct {
	config  *config.Config
	redis   *redis.Client
	store   *storage.RedisStore
	manager *session.Manager
	handler *handlers.Handler

	clients   map[string]*Client // 连接 ID → 客户端
	players   map[string]*Client // 玩家 ID → 客户端（加入大厅后绑定）
	clientsMu sync.RWMutex

	// 维护模式
	maintenanceMode bool
	maintenanceMu   sync.RWMutex
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config) (*Server, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 测试 Redis 连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}

	s := &Server{
		config:  cfg,
		redis:   rdb,
		store:   storage.NewRedisStore(rdb, cfg.Game.ChatLogCap),
		clients: make(map[string]*Client),
		players: make(map[string]*Client),
	}

	// 会话管理器：服务器自身作为通知出口
	s.manager = session.NewManager(&cfg.Game, s.store, s)

	// 初始化消息处理器
	s.handler = handlers.NewHandler(s)

	return s, nil
}

// Start 启动服务器
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	http.HandleFunc("/ws", s.handleWebSocket)
	http.HandleFunc("/health", s.handleHealth)

	// 启动监控 goroutine
	go s.monitorStats()

	log.Printf("🚀 服务器启动在 ws://%s/ws (CPU核心数: %d)", addr, runtime.NumCPU())
	server := &http.Server{
		Addr:              addr,
		Handler:           nil,
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return server.ListenAndServe()
}

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	// 维护模式检查
	if s.IsMaintenanceMode() {
		http.Error(w, "Server is under maintenance, please try again later",
			http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	client := NewClient(s, conn)
	s.registerClient(client)

	// 发送连接成功消息（包含建议昵称）
	client.SendMessage(protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		ClientID:      client.ID,
		SuggestedName: client.Name,
	}))

	log.Printf("✅ 客户端 %s (%s) 已连接", client.Name, client.ID)

	// 启动客户端读写协程
	go client.ReadPump()
	go client.WritePump()
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// registerClient 注册客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

// unregisterClient 注销客户端
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[client.ID]; ok {
		delete(s.clients, client.ID)
		log.Printf("❌ 客户端 %s (%s) 已断开", client.Name, client.ID)
	}
	if pid := client.GetPlayerID(); pid != "" && s.players[pid] == client {
		delete(s.players, pid)
	}
}

// GetOnlineCount 获取在线人数
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// GetManager 获取会话管理器
func (s *Server) GetManager() *session.Manager { return s.manager }

// BindPlayer 把玩家 ID 绑定到连接，后续引擎推送按此路由
func (s *Server) BindPlayer(playerID string, client types.ClientInterface) {
	c, ok := client.(*Client)
	if !ok {
		return
	}
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.players[playerID] = c
}

// UnbindPlayer 解除玩家 ID 到连接的绑定
func (s *Server) UnbindPlayer(playerID string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.players, playerID)
}

// Send 实现 session.Notifier：按玩家 ID 投递一条消息
// 可能在会话锁内被调用，投递走带缓冲通道，绝不阻塞
func (s *Server) Send(playerID string, msg *protocol.Message) {
	s.clientsMu.RLock()
	c := s.players[playerID]
	s.clientsMu.RUnlock()

	if c != nil {
		c.SendMessage(msg)
	}
}

// Detach 实现 session.Notifier：玩家被移出会话后解除连接绑定
// 连接本身保留，客户端可以重新创建或加入大厅
func (s *Server) Detach(playerID string) {
	s.clientsMu.Lock()
	c := s.players[playerID]
	delete(s.players, playerID)
	s.clientsMu.Unlock()

	if c != nil {
		c.ClearLobby()
	}
}

// monitorStats 定期监控服务器状态
func (s *Server) monitorStats() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		log.Printf("📊 [监控] 在线: %d | 大厅: %d | 对局中: %d | Goroutines: %d | 内存: %.2f MB",
			s.GetOnlineCount(),
			s.manager.SessionCount(),
			s.manager.ActiveGamesCount(),
			runtime.NumGoroutine(),
			float64(m.Alloc)/1024/1024)
	}
}

// EnterMaintenanceMode 进入维护模式：拒绝新连接和大厅创建
func (s *Server) EnterMaintenanceMode() {
	s.maintenanceMu.Lock()
	s.maintenanceMode = true
	s.maintenanceMu.Unlock()

	log.Println("🔧 进入维护模式：停止新连接和大厅创建")
}

// IsMaintenanceMode 检查是否在维护模式
func (s *Server) IsMaintenanceMode() bool {
	s.maintenanceMu.RLock()
	defer s.maintenanceMu.RUnlock()
	return s.maintenanceMode
}

// GracefulShutdown 优雅关闭服务器：等待进行中的对局结束
func (s *Server) GracefulShutdown() {
	s.EnterMaintenanceMode()

	deadline := time.Now().Add(s.config.Game.ShutdownTimeoutDuration())
	ticker := time.NewTicker(shutdownCheckInterval)
	defer ticker.Stop()

	for time.Now().Before(deadline) {
		activeGames := s.manager.ActiveGamesCount()
		if activeGames == 0 {
			log.Println("✅ 所有对局已结束，关闭服务器")
			break
		}
		log.Printf("⏳ 等待 %d 个对局结束...", activeGames)
		<-ticker.C
	}

	if activeGames := s.manager.ActiveGamesCount(); activeGames > 0 {
		log.Printf("⚠️ 超时，仍有 %d 个对局进行中，强制关闭", activeGames)
	}

	s.Shutdown()
}

// Shutdown 关闭服务器
func (s *Server) Shutdown() {
	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	_ = s.redis.Close()

	log.Println("服务器已关闭")
}
