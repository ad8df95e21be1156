package session

import (
	"context"
	"log"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/briscohub/briscola-server/internal/apperrors"
	"github.com/briscohub/briscola-server/internal/config"
	"github.com/briscohub/briscola-server/internal/protocol"
)

// newTimeoutClosedMessage 大厅超时关闭的通知
func newTimeoutClosedMessage() *protocol.Message {
	return protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "大厅等待超时已关闭")
}

const (
	lobbyCodeLength = 6            // 大厅码长度
	lobbyCodeChars  = "0123456789" // 大厅码字符集
)

// Manager 会话管理器，大厅码到会话的唯一权威映射
// map 由 RWMutex 保护，单个会话的串行化由会话自己的锁保证，
// 不同大厅码之间互不协调
type Manager struct {
	cfg      *config.GameConfig
	store    Store
	notifier Notifier

	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewManager 创建会话管理器
func NewManager(cfg *config.GameConfig, store Store, notifier Notifier) *Manager {
	m := &Manager{
		cfg:      cfg,
		store:    store,
		notifier: notifier,
		sessions: make(map[string]*Session),
	}

	// 重启后先从存储恢复进行中的对局，再启动大厅清理协程
	m.restore()
	go m.cleanupLoop()

	return m
}

// Get 按大厅码获取会话
func (m *Manager) Get(code string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[code]
}

// resolve 按大厅码获取会话，不存在时返回错误
func (m *Manager) resolve(code string) (*Session, error) {
	m.mu.RLock()
	s, exists := m.sessions[code]
	m.mu.RUnlock()
	if !exists {
		return nil, apperrors.ErrGameNotFound
	}
	return s, nil
}

// generateLobbyCode 生成唯一大厅码
// 调用方需持有 m.mu
func (m *Manager) generateLobbyCode() string {
	for {
		code := make([]byte, lobbyCodeLength)
		for i := range code {
			code[i] = lobbyCodeChars[rand.IntN(len(lobbyCodeChars))]
		}
		codeStr := string(code)
		if _, exists := m.sessions[codeStr]; !exists {
			return codeStr
		}
	}
}

// destroy 销毁会话：从映射移除并删除持久化数据
func (m *Manager) destroy(s *Session) {
	m.mu.Lock()
	delete(m.sessions, s.Code)
	m.mu.Unlock()

	go func() {
		if err := m.store.DeleteGame(context.Background(), s.Code); err != nil {
			log.Printf("删除游戏数据失败 (%s): %v", s.Code, err)
		}
	}()

	log.Printf("🏠 大厅 %s 已解散", s.Code)
}

// ActiveGamesCount 获取进行中的游戏数量
func (m *Manager) ActiveGamesCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, s := range m.sessions {
		s.mu.RLock()
		if s.Phase == PhasePlaying {
			count++
		}
		s.mu.RUnlock()
	}
	return count
}

// ListLobbies 返回首页可加入的大厅列表
// 只列出等待中的大厅，新建的排在前面
func (m *Manager) ListLobbies() []protocol.LobbySummary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type entry struct {
		summary   protocol.LobbySummary
		createdAt time.Time
	}
	var entries []entry
	for _, s := range m.sessions {
		s.mu.RLock()
		if s.Phase == PhaseLobby && !s.destroyed {
			hostName := ""
			for _, p := range s.Players {
				if p.IsHost {
					hostName = p.Name
					break
				}
			}
			entries = append(entries, entry{
				summary: protocol.LobbySummary{
					LobbyCode:   s.Code,
					Mode:        string(s.Mode),
					HostName:    hostName,
					PlayerCount: len(s.Players),
					MaxPlayers:  s.MaxPlayers,
					Speed:       s.Speed,
				},
				createdAt: s.CreatedAt,
			})
		}
		s.mu.RUnlock()
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].createdAt.After(entries[j].createdAt)
	})

	out := make([]protocol.LobbySummary, len(entries))
	for i, e := range entries {
		out[i] = e.summary
	}
	return out
}

// SessionCount 获取存活会话数量
func (m *Manager) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// cleanupLoop 定期清理长时间停留在大厅阶段的会话
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.cleanup()
	}
}

// cleanup 清理超时的会话
// 覆盖两类：长时间停留在大厅阶段的会话，以及恢复后始终
// 无人重连认领的全 AI 对局
func (m *Manager) cleanup() {
	m.mu.RLock()
	var stale []*Session
	now := time.Now()
	for _, s := range m.sessions {
		s.mu.RLock()
		if (s.Phase == PhaseLobby || s.humanCount() == 0) &&
			now.Sub(s.CreatedAt) > m.cfg.LobbyTimeoutDuration() {
			stale = append(stale, s)
		}
		s.mu.RUnlock()
	}
	m.mu.RUnlock()

	for _, s := range stale {
		s.mu.Lock()
		if s.destroyed {
			s.mu.Unlock()
			continue
		}
		s.destroyed = true
		for _, p := range s.Players {
			if !p.IsAI {
				m.notifier.Send(p.ID, newTimeoutClosedMessage())
				m.notifier.Detach(p.ID)
			}
		}
		s.mu.Unlock()

		m.destroy(s)
		log.Printf("🧹 大厅 %s 等待超时已清理", s.Code)
	}
}
