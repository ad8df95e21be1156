package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/briscohub/briscola-server/internal/storage"
)

// MemoryStore 内存版持久化，实现 session.Store
// FailAll 置为 true 可模拟存储不可用
type MemoryStore struct {
	mu      sync.Mutex
	games   map[string]*storage.GameData
	chats   map[string][]storage.ChatMessageData
	FailAll bool
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]*storage.GameData),
		chats: make(map[string][]storage.ChatMessageData),
	}
}

var errStoreUnavailable = errors.New("存储不可用")

// SaveGame 实现 session.Store
func (m *MemoryStore) SaveGame(_ context.Context, code string, data *storage.GameData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return errStoreUnavailable
	}
	m.games[code] = data
	return nil
}

// LoadGame 实现 session.Store
func (m *MemoryStore) LoadGame(_ context.Context, code string) (*storage.GameData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return nil, errStoreUnavailable
	}
	return m.games[code], nil
}

// DeleteGame 实现 session.Store
func (m *MemoryStore) DeleteGame(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return errStoreUnavailable
	}
	delete(m.games, code)
	delete(m.chats, code)
	return nil
}

// GetAllGameCodes 实现 session.Store
func (m *MemoryStore) GetAllGameCodes(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return nil, errStoreUnavailable
	}
	codes := make([]string, 0, len(m.games))
	for code := range m.games {
		codes = append(codes, code)
	}
	return codes, nil
}

// AppendChatMessage 实现 session.Store
func (m *MemoryStore) AppendChatMessage(_ context.Context, code string, msg *storage.ChatMessageData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return errStoreUnavailable
	}
	m.chats[code] = append(m.chats[code], *msg)
	return nil
}

// LoadChatMessages 实现 session.Store
func (m *MemoryStore) LoadChatMessages(_ context.Context, code string) ([]storage.ChatMessageData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll {
		return nil, errStoreUnavailable
	}
	out := make([]storage.ChatMessageData, len(m.chats[code]))
	copy(out, m.chats[code])
	return out, nil
}

// Game 返回保存的游戏快照
func (m *MemoryStore) Game(code string) *storage.GameData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.games[code]
}
