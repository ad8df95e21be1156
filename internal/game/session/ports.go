package session

import (
	"context"

	"github.com/briscohub/briscola-server/internal/protocol"
	"github.com/briscohub/briscola-server/internal/storage"
)

// Notifier 把引擎产生的事件交给边界层分发
// 引擎本身不依赖任何具体传输，连接扇出由实现方负责
// 所有方法都可能在持有会话锁时被调用，实现必须不阻塞
type Notifier interface {
	// Send 给指定玩家发送一条消息，玩家不在线时应静默丢弃
	Send(playerID string, msg *protocol.Message)
	// Detach 解除指定玩家与会话的连接绑定（踢人时使用）
	Detach(playerID string)
}

// Store 持久化协作方
// 写入路径在内存状态提交后以 fire-and-forget 方式调用，
// 存储不可用时不得影响内存中的正确性；
// 读取路径只在进程启动恢复会话时使用
type Store interface {
	SaveGame(ctx context.Context, code string, data *storage.GameData) error
	LoadGame(ctx context.Context, code string) (*storage.GameData, error)
	DeleteGame(ctx context.Context, code string) error
	GetAllGameCodes(ctx context.Context) ([]string, error)
	AppendChatMessage(ctx context.Context, code string, msg *storage.ChatMessageData) error
	LoadChatMessages(ctx context.Context, code string) ([]storage.ChatMessageData, error)
}
