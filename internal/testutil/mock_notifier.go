package testutil

import (
	"sync"

	"github.com/briscohub/briscola-server/internal/protocol"
)

// RecordingNotifier 记录引擎发出的所有消息，供测试断言
type RecordingNotifier struct {
	mu       sync.Mutex
	messages map[string][]*protocol.Message
	detached []string
}

// NewRecordingNotifier 创建记录型 Notifier
func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{
		messages: make(map[string][]*protocol.Message),
	}
}

// Send 实现 session.Notifier
func (n *RecordingNotifier) Send(playerID string, msg *protocol.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages[playerID] = append(n.messages[playerID], msg)
}

// Detach 实现 session.Notifier
func (n *RecordingNotifier) Detach(playerID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.detached = append(n.detached, playerID)
}

// MessagesFor 返回发送给指定玩家的全部消息
func (n *RecordingNotifier) MessagesFor(playerID string) []*protocol.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*protocol.Message, len(n.messages[playerID]))
	copy(out, n.messages[playerID])
	return out
}

// LastTypeFor 返回发送给指定玩家的最后一条消息类型
func (n *RecordingNotifier) LastTypeFor(playerID string) protocol.MessageType {
	n.mu.Lock()
	defer n.mu.Unlock()
	msgs := n.messages[playerID]
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1].Type
}

// Detached 返回被强制断开的玩家 ID 列表
func (n *RecordingNotifier) Detached() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.detached))
	copy(out, n.detached)
	return out
}
