package session

import (
	"context"
	"log"
	"time"

	"github.com/briscohub/briscola-server/internal/apperrors"
	"github.com/briscohub/briscola-server/internal/protocol"
	"github.com/briscohub/briscola-server/internal/storage"
)

// Chat 把聊天消息追加到有界记录并广播给大厅内玩家
func (m *Manager) Chat(code, actorID, text string) error {
	s, err := m.resolve(code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return apperrors.ErrGameNotFound
	}
	p := s.playerByID(actorID)
	if p == nil {
		return apperrors.ErrNotInGame
	}
	if text == "" {
		return nil
	}

	msg := protocol.ChatMessage{
		SenderID:   p.ID,
		SenderName: p.Name,
		Text:       text,
		Time:       time.Now().Unix(),
	}

	s.Chat = append(s.Chat, msg)
	// 超出上限时淘汰最旧的
	if limit := m.cfg.ChatLogCap; len(s.Chat) > limit {
		s.Chat = s.Chat[len(s.Chat)-limit:]
	}

	s.broadcastLocked(protocol.MustNewMessage(protocol.MsgChat, msg))

	go func() {
		err := m.store.AppendChatMessage(context.Background(), code, &storage.ChatMessageData{
			SenderID:   msg.SenderID,
			SenderName: msg.SenderName,
			Text:       msg.Text,
			Time:       msg.Time,
		})
		if err != nil {
			log.Printf("保存聊天消息失败 (%s): %v", code, err)
		}
	}()

	return nil
}
