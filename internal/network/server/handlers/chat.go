package handlers

import (
	"strings"
	"unicode/utf8"

	"github.com/briscohub/briscola-server/internal/network/server/types"
	"github.com/briscohub/briscola-server/internal/protocol"
)

// chatMaxLength 单条聊天消息的最大长度（按字符计）
const chatMaxLength = 200

// handleChat 处理聊天消息
func (h *Handler) handleChat(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ChatPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	text := strings.TrimSpace(payload.Text)
	if text == "" {
		return
	}
	if utf8.RuneCountInString(text) > chatMaxLength {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeInvalidMsg, "消息过长"))
		return
	}

	if err := h.server.GetManager().Chat(client.GetLobby(), client.GetPlayerID(), text); err != nil {
		sendError(client, err)
	}
}
