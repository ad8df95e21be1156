package handlers

import (
	"github.com/briscohub/briscola-server/internal/network/server/types"
	"github.com/briscohub/briscola-server/internal/protocol"
)

// handlePing 处理心跳
func (h *Handler) handlePing(client types.ClientInterface) {
	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, nil))
}
