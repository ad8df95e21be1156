package handlers

import (
	"github.com/briscohub/briscola-server/internal/game/session"
	"github.com/briscohub/briscola-server/internal/network/server/types"
	"github.com/briscohub/briscola-server/internal/protocol"
)

// handleStartGame 处理开始游戏
func (h *Handler) handleStartGame(client types.ClientInterface) {
	if err := h.server.GetManager().StartGame(client.GetLobby(), client.GetPlayerID()); err != nil {
		sendError(client, err)
	}
}

// handlePlayCard 处理出牌
func (h *Handler) handlePlayCard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PlayCardPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	c := session.CardFromInfo(payload.Card)
	if err := h.server.GetManager().PlayCard(client.GetLobby(), client.GetPlayerID(), c); err != nil {
		sendError(client, err)
	}
}

// handleRollDice 处理掷骰子
func (h *Handler) handleRollDice(client types.ClientInterface) {
	if err := h.server.GetManager().RollDice(client.GetLobby(), client.GetPlayerID()); err != nil {
		sendError(client, err)
	}
}

// handleRematch 处理再来一局
func (h *Handler) handleRematch(client types.ClientInterface) {
	if err := h.server.GetManager().Rematch(client.GetLobby(), client.GetPlayerID()); err != nil {
		sendError(client, err)
	}
}
