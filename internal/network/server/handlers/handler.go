package handlers

import (
	"errors"
	"log"

	"github.com/briscohub/briscola-server/internal/apperrors"
	"github.com/briscohub/briscola-server/internal/network/server/types"
	"github.com/briscohub/briscola-server/internal/protocol"
)

// Handler 消息处理器
type Handler struct {
	server types.ServerContext
}

// NewHandler 创建处理器
func NewHandler(s types.ServerContext) *Handler {
	return &Handler{server: s}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	switch msg.Type {
	// 连接操作
	case protocol.MsgPing:
		h.handlePing(client)

	// 大厅操作
	case protocol.MsgListLobbies:
		h.handleListLobbies(client)
	case protocol.MsgCreateLobby:
		h.handleCreateLobby(client, msg)
	case protocol.MsgJoinLobby:
		h.handleJoinLobby(client, msg)
	case protocol.MsgLeaveLobby:
		h.handleLeaveLobby(client)
	case protocol.MsgKickPlayer:
		h.handleKickPlayer(client, msg)
	case protocol.MsgAddBot:
		h.handleAddBot(client)
	case protocol.MsgChangeMaxPlayers:
		h.handleChangeMaxPlayers(client, msg)
	case protocol.MsgChangeSpeed:
		h.handleChangeSpeed(client, msg)

	// 游戏操作
	case protocol.MsgStartGame:
		h.handleStartGame(client)
	case protocol.MsgPlayCard:
		h.handlePlayCard(client, msg)
	case protocol.MsgRollDice:
		h.handleRollDice(client)
	case protocol.MsgRematch:
		h.handleRematch(client)

	// 聊天
	case protocol.MsgChat:
		h.handleChat(client, msg)

	default:
		log.Printf("⚠️  未知消息类型: '%s' (来自客户端: %s, ID: %s)", msg.Type, client.GetName(), client.GetID())
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
	}
}

// sendError 把引擎错误翻译成协议错误消息
func sendError(client types.ClientInterface, err error) {
	var cooldownErr *apperrors.KickCooldownError
	if errors.As(err, &cooldownErr) {
		client.SendMessage(protocol.NewCooldownErrorMessage(cooldownErr.RemainingMs))
		return
	}

	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(protocol.NewErrorMessageWithText(gameErr.Code, gameErr.Message))
		return
	}

	client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}
