package handlers

import (
	"strings"

	"github.com/briscohub/briscola-server/internal/game/session"
	"github.com/briscohub/briscola-server/internal/network/server/types"
	"github.com/briscohub/briscola-server/internal/protocol"
)

// leaveCurrentLobby 客户端已在大厅时先退出，避免一个连接占多个席位
func (h *Handler) leaveCurrentLobby(client types.ClientInterface) {
	code, playerID := client.GetLobby(), client.GetPlayerID()
	if code == "" || playerID == "" {
		return
	}
	h.server.GetManager().Leave(code, playerID)
	h.server.UnbindPlayer(playerID)
	client.ClearLobby()
}

// handleListLobbies 处理首页的大厅列表查询
func (h *Handler) handleListLobbies(client types.ClientInterface) {
	client.SendMessage(protocol.MustNewMessage(protocol.MsgLobbyList, protocol.LobbyListPayload{
		Lobbies: h.server.GetManager().ListLobbies(),
	}))
}

// handleCreateLobby 处理创建大厅
func (h *Handler) handleCreateLobby(client types.ClientInterface, msg *protocol.Message) {
	// 维护模式检查
	if h.server.IsMaintenanceMode() {
		client.SendMessage(protocol.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "服务器维护中，暂停创建大厅"))
		return
	}

	payload, err := protocol.ParsePayload[protocol.CreateLobbyPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	name := strings.TrimSpace(payload.PlayerName)
	if name == "" {
		name = client.GetName()
	}

	h.leaveCurrentLobby(client)

	s, player, err := h.server.GetManager().CreateLobby(name, session.Mode(payload.Mode))
	if err != nil {
		sendError(client, err)
		return
	}

	client.BindLobby(s.Code, player.ID)
	h.server.BindPlayer(player.ID, client)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgLobbyCreated, protocol.LobbyCreatedPayload{
		LobbyCode: s.Code,
		PlayerID:  player.ID,
		Game:      s.SnapshotFor(player.ID),
	}))
}

// handleJoinLobby 处理加入大厅（含断线重连）
func (h *Handler) handleJoinLobby(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinLobbyPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	name := strings.TrimSpace(payload.PlayerName)
	if name == "" {
		name = client.GetName()
	}

	h.leaveCurrentLobby(client)

	s, player, reconnect, err := h.server.GetManager().JoinLobby(payload.LobbyCode, name)
	if err != nil {
		sendError(client, err)
		return
	}

	client.BindLobby(s.Code, player.ID)
	h.server.BindPlayer(player.ID, client)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgLobbyJoined, protocol.LobbyJoinedPayload{
		LobbyCode: s.Code,
		PlayerID:  player.ID,
		Reconnect: reconnect,
		Game:      s.SnapshotFor(player.ID),
	}))
}

// handleLeaveLobby 处理离开大厅
func (h *Handler) handleLeaveLobby(client types.ClientInterface) {
	h.leaveCurrentLobby(client)
}

// handleKickPlayer 处理踢出玩家
func (h *Handler) handleKickPlayer(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.KickPlayerPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if err := h.server.GetManager().Kick(client.GetLobby(), client.GetPlayerID(), payload.PlayerID); err != nil {
		sendError(client, err)
	}
}

// handleAddBot 处理添加 AI 玩家
func (h *Handler) handleAddBot(client types.ClientInterface) {
	if err := h.server.GetManager().AddBot(client.GetLobby(), client.GetPlayerID()); err != nil {
		sendError(client, err)
	}
}

// handleChangeMaxPlayers 处理修改人数上限
func (h *Handler) handleChangeMaxPlayers(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ChangeMaxPlayersPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if err := h.server.GetManager().ChangeMaxPlayers(client.GetLobby(), client.GetPlayerID(), payload.MaxPlayers); err != nil {
		sendError(client, err)
	}
}

// handleChangeSpeed 处理修改回合速度
func (h *Handler) handleChangeSpeed(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ChangeSpeedPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if err := h.server.GetManager().ChangeSpeed(client.GetLobby(), client.GetPlayerID(), payload.Speed); err != nil {
		sendError(client, err)
	}
}
