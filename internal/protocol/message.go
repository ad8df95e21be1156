package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing MessageType = "ping" // 心跳 ping

	// 大厅操作
	MsgCreateLobby      MessageType = "create_lobby"       // 创建大厅
	MsgJoinLobby        MessageType = "join_lobby"         // 加入大厅（或断线重连）
	MsgLeaveLobby       MessageType = "leave_lobby"        // 离开大厅
	MsgKickPlayer       MessageType = "kick_player"        // 踢出玩家（仅房主）
	MsgAddBot           MessageType = "add_bot"            // 添加 AI 玩家（仅房主）
	MsgChangeMaxPlayers MessageType = "change_max_players" // 修改人数上限（仅房主）
	MsgChangeSpeed      MessageType = "change_speed"       // 修改回合速度（仅房主）
	MsgListLobbies      MessageType = "list_lobbies"       // 查询可加入的大厅列表

	// 游戏操作
	MsgStartGame MessageType = "start_game" // 开始游戏（仅房主）
	MsgPlayCard  MessageType = "play_card"  // 出牌
	MsgRollDice  MessageType = "roll_dice"  // 掷骰子（骰子模式）
	MsgRematch   MessageType = "rematch"    // 再来一局

	// 聊天
	MsgChat MessageType = "chat" // 聊天消息
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgPong      MessageType = "pong"      // 心跳 pong
	MsgConnected MessageType = "connected" // 连接建立，携带建议昵称

	// 大厅相关
	MsgLobbyCreated MessageType = "lobby_created" // 大厅创建成功
	MsgLobbyJoined  MessageType = "lobby_joined"  // 加入大厅成功
	MsgPlayerJoined MessageType = "player_joined" // 其他玩家加入
	MsgPlayerLeft   MessageType = "player_left"   // 玩家离开
	MsgPlayerKicked MessageType = "player_kicked" // 玩家被踢出
	MsgLobbyList    MessageType = "lobby_list"    // 可加入的大厅列表

	// 游戏流程
	MsgGameStarted MessageType = "game_started" // 游戏开始
	MsgGameUpdated MessageType = "game_updated" // 游戏状态更新
	MsgGameEnded   MessageType = "game_ended"   // 游戏结束

	// 错误
	MsgError MessageType = "error" // 错误消息
)

// Encode 将消息编码为 JSON 字节
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode 从 JSON 字节解码消息
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
