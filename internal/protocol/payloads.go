package protocol

// CardInfo 牌的传输结构
type CardInfo struct {
	Suit int `json:"suit"`
	Rank int `json:"rank"`
}

// PlayedCardInfo 当前墩中已出的牌
type PlayedCardInfo struct {
	PlayerID string   `json:"player_id"`
	Card     CardInfo `json:"card"`
}

// PlayerInfo 玩家信息
type PlayerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Seat       int    `json:"seat"`
	IsHost     bool   `json:"is_host"`
	IsAI       bool   `json:"is_ai"`
	Score      int    `json:"score"`
	CardsCount int    `json:"cards_count"`
	WonCount   int    `json:"won_count"`
	RollsLeft  int    `json:"rolls_left,omitempty"` // 骰子模式剩余掷骰次数
}

// ChatMessage 聊天记录条目
type ChatMessage struct {
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Text       string `json:"text"`
	Time       int64  `json:"time"`
}

// GameStateDTO 完整游戏状态快照（按接收者视角构建，手牌只含自己的）
type GameStateDTO struct {
	LobbyCode  string `json:"lobby_code"`
	Phase      string `json:"phase"` // lobby / playing / ended
	Mode       string `json:"mode"`  // cards / dice
	MaxPlayers int    `json:"max_players"`
	Speed      string `json:"speed"`
	Round      int    `json:"round"`

	Players     []PlayerInfo `json:"players"`
	CurrentTurn string       `json:"current_turn,omitempty"`
	Hand        []CardInfo   `json:"hand,omitempty"`

	TrumpCard *CardInfo        `json:"trump_card,omitempty"`
	DeckCount int              `json:"deck_count"`
	Trick     []PlayedCardInfo `json:"trick,omitempty"`
	LastTrick []PlayedCardInfo `json:"last_trick,omitempty"`
	LastDice  []int            `json:"last_dice,omitempty"` // 骰子模式最近一次点数

	LastTrickWinner string `json:"last_trick_winner,omitempty"`
	TurnStartedAt   int64  `json:"turn_started_at,omitempty"` // Unix 毫秒
	TurnEndsAt      int64  `json:"turn_ends_at,omitempty"`    // Unix 毫秒

	Chat   []ChatMessage `json:"chat,omitempty"`
	Winner string        `json:"winner,omitempty"` // ended 阶段的获胜者 ID
}

// --- 客户端 → 服务端 ---

// CreateLobbyPayload 创建大厅
type CreateLobbyPayload struct {
	PlayerName string `json:"player_name"`
	Mode       string `json:"mode,omitempty"` // 默认 cards
}

// JoinLobbyPayload 加入大厅
type JoinLobbyPayload struct {
	LobbyCode  string `json:"lobby_code"`
	PlayerName string `json:"player_name"`
}

// PlayCardPayload 出牌
type PlayCardPayload struct {
	Card CardInfo `json:"card"`
}

// KickPlayerPayload 踢出玩家
type KickPlayerPayload struct {
	PlayerID string `json:"player_id"`
}

// ChangeMaxPlayersPayload 修改人数上限
type ChangeMaxPlayersPayload struct {
	MaxPlayers int `json:"max_players"`
}

// ChangeSpeedPayload 修改回合速度
type ChangeSpeedPayload struct {
	Speed string `json:"speed"`
}

// ChatPayload 聊天消息
type ChatPayload struct {
	Text string `json:"text"`
}

// --- 服务端 → 客户端 ---

// ConnectedPayload 连接建立
// SuggestedName 是服务端生成的随机昵称，客户端未提供昵称时使用
type ConnectedPayload struct {
	ClientID      string `json:"client_id"`
	SuggestedName string `json:"suggested_name"`
}

// LobbyCreatedPayload 大厅创建成功
type LobbyCreatedPayload struct {
	LobbyCode string        `json:"lobby_code"`
	PlayerID  string        `json:"player_id"`
	Game      *GameStateDTO `json:"game"`
}

// LobbyJoinedPayload 加入大厅成功
type LobbyJoinedPayload struct {
	LobbyCode string        `json:"lobby_code"`
	PlayerID  string        `json:"player_id"`
	Reconnect bool          `json:"reconnect"` // 是否为断线重连
	Game      *GameStateDTO `json:"game"`
}

// LobbySummary 首页大厅列表中的一项
type LobbySummary struct {
	LobbyCode   string `json:"lobby_code"`
	Mode        string `json:"mode"`
	HostName    string `json:"host_name"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	Speed       string `json:"speed"`
}

// LobbyListPayload 可加入的大厅列表
type LobbyListPayload struct {
	Lobbies []LobbySummary `json:"lobbies"`
}

// GameUpdatePayload 游戏状态推送（game_started / game_updated / game_ended 共用）
type GameUpdatePayload struct {
	Game *GameStateDTO `json:"game"`
}

// PlayerJoinedPayload 其他玩家加入
type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

// PlayerLeftPayload 玩家离开
type PlayerLeftPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PlayerKickedPayload 玩家被踢出
type PlayerKickedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// ErrorPayload 错误消息
// 被踢冷却错误会携带 RemainingMs，客户端据此渲染倒计时
type ErrorPayload struct {
	Code        int    `json:"code"`
	Message     string `json:"message"`
	RemainingMs int64  `json:"remaining_ms,omitempty"`
}
