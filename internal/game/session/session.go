package session

import (
	"sync"
	"time"

	"github.com/briscohub/briscola-server/internal/config"
	"github.com/briscohub/briscola-server/internal/game/card"
	"github.com/briscohub/briscola-server/internal/protocol"
)

// Phase 会话阶段
type Phase int

const (
	PhaseLobby Phase = iota
	PhasePlaying
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhasePlaying:
		return "playing"
	case PhaseEnded:
		return "ended"
	}
	return "unknown"
}

// Mode 游戏模式
type Mode string

const (
	ModeCards Mode = "cards" // 纸牌（Briscola）
	ModeDice  Mode = "dice"  // 骰子简化玩法
)

const (
	// 玩家人数限制
	MinPlayers      = 2
	MaxPlayersLimit = 5

	// 初始与补牌后的手牌数
	HandSize = 3

	// AINameSuffix 断线转 AI 后昵称追加的标记，重连时按此匹配
	AINameSuffix = " (AI)"
)

// speedPresets 回合速度档位，出牌超时时长
var speedPresets = map[string]time.Duration{
	"blitz":   5 * time.Second,
	"fast":    15 * time.Second,
	"normal":  30 * time.Second,
	"slow":    45 * time.Second,
	"relaxed": 60 * time.Second,
}

// SpeedDuration 返回速度档位对应的超时时长
func SpeedDuration(name string) (time.Duration, bool) {
	d, ok := speedPresets[name]
	return d, ok
}

// Player 会话中的玩家
// 玩家断线时原地转为 AI 模式而不是移除，保留 ID、手牌和得分以便重连
type Player struct {
	ID   string
	Name string
	Seat int

	IsHost bool
	IsAI   bool

	Hand     []card.Card
	WonCards []card.Card
	Score    int

	RollsLeft int // 骰子模式剩余掷骰次数
}

// playedEntry 当前墩中的一张牌，按出牌顺序记录
type playedEntry struct {
	PlayerID string
	Card     card.Card
}

// Session 游戏会话
type Session struct {
	ID   string
	Code string // 大厅码

	Mode       Mode
	Phase      Phase
	MaxPlayers int
	Speed      string
	Round      int

	Players       []*Player // 按座位顺序，顺序即回合轮转顺序
	CurrentPlayer int       // 当前行动玩家索引

	Deck      card.Deck
	TrumpCard card.Card // 主牌指示牌（纸牌模式）
	HasTrump  bool

	Trick           []playedEntry // 当前墩
	LastTrick       []playedEntry // 最近结算的一墩，供客户端回放
	LastTrickWinner string        // 最近一墩赢家的玩家 ID
	LastDice        []int         // 骰子模式最近一次点数

	TurnStartedAt time.Time
	TurnEndsAt    time.Time

	Chat   []protocol.ChatMessage // 有界聊天记录
	Winner string                 // ended 阶段的获胜者 ID

	CreatedAt time.Time

	// 被踢冷却：昵称 → 冷却结束时间，按大厅跟踪
	kickCooldowns map[string]time.Time

	// 回合定时器。generation 在每次 arm/disarm 时递增，
	// 回调触发后必须核对 generation，过期定时器一律不动作
	turnTimer *time.Timer
	timerGen  uint64

	destroyed bool

	notifier Notifier
	store    Store
	cfg      *config.GameConfig

	mu sync.RWMutex
}

// playerByID 按 ID 查找玩家，未找到返回 nil
// 调用方需持有 s.mu
func (s *Session) playerByID(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// playerIndexByID 按 ID 查找玩家座位索引，未找到返回 -1
func (s *Session) playerIndexByID(id string) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// humanCount 返回在场人类玩家数量
func (s *Session) humanCount() int {
	count := 0
	for _, p := range s.Players {
		if !p.IsAI {
			count++
		}
	}
	return count
}

// reassignHostLocked 保证恰好一位人类玩家持有房主标记
// AI 玩家永远不保留房主身份；已有人类房主时不改变归属，
// 只在房主缺位时把标记交给座位最靠前的人类玩家
func (s *Session) reassignHostLocked() {
	var host *Player
	for _, p := range s.Players {
		if p.IsAI {
			p.IsHost = false
			continue
		}
		if host == nil && p.IsHost {
			host = p
			continue
		}
		p.IsHost = false
	}
	if host != nil {
		return
	}
	for _, p := range s.Players {
		if !p.IsAI {
			p.IsHost = true
			return
		}
	}
}

// resetSeatsLocked 移除玩家后重排座位号
func (s *Session) resetSeatsLocked() {
	for i, p := range s.Players {
		p.Seat = i
	}
}

// nameTakenLocked 判断昵称是否已被在场玩家占用
func (s *Session) nameTakenLocked(name string) bool {
	for _, p := range s.Players {
		if p.Name == name {
			return true
		}
	}
	return false
}
