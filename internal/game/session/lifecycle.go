package session

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/briscohub/briscola-server/internal/apperrors"
	"github.com/briscohub/briscola-server/internal/protocol"
)

// CreateLobby 创建大厅，创建者成为房主
func (m *Manager) CreateLobby(playerName string, mode Mode) (*Session, *Player, error) {
	if mode == "" {
		mode = ModeCards
	}
	if mode != ModeCards && mode != ModeDice {
		return nil, nil, &apperrors.GameError{Code: protocol.ErrCodeInvalidMsg, Message: "未知的游戏模式"}
	}

	host := &Player{
		ID:     uuid.New().String(),
		Name:   playerName,
		Seat:   0,
		IsHost: true,
	}

	m.mu.Lock()
	code := m.generateLobbyCode()
	s := &Session{
		ID:            uuid.New().String(),
		Code:          code,
		Mode:          mode,
		Phase:         PhaseLobby,
		MaxPlayers:    4,
		Speed:         m.cfg.DefaultSpeed,
		Players:       []*Player{host},
		CreatedAt:     time.Now(),
		kickCooldowns: make(map[string]time.Time),
		notifier:      m.notifier,
		store:         m.store,
		cfg:           m.cfg,
	}
	m.sessions[code] = s
	m.mu.Unlock()

	s.mu.Lock()
	s.persistLocked()
	s.mu.Unlock()

	log.Printf("🏠 大厅 %s 已创建，房主 %s (模式 %s)", code, playerName, mode)

	return s, host, nil
}

// JoinLobby 加入大厅或断线重连
// 若存在昵称为「加入昵称 + AI 标记」的 AI 玩家，则视为重连：
// 该玩家原地切回人类模式，保留 ID、手牌和得分
func (m *Manager) JoinLobby(code, playerName string) (*Session, *Player, bool, error) {
	s, err := m.resolve(code)
	if err != nil {
		return nil, nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return nil, nil, false, apperrors.ErrGameNotFound
	}

	// 被踢冷却检查
	if until, banned := s.kickCooldowns[playerName]; banned {
		remaining := time.Until(until)
		if remaining > 0 {
			return nil, nil, false, &apperrors.KickCooldownError{RemainingMs: remaining.Milliseconds()}
		}
		delete(s.kickCooldowns, playerName)
	}

	// 重连：找昵称匹配的 AI 玩家
	for _, p := range s.Players {
		if p.IsAI && p.Name == playerName+AINameSuffix {
			p.IsAI = false
			p.Name = playerName
			s.reassignHostLocked()
			s.broadcastExceptLocked(p.ID, protocol.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
				Player: s.playerInfoLocked(p),
			}))
			s.persistLocked()

			// 重启恢复的对局在首位玩家重连前处于停摆状态
			// （无定时器、无 AI 链推进），此时重启回合
			if s.Phase == PhasePlaying && s.turnTimer == nil {
				s.armTurnLocked(false)
			}

			log.Printf("📶 玩家 %s 重连到大厅 %s", playerName, code)
			return s, p, true, nil
		}
	}

	if s.nameTakenLocked(playerName) {
		return nil, nil, false, apperrors.ErrNameTaken
	}
	if s.Phase != PhaseLobby {
		return nil, nil, false, apperrors.ErrWrongPhase
	}
	if len(s.Players) >= s.MaxPlayers {
		return nil, nil, false, apperrors.ErrGameFull
	}

	p := &Player{
		ID:   uuid.New().String(),
		Name: playerName,
		Seat: len(s.Players),
	}
	s.Players = append(s.Players, p)

	s.broadcastExceptLocked(p.ID, protocol.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: s.playerInfoLocked(p),
	}))
	s.persistLocked()

	log.Printf("👤 玩家 %s 加入大厅 %s (座位 %d)", playerName, code, p.Seat)

	return s, p, false, nil
}

// Leave 玩家离开大厅或游戏
// 大厅阶段直接移除；游戏进行中原地转为 AI 模式，对局继续；
// 无论哪个阶段，没有人类玩家剩下时销毁会话
func (m *Manager) Leave(code, playerID string) {
	s, err := m.resolve(code)
	if err != nil {
		return
	}

	s.mu.Lock()

	p := s.playerByID(playerID)
	if p == nil || s.destroyed {
		s.mu.Unlock()
		return
	}

	name := p.Name

	if s.Phase == PhasePlaying {
		m.convertToAILocked(s, p)
	} else {
		s.removePlayerLocked(playerID)
		log.Printf("👋 玩家 %s 离开大厅 %s", name, code)
	}

	s.broadcastExceptLocked(playerID, protocol.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
		PlayerID:   playerID,
		PlayerName: name,
	}))

	if s.humanCount() == 0 {
		s.destroyed = true
		s.disarmTimerLocked()
		s.mu.Unlock()
		m.destroy(s)
		return
	}

	s.publishLocked(protocol.MsgGameUpdated)
	s.persistLocked()
	s.mu.Unlock()
}

// convertToAILocked 把玩家原地转为 AI 模式
// 若正轮到该玩家行动，立即重设回合让 AI 出牌，不等原定时器
func (m *Manager) convertToAILocked(s *Session, p *Player) {
	p.IsAI = true
	p.IsHost = false
	p.Name = p.Name + AINameSuffix
	s.reassignHostLocked()

	log.Printf("🤖 玩家 %s 断开，由 AI 接管 (大厅 %s)", p.Name, s.Code)

	if s.humanCount() == 0 {
		return
	}

	idx := s.playerIndexByID(p.ID)
	if s.Phase == PhasePlaying && idx == s.CurrentPlayer {
		s.disarmTimerLocked()
		s.armTurnLocked(false)
	}
}

// removePlayerLocked 把玩家从会话中移除并修正回合索引
func (s *Session) removePlayerLocked(playerID string) {
	idx := s.playerIndexByID(playerID)
	if idx == -1 {
		return
	}

	s.Players = append(s.Players[:idx], s.Players[idx+1:]...)
	s.resetSeatsLocked()
	s.reassignHostLocked()

	// 该玩家在当前墩中的牌随之移除
	for i, e := range s.Trick {
		if e.PlayerID == playerID {
			s.Trick = append(s.Trick[:i], s.Trick[i+1:]...)
			break
		}
	}

	// 修正回合索引：被移除者在当前玩家之前则前移一位
	if len(s.Players) > 0 {
		if idx < s.CurrentPlayer {
			s.CurrentPlayer--
		} else if s.CurrentPlayer >= len(s.Players) {
			s.CurrentPlayer = 0
		}
	}
}

// Kick 房主踢出玩家
// 人类目标会被记入按昵称跟踪的冷却名单，AI 目标不记录
func (m *Manager) Kick(code, actorID, targetID string) error {
	s, err := m.resolve(code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return apperrors.ErrGameNotFound
	}

	actor := s.playerByID(actorID)
	if actor == nil {
		return apperrors.ErrNotInGame
	}
	if !actor.IsHost {
		return apperrors.ErrNotHost
	}
	if actorID == targetID {
		return &apperrors.GameError{Code: protocol.ErrCodeUnknown, Message: "不能踢出自己"}
	}

	target := s.playerByID(targetID)
	if target == nil {
		return apperrors.ErrNotInGame
	}

	if !target.IsAI {
		s.kickCooldowns[target.Name] = time.Now().Add(m.cfg.KickCooldownDuration())
	}

	wasCurrent := s.Phase == PhasePlaying && s.playerIndexByID(targetID) == s.CurrentPlayer
	name := target.Name

	s.removePlayerLocked(targetID)

	log.Printf("🥾 玩家 %s 被踢出大厅 %s", name, code)

	s.broadcastLocked(protocol.MustNewMessage(protocol.MsgPlayerKicked, protocol.PlayerKickedPayload{
		PlayerID:   targetID,
		PlayerName: name,
	}))
	m.notifier.Detach(targetID)

	if s.humanCount() == 0 {
		s.destroyed = true
		s.disarmTimerLocked()
		go m.destroy(s)
		return nil
	}

	// 被踢者的牌离场后当前墩可能恰好补齐
	if s.Phase == PhasePlaying && s.trickCompleteLocked() {
		s.disarmTimerLocked()
		outcome := s.resolveTrickLocked()
		s.afterMutationLocked(outcome)
		return nil
	}

	s.publishLocked(protocol.MsgGameUpdated)
	s.persistLocked()

	if s.Phase == PhasePlaying && wasCurrent {
		s.disarmTimerLocked()
		s.armTurnLocked(false)
	}
	return nil
}

// AddBot 房主在大厅阶段添加一个 AI 玩家
func (m *Manager) AddBot(code, actorID string) error {
	s, err := m.resolve(code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return apperrors.ErrGameNotFound
	}

	actor := s.playerByID(actorID)
	if actor == nil {
		return apperrors.ErrNotInGame
	}
	if !actor.IsHost {
		return apperrors.ErrNotHost
	}
	if s.Phase != PhaseLobby {
		return apperrors.ErrWrongPhase
	}
	if len(s.Players) >= s.MaxPlayers {
		return apperrors.ErrGameFull
	}

	bot := &Player{
		ID:   uuid.New().String(),
		Name: s.nextBotNameLocked(),
		Seat: len(s.Players),
		IsAI: true,
	}
	s.Players = append(s.Players, bot)

	s.broadcastLocked(protocol.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: s.playerInfoLocked(bot),
	}))
	s.persistLocked()

	log.Printf("🤖 AI 玩家 %s 加入大厅 %s", bot.Name, code)
	return nil
}

// botNames AI 玩家昵称词库
var botNames = []string{"小鸡", "熊猫", "狐狸", "企鹅", "柯基", "水獭", "羊驼", "刺猬"}

// nextBotNameLocked 生成与现有昵称不冲突的 AI 昵称
func (s *Session) nextBotNameLocked() string {
	for _, n := range botNames {
		name := "AI·" + n
		if !s.nameTakenLocked(name) {
			return name
		}
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("AI·玩家%d", i)
		if !s.nameTakenLocked(name) {
			return name
		}
	}
}

// ChangeMaxPlayers 房主在大厅阶段修改人数上限
func (m *Manager) ChangeMaxPlayers(code, actorID string, n int) error {
	s, err := m.resolve(code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.hostLobbyGuardLocked(actorID); err != nil {
		return err
	}
	if n < MinPlayers || n > MaxPlayersLimit || n < len(s.Players) {
		return apperrors.ErrPlayerCount
	}

	s.MaxPlayers = n
	s.publishLocked(protocol.MsgGameUpdated)
	s.persistLocked()
	return nil
}

// ChangeSpeed 房主在大厅阶段修改回合速度档位
func (m *Manager) ChangeSpeed(code, actorID, speed string) error {
	s, err := m.resolve(code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.hostLobbyGuardLocked(actorID); err != nil {
		return err
	}
	if _, ok := SpeedDuration(speed); !ok {
		return &apperrors.GameError{Code: protocol.ErrCodeInvalidMsg, Message: "未知的速度档位"}
	}

	s.Speed = speed
	s.publishLocked(protocol.MsgGameUpdated)
	s.persistLocked()
	return nil
}

// hostLobbyGuardLocked 校验操作者是房主且会话处于大厅阶段
func (s *Session) hostLobbyGuardLocked(actorID string) error {
	if s.destroyed {
		return apperrors.ErrGameNotFound
	}
	actor := s.playerByID(actorID)
	if actor == nil {
		return apperrors.ErrNotInGame
	}
	if !actor.IsHost {
		return apperrors.ErrNotHost
	}
	if s.Phase != PhaseLobby {
		return apperrors.ErrWrongPhase
	}
	return nil
}
