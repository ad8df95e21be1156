package session

import (
	"log"
	"time"

	"github.com/briscohub/briscola-server/internal/apperrors"
	"github.com/briscohub/briscola-server/internal/game/ai"
	"github.com/briscohub/briscola-server/internal/game/card"
	"github.com/briscohub/briscola-server/internal/game/dice"
	"github.com/briscohub/briscola-server/internal/game/trick"
	"github.com/briscohub/briscola-server/internal/protocol"
)

// mutationOutcome 一次行动后的会话走向
type mutationOutcome int

const (
	outcomeNextTurn      mutationOutcome = iota // 轮到下一位
	outcomeTrickResolved                        // 当前墩已结算
	outcomeEnded                                // 对局结束
)

// StartGame 房主开始游戏：建牌堆、洗牌、发牌并启动第一个回合
func (m *Manager) StartGame(code, actorID string) error {
	s, err := m.resolve(code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.hostLobbyGuardLocked(actorID); err != nil {
		return err
	}

	n := len(s.Players)
	if n < MinPlayers || n > MaxPlayersLimit {
		return apperrors.ErrPlayerCount
	}

	s.Phase = PhasePlaying
	s.Round = 1
	s.CurrentPlayer = 0
	s.Trick = nil
	s.LastTrick = nil
	s.LastTrickWinner = ""
	s.LastDice = nil
	s.Winner = ""

	switch s.Mode {
	case ModeDice:
		for _, p := range s.Players {
			p.RollsLeft = dice.RollsPerPlayer
		}
	default:
		s.Deck = card.NewDeck(n)
		s.Deck.Shuffle()
		s.TrumpCard, _ = s.Deck.TrumpCard()
		s.HasTrump = true

		// 发牌：每人 3 张，从牌堆头部抓取；
		// 尾部的主牌指示牌在最后一轮补牌时才被抓走
		for range HandSize {
			for _, p := range s.Players {
				c, _ := s.Deck.Draw()
				p.Hand = append(p.Hand, c)
			}
		}
	}

	log.Printf("🎮 大厅 %s 开始游戏 (%d 人, 模式 %s)", code, n, s.Mode)

	s.publishLocked(protocol.MsgGameStarted)
	s.persistLocked()
	s.armTurnLocked(false)
	return nil
}

// PlayCard 当前玩家出牌
func (m *Manager) PlayCard(code, actorID string, c card.Card) error {
	s, err := m.resolve(code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return apperrors.ErrGameNotFound
	}
	if s.Phase != PhasePlaying || s.Mode != ModeCards {
		return apperrors.ErrGameNotStart
	}
	idx := s.playerIndexByID(actorID)
	if idx == -1 {
		return apperrors.ErrNotInGame
	}
	if idx != s.CurrentPlayer {
		return apperrors.ErrNotYourTurn
	}
	if !card.Contains(s.Players[idx].Hand, c) {
		return apperrors.ErrCardNotHeld
	}

	// 显式出牌前必须先解除定时器，否则过期定时器可能重复代打
	s.disarmTimerLocked()

	outcome := s.applyPlayLocked(idx, c)
	s.afterMutationLocked(outcome)
	return nil
}

// RollDice 当前玩家掷骰子（骰子模式）
func (m *Manager) RollDice(code, actorID string) error {
	s, err := m.resolve(code)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return apperrors.ErrGameNotFound
	}
	if s.Phase != PhasePlaying || s.Mode != ModeDice {
		return apperrors.ErrGameNotStart
	}
	idx := s.playerIndexByID(actorID)
	if idx == -1 {
		return apperrors.ErrNotInGame
	}
	if idx != s.CurrentPlayer {
		return apperrors.ErrNotYourTurn
	}

	s.disarmTimerLocked()

	outcome := s.applyRollLocked(s.Players[idx])
	s.afterMutationLocked(outcome)
	return nil
}

// Rematch 房主把结束的对局重置回大厅，准备再来一局
func (m *Manager) Rematch(code, actorID string) error {
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
	if s.Phase != PhaseEnded {
		return apperrors.ErrWrongPhase
	}

	s.Phase = PhaseLobby
	s.Round = 0
	s.CurrentPlayer = 0
	s.Deck = nil
	s.TrumpCard = card.Card{}
	s.HasTrump = false
	s.Trick = nil
	s.LastTrick = nil
	s.LastTrickWinner = ""
	s.LastDice = nil
	s.Winner = ""
	s.CreatedAt = time.Now() // 重置大厅等待超时的计时起点
	for _, p := range s.Players {
		p.Hand = nil
		p.WonCards = nil
		p.Score = 0
		p.RollsLeft = 0
	}

	log.Printf("🔄 大厅 %s 重置，等待再来一局", code)

	s.publishLocked(protocol.MsgGameUpdated)
	s.persistLocked()
	return nil
}

// afterMutationLocked 行动落地后的统一收尾：广播、持久化、安排下一回合
func (s *Session) afterMutationLocked(outcome mutationOutcome) {
	if outcome == outcomeEnded {
		s.publishLocked(protocol.MsgGameEnded)
		s.persistLocked()
		return
	}
	s.publishLocked(protocol.MsgGameUpdated)
	s.persistLocked()
	s.armTurnLocked(outcome == outcomeTrickResolved)
}

// applyPlayLocked 把一张牌打入当前墩并推进会话
// 墩补齐时立即结算，否则轮到下一位
func (s *Session) applyPlayLocked(idx int, c card.Card) mutationOutcome {
	p := s.Players[idx]
	p.Hand, _ = card.Remove(p.Hand, c)
	s.Trick = append(s.Trick, playedEntry{PlayerID: p.ID, Card: c})

	if s.trickCompleteLocked() {
		return s.resolveTrickLocked()
	}

	s.CurrentPlayer = (idx + 1) % len(s.Players)
	return outcomeNextTurn
}

// trickCompleteLocked 判断当前墩是否已收齐每位在场玩家的牌
func (s *Session) trickCompleteLocked() bool {
	if s.Mode != ModeCards || len(s.Trick) == 0 {
		return false
	}
	for _, p := range s.Players {
		found := false
		for _, e := range s.Trick {
			if e.PlayerID == p.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// trickPlayedLocked 把当前墩转换为结算用的结构，按出牌顺序
// 已离场玩家的牌保留分值但不参与赢家判定
func (s *Session) trickPlayedLocked() []trick.PlayedCard {
	played := make([]trick.PlayedCard, 0, len(s.Trick))
	for _, e := range s.Trick {
		idx := s.playerIndexByID(e.PlayerID)
		if idx == -1 {
			continue
		}
		played = append(played, trick.PlayedCard{PlayerIndex: idx, Card: e.Card})
	}
	return played
}

// resolveTrickLocked 结算当前墩：判定赢家、收牌计分、补牌、检查终局
func (s *Session) resolveTrickLocked() mutationOutcome {
	played := s.trickPlayedLocked()
	winnerIdx, _ := trick.Resolve(played, s.TrumpCard.Suit)
	winner := s.Players[winnerIdx]

	// 赢家收走整墩的牌，得分每次从已赢牌重新求和，避免累计误差
	for _, e := range s.Trick {
		winner.WonCards = append(winner.WonCards, e.Card)
	}
	winner.Score = trick.Score(winner.WonCards)

	s.LastTrick = s.Trick
	s.Trick = nil
	s.LastTrickWinner = winner.ID

	// 补牌：赢家先抓，随后按座位顺序轮转
	// 这个顺序是公平性契约，决定牌堆见底时谁抓到最后一张
	n := len(s.Players)
	for off := range n {
		p := s.Players[(winnerIdx+off)%n]
		for len(p.Hand) < HandSize {
			c, ok := s.Deck.Draw()
			if !ok {
				break
			}
			p.Hand = append(p.Hand, c)
		}
	}

	s.Round++

	// 补牌后仍有人空手即终局
	for _, p := range s.Players {
		if len(p.Hand) == 0 {
			return s.endGameLocked()
		}
	}

	// 下一墩由本墩赢家先出
	s.CurrentPlayer = winnerIdx
	return outcomeTrickResolved
}

// applyRollLocked 骰子模式：掷骰计分并推进回合
func (s *Session) applyRollLocked(p *Player) mutationOutcome {
	roll := dice.Roll()
	p.Score += dice.Total(roll)
	p.RollsLeft--
	s.LastDice = roll

	allDone := true
	for _, q := range s.Players {
		if q.RollsLeft > 0 {
			allDone = false
			break
		}
	}
	if allDone {
		return s.endGameLocked()
	}

	// 轮转到下一位还有次数的玩家
	n := len(s.Players)
	cur := s.CurrentPlayer
	for i := 1; i <= n; i++ {
		next := (cur + i) % n
		if s.Players[next].RollsLeft > 0 {
			if next <= cur {
				s.Round++
			}
			s.CurrentPlayer = next
			break
		}
	}
	return outcomeNextTurn
}

// endGameLocked 终局：得分严格最高者获胜，同分时座位靠前者胜
func (s *Session) endGameLocked() mutationOutcome {
	s.Phase = PhaseEnded
	s.disarmTimerLocked()

	var winner *Player
	for _, p := range s.Players {
		if winner == nil || p.Score > winner.Score {
			winner = p
		}
	}
	if winner != nil {
		s.Winner = winner.ID
		log.Printf("🏁 大厅 %s 对局结束，获胜者 %s (%d 分)", s.Code, winner.Name, winner.Score)
	}
	return outcomeEnded
}

// aiActLocked AI 行动：纸牌模式按启发式选牌，骰子模式直接掷
// 任何不一致只记录日志并跳过，绝不让单个会话的故障影响进程
func (s *Session) aiActLocked(p *Player) mutationOutcome {
	if s.Mode == ModeDice {
		return s.applyRollLocked(p)
	}

	c := ai.ChooseCard(p.Hand, s.trickPlayedLocked(), s.TrumpCard.Suit)
	if !card.Contains(p.Hand, c) {
		log.Printf("AI 选牌异常：%s 不在 %s 的手牌中 (大厅 %s)，跳过该回合", c, p.Name, s.Code)
		s.CurrentPlayer = (s.CurrentPlayer + 1) % len(s.Players)
		return outcomeNextTurn
	}
	return s.applyPlayLocked(s.CurrentPlayer, c)
}
