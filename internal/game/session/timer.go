package session

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/briscohub/briscola-server/internal/protocol"
)

// --- 回合调度 ---

// armTurnLocked 安排当前回合
// 非 playing 阶段或当前玩家已无可行动作时不做任何事；
// AI 回合立即同步行动（不设定时器），循环直到轮到人类或对局结束；
// 人类回合启动一次性定时器，超时后代打一张随机合法牌
// afterTrick 为 true 时在回合窗口上追加结算展示缓冲
func (s *Session) armTurnLocked(afterTrick bool) {
	for {
		if s.Phase != PhasePlaying || s.destroyed || len(s.Players) == 0 {
			return
		}

		cur := s.Players[s.CurrentPlayer]
		if s.Mode == ModeCards && len(cur.Hand) == 0 {
			return
		}
		if s.Mode == ModeDice && cur.RollsLeft == 0 {
			return
		}

		dur, ok := SpeedDuration(s.Speed)
		if !ok {
			dur = speedPresets["normal"]
		}
		s.TurnStartedAt = time.Now()
		s.TurnEndsAt = s.TurnStartedAt.Add(dur)
		if afterTrick {
			// 追加缓冲，让客户端有时间展示上一墩的结算
			s.TurnEndsAt = s.TurnEndsAt.Add(s.cfg.TrickDisplayBufferDuration())
		}

		if !cur.IsAI {
			s.timerGen++
			gen := s.timerGen
			s.turnTimer = time.AfterFunc(time.Until(s.TurnEndsAt), func() {
				s.handleTurnTimeout(gen)
			})
			return
		}

		// AI 回合：同步行动后继续循环
		outcome := s.aiActLocked(cur)
		if outcome == outcomeEnded {
			s.publishLocked(protocol.MsgGameEnded)
			s.persistLocked()
			return
		}
		s.publishLocked(protocol.MsgGameUpdated)
		s.persistLocked()
		afterTrick = outcome == outcomeTrickResolved
	}
}

// disarmTimerLocked 解除当前定时器
// generation 递增后，任何已触发但尚未执行的旧回调都会被判为过期
func (s *Session) disarmTimerLocked() {
	s.timerGen++
	if s.turnTimer != nil {
		s.turnTimer.Stop()
		s.turnTimer = nil
	}
}

// handleTurnTimeout 回合超时回调
// 回调与显式出牌可能并发，取锁后必须重新核对 generation 和阶段：
// 过期定时器一律不动作，不算错误
func (s *Session) handleTurnTimeout(gen uint64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("回合超时处理 panic (大厅 %s): %v", s.Code, r)
		}
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.timerGen || s.Phase != PhasePlaying || s.destroyed {
		return
	}

	p := s.Players[s.CurrentPlayer]
	log.Printf("⏰ 玩家 %s 回合超时，自动代打 (大厅 %s)", p.Name, s.Code)

	var outcome mutationOutcome
	if s.Mode == ModeDice {
		if p.RollsLeft == 0 {
			return
		}
		outcome = s.applyRollLocked(p)
	} else {
		if len(p.Hand) == 0 {
			return
		}
		// 均匀随机代打一张手牌
		c := p.Hand[rand.IntN(len(p.Hand))]
		outcome = s.applyPlayLocked(s.CurrentPlayer, c)
	}
	s.afterMutationLocked(outcome)
}
