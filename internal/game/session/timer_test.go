package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briscohub/briscola-server/internal/game/card"
)

func TestTurnTimeout_AutoPlaysForHuman(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestManager(t)
	s, alice, _ := startedCardsGame(t, m)

	s.mu.RLock()
	gen := s.timerGen
	handBefore := len(alice.Hand)
	s.mu.RUnlock()

	// 直接触发回调，等价于定时器到期
	s.handleTurnTimeout(gen)

	s.mu.RLock()
	defer s.mu.RUnlock()

	assert.Len(t, alice.Hand, handBefore-1, "超时后应自动代打一张")
	assert.Len(t, s.Trick, 1)
	assert.Equal(t, 1, s.CurrentPlayer)
}

func TestTurnTimeout_StaleGenerationIgnored(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestManager(t)
	s, alice, _ := startedCardsGame(t, m)

	s.mu.RLock()
	stale := s.timerGen
	aliceCard := alice.Hand[0]
	s.mu.RUnlock()

	// 显式出牌先解除定时器并递增 generation
	require.NoError(t, m.PlayCard(s.Code, alice.ID, aliceCard))

	s.mu.RLock()
	trickBefore := len(s.Trick)
	curBefore := s.CurrentPlayer
	s.mu.RUnlock()

	// 迟到的旧回调必须不产生任何动作
	s.handleTurnTimeout(stale)

	s.mu.RLock()
	defer s.mu.RUnlock()

	assert.Len(t, s.Trick, trickBefore)
	assert.Equal(t, curBefore, s.CurrentPlayer)
}

func TestTurnTimeout_IgnoredAfterGameEnds(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestManager(t)
	s, alice, bob := startedCardsGame(t, m)

	rigTrick(s, alice, bob,
		[]card.Card{{Suit: card.Denari, Rank: 1}},
		[]card.Card{{Suit: card.Denari, Rank: 2}},
		nil,
		card.Card{Suit: card.Bastoni, Rank: 7},
	)

	s.mu.RLock()
	gen := s.timerGen
	s.mu.RUnlock()

	require.NoError(t, m.PlayCard(s.Code, alice.ID, card.Card{Suit: card.Denari, Rank: 1}))
	require.NoError(t, m.PlayCard(s.Code, bob.ID, card.Card{Suit: card.Denari, Rank: 2}))

	s.handleTurnTimeout(gen)

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.Equal(t, PhaseEnded, s.Phase)
	assert.Equal(t, alice.ID, s.Winner)
}

func TestLeave_CurrentPlayerHandsTurnToAI(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestManager(t)
	s, alice, bob := startedCardsGame(t, m)

	// 正轮到 Alice 时断开，AI 立即接管出牌，不等原定时器
	m.Leave(s.Code, alice.ID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	assert.True(t, alice.IsAI)
	assert.True(t, strings.HasSuffix(alice.Name, AINameSuffix))
	assert.False(t, alice.IsHost)
	assert.True(t, bob.IsHost, "房主移交给剩下的人类")

	assert.Len(t, s.Trick, 1, "AI 已替断线玩家出牌")
	assert.Equal(t, alice.ID, s.Trick[0].PlayerID)
	assert.Len(t, alice.Hand, HandSize-1)
	assert.Equal(t, s.playerIndexByID(bob.ID), s.CurrentPlayer)
	assert.Equal(t, PhasePlaying, s.Phase)
}

func TestLeave_NonCurrentPlayerKeepsTurnOrder(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestManager(t)
	s, alice, bob := startedCardsGame(t, m)

	// 未轮到 Bob，断开只转 AI，不触发行动
	m.Leave(s.Code, bob.ID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	assert.True(t, bob.IsAI)
	assert.Len(t, bob.Hand, HandSize)
	assert.Empty(t, s.Trick)
	assert.Equal(t, s.playerIndexByID(alice.ID), s.CurrentPlayer)
}

func TestAITurns_ChainUntilHuman(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestManager(t)
	s, alice, err := m.CreateLobby("Alice", ModeCards)
	require.NoError(t, err)
	require.NoError(t, m.AddBot(s.Code, alice.ID))
	require.NoError(t, m.AddBot(s.Code, alice.ID))
	require.NoError(t, m.StartGame(s.Code, alice.ID))

	s.mu.RLock()
	aliceCard := alice.Hand[0]
	s.mu.RUnlock()

	// Alice 出牌后两个 AI 同步补完整墩并结算
	require.NoError(t, m.PlayCard(s.Code, alice.ID, aliceCard))

	s.mu.RLock()
	defer s.mu.RUnlock()

	assert.Equal(t, 2, s.Round, "墩应已结算")
	assert.Len(t, s.LastTrick, 3)
	assert.NotEmpty(t, s.LastTrickWinner)

	// AI 链条总是停在人类回合：赢墩的 AI 会继续领出下一墩
	assert.Equal(t, alice.ID, s.Players[s.CurrentPlayer].ID)
	assert.False(t, s.TurnEndsAt.IsZero())
}
