package trick

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/briscohub/briscola-server/internal/game/card"
)

func TestResolve_TrumpBeatsHigherLead(t *testing.T) {
	t.Parallel()

	// 主牌花色 Denari。玩家 1 首出 Denari 1（11 分），
	// 玩家 2 出 Coppe 3（10 分但不是主牌）。决定花色为主牌，玩家 1 赢 21 分
	played := []PlayedCard{
		{PlayerIndex: 0, Card: card.Card{Suit: card.Denari, Rank: 1}},
		{PlayerIndex: 1, Card: card.Card{Suit: card.Coppe, Rank: 3}},
	}

	winner, points := Resolve(played, card.Denari)
	assert.Equal(t, 0, winner)
	assert.Equal(t, 21, points)
}

func TestResolve_LeadSuitWhenNoTrump(t *testing.T) {
	t.Parallel()

	// 主牌花色 Denari，但没人出主牌。玩家 1 首出 Coppe 3（10 分），
	// 玩家 2 跟 Coppe 1（11 分）。决定花色为首出花色，玩家 2 赢 21 分
	played := []PlayedCard{
		{PlayerIndex: 0, Card: card.Card{Suit: card.Coppe, Rank: 3}},
		{PlayerIndex: 1, Card: card.Card{Suit: card.Coppe, Rank: 1}},
	}

	winner, points := Resolve(played, card.Denari)
	assert.Equal(t, 1, winner)
	assert.Equal(t, 21, points)
}

func TestResolve_OffSuitNeverWins(t *testing.T) {
	t.Parallel()

	played := []PlayedCard{
		{PlayerIndex: 0, Card: card.Card{Suit: card.Spade, Rank: 2}},
		{PlayerIndex: 1, Card: card.Card{Suit: card.Coppe, Rank: 1}},
		{PlayerIndex: 2, Card: card.Card{Suit: card.Bastoni, Rank: 1}},
	}

	// 无主牌，决定花色为 Spade，只有首出者符合
	winner, points := Resolve(played, card.Denari)
	assert.Equal(t, 0, winner)
	assert.Equal(t, 22, points)
}

func TestResolve_ZeroValueTieBreakByRank(t *testing.T) {
	t.Parallel()

	// 两张零分同花色牌，点数大者胜
	played := []PlayedCard{
		{PlayerIndex: 0, Card: card.Card{Suit: card.Spade, Rank: 4}},
		{PlayerIndex: 1, Card: card.Card{Suit: card.Spade, Rank: 7}},
		{PlayerIndex: 2, Card: card.Card{Suit: card.Spade, Rank: 2}},
	}

	winner, points := Resolve(played, card.Denari)
	assert.Equal(t, 1, winner)
	assert.Equal(t, 0, points)
}

func TestResolve_Deterministic(t *testing.T) {
	t.Parallel()

	played := []PlayedCard{
		{PlayerIndex: 0, Card: card.Card{Suit: card.Coppe, Rank: 9}},
		{PlayerIndex: 1, Card: card.Card{Suit: card.Denari, Rank: 2}},
		{PlayerIndex: 2, Card: card.Card{Suit: card.Coppe, Rank: 10}},
	}

	w1, p1 := Resolve(played, card.Denari)
	for range 10 {
		w, p := Resolve(played, card.Denari)
		assert.Equal(t, w1, w)
		assert.Equal(t, p1, p)
	}
	// Denari 2 是唯一主牌，尽管 0 分也赢下这一墩
	assert.Equal(t, 1, w1)
	assert.Equal(t, 7, p1)
}

func TestBestPlayed(t *testing.T) {
	t.Parallel()

	_, ok := BestPlayed(nil, card.Denari)
	assert.False(t, ok)

	played := []PlayedCard{
		{PlayerIndex: 0, Card: card.Card{Suit: card.Coppe, Rank: 3}},
		{PlayerIndex: 1, Card: card.Card{Suit: card.Denari, Rank: 4}},
	}
	best, ok := BestPlayed(played, card.Denari)
	assert.True(t, ok)
	assert.Equal(t, 1, best.PlayerIndex)
}

func TestScore(t *testing.T) {
	t.Parallel()

	won := []card.Card{
		{Suit: card.Denari, Rank: 1},
		{Suit: card.Coppe, Rank: 3},
		{Suit: card.Spade, Rank: 5},
	}
	assert.Equal(t, 21, Score(won))
	assert.Equal(t, 0, Score(nil))
}
