package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/briscohub/briscola-server/internal/game/card"
	"github.com/briscohub/briscola-server/internal/game/trick"
)

func TestChooseCard_LeadPrefersCheapNonTrump(t *testing.T) {
	t.Parallel()

	hand := []card.Card{
		{Suit: card.Denari, Rank: 2}, // 主牌，0 分
		{Suit: card.Coppe, Rank: 1},  // 非主牌，11 分
		{Suit: card.Spade, Rank: 5},  // 非主牌，0 分
	}

	got := ChooseCard(hand, nil, card.Denari)
	assert.Equal(t, card.Card{Suit: card.Spade, Rank: 5}, got)
}

func TestChooseCard_LeadOnlyTrumps(t *testing.T) {
	t.Parallel()

	hand := []card.Card{
		{Suit: card.Denari, Rank: 1},
		{Suit: card.Denari, Rank: 4},
		{Suit: card.Denari, Rank: 9},
	}

	got := ChooseCard(hand, nil, card.Denari)
	assert.Equal(t, card.Card{Suit: card.Denari, Rank: 4}, got)
}

func TestChooseCard_FollowWinsValuableTrickWithSameSuit(t *testing.T) {
	t.Parallel()

	played := []trick.PlayedCard{
		{PlayerIndex: 0, Card: card.Card{Suit: card.Coppe, Rank: 3}}, // 10 分
	}
	hand := []card.Card{
		{Suit: card.Coppe, Rank: 1}, // 能赢首出的 3
		{Suit: card.Spade, Rank: 2},
	}

	got := ChooseCard(hand, played, card.Denari)
	assert.Equal(t, card.Card{Suit: card.Coppe, Rank: 1}, got)
}

func TestChooseCard_FollowTrumpsWhenNoSameSuitBeats(t *testing.T) {
	t.Parallel()

	played := []trick.PlayedCard{
		{PlayerIndex: 0, Card: card.Card{Suit: card.Coppe, Rank: 1}}, // 11 分
	}
	hand := []card.Card{
		{Suit: card.Coppe, Rank: 5},  // 同花色但赢不了
		{Suit: card.Denari, Rank: 2}, // 最便宜的主牌
		{Suit: card.Denari, Rank: 3},
	}

	got := ChooseCard(hand, played, card.Denari)
	assert.Equal(t, card.Card{Suit: card.Denari, Rank: 2}, got)
}

func TestChooseCard_FollowDiscardsLedSuitWhenCannotWin(t *testing.T) {
	t.Parallel()

	// 低价值墩且无法赢：跟首出花色中最便宜的牌
	played := []trick.PlayedCard{
		{PlayerIndex: 0, Card: card.Card{Suit: card.Spade, Rank: 7}}, // 0 分
	}
	hand := []card.Card{
		{Suit: card.Spade, Rank: 4},
		{Suit: card.Spade, Rank: 6},
	}

	got := ChooseCard(hand, played, card.Denari)
	assert.Equal(t, card.Card{Suit: card.Spade, Rank: 4}, got)
}

func TestChooseCard_FollowDiscardsGlobalCheapest(t *testing.T) {
	t.Parallel()

	// 没有首出花色、没有主牌、赢不了：丢全局最便宜的
	played := []trick.PlayedCard{
		{PlayerIndex: 0, Card: card.Card{Suit: card.Spade, Rank: 7}},
	}
	hand := []card.Card{
		{Suit: card.Coppe, Rank: 3},
		{Suit: card.Bastoni, Rank: 6},
	}

	got := ChooseCard(hand, played, card.Denari)
	assert.Equal(t, card.Card{Suit: card.Bastoni, Rank: 6}, got)
}

func TestChooseCard_Deterministic(t *testing.T) {
	t.Parallel()

	played := []trick.PlayedCard{
		{PlayerIndex: 0, Card: card.Card{Suit: card.Coppe, Rank: 9}},
		{PlayerIndex: 1, Card: card.Card{Suit: card.Coppe, Rank: 10}},
	}
	hand := []card.Card{
		{Suit: card.Coppe, Rank: 3},
		{Suit: card.Denari, Rank: 5},
		{Suit: card.Bastoni, Rank: 2},
	}

	first := ChooseCard(hand, played, card.Denari)
	for range 20 {
		assert.Equal(t, first, ChooseCard(hand, played, card.Denari))
	}
}
