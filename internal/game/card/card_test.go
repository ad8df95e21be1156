package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeck_FullDeck(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 4, 5} {
		deck := NewDeck(n)
		assert.Len(t, deck, 40)

		// 每张牌唯一
		seen := make(map[Card]bool)
		for _, c := range deck {
			assert.False(t, seen[c], "duplicate card %v", c)
			seen[c] = true
		}
	}
}

func TestNewDeck_ThreePlayers(t *testing.T) {
	t.Parallel()

	deck := NewDeck(3)
	assert.Len(t, deck, 39)

	// 被移除的那张 2 不在牌堆中
	for _, c := range deck {
		assert.NotEqual(t, removedFor3Players, c)
	}
}

func TestCard_Points(t *testing.T) {
	t.Parallel()

	cases := map[Rank]int{
		1: 11, 3: 10, 10: 4, 9: 3, 8: 2,
		2: 0, 4: 0, 5: 0, 6: 0, 7: 0,
	}
	for rank, want := range cases {
		assert.Equal(t, want, Card{Suit: Denari, Rank: rank}.Points())
	}
}

func TestDeck_DrawAndTrump(t *testing.T) {
	t.Parallel()

	deck := NewDeck(4)
	deck.Shuffle()

	trump, ok := deck.TrumpCard()
	assert.True(t, ok)
	assert.Equal(t, deck[len(deck)-1], trump)

	// 从头部抽牌，主牌指示牌最后一张被抽走
	var last Card
	for len(deck) > 0 {
		c, ok := deck.Draw()
		assert.True(t, ok)
		last = c
	}
	assert.Equal(t, trump, last)

	_, ok = deck.Draw()
	assert.False(t, ok)
}

func TestRemoveAndContains(t *testing.T) {
	t.Parallel()

	hand := []Card{
		{Suit: Denari, Rank: 1},
		{Suit: Coppe, Rank: 3},
		{Suit: Spade, Rank: 7},
	}

	assert.True(t, Contains(hand, Card{Suit: Coppe, Rank: 3}))
	assert.False(t, Contains(hand, Card{Suit: Coppe, Rank: 4}))

	hand, found := Remove(hand, Card{Suit: Coppe, Rank: 3})
	assert.True(t, found)
	assert.Len(t, hand, 2)
	assert.False(t, Contains(hand, Card{Suit: Coppe, Rank: 3}))

	_, found = Remove(hand, Card{Suit: Bastoni, Rank: 9})
	assert.False(t, found)
}
