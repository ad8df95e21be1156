package ai

import (
	"github.com/briscohub/briscola-server/internal/game/card"
	"github.com/briscohub/briscola-server/internal/game/trick"
)

// highValueThreshold 墩内累计分值达到该值时，AI 会尽力争夺这一墩
const highValueThreshold = 10

// ChooseCard 为 AI 玩家选一张牌
// 确定性启发式：相同输入总是产生相同输出，便于测试复现
func ChooseCard(hand []card.Card, played []trick.PlayedCard, trump card.Suit) card.Card {
	if len(played) == 0 {
		return chooseLead(hand, trump)
	}
	return chooseFollow(hand, played, trump)
}

// chooseLead 首出：先出最便宜的非主牌，手里只剩主牌时出最便宜的主牌
func chooseLead(hand []card.Card, trump card.Suit) card.Card {
	if c, ok := cheapest(hand, func(c card.Card) bool { return c.Suit != trump }); ok {
		return c
	}
	c, _ := cheapest(hand, nil)
	return c
}

// chooseFollow 跟牌
func chooseFollow(hand []card.Card, played []trick.PlayedCard, trump card.Suit) card.Card {
	best, _ := trick.BestPlayed(played, trump)

	trickValue := 0
	for _, pc := range played {
		trickValue += pc.Card.Points()
	}

	holdsBeating := false
	for _, c := range hand {
		if beats(c, best.Card, trump) {
			holdsBeating = true
			break
		}
	}

	// 墩值高或手里有能赢的牌时，尽量赢下这一墩：
	// 先找最便宜的同花色赢牌，再找最便宜的主牌赢牌
	if trickValue >= highValueThreshold || holdsBeating {
		if c, ok := cheapest(hand, func(c card.Card) bool {
			return c.Suit == best.Card.Suit && beats(c, best.Card, trump)
		}); ok {
			return c
		}
		if c, ok := cheapest(hand, func(c card.Card) bool {
			return c.Suit == trump && beats(c, best.Card, trump)
		}); ok {
			return c
		}
	}

	// 不争夺：先出首出花色中最便宜的，否则丢全局最便宜的牌
	ledSuit := played[0].Card.Suit
	if c, ok := cheapest(hand, func(c card.Card) bool { return c.Suit == ledSuit }); ok {
		return c
	}
	c, _ := cheapest(hand, nil)
	return c
}

// beats 判断 c 能否赢过当前墩内最强的 best
// 主牌永远压过非主牌，其余按同花色强弱比较
func beats(c, best card.Card, trump card.Suit) bool {
	if best.Suit == trump {
		return c.Suit == trump && trick.Stronger(c, best)
	}
	if c.Suit == trump {
		return true
	}
	return c.Suit == best.Suit && trick.Stronger(c, best)
}

// cheapest 返回满足条件的最便宜的牌（分值低者优先，同分值点数小者优先）
// filter 为 nil 时在整手牌中选
func cheapest(hand []card.Card, filter func(card.Card) bool) (card.Card, bool) {
	var pick card.Card
	found := false
	for _, c := range hand {
		if filter != nil && !filter(c) {
			continue
		}
		if !found || cheaper(c, pick) {
			pick = c
			found = true
		}
	}
	return pick, found
}

func cheaper(a, b card.Card) bool {
	if a.Points() != b.Points() {
		return a.Points() < b.Points()
	}
	return a.Rank < b.Rank
}
