package trick

import (
	"github.com/briscohub/briscola-server/internal/game/card"
)

// PlayedCard 一墩中已出的一张牌，记录出牌玩家的座位索引
type PlayedCard struct {
	PlayerIndex int
	Card        card.Card
}

// Stronger 判断同花色下 a 是否强于 b
// 分值高者胜；分值相同（只可能都是 0 分）时点数大者胜
func Stronger(a, b card.Card) bool {
	if a.Points() != b.Points() {
		return a.Points() > b.Points()
	}
	return a.Rank > b.Rank
}

// DominantSuit 返回这一墩的决定花色
// 有人出主牌则为主牌花色，否则为首出牌的花色
func DominantSuit(played []PlayedCard, trump card.Suit) card.Suit {
	for _, pc := range played {
		if pc.Card.Suit == trump {
			return trump
		}
	}
	return played[0].Card.Suit
}

// Resolve 结算一墩完整的牌，返回赢家座位索引和整墩总分
func Resolve(played []PlayedCard, trump card.Suit) (winnerIndex, points int) {
	dominant := DominantSuit(played, trump)

	winnerIndex = -1
	var best card.Card
	for _, pc := range played {
		points += pc.Card.Points()
		if pc.Card.Suit != dominant {
			continue
		}
		if winnerIndex == -1 || Stronger(pc.Card, best) {
			winnerIndex = pc.PlayerIndex
			best = pc.Card
		}
	}
	return winnerIndex, points
}

// BestPlayed 返回当前墩中最强的一张牌及其出牌者座位索引
// 用于 AI 判断是否值得争夺这一墩，墩为空时返回 false
func BestPlayed(played []PlayedCard, trump card.Suit) (PlayedCard, bool) {
	if len(played) == 0 {
		return PlayedCard{}, false
	}
	dominant := DominantSuit(played, trump)

	var best PlayedCard
	found := false
	for _, pc := range played {
		if pc.Card.Suit != dominant {
			continue
		}
		if !found || Stronger(pc.Card, best.Card) {
			best = pc
			found = true
		}
	}
	return best, found
}

// Score 返回一组已赢牌的总分
// 每次重新求和而不是增量累加，避免累计误差
func Score(won []card.Card) int {
	total := 0
	for _, c := range won {
		total += c.Points()
	}
	return total
}
