package card

import (
	"fmt"
	"math/rand/v2"
)

// Suit 定义花色（意大利牌四花色）
type Suit int

// Rank 定义点数
type Rank int

const (
	Denari  Suit = iota // 金币
	Coppe               // 圣杯
	Spade               // 宝剑
	Bastoni             // 权杖
)

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Denari:  "🪙",
	Coppe:   "🏆",
	Spade:   "⚔️",
	Bastoni: "🪵",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// Suits 所有花色，按固定顺序
var Suits = []Suit{Denari, Coppe, Spade, Bastoni}

const (
	MinRank Rank = 1
	MaxRank Rank = 10
)

// rankPoints 点数对应的分值，非零分值互不相同
var rankPoints = map[Rank]int{
	1:  11,
	3:  10,
	10: 4,
	9:  3,
	8:  2,
}

// Card 定义一张牌
type Card struct {
	Suit Suit
	Rank Rank
}

// Points 返回这张牌的分值
func (c Card) Points() int {
	return rankPoints[c.Rank]
}

func (c Card) String() string {
	return fmt.Sprintf("%s%d", c.Suit, c.Rank)
}

// Deck 定义一副牌
// 牌从头部抽取，尾部最后一张为明示的主牌指示牌，
// 它不从牌堆中移除，自然成为最后一轮补牌时被抽走的牌
type Deck []Card

// removedFor3Players 三人局开局前移除的那张 2
// 保留自观察到的行为：移除一张 2 使 39 张牌恰好整除
var removedFor3Players = Card{Suit: Coppe, Rank: 2}

// NewDeck 构建一副完整的牌（10 点 × 4 花色 = 40 张）
// 三人局时移除一张 2，保证 39 张可以整除
func NewDeck(playerCount int) Deck {
	deck := make(Deck, 0, 40)
	for _, s := range Suits {
		for r := MinRank; r <= MaxRank; r++ {
			c := Card{Suit: s, Rank: r}
			if playerCount == 3 && c == removedFor3Players {
				continue
			}
			deck = append(deck, c)
		}
	}
	return deck
}

// Shuffle 洗牌（Fisher–Yates）
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// TrumpCard 返回主牌指示牌（洗牌后的最后一张）
func (d Deck) TrumpCard() (Card, bool) {
	if len(d) == 0 {
		return Card{}, false
	}
	return d[len(d)-1], true
}

// Draw 从牌堆头部抽一张牌
func (d *Deck) Draw() (Card, bool) {
	if len(*d) == 0 {
		return Card{}, false
	}
	c := (*d)[0]
	*d = (*d)[1:]
	return c, true
}

// Remove 从手牌中移除指定的牌，返回移除后的手牌和是否找到
func Remove(hand []Card, c Card) ([]Card, bool) {
	for i, h := range hand {
		if h == c {
			return append(hand[:i], hand[i+1:]...), true
		}
	}
	return hand, false
}

// Contains 判断手牌中是否持有指定的牌
func Contains(hand []Card, c Card) bool {
	for _, h := range hand {
		if h == c {
			return true
		}
	}
	return false
}
