package session

import (
	"context"
	"log"

	"github.com/briscohub/briscola-server/internal/game/card"
	"github.com/briscohub/briscola-server/internal/storage"
)

func cardData(c card.Card) storage.CardData {
	return storage.CardData{Suit: int(c.Suit), Rank: int(c.Rank)}
}

func cardFromData(d storage.CardData) card.Card {
	return card.Card{Suit: card.Suit(d.Suit), Rank: card.Rank(d.Rank)}
}

func cardsFromData(datas []storage.CardData) []card.Card {
	if len(datas) == 0 {
		return nil
	}
	out := make([]card.Card, len(datas))
	for i, d := range datas {
		out[i] = cardFromData(d)
	}
	return out
}

func cardDatas(cards []card.Card) []storage.CardData {
	if len(cards) == 0 {
		return nil
	}
	out := make([]storage.CardData, len(cards))
	for i, c := range cards {
		out[i] = cardData(c)
	}
	return out
}

// toGameDataLocked 把会话转换为可持久化的快照
func (s *Session) toGameDataLocked() *storage.GameData {
	data := &storage.GameData{
		ID:            s.ID,
		Code:          s.Code,
		Mode:          string(s.Mode),
		Phase:         s.Phase.String(),
		MaxPlayers:    s.MaxPlayers,
		Speed:         s.Speed,
		Round:         s.Round,
		CurrentPlayer: s.CurrentPlayer,
		Deck:          cardDatas(s.Deck),
		CreatedAt:     s.CreatedAt.Unix(),
	}

	if s.HasTrump {
		tc := cardData(s.TrumpCard)
		data.TrumpCard = &tc
	}

	data.Players = make([]storage.PlayerData, len(s.Players))
	for i, p := range s.Players {
		data.Players[i] = storage.PlayerData{
			ID:        p.ID,
			Name:      p.Name,
			Seat:      p.Seat,
			IsHost:    p.IsHost,
			IsAI:      p.IsAI,
			Score:     p.Score,
			Hand:      cardDatas(p.Hand),
			WonCards:  cardDatas(p.WonCards),
			RollsLeft: p.RollsLeft,
		}
	}

	for _, e := range s.Trick {
		data.Trick = append(data.Trick, storage.PlayedCardData{
			PlayerID: e.PlayerID,
			Card:     cardData(e.Card),
		})
	}

	return data
}

// persistLocked 内存状态提交后的 fire-and-forget 持久化
// 存储失败只记录日志，绝不回滚或阻塞内存状态
func (s *Session) persistLocked() {
	data := s.toGameDataLocked()
	code := s.Code
	go func() {
		if err := s.store.SaveGame(context.Background(), code, data); err != nil {
			log.Printf("保存游戏数据失败 (%s): %v", code, err)
		}
	}()
}
