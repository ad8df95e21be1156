package session

import (
	"github.com/briscohub/briscola-server/internal/game/card"
	"github.com/briscohub/briscola-server/internal/protocol"
)

// cardInfo 转换为传输结构
func cardInfo(c card.Card) protocol.CardInfo {
	return protocol.CardInfo{Suit: int(c.Suit), Rank: int(c.Rank)}
}

// CardFromInfo 从传输结构还原一张牌
func CardFromInfo(info protocol.CardInfo) card.Card {
	return card.Card{Suit: card.Suit(info.Suit), Rank: card.Rank(info.Rank)}
}

func cardInfos(cards []card.Card) []protocol.CardInfo {
	if len(cards) == 0 {
		return nil
	}
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = cardInfo(c)
	}
	return infos
}

func playedInfos(entries []playedEntry) []protocol.PlayedCardInfo {
	if len(entries) == 0 {
		return nil
	}
	infos := make([]protocol.PlayedCardInfo, len(entries))
	for i, e := range entries {
		infos[i] = protocol.PlayedCardInfo{PlayerID: e.PlayerID, Card: cardInfo(e.Card)}
	}
	return infos
}

// playerInfoLocked 构建玩家信息
func (s *Session) playerInfoLocked(p *Player) protocol.PlayerInfo {
	return protocol.PlayerInfo{
		ID:         p.ID,
		Name:       p.Name,
		Seat:       p.Seat,
		IsHost:     p.IsHost,
		IsAI:       p.IsAI,
		Score:      p.Score,
		CardsCount: len(p.Hand),
		WonCount:   len(p.WonCards),
		RollsLeft:  p.RollsLeft,
	}
}

// snapshotForLocked 按接收者视角构建完整快照，手牌只包含接收者自己的
func (s *Session) snapshotForLocked(viewerID string) *protocol.GameStateDTO {
	dto := &protocol.GameStateDTO{
		LobbyCode:  s.Code,
		Phase:      s.Phase.String(),
		Mode:       string(s.Mode),
		MaxPlayers: s.MaxPlayers,
		Speed:      s.Speed,
		Round:      s.Round,
		DeckCount:  len(s.Deck),
		Trick:      playedInfos(s.Trick),
		LastTrick:  playedInfos(s.LastTrick),
		LastDice:   s.LastDice,
		Chat:       s.Chat,
		Winner:     s.Winner,
	}

	if s.HasTrump {
		tc := cardInfo(s.TrumpCard)
		dto.TrumpCard = &tc
	}
	if s.LastTrickWinner != "" {
		dto.LastTrickWinner = s.LastTrickWinner
	}
	if s.Phase == PhasePlaying && len(s.Players) > 0 {
		dto.CurrentTurn = s.Players[s.CurrentPlayer].ID
		dto.TurnStartedAt = s.TurnStartedAt.UnixMilli()
		dto.TurnEndsAt = s.TurnEndsAt.UnixMilli()
	}

	dto.Players = make([]protocol.PlayerInfo, len(s.Players))
	for i, p := range s.Players {
		dto.Players[i] = s.playerInfoLocked(p)
		if p.ID == viewerID {
			dto.Hand = cardInfos(p.Hand)
		}
	}

	return dto
}

// SnapshotFor 按接收者视角构建快照（外部调用入口）
func (s *Session) SnapshotFor(viewerID string) *protocol.GameStateDTO {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotForLocked(viewerID)
}

// publishLocked 给每位在线人类玩家推送各自视角的状态快照
// 扇出由 Notifier 的实现负责，引擎不关心具体传输
func (s *Session) publishLocked(msgType protocol.MessageType) {
	for _, p := range s.Players {
		if p.IsAI {
			continue
		}
		s.notifier.Send(p.ID, protocol.MustNewMessage(msgType, protocol.GameUpdatePayload{
			Game: s.snapshotForLocked(p.ID),
		}))
	}
}

// broadcastLocked 给所有在线人类玩家发送同一条消息
func (s *Session) broadcastLocked(msg *protocol.Message) {
	for _, p := range s.Players {
		if !p.IsAI {
			s.notifier.Send(p.ID, msg)
		}
	}
}

// broadcastExceptLocked 给除指定玩家外的在线人类玩家发送消息
func (s *Session) broadcastExceptLocked(exceptID string, msg *protocol.Message) {
	for _, p := range s.Players {
		if !p.IsAI && p.ID != exceptID {
			s.notifier.Send(p.ID, msg)
		}
	}
}
