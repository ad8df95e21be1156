package session

import (
	"context"
	"log"
	"time"

	"github.com/briscohub/briscola-server/internal/protocol"
	"github.com/briscohub/briscola-server/internal/storage"
)

// restoreTimeout 启动恢复扫描的总时限
const restoreTimeout = 10 * time.Second

// restore 进程启动时从存储恢复会话
// 重启后旧连接全部失效：进行中的对局恢复为全员 AI 托管，
// 回合定时器保持停摆，玩家用原昵称加入即重连并重启回合；
// 大厅和已结束阶段的会话无法继续，直接删除残留记录
func (m *Manager) restore() {
	ctx, cancel := context.WithTimeout(context.Background(), restoreTimeout)
	defer cancel()

	codes, err := m.store.GetAllGameCodes(ctx)
	if err != nil {
		log.Printf("恢复会话失败，跳过: %v", err)
		return
	}

	restored := 0
	for _, code := range codes {
		data, err := m.store.LoadGame(ctx, code)
		if err != nil {
			log.Printf("读取游戏数据失败 (%s): %v", code, err)
			continue
		}
		if data == nil {
			continue
		}
		if data.Phase != PhasePlaying.String() {
			if err := m.store.DeleteGame(ctx, code); err != nil {
				log.Printf("删除游戏数据失败 (%s): %v", code, err)
			}
			continue
		}

		s := m.sessionFromData(data)

		chat, err := m.store.LoadChatMessages(ctx, code)
		if err != nil {
			log.Printf("读取聊天记录失败 (%s): %v", code, err)
		}
		for _, c := range chat {
			s.Chat = append(s.Chat, protocol.ChatMessage{
				SenderID:   c.SenderID,
				SenderName: c.SenderName,
				Text:       c.Text,
				Time:       c.Time,
			})
		}

		m.mu.Lock()
		m.sessions[s.Code] = s
		m.mu.Unlock()
		restored++

		log.Printf("📦 大厅 %s 已恢复，等待玩家重连", s.Code)
	}

	if restored > 0 {
		log.Printf("📦 共恢复 %d 个进行中的对局", restored)
	}
}

// sessionFromData 从持久化快照重建会话
// 人类玩家先转为 AI 托管（追加重连标记），CreatedAt 重置为当前
// 时间作为重连等待的计时起点，超时无人认领由清理协程回收
func (m *Manager) sessionFromData(data *storage.GameData) *Session {
	s := &Session{
		ID:            data.ID,
		Code:          data.Code,
		Mode:          Mode(data.Mode),
		Phase:         PhasePlaying,
		MaxPlayers:    data.MaxPlayers,
		Speed:         data.Speed,
		Round:         data.Round,
		CurrentPlayer: data.CurrentPlayer,
		Deck:          cardsFromData(data.Deck),
		CreatedAt:     time.Now(),
		kickCooldowns: make(map[string]time.Time),
		notifier:      m.notifier,
		store:         m.store,
		cfg:           m.cfg,
	}

	if data.TrumpCard != nil {
		s.TrumpCard = cardFromData(*data.TrumpCard)
		s.HasTrump = true
	}

	for _, pd := range data.Players {
		p := &Player{
			ID:        pd.ID,
			Name:      pd.Name,
			Seat:      pd.Seat,
			IsAI:      pd.IsAI,
			Score:     pd.Score,
			Hand:      cardsFromData(pd.Hand),
			WonCards:  cardsFromData(pd.WonCards),
			RollsLeft: pd.RollsLeft,
		}
		if !p.IsAI {
			p.IsAI = true
			p.Name += AINameSuffix
		}
		s.Players = append(s.Players, p)
	}

	for _, e := range data.Trick {
		s.Trick = append(s.Trick, playedEntry{PlayerID: e.PlayerID, Card: cardFromData(e.Card)})
	}

	if s.CurrentPlayer < 0 || s.CurrentPlayer >= len(s.Players) {
		s.CurrentPlayer = 0
	}

	return s
}
