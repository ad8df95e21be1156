package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	gameKeyPrefix = "game:"
	chatKeyPrefix = "chat:"

	// 游戏数据过期时间
	gameExpiration = 2 * time.Hour
)

// CardData 牌数据（用于 Redis 序列化）
type CardData struct {
	Suit int `json:"suit"`
	Rank int `json:"rank"`
}

// PlayerData 玩家数据
type PlayerData struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Seat      int        `json:"seat"`
	IsHost    bool       `json:"is_host"`
	IsAI      bool       `json:"is_ai"`
	Score     int        `json:"score"`
	Hand      []CardData `json:"hand,omitempty"`
	WonCards  []CardData `json:"won_cards,omitempty"`
	RollsLeft int        `json:"rolls_left,omitempty"`
}

// PlayedCardData 当前墩中的一张牌
type PlayedCardData struct {
	PlayerID string   `json:"player_id"`
	Card     CardData `json:"card"`
}

// GameData 游戏数据（用于 Redis 序列化）
type GameData struct {
	ID            string           `json:"id"`
	Code          string           `json:"code"`
	Mode          string           `json:"mode"`
	Phase         string           `json:"phase"`
	MaxPlayers    int              `json:"max_players"`
	Speed         string           `json:"speed"`
	Round         int              `json:"round"`
	CurrentPlayer int              `json:"current_player"`
	Players       []PlayerData     `json:"players"`
	Deck          []CardData       `json:"deck,omitempty"`
	TrumpCard     *CardData        `json:"trump_card,omitempty"`
	Trick         []PlayedCardData `json:"trick,omitempty"`
	CreatedAt     int64            `json:"created_at"`
}

// ChatMessageData 聊天消息数据
type ChatMessageData struct {
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Text       string `json:"text"`
	Time       int64  `json:"time"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client  *redis.Client
	chatCap int64
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client, chatCap int) *RedisStore {
	if chatCap <= 0 {
		chatCap = 100
	}
	return &RedisStore{client: client, chatCap: int64(chatCap)}
}

// --- 游戏存储 ---

// SaveGame 保存游戏到 Redis
func (rs *RedisStore) SaveGame(ctx context.Context, code string, data *GameData) error {
	if data == nil {
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化游戏数据失败: %w", err)
	}

	key := gameKeyPrefix + code
	return rs.client.Set(ctx, key, jsonData, gameExpiration).Err()
}

// LoadGame 从 Redis 加载游戏（不存在时返回 nil, nil）
func (rs *RedisStore) LoadGame(ctx context.Context, code string) (*GameData, error) {
	key := gameKeyPrefix + code
	data, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // 游戏不存在
		}
		return nil, err
	}

	var gameData GameData
	if err := json.Unmarshal(data, &gameData); err != nil {
		return nil, fmt.Errorf("反序列化游戏数据失败: %w", err)
	}

	return &gameData, nil
}

// DeleteGame 从 Redis 删除游戏及其聊天记录
func (rs *RedisStore) DeleteGame(ctx context.Context, code string) error {
	return rs.client.Del(ctx, gameKeyPrefix+code, chatKeyPrefix+code).Err()
}

// GetAllGameCodes 获取所有游戏的大厅码
func (rs *RedisStore) GetAllGameCodes(ctx context.Context) ([]string, error) {
	keys, err := rs.client.Keys(ctx, gameKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}

	codes := make([]string, len(keys))
	for i, key := range keys {
		codes[i] = key[len(gameKeyPrefix):]
	}
	return codes, nil
}

// --- 聊天存储 ---

// AppendChatMessage 追加聊天消息，超过上限时淘汰最旧的
func (rs *RedisStore) AppendChatMessage(ctx context.Context, code string, msg *ChatMessageData) error {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("序列化聊天消息失败: %w", err)
	}

	key := chatKeyPrefix + code
	pipe := rs.client.Pipeline()
	pipe.RPush(ctx, key, jsonData)
	pipe.LTrim(ctx, key, -rs.chatCap, -1)
	pipe.Expire(ctx, key, gameExpiration)
	_, err = pipe.Exec(ctx)
	return err
}

// LoadChatMessages 加载一个大厅的全部聊天记录
func (rs *RedisStore) LoadChatMessages(ctx context.Context, code string) ([]ChatMessageData, error) {
	key := chatKeyPrefix + code
	items, err := rs.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	messages := make([]ChatMessageData, 0, len(items))
	for _, item := range items {
		var msg ChatMessageData
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue // 跳过损坏的记录
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
