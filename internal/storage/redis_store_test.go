package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client, 100)
	return store, mr
}

func TestRedisStore_SaveLoadDeleteGame(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	gameData := &GameData{
		ID:         "g1",
		Code:       "TEST12",
		Mode:       "cards",
		Phase:      "playing",
		MaxPlayers: 4,
		Speed:      "normal",
		Round:      3,
		Players: []PlayerData{
			{ID: "p1", Name: "Alice", Seat: 0, IsHost: true, Score: 21},
		},
		TrumpCard: &CardData{Suit: 0, Rank: 7},
		CreatedAt: time.Now().Unix(),
	}

	// Save
	err := store.SaveGame(ctx, gameData.Code, gameData)
	assert.NoError(t, err)

	// Load
	loaded, err := store.LoadGame(ctx, gameData.Code)
	assert.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, gameData.Code, loaded.Code)
	assert.Equal(t, gameData.Phase, loaded.Phase)
	assert.Equal(t, gameData.Players[0].Score, loaded.Players[0].Score)
	require.NotNil(t, loaded.TrumpCard)
	assert.Equal(t, 7, loaded.TrumpCard.Rank)

	// Delete
	err = store.DeleteGame(ctx, gameData.Code)
	assert.NoError(t, err)

	// Verify Delete
	loaded, err = store.LoadGame(ctx, gameData.Code)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_LoadGame_NotFound(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()

	loaded, err := store.LoadGame(context.Background(), "NOPE")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_GetAllGameCodes(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	for _, code := range []string{"AAA111", "BBB222"} {
		err := store.SaveGame(ctx, code, &GameData{Code: code})
		require.NoError(t, err)
	}

	codes, err := store.GetAllGameCodes(ctx)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"AAA111", "BBB222"}, codes)
}

func TestRedisStore_ChatAppendAndTrim(t *testing.T) {
	t.Parallel()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client, 5) // 低上限方便测试淘汰
	ctx := context.Background()

	for i := range 8 {
		err := store.AppendChatMessage(ctx, "ROOM01", &ChatMessageData{
			SenderID:   "p1",
			SenderName: "Alice",
			Text:       fmt.Sprintf("msg-%d", i),
			Time:       time.Now().Unix(),
		})
		require.NoError(t, err)
	}

	messages, err := store.LoadChatMessages(ctx, "ROOM01")
	assert.NoError(t, err)
	require.Len(t, messages, 5)

	// 最旧的被淘汰，保留 msg-3 .. msg-7
	assert.Equal(t, "msg-3", messages[0].Text)
	assert.Equal(t, "msg-7", messages[4].Text)
}
