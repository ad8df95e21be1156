package server

import (
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	// 模拟 Server
	server := &Server{}
	// 模拟 Conn (这里只能用 nil 替代，因为 websocket.Conn 很难 mock，
	// 真正的连接测试通常在集成测试中做，或者使用 httptest 启动真实 server)
	var conn *websocket.Conn

	client := NewClient(server, conn)

	assert.NotEmpty(t, client.ID)
	assert.NotEmpty(t, client.Name)
	assert.Equal(t, server, client.server)
	assert.NotNil(t, client.send)
}

func TestClient_BindClearLobby(t *testing.T) {
	t.Parallel()

	client := &Client{}

	client.BindLobby("123456", "player-1")
	assert.Equal(t, "123456", client.GetLobby())
	assert.Equal(t, "player-1", client.GetPlayerID())

	client.ClearLobby()
	assert.Empty(t, client.GetLobby())
	assert.Empty(t, client.GetPlayerID())
}

func TestClient_BindLobby_Concurrency(t *testing.T) {
	t.Parallel()

	client := &Client{}
	var wg sync.WaitGroup
	count := 100

	wg.Add(count)
	for range count {
		go func() {
			defer wg.Done()
			client.BindLobby("654321", "player-2")
			_ = client.GetLobby()
			_ = client.GetPlayerID()
		}()
	}
	wg.Wait()

	assert.Equal(t, "654321", client.GetLobby())
}

func TestClient_SendAfterClose(t *testing.T) {
	t.Parallel()

	client := &Client{send: make(chan []byte, 1)}
	client.Close()

	// 关闭后发送应被静默忽略，不 panic
	client.SendMessage(nil)
}
