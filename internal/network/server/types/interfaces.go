package types

import (
	"github.com/briscohub/briscola-server/internal/game/session"
	"github.com/briscohub/briscola-server/internal/protocol"
)

// ServerContext 服务器上下文接口 - 避免循环依赖
type ServerContext interface {
	GetManager() *session.Manager
	IsMaintenanceMode() bool
	GetOnlineCount() int

	// 玩家 ID 到连接的绑定，供引擎推送和断线处理使用
	BindPlayer(playerID string, client ClientInterface)
	UnbindPlayer(playerID string)
}

// ClientInterface 客户端接口
type ClientInterface interface {
	GetID() string
	GetName() string

	// 大厅绑定：加入大厅后记录大厅码和玩家 ID
	GetLobby() string
	GetPlayerID() string
	BindLobby(code, playerID string)
	ClearLobby()

	SendMessage(msg *protocol.Message)
	Close()
}
