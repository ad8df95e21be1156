package apperrors

import (
	"fmt"

	"github.com/briscohub/briscola-server/internal/protocol"
)

// GameError 游戏错误（大厅和会话共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrGameNotFound = &GameError{Code: protocol.ErrCodeGameNotFound, Message: "大厅不存在"}
	ErrGameFull     = &GameError{Code: protocol.ErrCodeGameFull, Message: "大厅已满"}
	ErrNotInGame    = &GameError{Code: protocol.ErrCodeNotInGame, Message: "您不在大厅中"}
	ErrWrongPhase   = &GameError{Code: protocol.ErrCodeWrongPhase, Message: "当前阶段无法执行该操作"}
	ErrNameTaken    = &GameError{Code: protocol.ErrCodeNameTaken, Message: "昵称已被占用"}
	ErrPlayerCount  = &GameError{Code: protocol.ErrCodePlayerCount, Message: "玩家数量必须在 2-5 之间"}
	ErrGameNotStart = &GameError{Code: protocol.ErrCodeGameNotStart, Message: "游戏尚未开始"}
	ErrNotYourTurn  = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "还没轮到您"}
	ErrCardNotHeld  = &GameError{Code: protocol.ErrCodeCardNotHeld, Message: "您没有这张牌"}
	ErrNotHost      = &GameError{Code: protocol.ErrCodeNotHost, Message: "只有房主可以执行该操作"}
)

// KickCooldownError 被踢冷却错误，携带剩余等待时间供客户端渲染倒计时
type KickCooldownError struct {
	RemainingMs int64
}

func (e *KickCooldownError) Error() string {
	return fmt.Sprintf("您刚被踢出，请等待 %.0f 秒后再加入", float64(e.RemainingMs)/1000)
}

// Code 返回对应的协议错误码
func (e *KickCooldownError) Code() int {
	return protocol.ErrCodeKickCooldown
}
