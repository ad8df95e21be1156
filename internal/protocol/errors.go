package protocol

// 错误码
const (
	ErrCodeUnknown           = 1000
	ErrCodeInvalidMsg        = 1001
	ErrCodeServerMaintenance = 1002

	ErrCodeGameNotFound = 2001
	ErrCodeGameFull     = 2002
	ErrCodeNotInGame    = 2003
	ErrCodeWrongPhase   = 2004
	ErrCodeNameTaken    = 2005
	ErrCodeKickCooldown = 2006
	ErrCodePlayerCount  = 2007

	ErrCodeGameNotStart = 3001
	ErrCodeNotYourTurn  = 3002
	ErrCodeCardNotHeld  = 3003
	ErrCodeNotHost      = 3004
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:           "未知错误",
	ErrCodeInvalidMsg:        "无效的消息格式",
	ErrCodeServerMaintenance: "服务器维护中",
	ErrCodeGameNotFound:      "大厅不存在",
	ErrCodeGameFull:          "大厅已满",
	ErrCodeNotInGame:         "您不在大厅中",
	ErrCodeWrongPhase:        "当前阶段无法执行该操作",
	ErrCodeNameTaken:         "昵称已被占用",
	ErrCodeKickCooldown:      "您刚被踢出，请稍后再试",
	ErrCodePlayerCount:       "玩家数量必须在 2-5 之间",
	ErrCodeGameNotStart:      "游戏尚未开始",
	ErrCodeNotYourTurn:       "还没轮到您",
	ErrCodeCardNotHeld:       "您没有这张牌",
	ErrCodeNotHost:           "只有房主可以执行该操作",
}
