package server

import (
	"math/rand/v2"
)

// 昵称词库
var (
	adjectives = []string{
		"勇敢的", "聪明的", "快乐的", "神秘的", "酷炫的",
		"优雅的", "机智的", "潇洒的", "沉稳的", "活泼的",
		"闪亮的", "迷人的", "淡定的", "呆萌的", "高冷的",
	}

	nouns = []string{
		"小鸡", "熊猫", "狐狸", "海豚", "企鹅",
		"柯基", "柴犬", "龙猫", "仓鼠", "刺猬",
		"松鼠", "浣熊", "水獭", "羊驼", "考拉",
	}
)

// GenerateNickname 生成随机昵称
func GenerateNickname() string {
	adj := adjectives[rand.IntN(len(adjectives))]
	noun := nouns[rand.IntN(len(nouns))]
	return adj + noun
}
