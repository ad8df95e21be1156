package dice

import "math/rand/v2"

// 骰子模式规则：每位玩家固定掷骰次数，每次掷两颗骰子，
// 点数累加为得分，所有人掷完后总分最高者获胜
const (
	RollsPerPlayer = 5 // 每位玩家的掷骰次数
	DicePerRoll    = 2 // 每次掷的骰子数
	Faces          = 6 // 每颗骰子的面数
)

// Roll 掷一次骰子，返回每颗骰子的点数
func Roll() []int {
	result := make([]int, DicePerRoll)
	for i := range result {
		result[i] = rand.IntN(Faces) + 1
	}
	return result
}

// Total 返回一次掷骰的总点数
func Total(roll []int) int {
	total := 0
	for _, v := range roll {
		total += v
	}
	return total
}
