package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoll(t *testing.T) {
	t.Parallel()

	for range 100 {
		roll := Roll()
		assert.Len(t, roll, DicePerRoll)
		for _, v := range roll {
			assert.GreaterOrEqual(t, v, 1)
			assert.LessOrEqual(t, v, Faces)
		}
		assert.Equal(t, roll[0]+roll[1], Total(roll))
	}
}
