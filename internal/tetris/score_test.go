package tetris

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAward(t *testing.T) {
	for _, level := range []int{1, 2, 7} {
		for n, base := range []int64{0, 40, 100, 300, 1200} {
			s := Score{Points: 5, Level: level}
			require.True(t, s.Award(n))
			assert.Equal(t, 5+base*int64(level), s.Points, "level %d rows %d", level, n)
			assert.Equal(t, n, s.Lines)
			assert.Equal(t, level, s.Level)
		}
	}
}

func TestScoreLevelUp(t *testing.T) {
	t.Run("every ten lines", func(t *testing.T) {
		s := NewScore()
		for i := 0; i < 3; i++ {
			require.True(t, s.Award(3))
		}
		assert.Equal(t, 1, s.Level)
		assert.Equal(t, 9, s.Lines)

		require.True(t, s.Award(2))
		assert.Equal(t, 2, s.Level)
		assert.Equal(t, 1, s.Lines)
		assert.Equal(t, int64(3*300+100), s.Points)
	})

	t.Run("several multiples at once", func(t *testing.T) {
		s := Score{Level: 1, Lines: 17}
		require.True(t, s.Award(4))
		assert.Equal(t, 3, s.Level)
		assert.Equal(t, 1, s.Lines)
	})
}

func TestScoreOverflow(t *testing.T) {
	s := Score{Points: math.MaxInt64 - 10, Level: 1}
	assert.False(t, s.Award(1))
	assert.Equal(t, Score{Points: math.MaxInt64 - 10, Level: 1}, s)

	s = Score{Points: math.MaxInt64 - 40, Level: 1}
	assert.True(t, s.Award(1))
	assert.Equal(t, int64(math.MaxInt64), s.Points)

	s = Score{Points: math.MaxInt64 - 1, Level: 1}
	assert.True(t, s.AddDrop(1))
	assert.False(t, s.AddDrop(1))
}

func TestScoreTotal(t *testing.T) {
	assert.Equal(t, int64(0), NewScore().Total())
	assert.Equal(t, int64(360), Score{Points: 120, Level: 3}.Total())
	assert.Equal(t, int64(math.MaxInt64), Score{Points: math.MaxInt64 / 2, Level: 3}.Total())
}
