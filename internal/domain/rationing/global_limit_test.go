package rationing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGlobalLimit(t *testing.T) {
	limit, err := NewGlobalLimit(1)
	require.NoError(t, err)
	assert.Equal(t, 1, limit.DailyLimit)

	for _, invalid := range []int{0, -5} {
		_, err := NewGlobalLimit(invalid)
		assert.Error(t, err)
	}
}

func TestGlobalLimit_CheckUsage(t *testing.T) {
	limit, err := NewGlobalLimit(3)
	require.NoError(t, err)

	assert.NoError(t, limit.CheckUsage(0))
	assert.NoError(t, limit.CheckUsage(3))

	err = limit.CheckUsage(4)
	assert.True(t, errors.Is(err, ErrGlobalLimitExceeded))
	assert.Equal(t, "Global limit exceeded.", err.Error())
}

func TestGlobalLimit_Remaining(t *testing.T) {
	limit, _ := NewGlobalLimit(3)
	assert.Equal(t, int64(3), limit.Remaining(0))
	assert.Equal(t, int64(1), limit.Remaining(2))
	assert.Equal(t, int64(0), limit.Remaining(7))
}
