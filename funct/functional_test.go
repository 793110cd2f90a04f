package funct

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSome(t *testing.T) {
	numbers := []int{1, 3, 5, 8}

	assert.True(t, Some(numbers, func(x int) bool { return x%2 == 0 }))
	assert.False(t, Some(numbers, func(x int) bool { return x > 10 }))
	assert.False(t, Some([]int{}, func(x int) bool { return true }))
}

func TestIndex(t *testing.T) {
	words := []string{"course", "section", "lesson"}

	assert.Equal(t, 1, Index(words, func(x string) bool { return x == "section" }))
	assert.Equal(t, -1, Index(words, func(x string) bool { return x == "quiz" }))
}

func TestMap(t *testing.T) {
	parsed, err := Map([]string{"1", "2", "3"}, func(x string) (int, error) {
		return strconv.Atoi(x)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, parsed)

	_, err = Map([]string{"1", "x"}, func(x string) (int, error) {
		return strconv.Atoi(x)
	})
	assert.Error(t, err)
}
