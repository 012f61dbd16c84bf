package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, Map([]int{1, 2, 3}, strconv.Itoa))
	assert.Equal(t, []string{}, Map([]int{}, strconv.Itoa))
}

func TestFilter(t *testing.T) {
	even := Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains([]string{"a", "b"}, "c"))
	assert.False(t, Contains([]string{}, "a"))
}

func TestUniquesPreservesFirstOccurrenceOrder(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, Uniques([]string{"b", "a", "b", "c", "a"}))
}

func TestSumBy(t *testing.T) {
	total := SumBy([]int{1, 2, 3}, func(n int) float64 { return float64(n) * 10 })
	assert.Equal(t, 60.0, total)
}
