package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistributeProportional(t *testing.T) {
	assert.Equal(t, []int{2, 8}, Distribute(10, []int{2, 8}))
	assert.Equal(t, []int{1, 6}, Distribute(7, []int{2, 8}))
	assert.Equal(t, []int{5, 5}, Distribute(10, []int{1, 1}))
}

func TestDistributeTiesGoToLowestIndex(t *testing.T) {
	assert.Equal(t, []int{1, 0}, Distribute(1, []int{1, 1}))
	assert.Equal(t, []int{1, 1, 0}, Distribute(2, []int{1, 1, 1}))
}

func TestDistributeZeroWeights(t *testing.T) {
	// All-zero weights split evenly, remainder handed out left to right.
	assert.Equal(t, []int{3, 2}, Distribute(5, []int{0, 0}))
	assert.Equal(t, []int{2, 2, 1}, Distribute(5, []int{0, 0, 0}))
}

func TestDistributeDegenerateInputs(t *testing.T) {
	assert.Nil(t, Distribute(10, nil))
	assert.Equal(t, []int{0, 0}, Distribute(0, []int{3, 4}))
	assert.Equal(t, []int{0, 0}, Distribute(-5, []int{3, 4}))
}

func TestDistributeConservation(t *testing.T) {
	cases := []struct {
		total   int
		weights []int
	}{
		{13, []int{1, 2, 3}},
		{100, []int{7, 0, 3, 11}},
		{1, []int{5, 5, 5}},
		{42, []int{1}},
		{9, []int{0, 4, 0, 4}},
	}
	for _, tc := range cases {
		shares := Distribute(tc.total, tc.weights)
		sum := 0
		for _, s := range shares {
			sum += s
		}
		assert.Equal(t, tc.total, sum, "total %d weights %v", tc.total, tc.weights)
		assert.Len(t, shares, len(tc.weights))
	}
}
