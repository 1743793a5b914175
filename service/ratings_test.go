package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Summarize(t *testing.T) {
	tests := []struct {
		name        string
		ratings     []int
		wantAverage float64
		wantTotal   int
	}{
		{name: "no_ratings_resets_to_zero", ratings: nil, wantAverage: 0, wantTotal: 0},
		{name: "single_rating", ratings: []int{4}, wantAverage: 4, wantTotal: 1},
		{name: "exact_mean", ratings: []int{4, 4}, wantAverage: 4, wantTotal: 2},
		{name: "rounds_to_one_decimal", ratings: []int{5, 4, 4}, wantAverage: 4.3, wantTotal: 3},
		{name: "rounds_half_up", ratings: []int{4, 3}, wantAverage: 3.5, wantTotal: 2},
		{name: "repeating_third", ratings: []int{1, 1, 2}, wantAverage: 1.3, wantTotal: 3},
		{name: "all_fives", ratings: []int{5, 5, 5, 5}, wantAverage: 5, wantTotal: 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			average, total := summarize(tc.ratings)
			assert.Equal(t, tc.wantAverage, average)
			assert.Equal(t, tc.wantTotal, total)
		})
	}
}

func Test_Round1(t *testing.T) {
	assert.Equal(t, 4.3, round1(4.25))
	assert.Equal(t, 4.2, round1(4.24))
	assert.Equal(t, 3.7, round1(11.0/3.0))
	assert.Equal(t, 0.0, round1(0))
}
