package main

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaximizeProfitsTwoWindows(t *testing.T) {
	s, err := MaximizeProfits([]int{3, 1, 4, 1, 5, 9, 2, 6}, 4)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false, true, true, true, true, false, true}, s.Work)
	assert.Equal(t, 28, s.Profit)
	assert.Equal(t, []int{1, 6}, s.OffDays())
}

func TestMaximizeProfitsSingleDayWindows(t *testing.T) {
	s, err := MaximizeProfits([]int{5, 5, 5}, 1)
	require.NoError(t, err)

	assert.Equal(t, []bool{false, false, false}, s.Work)
	assert.Equal(t, 0, s.Profit)
}

func TestMaximizeProfitsEmpty(t *testing.T) {
	s, err := MaximizeProfits([]int{}, 1)
	require.NoError(t, err)
	assert.Empty(t, s.Work)
	assert.Equal(t, 0, s.Profit)

	fs, err := MaximizeProfits[float64](nil, 5)
	require.NoError(t, err)
	assert.Empty(t, fs.Work)
	assert.Equal(t, 0.0, fs.Profit)
}

func TestMaximizeProfitsWideIntegerTotal(t *testing.T) {
	s, err := MaximizeProfits([]int64{math.MaxInt32, math.MaxInt32, 0, math.MaxInt32}, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2*math.MaxInt32), s.Profit)
}

func TestMaximizeProfitsInvalidInterval(t *testing.T) {
	for _, k := range []int{0, -1, 4} {
		t.Run(fmt.Sprint(k), func(t *testing.T) {
			_, err := MaximizeProfits([]int{1, 2, 3}, k)
			assert.ErrorIs(t, err, ErrInvalidInterval)
		})
	}

	_, err := MaximizeProfits([]int{}, 0)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestMaximizeProfitsRejectsNonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := MaximizeProfits([]float64{1, bad, 3}, 2)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestMaximizeProfitsPartialFinalWindow(t *testing.T) {
	// windows [4 2 8] [7 3]
	s, err := MaximizeProfits([]int{4, 2, 8, 7, 3}, 3)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false, true, true, false}, s.Work)
	assert.Equal(t, 19, s.Profit)
}

func TestMaximizeProfitsTiesGoToEarliestDay(t *testing.T) {
	s, err := MaximizeProfits([]int{2, 7, 2, 2, 9, 2}, 3)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 3}, s.OffDays())
	assert.Equal(t, 20, s.Profit)
}

func TestMaximizeProfitsNegativeRevenues(t *testing.T) {
	s, err := MaximizeProfits([]float64{-1.5, 2, -4, 0.5}, 2)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2}, s.OffDays())
	assert.InDelta(t, 2.5, s.Profit, 1e-9)
}

func TestMaximizeProfitsDoesNotMutateInput(t *testing.T) {
	in := []int{9, 8, 7, 6}
	_, err := MaximizeProfits(in, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 8, 7, 6}, in)
}

func TestMaxIntervalProfit(t *testing.T) {
	tests := []struct {
		name    string
		profits []int
		k       int
		want    int
	}{
		{"empty", nil, 3, 0},
		{"single day", []int{5}, 4, 5},
		{"skip a loss", []int{1, -2, 3}, 2, 4},
		{"work every day", []int{1, -2, 3}, 1, 2},
		{"all losses", []int{-1, -1, -1, -1}, 3, -2},
		{"wide interval", []int{3, -5, -5, 4}, 3, 7},
		{"gap too wide", []int{3, -5, -5, 4}, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MaxIntervalProfit(tt.profits, tt.k)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaxIntervalProfitErrors(t *testing.T) {
	_, err := MaxIntervalProfit([]int{1, 2}, 0)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = MaxIntervalProfit([]float64{1, math.NaN()}, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func ExampleMaximizeProfits() {
	s, _ := MaximizeProfits([]int{3, 1, 4, 1, 5, 9, 2, 6}, 4)
	fmt.Println(s.Work, s.Profit)
	// Output:
	// [true false true true true true false true] 28
}

func BenchmarkMaximizeProfits(b *testing.B) {
	revenues := make([]float64, 1<<16)
	for i := range revenues {
		revenues[i] = float64(i % 97)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MaximizeProfits(revenues, 7)
	}
}
