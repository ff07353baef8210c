package main

import "fmt"

// MaxIntervalProfit returns the best total when the first and last days
// are worked and no two consecutive worked days are more than k days
// apart. The running maximum over the last k days is kept in a monotonic
// deque of day indexes, so the whole pass is linear.
func MaxIntervalProfit[R Revenue](profits []R, k int) (R, error) {
	if k < 1 {
		return 0, fmt.Errorf("%w: k=%d", ErrInvalidInterval, k)
	}
	if err := checkFinite(profits); err != nil {
		return 0, err
	}
	n := len(profits)
	if n == 0 {
		return 0, nil
	}

	best := make([]R, n)
	window := NewDeque[int](min(k, n))
	for i := range profits {
		for !window.IsEmpty() {
			if f, _ := window.Front(); f >= i-k {
				break
			}
			window.PopFront()
		}

		best[i] = profits[i]
		if f, err := window.Front(); err == nil {
			best[i] += best[f]
		}

		// Later days outlive earlier ones in the window, so an earlier day
		// that is no better can never be the maximum again.
		for !window.IsEmpty() {
			if b, _ := window.Back(); best[i] < best[b] {
				break
			}
			window.PopBack()
		}
		window.PushBack(i)
	}
	return best[n-1], nil
}
