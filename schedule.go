package main

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

var (
	ErrInvalidInterval = errors.New("invalid work interval")
	ErrInvalidInput    = errors.New("invalid input")
)

// Revenue is a numeric type wide enough to hold the sum of a whole
// schedule. Narrow integers are left out because their totals would wrap.
type Revenue interface {
	~int | ~int64 | constraints.Float
}

// Schedule is the work/off decision for every day plus the total earned
// on the work days.
type Schedule[R Revenue] struct {
	Work   []bool `json:"work"`
	Profit R      `json:"profit"`
}

// OffDays returns the indexes of the days not worked, in order.
func (s Schedule[R]) OffDays() []int {
	var off []int
	for i, w := range s.Work {
		if !w {
			off = append(off, i)
		}
	}
	return off
}

// MaximizeProfits splits revenues into consecutive windows of k days and
// takes the cheapest day of each window off, working every other day.
// Ties go to the earliest day. A trailing window shorter than k follows
// the same rule. Empty input yields an empty schedule for any k >= 1.
func MaximizeProfits[R Revenue](revenues []R, k int) (Schedule[R], error) {
	n := len(revenues)
	if k < 1 || (n > 0 && k > n) {
		return Schedule[R]{}, fmt.Errorf("%w: k=%d for %d days", ErrInvalidInterval, k, n)
	}
	if err := checkFinite(revenues); err != nil {
		return Schedule[R]{}, err
	}

	s := Schedule[R]{Work: make([]bool, n)}
	for start := 0; start < n; start += k {
		end := min(start+k, n)
		off := start
		for i := start + 1; i < end; i++ {
			if revenues[i] < revenues[off] {
				off = i
			}
		}
		for i := start; i < end; i++ {
			if i != off {
				s.Work[i] = true
				s.Profit += revenues[i]
			}
		}
	}
	return s, nil
}

func checkFinite[R Revenue](revenues []R) error {
	for i, v := range revenues {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: day %d is %v", ErrInvalidInput, i, f)
		}
	}
	return nil
}
