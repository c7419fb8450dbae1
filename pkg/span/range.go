package span

import "iter"

// Range yields the integers between begin and end. When end > begin it counts
// up over [begin, end); otherwise it counts down over [end, begin), starting
// at begin-1. Range(0, 3) yields 0 1 2 and Range(3, 0) yields 2 1 0.
func Range(begin, end int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if end > begin {
			for i := begin; i < end; i++ {
				if !yield(i) {
					return
				}
			}
			return
		}
		for i := begin - 1; i >= end; i-- {
			if !yield(i) {
				return
			}
		}
	}
}
