package timer

import "time"

// task is one scheduled callback.
type task struct {
	id     TaskID
	fn     func()
	period time.Duration
	repeat bool
	due    time.Time
	seq    uint64 // tie-breaker so equal due times fire in scheduling order
}

// taskHeap is a min-heap of tasks ordered by due time.
type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) {
	*h = append(*h, x.(*task))
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}
