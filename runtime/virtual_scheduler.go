package runtime

import (
	"container/heap"
	"sync"
	"time"
)

// VirtualScheduler is a Scheduler driven by virtual time.
// Nothing runs until Advance is called; due tasks then run on the caller's
// goroutine, ordered by due time and, for equal times, by scheduling order.
type VirtualScheduler struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	queue taskQueue
}

func NewVirtualScheduler(start time.Time) *VirtualScheduler {
	return &VirtualScheduler{now: start}
}

func (v *VirtualScheduler) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

func (v *VirtualScheduler) Schedule(delay time.Duration, task func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if delay < 0 {
		delay = 0
	}
	v.seq++
	heap.Push(&v.queue, &scheduledTask{due: v.now.Add(delay), seq: v.seq, run: task})
}

// Advance moves virtual time forward by d, running every task that falls due
// on the way, including tasks scheduled by those tasks. It returns the number
// of tasks run.
func (v *VirtualScheduler) Advance(d time.Duration) int {
	v.mu.Lock()
	target := v.now.Add(d)
	v.mu.Unlock()

	ran := 0
	for {
		v.mu.Lock()
		if len(v.queue) == 0 || v.queue[0].due.After(target) {
			v.now = target
			v.mu.Unlock()
			return ran
		}
		next := heap.Pop(&v.queue).(*scheduledTask)
		v.now = next.due
		v.mu.Unlock()

		next.run()
		ran++
	}
}

// Pending is the number of tasks not run yet.
func (v *VirtualScheduler) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.queue)
}

type scheduledTask struct {
	due time.Time
	seq uint64
	run func()
}

type taskQueue []*scheduledTask

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) { *q = append(*q, x.(*scheduledTask)) }

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
