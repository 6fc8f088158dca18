package hub

import (
	"container/heap"
	"context"
	"sync"

	"github.com/tailored-agentic-units/mcu/job"
)

type queueEntry struct {
	job      job.Job
	sequence uint64
}

// jobHeap orders entries by priority, then by insertion sequence, so jobs
// with equal priority come out FIFO.
type jobHeap []queueEntry

func (jh jobHeap) Len() int { return len(jh) }

func (jh jobHeap) Less(i, j int) bool {
	if jh[i].job.Equal(jh[j].job) {
		return jh[i].sequence < jh[j].sequence
	}
	return jh[i].job.Less(jh[j].job)
}

func (jh jobHeap) Swap(i, j int) { jh[i], jh[j] = jh[j], jh[i] }

func (jh *jobHeap) Push(x any) {
	*jh = append(*jh, x.(queueEntry))
}

func (jh *jobHeap) Pop() any {
	old := *jh
	n := len(old)
	item := old[n-1]
	old[n-1] = queueEntry{}
	*jh = old[0 : n-1]
	return item
}

// JobQueue is an unbounded, thread-safe priority queue of jobs. Any number
// of goroutines may Push; Pop blocks until a job is available.
//
// Like a work queue with task accounting, every pushed job counts as
// unfinished until a consumer calls Done for it, and Join waits for the
// count to reach zero.
type JobQueue struct {
	mu         sync.Mutex
	heap       jobHeap
	sequence   uint64
	ready      chan struct{}
	unfinished int
	idle       chan struct{}
}

func NewJobQueue() *JobQueue {
	q := &JobQueue{
		ready: make(chan struct{}, 1),
		idle:  make(chan struct{}),
	}
	close(q.idle)
	heap.Init(&q.heap)
	return q
}

func (q *JobQueue) Push(j job.Job) {
	q.mu.Lock()
	q.sequence++
	heap.Push(&q.heap, queueEntry{job: j, sequence: q.sequence})
	if q.unfinished == 0 {
		q.idle = make(chan struct{})
	}
	q.unfinished++
	q.mu.Unlock()

	q.signal()
}

// Pop removes and returns the most urgent job, waiting until one is pushed
// or ctx is done.
func (q *JobQueue) Pop(ctx context.Context) (job.Job, error) {
	for {
		if j, ok := q.TryPop(); ok {
			return j, nil
		}

		select {
		case <-q.ready:
		case <-ctx.Done():
			return job.Job{}, ctx.Err()
		}
	}
}

// TryPop removes and returns the most urgent job without waiting.
func (q *JobQueue) TryPop() (job.Job, bool) {
	q.mu.Lock()
	if q.heap.Len() == 0 {
		q.mu.Unlock()
		return job.Job{}, false
	}
	entry := heap.Pop(&q.heap).(queueEntry)
	remaining := q.heap.Len()
	q.mu.Unlock()

	// Pass the wake-up on so another waiting consumer sees what is left.
	if remaining > 0 {
		q.signal()
	}
	return entry.job, true
}

// Done marks one popped job as finished. It panics when called more times
// than jobs were pushed.
func (q *JobQueue) Done() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.unfinished <= 0 {
		panic("hub: JobQueue.Done called more times than Push")
	}
	q.unfinished--
	if q.unfinished == 0 {
		close(q.idle)
	}
}

// Join waits until every pushed job has been marked Done, or ctx is done.
func (q *JobQueue) Join(ctx context.Context) error {
	q.mu.Lock()
	idle := q.idle
	q.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len is the number of jobs waiting to be popped.
func (q *JobQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.heap.Len()
}

// Unfinished is the number of pushed jobs not yet marked Done.
func (q *JobQueue) Unfinished() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.unfinished
}

func (q *JobQueue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
