// Implements the WaitQueue, which holds processes waiting for a resource pool.
// Processes are enqueued when the pool is exhausted at request time.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue represents a FIFO queue of processes waiting to be granted a
// unit of a resource pool. Grant order equals arrival order at the pool.
type WaitQueue struct {
	queue []*Process // FIFO queue of processes
}

// Enqueue adds a process to the back of the wait queue.
func (wq *WaitQueue) Enqueue(p *Process) {
	if p == nil {
		panic("Enqueue: p must not be nil")
	}
	wq.queue = append(wq.queue, p)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of processes in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the process at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() *Process {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// Dequeue removes and returns the process at the front of the queue.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() *Process {
	if len(wq.queue) == 0 {
		return nil
	}
	head := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return head
}
