package stream

import "github.com/BaSui01/llmtrace/types"

// fifo is a growable ring buffer owned by the pump goroutine alone, so it
// needs no locking. It only grows while the observer lags and is reclaimed
// with the stream.
type fifo struct {
	buf       []types.RawItem
	head      int
	count     int
	highWater int
}

const fifoInitialCap = 16

func newFIFO() *fifo {
	return &fifo{buf: make([]types.RawItem, fifoInitialCap)}
}

func (q *fifo) Len() int { return q.count }

// HighWater returns the largest backlog seen over the queue's lifetime.
func (q *fifo) HighWater() int { return q.highWater }

func (q *fifo) Push(it types.RawItem) {
	if q.count == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.count)%len(q.buf)] = it
	q.count++
	if q.count > q.highWater {
		q.highWater = q.count
	}
}

func (q *fifo) Peek() types.RawItem {
	return q.buf[q.head]
}

func (q *fifo) Pop() types.RawItem {
	it := q.buf[q.head]
	q.buf[q.head] = types.RawItem{}
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return it
}

func (q *fifo) grow() {
	next := make([]types.RawItem, len(q.buf)*2)
	for i := 0; i < q.count; i++ {
		next[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = next
	q.head = 0
}
