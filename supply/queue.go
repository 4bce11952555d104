package supply

import (
	"fmt"

	"github.com/plus3/blockfall/tetromino"
)

// Source hands out shapes one at a time.
type Source interface {
	Draw() tetromino.Shape
}

// Queue is the lookahead: a fixed number of upcoming shapes. Advancing pops
// the front and appends one fresh draw, so its length never changes.
type Queue struct {
	src   Source
	items []tetromino.Shape
}

// NewQueue fills a queue of the given length from src.
func NewQueue(src Source, length int) *Queue {
	if length <= 0 {
		panic(fmt.Sprintf("supply: queue length must be positive, got %d", length))
	}
	q := &Queue{src: src, items: make([]tetromino.Shape, length)}
	for i := range q.items {
		q.items[i] = src.Draw()
	}
	return q
}

// Peek returns the next shape without consuming it.
func (q *Queue) Peek() tetromino.Shape {
	return q.items[0]
}

// Advance consumes the next shape and tops the queue up from the source.
func (q *Queue) Advance() tetromino.Shape {
	next := q.items[0]
	copy(q.items, q.items[1:])
	q.items[len(q.items)-1] = q.src.Draw()
	return next
}

// Items returns a copy of the upcoming shapes, next first.
func (q *Queue) Items() []tetromino.Shape {
	out := make([]tetromino.Shape, len(q.items))
	copy(out, q.items)
	return out
}

// Len is the fixed lookahead length.
func (q *Queue) Len() int { return len(q.items) }
