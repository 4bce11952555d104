// Package supply produces the stream of upcoming shapes: a bag randomizer that
// hands out every kind equally often, and a fixed-length lookahead queue fed
// from it.
package supply

import (
	"fmt"
	"math/rand/v2"

	"github.com/plus3/blockfall/tetromino"
)

// Bag is a multiset of shape kinds. When it runs empty it is refilled with
// copies of every kind, so each aligned window of copies*KindCount draws
// contains every kind exactly copies times.
type Bag struct {
	copies int
	rng    *rand.Rand
	kinds  []tetromino.Kind
	draws  uint64
}

// NewBag creates a bag holding copies of every kind per refill. The seed makes
// the draw order reproducible.
func NewBag(copies int, seed uint64) *Bag {
	if copies <= 0 {
		panic(fmt.Sprintf("supply: bag copies must be positive, got %d", copies))
	}
	return &Bag{
		copies: copies,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		kinds:  make([]tetromino.Kind, 0, copies*tetromino.KindCount),
	}
}

func (b *Bag) refill() {
	for k := range tetromino.Kind(tetromino.KindCount) {
		for range b.copies {
			b.kinds = append(b.kinds, k)
		}
	}
}

// Draw removes a uniformly random kind from the bag and returns its shape.
func (b *Bag) Draw() tetromino.Shape {
	if len(b.kinds) == 0 {
		b.refill()
	}

	i := b.rng.IntN(len(b.kinds))
	k := b.kinds[i]
	last := len(b.kinds) - 1
	b.kinds[i] = b.kinds[last]
	b.kinds = b.kinds[:last]
	b.draws++

	return tetromino.Of(k)
}

// Remaining is the number of kinds left before the next refill.
func (b *Bag) Remaining() int { return len(b.kinds) }

// Window is the number of draws between two refills.
func (b *Bag) Window() int { return b.copies * tetromino.KindCount }

// Draws counts every draw made since construction.
func (b *Bag) Draws() uint64 { return b.draws }
