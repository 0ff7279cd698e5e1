// Package reference issues booking references of the form
// YYYYMMDDHHmmss-NNN: a UTC timestamp to the second and an in-process
// counter. The counter widens past 999 instead of wrapping.
package reference

import (
	"fmt"
	"sync/atomic"
	"time"
)

const timestampLayout = "20060102150405"

type Generator struct {
	counter atomic.Uint64
	now     func() time.Time
}

type Option func(*Generator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next is safe for concurrent use. References are unique within the process
// only; the stores back this with a unique index.
func (g *Generator) Next() string {
	n := g.counter.Add(1)
	return fmt.Sprintf("%s-%03d", g.now().UTC().Format(timestampLayout), n)
}
