package domain

import (
	"fmt"
	"math/rand"
	"time"
)

// IDGenerator produces human-readable order identifiers of the form
// PREFIX-YYYYMMDD-RRRR where RRRR is a random 4-digit suffix in [1000,9999].
// Date plus randomness is not collision-free; the store's uniqueness
// constraint is the real backstop and callers retry on collision.
type IDGenerator struct {
	prefix string
	now    func() time.Time
	intn   func(n int) int
}

// NewIDGenerator creates a generator with the given prefix. The clock and
// random source are injectable so generation is deterministic in tests; nil
// selects time.Now and math/rand.
func NewIDGenerator(prefix string, now func() time.Time, intn func(n int) int) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	if intn == nil {
		intn = rand.Intn
	}
	return &IDGenerator{
		prefix: prefix,
		now:    now,
		intn:   intn,
	}
}

// Next returns a fresh order identifier.
func (g *IDGenerator) Next() string {
	t := g.now()
	suffix := 1000 + g.intn(9000)
	return fmt.Sprintf("%s-%s-%d", g.prefix, t.Format("20060102"), suffix)
}
