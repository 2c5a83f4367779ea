// Package refnum issues human-readable quotation reference numbers such as
// "003/SPB/LEORA/I/2025". They are a display convenience; two concurrent
// calls may read the same count, so the document id stays the real key.
package refnum

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"
)

// Counter reports how many documents exist, soft-deleted ones included.
type Counter interface {
	CountAll(ctx context.Context) (int, error)
}

var romanMonths = [...]string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII"}

// RomanMonth returns the Roman numeral (I–XII) for m.
func RomanMonth(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return romanMonths[m-1]
}

// Format renders a reference number for sequence seq issued at t.
func Format(seq int, t time.Time) string {
	return fmt.Sprintf("%03d/SPB/LEORA/%s/%d", seq, RomanMonth(t.Month()), t.Year())
}

// Generator produces reference numbers from a document counter.
type Generator struct {
	counter Counter
	loc     *time.Location
	now     func() time.Time
	randN   func(n int) int
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithLocation sets the time zone whose calendar month and year are used.
func WithLocation(loc *time.Location) Option {
	return func(g *Generator) { g.loc = loc }
}

// WithRand overrides the fallback sequence source.
func WithRand(randN func(n int) int) Option {
	return func(g *Generator) { g.randN = randN }
}

// New creates a Generator.
func New(counter Counter, opts ...Option) *Generator {
	g := &Generator{
		counter: counter,
		loc:     time.Local,
		now:     time.Now,
		randN:   rand.IntN,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns the next reference number. A failed count does not block
// document creation: a random three-digit sequence is used instead.
func (g *Generator) Generate(ctx context.Context) string {
	now := g.now().In(g.loc)
	count, err := g.counter.CountAll(ctx)
	if err != nil {
		seq := g.randN(1000)
		slog.Warn("reference number count failed, using random sequence",
			"error", err,
			"sequence", seq,
		)
		return Format(seq, now)
	}
	return Format(count+1, now)
}
