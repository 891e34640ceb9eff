package analyzer

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/helmcode/healthai/pkg/catalog"
)

// Analyzer runs the symptom and lab pipelines against a reference catalog. It holds
// no mutable state and is safe for concurrent use.
type Analyzer struct {
	store *catalog.Store
	log   zerolog.Logger
	now   func() time.Time
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for debug tracing of matches.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Analyzer) { a.log = l }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

func New(store *catalog.Store, opts ...Option) *Analyzer {
	a := &Analyzer{
		store: store,
		log:   zerolog.Nop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Store returns the catalog the analyzer reads from.
func (a *Analyzer) Store() *catalog.Store {
	return a.store
}
