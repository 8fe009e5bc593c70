// SPDX-License-Identifier: MIT

// Package categorical: functional configuration for factors and the binary
// operation engine. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors that panic on nonsensical values (programmer error),
//   - gatherOptions, which applies options over the defaults.
//
// Options are captured when a factor is built and inherited by every factor an
// operation derives from it, so a worker count or enumeration budget set once
// on the inputs of an inference run governs the whole run.

package categorical

import (
	"math"

	"go.uber.org/zap"
)

// Engine and numeric defaults.
const (
	// DefaultWorkers runs the binary engine's outer-pair loop on the calling goroutine.
	DefaultWorkers = 1

	// DefaultMaxEnumeration disables the exhaustive-enumeration budget (0 = unlimited).
	DefaultMaxEnumeration = 0

	// DefaultRelTol is the relative tolerance for Equals when callers have no
	// better value.
	DefaultRelTol = 1e-5

	// DefaultAbsTol is the absolute tolerance for Equals when callers have no
	// better value.
	DefaultAbsTol = 1e-8

	// KLDClampTol bounds the negative KL divergence accepted as rounding error
	// and clamped to zero.
	KLDClampTol = 1e-4
)

// DefaultLogProb is the implicit value of unlisted assignments: log(0).
var DefaultLogProb = math.Inf(-1)

const (
	panicWorkersInvalid     = "categorical: WithWorkers: n must be >= 1"
	panicEnumerationInvalid = "categorical: WithMaxEnumeration: n must be >= 0"
	panicDefaultNaN         = "categorical: WithDefaultLogProb: value must not be NaN"
)

// Option mutates Options. Options are applied in order; the last writer wins.
type Option func(*Options)

// Options holds factor construction and engine settings. Fields are
// unexported; use the WithX constructors.
type Options struct {
	defaultLogProb float64
	workers        int
	maxEnumeration int
	logger         *zap.Logger
}

// engine is the part of Options a factor carries into its results.
type engine struct {
	workers        int
	maxEnumeration int
	logger         *zap.Logger
}

func defaultOptions() Options {
	return Options{
		defaultLogProb: DefaultLogProb,
		workers:        DefaultWorkers,
		maxEnumeration: DefaultMaxEnumeration,
		logger:         zap.NewNop(),
	}
}

func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func (o Options) engine() engine {
	return engine{workers: o.workers, maxEnumeration: o.maxEnumeration, logger: o.logger}
}

// WithDefaultLogProb sets the implicit log-probability of unlisted assignments.
// Panics on NaN.
func WithDefaultLogProb(v float64) Option {
	if math.IsNaN(v) {
		panic(panicDefaultNaN)
	}
	return func(o *Options) { o.defaultLogProb = v }
}

// WithWorkers sets how many goroutines the binary engine may use for its
// outer-pair loop. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}
	return func(o *Options) { o.workers = n }
}

// WithMaxEnumeration caps the number of cells an exhaustive combination may
// enumerate; combinations above the cap fail with ErrEnumerationBudget before
// any work. Zero means unlimited. Panics if n < 0.
func WithMaxEnumeration(n int) Option {
	if n < 0 {
		panic(panicEnumerationInvalid)
	}
	return func(o *Options) { o.maxEnumeration = n }
}

// WithLogger sets the logger for engine diagnostics. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}
