package encoder

import (
	"github.com/mcncl/structconv/internal/diag"
	"go.uber.org/zap"
)

// Option configures a single encoding call.
type Option func(*options)

type options struct {
	debug       bool
	logger      *zap.Logger
	keys        func(string) string
	legacyLists bool
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) reporter() diag.Reporter {
	return diag.NewReporter(o.debug, o.logger)
}

func (o *options) key(k string) string {
	if o.keys == nil {
		return k
	}
	return o.keys(k)
}

// WithDebug reports every dropped key or element as a diagnostic.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// WithLogger sends diagnostics to l instead of the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithKeyTransform rewrites every object key, at every depth, before it is stored.
func WithKeyTransform(fn func(string) string) Option {
	return func(o *options) {
		o.keys = fn
	}
}

// WithLegacyListKinds leaves the Kind unset on struct and scalar list
// elements, matching consumers that read list elements by payload field.
// Nested lists keep their Kind either way.
func WithLegacyListKinds(legacy bool) Option {
	return func(o *options) {
		o.legacyLists = legacy
	}
}
