package decoder

import (
	"github.com/mcncl/structconv/internal/diag"
	"github.com/mcncl/structconv/internal/models"
	"go.uber.org/zap"
)

// Option configures a single decoding call.
type Option func(*options)

type options struct {
	debug  bool
	logger *zap.Logger
	keys   func(string) string
	infer  bool
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

// kind picks the tag a Value is dispatched on.
func (o *options) kind(v *models.Value) models.Kind {
	if v == nil {
		return ""
	}
	if o.infer {
		return v.InferKind()
	}
	return v.Kind
}

// WithDebug reports every dropped field or element as a diagnostic.
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

// WithKeyTransform rewrites every object key, at every depth, in the decoded output.
func WithKeyTransform(fn func(string) string) Option {
	return func(o *options) {
		o.keys = fn
	}
}

// WithPayloadInference dispatches untagged values on their populated payload
// field. Without it a Value with no Kind is dropped.
func WithPayloadInference(infer bool) Option {
	return func(o *options) {
		o.infer = infer
	}
}
