package sdf

import "github.com/sirupsen/logrus"

type options struct {
	drop   []string
	logger logrus.FieldLogger
}

// Option adjusts dataset assembly.
type Option func(*options)

// WithDropVariables removes the named blocks before assembly. Every
// name must exist in the file, otherwise assembly fails with
// ErrUnknownVariable.
func WithDropVariables(names ...string) Option {
	return func(o *options) {
		o.drop = append(o.drop, names...)
	}
}

// WithLogger routes assembly warnings to l instead of the standard
// logrus logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(opts []Option) *options {
	o := &options{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
