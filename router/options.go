package router

import "github.com/sirupsen/logrus"

// config collects the constructor options; it is never exposed
// directly, only through the functional options below, following the
// With...(...) Option idiom used across this project's reference
// implementation and its sibling packages for optional constructor
// behavior.
type config struct {
	ignoreTrailingSlash bool
	logger              *logrus.Logger
	metrics             Metrics
}

// Option configures a Router at construction time.
type Option func(*config)

// WithIgnoreTrailingSlash makes path matching treat "/foo" and
// "/foo/" as equivalent, ported from the reference implementation's
// MatchingOptions.IgnoreTrailingSlash bit.
func WithIgnoreTrailingSlash() Option {
	return func(c *config) { c.ignoreTrailingSlash = true }
}

// WithLogger supplies the logrus.Logger used for build-time
// structured logging. The default is logrus.StandardLogger().
func WithLogger(l *logrus.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics supplies a Metrics implementation. The default is a
// no-op implementation.
func WithMetrics(m Metrics) Option {
	return func(c *config) {
		if m != nil {
			c.metrics = m
		}
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		logger:  logrus.StandardLogger(),
		metrics: noopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
