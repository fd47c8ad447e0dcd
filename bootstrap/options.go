package bootstrap

import (
	"time"

	"github.com/kbukum/neysla/httpclient"
	"github.com/kbukum/neysla/logger"
)

const defaultGracefulTimeout = 10 * time.Second

// Option configures an App.
type Option func(*options)

type options struct {
	logger          *logger.Logger
	transport       httpclient.Transport
	gracefulTimeout time.Duration
}

// WithLogger uses l instead of a logger built from the config.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTransport binds the catalog to t instead of the configured HTTP
// transport. No transport component is registered in that case.
func WithTransport(t httpclient.Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithGracefulTimeout bounds how long shutdown may take.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *options) { o.gracefulTimeout = d }
}

func resolveOptions(opts []Option) options {
	o := options{gracefulTimeout: defaultGracefulTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
