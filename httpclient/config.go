package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/neysla/logger"
	"github.com/kbukum/neysla/version"
)

const (
	defaultTimeout = 30 * time.Second

	// TransportNetHTTP selects the net/http Adapter.
	TransportNetHTTP = "net/http"
	// TransportResty selects the go-resty transport.
	TransportResty = "resty"
)

// Config configures a transport.
type Config struct {
	// Name identifies the transport in logs and health reports.
	Name string `yaml:"name" mapstructure:"name"`

	// Transport selects the implementation: "net/http" (default) or "resty".
	Transport string `yaml:"transport" mapstructure:"transport"`

	// Timeout bounds a whole transaction. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is sent unless a request sets its own User-Agent header.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Auth configures default authentication applied to all requests.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Transport == "" {
		c.Transport = TransportNetHTTP
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	switch c.Transport {
	case TransportNetHTTP, TransportResty:
	default:
		return fmt.Errorf("httpclient: unknown transport %q", c.Transport)
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// options holds construction-time settings shared by all transports.
type options struct {
	log *logger.Logger
}

// Option configures a transport at construction.
type Option func(*options)

// WithLogger sets the logger used for transport diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get("httpclient")
	}
	return o
}
