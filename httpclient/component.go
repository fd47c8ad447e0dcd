package httpclient

import (
	"context"
	"fmt"

	"github.com/kbukum/neysla/component"
)

// Component wraps a Transport with lifecycle management.
// The transport is created lazily in Start().
type Component struct {
	transport Transport
	config    Config
	opts      []Option
}

// compile-time assertions
var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a new HTTP transport component.
func NewComponent(cfg Config, opts ...Option) *Component {
	return &Component{config: cfg, opts: opts}
}

// Name returns the component name.
func (c *Component) Name() string {
	name := c.config.Name
	if name == "" {
		name = "http"
	}
	return name
}

// Start builds the configured transport.
func (c *Component) Start(_ context.Context) error {
	t, err := NewTransport(c.config, c.opts...)
	if err != nil {
		return err
	}
	c.transport = t
	return nil
}

// Stop releases idle connections held by the transport.
func (c *Component) Stop(ctx context.Context) error {
	if closer, ok := c.transport.(interface{ Close(context.Context) error }); ok {
		return closer.Close(ctx)
	}
	return nil
}

// Health reports healthy once the transport has been built.
func (c *Component) Health(_ context.Context) component.Health {
	if c.transport == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns component description for the startup summary.
func (c *Component) Describe() component.Description {
	cfg := c.config
	cfg.ApplyDefaults()
	return component.Description{
		Name:    c.Name(),
		Type:    "http-transport",
		Details: fmt.Sprintf("%s timeout=%s", cfg.Transport, cfg.Timeout),
	}
}

// Transport returns the underlying transport. Must be called after Start().
func (c *Component) Transport() Transport {
	return c.transport
}
