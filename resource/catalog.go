package resource

import (
	"net/url"

	"github.com/kbukum/neysla/errors"
	"github.com/kbukum/neysla/httpclient"
)

// CatalogConfig declares a set of resources that share a base URL.
type CatalogConfig struct {
	// BaseURL is prepended to every relative resource URL.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// Resources maps resource names to their descriptors.
	Resources map[string]Descriptor `yaml:"resources" mapstructure:"resources" validate:"dive"`
}

// Catalog is a named set of resources bound to one transport.
type Catalog struct {
	resources map[string]*Resource
}

// NewCatalog builds every resource in cfg. A descriptor without a Name takes
// its key; a descriptor URL with a scheme is used as is, any other URL is
// appended to BaseURL.
func NewCatalog(cfg CatalogConfig, transport httpclient.Transport, opts ...ResourceOption) (*Catalog, error) {
	c := &Catalog{resources: make(map[string]*Resource, len(cfg.Resources))}
	for _, name := range sortedKeys(cfg.Resources) {
		desc := cfg.Resources[name]
		if desc.Name == "" {
			desc.Name = name
		}
		desc.URL = joinBase(cfg.BaseURL, desc.URL)

		r, err := New(desc, transport, opts...)
		if err != nil {
			if appErr, ok := errors.AsAppError(err); ok {
				return nil, appErr.WithDetail("resource", name)
			}
			return nil, err
		}
		c.resources[name] = r
	}
	return c, nil
}

func joinBase(base, u string) string {
	if parsed, err := url.Parse(u); err == nil && parsed.Scheme != "" {
		return u
	}
	return base + u
}

// Resource returns the named resource.
func (c *Catalog) Resource(name string) (*Resource, error) {
	r, ok := c.resources[name]
	if !ok {
		return nil, errors.NotFound("resource", name)
	}
	return r, nil
}

// Names returns the resource names in sorted order.
func (c *Catalog) Names() []string {
	return sortedKeys(c.resources)
}

// Len returns the number of resources.
func (c *Catalog) Len() int {
	return len(c.resources)
}
