package config

import (
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/kbukum/neysla/resource"
)

// KeyCaseRestorer is implemented by configs whose map keys are data rather
// than settings. Viper folds every key to lower case; RestoreKeyCase receives
// the raw config file after unmarshalling and puts the written case back.
type KeyCaseRestorer interface {
	RestoreKeyCase(raw []byte) error
}

type rawCatalog struct {
	Catalog struct {
		Resources map[string]struct {
			Params  map[string]any `yaml:"params"`
			Body    map[string]any `yaml:"body"`
			Headers map[string]any `yaml:"headers"`
		} `yaml:"resources"`
	} `yaml:"catalog"`
}

// RestoreKeyCase restores resource names and the params, body and headers
// keys of every catalog resource. Values stay as viper resolved them, so
// environment overrides survive.
func (c *Config) RestoreKeyCase(raw []byte) error {
	var file rawCatalog
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return err
	}
	if len(file.Catalog.Resources) == 0 || c.Catalog.Resources == nil {
		return nil
	}

	restored := make(map[string]resource.Descriptor, len(c.Catalog.Resources))
	for name, desc := range c.Catalog.Resources {
		restored[name] = desc
	}
	for name, written := range file.Catalog.Resources {
		folded := strings.ToLower(name)
		desc, ok := c.Catalog.Resources[folded]
		if !ok {
			continue
		}
		if written.Params != nil {
			desc.Params = restoreCase(desc.Params, written.Params)
		}
		if written.Body != nil {
			desc.Body = restoreCase(desc.Body, written.Body)
		}
		if written.Headers != nil {
			desc.Headers = restoreHeaderCase(desc.Headers, written.Headers)
		}
		delete(restored, folded)
		restored[name] = desc
	}
	c.Catalog.Resources = restored
	return nil
}

// restoreCase renames the keys of got, recursively, to their spelling in
// written. Keys with no written counterpart are kept as they are.
func restoreCase(got, written map[string]any) map[string]any {
	if got == nil {
		return nil
	}
	out := make(map[string]any, len(got))
	for k, v := range got {
		out[k] = v
	}
	for wk, wv := range written {
		folded := strings.ToLower(wk)
		v, ok := got[folded]
		if !ok {
			continue
		}
		delete(out, folded)
		out[wk] = restoreValue(v, wv)
	}
	return out
}

func restoreValue(got, written any) any {
	switch g := got.(type) {
	case map[string]any:
		if w, ok := stringMap(written); ok {
			return restoreCase(g, w)
		}
	case []any:
		w, ok := written.([]any)
		if !ok || len(w) != len(g) {
			return got
		}
		out := make([]any, len(g))
		for i := range g {
			out[i] = restoreValue(g[i], w[i])
		}
		return out
	}
	return got
}

func restoreHeaderCase(got map[string]string, written map[string]any) map[string]string {
	if got == nil {
		return nil
	}
	out := make(map[string]string, len(got))
	for k, v := range got {
		out[k] = v
	}
	for wk := range written {
		folded := strings.ToLower(wk)
		if v, ok := got[folded]; ok {
			delete(out, folded)
			out[wk] = v
		}
	}
	return out
}

func stringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			s, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[s] = val
		}
		return out, true
	}
	return nil, false
}
