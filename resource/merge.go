package resource

import (
	"maps"
	"strings"
)

// merge combines resource defaults with call overrides. The result is nil
// when neither side has entries, a copy of the non-empty side when only one
// has entries, and otherwise the union with override keys winning. Values are
// never merged recursively: an override replaces the whole value.
func merge[V any](defaults, overrides map[string]V) map[string]V {
	if len(defaults) == 0 && len(overrides) == 0 {
		return nil
	}
	out := make(map[string]V, len(defaults)+len(overrides))
	maps.Copy(out, defaults)
	maps.Copy(out, overrides)
	return out
}

// mergeHeaders is merge for header maps. Header names are case-insensitive,
// so a default is dropped when an override names the same header in any
// letter case.
func mergeHeaders(defaults, overrides map[string]string) map[string]string {
	if len(defaults) == 0 && len(overrides) == 0 {
		return nil
	}
	out := make(map[string]string, len(defaults)+len(overrides))
	for k, v := range defaults {
		if !hasFold(overrides, k) {
			out[k] = v
		}
	}
	maps.Copy(out, overrides)
	return out
}

func hasFold(m map[string]string, key string) bool {
	for k := range m {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// cloneMap returns a shallow copy of m, or nil when m is empty.
func cloneMap[V any](m map[string]V) map[string]V {
	if len(m) == 0 {
		return nil
	}
	return maps.Clone(m)
}
