package sanitizer

import (
	"net/url"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// DropReason explains why a mapping key was removed.
type DropReason string

const (
	// DropReservedKey is reported for __proto__, constructor and prototype.
	DropReservedKey DropReason = "reserved_key"
	// DropOperatorKey is reported for keys starting with "$".
	DropOperatorKey DropReason = "operator_key"
)

// reservedKeys cannot appear in a sanitized mapping.
var reservedKeys = map[string]struct{}{
	"__proto__":   {},
	"constructor": {},
	"prototype":   {},
}

// DropHook is called for every key removed from a mapping.
type DropHook func(key string, reason DropReason)

type structureOptions struct {
	onDrop DropHook
}

// StructureOption configures SanitizeStructure.
type StructureOption func(*structureOptions)

// WithDropHook registers a callback invoked for every dropped key.
func WithDropHook(hook DropHook) StructureOption {
	return func(o *structureOptions) {
		o.onDrop = hook
	}
}

// KeyDropReason reports whether key must be removed from a mapping and why.
func KeyDropReason(key string) (DropReason, bool) {
	if _, ok := reservedKeys[key]; ok {
		return DropReservedKey, true
	}
	if strings.HasPrefix(key, "$") {
		return DropOperatorKey, true
	}
	return "", false
}

// SanitizeStructure returns a sanitized copy of a decoded JSON value.
// Slices are sanitized element-wise, mappings are rebuilt without reserved
// and operator keys, strings go through StripString and any other value is
// returned unchanged. Key order of ordered maps is preserved. The input is
// never mutated.
func SanitizeStructure(v any, opts ...StructureOption) any {
	o := &structureOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o.sanitize(v)
}

func (o *structureOptions) sanitize(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = o.sanitize(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		for i, item := range val {
			out[i] = StripString(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, item := range val {
			if o.drop(key) {
				continue
			}
			out[key] = o.sanitize(item)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(val))
		for key, item := range val {
			if o.drop(key) {
				continue
			}
			out[key] = StripString(item)
		}
		return out
	case *orderedmap.OrderedMap:
		if val == nil {
			return val
		}
		return o.sanitizeOrdered(val)
	case orderedmap.OrderedMap:
		// orderedmap.UnmarshalJSON nests objects as values, not pointers.
		return *o.sanitizeOrdered(&val)
	default:
		return StripText(v)
	}
}

func (o *structureOptions) sanitizeOrdered(m *orderedmap.OrderedMap) *orderedmap.OrderedMap {
	out := orderedmap.New()
	for _, key := range m.Keys() {
		if o.drop(key) {
			continue
		}
		item, _ := m.Get(key)
		out.Set(key, o.sanitize(item))
	}
	return out
}

func (o *structureOptions) drop(key string) bool {
	reason, drop := KeyDropReason(key)
	if drop && o.onDrop != nil {
		o.onDrop(key, reason)
	}
	return drop
}

// SanitizeValues applies the mapping rules to query or form values: reserved
// and operator keys are dropped and every value goes through StripString.
func SanitizeValues(values url.Values, opts ...StructureOption) url.Values {
	o := &structureOptions{}
	for _, opt := range opts {
		opt(o)
	}

	out := make(url.Values, len(values))
	for key, items := range values {
		if o.drop(key) {
			continue
		}
		cleaned := make([]string, len(items))
		for i, item := range items {
			cleaned[i] = StripString(item)
		}
		out[key] = cleaned
	}
	return out
}
