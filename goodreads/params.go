package goodreads

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"

	"github.com/spf13/cast"
)

// Params holds the arguments of one call. Values are scalars or nested maps
// with string keys (Params, map[string]any, map[string]int, ...), which are
// sent as composite keys: parent[child].
type Params map[string]any

// Flatten produces the transport parameter set.
//
// Outer keys are processed in sorted order and inner keys likewise, so the
// output is deterministic. A plain key that collides with a flattened one
// ("a[b]" next to {"a": {"b": ...}}) is resolved last-write-wins in that order.
func (p Params) Flatten() url.Values {
	out := url.Values{}
	for _, key := range sortedKeys(p) {
		switch nested := p[key].(type) {
		case Params:
			flattenInto(out, key, nested)
		case map[string]any:
			flattenInto(out, key, nested)
		default:
			if nested == nil {
				continue
			}
			if m, ok := stringMap(nested); ok {
				flattenInto(out, key, m)
				continue
			}
			out.Set(key, formatScalar(nested))
		}
	}
	return out
}

func flattenInto(out url.Values, parent string, nested map[string]any) {
	for _, sub := range sortedKeys(nested) {
		val := nested[sub]
		if val == nil {
			continue
		}
		out.Set(compositeKey(parent, sub), formatScalar(val))
	}
}

// stringMap converts any map keyed by a string kind to map[string]any
func stringMap(v any) (map[string]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func compositeKey(parent, child string) string {
	return fmt.Sprintf("%s[%s]", parent, child)
}

func formatScalar(v any) string {
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
