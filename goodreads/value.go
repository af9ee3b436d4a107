package goodreads

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Kind identifies which variant a Value holds
type Kind int

const (
	// KindNull is an element that was present but carried no content
	KindNull Kind = iota
	// KindString is a plain text leaf
	KindString
	// KindMap is an ordered list of unique keys
	KindMap
	// KindList is a sequence of repeated elements
	KindList
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Reserved keys used by the document parsers. Attributes are stored under
// "@name" and an element's own text, when it also has attributes or children,
// under "#text".
const (
	AttrPrefix = "@"
	TextKey    = "#text"
	TypeKey    = "@type"
	NilKey     = "@nil"
)

// Pair is one entry of a map Value
type Pair struct {
	Key   string
	Value *Value
}

// Value is a node of a normalized response. A leaf the document annotates with
// a type (<id type="integer">1</id>) is a map {"@type", "#text"}, not a string;
// a nil-marked leaf (<isbn nil="true"/>) is a map {"@nil"}; an empty element is
// KindNull; a key missing from its parent is absent. Accessors keep these four
// cases apart.
type Value struct {
	kind  Kind
	str   string
	pairs []Pair
	items []*Value
}

// Null returns an empty-element Value
func Null() *Value {
	return &Value{kind: KindNull}
}

// String returns a text leaf
func String(s string) *Value {
	return &Value{kind: KindString, str: s}
}

// Map returns a map Value. Later pairs with a repeated key replace earlier ones.
func Map(pairs ...Pair) *Value {
	v := &Value{kind: KindMap}
	for _, p := range pairs {
		v.Set(p.Key, p.Value)
	}
	return v
}

// List returns a list Value
func List(items ...*Value) *Value {
	return &Value{kind: KindList, items: items}
}

// Kind returns the variant held by v. A nil *Value reports KindNull.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether v is an empty element (or a nil pointer)
func (v *Value) IsNull() bool {
	return v.Kind() == KindNull
}

// IsNil reports whether v is nil-marked by the document, or empty
func (v *Value) IsNil() bool {
	if v.IsNull() {
		return true
	}
	if v.kind != KindMap {
		return false
	}
	marker, ok := v.Get(NilKey)
	return ok && marker.kind == KindString && marker.str == "true"
}

// Str returns the text of a plain string leaf
func (v *Value) Str() (string, bool) {
	if v.Kind() != KindString {
		return "", false
	}
	return v.str, true
}

// Text returns the scalar content of v: the string of a plain leaf, or the
// "#text" of an annotated leaf. Null, nil-marked and container values give "".
func (v *Value) Text() string {
	switch v.Kind() {
	case KindString:
		return v.str
	case KindMap:
		if t, ok := v.Get(TextKey); ok && t.kind == KindString {
			return t.str
		}
	}
	return ""
}

// TypeAnnotation returns the "@type" attribute of an annotated leaf
func (v *Value) TypeAnnotation() (string, bool) {
	if v.Kind() != KindMap {
		return "", false
	}
	t, ok := v.Get(TypeKey)
	if !ok {
		return "", false
	}
	return t.Str()
}

// Attr returns the text of attribute name
func (v *Value) Attr(name string) (string, bool) {
	a, ok := v.Get(AttrPrefix + name)
	if !ok {
		return "", false
	}
	return a.Str()
}

// Get returns the child stored under key
func (v *Value) Get(key string) (*Value, bool) {
	if v.Kind() != KindMap {
		return nil, false
	}
	for _, p := range v.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Lookup follows a path of keys through nested maps
func (v *Value) Lookup(path ...string) (*Value, bool) {
	cur := v
	for _, key := range path {
		next, ok := cur.Get(key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Field returns the text at path, or "" if any step is missing
func (v *Value) Field(path ...string) string {
	f, ok := v.Lookup(path...)
	if !ok {
		return ""
	}
	return f.Text()
}

// Keys returns map keys in document order
func (v *Value) Keys() []string {
	if v.Kind() != KindMap {
		return nil
	}
	keys := make([]string, len(v.pairs))
	for i, p := range v.pairs {
		keys[i] = p.Key
	}
	return keys
}

// Pairs returns a copy of the map entries in document order
func (v *Value) Pairs() []Pair {
	if v.Kind() != KindMap {
		return nil
	}
	out := make([]Pair, len(v.pairs))
	copy(out, v.pairs)
	return out
}

// Items returns the elements of a list Value
func (v *Value) Items() []*Value {
	if v.Kind() != KindList {
		return nil
	}
	out := make([]*Value, len(v.items))
	copy(out, v.items)
	return out
}

// AsList resolves the single-vs-repeated ambiguity of repeated elements: a list
// yields its items, null yields nothing, anything else is a one-item list.
func (v *Value) AsList() []*Value {
	switch v.Kind() {
	case KindList:
		return v.Items()
	case KindNull:
		return nil
	default:
		return []*Value{v}
	}
}

// Len returns the number of entries of a map or list
func (v *Value) Len() int {
	switch v.Kind() {
	case KindMap:
		return len(v.pairs)
	case KindList:
		return len(v.items)
	default:
		return 0
	}
}

// Set stores child under key, replacing an existing entry in place
func (v *Value) Set(key string, child *Value) {
	if child == nil {
		child = Null()
	}
	for i := range v.pairs {
		if v.pairs[i].Key == key {
			v.pairs[i].Value = child
			return
		}
	}
	v.pairs = append(v.pairs, Pair{Key: key, Value: child})
}

// appendRepeated stores child under key, turning an existing entry into a list
// when the key repeats. The list keeps the position of the first occurrence.
func (v *Value) appendRepeated(key string, child *Value) {
	for i := range v.pairs {
		if v.pairs[i].Key != key {
			continue
		}
		existing := v.pairs[i].Value
		if existing.kind == KindList {
			existing.items = append(existing.items, child)
		} else {
			v.pairs[i].Value = List(existing, child)
		}
		return
	}
	v.pairs = append(v.pairs, Pair{Key: key, Value: child})
}

// MarshalJSON renders v with map keys in document order
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) writeJSON(buf *bytes.Buffer) error {
	switch v.Kind() {
	case KindNull:
		buf.WriteString("null")
	case KindString:
		b, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindMap:
		buf.WriteByte('{')
		for i, p := range v.pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(p.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := p.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	}
	return nil
}

// describe gives a short summary used in error messages
func (v *Value) describe() string {
	switch v.Kind() {
	case KindMap:
		return fmt.Sprintf("{%s}", strings.Join(v.Keys(), ", "))
	case KindList:
		return fmt.Sprintf("[%d items]", v.Len())
	case KindString:
		return fmt.Sprintf("%q", v.str)
	default:
		return "null"
	}
}
