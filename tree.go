package config

import "fmt"

// NodeKind discriminates the tagged-sum shape of a Tree node, per
// spec.md §9's recommendation for a systems-language rewrite: a small
// closed set of variants rather than a reflective dynamic map.
type NodeKind int

const (
	KindNull NodeKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

// Tree is the canonical internal configuration representation every
// ResourceLoader must produce and every consumer (merger, interpolator,
// resolver) must consume. An Object preserves insertion order through an
// explicit key slice alongside the lookup map, since Go's map iteration
// order is unspecified and the spec requires observable insertion order.
type Tree struct {
	Kind NodeKind

	Bool   bool
	Int    int64
	Float  float64
	String string

	Array []*Tree

	// keys preserves insertion order; fields indexes the same entries by
	// name. Both are kept in lockstep by Set.
	keys   []string
	fields map[string]*Tree
}

// NewObject returns an empty, insertion-ordered object node.
func NewObject() *Tree {
	return &Tree{Kind: KindObject, fields: make(map[string]*Tree)}
}

// NewArray returns an array node wrapping the given elements in order.
func NewArray(elems ...*Tree) *Tree {
	return &Tree{Kind: KindArray, Array: elems}
}

// NewString, NewInt, NewFloat, NewBool, NewNull build scalar leaves.
func NewString(s string) *Tree { return &Tree{Kind: KindString, String: s} }
func NewInt(i int64) *Tree     { return &Tree{Kind: KindInt, Int: i} }
func NewFloat(f float64) *Tree { return &Tree{Kind: KindFloat, Float: f} }
func NewBool(b bool) *Tree     { return &Tree{Kind: KindBool, Bool: b} }
func NewNull() *Tree           { return &Tree{Kind: KindNull} }

// IsObject, IsArray, IsScalar report the node's shape.
func (t *Tree) IsObject() bool { return t != nil && t.Kind == KindObject }
func (t *Tree) IsArray() bool  { return t != nil && t.Kind == KindArray }
func (t *Tree) IsScalar() bool {
	return t != nil && t.Kind != KindObject && t.Kind != KindArray
}

// Keys returns the object's field names in insertion order. Returns nil
// for a non-object node.
func (t *Tree) Keys() []string {
	if !t.IsObject() {
		return nil
	}
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Get returns the child of an object node by key, or nil if absent or if
// t is not an object.
func (t *Tree) Get(key string) *Tree {
	if !t.IsObject() {
		return nil
	}
	return t.fields[key]
}

// Set inserts or overwrites a field on an object node, appending key to
// the insertion-order slice only the first time it is seen.
func (t *Tree) Set(key string, value *Tree) {
	if t.Kind != KindObject {
		t.Kind = KindObject
		t.fields = make(map[string]*Tree)
	}
	if _, exists := t.fields[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.fields[key] = value
}

// Clone returns a deep, independent copy of the node.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case KindObject:
		clone := NewObject()
		for _, k := range t.keys {
			clone.Set(k, t.fields[k].Clone())
		}
		return clone
	case KindArray:
		elems := make([]*Tree, len(t.Array))
		for i, e := range t.Array {
			elems[i] = e.Clone()
		}
		return NewArray(elems...)
	default:
		cp := *t
		return &cp
	}
}

// ToAny converts the tree into plain Go values (map[string]any, []any,
// and scalar types) for consumers that want the untyped view, e.g.
// Configuration.GetRootAsMap.
func (t *Tree) ToAny() any {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case KindNull:
		return nil
	case KindBool:
		return t.Bool
	case KindInt:
		return t.Int
	case KindFloat:
		return t.Float
	case KindString:
		return t.String
	case KindArray:
		out := make([]any, len(t.Array))
		for i, e := range t.Array {
			out[i] = e.ToAny()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(t.keys))
		for _, k := range t.keys {
			out[k] = t.fields[k].ToAny()
		}
		return out
	default:
		return nil
	}
}

// FromAny builds a Tree from a value shaped like the output of a
// format loader's parse step: map[string]any (or map[any]any, as
// gopkg.in/yaml.v3 v2-style decoders sometimes produce), []any, and Go
// scalar types. Unrecognised types are stored as their %v string form
// rather than dropped, so a loader bug surfaces as odd text instead of
// silent data loss.
//
// Plain Go maps have no defined iteration order; loaders that must
// preserve source key order (YAML, JSON, properties, XML) build their
// Tree directly from an order-preserving decode instead of routing
// through FromAny. FromAny is for order-insensitive conversions only
// (struct defaults, ad-hoc variable maps).
func FromAny(v any) *Tree {
	switch val := v.(type) {
	case nil:
		return NewNull()
	case *Tree:
		return val
	case map[string]any:
		obj := NewObject()
		for k, v := range val {
			obj.Set(k, FromAny(v))
		}
		return obj
	case map[any]any:
		obj := NewObject()
		for k, v := range val {
			obj.Set(toStringKey(k), FromAny(v))
		}
		return obj
	case []any:
		elems := make([]*Tree, len(val))
		for i, e := range val {
			elems[i] = FromAny(e)
		}
		return NewArray(elems...)
	case string:
		return NewString(val)
	case bool:
		return NewBool(val)
	case int:
		return NewInt(int64(val))
	case int64:
		return NewInt(val)
	case float64:
		return NewFloat(val)
	default:
		return NewString(toStringKey(val))
	}
}

func toStringKey(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
