package config

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// pathSegment is one hop of a dotted/bracketed path: either an object
// field name or an array index.
type pathSegment struct {
	key     string
	index   int
	isIndex bool
}

// parsePath translates the spec's JSON-pointer-like addressing
// (§4.9) into a segment list: "a.b.c" -> [a, b, c]; "a[0].b" ->
// [a, 0, b].
func parsePath(path string) []pathSegment {
	var segs []pathSegment
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			segs = append(segs, pathSegment{key: cur.String()})
			cur.Reset()
		}
	}
	i, n := 0, len(path)
	for i < n {
		switch path[i] {
		case '.':
			flush()
			i++
		case '[':
			flush()
			j := i + 1
			for j < n && path[j] != ']' {
				j++
			}
			if idx, err := strconv.Atoi(path[i+1 : j]); err == nil {
				segs = append(segs, pathSegment{index: idx, isIndex: true})
			}
			if j < n {
				j++
			}
			i = j
		default:
			cur.WriteByte(path[i])
			i++
		}
	}
	flush()
	return segs
}

func traverse(root *Tree, path string) *Tree {
	if isBlank(path) {
		return root
	}
	node := root
	for _, seg := range parsePath(path) {
		if node == nil {
			return nil
		}
		if seg.isIndex {
			if !node.IsArray() || seg.index < 0 || seg.index >= len(node.Array) {
				return nil
			}
			node = node.Array[seg.index]
			continue
		}
		node = node.Get(seg.key)
	}
	return node
}

// ValueResolver is the §4.9 backing state: a single canonical tree
// built once, with a thread-safe cache from dotted path to the subtree
// it addresses. Lookups are compute-if-absent: concurrent callers
// resolving the same never-before-seen path converge on one traversal.
type ValueResolver struct {
	root *Tree

	mu       sync.Mutex
	cache    map[string]cacheEntry
	inflight map[string]*sync.WaitGroup
}

type cacheEntry struct {
	node  *Tree
	found bool
}

// NewValueResolver wraps root (the merged, interpolated Tree) for
// path-addressed access.
func NewValueResolver(root *Tree) *ValueResolver {
	return &ValueResolver{root: root, cache: make(map[string]cacheEntry)}
}

// Lookup returns the subtree at path and whether it exists. A missing
// node (as opposed to a present null-valued node) reports found=false.
func (r *ValueResolver) Lookup(path string) (*Tree, bool) {
	r.mu.Lock()
	if e, ok := r.cache[path]; ok {
		r.mu.Unlock()
		return e.node, e.found
	}
	if wg, ok := r.inflight[path]; ok {
		r.mu.Unlock()
		wg.Wait()
		r.mu.Lock()
		e := r.cache[path]
		r.mu.Unlock()
		return e.node, e.found
	}
	wg := &sync.WaitGroup{}
	wg.Add(1)
	if r.inflight == nil {
		r.inflight = make(map[string]*sync.WaitGroup)
	}
	r.inflight[path] = wg
	r.mu.Unlock()

	node := traverse(r.root, path)
	entry := cacheEntry{node: node, found: node != nil}

	r.mu.Lock()
	r.cache[path] = entry
	delete(r.inflight, path)
	r.mu.Unlock()
	wg.Done()

	return entry.node, entry.found
}

// Configuration is the read-only view over a single merged,
// interpolated Tree (§3, §4.9).
type Configuration struct {
	resolver *ValueResolver
}

// NewConfiguration wraps root for typed, path-addressed access.
func NewConfiguration(root *Tree) *Configuration {
	return &Configuration{resolver: NewValueResolver(root)}
}

// ContainsKey reports whether path addresses an existing node (missing
// nodes, not null-valued nodes, return false).
func (c *Configuration) ContainsKey(path string) bool {
	_, ok := c.resolver.Lookup(path)
	return ok
}

// GetRaw returns the untyped value at path (a scalar, map[string]any,
// or []any), or (nil, false) if path does not exist. Unlike Get[T],
// this needs no target type and so has none of Get[T]'s limitations
// when T is itself `any`.
func (c *Configuration) GetRaw(path string) (any, bool) {
	node, ok := c.resolver.Lookup(path)
	if !ok {
		return nil, false
	}
	return node.ToAny(), true
}

// GetRootAsMap returns the whole tree as a freshly built
// map[string]any; mutating it does not affect the Configuration.
func (c *Configuration) GetRootAsMap() map[string]any {
	root := c.resolver.root
	if !root.IsObject() {
		return map[string]any{}
	}
	return root.ToAny().(map[string]any)
}

// --- convenience typed getters -------------------------------------

func (c *Configuration) GetString(path string) (string, error) {
	return getOrMissing(c, path, cast.ToStringE)
}

func (c *Configuration) GetStringDefault(path, def string) string {
	v, err := c.GetString(path)
	if err != nil {
		return def
	}
	return v
}

func (c *Configuration) GetInt(path string) (int, error) {
	return getOrMissing(c, path, cast.ToIntE)
}

func (c *Configuration) GetIntDefault(path string, def int) int {
	v, err := c.GetInt(path)
	if err != nil {
		return def
	}
	return v
}

func (c *Configuration) GetBoolean(path string) (bool, error) {
	return getOrMissing(c, path, cast.ToBoolE)
}

func (c *Configuration) GetBooleanDefault(path string, def bool) bool {
	v, err := c.GetBoolean(path)
	if err != nil {
		return def
	}
	return v
}

func (c *Configuration) GetDouble(path string) (float64, error) {
	return getOrMissing(c, path, cast.ToFloat64E)
}

func (c *Configuration) GetDoubleDefault(path string, def float64) float64 {
	v, err := c.GetDouble(path)
	if err != nil {
		return def
	}
	return v
}

func (c *Configuration) GetDuration(path string) (time.Duration, error) {
	node, ok := c.resolver.Lookup(path)
	if !ok {
		return 0, newError(KindMissingKey, "no value at path "+path, nil)
	}
	s, err := cast.ToStringE(node.ToAny())
	if err != nil {
		return 0, newError(KindConversion, "path "+path+" is not duration-like", err)
	}
	return parseDuration(s)
}

func (c *Configuration) GetDurationDefault(path string, def time.Duration) time.Duration {
	v, err := c.GetDuration(path)
	if err != nil {
		return def
	}
	return v
}

// getOrMissing is the shared shape of the non-generic convenience
// getters: look up path, raise MissingKey if absent, Conversion if the
// cast function fails.
func getOrMissing[T any](c *Configuration, path string, cast func(any) (T, error)) (T, error) {
	var zero T
	node, ok := c.resolver.Lookup(path)
	if !ok {
		return zero, newError(KindMissingKey, "no value at path "+path, nil)
	}
	v, err := cast(node.ToAny())
	if err != nil {
		return zero, newError(KindConversion, "path "+path+" could not convert", err)
	}
	return v, nil
}

// --- generic structural access --------------------------------------

// Get converts the subtree at path to T. ok is false if path is
// missing; err is a *Error{Kind: KindConversion} if the node exists but
// can't convert to T.
func Get[T any](c *Configuration, path string) (T, bool, error) {
	var zero T
	node, ok := c.resolver.Lookup(path)
	if !ok {
		return zero, false, nil
	}
	rv, err := convertTo(node, reflect.TypeOf(zero))
	if err != nil {
		return zero, false, err
	}
	v, ok := rv.Interface().(T)
	if !ok {
		return zero, false, newError(KindConversion, "path "+path+" produced unexpected type", nil)
	}
	return v, true, nil
}

// GetList converts the array at path element-wise to []E. Returns an
// empty, non-nil slice if path is missing or not an array.
func GetList[E any](c *Configuration, path string) ([]E, error) {
	node, ok := c.resolver.Lookup(path)
	if !ok || !node.IsArray() {
		return []E{}, nil
	}
	var zero E
	elemType := reflect.TypeOf(zero)
	out := make([]E, len(node.Array))
	for i, e := range node.Array {
		rv, err := convertTo(e, elemType)
		if err != nil {
			return nil, err
		}
		v, ok := rv.Interface().(E)
		if !ok {
			return nil, newError(KindConversion, "array element at "+path+"["+strconv.Itoa(i)+"] has unexpected type", nil)
		}
		out[i] = v
	}
	return out, nil
}

// GetMap converts the object at path entry-wise to map[string]V.
// Returns an empty, non-nil map if path is missing or not an object.
func GetMap[V any](c *Configuration, path string) (map[string]V, error) {
	node, ok := c.resolver.Lookup(path)
	if !ok || !node.IsObject() {
		return map[string]V{}, nil
	}
	var zero V
	valType := reflect.TypeOf(zero)
	out := make(map[string]V, len(node.Keys()))
	for _, k := range node.Keys() {
		rv, err := convertTo(node.Get(k), valType)
		if err != nil {
			return nil, err
		}
		v, ok := rv.Interface().(V)
		if !ok {
			return nil, newError(KindConversion, "map entry "+path+"."+k+" has unexpected type", nil)
		}
		out[k] = v
	}
	return out, nil
}

// GetRootAs converts the whole tree to T, an aggregate target type.
func GetRootAs[T any](c *Configuration) (T, bool, error) {
	var zero T
	root := c.resolver.root
	if root == nil {
		return zero, false, nil
	}
	rv, err := convertTo(root, reflect.TypeOf(zero))
	if err != nil {
		return zero, false, err
	}
	v, ok := rv.Interface().(T)
	if !ok {
		return zero, false, newError(KindConversion, "root produced unexpected type", nil)
	}
	return v, true, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// convertTo converts node to targetType. Scalars go through
// github.com/spf13/cast, the pack's dominant "any to T" coercion
// library; structs are reconstructed via github.com/mitchellh/
// mapstructure's tag-driven decoder rather than a hand-rolled
// reflective walk, matching §9's "struct-driven... rather than runtime
// reflection" guidance (mapstructure's decoder is exactly that: a
// small dedicated deserialiser, not ad-hoc reflection at every call
// site).
func convertTo(node *Tree, targetType reflect.Type) (reflect.Value, error) {
	if targetType == nil {
		return reflect.Value{}, newError(KindConversion, "nil target type", nil)
	}
	raw := node.ToAny()

	if targetType == durationType {
		s, err := cast.ToStringE(raw)
		if err != nil {
			return reflect.Value{}, newError(KindConversion, "not duration-like", err)
		}
		d, err := parseDuration(s)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(d), nil
	}

	switch targetType.Kind() {
	case reflect.String:
		v, err := cast.ToStringE(raw)
		if err != nil {
			return reflect.Value{}, newError(KindConversion, "not string-like", err)
		}
		return reflect.ValueOf(v), nil
	case reflect.Bool:
		v, err := cast.ToBoolE(raw)
		if err != nil {
			return reflect.Value{}, newError(KindConversion, "not bool-like", err)
		}
		return reflect.ValueOf(v), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := cast.ToInt64E(raw)
		if err != nil {
			return reflect.Value{}, newError(KindConversion, "not int-like", err)
		}
		rv := reflect.New(targetType).Elem()
		rv.SetInt(v)
		return rv, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := cast.ToUint64E(raw)
		if err != nil {
			return reflect.Value{}, newError(KindConversion, "not uint-like", err)
		}
		rv := reflect.New(targetType).Elem()
		rv.SetUint(v)
		return rv, nil
	case reflect.Float32, reflect.Float64:
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return reflect.Value{}, newError(KindConversion, "not float-like", err)
		}
		rv := reflect.New(targetType).Elem()
		rv.SetFloat(v)
		return rv, nil
	case reflect.Slice:
		if !node.IsArray() {
			return reflect.Value{}, newError(KindConversion, "not an array", nil)
		}
		elemType := targetType.Elem()
		out := reflect.MakeSlice(targetType, len(node.Array), len(node.Array))
		for i, e := range node.Array {
			ev, err := convertTo(e, elemType)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(ev)
		}
		return out, nil
	case reflect.Map:
		if !node.IsObject() {
			return reflect.Value{}, newError(KindConversion, "not an object", nil)
		}
		valType := targetType.Elem()
		out := reflect.MakeMapWithSize(targetType, len(node.Keys()))
		for _, k := range node.Keys() {
			ev, err := convertTo(node.Get(k), valType)
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(reflect.ValueOf(k), ev)
		}
		return out, nil
	case reflect.Struct:
		target := reflect.New(targetType)
		if err := decodeStruct(raw, target.Interface()); err != nil {
			return reflect.Value{}, err
		}
		return target.Elem(), nil
	case reflect.Ptr:
		elem, err := convertTo(node, targetType.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(targetType.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	case reflect.Interface:
		return reflect.ValueOf(raw), nil
	default:
		return reflect.Value{}, newError(KindConversion, "unsupported target kind "+targetType.Kind().String(), nil)
	}
}

func decodeStruct(raw any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		TagName:          "config",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return newError(KindConversion, "building struct decoder", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return newError(KindConversion, "decoding struct", err)
	}
	return nil
}
