package config

// InterpolateTree implements §4.8: traverses merged recursively,
// running every string leaf through the placeholder engine using
// variables as the PropertySource. Non-string scalars are untouched.
// If the engine can't fully resolve a leaf, that leaf keeps its
// original literal value (partial resolvability is fine at tree level,
// unlike at a single template's level). An empty variables map does
// NOT short-circuit interpolation: placeholders carrying a default
// value (${host:localhost}) and escaped placeholders must still
// resolve with no variables supplied. Only a nil or empty merged tree
// is returned unchanged.
func InterpolateTree(merged *Tree, spec PlaceholderSpec, variables map[string]string) (*Tree, error) {
	if merged == nil || (merged.IsObject() && len(merged.Keys()) == 0) {
		return merged, nil
	}
	engine, err := NewPlaceholderEngine(spec)
	if err != nil {
		return nil, err
	}
	source := NewMapPropertySource(variables)
	return interpolateNode(merged, engine, source)
}

func interpolateNode(node *Tree, engine *PlaceholderEngine, source PropertySource) (*Tree, error) {
	switch node.Kind {
	case KindString:
		expanded, ok, err := engine.Resolve(node.String, []PropertySource{source})
		if err != nil {
			return nil, err
		}
		if !ok {
			return node, nil
		}
		return NewString(expanded), nil
	case KindObject:
		out := NewObject()
		for _, key := range node.Keys() {
			child, err := interpolateNode(node.Get(key), engine, source)
			if err != nil {
				return nil, err
			}
			out.Set(key, child)
		}
		return out, nil
	case KindArray:
		elems := make([]*Tree, len(node.Array))
		for i, e := range node.Array {
			child, err := interpolateNode(e, engine, source)
			if err != nil {
				return nil, err
			}
			elems[i] = child
		}
		return NewArray(elems...), nil
	default:
		return node, nil
	}
}
