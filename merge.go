package config

// MergeTrees deep-merges an ordered list of object Trees per §4.7.
// Arrays are replaced wholesale by the later tree (never merged
// element-wise — config arrays like server lists represent complete
// replacements, so index-wise merging would be ambiguous). Objects
// merge recursively; scalars are overwritten by the later tree. Key
// insertion order of the earliest occurrence is preserved throughout.
func MergeTrees(trees []*Tree) *Tree {
	switch len(trees) {
	case 0:
		return NewObject()
	case 1:
		return trees[0]
	}

	acc := trees[0].Clone()
	for _, next := range trees[1:] {
		acc = mergeObjects(acc, next)
	}
	return acc
}

// mergeObjects merges incoming into base, returning base (mutated
// in place) for chaining. Both must be object nodes; a non-object
// incoming value simply overwrites base's node (handled by the
// caller via mergeValue for nested fields).
func mergeObjects(base, incoming *Tree) *Tree {
	if !incoming.IsObject() {
		return incoming.Clone()
	}
	if !base.IsObject() {
		base = NewObject()
	}
	for _, key := range incoming.Keys() {
		incomingVal := incoming.Get(key)
		existing := base.Get(key)
		base.Set(key, mergeValue(existing, incomingVal))
	}
	return base
}

// mergeValue applies the per-field merge rule: arrays replace
// wholesale, objects merge recursively, scalars (and type mismatches)
// are overwritten by incoming.
func mergeValue(existing, incoming *Tree) *Tree {
	if incoming.IsArray() {
		return incoming.Clone()
	}
	if incoming.IsObject() && existing.IsObject() {
		return mergeObjects(existing.Clone(), incoming)
	}
	return incoming.Clone()
}
