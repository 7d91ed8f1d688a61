// Package properties implements the ".properties" ResourceLoader using
// github.com/magiconair/properties, parsing flat dotted keys ("a.b.c")
// into the canonical nested Tree.
package properties

import (
	"io"

	magicprops "github.com/magiconair/properties"

	cfg "github.com/leonardo1317/liana-config"
)

// Loader parses ".properties" resources.
type Loader struct{}

// New builds a properties loader.
func New() *Loader { return &Loader{} }

func (l *Loader) Keys() []string { return []string{"properties"} }

func (l *Loader) ValidateResource(stream cfg.ResourceStream) error {
	return cfg.ValidateStream(stream)
}

// Load reads the full properties file and fans each flat "a.b.c" key
// out into nested Tree objects, in the order magiconair/properties
// preserves from the source text.
func (l *Loader) Load(stream cfg.ResourceStream) (*cfg.Tree, error) {
	data, err := io.ReadAll(stream.Reader())
	if err != nil {
		return nil, cfg.NewLoaderError("reading " + stream.Name() + ": " + err.Error())
	}

	// DisableExpansion: this library owns "${...}" resolution via its own
	// placeholder engine (run later, over the whole merged tree). Without
	// this, magiconair would try to expand references itself at parse
	// time, fail to find them among its own properties/env, and mangle or
	// fatally reject values that are actually meant for our placeholder
	// syntax.
	loader := magicprops.Loader{Encoding: magicprops.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, cfg.NewLoaderError("parsing " + stream.Name() + ": " + err.Error())
	}

	root := cfg.NewObject()
	for _, key := range props.Keys() {
		value, ok := props.Get(key)
		if !ok {
			continue
		}
		assignDotted(root, key, cfg.NewString(value))
	}
	return root, nil
}

// assignDotted splits path on '.' and walks/creates intermediate
// objects, setting the final segment to leaf.
func assignDotted(root *cfg.Tree, path string, leaf *cfg.Tree) {
	segments := splitDotted(path)
	node := root
	for i, seg := range segments {
		if i == len(segments)-1 {
			node.Set(seg, leaf)
			return
		}
		child := node.Get(seg)
		if child == nil || !child.IsObject() {
			child = cfg.NewObject()
			node.Set(seg, child)
		}
		node = child
	}
}

func splitDotted(path string) []string {
	var out []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			out = append(out, path[start:i])
			start = i + 1
		}
	}
	out = append(out, path[start:])
	return out
}
