// Package yaml implements the ".yaml"/".yml" ResourceLoader using
// gopkg.in/yaml.v3, decoding into yaml.Node rather than map[string]any
// so mapping key order survives into the canonical Tree.
package yaml

import (
	"io"
	"strconv"

	goyaml "gopkg.in/yaml.v3"

	cfg "github.com/leonardo1317/liana-config"
)

// Loader parses ".yaml"/".yml" resources.
type Loader struct{}

// New builds a YAML loader.
func New() *Loader { return &Loader{} }

func (l *Loader) Keys() []string { return []string{"yaml", "yml"} }

func (l *Loader) ValidateResource(stream cfg.ResourceStream) error {
	return cfg.ValidateStream(stream)
}

// Load decodes the full YAML document into a yaml.Node tree and
// converts it into the canonical Tree, preserving mapping key order.
func (l *Loader) Load(stream cfg.ResourceStream) (*cfg.Tree, error) {
	data, err := io.ReadAll(stream.Reader())
	if err != nil {
		return nil, cfg.NewLoaderError("reading " + stream.Name() + ": " + err.Error())
	}

	var doc goyaml.Node
	if err := goyaml.Unmarshal(data, &doc); err != nil {
		return nil, cfg.NewLoaderError("parsing " + stream.Name() + ": " + err.Error())
	}

	if len(doc.Content) == 0 {
		return cfg.NewObject(), nil
	}
	return nodeToTree(doc.Content[0]), nil
}

// nodeToTree converts a decoded yaml.Node (mapping, sequence, or
// scalar) into the equivalent Tree, preserving mapping key order as
// yaml.v3 decodes it (Content holds alternating key/value pairs).
func nodeToTree(n *goyaml.Node) *cfg.Tree {
	if n == nil {
		return cfg.NewNull()
	}
	switch n.Kind {
	case goyaml.DocumentNode:
		if len(n.Content) == 0 {
			return cfg.NewObject()
		}
		return nodeToTree(n.Content[0])
	case goyaml.MappingNode:
		obj := cfg.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			val := n.Content[i+1]
			obj.Set(key.Value, nodeToTree(val))
		}
		return obj
	case goyaml.SequenceNode:
		elems := make([]*cfg.Tree, len(n.Content))
		for i, c := range n.Content {
			elems[i] = nodeToTree(c)
		}
		return cfg.NewArray(elems...)
	case goyaml.AliasNode:
		return nodeToTree(n.Alias)
	case goyaml.ScalarNode:
		return scalarToTree(n)
	default:
		return cfg.NewNull()
	}
}

// scalarToTree interprets a scalar node's resolved tag, falling back
// to a string leaf for anything it doesn't recognise rather than
// guessing.
func scalarToTree(n *goyaml.Node) *cfg.Tree {
	switch n.Tag {
	case "!!null":
		return cfg.NewNull()
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return cfg.NewString(n.Value)
		}
		return cfg.NewBool(b)
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return cfg.NewString(n.Value)
		}
		return cfg.NewInt(i)
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return cfg.NewString(n.Value)
		}
		return cfg.NewFloat(f)
	default:
		return cfg.NewString(n.Value)
	}
}
