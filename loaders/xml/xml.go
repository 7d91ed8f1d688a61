// Package xml implements the ".xml" ResourceLoader on the standard
// library's encoding/xml, the only decoder in the corpus that walks an
// XML token stream in document order; there is no ecosystem XML
// library among the examples to prefer over it. Attributes become
// "@"-prefixed string leaves alongside child elements, and an element
// repeated as a sibling collapses into an array, matching the decided
// policy for the one format the spec leaves silent on XML shape.
package xml

import (
	"encoding/xml"
	"io"
	"strings"

	cfg "github.com/leonardo1317/liana-config"
)

// Loader parses ".xml" resources.
type Loader struct{}

// New builds an XML loader.
func New() *Loader { return &Loader{} }

func (l *Loader) Keys() []string { return []string{"xml"} }

func (l *Loader) ValidateResource(stream cfg.ResourceStream) error {
	return cfg.ValidateStream(stream)
}

// Load decodes the full XML document; the document root element
// itself becomes the returned Tree's top-level object.
func (l *Loader) Load(stream cfg.ResourceStream) (*cfg.Tree, error) {
	dec := xml.NewDecoder(stream.Reader())

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return cfg.NewObject(), nil
		}
		if err != nil {
			return nil, cfg.NewLoaderError("parsing " + stream.Name() + ": " + err.Error())
		}
		if start, ok := tok.(xml.StartElement); ok {
			tree, err := decodeElement(dec, start)
			if err != nil {
				return nil, cfg.NewLoaderError("parsing " + stream.Name() + ": " + err.Error())
			}
			return tree, nil
		}
	}
}

// decodeElement consumes tokens up to and including start's matching
// EndElement, returning the element's content as a Tree: a string leaf
// if it has neither attributes nor child elements, otherwise an object
// with "@attr" leaves plus one entry per distinct child tag (an array
// if the tag repeats).
func decodeElement(dec *xml.Decoder, start xml.StartElement) (*cfg.Tree, error) {
	obj := cfg.NewObject()
	for _, attr := range start.Attr {
		obj.Set("@"+attr.Name.Local, cfg.NewString(attr.Value))
	}

	var text strings.Builder
	hasChildren := false

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			hasChildren = true
			child, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}
			appendChild(obj, t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if !hasChildren && len(start.Attr) == 0 {
				return cfg.NewString(strings.TrimSpace(text.String())), nil
			}
			if trimmed := strings.TrimSpace(text.String()); trimmed != "" {
				obj.Set("#text", cfg.NewString(trimmed))
			}
			return obj, nil
		}
	}
}

// appendChild sets obj[tag] to child, or — if tag already has an
// entry — upgrades it (or appends to it) as an array, so repeated
// sibling elements never silently overwrite one another.
func appendChild(obj *cfg.Tree, tag string, child *cfg.Tree) {
	existing := obj.Get(tag)
	switch {
	case existing == nil:
		obj.Set(tag, child)
	case existing.IsArray():
		existing.Array = append(existing.Array, child)
	default:
		obj.Set(tag, cfg.NewArray(existing, child))
	}
}
