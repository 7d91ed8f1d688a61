// Package json implements the ".json" ResourceLoader on the standard
// library's encoding/json: json.Decoder.Token walks a document as a
// token stream, which is the only way to observe object key order
// (json.Unmarshal into map[string]any discards it), so there is no
// ecosystem library in the corpus to reach for here instead of stdlib.
package json

import (
	"encoding/json"
	"io"

	cfg "github.com/leonardo1317/liana-config"
)

// Loader parses ".json" resources.
type Loader struct{}

// New builds a JSON loader.
func New() *Loader { return &Loader{} }

func (l *Loader) Keys() []string { return []string{"json"} }

func (l *Loader) ValidateResource(stream cfg.ResourceStream) error {
	return cfg.ValidateStream(stream)
}

// Load decodes the full JSON document via a token stream into the
// canonical Tree, preserving object key order.
func (l *Loader) Load(stream cfg.ResourceStream) (*cfg.Tree, error) {
	dec := json.NewDecoder(stream.Reader())
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return cfg.NewObject(), nil
	}
	if err != nil {
		return nil, cfg.NewLoaderError("parsing " + stream.Name() + ": " + err.Error())
	}

	tree, err := decodeValue(dec, tok)
	if err != nil {
		return nil, cfg.NewLoaderError("parsing " + stream.Name() + ": " + err.Error())
	}
	return tree, nil
}

// decodeValue converts the token already read (tok) plus, for
// composite kinds, the remainder read from dec, into a Tree.
func decodeValue(dec *json.Decoder, tok json.Token) (*cfg.Tree, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return cfg.NewNull(), nil
		}
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return cfg.NewInt(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return cfg.NewFloat(f), nil
	case string:
		return cfg.NewString(v), nil
	case bool:
		return cfg.NewBool(v), nil
	case nil:
		return cfg.NewNull(), nil
	default:
		return cfg.NewNull(), nil
	}
}

// decodeObject reads key/value token pairs until the matching '}',
// preserving the order keys are encountered in the source document.
func decodeObject(dec *json.Decoder) (*cfg.Tree, error) {
	obj := cfg.NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		value, err := decodeValue(dec, valTok)
		if err != nil {
			return nil, err
		}
		obj.Set(key, value)
	}
	// consume the closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

// decodeArray reads element tokens until the matching ']'.
func decodeArray(dec *json.Decoder) (*cfg.Tree, error) {
	var elems []*cfg.Tree
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		value, err := decodeValue(dec, tok)
		if err != nil {
			return nil, err
		}
		elems = append(elems, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return cfg.NewArray(elems...), nil
}
