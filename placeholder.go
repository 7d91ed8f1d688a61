package config

import "strings"

// PlaceholderSpec describes the placeholder grammar: prefix, suffix,
// and delimiter strings (all non-blank) plus a single escape rune. A
// placeholder expression is `prefix key [delimiter default] suffix`.
type PlaceholderSpec struct {
	Prefix    string
	Suffix    string
	Delimiter string
	Escape    rune
}

// DefaultPlaceholderSpec matches §6's bundled defaults: ${key:default}
// with \ as the escape character.
func DefaultPlaceholderSpec() PlaceholderSpec {
	return PlaceholderSpec{Prefix: "${", Suffix: "}", Delimiter: ":", Escape: '\\'}
}

func (s PlaceholderSpec) validate() error {
	if isBlank(s.Prefix) || isBlank(s.Suffix) || isBlank(s.Delimiter) {
		return newError(KindInvalidPlaceholder, "prefix, suffix and delimiter must all be non-blank", nil)
	}
	if s.Escape == 0 {
		return newError(KindInvalidPlaceholder, "escape character must be set", nil)
	}
	return nil
}

// PlaceholderEngine implements §4.2: a recursive, escape-aware,
// default-value-aware resolver with cycle detection and all-or-nothing
// semantics. It never returns a partially expanded string: Resolve
// returns ok=false if any placeholder in the template (including ones
// nested inside resolved values) could not be resolved.
type PlaceholderEngine struct {
	spec PlaceholderSpec
}

// NewPlaceholderEngine validates spec and builds an engine for it.
func NewPlaceholderEngine(spec PlaceholderSpec) (*PlaceholderEngine, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	return &PlaceholderEngine{spec: spec}, nil
}

// resolution carries the per-call state threaded through recursive
// expansion: the ordered sources to query, the set of keys currently
// being resolved on the recursion path (cycle detection), and the set
// of keys that could not be resolved anywhere in the call tree
// (all-or-nothing: a single miss fails the whole Resolve).
type resolution struct {
	sources    []PropertySource
	resolving  map[string]bool
	unresolved map[string]bool
}

// Resolve expands every placeholder in template. ok is false if any
// placeholder (at any recursion depth) could not be resolved; err is
// non-nil only for a cycle (§7 InvalidPlaceholder); a malformed spec is
// rejected earlier, by NewPlaceholderEngine.
// adHoc sources are consulted after the ordered sources list, as the
// spec's "optional ad-hoc PropertySources" parameter.
func (e *PlaceholderEngine) Resolve(template string, sources []PropertySource, adHoc ...PropertySource) (string, bool, error) {
	r := &resolution{
		sources:    append(append([]PropertySource{}, sources...), adHoc...),
		resolving:  make(map[string]bool),
		unresolved: make(map[string]bool),
	}
	out, err := e.expand(template, r)
	if err != nil {
		return "", false, err
	}
	if len(r.unresolved) > 0 {
		return "", false, nil
	}
	return out, true, nil
}

// expand performs the single left-to-right scan described in §4.2:
// an output buffer plus a stack of offsets marking open placeholder
// starts, so nested placeholders ${a${b}} resolve inside-out.
func (e *PlaceholderEngine) expand(s string, r *resolution) (string, error) {
	if s == "" {
		return "", nil
	}
	prefix, suffix := []rune(e.spec.Prefix), []rune(e.spec.Suffix)
	runes := []rune(s)
	n := len(runes)
	out := make([]rune, 0, n)
	var stack []int

	matches := func(at int, token []rune) bool {
		if at+len(token) > n {
			return false
		}
		for i, c := range token {
			if runes[at+i] != c {
				return false
			}
		}
		return true
	}

	i := 0
	for i < n {
		if matches(i, prefix) {
			if len(out) > 0 && out[len(out)-1] == e.spec.Escape {
				out = out[:len(out)-1]
				out = append(out, prefix...)
				i += len(prefix)
				continue
			}
			stack = append(stack, len(out))
			out = append(out, prefix...)
			i += len(prefix)
			continue
		}
		if matches(i, suffix) && len(stack) > 0 {
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			content := string(out[start+len(prefix):])
			out = out[:start]

			resolved, ok, err := e.resolveBody(content, r)
			if err != nil {
				return "", err
			}
			if ok {
				out = append(out, []rune(resolved)...)
			} else {
				out = append(out, prefix...)
				out = append(out, []rune(content)...)
				out = append(out, suffix...)
			}
			i += len(suffix)
			continue
		}
		out = append(out, runes[i])
		i++
	}
	return string(out), nil
}

// resolveBody handles the content between a matched prefix/suffix pair.
// By the time this runs, any placeholders nested inside content have
// already been expanded (or re-emitted literally) by the scan in
// expand, so content is a flat "key" or "key<delimiter>default" string.
func (e *PlaceholderEngine) resolveBody(content string, r *resolution) (string, bool, error) {
	key, def, hasDefault := splitOnce(content, e.spec.Delimiter)
	if isBlank(key) {
		// A blank key can never resolve; fall through to the default,
		// or record unresolved.
		return e.fallback(key, def, hasDefault, r)
	}

	if r.resolving[key] {
		return "", false, newError(KindInvalidPlaceholder, "cycle detected while resolving key "+key, nil)
	}

	if value, found := chainSources(key, r.sources...); found {
		r.resolving[key] = true
		expanded, err := e.expand(value, r)
		delete(r.resolving, key)
		if err != nil {
			return "", false, err
		}
		return expanded, true, nil
	}

	return e.fallback(key, def, hasDefault, r)
}

// fallback expands the default value when the key itself couldn't be
// resolved, or records the key as unresolved.
func (e *PlaceholderEngine) fallback(key, def string, hasDefault bool, r *resolution) (string, bool, error) {
	if hasDefault {
		expanded, err := e.expand(def, r)
		if err != nil {
			return "", false, err
		}
		return expanded, true, nil
	}
	r.unresolved[key] = true
	return "", false, nil
}

// splitOnce splits s on the first occurrence of delim, reporting
// whether delim was present at all.
func splitOnce(s, delim string) (before, after string, found bool) {
	idx := strings.Index(s, delim)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+len(delim):], true
}
