package config

import (
	"sort"
	"strings"
)

// Defaults from §6, used by the preparer when a ResourceLocation leaves
// the corresponding field blank.
const (
	DefaultProvider         = "classpath"
	DefaultProfileVariable  = "profile"
	DefaultProfileValue     = "default"
	DefaultProfileEnvVar    = "LIANA_PROFILE"
	DefaultBaseResourceName = "application"
	DefaultBasePattern      = "application-${profile}"
)

// ResourceLocation is the immutable description of what to load and
// how (§3). Its identity serves as the Manager's cache key, so two
// locations built from equal fields must compare equal.
type ResourceLocation struct {
	provider       string
	baseDirs       []string
	resourceNames  []string
	variables      map[string]string
	verbose        bool
	placeholder    PlaceholderSpec
}

// Provider returns the location's provider identifier, or "" if unset
// (the preparer applies DefaultProvider in that case).
func (l ResourceLocation) Provider() string { return l.provider }

// BaseDirs returns the ordered base directories.
func (l ResourceLocation) BaseDirs() []string { return append([]string{}, l.baseDirs...) }

// ResourceNames returns the ordered logical resource-name templates.
func (l ResourceLocation) ResourceNames() []string { return append([]string{}, l.resourceNames...) }

// Variables returns a defensive copy of the variable bindings.
func (l ResourceLocation) Variables() map[string]string {
	out := make(map[string]string, len(l.variables))
	for k, v := range l.variables {
		out[k] = v
	}
	return out
}

// Verbose reports the location's logging verbosity flag.
func (l ResourceLocation) Verbose() bool { return l.verbose }

// Placeholder returns the location's placeholder grammar.
func (l ResourceLocation) Placeholder() PlaceholderSpec { return l.placeholder }

// cacheKey renders a deterministic string encoding every field that
// participates in the location's equality/hash identity (§3), used as
// the Manager's LRU key. Field order is fixed and slice contents are
// sorted only where the spec treats them as a set rather than an
// ordered sequence — base dirs and resource names are ORDERED per
// spec, so they're joined as-is, while variables (a mapping) are
// sorted by key for a stable key.
func (l ResourceLocation) cacheKey() string {
	var b strings.Builder
	b.WriteString("provider=")
	b.WriteString(l.provider)
	b.WriteString("|bases=")
	b.WriteString(strings.Join(l.baseDirs, ","))
	b.WriteString("|names=")
	b.WriteString(strings.Join(l.resourceNames, ","))
	b.WriteString("|verbose=")
	if l.verbose {
		b.WriteString("1")
	} else {
		b.WriteString("0")
	}
	b.WriteString("|ph=")
	b.WriteString(l.placeholder.Prefix)
	b.WriteString(string(l.placeholder.Suffix))
	b.WriteString(l.placeholder.Delimiter)
	b.WriteRune(l.placeholder.Escape)
	b.WriteString("|vars=")
	keys := make([]string, 0, len(l.variables))
	for k := range l.variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(l.variables[k])
		b.WriteString(";")
	}
	return b.String()
}

// ResourceLocationBuilder accumulates state and freezes it into an
// immutable ResourceLocation on Build. Not safe for concurrent use by
// contract (§9): builders are single-threaded.
type ResourceLocationBuilder struct {
	provider      string
	baseDirs      *OrderedKeySet
	resourceNames *OrderedKeySet
	variables     *ValidatedKeyMap
	verbose       bool
	placeholder   PlaceholderSpec
	err           error
}

// NewResourceLocationBuilder starts a builder with the bundled
// placeholder defaults; override with WithPlaceholder if needed.
func NewResourceLocationBuilder() *ResourceLocationBuilder {
	return &ResourceLocationBuilder{
		baseDirs:      NewOrderedKeySet(),
		resourceNames: NewOrderedKeySet(),
		variables:     NewValidatedKeyMap(),
		placeholder:   DefaultPlaceholderSpec(),
	}
}

func (b *ResourceLocationBuilder) WithProvider(provider string) *ResourceLocationBuilder {
	b.provider = provider
	return b
}

func (b *ResourceLocationBuilder) WithBaseDir(dir string) *ResourceLocationBuilder {
	b.baseDirs.Add(dir)
	return b
}

func (b *ResourceLocationBuilder) WithBaseDirs(dirs ...string) *ResourceLocationBuilder {
	b.baseDirs.AddAll(dirs)
	return b
}

func (b *ResourceLocationBuilder) WithResourceName(name string) *ResourceLocationBuilder {
	b.resourceNames.Add(name)
	return b
}

func (b *ResourceLocationBuilder) WithResourceNames(names ...string) *ResourceLocationBuilder {
	b.resourceNames.AddAll(names)
	return b
}

// WithVariable validates key/value eagerly; a failure is remembered and
// surfaced from Build rather than panicking mid-chain.
func (b *ResourceLocationBuilder) WithVariable(key, value string) *ResourceLocationBuilder {
	if err := b.variables.Put(key, value); err != nil && b.err == nil {
		b.err = err
	}
	return b
}

func (b *ResourceLocationBuilder) WithVariables(vars map[string]string) *ResourceLocationBuilder {
	if err := b.variables.PutAll(vars); err != nil && b.err == nil {
		b.err = err
	}
	return b
}

func (b *ResourceLocationBuilder) WithVerbose(verbose bool) *ResourceLocationBuilder {
	b.verbose = verbose
	return b
}

func (b *ResourceLocationBuilder) WithPlaceholder(spec PlaceholderSpec) *ResourceLocationBuilder {
	b.placeholder = spec
	return b
}

// Build freezes the accumulated state into an immutable ResourceLocation,
// surfacing the first variable-validation failure encountered, or a
// KindInvalidPlaceholder error if the placeholder spec is malformed.
func (b *ResourceLocationBuilder) Build() (ResourceLocation, error) {
	if b.err != nil {
		return ResourceLocation{}, b.err
	}
	if err := b.placeholder.validate(); err != nil {
		return ResourceLocation{}, err
	}
	return ResourceLocation{
		provider:      b.provider,
		baseDirs:      b.baseDirs.Values(),
		resourceNames: b.resourceNames.Values(),
		variables:     b.variables.Snapshot(),
		verbose:       b.verbose,
		placeholder:   b.placeholder,
	}, nil
}

// ResourceIdentifier is the preparer's output: a concrete
// (provider, resourceName) pair (§3).
type ResourceIdentifier struct {
	ProviderKey  string
	ResourceName string
}
