package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// embeddedProviderPattern recognises a resource name carrying its own
// provider prefix, per §4.4 rule 6: `providerKey:logicalName`.
var embeddedProviderPattern = regexp.MustCompile(`^(\w+):(.+)$`)

// ResourceNameValidator implements the §4.4 safety validator: a
// resource name is safe iff non-blank, contains no ".." traversal
// segment once backslashes are normalised to forward slashes, and —
// resolved against every configured absolute base directory — still
// starts with that base.
type ResourceNameValidator struct {
	absBases []string
}

// NewResourceNameValidator builds a validator from a ResourceLocation's
// base directories, resolving each to an absolute, cleaned path. With
// no base directories configured, the current working directory is
// used as the sole base.
func NewResourceNameValidator(baseDirs []string) *ResourceNameValidator {
	v := &ResourceNameValidator{}
	for _, d := range baseDirs {
		if abs, err := filepath.Abs(d); err == nil {
			v.absBases = append(v.absBases, filepath.Clean(abs))
		}
	}
	if len(v.absBases) == 0 {
		if abs, err := filepath.Abs("."); err == nil {
			v.absBases = append(v.absBases, filepath.Clean(abs))
		}
	}
	return v
}

// Safe reports whether name passes the §4.4 rules.
func (v *ResourceNameValidator) Safe(name string) bool {
	if isBlank(name) {
		return false
	}
	normalized := strings.ReplaceAll(name, "\\", "/")
	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return false
		}
	}
	for _, base := range v.absBases {
		resolved := filepath.Clean(filepath.Join(base, normalized))
		if resolved != base && !strings.HasPrefix(resolved, base+string(filepath.Separator)) {
			return false
		}
	}
	return true
}

// ResourcePreparer expands a ResourceLocation into an ordered list of
// ResourceIdentifier, per §4.4.
type ResourcePreparer struct {
	location  ResourceLocation
	profile   string
	validator *ResourceNameValidator
	engine    *PlaceholderEngine
}

// NewResourcePreparer builds a preparer for location. profile is the
// optional externally supplied profile (rule 2); pass "" to fall back
// to the environment variable and then the default.
func NewResourcePreparer(location ResourceLocation, profile string) (*ResourcePreparer, error) {
	engine, err := NewPlaceholderEngine(location.Placeholder())
	if err != nil {
		return nil, err
	}
	return &ResourcePreparer{
		location:  location,
		profile:   profile,
		validator: NewResourceNameValidator(location.BaseDirs()),
		engine:    engine,
	}, nil
}

// Prepare runs rules 1-6 of §4.4 and returns the ordered identifier
// list.
func (p *ResourcePreparer) Prepare() ([]ResourceIdentifier, error) {
	provider := p.location.Provider()
	if isBlank(provider) {
		provider = DefaultProvider
	}

	profile := p.profile
	if isBlank(profile) {
		if v, ok := os.LookupEnv(DefaultProfileEnvVar); ok && !isBlank(v) {
			profile = v
		} else {
			profile = DefaultProfileValue
		}
	}

	variables := p.location.Variables()
	if provider == DefaultProvider && len(variables) == 0 {
		variables = map[string]string{DefaultProfileVariable: profile}
	}
	source := NewMapPropertySource(variables)

	declared := p.location.ResourceNames()
	if provider == DefaultProvider && len(declared) == 0 {
		return p.prepareDefaultNames(provider, source)
	}

	var result []ResourceIdentifier
	for _, tmpl := range declared {
		resolved, ok, err := p.engine.Resolve(tmpl, []PropertySource{source})
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if id, ok := p.toIdentifier(resolved, provider); ok {
			result = append(result, id)
		}
	}
	return result, nil
}

// prepareDefaultNames implements §4.4 rule 4: the classpath default of
// "application" plus "application-${profile}" if it fully resolves.
func (p *ResourcePreparer) prepareDefaultNames(provider string, source PropertySource) ([]ResourceIdentifier, error) {
	var result []ResourceIdentifier
	if id, ok := p.toIdentifier(DefaultBaseResourceName, provider); ok {
		result = append(result, id)
	}
	resolved, ok, err := p.engine.Resolve(DefaultBasePattern, []PropertySource{source})
	if err != nil {
		return nil, err
	}
	if ok {
		if id, ok := p.toIdentifier(resolved, provider); ok {
			result = append(result, id)
		}
	}
	return result, nil
}

// toIdentifier splits off an embedded provider prefix (rule 6), then
// safety-validates the remaining resource name (rule 5's last step).
// Returns ok=false if the name is unsafe.
func (p *ResourcePreparer) toIdentifier(resolved, effectiveProvider string) (ResourceIdentifier, bool) {
	providerKey, name := effectiveProvider, resolved
	if m := embeddedProviderPattern.FindStringSubmatch(resolved); m != nil {
		providerKey, name = m[1], m[2]
	}
	if !p.validator.Safe(name) {
		return ResourceIdentifier{}, false
	}
	return ResourceIdentifier{ProviderKey: providerKey, ResourceName: name}, true
}
