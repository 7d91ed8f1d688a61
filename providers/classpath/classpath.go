// Package classpath implements the bundled "classpath" ResourceProvider
// (§6): Go has no classloader, so this approximates the host's
// classpath lookup the way Spring Boot's classpath: convention does —
// searching an ordered list of directories relative to the process
// working directory.
package classpath

import (
	"os"
	"path/filepath"

	cfg "github.com/leonardo1317/liana-config"
	"github.com/leonardo1317/liana-config/providers"
)

// DefaultBaseDirs is the bundled provider's default search path, per
// §6: the working directory itself, then a "config" subdirectory.
var DefaultBaseDirs = []string{"", "config"}

// extensionFallbacks are attempted, in order, for a resource name with
// no extension of its own.
var extensionFallbacks = []string{"properties", "yaml", "yml"}

// Provider is the bundled classpath ResourceProvider.
type Provider struct {
	baseDirs []string
}

// New builds a classpath provider searching baseDirs in order, or
// DefaultBaseDirs if none are given.
func New(baseDirs ...string) *Provider {
	if len(baseDirs) == 0 {
		baseDirs = DefaultBaseDirs
	}
	return &Provider{baseDirs: baseDirs}
}

func (p *Provider) Keys() []string { return []string{"classpath"} }

func (p *Provider) ValidateResource(identifier cfg.ResourceIdentifier) error {
	return cfg.ValidateResourceName(identifier)
}

// ResolveResource searches each base directory in order for the
// resource name, trying the bundled extension fallbacks when the name
// has none of its own. The first candidate that exists wins.
func (p *Provider) ResolveResource(identifier cfg.ResourceIdentifier) (cfg.ResourceStream, error) {
	if err := p.ValidateResource(identifier); err != nil {
		return nil, err
	}

	for _, candidate := range p.candidates(identifier.ResourceName) {
		for _, base := range p.baseDirs {
			path := filepath.Join(base, candidate)
			f, err := os.Open(path)
			if err == nil {
				return providers.NewFileStream(candidate, f), nil
			}
		}
	}
	return nil, cfg.NewProviderError("classpath resource not found: " + identifier.ResourceName)
}

// candidates returns the resource name itself, then — if it has no
// extension — the name with each bundled fallback extension appended.
func (p *Provider) candidates(name string) []string {
	if filepath.Ext(name) != "" {
		return []string{name}
	}
	out := make([]string, 0, len(extensionFallbacks)+1)
	out = append(out, name)
	for _, ext := range extensionFallbacks {
		out = append(out, name+"."+ext)
	}
	return out
}
