// Package file implements the "file" ResourceProvider (§SPEC_FULL.md
// section D): reads resources from a single explicit base directory,
// with no extension-fallback guessing — the resource name is the exact
// file name to open.
package file

import (
	"os"
	"path/filepath"

	cfg "github.com/leonardo1317/liana-config"
	"github.com/leonardo1317/liana-config/providers"
)

// Provider is the plain filesystem ResourceProvider: one base
// directory, exact file names, no classpath-style extension guessing.
type Provider struct {
	baseDir string
}

// New builds a file provider rooted at baseDir. An empty baseDir means
// the process working directory.
func New(baseDir string) *Provider {
	return &Provider{baseDir: baseDir}
}

func (p *Provider) Keys() []string { return []string{"file"} }

func (p *Provider) ValidateResource(identifier cfg.ResourceIdentifier) error {
	return cfg.ValidateResourceName(identifier)
}

// ResolveResource opens identifier.ResourceName under the provider's
// base directory.
func (p *Provider) ResolveResource(identifier cfg.ResourceIdentifier) (cfg.ResourceStream, error) {
	if err := p.ValidateResource(identifier); err != nil {
		return nil, err
	}

	path := identifier.ResourceName
	if p.baseDir != "" {
		path = filepath.Join(p.baseDir, identifier.ResourceName)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, cfg.NewProviderError("file provider could not open " + path + ": " + err.Error())
	}
	return providers.NewFileStream(identifier.ResourceName, f), nil
}
