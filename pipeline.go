package config

import (
	"fmt"

	"github.com/leonardo1317/liana-config/log"
)

// Registries bundles the provider and loader lookup tables the
// pipeline needs. Passed explicitly into the pipeline rather than kept
// as a package-level singleton, per §9's guidance to avoid a global
// process-wide registry.
type Registries struct {
	Providers *StrategyRegistry[ResourceProvider]
	Loaders   *StrategyRegistry[ResourceLoader]
}

// Pipeline orchestrates preparer -> providers -> loaders -> merger ->
// interpolator for a single ResourceLocation (§4.6). It is purely
// functional per call; no state survives between invocations (the
// cache lives one level up, in Manager).
type Pipeline struct {
	registries Registries
	logger     log.Logger
}

// NewPipeline builds a pipeline over the given provider/loader
// registries, logging through logger (log.Nop() if nil).
func NewPipeline(registries Registries, logger log.Logger) *Pipeline {
	if logger == nil {
		logger = log.Nop()
	}
	return &Pipeline{registries: registries, logger: logger}
}

// Execute runs the full §4.6 sequence for location and returns the
// merged, interpolated Tree ready to back a Configuration.
func (p *Pipeline) Execute(location ResourceLocation, profile string) (*Tree, error) {
	logger := p.logger
	if location.Verbose() {
		logger = logger.WithLevel(log.LevelDebug)
	} else {
		logger = logger.WithLevel(log.LevelWarn)
	}

	preparer, err := NewResourcePreparer(location, profile)
	if err != nil {
		return nil, err
	}
	identifiers, err := preparer.Prepare()
	if err != nil {
		return nil, err
	}
	logger.Debug(func() string { return fmt.Sprintf("prepared %d resource identifiers", len(identifiers)) })

	processor := NewResourceProcessor(p.registries, logger)
	trees := processor.Process(identifiers)

	merged := MergeTrees(trees)

	interpolated, err := InterpolateTree(merged, location.Placeholder(), location.Variables())
	if err != nil {
		return nil, err
	}
	return interpolated, nil
}

// ResourceProcessor runs the per-identifier resolve/open/parse sequence
// of §4.6.1, isolating each identifier's failure from the rest.
type ResourceProcessor struct {
	registries Registries
	logger     log.Logger
}

// NewResourceProcessor builds a processor over registries, logging
// through logger.
func NewResourceProcessor(registries Registries, logger log.Logger) *ResourceProcessor {
	if logger == nil {
		logger = log.Nop()
	}
	return &ResourceProcessor{registries: registries, logger: logger}
}

// Process resolves, opens, and parses every identifier, skipping (and
// logging) any that fail at any step. Returns the surviving parsed
// trees in identifier order.
func (p *ResourceProcessor) Process(identifiers []ResourceIdentifier) []*Tree {
	var trees []*Tree
	var failed int

	for _, id := range identifiers {
		if isBlank(id.ProviderKey) || isBlank(id.ResourceName) {
			continue
		}

		provider, ok := p.registries.Providers.Lookup(id.ProviderKey)
		if !ok {
			p.logger.Error(func() string {
				return fmt.Sprintf("no provider registered for key %q (resource %q)", id.ProviderKey, id.ResourceName)
			})
			failed++
			continue
		}

		if verr := provider.ValidateResource(id); verr != nil {
			p.logger.Error(func() string { return fmt.Sprintf("resource %q rejected by provider: %v", id.ResourceName, verr) })
			failed++
			continue
		}

		stream, rerr := provider.ResolveResource(id)
		if rerr != nil {
			p.logger.Error(func() string { return fmt.Sprintf("provider %q failed to open %q: %v", id.ProviderKey, id.ResourceName, rerr) })
			failed++
			continue
		}

		tree, perr := p.loadAndClose(stream)
		if perr != nil {
			p.logger.Error(func() string { return fmt.Sprintf("failed to load %q: %v", id.ResourceName, perr) })
			failed++
			continue
		}
		trees = append(trees, tree)
	}

	p.logger.Info(func() string {
		return fmt.Sprintf("loaded=%d, failed=%d (total=%d)", len(trees), failed, len(identifiers))
	})
	return trees
}

// loadAndClose resolves a loader by the stream's file extension and
// parses it, guaranteeing the stream is closed on every exit path.
func (p *ResourceProcessor) loadAndClose(stream ResourceStream) (_ *Tree, err error) {
	defer func() {
		if cerr := stream.Close(); cerr != nil && err == nil {
			err = newError(KindLoader, "closing stream for "+stream.Name(), cerr)
		}
	}()

	loader, ok := p.registries.Loaders.Lookup(extensionOf(stream.Name()))
	if !ok {
		return nil, newError(KindLoader, "no loader registered for extension of "+stream.Name(), nil)
	}
	if verr := loader.ValidateResource(stream); verr != nil {
		return nil, verr
	}
	return loader.Load(stream)
}

// extensionOf returns the file extension (without the dot) of name as
// written, or "" if it has none; the loader registry case-folds it on
// lookup.
func extensionOf(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		switch name[i] {
		case '.':
			return name[i+1:]
		case '/':
			return ""
		}
	}
	return ""
}
