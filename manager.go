package config

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/leonardo1317/liana-config/log"
)

// cachedResult is what the manager's LRU stores: either the built
// Configuration or the error Execute returned, so a location that
// fails to load once doesn't get silently retried into a stale empty
// Configuration on the next Load.
type cachedResult struct {
	configuration *Configuration
	err           error
}

// defaultCacheSize is generous rather than tight: §4.10 specifies no
// eviction, TTL, or refresh for the life of a Manager, so this is a
// safety valve against unbounded growth rather than a behavioural
// eviction policy callers should rely on.
const defaultCacheSize = 4096

// ConfigurationManager is the public entry point (§4.10): a thin
// facade over the Pipeline that memoises results by ResourceLocation
// identity, guaranteeing at-most-one concurrent computation per key.
type ConfigurationManager struct {
	pipeline *Pipeline
	profile  string

	cache *lru.Cache[string, cachedResult]
	group singleflight.Group
}

// NewConfigurationManager builds a manager over the given provider and
// loader registries. profile, if non-empty, is used as the externally
// supplied profile (§4.4 rule 2) for every Load call; leave empty to
// fall back to LIANA_PROFILE / "default".
func NewConfigurationManager(registries Registries, profile string, logger log.Logger) *ConfigurationManager {
	cache, _ := lru.New[string, cachedResult](defaultCacheSize)
	return &ConfigurationManager{
		pipeline: NewPipeline(registries, logger),
		profile:  profile,
		cache:    cache,
	}
}

// Load resolves location to a Configuration, consulting the cache
// first. On a cache miss, Pipeline.Execute runs once per key even
// under concurrent callers (golang.org/x/sync/singleflight.Group.Do),
// and every caller waiting on that key observes the same result.
func (m *ConfigurationManager) Load(location ResourceLocation) (*Configuration, error) {
	key := location.cacheKey()

	if result, ok := m.cache.Get(key); ok {
		return result.configuration, result.err
	}

	v, err, _ := m.group.Do(key, func() (any, error) {
		if result, ok := m.cache.Get(key); ok {
			return result, nil
		}
		tree, perr := m.pipeline.Execute(location, m.profile)
		result := cachedResult{err: perr}
		if perr == nil {
			result.configuration = NewConfiguration(tree)
		}
		m.cache.Add(key, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	result := v.(cachedResult)
	return result.configuration, result.err
}

// Invalidate drops location's cached entry, if any. Not part of the
// spec's public contract (the manager has no reload/refresh surface)
// but useful for tests that build multiple Configurations over
// different on-disk fixtures sharing a location's identity.
func (m *ConfigurationManager) Invalidate(location ResourceLocation) {
	m.cache.Remove(location.cacheKey())
}
