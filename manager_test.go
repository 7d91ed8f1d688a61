package config

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardo1317/liana-config/log"
)

// countingProvider counts how many times ResolveResource actually runs,
// to verify the manager computes each cache key at most once.
type countingProvider struct {
	calls   int32
	content string
}

func (p *countingProvider) Keys() []string { return []string{"classpath"} }
func (p *countingProvider) ValidateResource(identifier ResourceIdentifier) error {
	return ValidateResourceName(identifier)
}
func (p *countingProvider) ResolveResource(identifier ResourceIdentifier) (ResourceStream, error) {
	atomic.AddInt32(&p.calls, 1)
	return &fakeStream{name: identifier.ResourceName, body: p.content}, nil
}

func TestConfigurationManagerCachesByLocation(t *testing.T) {
	provider := &countingProvider{content: "name=cached"}
	registries := Registries{
		Providers: NewStrategyRegistry([]ResourceProvider{provider}, nil),
		Loaders:   NewStrategyRegistry([]ResourceLoader{&fakeLoader{ext: ""}}, nil),
	}
	manager := NewConfigurationManager(registries, "default", log.Nop())

	loc, err := NewResourceLocationBuilder().WithResourceName("application").Build()
	require.NoError(t, err)

	_, err = manager.Load(loc)
	require.NoError(t, err)
	_, err = manager.Load(loc)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))
}

func TestConfigurationManagerInvalidateForcesRecompute(t *testing.T) {
	provider := &countingProvider{content: "name=cached"}
	registries := Registries{
		Providers: NewStrategyRegistry([]ResourceProvider{provider}, nil),
		Loaders:   NewStrategyRegistry([]ResourceLoader{&fakeLoader{ext: ""}}, nil),
	}
	manager := NewConfigurationManager(registries, "default", log.Nop())

	loc, err := NewResourceLocationBuilder().WithResourceName("application").Build()
	require.NoError(t, err)

	_, err = manager.Load(loc)
	require.NoError(t, err)
	manager.Invalidate(loc)
	_, err = manager.Load(loc)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&provider.calls))
}

func TestConfigurationManagerConcurrentLoadsCollapseToOneComputation(t *testing.T) {
	provider := &countingProvider{content: "name=cached"}
	registries := Registries{
		Providers: NewStrategyRegistry([]ResourceProvider{provider}, nil),
		Loaders:   NewStrategyRegistry([]ResourceLoader{&fakeLoader{ext: ""}}, nil),
	}
	manager := NewConfigurationManager(registries, "default", log.Nop())

	loc, err := NewResourceLocationBuilder().WithResourceName("application").Build()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = manager.Load(loc)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&provider.calls))
}
