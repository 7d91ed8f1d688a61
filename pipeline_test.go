package config

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardo1317/liana-config/log"
)

type fakeStream struct {
	name string
	body string
}

func (s *fakeStream) Name() string      { return s.name }
func (s *fakeStream) Reader() io.Reader { return strings.NewReader(s.body) }
func (s *fakeStream) Close() error      { return nil }

// fakeProvider serves pre-canned content keyed by resource name.
type fakeProvider struct {
	key     string
	content map[string]string
}

func (p *fakeProvider) Keys() []string { return []string{p.key} }
func (p *fakeProvider) ValidateResource(identifier ResourceIdentifier) error {
	return ValidateResourceName(identifier)
}
func (p *fakeProvider) ResolveResource(identifier ResourceIdentifier) (ResourceStream, error) {
	body, ok := p.content[identifier.ResourceName]
	if !ok {
		return nil, newError(KindProvider, "no fixture for "+identifier.ResourceName, nil)
	}
	return &fakeStream{name: identifier.ResourceName, body: body}, nil
}

// fakeLoader parses a trivial "key=value" line format into a flat Tree.
type fakeLoader struct{ ext string }

func (l *fakeLoader) Keys() []string { return []string{l.ext} }
func (l *fakeLoader) ValidateResource(stream ResourceStream) error {
	return ValidateStream(stream)
}
func (l *fakeLoader) Load(stream ResourceStream) (*Tree, error) {
	fs, ok := stream.(*fakeStream)
	if !ok {
		return nil, errors.New("unexpected stream type")
	}
	root := NewObject()
	for _, line := range strings.Split(fs.body, "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		root.Set(parts[0], NewString(parts[1]))
	}
	return root, nil
}

func testRegistries() Registries {
	return Registries{
		Providers: NewStrategyRegistry([]ResourceProvider{
			&fakeProvider{key: "classpath", content: map[string]string{
				"application":     "name=base\nport=8080",
				"application-prod": "port=9090",
			}},
		}, nil),
		Loaders: NewStrategyRegistry([]ResourceLoader{
			&fakeLoader{ext: ""},
		}, nil),
	}
}

func TestPipelineExecuteMergesDefaultResources(t *testing.T) {
	loc, err := NewResourceLocationBuilder().Build()
	require.NoError(t, err)

	p := NewPipeline(testRegistries(), log.Nop())
	tree, err := p.Execute(loc, "prod")
	require.NoError(t, err)

	assert.Equal(t, "base", tree.Get("name").String)
	assert.Equal(t, "9090", tree.Get("port").String)
}

func TestResourceProcessorSkipsUnresolvableProviders(t *testing.T) {
	registries := Registries{
		Providers: NewStrategyRegistry([]ResourceProvider{}, nil),
		Loaders:   NewStrategyRegistry([]ResourceLoader{&fakeLoader{ext: ""}}, nil),
	}
	processor := NewResourceProcessor(registries, log.Nop())

	trees := processor.Process([]ResourceIdentifier{{ProviderKey: "classpath", ResourceName: "application"}})
	assert.Empty(t, trees)
}

func TestResourceProcessorSkipsBlankIdentifiers(t *testing.T) {
	processor := NewResourceProcessor(testRegistries(), log.Nop())
	trees := processor.Process([]ResourceIdentifier{{ProviderKey: "", ResourceName: ""}})
	assert.Empty(t, trees)
}

func TestExtensionOf(t *testing.T) {
	assert.Equal(t, "yaml", extensionOf("application.yaml"))
	assert.Equal(t, "", extensionOf("application"))
	assert.Equal(t, "", extensionOf("dir/application"))
}
