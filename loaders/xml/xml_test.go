package xml

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringStream struct {
	name string
	body string
}

func (s stringStream) Name() string      { return s.name }
func (s stringStream) Reader() io.Reader { return strings.NewReader(s.body) }
func (s stringStream) Close() error      { return nil }

func TestLoadAttributesBecomeAtPrefixedLeaves(t *testing.T) {
	doc := `<server host="localhost" port="8080"></server>`
	tree, err := New().Load(stringStream{name: "a.xml", body: doc})
	require.NoError(t, err)

	assert.Equal(t, "localhost", tree.Get("@host").String)
	assert.Equal(t, "8080", tree.Get("@port").String)
}

func TestLoadRepeatedChildElementsBecomeArray(t *testing.T) {
	doc := `<config><server>a</server><server>b</server></config>`
	tree, err := New().Load(stringStream{name: "a.xml", body: doc})
	require.NoError(t, err)

	require.True(t, tree.Get("server").IsArray())
	assert.Equal(t, "a", tree.Get("server").Array[0].String)
	assert.Equal(t, "b", tree.Get("server").Array[1].String)
}

func TestLoadSingleChildElementIsNotArray(t *testing.T) {
	doc := `<config><name>liana</name></config>`
	tree, err := New().Load(stringStream{name: "a.xml", body: doc})
	require.NoError(t, err)

	assert.Equal(t, "liana", tree.Get("name").String)
}

func TestLoadTextLeafElement(t *testing.T) {
	doc := `<name>  liana  </name>`
	tree, err := New().Load(stringStream{name: "a.xml", body: doc})
	require.NoError(t, err)

	assert.Equal(t, "liana", tree.String)
}

func TestLoadMixedAttributesAndChildren(t *testing.T) {
	doc := `<server env="prod"><port>8080</port></server>`
	tree, err := New().Load(stringStream{name: "a.xml", body: doc})
	require.NoError(t, err)

	assert.Equal(t, "prod", tree.Get("@env").String)
	assert.Equal(t, "8080", tree.Get("port").String)
}

func TestLoadRejectsMalformedXML(t *testing.T) {
	_, err := New().Load(stringStream{name: "bad.xml", body: `<a><b></a>`})
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{"xml"}, New().Keys())
}
