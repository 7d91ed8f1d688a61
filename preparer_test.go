package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceNameValidatorRejectsTraversal(t *testing.T) {
	v := NewResourceNameValidator([]string{t.TempDir()})
	assert.False(t, v.Safe("../secrets.yaml"))
	assert.False(t, v.Safe("a/../../b.yaml"))
	assert.False(t, v.Safe(""))
}

func TestResourceNameValidatorAcceptsContainedNames(t *testing.T) {
	v := NewResourceNameValidator([]string{t.TempDir()})
	assert.True(t, v.Safe("application.yaml"))
	assert.True(t, v.Safe("nested/application.yaml"))
}

func TestResourceNameValidatorNormalisesBackslashes(t *testing.T) {
	v := NewResourceNameValidator([]string{t.TempDir()})
	assert.False(t, v.Safe(`..\secrets.yaml`))
}

func TestResourcePreparerDefaultNamesForClasspath(t *testing.T) {
	loc, err := NewResourceLocationBuilder().Build()
	require.NoError(t, err)

	preparer, err := NewResourcePreparer(loc, "prod")
	require.NoError(t, err)

	ids, err := preparer.Prepare()
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, "classpath", ids[0].ProviderKey)
	assert.Equal(t, "application", ids[0].ResourceName)
	assert.Equal(t, "application-prod", ids[1].ResourceName)
}

func TestResourcePreparerFallsBackToEnvProfile(t *testing.T) {
	t.Setenv(DefaultProfileEnvVar, "from-env")
	loc, err := NewResourceLocationBuilder().Build()
	require.NoError(t, err)

	preparer, err := NewResourcePreparer(loc, "")
	require.NoError(t, err)

	ids, err := preparer.Prepare()
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, "application-from-env", ids[1].ResourceName)
}

func TestResourcePreparerDeclaredNamesDropUnresolved(t *testing.T) {
	loc, err := NewResourceLocationBuilder().
		WithResourceNames("application", "override-${missing}").
		WithVariable("x", "y").
		Build()
	require.NoError(t, err)

	preparer, err := NewResourcePreparer(loc, "default")
	require.NoError(t, err)

	ids, err := preparer.Prepare()
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, "application", ids[0].ResourceName)
}

func TestResourcePreparerEmbeddedProviderPrefix(t *testing.T) {
	loc, err := NewResourceLocationBuilder().
		WithResourceNames("file:overrides.yaml").
		WithVariable("x", "y").
		Build()
	require.NoError(t, err)

	preparer, err := NewResourcePreparer(loc, "default")
	require.NoError(t, err)

	ids, err := preparer.Prepare()
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, "file", ids[0].ProviderKey)
	assert.Equal(t, "overrides.yaml", ids[0].ResourceName)
}

func TestResourcePreparerDropsUnsafeNames(t *testing.T) {
	loc, err := NewResourceLocationBuilder().
		WithBaseDir(t.TempDir()).
		WithResourceNames("../escape.yaml").
		WithVariable("x", "y").
		Build()
	require.NoError(t, err)

	preparer, err := NewResourcePreparer(loc, "default")
	require.NoError(t, err)

	ids, err := preparer.Prepare()
	require.NoError(t, err)
	assert.Empty(t, ids)
}
