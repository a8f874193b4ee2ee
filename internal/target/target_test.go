package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderPullsDependencies(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	order, err := g.Order(Deploy)
	require.NoError(t, err)
	assert.Equal(t, []string{Resolve, Ext, Deploy}, order)
}

func TestOrderDocsStandsAlone(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	order, err := g.Order(Docs)
	require.NoError(t, err)
	assert.Equal(t, []string{Docs}, order)
}

func TestOrderDeterministic(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	first, err := g.Order(Docs, Deploy)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := g.Order(Deploy, Docs)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestOrderUnknownTarget(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	_, err = g.Order("firmware")
	assert.ErrorContains(t, err, `unknown target "firmware"`)
}
