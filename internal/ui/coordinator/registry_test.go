package coordinator

import (
	"context"
	"testing"

	"github.com/bnema/gamedesk/internal/application/port"
	"github.com/bnema/gamedesk/internal/infrastructure/headless"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceRegistry(t *testing.T) {
	s, err := headless.New().CreateSurface(context.Background(), port.SurfaceOptions{})
	require.NoError(t, err)

	r := NewSurfaceRegistry()
	assert.False(t, r.Contains(s.ID()))

	r.Put(s)
	r.Put(nil)
	assert.True(t, r.Contains(s.ID()))
	assert.Equal(t, 1, r.Len())

	got, ok := r.Take(s.ID())
	require.True(t, ok)
	assert.Equal(t, s, got)
	assert.False(t, r.Contains(s.ID()))

	_, ok = r.Take(s.ID())
	assert.False(t, ok)

	r.Put(s)
	assert.True(t, r.Remove(s.ID()))
	assert.False(t, r.Remove(s.ID()))
}
