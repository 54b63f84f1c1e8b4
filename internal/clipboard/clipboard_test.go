package clipboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClipboard(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("first")

	text, err := m.ReadText(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", text)

	require.NoError(t, m.WriteText(ctx, "second"))
	text, err = m.ReadText(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", text)
}

func TestMemoryClipboardErrors(t *testing.T) {
	m := NewMemory("x")
	m.Err = errors.New("denied")
	_, err := m.ReadText(context.Background())
	assert.EqualError(t, err, "denied")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewMemory("y").ReadText(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, NewMemory("").WriteText(ctx, "z"), context.Canceled)
}

func TestNewInternal(t *testing.T) {
	_, ok := New(false).(*Memory)
	assert.True(t, ok)
}
