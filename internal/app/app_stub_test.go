//go:build !ebiten

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandfall/internal/sims/sand"
)

func TestHeadlessGame(t *testing.T) {
	w, err := sand.New(12, 7)
	require.NoError(t, err)
	g := New(NewSession(w, 1, nil), 3, 100)

	assert.ErrorIs(t, g.Update(), ErrNoGUI)
	gw, gh := g.Layout(640, 480)
	assert.Equal(t, 12, gw)
	assert.Equal(t, 7, gh)
}
