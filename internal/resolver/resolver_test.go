package resolver_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragomit/hsmgen/internal/parser"
	"github.com/dragomit/hsmgen/internal/resolver"
)

// TestInheritedTableOrdersByDepthDescending checks §4.2's rule directly: two
// ancestors of the same leaf declaring the same event are grouped together,
// deeper source first.
func TestInheritedTableOrdersByDepthDescending(t *testing.T) {
	const src = `
state s {
  [*] --> s1
  s --> s1 : X
  state s1 {
    [*] --> s11
    s1 --> s1 : X [ready]
    state s11 {
    }
  }
}
`
	m, err := parser.Parse(strings.NewReader(src))
	require.NoError(t, err)
	m.Freeze()
	r := resolver.Resolve(m)

	s11 := m.Nodes["s11"]
	groups, ok := r.ByLeaf[s11]
	require.True(t, ok)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Transitions, 2)
	assert.Equal(t, "s1", groups[0].Transitions[0].Src.Name, "deeper source (s1) must be tried before shallower (s)")
	assert.Equal(t, "s", groups[0].Transitions[1].Src.Name)
}

func TestByLeafOnlyCoversLeaves(t *testing.T) {
	const src = `
state s {
  [*] --> s1
  state s1 {
  }
}
`
	m, err := parser.Parse(strings.NewReader(src))
	require.NoError(t, err)
	m.Freeze()
	r := resolver.Resolve(m)

	_, hasComposite := r.ByLeaf[m.Nodes["s"]]
	assert.False(t, hasComposite)
	_, hasLeaf := r.ByLeaf[m.Nodes["s1"]]
	assert.True(t, hasLeaf)
}
