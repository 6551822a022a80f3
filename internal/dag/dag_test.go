package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// depMap adapts a plain map to the depsOf callback shape used by Build.
func depMap(m map[string][]string) func(string) []string {
	return func(name string) []string { return m[name] }
}

func asSet(names ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func TestReady(t *testing.T) {
	universe := []string{"a", "b", "c"}
	deps := depMap(map[string][]string{"c": {"a", "b"}})

	t.Run("forward roots are ready", func(t *testing.T) {
		g, err := Build(universe, deps, nil, Forward)
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b"}, g.Ready(asSet("a", "b", "c")))
	})

	t.Run("reverse leaves are ready", func(t *testing.T) {
		g, err := Build(universe, deps, nil, Reverse)
		require.NoError(t, err)

		assert.Equal(t, []string{"c"}, g.Ready(asSet("a", "b", "c")))
	})

	t.Run("only unresolved names are reported", func(t *testing.T) {
		g, err := Build(universe, deps, nil, Forward)
		require.NoError(t, err)

		assert.Equal(t, []string{"b"}, g.Ready(asSet("b", "c")))
	})
}

func TestMarkResolved(t *testing.T) {
	universe := []string{"a", "b", "c"}
	deps := depMap(map[string][]string{"c": {"a", "b"}})

	t.Run("unblocks dependents incrementally", func(t *testing.T) {
		g, err := Build(universe, deps, nil, Forward)
		require.NoError(t, err)

		g2 := g.MarkResolved("a")
		assert.Equal(t, []string{"b"}, g2.Ready(asSet("b", "c")))

		g3 := g2.MarkResolved("b")
		assert.Equal(t, []string{"c"}, g3.Ready(asSet("c")))
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		g, err := Build(universe, deps, nil, Forward)
		require.NoError(t, err)

		prior := g.Ready(asSet("a", "b", "c"))
		_ = g.MarkResolved("a").MarkResolved("b")
		assert.Equal(t, prior, g.Ready(asSet("a", "b", "c")))
	})

	t.Run("unknown name is a no-op", func(t *testing.T) {
		g, err := Build(universe, deps, nil, Forward)
		require.NoError(t, err)

		assert.Same(t, g, g.MarkResolved("nope"))
	})
}

func TestNodes(t *testing.T) {
	g, err := Build([]string{"b", "a"}, depMap(nil), nil, Forward)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, g.Nodes())
}
