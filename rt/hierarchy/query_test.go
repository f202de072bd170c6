package hierarchy

import (
	"testing"

	"github.com/gekko3d/sceneedit/rt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(matches []Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Label)
	}
	return out
}

func TestSelect(t *testing.T) {
	snap := Build(sceneRecords(), nil)

	tests := []struct {
		query    string
		expected []string
	}{
		{`depth == 0`, []string{"Canvas", "Scene"}},
		{`label startsWith "A" || children > 1`, []string{"Scene", "Airship", "Zeppelin"}},
		{`children == 0 && depth > 1`, []string{"Engine", "Rotor"}},
		{`id == 8`, []string{"Button"}},
		{`label contains "nothing"`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, err := CompileQuery(tt.query)
			require.NoError(t, err)
			matches, err := snap.Select(q)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, labels(matches))
		})
	}
}

func TestFindQuery(t *testing.T) {
	snap := Build(sceneRecords(), nil)

	q, err := CompileQuery(`depth == 2`)
	require.NoError(t, err)
	id, ok, err := snap.FindQuery(1, q)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, core.NodeId(5), id, "Engine sorts before Rotor")

	q, err = CompileQuery(`depth == 1 && label == "Zeppelin"`)
	require.NoError(t, err)
	id, ok, err = snap.FindQuery(1, q)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, core.NodeId(2), id)

	q, err = CompileQuery(`label == "Button"`)
	require.NoError(t, err)
	_, ok, err = snap.FindQuery(1, q)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompileQueryErrors(t *testing.T) {
	for _, src := range []string{`label +`, `depth`, `kind == "Cube"`} {
		_, err := CompileQuery(src)
		assert.Error(t, err, src)
	}
}
