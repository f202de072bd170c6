package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/sceneedit/rt/gizmo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScene = `
scope: Scene
camera:
  position: [0, 0, 10]
  width: 800
  height: 600
nodes:
  - name: Scene
    children:
      - name: Zeppelin
        kind: Cube
        children:
          - name: Rotor
            position: [0, 3, 0]
      - name: Airship
        kind: Cube
        position: [3, 0, -5]
  - name: EditorCamera
    hidden: true
`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testScene), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTreeCommand(t *testing.T) {
	path := writeScene(t)

	out, err := run(t, "tree", "-s", path)
	require.NoError(t, err)
	assert.Equal(t, "Scene\n  Airship\n  Zeppelin\n    Rotor\n", out)

	out, err = run(t, "tree", "-s", path, "--filter", "SHIP")
	require.NoError(t, err)
	assert.Equal(t, "Airship\n", out)

	out, err = run(t, "tree", "-s", path, "--where", "depth == 1")
	require.NoError(t, err)
	assert.Equal(t, "Airship\nZeppelin\n", out)

	_, err = run(t, "tree", "-s", path, "--where", "depth +")
	assert.Error(t, err)
	_, err = run(t, "tree", "-s", path, "--where", "depth == 1", "--filter", "a")
	assert.Error(t, err)
}

func TestInvalidScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nodes: [{name: A, kind: Teapot}]\n"), 0644))

	_, err := run(t, "tree", "-s", path)
	assert.Error(t, err)
}

func TestPickCommand(t *testing.T) {
	path := writeScene(t)

	out, err := run(t, "pick", "400", "300", "-s", path)
	require.NoError(t, err)
	assert.Contains(t, out, "selected: Zeppelin")
	assert.Contains(t, out, "gizmo: Move")
	assert.Contains(t, out, "X tip")

	out, err = run(t, "pick", "400", "300", "-s", path, "--mode", "rotate")
	require.NoError(t, err)
	assert.Contains(t, out, "Y ring: 41 points")

	out, err = run(t, "pick", "2", "2", "-s", path)
	require.NoError(t, err)
	assert.Equal(t, "nothing selected\n", out)

	_, err = run(t, "pick", "a", "2", "-s", path)
	assert.Error(t, err)
	_, err = run(t, "pick", "1", "2", "-s", path, "--mode", "shear")
	assert.Error(t, err)
}

func TestReparentCommand(t *testing.T) {
	path := writeScene(t)

	out, err := run(t, "reparent", "Zeppelin", "Rotor", "-s", path)
	require.NoError(t, err)
	assert.Contains(t, out, "refused")

	out, err = run(t, "reparent", "Rotor", "Airship", "-s", path)
	require.NoError(t, err)
	assert.Equal(t, "Scene\n  Airship\n    Rotor\n  Zeppelin\n", out)

	_, err = run(t, "reparent", "Rotor", "-s", path)
	assert.Error(t, err, "needs a parent or --detach")

	_, err = run(t, "reparent", "Nobody", "Airship", "-s", path)
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected gizmo.Mode
	}{
		{"move", gizmo.Move},
		{"Translate", gizmo.Move},
		{"ROTATE", gizmo.Rotate},
		{"scale", gizmo.Scale},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := parseMode(tt.input)
			if err != nil {
				t.Fatalf("parseMode(%q) failed: %v", tt.input, err)
			}
			if m != tt.expected {
				t.Errorf("parseMode(%q) = %v, want %v", tt.input, m, tt.expected)
			}
		})
	}
}
