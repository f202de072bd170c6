package sceneedit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/sceneedit/rt/core"
	"github.com/gekko3d/sceneedit/rt/gizmo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, gizmo.DefaultParams(), cfg.Gizmo)
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.yaml")
	data := []byte(`
debug: true
gizmo:
  handle_threshold: 14
  ring_segments: 64
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "editor", cfg.LogPrefix)
	assert.Equal(t, float32(14), cfg.Gizmo.HandleThreshold)
	assert.Equal(t, 64, cfg.Gizmo.RingSegments)
	assert.Equal(t, float32(0.002), cfg.Gizmo.MoveSpeed)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseConfig([]byte("gizmo: ["))
	assert.Error(t, err)

	_, err = ParseConfig([]byte("gizmo: {min_scale: 0, ring_segments: 2}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_scale")
	assert.Contains(t, err.Error(), "ring_segments")
}

func TestConfigDrivesSession(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gizmo.MoveSpeed = 0.004

	ts := newTestScene()
	e := NewEditor(ts.store, WithConfig(cfg), WithScope(ts.root), WithLogger(NewDefaultLogger("test", false)))
	ts.frame(e, clickAt(400, 300))

	res := ts.frame(e, holdDrag(10, 0))
	require.Len(t, res.Intents, 1)
	st := res.Intents[0].(core.SetTransformIntent)
	assert.InDelta(t, 10*0.004*10, st.Translation.X(), 1e-4)
}
