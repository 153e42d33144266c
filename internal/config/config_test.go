package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
output:
  path: out/example.vox
  compress: true
logging:
  level: debug
  file: logs/voxbuild.log
  max_size_mb: 10
  max_age_days: 7
metrics:
  textfile: out/voxbuild.prom
scene:
  palette:   [{index: 0, rgb: [128, 0, 0]}]
  materials: [{index: 0, properties: {_type: _glass, _trans: 0.5, _alpha: "1"}}]
  notes:     [{row: 0, text: Note}]
  shapes:
    - {kind: sphere, radius: 5, centre: [4, 4, 4], palette: 0}
    - {kind: box, size: [10, 10, 15], palette: 1, offset: [12, 5, 0]}
    - {kind: terrain, size: [64, 64, 24], seed: 42, scale: 0.08}
    - {kind: voxels, palette: 1, voxels: [[0,0,0],[1,0,0,3]]}
`

const sampleTOML = `
[output]
path = "out/example.vox"

[[scene.palette]]
index = 1
rgb = [0, 255, 128]

[[scene.materials]]
index = 0
[scene.materials.properties]
_type = "_glass"
_trans = 0.5
_emit = "1"

[[scene.shapes]]
kind = "box"
size = [2, 2, 2]
palette = 1
`

func TestParseYAML(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML), ".yaml")
	require.NoError(t, err)

	assert.Equal(t, "out/example.vox", cfg.Output.GetPath())
	assert.True(t, cfg.Output.Compress)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Logging.MaxSizeMB)
	assert.Equal(t, 7, cfg.Logging.MaxAgeDays)
	assert.Equal(t, "out/voxbuild.prom", cfg.Metrics.Textfile)

	require.Len(t, cfg.Scene.Materials, 1)
	// порядок документа сохраняется, неквотированное число остаётся как есть
	assert.Equal(t, Properties{
		{Key: "_type", Value: "_glass"},
		{Key: "_trans", Value: "0.5"},
		{Key: "_alpha", Value: "1"},
	}, cfg.Scene.Materials[0].Properties)

	require.Len(t, cfg.Scene.Shapes, 4)
	assert.Equal(t, KindTerrain, cfg.Scene.Shapes[2].Kind)
	assert.Equal(t, int64(42), cfg.Scene.Shapes[2].Seed)
	assert.Equal(t, 0.08, cfg.Scene.Shapes[2].Scale)
	assert.Equal(t, [][]int{{0, 0, 0}, {1, 0, 0, 3}}, cfg.Scene.Shapes[3].Voxels)
	assert.Equal(t, []NoteConfig{{Row: 0, Text: "Note"}}, cfg.Scene.Notes)
}

func TestParseTOMLSortsProperties(t *testing.T) {
	cfg, err := Parse([]byte(sampleTOML), ".toml")
	require.NoError(t, err)

	assert.Equal(t, []int{0, 255, 128}, cfg.Scene.Palette[0].RGB)
	require.Len(t, cfg.Scene.Materials, 1)
	assert.Equal(t, Properties{
		{Key: "_emit", Value: "1"},
		{Key: "_trans", Value: "0.5"},
		{Key: "_type", Value: "_glass"},
	}, cfg.Scene.Materials[0].Properties)
	assert.Equal(t, []int{2, 2, 2}, cfg.Scene.Shapes[0].Size)
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown kind":   `scene: {shapes: [{kind: cone}]}`,
		"sphere radius":  `scene: {shapes: [{kind: sphere, centre: [1, 1, 1]}]}`,
		"box size":       `scene: {shapes: [{kind: box, size: [1, 0, 1]}]}`,
		"offset length":  `scene: {shapes: [{kind: box, size: [1, 1, 1], offset: [1]}]}`,
		"empty voxels":   `scene: {shapes: [{kind: voxels}]}`,
		"voxel arity":    `scene: {shapes: [{kind: voxels, voxels: [[1, 2]]}]}`,
		"rgb length":     `scene: {palette: [{index: 0, rgb: [1, 2]}]}`,
		"rgb range":      `scene: {palette: [{index: 0, rgb: [1, 2, 300]}]}`,
		"nested prop":    `scene: {materials: [{index: 0, properties: {_type: [a]}}]}`,
		"props not map":  `scene: {materials: [{index: 0, properties: [a, b]}]}`,
		"malformed yaml": `scene: [`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc), ".yml")
			assert.Error(t, err)
		})
	}
}

func TestLoadFallbacks(t *testing.T) {
	t.Setenv(EnvConfig, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Nil(t, cfg)

	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0644))

	t.Setenv(EnvConfig, path)
	cfg, err = Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "out/example.vox", cfg.Output.Path)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestOutputPathPriority(t *testing.T) {
	t.Setenv(EnvOutput, "")
	var out OutputConfig
	assert.Equal(t, DefaultOutputPath, out.GetPath())

	t.Setenv(EnvOutput, "env.vox")
	assert.Equal(t, "env.vox", out.GetPath())

	out.Path = "config.vox"
	assert.Equal(t, "config.vox", out.GetPath())
}

func TestExampleSceneIsValid(t *testing.T) {
	cfg := Config{Scene: ExampleScene()}
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Scene.Shapes, 2)
}
