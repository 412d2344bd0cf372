package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, 0, cfg.CameraID)
	assert.Equal(t, 640, cfg.FrameWidth)
	assert.Equal(t, 480, cfg.FrameHeight)
	assert.Equal(t, filepath.Join(home, ".mudra"), cfg.DataDir)
	assert.True(t, cfg.History)
	assert.Equal(t, filepath.Join(home, ".mudra", "plugins"), cfg.PluginDir)
	assert.Empty(t, cfg.StaticDir)
	assert.False(t, cfg.Tray)
	assert.Equal(t, "volume-control", cfg.VolumePlugin)
	assert.Equal(t, 1, cfg.MaxHands)
	assert.InDelta(t, 0.6, cfg.MinDetectionConfidence, 1e-9)
	assert.InDelta(t, 0.6, cfg.MinTrackingConfidence, 1e-9)
	assert.Equal(t, filepath.Join(home, ".mudra", "mudra.db"), cfg.DatabasePath())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("MUDRA_ADDR", "127.0.0.1:9000")
	t.Setenv("MUDRA_CAMERA_ID", "2")
	t.Setenv("MUDRA_HISTORY", "false")
	t.Setenv("MUDRA_MIN_TRACKING_CONFIDENCE", "0.8")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, 2, cfg.CameraID)
	assert.False(t, cfg.History)
	assert.InDelta(t, 0.8, cfg.MinTrackingConfidence, 1e-9)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("MUDRA_ADDR", ":7000")
	dataDir := t.TempDir()

	cfg, err := Load([]string{
		"--addr", ":8000",
		"--frame-width", "1280",
		"--frame-height", "720",
		"--data-dir", dataDir,
		"--plugin-dir", "/opt/mudra/plugins",
		"--tray",
	})
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, 1280, cfg.FrameWidth)
	assert.Equal(t, 720, cfg.FrameHeight)
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, "/opt/mudra/plugins", cfg.PluginDir)
	assert.True(t, cfg.Tray)
}

func TestLoad_PluginDirPrefersWorkingDirectory(t *testing.T) {
	wd := t.TempDir()
	require.NoError(t, mkdir(filepath.Join(wd, "plugins")))
	chdir(t, wd)

	cfg, err := Load([]string{"--data-dir", t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, "plugins", filepath.Base(cfg.PluginDir))
	assert.True(t, filepath.IsAbs(cfg.PluginDir))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--nope"}},
		{"negative camera", []string{"--camera-id", "-1"}},
		{"zero width", []string{"--frame-width", "0"}},
		{"no hands", []string{"--max-hands", "0"}},
		{"confidence above one", []string{"--min-detection-confidence", "1.5"}},
		{"empty addr", []string{"--addr", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandHome("~/data")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data"), got)

	got, err = expandHome("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)
}

func mkdir(path string) error {
	return os.MkdirAll(path, 0755)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
