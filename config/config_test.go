package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// clearEnv сбрасывает переменные, которые читает Load
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "TELEGRAM_TOKEN", "BACKEND", "MASK_DIR", "SPLIT_DIR", "WORK_DIR",
		"PATCH_SIZE", "STRIDE", "BRUSH_SIZE", "AUGMENT", "CONTINUE_ON_ERROR",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "labeler.yaml")
	data := []byte("patch_size: 64\nstride: 32\nmask_dir: /data/mask\naugment: true\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("STRIDE", "16")
	t.Setenv("TELEGRAM_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 64, cfg.PatchSize)
	require.Equal(t, 16, cfg.Stride)
	require.Equal(t, "/data/mask", cfg.MaskDir)
	require.Equal(t, "./split", cfg.SplitDir)
	require.True(t, cfg.Augment)
	require.Equal(t, "token", cfg.TelegramToken)
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(defaultConfigFile, []byte("brush_size: 3\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.BrushSize)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_BadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PATCH_SIZE", "big")

	_, err := Load()
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.PatchSize = 49
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Stride = 101
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.BrushSize = 0
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Backend = "opengl"
	require.Error(t, cfg.Validate())
}
