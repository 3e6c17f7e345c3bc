package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRuntimeConfig_Defaults(t *testing.T) {
	cfg, err := LoadRuntimeConfig("")
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
	assert.Equal(t, 60, cfg.TPS)
	assert.Equal(t, "data/anchors.yaml", cfg.AnchorsPath)
	assert.Equal(t, "data/motion.yaml", cfg.MotionPath)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.LogFile)
	assert.InDelta(t, 1.0/60, cfg.TickDelta(), 1e-12)
}

func TestLoadRuntimeConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anchorflight.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 800\nheight: 600\ntps: 30\nverbose: true\n"), 0o644))
	t.Setenv("ANCHORFLIGHT_TPS", "120")
	t.Setenv("ANCHORFLIGHT_LOGFILE", "/tmp/anchorflight.log")

	cfg, err := LoadRuntimeConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, 120, cfg.TPS, "环境变量优先于配置文件")
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "/tmp/anchorflight.log", cfg.LogFile)
}

func TestLoadRuntimeConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadRuntimeConfig(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.TPS)
}

func TestLoadRuntimeConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "TPS 为 0", env: map[string]string{"ANCHORFLIGHT_TPS": "0"}, wantErr: "tps must be positive"},
		{name: "窗口宽度为负", env: map[string]string{"ANCHORFLIGHT_WIDTH": "-1"}, wantErr: "window size"},
		{name: "日志大小为 0", env: map[string]string{"ANCHORFLIGHT_LOGMAXSIZEMB": "0"}, wantErr: "logMaxSizeMB must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadRuntimeConfig("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
