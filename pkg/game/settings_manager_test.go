package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	require.NotNil(t, settings)

	assert.Equal(t, 0.8, settings.EngineVolume)
	assert.True(t, settings.EngineEnabled)
	assert.False(t, settings.Fullscreen)
	assert.True(t, settings.ShowPath)
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	require.NotNil(t, sm.GetSettings())

	assert.Equal(t, *DefaultSettings(), *sm.GetSettings())
	assert.NoError(t, sm.Save())
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	store := openTestStore(t, "test_settings_load_save")

	sm1 := NewSettingsManager(store)
	sm1.SetEngineVolume(0.5)
	sm1.SetEngineEnabled(false)
	sm1.SetFullscreen(true)
	sm1.SetShowPath(false)
	require.NoError(t, sm1.Save())

	sm2 := NewSettingsManager(store)
	assert.Equal(t, Settings{
		EngineVolume:  0.5,
		EngineEnabled: false,
		Fullscreen:    true,
		ShowPath:      false,
	}, *sm2.GetSettings())
}

// TestSettingsLoadPartial 测试缺失字段保持默认值、越界音量被钳制
func TestSettingsLoadPartial(t *testing.T) {
	store := openTestStore(t, "test_settings_partial")
	require.NoError(t, store.SaveObjectProp(settingsObject, settingsProperty, []byte("engineVolume: 3\n")))

	sm := NewSettingsManager(store)
	got := sm.GetSettings()
	assert.Equal(t, 1.0, got.EngineVolume)
	assert.True(t, got.EngineEnabled)
	assert.True(t, got.ShowPath)
}

// TestSetEngineVolumeClamp 测试 SetEngineVolume 范围校验
func TestSetEngineVolumeClamp(t *testing.T) {
	sm := NewSettingsManager(nil)

	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"正常值", 0.5, 0.5},
		{"下限", 0.0, 0.0},
		{"上限", 1.0, 1.0},
		{"低于下限", -0.5, 0.0},
		{"高于上限", 1.5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm.SetEngineVolume(tt.input)
			assert.Equal(t, tt.expected, sm.GetSettings().EngineVolume)
		})
	}
}
