package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// NavigationMode 导航模式
type NavigationMode string

const (
	// ModeGuided 引导模式：按锚点航行，航行期间隐藏飞行器
	ModeGuided NavigationMode = "guided"
	// ModeFree 自由模式：不隐藏飞行器，航行被取消后滑行停下
	ModeFree NavigationMode = "free"
)

// NavigationState 导航状态
type NavigationState struct {
	Mode NavigationMode `yaml:"mode"`
	// CurrentAnchor 最近一次到达（或正在前往）的锚点名称，空表示尚未选择
	CurrentAnchor string `yaml:"currentAnchor"`
}

// DefaultNavigationState 返回默认导航状态
func DefaultNavigationState() *NavigationState {
	return &NavigationState{Mode: ModeGuided}
}

// NavStateManager 导航状态管理器
// 负责导航状态的加载、保存和内存管理，同时向运动控制器提供当前模式
type NavStateManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	state        *NavigationState
}

// 存储路径常量
const (
	navStateObject   = "navigation"
	navStateProperty = "state"
)

// NewNavStateManager 创建导航状态管理器
//
// 参数:
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存状态）
//
// 返回:
//   - *NavStateManager: 导航状态管理器实例（加载失败时使用默认状态）
func NewNavStateManager(gdataManager *gdata.Manager) *NavStateManager {
	m := &NavStateManager{
		gdataManager: gdataManager,
		state:        DefaultNavigationState(),
	}

	if err := m.Load(); err != nil {
		log.Printf("[NavStateManager] Warning: Failed to load navigation state: %v (using defaults)", err)
	}
	return m
}

// Load 从 gdata 加载导航状态
//
// gdataManager 为 nil 或尚未保存过时使用默认状态；
// 读到未知模式时回退为引导模式。
//
// 返回:
//   - error: 读取或反序列化失败
func (m *NavStateManager) Load() error {
	if m.gdataManager == nil || !m.gdataManager.ObjectPropExists(navStateObject, navStateProperty) {
		m.state = DefaultNavigationState()
		return nil
	}

	data, err := m.gdataManager.LoadObjectProp(navStateObject, navStateProperty)
	if err != nil {
		m.state = DefaultNavigationState()
		return fmt.Errorf("failed to load navigation state: %w", err)
	}

	var loaded NavigationState
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		m.state = DefaultNavigationState()
		return fmt.Errorf("failed to unmarshal navigation state: %w", err)
	}
	if loaded.Mode != ModeGuided && loaded.Mode != ModeFree {
		log.Printf("[NavStateManager] Unknown mode %q, falling back to %s", loaded.Mode, ModeGuided)
		loaded.Mode = ModeGuided
	}

	m.state = &loaded
	log.Printf("[NavStateManager] Navigation state loaded: mode=%s anchor=%q", loaded.Mode, loaded.CurrentAnchor)
	return nil
}

// Save 保存导航状态到 gdata
//
// gdataManager 为 nil 时直接返回 nil
//
// 返回:
//   - error: 序列化或保存失败
func (m *NavStateManager) Save() error {
	if m.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(m.state)
	if err != nil {
		return fmt.Errorf("failed to marshal navigation state: %w", err)
	}
	if err := m.gdataManager.SaveObjectProp(navStateObject, navStateProperty, data); err != nil {
		return fmt.Errorf("failed to save navigation state: %w", err)
	}

	log.Printf("[NavStateManager] Navigation state saved")
	return nil
}

// State 返回当前导航状态的副本
func (m *NavStateManager) State() NavigationState {
	return *m.state
}

// Mode 返回当前导航模式
func (m *NavStateManager) Mode() NavigationMode {
	return m.state.Mode
}

// SetMode 切换导航模式
//
// 注意：仅修改内存中的状态，需调用 Save() 持久化
//
// 返回:
//   - bool: 模式是否发生变化
func (m *NavStateManager) SetMode(mode NavigationMode) bool {
	if m.state.Mode == mode {
		return false
	}
	log.Printf("[NavStateManager] Mode %s -> %s", m.state.Mode, mode)
	m.state.Mode = mode
	return true
}

// ToggleMode 在引导与自由模式之间切换，返回切换后的模式
func (m *NavStateManager) ToggleMode() NavigationMode {
	if m.state.Mode == ModeGuided {
		m.SetMode(ModeFree)
	} else {
		m.SetMode(ModeGuided)
	}
	return m.state.Mode
}

// CurrentAnchor 返回当前锚点名称
func (m *NavStateManager) CurrentAnchor() string {
	return m.state.CurrentAnchor
}

// SetCurrentAnchor 记录当前锚点
func (m *NavStateManager) SetCurrentAnchor(name string) {
	m.state.CurrentAnchor = name
}

// GuidedActive 当前是否处于引导模式
func (m *NavStateManager) GuidedActive() bool {
	return m.state.Mode == ModeGuided
}
