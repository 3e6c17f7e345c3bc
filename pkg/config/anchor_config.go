package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/anchorflight/pkg/curve"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

// AnchorConfig 场景锚点配置
//
// 配置文件位置: data/anchors.yaml
type AnchorConfig struct {
	// Start 初始锚点名称，空表示第一个锚点
	Start   string      `yaml:"start"`
	Anchors []AnchorDef `yaml:"anchors"`
}

// AnchorDef 单个锚点定义
//
// 朝向二选一：Rotation 为欧拉角（度，X/Y/Z），Quaternion 为 [x, y, z, w]。
// 两者都未设置时朝向为单位四元数。
type AnchorDef struct {
	Name       string      `yaml:"name"`
	Position   [3]float64  `yaml:"position"`
	Rotation   *[3]float64 `yaml:"rotation,omitempty"`
	Quaternion *[4]float64 `yaml:"quaternion,omitempty"`
	// Forward 可选的飞行前方向，默认由朝向推导
	Forward *[3]float64 `yaml:"forward,omitempty"`

	// Duration 前往该锚点的航行时长（秒），0 表示使用默认值
	Duration float64 `yaml:"duration,omitempty"`
	// TravelRadius 前往该锚点时镜头拉远的半径，0 表示使用默认值
	TravelRadius float64 `yaml:"travelRadius,omitempty"`
	// SkipArrivalZoom 到达时不推近镜头
	SkipArrivalZoom bool `yaml:"skipArrivalZoom,omitempty"`
	// SkipArrivalHide 到达时不隐藏飞行器
	SkipArrivalHide bool `yaml:"skipArrivalHide,omitempty"`
}

// LoadAnchorConfig 加载锚点配置
//
// 参数:
//   - path: 配置文件路径（如 "data/anchors.yaml"）
//
// 返回:
//   - *AnchorConfig: 锚点配置
//   - error: 读取、解析或验证失败
func LoadAnchorConfig(path string) (*AnchorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read anchor config: %w", err)
	}
	return ParseAnchorConfig(data)
}

// ParseAnchorConfig 从 YAML 数据解析锚点配置
func ParseAnchorConfig(data []byte) (*AnchorConfig, error) {
	var config AnchorConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse anchor config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid anchor config: %w", err)
	}

	return &config, nil
}

// Validate 验证配置有效性
func (c *AnchorConfig) Validate() error {
	if len(c.Anchors) == 0 {
		return fmt.Errorf("at least one anchor is required")
	}

	seen := make(map[string]bool, len(c.Anchors))
	for i, a := range c.Anchors {
		if a.Name == "" {
			return fmt.Errorf("anchor #%d: name is required", i)
		}
		if seen[a.Name] {
			return fmt.Errorf("anchor %q: duplicate name", a.Name)
		}
		seen[a.Name] = true

		if a.Rotation != nil && a.Quaternion != nil {
			return fmt.Errorf("anchor %q: rotation and quaternion are mutually exclusive", a.Name)
		}
		if a.Quaternion != nil {
			q := a.quat()
			if q.Len() < 1e-9 {
				return fmt.Errorf("anchor %q: quaternion must not be zero", a.Name)
			}
		}
		if a.Duration < 0 {
			return fmt.Errorf("anchor %q: duration must not be negative, got %.3f", a.Name, a.Duration)
		}
		if a.TravelRadius < 0 {
			return fmt.Errorf("anchor %q: travelRadius must not be negative, got %.3f", a.Name, a.TravelRadius)
		}
	}

	if c.Start != "" && !seen[c.Start] {
		return fmt.Errorf("start anchor %q not found", c.Start)
	}
	return nil
}

// Find 按名称查找锚点定义
func (c *AnchorConfig) Find(name string) (AnchorDef, bool) {
	for _, a := range c.Anchors {
		if a.Name == name {
			return a, true
		}
	}
	return AnchorDef{}, false
}

// StartAnchor 返回初始锚点定义
func (c *AnchorConfig) StartAnchor() AnchorDef {
	if def, ok := c.Find(c.Start); ok {
		return def
	}
	return c.Anchors[0]
}

// Names 按配置顺序返回锚点名称
func (c *AnchorConfig) Names() []string {
	names := make([]string, len(c.Anchors))
	for i, a := range c.Anchors {
		names[i] = a.Name
	}
	return names
}

func (a AnchorDef) quat() vmath.Quat {
	switch {
	case a.Quaternion != nil:
		q := a.Quaternion
		return vmath.Quat{W: q[3], V: vmath.Vec3{q[0], q[1], q[2]}}
	case a.Rotation != nil:
		r := a.Rotation
		return vmath.QuatFromEulerDegrees(r[0], r[1], r[2])
	default:
		return vmath.Quat{W: 1}
	}
}

// Anchor 转换为运动核心使用的锚点
func (a AnchorDef) Anchor() curve.Anchor {
	q := a.quat()
	if q.Len() > 1e-9 {
		q = q.Normalize()
	}

	anchor := curve.NewAnchor(a.Name, vmath.Vec3(a.Position), q)
	if a.Forward != nil {
		anchor = anchor.WithForward(vmath.Vec3(*a.Forward))
	}
	return anchor
}
