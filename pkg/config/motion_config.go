package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/anchorflight/pkg/utils"
)

// MotionConfig 航行运动参数
//
// 默认值与线上手感一致；配置文件只需写出要覆盖的字段。
//
// 配置文件位置: data/motion.yaml
type MotionConfig struct {
	// Duration 默认航行时长（秒）
	Duration float64 `yaml:"duration"`
	// FPS 关键帧帧率
	FPS float64 `yaml:"fps"`
	// KeyframeCount 航行关键帧区间数（生成 KeyframeCount+1 个关键帧）
	KeyframeCount int `yaml:"keyframeCount"`
	// SampleCount 曲线采样段数
	SampleCount int `yaml:"sampleCount"`

	// PeakSpeedFactor 峰值速度 = 平均速度 × PeakSpeedFactor
	PeakSpeedFactor float64 `yaml:"peakSpeedFactor"`
	// MinBlendSpeed 当前速度高于该值时才延续速度
	MinBlendSpeed float64 `yaml:"minBlendSpeed"`
	// RotationBlendExponent 朝向混合权重 = 曲线参数^RotationBlendExponent
	RotationBlendExponent float64 `yaml:"rotationBlendExponent"`

	// DragFriction 拖拽衰减系数（每秒速度乘以 e^-DragFriction）
	DragFriction float64 `yaml:"dragFriction"`
	// DragStartSpeed 取消时速度高于该值才开始滑行
	DragStartSpeed float64 `yaml:"dragStartSpeed"`
	// DragStopSpeed 滑行速度低于该值时停止
	DragStopSpeed float64 `yaml:"dragStopSpeed"`

	// DefaultTravelRadius 航行中镜头拉远的默认半径
	DefaultTravelRadius float64 `yaml:"defaultTravelRadius"`
	// ZoomPhaseRatio 每段镜头缩放时长 = 航行时长 × ZoomPhaseRatio
	ZoomPhaseRatio float64 `yaml:"zoomPhaseRatio"`
	// BetaMargin 镜头俯仰角距离两极的最小间隔（弧度）
	BetaMargin float64 `yaml:"betaMargin"`

	// AngleEasing 镜头角度缓动名称
	AngleEasing string `yaml:"angleEasing"`
	// ZoomOutEasing 镜头拉远缓动名称
	ZoomOutEasing string `yaml:"zoomOutEasing"`
	// ZoomInEasing 镜头推近缓动名称
	ZoomInEasing string `yaml:"zoomInEasing"`
}

// DefaultMotionConfig 返回默认运动参数
func DefaultMotionConfig() *MotionConfig {
	return &MotionConfig{
		Duration:              4.0,
		FPS:                   60,
		KeyframeCount:         120,
		SampleCount:           200,
		PeakSpeedFactor:       2.0,
		MinBlendSpeed:         0.1,
		RotationBlendExponent: 1.5,
		DragFriction:          4.0,
		DragStartSpeed:        0.5,
		DragStopSpeed:         0.1,
		DefaultTravelRadius:   24,
		ZoomPhaseRatio:        0.25,
		BetaMargin:            0.3,
		AngleEasing:           "easeInOutCubic",
		ZoomOutEasing:         "easeOutCubic",
		ZoomInEasing:          "easeInOutCubic",
	}
}

// LoadMotionConfig 加载运动参数
//
// 文件中未出现的字段保持默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/motion.yaml"）
//
// 返回:
//   - *MotionConfig: 合并默认值后的配置
//   - error: 读取、解析或验证失败
func LoadMotionConfig(path string) (*MotionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read motion config: %w", err)
	}

	return ParseMotionConfig(data)
}

// ParseMotionConfig 从 YAML 数据解析运动参数，未出现的字段保持默认值
func ParseMotionConfig(data []byte) (*MotionConfig, error) {
	config := DefaultMotionConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse motion config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid motion config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
func (c *MotionConfig) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %.3f", c.Duration)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %.1f", c.FPS)
	}
	if c.KeyframeCount < 1 {
		return fmt.Errorf("keyframeCount must be at least 1, got %d", c.KeyframeCount)
	}
	if c.SampleCount < 1 {
		return fmt.Errorf("sampleCount must be at least 1, got %d", c.SampleCount)
	}
	if c.PeakSpeedFactor <= 0 {
		return fmt.Errorf("peakSpeedFactor must be positive, got %.3f", c.PeakSpeedFactor)
	}
	if c.DragFriction <= 0 {
		return fmt.Errorf("dragFriction must be positive, got %.3f", c.DragFriction)
	}
	if c.DragStopSpeed < 0 || c.DragStartSpeed < c.DragStopSpeed {
		return fmt.Errorf("drag speeds invalid: start(%.3f) must be >= stop(%.3f) >= 0",
			c.DragStartSpeed, c.DragStopSpeed)
	}
	if c.ZoomPhaseRatio < 0 || c.ZoomPhaseRatio > 1 {
		return fmt.Errorf("zoomPhaseRatio must be within [0, 1], got %.3f", c.ZoomPhaseRatio)
	}
	if c.DefaultTravelRadius < 0 {
		return fmt.Errorf("defaultTravelRadius must not be negative, got %.3f", c.DefaultTravelRadius)
	}
	if c.BetaMargin < 0 || c.BetaMargin >= 1.5 {
		return fmt.Errorf("betaMargin must be within [0, 1.5), got %.3f", c.BetaMargin)
	}
	for field, name := range map[string]string{
		"angleEasing":   c.AngleEasing,
		"zoomOutEasing": c.ZoomOutEasing,
		"zoomInEasing":  c.ZoomInEasing,
	} {
		if _, ok := utils.EasingByName(name); !ok {
			return fmt.Errorf("%s: unknown easing %q", field, name)
		}
	}
	return nil
}

// Easing 按名称查找缓动函数，未知名称回退为线性
func (c *MotionConfig) Easing(name string) utils.EasingFunc {
	fn, _ := utils.EasingByName(name)
	return fn
}
