package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix 运行时设置的环境变量前缀（如 ANCHORFLIGHT_TPS）
const EnvPrefix = "ANCHORFLIGHT"

// RuntimeConfig 演示程序的运行时设置
type RuntimeConfig struct {
	Title  string `mapstructure:"title"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	// TPS 每秒逻辑帧数，调度器以 1/TPS 为一帧
	TPS int `mapstructure:"tps"`

	// AnchorsPath 锚点配置路径，磁盘上不存在时使用内置默认文件
	AnchorsPath string `mapstructure:"anchors"`
	// MotionPath 运动参数路径，磁盘上不存在时使用内置默认文件
	MotionPath string `mapstructure:"motion"`

	// AppName gdata 存储使用的应用名，空表示不持久化
	AppName string `mapstructure:"appName"`

	Verbose bool `mapstructure:"verbose"`
	// LogFile 日志文件路径，设置后按大小滚动
	LogFile string `mapstructure:"logFile"`
	// LogMaxSizeMB 单个日志文件大小上限
	LogMaxSizeMB int `mapstructure:"logMaxSizeMB"`
}

func setRuntimeDefaults(v *viper.Viper) {
	v.SetDefault("title", "Anchor Flight")
	v.SetDefault("width", 1280)
	v.SetDefault("height", 720)
	v.SetDefault("tps", 60)
	v.SetDefault("anchors", "data/anchors.yaml")
	v.SetDefault("motion", "data/motion.yaml")
	v.SetDefault("appName", "anchorflight")
	v.SetDefault("verbose", false)
	v.SetDefault("logFile", "")
	v.SetDefault("logMaxSizeMB", 10)
}

// LoadRuntimeConfig 加载运行时设置
//
// 优先级：环境变量 > 配置文件 > 默认值。
//
// 参数:
//   - path: YAML 配置文件路径，空字符串或文件不存在时只使用默认值和环境变量
//
// 返回:
//   - *RuntimeConfig: 运行时设置
//   - error: 配置文件解析失败或设置无效
func LoadRuntimeConfig(path string) (*RuntimeConfig, error) {
	v := viper.New()
	setRuntimeDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading runtime config: %w", err)
			}
		}
	}

	var cfg RuntimeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode runtime config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid runtime config: %w", err)
	}
	return &cfg, nil
}

// Validate 验证设置有效性
func (c *RuntimeConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	}
	if c.AnchorsPath == "" || c.MotionPath == "" {
		return fmt.Errorf("anchors and motion paths are required")
	}
	if c.LogMaxSizeMB <= 0 {
		return fmt.Errorf("logMaxSizeMB must be positive, got %d", c.LogMaxSizeMB)
	}
	return nil
}

// TickDelta 每帧时长（秒）
func (c *RuntimeConfig) TickDelta() float64 {
	return 1.0 / float64(c.TPS)
}
