// Package embedded 提供内置默认数据文件的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问内置的默认配置。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化数据文件系统
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// cleanPath 标准化路径分隔符并移除 "./" 前缀
func cleanPath(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}

// ReadFile 读取内置数据文件
// 路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	if !initialized {
		return nil, fmt.Errorf("embedded package not initialized, call Init() first")
	}

	path = cleanPath(path)
	if !strings.HasPrefix(path, "data/") {
		return nil, fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查文件是否存在于内置数据中
func Exists(path string) bool {
	if !initialized {
		return false
	}
	_, err := fs.Stat(dataFS, cleanPath(path))
	return err == nil
}

// ReadFileOrDefault 优先读取磁盘上的文件，不存在时回退到内置默认文件
//
// 参数:
//   - path: 数据文件路径（如 "data/anchors.yaml"）
//
// 返回:
//   - []byte: 文件内容
//   - bool: 是否来自内置默认文件
//   - error: 两处都读取失败
func ReadFileOrDefault(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, false, nil
	}
	if !os.IsNotExist(err) {
		return nil, false, err
	}

	data, embErr := ReadFile(path)
	if embErr != nil {
		return nil, false, fmt.Errorf("%s not found on disk and no embedded default: %w", path, embErr)
	}
	return data, true, nil
}
