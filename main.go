package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/anchorflight/pkg/app"
	"github.com/gonewx/anchorflight/pkg/config"
	"github.com/gonewx/anchorflight/pkg/embedded"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run 解析参数并运行演示程序
//
// 初始化错误直接写到 stderr：非 Verbose 时日志已被丢弃。
//
// 返回:
//   - int: 进程退出码
func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("anchorflight", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "anchorflight.yaml", "runtime config file (optional)")
	verbose := fs.Bool("verbose", false, "enable verbose logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	embedded.Init(dataFS)

	cfg, err := config.LoadRuntimeConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "配置加载失败: %v\n", err)
		return 1
	}
	if *verbose {
		cfg.Verbose = true
	}

	a, err := app.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "初始化失败: %v\n", err)
		return 1
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(a)
	if err := a.Close(); err != nil {
		log.Printf("[Main] 保存状态失败: %v", err)
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		fmt.Fprintf(stderr, "运行失败: %v\n", runErr)
		return 1
	}
	return 0
}
