// Package app 演示程序的核心包装器
//
// 该包把配置加载、场景构建和输入处理从 main 包提取出来，
// main.go 只负责解析参数和启动 ebiten 主循环。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gonewx/anchorflight/pkg/audio"
	"github.com/gonewx/anchorflight/pkg/config"
	"github.com/gonewx/anchorflight/pkg/embedded"
	"github.com/gonewx/anchorflight/pkg/game"
	"github.com/gonewx/anchorflight/pkg/utils"
)

// digitKeys 锚点快捷键，按配置顺序对应前九个锚点
var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// App 演示程序，实现 ebiten.Game 接口
type App struct {
	cfg      *config.RuntimeConfig
	world    *World
	settings *game.SettingsManager
	renderer *Renderer

	closeAudio func()
	logFile    io.Closer
}

// SetupLogging 按运行时设置配置日志输出
//
// 非 Verbose 时丢弃日志；设置了 LogFile 时写入按大小滚动的日志文件。
//
// 返回:
//   - io.Closer: 日志文件，未使用文件时为 nil
func SetupLogging(cfg *config.RuntimeConfig) io.Closer {
	switch {
	case cfg.LogFile != "":
		logger := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: 3,
		}
		log.SetOutput(logger)
		return logger
	case !cfg.Verbose:
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	return nil
}

// openStore 打开 gdata 存储，失败时降级为仅内存
func openStore(appName string) *gdata.Manager {
	if appName == "" {
		return nil
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (state will not persist)", err)
		return nil
	}
	return m
}

// loadSceneConfig 加载锚点与运动参数，磁盘上没有时使用内置默认文件
func loadSceneConfig(cfg *config.RuntimeConfig) (*config.AnchorConfig, *config.MotionConfig, error) {
	data, fromEmbedded, err := embedded.ReadFileOrDefault(cfg.AnchorsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("锚点配置读取失败: %w", err)
	}
	anchors, err := config.ParseAnchorConfig(data)
	if err != nil {
		return nil, nil, fmt.Errorf("锚点配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载锚点配置: %s (embedded=%v, %d 个锚点)", cfg.AnchorsPath, fromEmbedded, len(anchors.Anchors))

	data, fromEmbedded, err = embedded.ReadFileOrDefault(cfg.MotionPath)
	if err != nil {
		return nil, nil, fmt.Errorf("运动参数读取失败: %w", err)
	}
	motionCfg, err := config.ParseMotionConfig(data)
	if err != nil {
		return nil, nil, fmt.Errorf("运动参数加载失败: %w", err)
	}
	log.Printf("[Config] 加载运动参数: %s (embedded=%v)", cfg.MotionPath, fromEmbedded)

	return anchors, motionCfg, nil
}

// NewApp 创建并初始化演示程序
//
// 调用此函数前，必须先调用 embedded.Init() 初始化内置数据。
// 音频设备不可用时继续运行，只是没有声音。
func NewApp(cfg *config.RuntimeConfig) (*App, error) {
	a := &App{cfg: cfg, logFile: SetupLogging(cfg)}

	anchors, motionCfg, err := loadSceneConfig(cfg)
	if err != nil {
		a.closeLog()
		return nil, err
	}

	store := openStore(cfg.AppName)
	a.settings = game.NewSettingsManager(store)
	nav := game.NewNavStateManager(store)

	engine, err := audio.NewEngineSound(audio.SampleRate, audio.DefaultEngineSoundConfig())
	if err != nil {
		a.closeLog()
		return nil, fmt.Errorf("引擎声初始化失败: %w", err)
	}
	settings := a.settings.GetSettings()
	engine.SetEnabled(settings.EngineEnabled)
	engine.SetMasterVolume(settings.EngineVolume)
	if closeAudio, err := audio.StartOutput(engine); err != nil {
		log.Printf("[App] Warning: %v (engine sound muted)", err)
	} else {
		a.closeAudio = closeAudio
	}

	a.world, err = NewWorld(WorldOptions{
		TPS:     cfg.TPS,
		Anchors: anchors,
		Motion:  motionCfg,
		Nav:     nav,
		Engine:  engine,
	})
	if err != nil {
		a.closeLog()
		if a.closeAudio != nil {
			a.closeAudio()
		}
		return nil, err
	}

	a.renderer = NewRenderer(a.world, cfg.Width, cfg.Height)
	if settings.Fullscreen {
		ebiten.SetFullscreen(true)
	}
	return a, nil
}

// Update 处理输入并推进一帧
func (a *App) Update() error {
	for i, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) {
			a.world.TravelToIndex(i)
		}
	}

	if clicked, x, y := utils.IsJustTouchedOrClicked(); clicked {
		if name, ok := a.renderer.AnchorAt(x, y); ok {
			a.world.TravelTo(name)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		mode := a.world.ToggleMode()
		log.Printf("[App] Navigation mode: %s", mode)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.settings.SetShowPath(!a.settings.GetSettings().ShowPath)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		enabled := !a.settings.GetSettings().EngineEnabled
		a.settings.SetEngineEnabled(enabled)
		a.world.Engine.SetEnabled(enabled)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.settings.SetFullscreen(fullscreen)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	a.world.Tick(a.cfg.TickDelta())
	return nil
}

// Draw 绘制场景与 HUD
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.settings.GetSettings().ShowPath)
}

// DrawFinalScreen 全屏时用黑色填充两侧并线性缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Width, a.cfg.Height
}

// closeLog 初始化失败时关闭日志文件
func (a *App) closeLog() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

// Close 保存导航状态与设置并释放音频、日志文件
func (a *App) Close() error {
	var errs []error
	if err := a.world.Nav.Save(); err != nil {
		errs = append(errs, err)
	}
	if err := a.settings.Save(); err != nil {
		errs = append(errs, err)
	}
	a.world.Engine.Detach()
	if a.closeAudio != nil {
		a.closeAudio()
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
