// Package audio 飞行器引擎声
//
// EngineSound 订阅运动控制器上报的速度与引导状态，
// 按速度调整循环引擎声的音量：移动时淡入，停止时淡出。
package audio

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/maniartech/signals"

	"github.com/gonewx/anchorflight/pkg/utils"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

// listenerKey 在信号上注册监听器使用的键
const listenerKey = "audio.EngineSound"

// EngineSoundConfig 引擎声参数
type EngineSoundConfig struct {
	// BaseVolume 基础音量（再乘以主音量）
	BaseVolume float64
	// MinSpeed 速度高于该值视为在移动
	MinSpeed float64
	// FullVolumeSpeed 达到该速度时音量最大
	FullVolumeSpeed float64
	// MinVolumeFactor 移动时的最小音量系数
	MinVolumeFactor float64

	// FadeIn 开始移动时的淡入时长（秒）
	FadeIn float64
	// FadeOut 停止移动时的淡出时长（秒）
	FadeOut float64
	// Adjust 移动中随速度调整音量的过渡时长（秒）
	Adjust float64
	// AdjustThreshold 音量变化超过该值才重新过渡
	AdjustThreshold float64
	// CheckInterval 检查速度的间隔（秒）
	CheckInterval float64

	// HumFrequency 引擎声基频（Hz）
	HumFrequency float64
}

// DefaultEngineSoundConfig 返回默认参数
func DefaultEngineSoundConfig() EngineSoundConfig {
	return EngineSoundConfig{
		BaseVolume:      0.4,
		MinSpeed:        0.5,
		FullVolumeSpeed: 15,
		MinVolumeFactor: 0.3,
		FadeIn:          0.8,
		FadeOut:         1.2,
		Adjust:          0.3,
		AdjustThreshold: 0.02,
		CheckInterval:   0.05,
		HumFrequency:    70,
	}
}

// fade 一次音量过渡
type fade struct {
	from, to float64
	duration float64
	elapsed  float64
}

// EngineSound 引擎声
//
// Update 在帧线程上调用；Streamer 返回的流在音频线程上读取，两者通过互斥锁同步。
type EngineSound struct {
	cfg EngineSoundConfig

	speed   float64
	guided  bool
	enabled bool
	master  float64

	playing    bool
	volume     float64
	fade       *fade
	checkTimer float64

	mu     sync.Mutex
	ctrl   *beep.Ctrl
	output *effects.Volume

	speedSignal  signals.Signal[float64]
	guidedSignal signals.Signal[bool]
}

// NewEngineSound 创建引擎声
//
// 参数:
//   - sr: 采样率
//   - cfg: 引擎声参数
//
// 返回:
//   - *EngineSound: 引擎声（初始静音、启用、主音量 1）
//   - error: 生成音源失败时返回错误
func NewEngineSound(sr beep.SampleRate, cfg EngineSoundConfig) (*EngineSound, error) {
	fundamental, err := generators.SineTone(sr, cfg.HumFrequency)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine hum: %w", err)
	}
	harmonic, err := generators.SineTone(sr, cfg.HumFrequency*2)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine harmonic: %w", err)
	}

	hum := beep.Mix(
		&effects.Gain{Streamer: fundamental, Gain: -0.4},
		&effects.Gain{Streamer: harmonic, Gain: -0.8},
	)
	ctrl := &beep.Ctrl{Streamer: hum, Paused: true}

	e := &EngineSound{
		cfg:     cfg,
		enabled: true,
		master:  1,
		ctrl:    ctrl,
		output:  &effects.Volume{Streamer: ctrl, Base: 2, Silent: true},
	}
	return e, nil
}

// Attach 订阅速度与引导状态信号
func (e *EngineSound) Attach(speed signals.Signal[float64], guided signals.Signal[bool]) {
	e.Detach()

	e.speedSignal = speed
	e.guidedSignal = guided
	speed.AddListener(func(_ context.Context, v float64) {
		e.speed = v
	}, listenerKey)
	guided.AddListener(func(_ context.Context, active bool) {
		e.guided = active
	}, listenerKey)
}

// Detach 取消订阅
func (e *EngineSound) Detach() {
	if e.speedSignal != nil {
		e.speedSignal.RemoveListener(listenerKey)
		e.speedSignal = nil
	}
	if e.guidedSignal != nil {
		e.guidedSignal.RemoveListener(listenerKey)
		e.guidedSignal = nil
	}
}

// SetEnabled 启用或禁用引擎声；禁用时淡出
func (e *EngineSound) SetEnabled(enabled bool) {
	e.enabled = enabled
}

// SetMasterVolume 设置主音量 [0, 1]，正在播放时立即生效
func (e *EngineSound) SetMasterVolume(v float64) {
	e.master = vmath.Clamp(v, 0, 1)
	if e.playing && e.fade == nil {
		e.setVolume(TargetVolume(e.cfg, e.speed, true, e.master))
	}
}

// Volume 返回当前音量
func (e *EngineSound) Volume() float64 { return e.volume }

// IsPlaying 引擎声是否在播放
func (e *EngineSound) IsPlaying() bool { return e.playing }

// TargetVolume 计算目标音量
//
// 不移动时为 0；移动时 = BaseVolume × master × max(√min(speed/FullVolumeSpeed, 1), MinVolumeFactor)。
func TargetVolume(cfg EngineSoundConfig, speed float64, moving bool, master float64) float64 {
	if !moving {
		return 0
	}
	factor := math.Sqrt(math.Min(math.Max(speed, 0)/cfg.FullVolumeSpeed, 1))
	return cfg.BaseVolume * master * math.Max(factor, cfg.MinVolumeFactor)
}

// Update 推进 dt 秒：推进淡入淡出，并每隔 CheckInterval 检查一次速度
func (e *EngineSound) Update(dt float64) {
	e.advanceFade(dt)

	e.checkTimer += dt
	if e.checkTimer < e.cfg.CheckInterval {
		return
	}
	e.checkTimer = math.Mod(e.checkTimer, e.cfg.CheckInterval)
	e.check()
}

func (e *EngineSound) check() {
	if !e.enabled {
		if e.playing && (e.fade == nil || e.fade.to != 0) {
			e.fadeTo(0, e.cfg.FadeOut)
		}
		return
	}

	moving := e.speed > e.cfg.MinSpeed || e.guided
	target := TargetVolume(e.cfg, e.speed, moving, e.master)

	switch {
	case moving && !e.playing:
		e.playing = true
		e.setPaused(false)
		e.fadeTo(target, e.cfg.FadeIn)
		log.Printf("[EngineSound] 开始播放，目标音量 %.2f", target)
	case !moving && e.playing:
		if e.fade == nil || e.fade.to != 0 {
			e.fadeTo(0, e.cfg.FadeOut)
		}
	case moving && e.playing:
		if math.Abs(target-e.volume) > e.cfg.AdjustThreshold {
			e.fadeTo(target, e.cfg.Adjust)
		}
	}
}

func (e *EngineSound) fadeTo(target, duration float64) {
	e.fade = &fade{from: e.volume, to: target, duration: duration}
	if duration <= 0 {
		e.advanceFade(0)
	}
}

func (e *EngineSound) advanceFade(dt float64) {
	f := e.fade
	if f == nil {
		return
	}

	f.elapsed += dt
	progress := 1.0
	if f.duration > 0 {
		progress = math.Min(f.elapsed/f.duration, 1)
	}
	e.setVolume(utils.Lerp(f.from, f.to, utils.EaseOutCubic(progress)))

	if progress < 1 {
		return
	}
	e.fade = nil
	e.setVolume(f.to)
	if f.to == 0 && e.playing {
		e.playing = false
		e.setPaused(true)
	}
}

func (e *EngineSound) setVolume(v float64) {
	e.volume = v

	e.mu.Lock()
	defer e.mu.Unlock()
	if v <= 0 {
		e.output.Silent = true
		e.output.Volume = 0
		return
	}
	e.output.Silent = false
	e.output.Volume = math.Log2(v)
}

func (e *EngineSound) setPaused(paused bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ctrl.Paused = paused
}

// Streamer 返回可交给 speaker.Play 的音频流
func (e *EngineSound) Streamer() beep.Streamer {
	return engineStreamer{e: e}
}

type engineStreamer struct {
	e *EngineSound
}

func (s engineStreamer) Stream(samples [][2]float64) (int, bool) {
	s.e.mu.Lock()
	defer s.e.mu.Unlock()
	return s.e.output.Stream(samples)
}

func (s engineStreamer) Err() error { return nil }
