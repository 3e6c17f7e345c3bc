package audio

import (
	"fmt"
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate 引擎声使用的采样率
const SampleRate = beep.SampleRate(44100)

// StartOutput 初始化系统音频输出并开始播放引擎声
//
// 没有可用音频设备时返回错误，调用方可以继续运行（引擎声逻辑照常推进，只是听不到）。
//
// 参数:
//   - engine: 引擎声
//
// 返回:
//   - func(): 关闭音频输出
//   - error: 音频设备初始化失败
func StartOutput(engine *EngineSound) (func(), error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(engine.Streamer())
	log.Printf("[EngineSound] Audio output started at %d Hz", SampleRate)

	return speaker.Close, nil
}
