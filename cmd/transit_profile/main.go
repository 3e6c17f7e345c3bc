// Package main 航行速度曲线导出工具
//
// 在无窗口的场景中执行一次（或一次改道的）航行，逐帧输出 CSV，
// 用于检查起步速度延续、到达减速和滑行衰减。
//
// Usage:
//
//	go run ./cmd/transit_profile --from harbor --to lighthouse
//	go run ./cmd/transit_profile --from harbor --to lighthouse --redirect ridge --redirect-at 2
//	go run ./cmd/transit_profile --from harbor --to lighthouse --cancel-at 1.5
//
// 输出列: frame,time,x,y,z,speed,cameraRadius,transiting,dragging
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/gonewx/anchorflight/pkg/app"
	"github.com/gonewx/anchorflight/pkg/config"
	"github.com/gonewx/anchorflight/pkg/game"
)

var (
	anchorsFlag    = flag.String("anchors", "data/anchors.yaml", "Anchor config file")
	motionFlag     = flag.String("motion", "data/motion.yaml", "Motion config file")
	fromFlag       = flag.String("from", "", "Start anchor (default: config start)")
	toFlag         = flag.String("to", "", "Destination anchor")
	redirectFlag   = flag.String("redirect", "", "Anchor to redirect to mid-transit")
	redirectAtFlag = flag.Float64("redirect-at", 2, "Seconds after start to redirect")
	cancelAtFlag   = flag.Float64("cancel-at", -1, "Seconds after start to cancel (drag); negative disables")
	secondsFlag    = flag.Float64("seconds", 10, "Total simulated seconds")
	tpsFlag        = flag.Int("tps", 60, "Ticks per second")
	verboseFlag    = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if *toFlag == "" {
		fmt.Fprintln(os.Stderr, "--to is required")
		flag.Usage()
		os.Exit(2)
	}

	anchors, err := config.LoadAnchorConfig(*anchorsFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	motionCfg, err := config.LoadMotionConfig(*motionFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	nav := game.NewNavStateManager(nil)
	nav.SetCurrentAnchor(*fromFlag)
	world, err := app.NewWorld(app.WorldOptions{
		TPS:     *tpsFlag,
		Anchors: anchors,
		Motion:  motionCfg,
		Nav:     nav,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if !world.TravelTo(*toFlag) {
		fmt.Fprintf(os.Stderr, "unknown anchor %q\n", *toFlag)
		os.Exit(1)
	}

	if err := writeProfile(os.Stdout, world); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func writeProfile(out io.Writer, world *app.World) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"frame", "time", "x", "y", "z", "speed", "cameraRadius", "transiting", "dragging"}); err != nil {
		return err
	}

	ticks := int(*secondsFlag * float64(*tpsFlag))
	redirectTick := int(*redirectAtFlag * float64(*tpsFlag))
	cancelTick := int(*cancelAtFlag * float64(*tpsFlag))
	ctrl := world.Controller

	for i := 1; i <= ticks; i++ {
		if *redirectFlag != "" && i == redirectTick {
			if !world.TravelTo(*redirectFlag) {
				return fmt.Errorf("unknown anchor %q", *redirectFlag)
			}
		}
		if *cancelAtFlag >= 0 && i == cancelTick {
			ctrl.CancelTransit()
		}

		world.Tick(0)

		pos := world.Craft.Position()
		record := []string{
			strconv.FormatUint(world.Scheduler.Frame(), 10),
			strconv.FormatFloat(world.Scheduler.Now(), 'f', 4, 64),
			strconv.FormatFloat(pos.X(), 'f', 4, 64),
			strconv.FormatFloat(pos.Y(), 'f', 4, 64),
			strconv.FormatFloat(pos.Z(), 'f', 4, 64),
			strconv.FormatFloat(ctrl.CurrentSpeed(), 'f', 4, 64),
			strconv.FormatFloat(world.Camera.Radius(), 'f', 4, 64),
			strconv.FormatBool(ctrl.IsTransiting()),
			strconv.FormatBool(ctrl.IsDragging()),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
