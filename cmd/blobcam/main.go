/*
DESCRIPTION
  blobcam captures YUV 4:2:2 frames from a video device, runs the blob
  extraction pipeline on each frame, and periodically logs per-color blob
  statistics.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main is a driver for the blob extraction pipeline: it opens a
// frame source, installs the color lookup table, active-pixel mask and
// polar lookup tables, then analyses frames at the configured rate.
package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/cmvision/blob"
	"github.com/ausocean/cmvision/calib"
	"github.com/ausocean/cmvision/config"
	"github.com/ausocean/cmvision/device"
	"github.com/ausocean/cmvision/device/file"
	"github.com/ausocean/cmvision/device/gocvsrc"
	"github.com/ausocean/cmvision/device/v4l2"
	"github.com/ausocean/utils/logging"
)

// Logging related constants.
const (
	logPath      = "/var/log/blobcam/blobcam.log"
	logMaxSize   = 500 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

// statsPeriod is how often per-color blob statistics are logged.
const statsPeriod = 10 * time.Second

func main() {
	var cfg config.Config
	flag.StringVar(&cfg.InputPath, "input", config.DefaultInputPath, "Video device path, or raw YUV 4:2:2 file with -file.")
	flag.IntVar(&cfg.Width, "width", config.DefaultWidth, "Frame width (must be even).")
	flag.IntVar(&cfg.Height, "height", config.DefaultHeight, "Frame height.")
	flag.IntVar(&cfg.FrameRate, "rate", config.DefaultFrameRate, "Capture frame rate.")
	flag.IntVar(&cfg.BufferSize, "buffers", config.DefaultBufferSize, "Number of capture buffers to request.")
	flag.StringVar(&cfg.LUTPath, "lut", "", "Path to the color lookup table.")
	flag.StringVar(&cfg.ActiveMaskPath, "mask", "", "Path to the active-pixel mask.")
	flag.StringVar(&cfg.LocRPath, "locr", "", "Path to the distance lookup table.")
	flag.StringVar(&cfg.LocPhiPath, "locphi", "", "Path to the angle lookup table.")
	flag.BoolVar(&cfg.WatchCalibFiles, "watch", false, "Hot-reload calibration files on change.")
	useFile := flag.Bool("file", false, "Read frames from a raw YUV 4:2:2 file instead of a V4L2 device.")
	useGocv := flag.Bool("gocv", false, "Capture via OpenCV; needs a build with the withcv tag (add debug for a live blob overlay window).")
	minAreas := flag.String("minareas", "", "Per-color minimum areas as color:area pairs, e.g. 1:50,2:200. Unlisted colors are disabled.")
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	l := logging.New(logVerbosity, fileLog, logSuppress)
	cfg.Logger = l

	if err := cfg.Validate(); err != nil {
		l.Fatal("invalid configuration", "error", err)
	}

	var src device.FrameSource
	var gv *gocvsrc.Source
	switch {
	case *useGocv:
		gv = gocvsrc.New()
		src = gv
	case *useFile:
		src = file.New(l, cfg.InputPath, true)
	default:
		src = v4l2.New(cfg.BufferSize)
	}

	cam := blob.NewCamera(l, src)
	if err := cam.Open(cfg.InputPath, cfg.Width, cfg.Height, cfg.FrameRate); err != nil {
		l.Fatal("could not open camera", "error", err)
	}
	defer cam.Close()

	enabled, err := setMinAreas(cam, *minAreas)
	if err != nil {
		l.Fatal("could not parse -minareas", "error", err)
	}

	if err := install(cam, &cfg); err != nil {
		l.Fatal("could not install calibration tables", "error", err)
	}

	if cfg.WatchCalibFiles {
		w, err := calib.NewWatcher(l, cam, cfg.LUTPath, cfg.ActiveMaskPath, cfg.LocRPath, cfg.LocPhiPath)
		if err != nil {
			l.Fatal("could not watch calibration files", "error", err)
		}
		defer w.Close()
	}

	if err := cam.Start(); err != nil {
		l.Fatal("could not start streaming", "error", err)
	}
	defer cam.Stop()

	// Under systemd this reports readiness; elsewhere it's a no-op.
	if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		l.Warning("sd_notify failed", "error", err)
	}
	l.Info("streaming", "input", cfg.InputPath, "width", cfg.Width, "height", cfg.Height, "rate", cfg.FrameRate)

	lastStats := time.Now()
	for {
		if err := cam.Analyse(); err != nil {
			l.Error("analyse failed", "error", err)
			time.Sleep(time.Second)
			continue
		}

		if gv != nil {
			showBlobs(l, cam, gv, enabled)
		}

		if time.Since(lastStats) >= statsPeriod {
			lastStats = time.Now()
			logStats(l, cam, enabled)
		}
	}
}

// showBlobs feeds the analysed frame's blobs for every enabled color to
// the gocv source's debug overlay.
func showBlobs(l logging.Logger, cam *blob.Camera, src *gocvsrc.Source, colors []int) {
	var overlay []gocvsrc.Blob
	for _, c := range colors {
		rows, err := cam.GetBlobs(c)
		if err != nil {
			l.Error("get blobs failed", "color", c, "error", err)
			continue
		}
		for _, r := range rows {
			overlay = append(overlay, gocvsrc.Blob{
				X1: int(r[blob.ColX1]), Y1: int(r[blob.ColY1]),
				X2: int(r[blob.ColX2]), Y2: int(r[blob.ColY2]),
				CenX: int(r[blob.ColCenX]), CenY: int(r[blob.ColCenY]),
			})
		}
	}
	src.ShowBlobs(overlay)
}

// setMinAreas applies a color:area specification like "1:50,2:200" to cam
// and returns the colors it enabled.
func setMinAreas(cam *blob.Camera, spec string) ([]int, error) {
	if spec == "" {
		return nil, nil
	}
	var enabled []int
	for _, pair := range strings.Split(spec, ",") {
		c, a, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("bad pair %q", pair)
		}
		color, err := strconv.Atoi(c)
		if err != nil {
			return nil, fmt.Errorf("bad color in %q: %w", pair, err)
		}
		area, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("bad area in %q: %w", pair, err)
		}
		if err := cam.SetColorMinArea(color, area); err != nil {
			return nil, err
		}
		enabled = append(enabled, color)
	}
	return enabled, nil
}

// install loads and installs any calibration files named in cfg.
func install(cam *blob.Camera, cfg *config.Config) error {
	if cfg.LUTPath != "" {
		lut, err := calib.ReadLUT(cfg.LUTPath)
		if err != nil {
			return err
		}
		if err := cam.SetColors(lut); err != nil {
			return err
		}
	}
	if cfg.ActiveMaskPath != "" {
		mask, err := calib.ReadMask(cfg.ActiveMaskPath)
		if err != nil {
			return err
		}
		if err := cam.SetActivePixels(mask); err != nil {
			return err
		}
	}
	if cfg.LocRPath != "" && cfg.LocPhiPath != "" {
		r, phi, err := calib.ReadLocations(cfg.LocRPath, cfg.LocPhiPath)
		if err != nil {
			return err
		}
		if err := cam.SetLocations(r, phi); err != nil {
			return err
		}
	}
	return nil
}

// logStats logs one line of area statistics per enabled color.
func logStats(l logging.Logger, cam *blob.Camera, colors []int) {
	for _, c := range colors {
		s, err := cam.AreaStats(c)
		if err != nil {
			l.Error("area stats failed", "color", c, "error", err)
			continue
		}
		l.Info("blob stats", "color", c, "count", s.Count, "meanArea", s.Mean, "varArea", s.Variance, "minArea", s.Min, "maxArea", s.Max)
	}
}
