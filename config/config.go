/*
DESCRIPTION
  config.go contains the configuration settings for the blob pipeline
  driver, modeled on revid/config's Config struct: a flat set of tunables,
  validated and defaulted field by field, with bad fields logged rather
  than rejected outright.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package config contains the configuration settings for the blob pipeline
// driver binary.
package config

import (
	"errors"

	"github.com/ausocean/utils/logging"
)

// Configuration defaults.
const (
	DefaultInputPath  = "/dev/video0"
	DefaultWidth      = 640
	DefaultHeight     = 480
	DefaultFrameRate  = 30
	DefaultBufferSize = 3
)

// Field validation errors. Validate returns ErrOddWidth; it does not return
// or log the others; a bad or unset field is defaulted and reported through
// LogInvalidField instead.
var (
	ErrBadInputPath  = errors.New("input path bad or unset, defaulting")
	ErrBadWidth      = errors.New("width bad or unset, defaulting")
	ErrBadHeight     = errors.New("height bad or unset, defaulting")
	ErrBadFrameRate  = errors.New("frame rate bad or unset, defaulting")
	ErrOddWidth      = errors.New("width must be even")
	ErrBadBufferSize = errors.New("buffer count bad or unset, defaulting")
)

// Config holds the tunables for the blob pipeline driver: which device to
// open, at what resolution and frame rate, and where to find the LUT,
// active-pixel mask and polar lookup tables it should install before
// streaming begins.
type Config struct {
	Logger logging.Logger

	InputPath  string // Device path, e.g. "/dev/video0".
	Width      int    // Frame width; must be even.
	Height     int    // Frame height.
	FrameRate  int    // Capture frame rate.
	BufferSize int    // Number of mmap buffers to request.

	LUTPath         string // Path to the 16MB color lookup table.
	ActiveMaskPath  string // Path to the W*H active-pixel mask.
	LocRPath        string // Path to the W*H uint16 distance lookup table.
	LocPhiPath      string // Path to the W*H uint16 angle lookup table.
	WatchCalibFiles bool   // Hot-reload the above four files on change.

	MinArea [10]int // Per-color minimum reportable area; see blob.MaxInt.
}

// Validate checks the fields of c for validity, logging and defaulting any
// that are bad or unset. An odd width is the one field that can't be
// sensibly defaulted, so it alone is returned as an error.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		c.LogInvalidField("InputPath", DefaultInputPath)
		c.InputPath = DefaultInputPath
	}
	if c.Width <= 0 {
		c.LogInvalidField("Width", DefaultWidth)
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.LogInvalidField("Height", DefaultHeight)
		c.Height = DefaultHeight
	}
	if c.FrameRate <= 0 {
		c.LogInvalidField("FrameRate", DefaultFrameRate)
		c.FrameRate = DefaultFrameRate
	}
	if c.BufferSize <= 0 {
		c.LogInvalidField("BufferSize", DefaultBufferSize)
		c.BufferSize = DefaultBufferSize
	}
	if c.Width%2 != 0 {
		return ErrOddWidth
	}
	return nil
}

// LogInvalidField logs that field was bad or unset and def was substituted,
// matching revid/config.Config.LogInvalidField's call shape.
func (c *Config) LogInvalidField(field string, def interface{}) {
	c.Logger.Info(field+" bad or unset, defaulting", field, def)
}
