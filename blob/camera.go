/*
DESCRIPTION
  camera.go implements the pipeline driver: it owns one frame's worth of
  preallocated state (segmented image, run table, region table, per-color
  lists) and orchestrates the segmenter, run encoder, labeler, region
  extractor, color splitter and radix sorter once per Analyse call.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package blob

import (
	"fmt"

	"github.com/ausocean/cmvision/device"
	"github.com/ausocean/utils/logging"
)

// Camera is the pipeline driver. It owns a FrameSource and all of the
// fixed-capacity, per-frame state the segmentation pipeline reads and
// writes: there is no per-frame allocation on the Analyse hot path. The
// one allocation GetBlobs makes for its report table is caller-owned.
//
// Running two frames concurrently through one Camera is undefined: all of
// this state is scoped to the instance and mutated in place each frame.
type Camera struct {
	log logging.Logger
	src device.FrameSource

	w, h int

	lut     *ColorTable
	mask    *ActiveMask
	polar   *PolarTable
	classes [ColorCount]ColorClass

	segmented []byte // w*h+1 bytes; see runs.go on the trailing scratch byte.
	runs      []Run
	regions   []Region

	runCount    int
	regionCount int
	maxArea     int
	passes      int

	opened bool
}

// NewCamera returns a Camera that will drive src. Open must be called
// before Analyse.
func NewCamera(log logging.Logger, src device.FrameSource) *Camera {
	c := &Camera{log: log, src: src, lut: NewColorTable()}
	for i := range c.classes {
		c.classes[i] = ColorClass{Index: byte(i), MinArea: MaxInt}
	}
	return c
}

// Open opens the underlying frame source at path, configured for w by h
// capture at fps frames per second, and allocates the segmented image, run
// table and region table for that resolution. An odd width is rejected:
// the YUV 4:2:2 packing carries two pixels per macropixel.
func (c *Camera) Open(path string, w, h, fps int) error {
	if w <= 0 || h <= 0 || w > MaxWidth || h > MaxHeight {
		return fmt.Errorf("%w: resolution %dx%d out of range", ErrConfigInvalid, w, h)
	}
	if w%2 != 0 {
		return fmt.Errorf("%w: width %d must be even", ErrConfigInvalid, w)
	}

	if err := c.src.Open(path, w, h, fps); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceIO, err)
	}

	c.w, c.h = w, h
	c.mask = newActiveMask(w, h)
	c.polar = NewPolarTable(w, h)
	c.segmented = make([]byte, w*h+1)
	c.runs = make([]Run, w*h/4)
	c.regions = make([]Region, w*h/16)
	c.opened = true
	return nil
}

// Start begins streaming from the underlying frame source.
func (c *Camera) Start() error {
	if !c.opened {
		return ErrNotOpen
	}
	if err := c.src.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceIO, err)
	}
	return nil
}

// Stop ends streaming from the underlying frame source.
func (c *Camera) Stop() error {
	if !c.opened {
		return ErrNotOpen
	}
	if err := c.src.Stop(); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceIO, err)
	}
	return nil
}

// Close stops and releases the underlying frame source.
func (c *Camera) Close() error {
	if !c.opened {
		return nil
	}
	c.opened = false
	if err := c.src.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceIO, err)
	}
	return nil
}

// Shape returns the configured (height, width) of the camera.
func (c *Camera) Shape() (height, width int) { return c.h, c.w }

// SetColorMinArea sets the minimum reportable area for color. A min area of
// MaxInt disables the class: it is skipped by run encoding and region
// extraction, and GetBlobs for it always returns zero rows.
func (c *Camera) SetColorMinArea(color int, minArea int) error {
	if color < 0 || color >= ColorCount {
		return fmt.Errorf("%w: color %d out of range", ErrConfigInvalid, color)
	}
	c.classes[color].MinArea = minArea
	return nil
}

// SetColors installs lut as the color classification table. A buffer
// shorter than the full 16MB table is accepted, copying only as many
// bytes as it holds; longer buffers are truncated to fit.
func (c *Camera) SetColors(lut []byte) error {
	c.lut.Load(lut)
	return nil
}

// SetActivePixels installs mask as the active-pixel participation mask.
func (c *Camera) SetActivePixels(mask []byte) error {
	if !c.opened {
		return ErrNotOpen
	}
	c.mask.Load(mask)
	return nil
}

// SetLocations installs r and phi as the polar distance and angle lookup
// tables used by GetBlobs to report a centroid's world-relative position.
func (c *Camera) SetLocations(r, phi []uint16) error {
	if !c.opened {
		return ErrNotOpen
	}
	c.polar.Load(r, phi)
	return nil
}

// Analyse runs the full pipeline on the next frame: it dequeues a raw YUV
// 4:2:2 buffer, segments it over active pixels, run-length encodes,
// labels connected components, extracts region statistics, separates
// regions by color and determines the radix sort digit count, then
// returns the buffer to the frame source.
//
// Analyse is all-or-nothing at the frame level: if dequeuing fails, no
// segmentation state is updated and the error is returned. A run or
// region table overflow is not an error: it is a degraded-mode result,
// logged via the Camera's logger, with every region recorded up to that
// point left complete and consistent.
func (c *Camera) Analyse() error {
	if !c.opened {
		return ErrNotOpen
	}

	index, buf, err := c.src.Dequeue()
	if err != nil {
		return fmt.Errorf("%w: dequeue failed: %v", ErrDeviceIO, err)
	}

	segment(buf, c.w, c.h, c.lut, c.mask, c.segmented)

	var runsOverflowed, regionsOverflowed bool
	c.runCount, runsOverflowed = encodeRuns(c.segmented, c.w, c.h, &c.classes, c.runs)
	if runsOverflowed {
		c.log.Warning("run table overflowed, frame truncated", "error", ErrCapacityExceeded, "maxRuns", len(c.runs))
	}

	connectComponents(c.runs, c.runCount, &c.classes)

	c.regionCount, regionsOverflowed = extractRegions(c.runs, c.runCount, &c.classes, c.regions)
	if regionsOverflowed {
		c.log.Warning("region table overflowed, frame truncated", "error", ErrCapacityExceeded, "maxRegions", len(c.regions))
	}

	c.maxArea = separateRegions(c.regions, c.regionCount, &c.classes)
	c.passes = passesFor(c.maxArea)

	if err := c.src.Enqueue(index); err != nil {
		return fmt.Errorf("%w: enqueue failed: %v", ErrDeviceIO, err)
	}
	return nil
}

// GetSegmented returns a borrowed view of the last segmentation; it is
// valid until the next Analyse call.
func (c *Camera) GetSegmented() []byte {
	return c.segmented[:c.w*c.h]
}

// GetBlobs sorts color's region list by area (ascending) and returns one
// BlobRow per surviving region. A color with no surviving regions, or a
// disabled color, returns a nil (zero-row) slice rather than an error:
// "no blobs" and "error" are distinct outcomes.
func (c *Camera) GetBlobs(color int) ([]BlobRow, error) {
	if color < 0 || color >= ColorCount {
		return nil, fmt.Errorf("%w: color %d out of range", ErrConfigInvalid, color)
	}
	// Sorting relinks the list, so store the new head back: a repeated
	// query for the same color must walk the full list, not a suffix
	// starting at the old head.
	sorted := sortRegions(c.classes[color].list, c.passes)
	c.classes[color].list = sorted
	return report(sorted, c.w, c.polar), nil
}

// Image performs an independent dequeue/enqueue cycle (unrelated to the
// segmentation state Analyse maintains) and returns a debug (H, W, 3)
// byte image of the raw frame in Y, U, V channel order: each macropixel's
// chroma is duplicated across both of its luma samples, with no true
// chroma upsampling.
func (c *Camera) Image() ([]byte, error) {
	if !c.opened {
		return nil, ErrNotOpen
	}

	index, buf, err := c.src.Dequeue()
	if err != nil {
		return nil, fmt.Errorf("%w: dequeue failed: %v", ErrDeviceIO, err)
	}

	img := make([]byte, c.w*c.h*3)
	yuv422ToPlanar(buf, c.w, c.h, img)

	if err := c.src.Enqueue(index); err != nil {
		return nil, fmt.Errorf("%w: enqueue failed: %v", ErrDeviceIO, err)
	}
	return img, nil
}
