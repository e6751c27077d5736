/*
DESCRIPTION
  device.go provides FrameSource, an interface describing a configurable
  video capture device that yields interleaved YUV 4:2:2 buffers through
  enqueue/dequeue semantics.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package device provides FrameSource, the consumed interface the blob
// package's pipeline driver uses to obtain raw YUV 4:2:2 frames, and a
// handful of implementations of it.
package device

import "fmt"

// FrameSource is a configurable video capture device from which raw YUV
// 4:2:2 frames may be obtained. A realization is typically a Linux V4L2
// memory-mapped capture device with a handful of buffers, format YUYV,
// interlaced field mode, but any implementation honoring this contract
// may be substituted.
type FrameSource interface {
	// Open opens the device at path and configures it for w by h capture
	// at fps frames per second.
	Open(path string, w, h, fps int) error

	// SetControl and GetControl set and get a device control identified by
	// an implementation-defined id (for a V4L2 device, a V4L2_CID_*
	// constant).
	SetControl(id, value int) error
	GetControl(id int) (int, error)

	// Start begins streaming; Stop ends it. After Stop, Dequeue fails.
	Start() error
	Stop() error

	// Dequeue blocks (up to an implementation-defined timeout, 2 seconds
	// for the reference V4L2 realization) until a filled buffer is
	// available, then returns its index and a view of its bytes. The
	// buffer remains owned by the source until Enqueue(index) is called;
	// the returned slice must not be used after that call.
	Dequeue() (index int, buf []byte, err error)

	// Enqueue returns a previously dequeued buffer to the source so it may
	// be refilled. A caller must enqueue every buffer it dequeues before
	// considering a frame complete.
	Enqueue(index int) error

	// Close releases the device. Operations other than Open called after
	// Close return an error.
	Close() error
}

// MultiError collects several errors into one, so that one failure does
// not hide another: device/v4l2's Source.Close uses it to report every
// munmap and close failure together.
type MultiError []error

func (me MultiError) Error() string {
	if len(me) == 0 {
		panic("device: invalid use of MultiError")
	}
	return fmt.Sprintf("%v", []error(me))
}
