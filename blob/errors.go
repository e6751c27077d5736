/*
DESCRIPTION
  errors.go defines the failure kinds produced by the blob package.

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

import "errors"

// Sentinel errors identifying the failure kinds a Camera can produce.
// Capacity overflows are degraded-mode results rather than hard failures:
// Analyse logs ErrCapacityExceeded and still delivers the usable, partial
// result rather than returning it.
var (
	// ErrDeviceIO indicates the frame source refused an open, enqueue,
	// dequeue or stream-control operation.
	ErrDeviceIO = errors.New("blob: device I/O error")

	// ErrNotOpen indicates an operation was invoked on a Camera that has
	// not been opened, or has since been closed.
	ErrNotOpen = errors.New("blob: camera not open")

	// ErrConfigInvalid indicates a configuration operation was given a
	// value it cannot accept: an unknown control keyword, an odd frame
	// width, or a buffer shape it cannot reconcile by truncation.
	ErrConfigInvalid = errors.New("blob: invalid configuration")

	// ErrCapacityExceeded indicates the run or region table filled up
	// during a frame; the frame's result is truncated but internally
	// consistent.
	ErrCapacityExceeded = errors.New("blob: capacity exceeded")
)
