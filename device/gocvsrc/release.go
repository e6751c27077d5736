//go:build !debug && withcv
// +build !debug,withcv

/*
DESCRIPTION
  release.go is the no-op counterpart of debug.go for non-debug builds.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gocvsrc

import "gocv.io/x/gocv"

// debugWindows is a no-op in release builds.
type debugWindows struct{}

// close is a no-op.
func (d *debugWindows) close() error { return nil }

// newWindows returns a no-op debugWindows.
func newWindows(name string) debugWindows { return debugWindows{} }

// show is a no-op.
func (d *debugWindows) show(img gocv.Mat, blobs []Blob) {}
