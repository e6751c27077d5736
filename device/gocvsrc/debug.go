//go:build debug && withcv
// +build debug,withcv

/*
DESCRIPTION
  debug.go displays the frame gocvsrc.Source last read with blob bounding
  boxes and centroids drawn over it, for interactive development.

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

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// debugWindows displays the captured frame with a blob overlay in a live
// window.
type debugWindows struct {
	window *gocv.Window
}

// close frees the window.
func (d *debugWindows) close() error {
	if d.window == nil {
		return nil
	}
	return d.window.Close()
}

// newWindows creates a debug window named name.
func newWindows(name string) debugWindows {
	return debugWindows{window: gocv.NewWindow(name)}
}

// show draws each blob's bounding box and centroid over img, then
// displays it and pumps the window's event loop.
func (d *debugWindows) show(img gocv.Mat, blobs []Blob) {
	var drkRed = color.RGBA{191, 0, 0, 0}
	var lhtRed = color.RGBA{191, 31, 31, 0}

	for _, b := range blobs {
		// Bounding boxes are inclusive; image.Rect's maximum is not.
		gocv.Rectangle(&img, image.Rect(b.X1, b.Y1, b.X2+1, b.Y2+1), lhtRed, 1)
		gocv.Circle(&img, image.Pt(b.CenX, b.CenY), 3, drkRed, -1)
	}

	d.window.IMShow(img)
	d.window.WaitKey(1)
}
