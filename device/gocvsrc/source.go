//go:build withcv
// +build withcv

/*
DESCRIPTION
  source.go implements device.FrameSource backed by gocv.VideoCapture, for
  development and testing against a USB webcam or video file without a
  V4L2-capable device or root access.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package gocvsrc provides a device.FrameSource backed by gocv's
// VideoCapture, built only when the withcv build tag is set.
package gocvsrc

import (
	"fmt"

	"github.com/ausocean/cmvision/device"
	"gocv.io/x/gocv"
)

var _ device.FrameSource = (*Source)(nil)

// Source is a device.FrameSource backed by gocv.VideoCapture. Unlike the
// V4L2 source, it doesn't expose an mmap buffer pool: Dequeue always
// returns buffer index 0, backed by a single reused conversion buffer, and
// Enqueue is a no-op.
type Source struct {
	cap     *gocv.VideoCapture
	w, h    int
	mat     gocv.Mat
	yuv     gocv.Mat
	out     []byte
	running bool
	dbg     debugWindows
}

// New returns an unopened gocv-backed Source.
func New() *Source {
	return &Source{mat: gocv.NewMat(), yuv: gocv.NewMat()}
}

// Open opens path (a device index string like "0", or a video file path)
// and requests w by h capture at fps frames per second. gocv.VideoCapture
// does not guarantee the requested resolution/rate; downstream use of w, h
// assumes the device honors it.
func (s *Source) Open(path string, w, h, fps int) error {
	cap, err := gocv.OpenVideoCapture(path)
	if err != nil {
		return fmt.Errorf("gocvsrc: open %q: %w", path, err)
	}
	cap.Set(gocv.VideoCaptureFrameWidth, float64(w))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(h))
	cap.Set(gocv.VideoCaptureFPS, float64(fps))

	s.cap = cap
	s.w, s.h = w, h
	s.out = make([]byte, 2*w*h)
	s.dbg = newWindows("gocvsrc")
	return nil
}

// SetControl and GetControl are no-ops: gocv.VideoCapture exposes a
// different property model (gocv.VideoCaptureProperties) than V4L2_CID_*
// ids, and no component of this pipeline drives both sources with the
// same id space.
func (s *Source) SetControl(id, value int) error { return nil }
func (s *Source) GetControl(id int) (int, error) { return 0, nil }

// Start marks the source running.
func (s *Source) Start() error {
	s.running = true
	return nil
}

// Stop marks the source stopped.
func (s *Source) Stop() error {
	s.running = false
	return nil
}

// Close releases the underlying capture and conversion mats.
func (s *Source) Close() error {
	s.dbg.close()
	s.yuv.Close()
	s.mat.Close()
	if s.cap == nil {
		return nil
	}
	return s.cap.Close()
}

// Dequeue reads one frame, converts it to packed YUV 4:2:2 (subsampling
// chroma by taking the left pixel of each horizontal pair, since gocv's
// YCrCb conversion is 4:4:4), and returns it as buffer index 0.
func (s *Source) Dequeue() (int, []byte, error) {
	if !s.running {
		return -1, nil, fmt.Errorf("gocvsrc: source is not running")
	}
	if ok := s.cap.Read(&s.mat); !ok || s.mat.Empty() {
		return -1, nil, fmt.Errorf("gocvsrc: read failed or empty frame")
	}

	gocv.CvtColor(s.mat, &s.yuv, gocv.ColorBGRToYCrCb)
	ycc, err := s.yuv.DataPtrUint8()
	if err != nil {
		return -1, nil, fmt.Errorf("gocvsrc: mat data: %w", err)
	}
	packYUV422(ycc, s.w, s.h, s.out)
	return 0, s.out, nil
}

// ShowBlobs draws blobs over the most recently dequeued frame and
// displays it in the debug window. It is a no-op in non-debug builds.
// The caller runs it after analysing the frame, which is why the drawing
// lives here rather than in Dequeue: no blob data exists until then.
func (s *Source) ShowBlobs(blobs []Blob) {
	if s.mat.Empty() {
		return
	}
	s.dbg.show(s.mat, blobs)
}

// Enqueue is a no-op: gocv.VideoCapture owns its own frame buffering.
func (s *Source) Enqueue(index int) error { return nil }

// packYUV422 downsamples a 3-channel Y,Cr,Cb buffer (h*w*3 bytes, 4:4:4)
// into packed YUYV 4:2:2 (2*w*h bytes), taking chroma from the first pixel
// of each horizontal pair.
func packYUV422(ycc []byte, w, h int, out []byte) {
	for y := 0; y < h; y++ {
		srcRow := ycc[y*w*3:]
		dstRow := out[y*2*w:]
		for x := 0; x < w; x += 2 {
			y0 := srcRow[x*3]
			cr := srcRow[x*3+1]
			cb := srcRow[x*3+2]
			y1 := srcRow[(x+1)*3]

			i := x * 2
			dstRow[i] = y0
			dstRow[i+1] = cb
			dstRow[i+2] = y1
			dstRow[i+3] = cr
		}
	}
}
