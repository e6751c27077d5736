/*
DESCRIPTION
  camera_test.go tests the pipeline driver end to end against a fake
  in-memory FrameSource.

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
	"errors"
	"testing"

	"github.com/ausocean/utils/logging"
)

// fakeSource is a minimal device.FrameSource backed by a single
// preloaded buffer, reused across every Dequeue call.
type fakeSource struct {
	w, h    int
	frame   []byte
	dequeue error
	enqueue error
}

func (f *fakeSource) Open(path string, w, h, fps int) error {
	f.w, f.h = w, h
	if f.frame == nil {
		f.frame = make([]byte, 2*w*h)
	}
	return nil
}
func (f *fakeSource) SetControl(id, value int) error { return nil }
func (f *fakeSource) GetControl(id int) (int, error) { return 0, nil }
func (f *fakeSource) Start() error { return nil }
func (f *fakeSource) Stop() error { return nil }
func (f *fakeSource) Close() error { return nil }
func (f *fakeSource) Dequeue() (int, []byte, error) {
	if f.dequeue != nil {
		return -1, nil, f.dequeue
	}
	return 0, f.frame, nil
}
func (f *fakeSource) Enqueue(index int) error { return f.enqueue }

func TestCameraAnalyseAndGetBlobs(t *testing.T) {
	const w, h = 4, 4
	src := &fakeSource{}
	cam := NewCamera((*logging.TestLogger)(t), src)
	if err := cam.Open("", w, h, 30); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := cam.SetColorMinArea(3, 1); err != nil {
		t.Fatalf("SetColorMinArea: %v", err)
	}

	lut := make([]byte, 1<<24)
	for i := range lut {
		lut[i] = unclassified
	}
	lut[lutKey(5, 6, 7)] = 3
	if err := cam.SetColors(lut); err != nil {
		t.Fatalf("SetColors: %v", err)
	}

	for y := 0; y < h; y++ {
		for m := 0; m < w/2; m++ {
			i := y*2*w + 4*m
			src.frame[i], src.frame[i+1], src.frame[i+2], src.frame[i+3] = 5, 6, 5, 7
		}
	}

	if err := cam.Analyse(); err != nil {
		t.Fatalf("Analyse: %v", err)
	}

	rows, err := cam.GetBlobs(3)
	if err != nil {
		t.Fatalf("GetBlobs: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0][ColArea] != w*h {
		t.Errorf("got area %d, want %d", rows[0][ColArea], w*h)
	}

	disabled, err := cam.GetBlobs(0)
	if err != nil {
		t.Fatalf("GetBlobs(0): %v", err)
	}
	if len(disabled) != 0 {
		t.Errorf("disabled color: got %d rows, want 0", len(disabled))
	}
}

// TestCameraAnalyseIdempotent checks that re-running the pipeline on the
// same frame yields an identical segmented image and blob table.
func TestCameraAnalyseIdempotent(t *testing.T) {
	const w, h = 6, 4
	src := &fakeSource{}
	cam := NewCamera((*logging.TestLogger)(t), src)
	if err := cam.Open("", w, h, 30); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := cam.SetColorMinArea(1, 1); err != nil {
		t.Fatalf("SetColorMinArea: %v", err)
	}

	lut := make([]byte, 1<<24)
	for i := range lut {
		lut[i] = unclassified
	}
	lut[lutKey(10, 20, 30)] = 1
	if err := cam.SetColors(lut); err != nil {
		t.Fatalf("SetColors: %v", err)
	}

	// Classify the first macropixel (two pixels) of every row.
	for y := 0; y < h; y++ {
		i := y * 2 * w
		src.frame[i], src.frame[i+1], src.frame[i+2], src.frame[i+3] = 10, 20, 10, 30
	}

	if err := cam.Analyse(); err != nil {
		t.Fatalf("first Analyse: %v", err)
	}
	seg1 := append([]byte(nil), cam.GetSegmented()...)
	blobs1, err := cam.GetBlobs(1)
	if err != nil {
		t.Fatalf("first GetBlobs: %v", err)
	}

	if err := cam.Analyse(); err != nil {
		t.Fatalf("second Analyse: %v", err)
	}
	seg2 := cam.GetSegmented()
	blobs2, err := cam.GetBlobs(1)
	if err != nil {
		t.Fatalf("second GetBlobs: %v", err)
	}

	for i := range seg1 {
		if seg1[i] != seg2[i] {
			t.Fatalf("segmented image differs at %d: %d vs %d", i, seg1[i], seg2[i])
		}
	}
	if len(blobs1) != len(blobs2) {
		t.Fatalf("blob counts differ: %d vs %d", len(blobs1), len(blobs2))
	}
	for i := range blobs1 {
		if blobs1[i] != blobs2[i] {
			t.Errorf("blob %d differs: %v vs %v", i, blobs1[i], blobs2[i])
		}
	}
}

func TestCameraOpenRejectsOddWidth(t *testing.T) {
	cam := NewCamera((*logging.TestLogger)(t), &fakeSource{})
	err := cam.Open("", 5, 4, 30)
	if !errors.Is(err, ErrConfigInvalid) {
		t.Errorf("got %v, want ErrConfigInvalid", err)
	}
}

func TestCameraAnalyseBeforeOpen(t *testing.T) {
	cam := NewCamera((*logging.TestLogger)(t), &fakeSource{})
	if err := cam.Analyse(); !errors.Is(err, ErrNotOpen) {
		t.Errorf("got %v, want ErrNotOpen", err)
	}
}

func TestCameraAnalyseDequeueError(t *testing.T) {
	src := &fakeSource{dequeue: errors.New("boom")}
	cam := NewCamera((*logging.TestLogger)(t), src)
	if err := cam.Open("", 4, 4, 30); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := cam.Analyse(); !errors.Is(err, ErrDeviceIO) {
		t.Errorf("got %v, want ErrDeviceIO", err)
	}
}
