/*
DESCRIPTION
  segment_test.go tests per-pixel classification over a packed YUV 4:2:2
  buffer.

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

import "testing"

func TestSegmentClassifiesMacropixel(t *testing.T) {
	const w, h = 2, 1
	lut := NewColorTable()
	lut.data[lutKey(10, 20, 30)] = 4

	buf := []byte{10, 20, 99, 30} // Y0=10 U=20 Y1=99 V=30
	mask := newActiveMask(w, h)
	out := make([]byte, w*h+1)

	segment(buf, w, h, lut, mask, out)

	if out[0] != 4 || out[1] != unclassified {
		t.Errorf("got %v, want [4 %d]: each pixel is keyed by its own Y with the shared U,V", out[:2], unclassified)
	}
}

// TestSegmentRespectsActiveMask checks the mask is applied per macropixel
// pair: the first pixel's mask byte decides both pixels, so clearing only
// the second pixel's byte changes nothing, while clearing the first skips
// the whole pair.
func TestSegmentRespectsActiveMask(t *testing.T) {
	const w, h = 4, 1
	lut := NewColorTable()
	lut.data[lutKey(10, 20, 30)] = 4

	buf := []byte{10, 20, 10, 30, 10, 20, 10, 30}
	mask := newActiveMask(w, h)
	mask.data[1] = 0 // ignored: pair (0,1) is gated by mask byte 0
	mask.data[2] = 0 // skips pair (2,3)
	out := make([]byte, w*h+1)

	segment(buf, w, h, lut, mask, out)

	if out[0] != 4 || out[1] != 4 {
		t.Errorf("active pair: got %v, want both classified 4", out[:2])
	}
	if out[2] != unclassified || out[3] != unclassified {
		t.Errorf("inactive pair: got %v, want both unclassified", out[2:4])
	}
}

func TestYUV422ToPlanarDuplicatesChroma(t *testing.T) {
	const w, h = 2, 1
	buf := []byte{10, 20, 30, 40}
	out := make([]byte, w*h*3)

	yuv422ToPlanar(buf, w, h, out)

	want := []byte{10, 20, 40, 30, 20, 40}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("byte %d: got %d, want %d", i, out[i], want[i])
		}
	}
}
