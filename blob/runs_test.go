/*
DESCRIPTION
  runs_test.go tests the run-length encoder.

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

func enabledClasses() *[ColorCount]ColorClass {
	var classes [ColorCount]ColorClass
	for i := range classes {
		classes[i] = ColorClass{Index: byte(i), MinArea: 0}
	}
	return &classes
}

func disabledClasses() *[ColorCount]ColorClass {
	var classes [ColorCount]ColorClass
	for i := range classes {
		classes[i] = ColorClass{Index: byte(i), MinArea: MaxInt}
	}
	return &classes
}

// TestEncodeRunsOneClass covers the 4x4 one-class frame scenario: every
// pixel classified the same color, so each row should yield exactly one
// run spanning the full width.
func TestEncodeRunsOneClass(t *testing.T) {
	const w, h = 4, 4
	segmented := make([]byte, w*h+1)
	for i := 0; i < w*h; i++ {
		segmented[i] = 2
	}

	classes := enabledClasses()
	runs := make([]Run, 16)
	n, overflowed := encodeRuns(segmented, w, h, classes, runs)
	if overflowed {
		t.Fatal("unexpected overflow")
	}
	if n != h {
		t.Fatalf("got %d runs, want %d", n, h)
	}
	for y := 0; y < h; y++ {
		r := runs[y]
		if r.Y != y || r.X != 0 || r.Width != w || r.Color != 2 {
			t.Errorf("row %d: got %+v", y, r)
		}
	}
}

// TestEncodeRunsTwoColorRow covers the 6x1 two-color row scenario.
func TestEncodeRunsTwoColorRow(t *testing.T) {
	const w, h = 6, 1
	segmented := []byte{1, 1, 1, 3, 3, 3, unclassified}

	classes := enabledClasses()
	runs := make([]Run, 8)
	n, overflowed := encodeRuns(segmented, w, h, classes, runs)
	if overflowed {
		t.Fatal("unexpected overflow")
	}
	if n != 2 {
		t.Fatalf("got %d runs, want 2", n)
	}
	want := []Run{
		{Y: 0, X: 0, Width: 3, Color: 1, parent: 0},
		{Y: 0, X: 3, Width: 3, Color: 3, parent: 1},
	}
	for i, w := range want {
		if runs[i].Y != w.Y || runs[i].X != w.X || runs[i].Width != w.Width || runs[i].Color != w.Color {
			t.Errorf("run %d: got %+v, want %+v", i, runs[i], w)
		}
	}
}

// TestEncodeRunsDisabledClass covers the disabled-class scenario: every
// pixel has a color, but no class is enabled, so every row should still
// yield exactly one terminating run (the run-count invariant: one row
// boundary run minimum) and overall byte classification is irrelevant to
// whether rows are represented.
func TestEncodeRunsDisabledClass(t *testing.T) {
	const w, h = 3, 3
	segmented := make([]byte, w*h+1)
	for i := 0; i < w*h; i++ {
		segmented[i] = 1
	}

	classes := disabledClasses()
	runs := make([]Run, 16)
	n, overflowed := encodeRuns(segmented, w, h, classes, runs)
	if overflowed {
		t.Fatal("unexpected overflow")
	}
	if n != h {
		t.Fatalf("got %d runs, want %d (one row-terminating run per row)", n, h)
	}
}

// TestEncodeRunsTrailingUnclassified checks a row ending in unclassified
// pixels: the terminator byte is itself the unclassified value, so the
// scan must still stop at the row boundary and report the true width.
func TestEncodeRunsTrailingUnclassified(t *testing.T) {
	const w, h = 4, 2
	segmented := []byte{
		1, 1, unclassified, unclassified,
		unclassified, unclassified, unclassified, unclassified,
		unclassified, // sentinel scratch byte
	}

	classes := enabledClasses()
	runs := make([]Run, 8)
	n, overflowed := encodeRuns(segmented, w, h, classes, runs)
	if overflowed {
		t.Fatal("unexpected overflow")
	}
	if n != 3 {
		t.Fatalf("got %d runs, want 3", n)
	}
	want := []Run{
		{Y: 0, X: 0, Width: 2, Color: 1},
		{Y: 0, X: 2, Width: 2, Color: unclassified},
		{Y: 1, X: 0, Width: 4, Color: unclassified},
	}
	for i, wr := range want {
		if runs[i].Y != wr.Y || runs[i].X != wr.X || runs[i].Width != wr.Width || runs[i].Color != wr.Color {
			t.Errorf("run %d: got %+v, want %+v", i, runs[i], wr)
		}
	}
}

// TestEncodeRunsOverflow checks that encodeRuns stops cleanly and reports
// overflow once the run table fills, without indexing past its capacity.
func TestEncodeRunsOverflow(t *testing.T) {
	const w, h = 4, 4
	segmented := make([]byte, w*h+1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			segmented[y*w+x] = byte(x % 2)
		}
	}

	classes := enabledClasses()
	runs := make([]Run, 2)
	n, overflowed := encodeRuns(segmented, w, h, classes, runs)
	if !overflowed {
		t.Fatal("expected overflow")
	}
	if n != len(runs) {
		t.Fatalf("got %d runs, want %d", n, len(runs))
	}
}

// TestEncodeRunsEmptyFrame checks the degenerate zero-size frame.
func TestEncodeRunsEmptyFrame(t *testing.T) {
	segmented := make([]byte, 1)
	classes := enabledClasses()
	runs := make([]Run, 4)
	n, overflowed := encodeRuns(segmented, 0, 0, classes, runs)
	if overflowed || n != 0 {
		t.Fatalf("got n=%d overflowed=%v, want 0, false", n, overflowed)
	}
}
