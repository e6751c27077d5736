/*
DESCRIPTION
  polar_test.go tests polar lookup table construction.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package calib

import "testing"

func TestBuildPolar(t *testing.T) {
	const w, h = 8, 6
	geom := Geometry{Height: 300, TiltDeg: 45, HFOVDeg: 60, VFOVDeg: 40}
	r, phi := BuildPolar(w, h, geom)

	if len(r) != w*h || len(phi) != w*h {
		t.Fatalf("got table sizes %d, %d, want %d", len(r), len(phi), w*h)
	}

	// Rows nearer the top of the image look further away: distance must
	// not increase down any column.
	for x := 0; x < w; x++ {
		for y := 1; y < h; y++ {
			above := r[(y-1)*w+x]
			here := r[y*w+x]
			if here > above {
				t.Fatalf("distance increases down column %d: row %d %d > row %d %d", x, y, here, y-1, above)
			}
		}
	}

	// Bearing must increase strictly left to right along a row, passing
	// through mid-scale between the two center columns.
	for y := 0; y < h; y++ {
		for x := 1; x < w; x++ {
			if phi[y*w+x] <= phi[y*w+x-1] {
				t.Fatalf("bearing not increasing at (%d,%d)", x, y)
			}
		}
		left := phi[y*w+w/2-1]
		right := phi[y*w+w/2]
		if left >= 32768 || right <= 32768 {
			t.Errorf("row %d: center bearings %d, %d do not straddle mid-scale", y, left, right)
		}
	}
}

func TestBuildPolarAboveHorizon(t *testing.T) {
	// Zero tilt points the camera at the horizon: the top half of the
	// image is at or above it and must saturate to the maximum distance.
	const w, h = 4, 4
	r, _ := BuildPolar(w, h, Geometry{Height: 300, TiltDeg: 0, HFOVDeg: 60, VFOVDeg: 40})
	for x := 0; x < w; x++ {
		if r[x] != 65535 {
			t.Errorf("pixel (%d,0): got %d, want saturation to 65535", x, r[x])
		}
	}
}
