/*
DESCRIPTION
  polar.go builds the per-pixel polar lookup tables blob.Camera.SetLocations
  installs, projecting image coordinates to world-relative distance and
  bearing under a simple pinhole camera model.

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

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Geometry describes the fixed camera mount used to project an image
// pixel to a world-relative distance and bearing.
type Geometry struct {
	Height  float64 // Camera mount height above the ground plane, in mm.
	TiltDeg float64 // Downward tilt from horizontal, in degrees.
	HFOVDeg float64 // Horizontal field of view, in degrees.
	VFOVDeg float64 // Vertical field of view, in degrees.
}

// BuildPolar computes a w by h distance and bearing table for a downward-
// tilted camera with the given geometry, saturating to uint16.
//
// Each pixel's vertical offset from center maps to a depression angle
// within the vertical field of view; combined with the tilt and mount
// height, that gives a ground-plane distance via simple right-triangle
// trigonometry. Horizontal offset maps linearly to bearing across the
// horizontal field of view. This is a calibration convenience, not a
// precision surveying tool: a lens distortion model is out of scope.
func BuildPolar(w, h int, geom Geometry) (r, phi []uint16) {
	r = make([]uint16, w*h)
	phi = make([]uint16, w*h)

	tilt := geom.TiltDeg * math.Pi / 180
	hfov := geom.HFOVDeg * math.Pi / 180
	vfov := geom.VFOVDeg * math.Pi / 180

	dists := make([]float64, w*h)
	bearings := make([]float64, w*h)

	for y := 0; y < h; y++ {
		vOffset := (float64(y)/float64(h-1) - 0.5) * vfov
		depression := tilt + vOffset
		var dist float64
		if depression > 0 {
			dist = geom.Height / math.Tan(depression)
		} else {
			dist = math.MaxFloat64
		}

		for x := 0; x < w; x++ {
			hOffset := (float64(x)/float64(w-1) - 0.5) * hfov
			i := y*w + x
			dists[i] = dist
			bearings[i] = hOffset * 180 / math.Pi
		}
	}

	// Saturate the whole distance table against its own observed max
	// (excluding the above-horizon entries, held at math.MaxFloat64 here
	// and saturated to the uint16 maximum below) so nearby, in-range
	// pixels use the full uint16 resolution rather than being dwarfed by
	// a handful of extreme values.
	maxDist := 0.0
	for _, d := range dists {
		if d != math.MaxFloat64 && d > maxDist {
			maxDist = d
		}
	}
	if maxDist == 0 {
		maxDist = 1
	}
	scale := 65535.0 / maxDist
	floats.Scale(scale, dists)

	for i := range dists {
		r[i] = saturateDistance(dists[i])
		phi[i] = saturateBearing(bearings[i])
	}
	return r, phi
}

func saturateDistance(v float64) uint16 {
	if v > math.MaxUint16 || math.IsInf(v, 1) {
		return math.MaxUint16
	}
	if v < 0 {
		return 0
	}
	return uint16(v)
}

// saturateBearing maps a signed degree offset to an unsigned uint16 by
// adding 32768, so 0 degrees reads back as mid-scale.
func saturateBearing(deg float64) uint16 {
	v := deg*100 + 32768
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	if v < 0 {
		return 0
	}
	return uint16(v)
}
