/*
DESCRIPTION
  plot.go renders debug PNGs: a scatter of one frame's blob centroids
  sized by area, and a heat map of a polar lookup table, for verifying a
  LUT, mask or calibration change without a live OpenCV window.

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
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Blob is the subset of a reported blob row plot.go needs: it is
// defined independently of blob.BlobRow so this package does not need to
// import blob for a debug-only concern.
type Blob struct {
	CenX, CenY float64
	Area       float64
}

// PlotBlobs renders one scatter point per blob, sized by the square root
// of its area, over a w by h canvas, and writes it to path as a PNG.
func PlotBlobs(blobs []Blob, w, h int, path string) error {
	p := plot.New()
	p.Title.Text = "blob centroids"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Min, p.X.Max = 0, float64(w)
	p.Y.Min, p.Y.Max = 0, float64(h)

	maxArea := 1.0
	for _, b := range blobs {
		if b.Area > maxArea {
			maxArea = b.Area
		}
	}

	pts := make(plotter.XYs, len(blobs))
	for i, b := range blobs {
		pts[i].X = b.CenX
		// Image row 0 is the top; flip so the plot reads top-down too.
		pts[i].Y = float64(h) - b.CenY
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("calib: new scatter: %w", err)
	}
	base := scatter.GlyphStyle
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		s := base
		s.Radius = vg.Points(2 + 6*math.Sqrt(blobs[i].Area/maxArea))
		return s
	}
	p.Add(scatter)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("calib: save plot %q: %w", path, err)
	}
	return nil
}

// polarGrid adapts a w by h lookup table to plotter.GridXYZ, flipping
// vertically so image row 0 renders at the top.
type polarGrid struct {
	vals []uint16
	w, h int
}

func (g polarGrid) Dims() (int, int)   { return g.w, g.h }
func (g polarGrid) X(c int) float64    { return float64(c) }
func (g polarGrid) Y(r int) float64    { return float64(r) }
func (g polarGrid) Z(c, r int) float64 { return float64(g.vals[(g.h-1-r)*g.w+c]) }

// PlotPolar renders a w by h distance or angle lookup table as a heat map
// and writes it to path as a PNG, for eyeballing a freshly built
// calibration.
func PlotPolar(table []uint16, w, h int, title, path string) error {
	if len(table) != w*h {
		return fmt.Errorf("calib: table has %d entries, want %d", len(table), w*h)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewHeatMap(polarGrid{vals: table, w: w, h: h}, palette.Heat(12, 1)))

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("calib: save plot %q: %w", path, err)
	}
	return nil
}
