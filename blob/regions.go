/*
DESCRIPTION
  regions.go implements the single-pass region (blob) statistics
  extractor.

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

// Region is a maximally 4-connected set of same-class runs: a blob.
// (X1,Y1)-(X2,Y2) is an inclusive bounding box. CenX/CenY accumulate the
// sums of pixel coordinates during construction and are divided by Area to
// yield the centroid once the pass finishes. RunStart is the first run of
// the region; Next chains same-color regions (colors.go).
type Region struct {
	Color    byte
	X1, Y1   int
	X2, Y2   int
	Area     int
	CenX     float64
	CenY     float64
	RunStart int

	iteratorID int
	next       *Region
}

// rangeSum returns the sum of x-coordinates x, x+1, ..., x+w-1: the sum of
// an arithmetic progression of w terms starting at x.
func rangeSum(x, w int) int {
	return w * (2*x + w - 1) / 2
}

// extractRegions makes a single forward pass over runs[:n], building one
// Region per root run and folding every child run's statistics into its
// region. It returns the number of regions written to regions, and whether
// the region table filled up before every run was processed (a non-fatal,
// degraded-mode condition: the regions written so far are complete and
// internally consistent).
func extractRegions(runs []Run, n int, classes *[ColorCount]ColorClass, regions []Region) (count int, overflowed bool) {
	b := 0
	regionCount := 0

	for i := 0; i < n; i++ {
		r := runs[i]
		if !classEnabled(classes, r.Color) {
			continue
		}

		if r.parent == i {
			// r is a root: start a new region, unless the table is full.
			if regionCount >= len(regions) {
				finalizeRegions(runs, regions[:regionCount])
				return regionCount, true
			}
			b = regionCount
			runs[i].parent = b
			regions[b] = Region{
				Color:      r.Color,
				Area:       r.Width,
				X1:         r.X,
				Y1:         r.Y,
				X2:         r.X + r.Width,
				Y2:         r.Y,
				CenX:       float64(rangeSum(r.X, r.Width)),
				CenY:       float64(r.Y * r.Width),
				RunStart:   i,
				iteratorID: i,
			}
			regionCount++
		} else {
			// r is a child: resolve its region through one indirection and
			// fold its stats in. y only ever increases across the scan, so
			// Y1 never needs revisiting; Y2 is simply the last run's row.
			b = runs[r.parent].parent
			runs[i].parent = b
			reg := &regions[b]
			reg.Area += r.Width
			if x2 := r.X + r.Width; x2 > reg.X2 {
				reg.X2 = x2
			}
			if r.X < reg.X1 {
				reg.X1 = r.X
			}
			reg.Y2 = r.Y
			reg.CenX += float64(rangeSum(r.X, r.Width))
			reg.CenY += float64(r.Y * r.Width)
			runs[reg.iteratorID].next = i
			reg.iteratorID = i
		}
	}

	finalizeRegions(runs, regions[:regionCount])
	return regionCount, false
}

// finalizeRegions converts accumulated sums into centroid coordinates,
// terminates each region's threaded run list, resets scratch state and
// converts the half-open upper bound into an inclusive one.
func finalizeRegions(runs []Run, regions []Region) {
	for i := range regions {
		reg := &regions[i]
		reg.CenX /= float64(reg.Area)
		reg.CenY /= float64(reg.Area)
		runs[reg.iteratorID].next = 0
		reg.iteratorID = 0
		reg.X2--
	}
}
