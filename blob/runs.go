/*
DESCRIPTION
  runs.go implements the run-length encoder: it compresses a segmented
  scanline image into maximal same-class horizontal runs, retaining only
  runs of enabled colors plus the row-terminating run of every row.

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

// Run is a maximal horizontal span of identical class within one scanline.
// Parent is an index into the run table forming a union-find forest during
// labeling (labels.go); once labeling compresses it, Parent is reinterpreted
// as a region index (regions.go). Next threads runs belonging to the same
// region for iteration. A zero Next is the end-of-list sentinel: run 0 is
// always its own root and is never a valid Next target, so 0 is safe to use
// as "no next run".
type Run struct {
	Y, X, Width int
	Color       byte
	parent      int
	next        int
}

// encodeRuns sweeps the segmented image row by row and appends one Run per
// maximal same-class span to runs, in top-to-bottom, left-to-right order. A
// run is kept only if its color is enabled or it is the run that ends a row
// (so every row is guaranteed at least one recorded run, and row boundaries
// remain detectable from the run list alone).
//
// segmented must be w*h+1 bytes: the extra trailing byte is scratch space
// for the sentinel trick below and is never part of the reported image.
//
// encodeRuns stops (without error) once runs reaches its capacity; the
// caller is responsible for surfacing ErrCapacityExceeded as a degraded,
// non-fatal result.
func encodeRuns(segmented []byte, w, h int, classes *[ColorCount]ColorClass, runs []Run) (n int, overflowed bool) {
	// save holds whatever byte currently occupies the position we're about
	// to overwrite with the sentinel, so it can be restored before the scan
	// moves past it. Initially that's the very first byte of the image.
	save := segmented[0]

	j := 0
	for y := 0; y < h; y++ {
		row := segmented[y*w:]

		// Restore the terminator written during the previous row and
		// install this row's terminator one byte past its end (the first
		// byte of the next row, or the scratch byte after the last row).
		row[0] = save
		save = row[w]
		row[w] = unclassified

		x := 0
		for x < w {
			m := row[x]
			start := x
			if m == unclassified {
				// The terminator is itself the unclassified byte, so it
				// can't stop a run of unclassified pixels; bound this case
				// explicitly. Classified runs, the hot case, still scan
				// without a per-pixel bounds check.
				for x < w && row[x] == unclassified {
					x++
				}
			} else {
				for row[x] == m {
					x++
				}
			}

			if classEnabled(classes, m) || x >= w {
				runs[j] = Run{Y: y, X: start, Width: x - start, Color: m, parent: j}
				j++
				if j >= len(runs) {
					row[w] = save
					return j, true
				}
			}
		}
	}

	return j, false
}
