/*
DESCRIPTION
  report.go implements the blob reporter: given a color's sorted region
  list, it emits a rectangular numeric table of blob statistics,
  projecting each centroid through the polar lookup tables.

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

import "math"

// Column indices of a BlobRow.
const (
	ColR = iota
	ColPhi
	ColArea
	ColCenX
	ColCenY
	ColX1
	ColX2
	ColY1
	ColY2
	blobCols
)

// BlobRow is one reported blob: (r, phi, area, cen_x, cen_y, x1, x2, y1,
// y2), all saturated to uint16.
type BlobRow [blobCols]uint16

// PolarTable holds the precomputed per-pixel distance and angle lookups
// used to report a blob's centroid in world-relative polar coordinates.
// Both tables are dense w*h arrays, read-only during a frame, and are
// populated by a geometric calibration external to this package (see
// calib.BuildPolar).
type PolarTable struct {
	R, Phi []uint16
	w, h   int
}

// NewPolarTable returns a zeroed PolarTable sized for a w by h frame.
func NewPolarTable(w, h int) *PolarTable {
	return &PolarTable{R: make([]uint16, w*h), Phi: make([]uint16, w*h), w: w, h: h}
}

// Load installs r and phi as the table's backing store, truncating or
// leaving the tail unchanged exactly as ColorTable.Load does.
func (t *PolarTable) Load(r, phi []uint16) {
	copy(t.R, r)
	copy(t.Phi, phi)
}

// saturateUint16 clamps v to the uint16 range.
func saturateUint16(v int) uint16 {
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	if v < 0 {
		return 0
	}
	return uint16(v)
}

// report walks the sorted region list (ascending by Area, per sortRegions)
// and builds one BlobRow per region.
func report(list *Region, w int, polar *PolarTable) []BlobRow {
	var rows []BlobRow
	for p := list; p != nil; p = p.next {
		cenX := int(math.Round(p.CenX))
		cenY := int(math.Round(p.CenY))
		xy := cenY*w + cenX

		var row BlobRow
		if polar != nil && xy >= 0 && xy < len(polar.R) {
			row[ColR] = polar.R[xy]
			row[ColPhi] = polar.Phi[xy]
		}
		row[ColArea] = saturateUint16(p.Area)
		row[ColCenX] = saturateUint16(cenX)
		row[ColCenY] = saturateUint16(cenY)
		row[ColX1] = saturateUint16(p.X1)
		row[ColX2] = saturateUint16(p.X2)
		row[ColY1] = saturateUint16(p.Y1)
		row[ColY2] = saturateUint16(p.Y2)
		rows = append(rows, row)
	}
	return rows
}
