/*
DESCRIPTION
  blob.go defines the plain blob geometry ShowBlobs accepts, available in
  every build variant of this package.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gocvsrc

// Blob is the geometry of one reported blob: an inclusive bounding box
// and a centroid, in pixel coordinates. It is defined independently of
// the analysis packages so the raw frame source stays free of any
// dependency on them.
type Blob struct {
	X1, Y1, X2, Y2 int
	CenX, CenY     int
}
