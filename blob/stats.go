/*
DESCRIPTION
  stats.go provides per-color blob-area diagnostics on top of the region
  lists separateRegions builds, for operators tuning a color class's
  minimum area threshold.

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

import "gonum.org/v1/gonum/stat"

// AreaStats summarizes the area distribution of one color's surviving
// regions in the most recently analysed frame.
type AreaStats struct {
	Count    int
	Mean     float64
	Variance float64
	Min, Max float64
}

// AreaStats walks color's region list (populated by the most recent
// Analyse/GetBlobs call) and computes summary statistics over region
// area, using gonum/stat rather than hand-rolled accumulation so the
// variance calculation gets gonum's numerically stable two-pass
// algorithm.
func (c *Camera) AreaStats(color int) (AreaStats, error) {
	if color < 0 || color >= ColorCount {
		return AreaStats{}, ErrConfigInvalid
	}

	var areas []float64
	for p := c.classes[color].list; p != nil; p = p.next {
		areas = append(areas, float64(p.Area))
	}
	if len(areas) == 0 {
		return AreaStats{}, nil
	}

	mean, variance := stat.MeanVariance(areas, nil)
	min, max := areas[0], areas[0]
	for _, a := range areas[1:] {
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}

	return AreaStats{
		Count:    len(areas),
		Mean:     mean,
		Variance: variance,
		Min:      min,
		Max:      max,
	}, nil
}
