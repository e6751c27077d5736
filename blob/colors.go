/*
DESCRIPTION
  colors.go implements the color splitter: it redistributes the region
  table into one singly-linked list per color, filtering out regions
  smaller than that color's minimum area.

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

// separateRegions clears every class's list and count, then walks
// regions[:n] once, pushing each region that meets its color's minimum
// area onto the front of that color's list. Regions below the threshold
// remain in the table but become unreachable from any color list. It
// returns the largest area among surviving regions, used by sortRegions
// to size the radix sort.
func separateRegions(regions []Region, n int, classes *[ColorCount]ColorClass) (maxArea int) {
	for c := range classes {
		classes[c].list = nil
		classes[c].count = 0
	}

	for i := 0; i < n; i++ {
		r := &regions[i]
		class := &classes[r.Color]
		if r.Area < class.MinArea {
			continue
		}
		if r.Area > maxArea {
			maxArea = r.Area
		}
		class.count++
		r.next = class.list
		class.list = r
	}

	return maxArea
}

// passesFor returns the number of CMV_RBITS-wide digit passes needed for a
// radix sort to cover maxArea: the number of right-shifts of maxArea by
// cmvRBits required to reach zero. A maxArea of 0 yields 0 passes, making
// sortRegions a no-op.
func passesFor(maxArea int) int {
	passes := 0
	for maxArea != 0 {
		maxArea >>= cmvRBits
		passes++
	}
	return passes
}
