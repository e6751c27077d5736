/*
DESCRIPTION
  sort.go implements the LSD radix sort over a color's region list.

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

// sortRegions sorts a singly-linked list of regions by Area in ascending
// order, using an LSD radix sort with cmvRBits-wide digits. passes is the
// number of digits needed to cover the largest area in the list (see
// passesFor); a list with fewer than two elements, or zero passes, is
// returned unchanged.
//
// Each pass distributes the list into cmvRadix buckets by front-insertion
// (which reverses each bucket's order), then rebuilds the list by walking
// the buckets from the highest digit down to the lowest and front-inserting
// each bucket's contents (which reverses it again). The double reversal
// nets a stable pass that leaves the lowest digit at the front, and after
// the last digit the whole list is sorted ascending by Area.
func sortRegions(list *Region, passes int) *Region {
	if list == nil || list.next == nil || passes == 0 {
		return list
	}

	var buckets [cmvRadix]*Region

	for pass := 0; pass < passes; pass++ {
		shift := uint(cmvRBits * pass)

		p := list
		for p != nil {
			next := p.next
			slot := (p.Area >> shift) & cmvRMask
			p.next = buckets[slot]
			buckets[slot] = p
			p = next
		}

		list = nil
		for slot := cmvRadix - 1; slot >= 0; slot-- {
			p := buckets[slot]
			buckets[slot] = nil
			for p != nil {
				next := p.next
				p.next = list
				list = p
				p = next
			}
		}
	}

	return list
}
