/*
DESCRIPTION
  labels.go implements the 4-connected union-find run labeler. After this
  pass every run's parent identifies a single canonical ancestor per
  4-connected region, one hop from the root.

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

// connectComponents scans runs[:n] in lock-step, two rows at a time,
// unioning runs of the same enabled color whose horizontal spans overlap
// a run directly above them, then compresses every parent to one hop from
// its root.
//
// The union rule always makes the
// smaller-index run the new root, which guarantees a parent's index is
// never greater than its child's — and that invariant is exactly what
// makes the single final compression pass below valid. Do not reorder the
// union without re-establishing that invariant.
func connectComponents(runs []Run, n int, classes *[ColorCount]ColorClass) {
	if n == 0 {
		return
	}

	// l2 walks the first scanline; l1 starts at the first run on the
	// second scanline. If every run belongs to row 0 (a single-row image)
	// l1 reaches n and the loop body never executes.
	l2 := 0
	l1 := 1
	for l1 < n && runs[l1].Y == 0 {
		l1++
	}

	s := l1
	for l1 < n {
		r1, r2 := &runs[l1], &runs[l2]

		if r1.Color == r2.Color && classEnabled(classes, r1.Color) &&
			spansOverlap(r1.X, r1.Width, r2.X, r2.Width) {
			if s != l1 {
				// First overlap found for this r1: just inherit r2's
				// parent, no union needed yet.
				r1.parent = r2.parent
				s = l1
			} else if r1.parent != r2.parent {
				// r1 already merged with an earlier run on the row above; union
				// the two trees, keeping the smaller index as root.
				i := root(runs, r1.parent)
				j := root(runs, r2.parent)
				k := i
				if j < i {
					k = j
				}
				runs[i].parent = k
				runs[j].parent = k
				r1.parent = k
				r2.parent = k
			}
		}

		d := (r2.X + r2.Width) - (r1.X + r1.Width)
		if d >= 0 {
			l1++
		}
		if d <= 0 {
			l2++
		}
	}

	// Final compression: every parent is already at a smaller index than
	// its own, and that index's parent has already been compressed by
	// this same loop, so one hop suffices.
	for i := 0; i < n; i++ {
		runs[i].parent = runs[runs[i].parent].parent
	}
}

// root walks up the union-find tree from i to its terminal root.
func root(runs []Run, i int) int {
	for i != runs[i].parent {
		i = runs[i].parent
	}
	return i
}

// spansOverlap reports whether [x1, x1+w1) and [x2, x2+w2) intersect.
func spansOverlap(x1, w1, x2, w2 int) bool {
	return (x2 <= x1 && x1 < x2+w2) || (x1 <= x2 && x2 < x1+w1)
}
