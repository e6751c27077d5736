/*
DESCRIPTION
  lut.go defines the fixed configuration constants, the color
  classification lookup table, the active-pixel mask and the per-color
  class state the segmentation pipeline reads.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package blob implements a realtime color-segmentation blob extraction
// pipeline: threshold a YUV 4:2:2 frame through a lookup table, run-length
// encode each scanline, label 4-connected runs with union-find, gather
// per-region statistics, separate regions by color and radix-sort each
// color's list by area.
package blob

import "math"

// Configuration constants fixed at build.
const (
	// ColorCount is the number of distinct color classes the LUT can map a
	// pixel to.
	ColorCount = 10

	// MaxWidth and MaxHeight bound the largest resolution the core
	// supports; Camera.Open rejects anything larger.
	MaxWidth  = 1280
	MaxHeight = 1024

	// cmvRBits, cmvRadix and cmvRMask parameterize the LSD radix sort in
	// sort.go: 6-bit digits, 64 buckets.
	cmvRBits = 6
	cmvRadix = 1 << cmvRBits
	cmvRMask = cmvRadix - 1

	// lutSize is the size of the 24-bit-keyed color lookup table: one byte
	// per possible (Y, U, V) triple.
	lutSize = 1 << 24

	// unclassified marks a pixel the LUT has no class for.
	unclassified = 0xFF
)

// MaxInt is the sentinel min-area value that disables a color class: a
// class with MinArea == MaxInt participates in neither run encoding nor
// region construction.
const MaxInt = math.MaxInt32

// ColorTable maps a 24-bit composite key (Y | U<<8 | V<<16) to a class
// index in [0, ColorCount) or unclassified. It is a dense 16,777,216-byte
// array, heap-allocated once and read-only during segmentation.
type ColorTable struct {
	data []byte
}

// NewColorTable returns an all-unclassified ColorTable.
func NewColorTable() *ColorTable {
	t := &ColorTable{data: make([]byte, lutSize)}
	for i := range t.data {
		t.data[i] = unclassified
	}
	return t
}

// lutKey packs a (Y, U, V) triple into the LUT's 24-bit index.
func lutKey(y, u, v byte) int {
	return int(y) | int(u)<<8 | int(v)<<16
}

// Lookup returns the class index (or unclassified) for the given (Y, U, V)
// triple.
func (t *ColorTable) Lookup(y, u, v byte) byte {
	return t.data[lutKey(y, u, v)]
}

// Load installs lut as the color table's backing store. A buffer shorter
// than the full 16 MB table is accepted and copies only as many bytes as
// it holds, leaving the remainder of the table untouched; a buffer longer
// than 16 MB is truncated to fit.
func (t *ColorTable) Load(lut []byte) {
	copy(t.data, lut)
}

// ActiveMask is a dense per-pixel participation mask: zero means skip the
// pixel during segmentation, nonzero means include it. The segmenter
// consults the mask at each macropixel's first pixel only, so the two
// pixels of a pair are always included or skipped together.
type ActiveMask struct {
	data []byte
	w, h int
}

// newActiveMask returns an ActiveMask sized for a w by h frame with every
// pixel active.
func newActiveMask(w, h int) *ActiveMask {
	m := &ActiveMask{data: make([]byte, w*h), w: w, h: h}
	for i := range m.data {
		m.data[i] = 1
	}
	return m
}

// Load installs mask as the active-pixel mask's backing store, truncating
// or leaving the tail unchanged exactly as ColorTable.Load does.
func (m *ActiveMask) Load(mask []byte) {
	copy(m.data, mask)
}

// active reports whether the pixel at the given flat index participates in
// segmentation.
func (m *ActiveMask) active(i int) bool {
	return m.data[i] != 0
}

// ColorClass holds per-color state: the head of that color's region list,
// its length, the minimum reportable area, the color's own index and a
// human-readable name. A class whose
// MinArea equals MaxInt is disabled and is skipped by both the run encoder
// and the region extractor.
type ColorClass struct {
	Name    string
	Index   byte
	MinArea int

	list  *Region
	count int
}

// Enabled reports whether the class participates in segmentation.
func (c *ColorClass) Enabled() bool { return c.MinArea < MaxInt }

// classEnabled reports whether color identifies an enabled class. Segmented
// pixels may carry the unclassified sentinel (or any other value a
// misconfigured LUT produces), which is always treated as disabled rather
// than indexed into classes.
func classEnabled(classes *[ColorCount]ColorClass, color byte) bool {
	return int(color) < ColorCount && classes[color].Enabled()
}

// Count returns the number of regions currently on this class's list (set
// by separateRegions, valid until the next Analyse call).
func (c *ColorClass) Count() int { return c.count }
