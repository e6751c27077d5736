/*
DESCRIPTION
  segment.go implements the per-pixel classification stage: walk a packed
  YUV 4:2:2 frame buffer two luma samples at a time, look each one up in
  the color table, and write the result only where the active mask says
  to.

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

// segment classifies one w by h YUV 4:2:2 frame (buf, 2*w*h bytes, packed
// Y0 U Y1 V per macropixel) into out (w*h bytes; only out[:w*h] is
// touched, leaving out[w*h] as encodeRuns's sentinel scratch byte).
//
// A macropixel's U and V samples classify both of its luma samples; no
// chroma interpolation is performed. The active mask is consulted once
// per macropixel, at its first pixel: both pixels of the pair are
// classified or skipped together.
//
// Pixels the active mask excludes are written as unclassified rather than
// left untouched, so a stale classification from a previous frame can
// never leak into a region.
func segment(buf []byte, w, h int, lut *ColorTable, mask *ActiveMask, out []byte) {
	row := 2 * w
	for y := 0; y < h; y++ {
		base := y * row
		orow := y * w
		for x := 0; x < w; x += 2 {
			i := base + 2*x
			y0, u, y1, v := buf[i], buf[i+1], buf[i+2], buf[i+3]

			p := orow + x
			if mask.active(p) {
				out[p] = lut.Lookup(y0, u, v)
				out[p+1] = lut.Lookup(y1, u, v)
			} else {
				out[p] = unclassified
				out[p+1] = unclassified
			}
		}
	}
}

// yuv422ToPlanar expands a packed YUV 4:2:2 buffer into an (h, w, 3) byte
// image in Y, U, V channel order, duplicating each macropixel's chroma
// across both of its luma samples rather than performing true chroma
// upsampling. It is the debug capture path Camera.Image uses.
func yuv422ToPlanar(buf []byte, w, h int, out []byte) {
	row := 2 * w
	for y := 0; y < h; y++ {
		base := y * row
		orow := y * w * 3
		for x := 0; x < w; x += 2 {
			i := base + 2*x
			y0, u, y1, v := buf[i], buf[i+1], buf[i+2], buf[i+3]

			p := orow + x*3
			out[p], out[p+1], out[p+2] = y0, u, v
			out[p+3], out[p+4], out[p+5] = y1, u, v
		}
	}
}
