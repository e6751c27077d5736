/*
DESCRIPTION
  lut.go provides mechanical construction and persistence helpers for the
  blob package's color lookup table: reading and writing the raw 16MB
  table, and building one from a set of per-color YUV threshold boxes.
  Training a classifier from labeled imagery is out of scope; this package
  only covers the plumbing a calibration operator needs around that.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package calib provides calibration and plumbing helpers around the blob
// package's lookup tables: construction, persistence, hot reload and
// debug rendering.
package calib

import (
	"encoding/binary"
	"fmt"
	"os"
)

// LUTSize is the byte size of a full color lookup table, matching
// blob.ColorTable's backing array.
const LUTSize = 1 << 24

// Unclassified mirrors blob's unclassified sentinel, duplicated here so
// this package has no dependency on blob's unexported constants.
const Unclassified = 0xFF

// ColorBox is an inclusive YUV threshold box assigned to one color class.
type ColorBox struct {
	Class      byte
	MinY, MaxY byte
	MinU, MaxU byte
	MinV, MaxV byte
}

// BuildThresholdLUT builds a full LUT by painting each box in order: later
// boxes overwrite earlier ones where they overlap, so operators list
// higher-priority colors last.
func BuildThresholdLUT(boxes []ColorBox) []byte {
	lut := make([]byte, LUTSize)
	for i := range lut {
		lut[i] = Unclassified
	}
	for _, b := range boxes {
		for y := int(b.MinY); y <= int(b.MaxY); y++ {
			for u := int(b.MinU); u <= int(b.MaxU); u++ {
				base := y | u<<8
				for v := int(b.MinV); v <= int(b.MaxV); v++ {
					lut[base|v<<16] = b.Class
				}
			}
		}
	}
	return lut
}

// ReadLUT reads a lookup table from path. A file shorter than LUTSize is
// accepted (callers installing it via blob.Camera.SetColors get the same
// short-buffer tolerance SetColors itself documents).
func ReadLUT(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("calib: read LUT %q: %w", path, err)
	}
	return data, nil
}

// WriteLUT writes lut to path.
func WriteLUT(path string, lut []byte) error {
	if err := os.WriteFile(path, lut, 0644); err != nil {
		return fmt.Errorf("calib: write LUT %q: %w", path, err)
	}
	return nil
}

// ReadMask reads a W*H active-pixel mask from path.
func ReadMask(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("calib: read mask %q: %w", path, err)
	}
	return data, nil
}

// ReadLocations reads the polar distance and angle lookup tables from
// rPath and phiPath, each a sequence of little-endian uint16 values.
func ReadLocations(rPath, phiPath string) (r, phi []uint16, err error) {
	r, err = readUint16s(rPath)
	if err != nil {
		return nil, nil, err
	}
	phi, err = readUint16s(phiPath)
	if err != nil {
		return nil, nil, err
	}
	return r, phi, nil
}

// WriteLocations writes the polar distance and angle lookup tables (as
// built by BuildPolar) to rPath and phiPath in the format ReadLocations
// expects.
func WriteLocations(rPath, phiPath string, r, phi []uint16) error {
	if err := writeUint16s(rPath, r); err != nil {
		return err
	}
	return writeUint16s(phiPath, phi)
}

// readUint16s reads path as a sequence of little-endian uint16 values,
// the on-disk format for a polar distance or angle table.
func readUint16s(path string) ([]uint16, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("calib: read %q: %w", path, err)
	}
	out := make([]uint16, len(data)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(data[2*i:])
	}
	return out, nil
}

// writeUint16s writes vals to path as little-endian uint16 values.
func writeUint16s(path string, vals []uint16) error {
	data := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint16(data[2*i:], v)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("calib: write %q: %w", path, err)
	}
	return nil
}
