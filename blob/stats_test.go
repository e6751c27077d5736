/*
DESCRIPTION
  stats_test.go tests the per-color blob-area diagnostics.

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

import (
	"testing"

	"github.com/ausocean/utils/logging"
)

func TestAreaStats(t *testing.T) {
	cam := NewCamera((*logging.TestLogger)(t), &fakeSource{})
	regions := []Region{
		{Color: 2, Area: 10},
		{Color: 2, Area: 20},
		{Color: 2, Area: 30},
	}
	cam.classes[2].MinArea = 1
	separateRegions(regions, len(regions), &cam.classes)

	s, err := cam.AreaStats(2)
	if err != nil {
		t.Fatalf("AreaStats: %v", err)
	}
	if s.Count != 3 {
		t.Errorf("got count %d, want 3", s.Count)
	}
	if s.Mean != 20 {
		t.Errorf("got mean %v, want 20", s.Mean)
	}
	if s.Min != 10 || s.Max != 30 {
		t.Errorf("got min %v max %v, want 10, 30", s.Min, s.Max)
	}
	if s.Variance != 100 {
		t.Errorf("got variance %v, want 100", s.Variance)
	}
}

func TestAreaStatsEmpty(t *testing.T) {
	cam := NewCamera((*logging.TestLogger)(t), &fakeSource{})
	s, err := cam.AreaStats(0)
	if err != nil {
		t.Fatalf("AreaStats: %v", err)
	}
	if s.Count != 0 {
		t.Errorf("got count %d, want 0", s.Count)
	}
}

func TestAreaStatsBadColor(t *testing.T) {
	cam := NewCamera((*logging.TestLogger)(t), &fakeSource{})
	if _, err := cam.AreaStats(ColorCount); err == nil {
		t.Error("expected error for out-of-range color")
	}
}
