/*
DESCRIPTION
  controls_test.go tests control keyword resolution.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package v4l2

import "testing"

func TestControlIDKnownKeyword(t *testing.T) {
	id, err := ControlID("brightness")
	if err != nil {
		t.Fatalf("ControlID: %v", err)
	}
	if id != cidBrightness {
		t.Errorf("got %#x, want %#x", id, cidBrightness)
	}
}

func TestControlIDUnknownKeyword(t *testing.T) {
	if _, err := ControlID("not_a_real_control"); err == nil {
		t.Error("expected an error for an unknown keyword")
	}
}

func TestControlIDGreenBalanceMapsToGamma(t *testing.T) {
	id, err := ControlID("green_balance")
	if err != nil {
		t.Fatalf("ControlID: %v", err)
	}
	if id != cidGamma {
		t.Errorf("got %#x, want gamma (%#x): V4L2 has no distinct green balance control", id, cidGamma)
	}
}

func TestControlKeywordsAllResolve(t *testing.T) {
	want := []string{
		"exposure_auto", "exposure_absolute", "white_balance_automatic",
		"red_balance", "green_balance", "blue_balance", "gain_automatic",
		"brightness", "contrast", "saturation", "hue", "gain", "sharpness",
		"vertical_flip", "horizontal_flip", "white_balance_temperature",
		"gamma", "power_line_frequency", "backlight_compensation",
		"pan_absolute", "tilt_absolute",
	}
	for _, k := range want {
		if _, err := ControlID(k); err != nil {
			t.Errorf("keyword %q: %v", k, err)
		}
	}
}
