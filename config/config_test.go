/*
DESCRIPTION
  config_test.go tests validation and defaulting of driver configuration.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"errors"
	"testing"

	"github.com/ausocean/utils/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestValidateDefaults(t *testing.T) {
	c := Config{Logger: (*logging.TestLogger)(t)}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	want := Config{
		InputPath:  DefaultInputPath,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		FrameRate:  DefaultFrameRate,
		BufferSize: DefaultBufferSize,
	}
	if diff := cmp.Diff(want, c, cmpopts.IgnoreFields(Config{}, "Logger")); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestValidateKeepsGoodFields(t *testing.T) {
	c := Config{
		Logger:     (*logging.TestLogger)(t),
		InputPath:  "/dev/video1",
		Width:      1280,
		Height:     720,
		FrameRate:  25,
		BufferSize: 4,
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.InputPath != "/dev/video1" || c.Width != 1280 || c.Height != 720 || c.FrameRate != 25 || c.BufferSize != 4 {
		t.Errorf("good fields were altered: %+v", c)
	}
}

func TestValidateRejectsOddWidth(t *testing.T) {
	c := Config{Logger: (*logging.TestLogger)(t), Width: 641, Height: 480}
	if err := c.Validate(); !errors.Is(err, ErrOddWidth) {
		t.Errorf("got %v, want ErrOddWidth", err)
	}
}
