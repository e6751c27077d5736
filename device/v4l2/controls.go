/*
DESCRIPTION
  controls.go maps human-readable V4L2 control keywords to the
  corresponding V4L2_CID_* constants.

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

import (
	"fmt"

	"github.com/ausocean/cmvision/blob"
)

// V4L2_CID_* constants (linux/v4l2-controls.h base class, CID_BASE = 0x00980900).
const (
	cidBrightness              = 0x00980900 + 0
	cidContrast                = 0x00980900 + 1
	cidSaturation              = 0x00980900 + 2
	cidHue                     = 0x00980900 + 3
	cidAutoWhiteBalance        = 0x00980900 + 12
	cidGamma                   = 0x00980900 + 16
	cidGain                    = 0x00980900 + 19
	cidHFlip                   = 0x00980900 + 20
	cidVFlip                   = 0x00980900 + 21
	cidPowerLineFrequency      = 0x00980900 + 24
	cidWhiteBalanceTemperature = 0x00980900 + 26
	cidSharpness               = 0x00980900 + 27
	cidBacklightCompensation   = 0x00980900 + 28

	cidCameraClassBase = 0x009a0900
	cidExposureAuto    = cidCameraClassBase + 1
	cidExposureAbs     = cidCameraClassBase + 2
	cidPanAbsolute     = cidCameraClassBase + 8
	cidTiltAbsolute    = cidCameraClassBase + 9

	cidAutogain    = 0x00980900 + 18
	cidRedBalance  = 0x0098090e
	cidBlueBalance = 0x0098090f
)

// controlKeywords maps control keywords to their V4L2_CID_* values.
//
// V4L2 has no green balance control; "green_balance" maps to gamma, which
// is where some webcam drivers put it.
var controlKeywords = map[string]int{
	"exposure_auto":             cidExposureAuto,
	"exposure_absolute":         cidExposureAbs,
	"white_balance_automatic":   cidAutoWhiteBalance,
	"red_balance":               cidRedBalance,
	"green_balance":             cidGamma,
	"blue_balance":              cidBlueBalance,
	"gain_automatic":            cidAutogain,
	"brightness":                cidBrightness,
	"contrast":                  cidContrast,
	"saturation":                cidSaturation,
	"hue":                       cidHue,
	"gain":                      cidGain,
	"sharpness":                 cidSharpness,
	"vertical_flip":             cidVFlip,
	"horizontal_flip":           cidHFlip,
	"white_balance_temperature": cidWhiteBalanceTemperature,
	"gamma":                     cidGamma,
	"power_line_frequency":      cidPowerLineFrequency,
	"backlight_compensation":    cidBacklightCompensation,
	"pan_absolute":              cidPanAbsolute,
	"tilt_absolute":             cidTiltAbsolute,
}

// ControlID resolves a V4L2 control keyword (e.g. "brightness") to its
// V4L2_CID_* value. An unknown keyword is an error wrapping
// blob.ErrConfigInvalid, never silently ignored.
func ControlID(keyword string) (int, error) {
	id, ok := controlKeywords[keyword]
	if !ok {
		return 0, fmt.Errorf("%w: v4l2: unknown control keyword %q", blob.ErrConfigInvalid, keyword)
	}
	return id, nil
}

// SetByKeyword resolves keyword and sets it to value on s.
func (s *Source) SetByKeyword(keyword string, value int) error {
	id, err := ControlID(keyword)
	if err != nil {
		return err
	}
	return s.SetControl(id, value)
}

// GetByKeyword resolves keyword and reads its current value from s.
func (s *Source) GetByKeyword(keyword string) (int, error) {
	id, err := ControlID(keyword)
	if err != nil {
		return 0, err
	}
	return s.GetControl(id)
}
