//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  nocv.go replaces gocvsrc.Source with a stub that always fails, for
  builds without OpenCV installed (CI, by default).

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gocvsrc

import (
	"errors"

	"github.com/ausocean/cmvision/device"
)

var errNoCV = errors.New("gocvsrc: built without OpenCV support (withcv build tag not set)")

var _ device.FrameSource = (*Source)(nil)

// Source is a stand-in for the gocv-backed Source in builds without
// OpenCV; every FrameSource method except Close returns errNoCV, Close
// returns nil and ShowBlobs does nothing.
type Source struct{}

// New returns a stub Source.
func New() *Source { return &Source{} }

func (s *Source) Open(path string, w, h, fps int) error { return errNoCV }
func (s *Source) SetControl(id, value int) error { return errNoCV }
func (s *Source) GetControl(id int) (int, error) { return 0, errNoCV }
func (s *Source) Start() error { return errNoCV }
func (s *Source) Stop() error { return errNoCV }
func (s *Source) Close() error { return nil }
func (s *Source) Dequeue() (int, []byte, error) { return -1, nil, errNoCV }
func (s *Source) Enqueue(index int) error { return errNoCV }

// ShowBlobs is a no-op without OpenCV.
func (s *Source) ShowBlobs(blobs []Blob) {}
