/*
DESCRIPTION
  file.go provides an implementation of device.FrameSource that reads raw
  YUV 4:2:2 frames from a file on disk, useful for replaying
  captured footage and for testing the blob pipeline without a camera.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package file provides a device.FrameSource backed by a file of
// concatenated raw YUV 4:2:2 frames.
package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ausocean/utils/logging"
)

// bufferCount mirrors the V4L2 source's 3-buffer default, so callers
// exercise the same enqueue/dequeue rotation regardless of which
// FrameSource they use.
const bufferCount = 3

// Source is a device.FrameSource that reads fixed-size raw YUV 4:2:2
// frames from a file, optionally looping back to the start at EOF.
type Source struct {
	log  logging.Logger
	path string
	loop bool

	mu        sync.Mutex
	f         *os.File
	w, h      int
	running   bool
	buffers   [][]byte
	queued    []bool
	nextIndex int
}

// New returns a Source that reads frames from path, looping if loop is
// true.
func New(l logging.Logger, path string, loop bool) *Source {
	return &Source{log: l, path: path, loop: loop}
}

// Open opens the backing file and sizes bufferCount buffers to hold one
// 2*w*h byte YUV 4:2:2 frame each. fps is accepted but otherwise unused:
// a file source plays back frames as fast as they're dequeued.
func (s *Source) Open(path string, w, h, fps int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if path != "" {
		s.path = path
	}

	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("file: could not open %q: %w", s.path, err)
	}

	s.f = f
	s.w, s.h = w, h
	s.buffers = make([][]byte, bufferCount)
	s.queued = make([]bool, bufferCount)
	frameSize := 2 * w * h
	for i := range s.buffers {
		s.buffers[i] = make([]byte, frameSize)
		s.queued[i] = true
	}
	return nil
}

// SetControl and GetControl are no-ops for a file source: there is no
// physical device to control.
func (s *Source) SetControl(id, value int) error { return nil }
func (s *Source) GetControl(id int) (int, error) { return 0, nil }

// Start marks the source as running.
func (s *Source) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return errors.New("file: Open must be called before Start")
	}
	s.running = true
	return nil
}

// Stop marks the source as stopped; subsequent Dequeue calls fail.
func (s *Source) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	return nil
}

// Close closes the backing file.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}

// Dequeue fills the next available buffer by reading one frame from the
// file, looping back to the start on EOF if configured to do so.
func (s *Source) Dequeue() (int, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return -1, nil, errors.New("file: source is not running")
	}

	index := -1
	for i, free := range s.queued {
		if free {
			index = i
			break
		}
	}
	if index == -1 {
		return -1, nil, errors.New("file: no buffers available, Enqueue must be called between Dequeue calls")
	}

	buf := s.buffers[index]
	_, err := io.ReadFull(s.f, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		if !s.loop {
			return -1, nil, io.EOF
		}
		s.log.Info("looping input file")
		if _, err := s.f.Seek(0, io.SeekStart); err != nil {
			return -1, nil, fmt.Errorf("file: could not seek to start for loop: %w", err)
		}
		if _, err := io.ReadFull(s.f, buf); err != nil {
			return -1, nil, fmt.Errorf("file: could not read after loop seek: %w", err)
		}
	} else if err != nil {
		return -1, nil, fmt.Errorf("file: read failed: %w", err)
	}

	s.queued[index] = false
	return index, buf, nil
}

// Enqueue returns buffer index to the free pool.
func (s *Source) Enqueue(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.queued) {
		return fmt.Errorf("file: invalid buffer index %d", index)
	}
	s.queued[index] = true
	return nil
}
