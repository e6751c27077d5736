/*
DESCRIPTION
  v4l2.go implements device.FrameSource against a Linux V4L2 memory-mapped
  capture device: 3 buffers, format YUYV, interlaced field mode.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package v4l2 provides a device.FrameSource backed by a Linux V4L2
// memory-mapped capture device: REQBUFS/QUERYBUF/QBUF/DQBUF around
// STREAMON/STREAMOFF, with S_FMT/S_PARM/S_CTRL/G_CTRL for configuration.
package v4l2

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/ausocean/cmvision/device"
)

// DefaultBufferCount is the number of mmap buffers requested when the
// caller doesn't specify one.
const DefaultBufferCount = 3

// dequeueTimeout bounds how long Dequeue waits for the driver to deliver
// a filled buffer.
const dequeueTimeout = 2 * time.Second

// V4L2 ioctl request codes and constants (linux/videodev2.h). golang.org/x/sys/unix
// does not expose these; they are the stable kernel UAPI values.
const (
	v4l2BufTypeVideoCapture = 1
	v4l2MemoryMMAP          = 1
	v4l2FieldInterlaced     = 4
	v4l2PixFmtYUYV          = 'Y' | 'U'<<8 | 'Y'<<16 | 'V'<<24

	vidiocQueryCap  = 0x80685600
	vidiocGFmt      = 0xc0d05604
	vidiocSFmt      = 0xc0d05605
	vidiocReqBufs   = 0xc0145608
	vidiocQueryBuf  = 0xc0585609
	vidiocQBuf      = 0xc058560f
	vidiocDQBuf     = 0xc0585611
	vidiocStreamOn  = 0x40045612
	vidiocStreamOff = 0x40045613
	vidiocSParm     = 0xc0cc5616
	vidiocGCtrl     = 0xc008561b
	vidiocSCtrl     = 0xc008561c
)

// v4l2Capability mirrors struct v4l2_capability, used only to validate the
// device supports streaming capture.
type v4l2Capability struct {
	Driver       [16]byte
	Card         [32]byte
	BusInfo      [32]byte
	Version      uint32
	Capabilities uint32
	DeviceCaps   uint32
	Reserved     [3]uint32
}

// v4l2PixFormat mirrors struct v4l2_pix_format.
type v4l2PixFormat struct {
	Width        uint32
	Height       uint32
	PixelFormat  uint32
	Field        uint32
	BytesPerLine uint32
	SizeImage    uint32
	Colorspace   uint32
	Priv         uint32
}

// v4l2Format mirrors struct v4l2_format: a tagged union the kernel sizes at
// 200 bytes regardless of which member is active. pix() casts into it.
type v4l2Format struct {
	Type uint32
	_    [4]byte
	Fmt  [200]byte
}

func (f *v4l2Format) pix() *v4l2PixFormat {
	return (*v4l2PixFormat)(unsafe.Pointer(&f.Fmt[0]))
}

// v4l2RequestBuffers mirrors struct v4l2_requestbuffers.
type v4l2RequestBuffers struct {
	Count        uint32
	Type         uint32
	Memory       uint32
	Capabilities uint32
	Reserved     [1]uint32
}

// v4l2Buffer mirrors struct v4l2_buffer (mmap variant only: M is the mmap
// offset, not a userptr).
type v4l2Buffer struct {
	Index     uint32
	Type      uint32
	BytesUsed uint32
	Flags     uint32
	Field     uint32
	Timestamp unix.Timeval
	Timecode  [16]byte // struct v4l2_timecode, unused.
	Sequence  uint32
	Memory    uint32
	M         uint32
	_         [4]byte // Rest of the 8-byte m union.
	Length    uint32
	Reserved2 uint32
	Reserved  uint32
}

// v4l2StreamParm mirrors struct v4l2_streamparm: type, then the
// v4l2_captureparm member of its 200-byte union, padded to full size.
type v4l2StreamParm struct {
	Type              uint32
	Capability        uint32
	CaptureMode       uint32
	TimePerFrameNum   uint32
	TimePerFrameDenom uint32
	ExtendedMode      uint32
	ReadBuffers       uint32
	Reserved          [4]uint32
	_                 [160]byte
}

// v4l2Control mirrors struct v4l2_control.
type v4l2Control struct {
	ID    uint32
	Value int32
}

func ioctl(fd int, req uint, arg unsafe.Pointer) error {
	for {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(arg))
		if errno == 0 {
			return nil
		}
		if errno == unix.EINTR {
			continue
		}
		return errno
	}
}

type mmapBuffer struct {
	data []byte
}

// Source is a device.FrameSource backed by a V4L2 capture device.
type Source struct {
	fd       int
	w, h     int
	buffers  []mmapBuffer
	queued   []bool
	running  bool
	bufCount int
}

// New returns an unopened V4L2 Source that will request bufCount mmap
// buffers (DefaultBufferCount if bufCount <= 0).
func New(bufCount int) *Source {
	if bufCount <= 0 {
		bufCount = DefaultBufferCount
	}
	return &Source{fd: -1, bufCount: bufCount}
}

// Open opens path, negotiates YUYV/interlaced capture at w by h and fps,
// then requests and memory-maps the configured buffer count.
func (s *Source) Open(path string, w, h, fps int) error {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return errors.Wrapf(err, "v4l2: open %q", path)
	}
	s.fd = fd

	var capability v4l2Capability
	if err := ioctl(fd, vidiocQueryCap, unsafe.Pointer(&capability)); err != nil {
		return errors.Wrap(err, "v4l2: VIDIOC_QUERYCAP")
	}

	var format v4l2Format
	format.Type = v4l2BufTypeVideoCapture
	if err := ioctl(fd, vidiocGFmt, unsafe.Pointer(&format)); err != nil {
		return errors.Wrap(err, "v4l2: VIDIOC_G_FMT")
	}
	pix := format.pix()
	pix.PixelFormat = v4l2PixFmtYUYV
	pix.Field = v4l2FieldInterlaced
	pix.Width = uint32(w)
	pix.Height = uint32(h)
	pix.BytesPerLine = 0
	if err := ioctl(fd, vidiocSFmt, unsafe.Pointer(&format)); err != nil {
		return errors.Wrap(err, "v4l2: VIDIOC_S_FMT")
	}

	var parm v4l2StreamParm
	parm.Type = v4l2BufTypeVideoCapture
	parm.TimePerFrameNum = 1
	parm.TimePerFrameDenom = uint32(fps)
	if err := ioctl(fd, vidiocSParm, unsafe.Pointer(&parm)); err != nil {
		return errors.Wrap(err, "v4l2: VIDIOC_S_PARM")
	}

	s.w, s.h = w, h
	return s.requestBuffers()
}

func (s *Source) requestBuffers() error {
	var req v4l2RequestBuffers
	req.Count = uint32(s.bufCount)
	req.Type = v4l2BufTypeVideoCapture
	req.Memory = v4l2MemoryMMAP
	if err := ioctl(s.fd, vidiocReqBufs, unsafe.Pointer(&req)); err != nil {
		return errors.Wrap(err, "v4l2: VIDIOC_REQBUFS")
	}
	if req.Count == 0 {
		return errors.New("v4l2: driver granted zero buffers")
	}

	s.buffers = make([]mmapBuffer, req.Count)
	s.queued = make([]bool, req.Count)
	for i := range s.buffers {
		var buf v4l2Buffer
		buf.Index = uint32(i)
		buf.Type = v4l2BufTypeVideoCapture
		buf.Memory = v4l2MemoryMMAP
		if err := ioctl(s.fd, vidiocQueryBuf, unsafe.Pointer(&buf)); err != nil {
			return errors.Wrapf(err, "v4l2: VIDIOC_QUERYBUF index %d", i)
		}

		data, err := unix.Mmap(s.fd, int64(buf.M), int(buf.Length), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
		if err != nil {
			return errors.Wrapf(err, "v4l2: mmap buffer %d", i)
		}
		s.buffers[i] = mmapBuffer{data: data}
	}
	return nil
}

// SetControl sets a V4L2_CID_* control identified by id.
func (s *Source) SetControl(id, value int) error {
	ctrl := v4l2Control{ID: uint32(id), Value: int32(value)}
	if err := ioctl(s.fd, vidiocSCtrl, unsafe.Pointer(&ctrl)); err != nil {
		return errors.Wrapf(err, "v4l2: VIDIOC_S_CTRL id %d", id)
	}
	return nil
}

// GetControl reads a V4L2_CID_* control identified by id.
func (s *Source) GetControl(id int) (int, error) {
	ctrl := v4l2Control{ID: uint32(id)}
	if err := ioctl(s.fd, vidiocGCtrl, unsafe.Pointer(&ctrl)); err != nil {
		return 0, errors.Wrapf(err, "v4l2: VIDIOC_G_CTRL id %d", id)
	}
	return int(ctrl.Value), nil
}

// Start queues every buffer then begins streaming.
func (s *Source) Start() error {
	for i := range s.buffers {
		var buf v4l2Buffer
		buf.Index = uint32(i)
		buf.Type = v4l2BufTypeVideoCapture
		buf.Memory = v4l2MemoryMMAP
		if err := ioctl(s.fd, vidiocQBuf, unsafe.Pointer(&buf)); err != nil {
			return errors.Wrapf(err, "v4l2: VIDIOC_QBUF index %d", i)
		}
		s.queued[i] = true
	}

	bufType := uint32(v4l2BufTypeVideoCapture)
	if err := ioctl(s.fd, vidiocStreamOn, unsafe.Pointer(&bufType)); err != nil {
		return errors.Wrap(err, "v4l2: VIDIOC_STREAMON")
	}
	s.running = true
	return nil
}

// Stop ends streaming.
func (s *Source) Stop() error {
	bufType := uint32(v4l2BufTypeVideoCapture)
	if err := ioctl(s.fd, vidiocStreamOff, unsafe.Pointer(&bufType)); err != nil {
		return errors.Wrap(err, "v4l2: VIDIOC_STREAMOFF")
	}
	s.running = false
	return nil
}

// Close unmaps every buffer and closes the device, collecting any errors
// so an unmap failure doesn't hide a close failure or vice versa.
func (s *Source) Close() error {
	if s.fd < 0 {
		return nil
	}
	var errs device.MultiError
	for i := range s.buffers {
		if err := unix.Munmap(s.buffers[i].data); err != nil {
			errs = append(errs, errors.Wrapf(err, "v4l2: munmap buffer %d", i))
		}
	}
	if err := unix.Close(s.fd); err != nil {
		errs = append(errs, errors.Wrap(err, "v4l2: close"))
	}
	s.fd = -1
	s.buffers = nil
	if len(errs) != 0 {
		return errs
	}
	return nil
}

// Dequeue waits up to dequeueTimeout for a filled buffer and returns its
// index and bytes.
func (s *Source) Dequeue() (int, []byte, error) {
	if !s.running {
		return -1, nil, fmt.Errorf("v4l2: source is not streaming")
	}

	ready, err := waitReadable(s.fd, dequeueTimeout)
	if err != nil {
		return -1, nil, errors.Wrap(err, "v4l2: select")
	}
	if !ready {
		return -1, nil, fmt.Errorf("v4l2: dequeue timed out after %s", dequeueTimeout)
	}

	var buf v4l2Buffer
	buf.Type = v4l2BufTypeVideoCapture
	buf.Memory = v4l2MemoryMMAP
	if err := ioctl(s.fd, vidiocDQBuf, unsafe.Pointer(&buf)); err != nil {
		return -1, nil, errors.Wrap(err, "v4l2: VIDIOC_DQBUF")
	}

	s.queued[buf.Index] = false
	return int(buf.Index), s.buffers[buf.Index].data[:2*s.w*s.h], nil
}

// Enqueue requeues buffer index for the driver to refill.
func (s *Source) Enqueue(index int) error {
	if index < 0 || index >= len(s.buffers) {
		return fmt.Errorf("v4l2: invalid buffer index %d", index)
	}
	var buf v4l2Buffer
	buf.Index = uint32(index)
	buf.Type = v4l2BufTypeVideoCapture
	buf.Memory = v4l2MemoryMMAP
	if err := ioctl(s.fd, vidiocQBuf, unsafe.Pointer(&buf)); err != nil {
		return errors.Wrapf(err, "v4l2: VIDIOC_QBUF index %d", index)
	}
	s.queued[index] = true
	return nil
}

// waitReadable blocks until fd is readable or timeout elapses, retrying
// through EINTR like ioctl does.
func waitReadable(fd int, timeout time.Duration) (bool, error) {
	for {
		var fds unix.FdSet
		fds.Bits[fd/64] |= 1 << (uint(fd) % 64)
		tv := unix.NsecToTimeval(timeout.Nanoseconds())
		n, err := unix.Select(fd+1, &fds, nil, nil, &tv)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}
}
