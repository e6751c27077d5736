/*
DESCRIPTION
  watch.go hot-reloads the LUT, active-pixel mask and polar lookup tables
  into a running blob.Camera whenever their backing files change on disk,
  for recalibrating without restarting the driver.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package calib

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/ausocean/utils/logging"
)

// Installer is the subset of blob.Camera that Watcher needs: installing
// reloaded tables. Defined here rather than imported from blob to avoid a
// circular dependency (blob does not, and should not, depend on calib).
type Installer interface {
	SetColors(lut []byte) error
	SetActivePixels(mask []byte) error
	SetLocations(r, phi []uint16) error
}

// Watcher hot-reloads LUTPath, MaskPath and the two location paths into
// an Installer whenever fsnotify reports a write to, or creation of, one of
// them.
type Watcher struct {
	log   logging.Logger
	watch *fsnotify.Watcher
	cam   Installer

	lutPath, maskPath    string
	locRPath, locPhiPath string
}

// NewWatcher starts watching lutPath, maskPath, locRPath and locPhiPath
// (any of which may be empty, in which case it is skipped) and reloads
// cam whenever one changes. Call Close to stop watching.
func NewWatcher(log logging.Logger, cam Installer, lutPath, maskPath, locRPath, locPhiPath string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("calib: new fsnotify watcher: %w", err)
	}

	w := &Watcher{
		log: log, watch: fw, cam: cam,
		lutPath: lutPath, maskPath: maskPath,
		locRPath: locRPath, locPhiPath: locPhiPath,
	}

	for _, p := range []string{lutPath, maskPath, locRPath, locPhiPath} {
		if p == "" {
			continue
		}
		if err := fw.Add(filepath.Dir(p)); err != nil {
			fw.Close()
			return nil, fmt.Errorf("calib: watch %q: %w", p, err)
		}
	}

	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error { return w.watch.Close() }

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.watch.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload(ev.Name)
		case err, ok := <-w.watch.Errors:
			if !ok {
				return
			}
			w.log.Error("calibration watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload(path string) {
	switch path {
	case w.lutPath:
		lut, err := ReadLUT(path)
		if err != nil {
			w.log.Error("failed to reload LUT", "path", path, "error", err)
			return
		}
		if err := w.cam.SetColors(lut); err != nil {
			w.log.Error("failed to install reloaded LUT", "path", path, "error", err)
			return
		}
		w.log.Info("reloaded LUT", "path", path)
	case w.maskPath:
		mask, err := ReadMask(path)
		if err != nil {
			w.log.Error("failed to reload active-pixel mask", "path", path, "error", err)
			return
		}
		if err := w.cam.SetActivePixels(mask); err != nil {
			w.log.Error("failed to install reloaded mask", "path", path, "error", err)
			return
		}
		w.log.Info("reloaded active-pixel mask", "path", path)
	case w.locRPath, w.locPhiPath:
		w.reloadLocations()
	}
}

func (w *Watcher) reloadLocations() {
	if w.locRPath == "" || w.locPhiPath == "" {
		return
	}
	r, err := readUint16s(w.locRPath)
	if err != nil {
		w.log.Error("failed to reload distance table", "path", w.locRPath, "error", err)
		return
	}
	phi, err := readUint16s(w.locPhiPath)
	if err != nil {
		w.log.Error("failed to reload angle table", "path", w.locPhiPath, "error", err)
		return
	}
	if err := w.cam.SetLocations(r, phi); err != nil {
		w.log.Error("failed to install reloaded polar tables", "error", err)
		return
	}
	w.log.Info("reloaded polar lookup tables", "r", w.locRPath, "phi", w.locPhiPath)
}
