// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package capture

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/jeranaias/pestcheck-tui/internal/logging"
)

// ErrNoCaptureDir is returned when no capture folder is configured.
var ErrNoCaptureDir = errors.New("no capture folder configured")

// DefaultSettle is how long a new file must stay unchanged before it is read.
const DefaultSettle = 300 * time.Millisecond

// =============================================================================
// CAPTURE FOLDER WATCHER
// =============================================================================

// Watcher waits for new photos in a folder.
type Watcher struct {
	dir      string
	maxBytes int64
	settle   time.Duration
	logger   *zap.Logger
}

// NewWatcher returns a Watcher for dir.
func NewWatcher(dir string, maxBytes int64, logger *zap.Logger) *Watcher {
	return &Watcher{
		dir:      expandHome(dir),
		maxBytes: maxBytes,
		settle:   DefaultSettle,
		logger:   logging.OrNop(logger).Named("capture"),
	}
}

// Dir returns the watched folder.
func (w *Watcher) Dir() string {
	return w.dir
}

// SetSettle overrides DefaultSettle.
func (w *Watcher) SetSettle(d time.Duration) {
	w.settle = d
}

// Next arms the watcher and waits for the next photo.
func (w *Watcher) Next(ctx context.Context) (Image, error) {
	c, err := w.Arm()
	if err != nil {
		return Image{}, err
	}
	defer c.Close()
	return c.Wait(ctx)
}

// Arm starts watching. Files created after Arm returns are seen by Wait.
func (w *Watcher) Arm() (*Capture, error) {
	if w.dir == "" {
		return nil, ErrNoCaptureDir
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	return &Capture{w: w, fw: fw}, nil
}

// Capture is an armed watch.
type Capture struct {
	w  *Watcher
	fw *fsnotify.Watcher
}

// Wait blocks until a photo has been created and left unchanged for the
// settle period, then loads it. Files that fail to load (not an image, too
// large) are logged and skipped.
func (c *Capture) Wait(ctx context.Context) (Image, error) {
	var pending string
	timer := time.NewTimer(c.w.settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return Image{}, ctx.Err()

		case event, ok := <-c.fw.Events:
			if !ok {
				return Image{}, errors.New("watcher closed")
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !HasImageExt(event.Name) {
				continue
			}
			pending = event.Name
			timer.Reset(c.w.settle)

		case err, ok := <-c.fw.Errors:
			if !ok {
				return Image{}, errors.New("watcher closed")
			}
			c.w.logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			if pending == "" {
				continue
			}
			img, err := FromFile(pending, c.w.maxBytes)
			if err != nil {
				c.w.logger.Warn("skipping capture", zap.String("file", pending), zap.Error(err))
				pending = ""
				continue
			}
			c.w.logger.Info("photo captured", zap.String("file", pending), zap.Int("bytes", img.Size))
			return img, nil
		}
	}
}

// Close stops watching.
func (c *Capture) Close() error {
	return c.fw.Close()
}
