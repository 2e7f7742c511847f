// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jeranaias/pestcheck-tui/internal/ui/styles"
)

// formatBytes formats a byte count for display.
func formatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
	)

	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}

// formatDurationShort formats a short duration string.
func formatDurationShort(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// =============================================================================
// SPINNER
// =============================================================================

// Spinner animates a one-line "working" indicator on a terminal writer.
// A nil *Spinner is valid and does nothing.
type Spinner struct {
	w     io.Writer
	label string
	cfg   styles.SpinnerConfig

	started bool
	once    sync.Once
	stop    chan struct{}
	done chan struct{}
}

// NewSpinner creates a spinner that writes to w.
func NewSpinner(w io.Writer, label string) *Spinner {
	return &Spinner{
		w:     w,
		label: label,
		cfg:   styles.SproutSpinner,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start begins animating in a goroutine. Start and Stop are called from
// the same goroutine.
func (s *Spinner) Start() {
	if s == nil || s.started {
		return
	}
	s.started = true
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.cfg.Duration())
		defer ticker.Stop()
		for i := 0; ; i++ {
			frame := s.cfg.Frames[i%len(s.cfg.Frames)]
			fmt.Fprintf(s.w, "\r%s %s", PromptStyle.Render(frame), DimStyle.Render(s.label))
			select {
			case <-s.stop:
				fmt.Fprint(s.w, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop halts the animation and clears the line. It may be called more than
// once.
func (s *Spinner) Stop() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		close(s.stop)
		if s.started {
			<-s.done
		}
	})
}
