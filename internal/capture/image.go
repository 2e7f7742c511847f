// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package capture

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotImage is returned for files that are not a supported image type.
	ErrNotImage = errors.New("not a supported image (jpeg, png, webp, gif)")

	// ErrTooLarge is returned for files above the size limit.
	ErrTooLarge = errors.New("image too large")
)

var supportedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

// Image is a loaded photo.
type Image struct {
	Name    string // base file name
	MIME    string // sniffed content type
	Size    int    // bytes before encoding
	DataURI string // data:<mime>;base64,<payload>
}

// FromFile reads path and returns it as a data URI. Files larger than
// maxBytes (when > 0) are rejected without reading them fully.
func FromFile(path string, maxBytes int64) (Image, error) {
	path = expandHome(strings.TrimSpace(path))
	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Image{}, fmt.Errorf("failed to stat image: %w", err)
	}
	if info.IsDir() {
		return Image{}, fmt.Errorf("%s: %w", path, ErrNotImage)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return Image{}, fmt.Errorf("%s is %d bytes (limit %d): %w", filepath.Base(path), info.Size(), maxBytes, ErrTooLarge)
	}

	r := io.Reader(f)
	if maxBytes > 0 {
		// The file may still be growing.
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Image{}, fmt.Errorf("failed to read image: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return Image{}, fmt.Errorf("%s: %w", filepath.Base(path), ErrTooLarge)
	}
	return FromBytes(filepath.Base(path), data)
}

// FromBytes encodes data as a data URI after checking its type.
func FromBytes(name string, data []byte) (Image, error) {
	mime := http.DetectContentType(data)
	if !supportedTypes[mime] {
		return Image{}, fmt.Errorf("%s (%s): %w", name, mime, ErrNotImage)
	}
	return Image{
		Name:    name,
		MIME:    mime,
		Size:    len(data),
		DataURI: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// HasImageExt reports whether path has a photo file extension.
func HasImageExt(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
