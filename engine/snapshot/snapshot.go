// Package snapshot writes rendered frames to image files.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// ErrUnknownFormat is returned for an image format other than png or bmp.
var ErrUnknownFormat = errors.New("unknown snapshot format")

// Format is an image file encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// ParseFormat resolves a format name, case-insensitive and with or without a leading dot.
//
// Parameters:
//   - s: the name, e.g. "png" or ".BMP"
//
// Returns:
//   - Format: the matching format
//   - error: ErrUnknownFormat if nothing matches
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	switch f {
	case FormatPNG, FormatBMP:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Encode writes img to w in the given format.
//
// Parameters:
//   - w: the destination
//   - img: the frame
//   - format: the encoding
//
// Returns:
//   - error: error if the format is unknown or encoding fails
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

// Write encodes img into the file at path, choosing the format from the extension. Missing parent
// directories are created.
//
// Parameters:
//   - path: the destination file, ending in .png or .bmp
//   - img: the frame
//
// Returns:
//   - error: error if the format is unknown or the file cannot be written
func Write(path string, img image.Image) (err error) {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := Encode(f, img, format); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
