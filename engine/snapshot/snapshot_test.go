package snapshot

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xFF
	}
	img.SetRGBA(0, 0, color.RGBA{R: 0x33, G: 0x33, B: 0x55, A: 0xFF})
	img.SetRGBA(2, 1, color.RGBA{R: 0xFF, G: 0xDD, B: 0xDD, A: 0xFF})
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"png", FormatPNG, true},
		{".BMP", FormatBMP, true},
		{"jpg", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
		if !tc.ok && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("ParseFormat(%q) err = %v, want ErrUnknownFormat", tc.in, err)
		}
	}
}

func TestWriteDecodes(t *testing.T) {
	dir := t.TempDir()
	src := testImage()
	decoders := map[string]func(*os.File) (image.Image, error){
		"frame.png": func(f *os.File) (image.Image, error) { return png.Decode(f) },
		"frame.bmp": func(f *os.File) (image.Image, error) { return bmp.Decode(f) },
	}
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "nested", name)
			if err := Write(path, src); err != nil {
				t.Fatalf("Write: %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if img.Bounds() != src.Bounds() {
				t.Fatalf("bounds = %v, want %v", img.Bounds(), src.Bounds())
			}
			for _, p := range []image.Point{{0, 0}, {2, 1}, {1, 0}} {
				r1, g1, b1, _ := img.At(p.X, p.Y).RGBA()
				r2, g2, b2, _ := src.At(p.X, p.Y).RGBA()
				if r1>>8 != r2>>8 || g1>>8 != g2>>8 || b1>>8 != b2>>8 {
					t.Errorf("pixel %v = %v, want %v", p, img.At(p.X, p.Y), src.At(p.X, p.Y))
				}
			}
		})
	}
}

func TestWriteUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.gif")
	if err := Write(path, testImage()); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file created for an unknown format")
	}
}

func TestEncodeUnknown(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(), "tiff"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}
