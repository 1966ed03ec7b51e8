// Package imaging turns raster images into multi-size icon containers.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	goico "github.com/sergeymakinen/go-ico"
	xdraw "golang.org/x/image/draw"

	"github.com/joshuapare/icopatch/ico"
	"github.com/joshuapare/icopatch/internal/format"
)

// MaxSize is the largest edge an icon image can declare.
const MaxSize = 256

// DefaultSizes are the edges Build produces when none are given.
var DefaultSizes = []int{16, 24, 32, 48, 64, 128, 256}

// Decode reads a PNG, JPEG, GIF or icon container. For containers the
// largest image is returned.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	img, err := goico.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: unsupported image format: %w", err)
	}
	return img, nil
}

// DecodeFile decodes the image stored at path.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Fit scales src to fit a size x size canvas, keeping the aspect ratio and
// centring it on a transparent background.
func Fit(src image.Image, size int) *image.NRGBA {
	srcBounds := src.Bounds()
	srcW := srcBounds.Dx()
	srcH := srcBounds.Dy()
	scale := math.Min(float64(size)/float64(srcW), float64(size)/float64(srcH))
	newW := max(1, int(math.Round(float64(srcW)*scale)))
	newH := max(1, int(math.Round(float64(srcH)*scale)))

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	offX := (size - newW) / 2
	offY := (size - newH) / 2
	dr := image.Rect(offX, offY, offX+newW, offY+newH)
	xdraw.CatmullRom.Scale(dst, dr, src, srcBounds, xdraw.Over, nil)
	return dst
}

// Build renders src at every size and returns the images as one
// container, smallest first. Duplicate sizes are dropped.
func Build(src image.Image, sizes []int) (*ico.Directory, error) {
	if src.Bounds().Empty() {
		return nil, fmt.Errorf("imaging: source image is empty")
	}
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}
	sizes = slices.Clone(sizes)
	slices.Sort(sizes)
	sizes = slices.Compact(sizes)

	out := &ico.Directory{Type: format.TypeIcon}
	for _, size := range sizes {
		if size < 1 || size > MaxSize {
			return nil, fmt.Errorf("imaging: size %d outside 1..%d", size, MaxSize)
		}
		var buf bytes.Buffer
		if err := goico.Encode(&buf, Fit(src, size)); err != nil {
			return nil, fmt.Errorf("imaging: encode %dx%d: %w", size, size, err)
		}
		one, err := ico.Parse(buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("imaging: re-read %dx%d: %w", size, size, err)
		}
		out.Append(one)
	}
	return out, nil
}

// WriteFile encodes dir and writes it to path through a temporary file.
func WriteFile(path string, dir *ico.Directory) error {
	data, err := dir.MarshalBinary()
	if err != nil {
		return err
	}
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// IsContainer reports whether path names an icon container by extension.
func IsContainer(path string) bool {
	return strings.EqualFold(filepath.Ext(path), format.IconExt)
}
