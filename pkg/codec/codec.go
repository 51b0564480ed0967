// Package codec decodes and encodes raster images by file extension.
package codec

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	xwebp "golang.org/x/image/webp"
)

// ErrUnsupportedExtension is returned for extensions without a codec
var ErrUnsupportedExtension = errors.New("unsupported image extension")

// Options controls lossy encoders
type Options struct {
	Quality  int
	Lossless bool
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{Quality: 90}
}

// Extensions lists the supported extensions, lower-case without the dot
func Extensions() []string {
	return []string{"png", "gif", "jpg", "jpeg", "bmp", "tif", "tiff", "webp"}
}

// Supported reports whether ext has a codec
func Supported(ext string) bool {
	ext = clean(ext)
	if ext == "webp" {
		return true
	}
	_, err := imaging.FormatFromExtension(ext)
	return err == nil
}

// Decode reads an image encoded in the format named by ext
func Decode(r io.Reader, ext string) (image.Image, error) {
	ext = clean(ext)
	if ext == "webp" {
		img, err := xwebp.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode webp image: %w", err)
		}
		return img, nil
	}
	if _, err := imaging.FormatFromExtension(ext); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Encode writes img in the format named by ext
func Encode(w io.Writer, img image.Image, ext string, opts Options) error {
	ext = clean(ext)
	if ext == "webp" {
		return webp.Encode(w, img, &webp.Options{Lossless: opts.Lossless, Quality: float32(opts.Quality)})
	}
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
	quality := opts.Quality
	if quality < 1 || quality > 100 {
		quality = DefaultOptions().Quality
	}
	return imaging.Encode(w, img, format, imaging.JPEGQuality(quality))
}

// Save encodes img to a file
func Save(img image.Image, path, ext string, opts Options) error {
	if !Supported(ext) {
		return fmt.Errorf("%w: %q", ErrUnsupportedExtension, clean(ext))
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Encode(f, img, ext, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func clean(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
