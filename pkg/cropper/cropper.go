package cropper

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"

	"github.com/menta2k/gvision/pkg/types"
)

// ErrEmptyCrop is returned when the crop region does not overlap the image
var ErrEmptyCrop = errors.New("empty crop rectangle")

// CropResult contains the result of a cropping operation
type CropResult struct {
	Image       image.Image
	Region      image.Rectangle
	AspectRatio float64
}

// Region returns the axis-aligned rectangle enclosing every vertex. The max
// corner is exclusive, so a hint ending on pixel 99 yields Max 100.
func Region(bounds types.Bounds) (image.Rectangle, bool) {
	if len(bounds) == 0 {
		return image.Rectangle{}, false
	}
	minX, minY := int(bounds[0].X), int(bounds[0].Y)
	maxX, maxY := minX, minY
	for _, p := range bounds[1:] {
		x, y := int(p.X), int(p.Y)
		minX = min(minX, x)
		minY = min(minY, y)
		maxX = max(maxX, x)
		maxY = max(maxY, y)
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// CropToBounds crops img to the region enclosing a crop hint polygon
func CropToBounds(img image.Image, bounds types.Bounds) (CropResult, error) {
	region, ok := Region(bounds)
	if !ok {
		return CropResult{}, ErrEmptyCrop
	}

	// Hints are relative to the image origin
	b := img.Bounds()
	region = region.Add(b.Min).Intersect(b)
	if region.Empty() {
		return CropResult{}, ErrEmptyCrop
	}

	cropped := imaging.Crop(img, region)
	return CropResult{
		Image:       cropped,
		Region:      region,
		AspectRatio: float64(region.Dx()) / float64(region.Dy()),
	}, nil
}
