package gvision

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/menta2k/gvision/internal/utils"
	"github.com/menta2k/gvision/pkg/codec"
	"github.com/menta2k/gvision/pkg/cropper"
	"github.com/menta2k/gvision/pkg/normalize"
	"github.com/menta2k/gvision/pkg/types"
)

// Text returns the description of every text annotation. The first entry is
// the full text; the rest are individual words.
func (gv *GoogleVision) Text(ctx context.Context, path string) ([]string, error) {
	img, err := gv.load(ctx, path)
	if err != nil {
		return nil, err
	}
	texts, err := gv.annotator.DetectTexts(ctx, img.Proto(), nil, gv.maxResults)
	if err != nil {
		return nil, fmt.Errorf("text detection failed: %w", err)
	}
	return normalize.Descriptions(texts), nil
}

// Logo detects logos. When an output path is set the logo bounds are drawn
// onto a copy of the image; ext overrides the format taken from path.
func (gv *GoogleVision) Logo(ctx context.Context, path, ext string) ([]types.Logo, error) {
	if gv.output != "" {
		var err error
		if ext, err = overlayExtension(ext, path); err != nil {
			return nil, err
		}
	}

	img, err := gv.load(ctx, path)
	if err != nil {
		return nil, err
	}
	logos, err := gv.annotator.DetectLogos(ctx, img.Proto(), nil, gv.maxResults)
	if err != nil {
		return nil, fmt.Errorf("logo detection failed: %w", err)
	}

	results := normalize.Logos(logos)
	if gv.output != "" {
		polygons := make([]types.Bounds, 0, len(results))
		for _, r := range results {
			polygons = append(polygons, r.Bounds)
		}
		if err := gv.drawBounds(ctx, img, polygons, ext); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Face detects faces and names their likelihoods. When an output path is set
// the face bounds are drawn onto a copy of the image.
func (gv *GoogleVision) Face(ctx context.Context, path, ext string) ([]types.Face, error) {
	if gv.output != "" {
		var err error
		if ext, err = overlayExtension(ext, path); err != nil {
			return nil, err
		}
	}

	img, err := gv.load(ctx, path)
	if err != nil {
		return nil, err
	}
	faces, err := gv.annotator.DetectFaces(ctx, img.Proto(), nil, gv.maxResults)
	if err != nil {
		return nil, fmt.Errorf("face detection failed: %w", err)
	}

	results := normalize.Faces(faces)
	if gv.output != "" {
		polygons := make([]types.Bounds, 0, len(results))
		for _, r := range results {
			polygons = append(polygons, r.Bounds)
		}
		if err := gv.drawBounds(ctx, img, polygons, ext); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Label returns label descriptions
func (gv *GoogleVision) Label(ctx context.Context, path string) ([]string, error) {
	img, err := gv.load(ctx, path)
	if err != nil {
		return nil, err
	}
	labels, err := gv.annotator.DetectLabels(ctx, img.Proto(), nil, gv.maxResults)
	if err != nil {
		return nil, fmt.Errorf("label detection failed: %w", err)
	}
	return normalize.Descriptions(labels), nil
}

// Landmark returns landmark descriptions
func (gv *GoogleVision) Landmark(ctx context.Context, path string) ([]string, error) {
	img, err := gv.load(ctx, path)
	if err != nil {
		return nil, err
	}
	landmarks, err := gv.annotator.DetectLandmarks(ctx, img.Proto(), nil, gv.maxResults)
	if err != nil {
		return nil, fmt.Errorf("landmark detection failed: %w", err)
	}
	return normalize.Descriptions(landmarks), nil
}

// Object localizes objects. Bounds are normalized to the image size.
func (gv *GoogleVision) Object(ctx context.Context, path string) ([]types.Object, error) {
	img, err := gv.load(ctx, path)
	if err != nil {
		return nil, err
	}
	objects, err := gv.annotator.LocalizeObjects(ctx, img.Proto(), nil)
	if err != nil {
		return nil, fmt.Errorf("object localization failed: %w", err)
	}
	return normalize.Objects(objects), nil
}

// SafeSearch names the likelihood of each safe-search category
func (gv *GoogleVision) SafeSearch(ctx context.Context, path string) (types.SafeSearch, error) {
	img, err := gv.load(ctx, path)
	if err != nil {
		return types.SafeSearch{}, err
	}
	safe, err := gv.annotator.DetectSafeSearch(ctx, img.Proto(), nil)
	if err != nil {
		return types.SafeSearch{}, fmt.Errorf("safe search detection failed: %w", err)
	}
	return normalize.SafeSearch(safe), nil
}

// Web runs web detection. includeGeoResults asks Vision to use the image's
// geo tags when inferring entities.
func (gv *GoogleVision) Web(ctx context.Context, path string, includeGeoResults bool) (types.Web, error) {
	img, err := gv.load(ctx, path)
	if err != nil {
		return types.Web{}, err
	}
	web, err := gv.annotator.DetectWeb(ctx, img.Proto(), WebImageContext(includeGeoResults))
	if err != nil {
		return types.Web{}, fmt.Errorf("web detection failed: %w", err)
	}
	return normalize.Web(web), nil
}

// WebImageContext returns the image context for web detection, nil unless
// geo results are requested
func WebImageContext(includeGeoResults bool) *visionpb.ImageContext {
	if !includeGeoResults {
		return nil
	}
	return &visionpb.ImageContext{
		WebDetectionParams: &visionpb.WebDetectionParams{IncludeGeoResults: true},
	}
}

// Document runs dense document text detection and flattens every block
func (gv *GoogleVision) Document(ctx context.Context, path string) ([]types.Block, error) {
	img, err := gv.load(ctx, path)
	if err != nil {
		return nil, err
	}
	annotation, err := gv.annotator.DetectDocumentText(ctx, img.Proto(), nil)
	if err != nil {
		return nil, fmt.Errorf("document text detection failed: %w", err)
	}
	return normalize.Blocks(annotation), nil
}

// ImageProperty returns the dominant colors of the image
func (gv *GoogleVision) ImageProperty(ctx context.Context, path string) ([]types.Color, error) {
	img, err := gv.load(ctx, path)
	if err != nil {
		return nil, err
	}
	props, err := gv.annotator.DetectImageProperties(ctx, img.Proto(), nil)
	if err != nil {
		return nil, fmt.Errorf("image properties detection failed: %w", err)
	}
	return normalize.Colors(props), nil
}

// CropHints returns the vertices of every suggested crop, flattened
func (gv *GoogleVision) CropHints(ctx context.Context, path string) (types.Bounds, error) {
	img, err := gv.load(ctx, path)
	if err != nil {
		return nil, err
	}
	hints, err := gv.annotator.CropHints(ctx, img.Proto(), nil)
	if err != nil {
		return nil, fmt.Errorf("crop hints detection failed: %w", err)
	}
	return normalize.CropHints(hints), nil
}

// CropToHint crops the image to the first suggested crop and writes it to
// the output path. It returns the vertices of the hint used.
func (gv *GoogleVision) CropToHint(ctx context.Context, path, ext string) (types.Bounds, error) {
	if gv.output == "" {
		return nil, ErrNoOutput
	}
	ext, err := overlayExtension(ext, path)
	if err != nil {
		return nil, err
	}

	img, err := gv.load(ctx, path)
	if err != nil {
		return nil, err
	}
	hints, err := gv.annotator.CropHints(ctx, img.Proto(), nil)
	if err != nil {
		return nil, fmt.Errorf("crop hints detection failed: %w", err)
	}
	hint, ok := normalize.FirstCropHint(hints)
	if !ok {
		return nil, ErrNoCropHint
	}

	data, err := gv.loader.Bytes(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("failed to read source for crop: %w", err)
	}
	decoded, err := codec.Decode(bytes.NewReader(data), ext)
	if err != nil {
		return nil, err
	}
	result, err := cropper.CropToBounds(decoded, hint)
	if err != nil {
		return nil, err
	}

	if err := utils.EnsureDir(filepath.Dir(gv.output)); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := codec.Save(result.Image, gv.output, ext, gv.encode); err != nil {
		return nil, fmt.Errorf("failed to save crop: %w", err)
	}
	return hint, nil
}
