package client

import (
	"context"
	"fmt"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	gax "github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/status"
)

// Google is an Annotator backed by the Cloud Vision gRPC client
type Google struct {
	*vision.ImageAnnotatorClient
}

// NewGoogle creates a Cloud Vision client with the given options
func NewGoogle(ctx context.Context, opts ...option.ClientOption) (*Google, error) {
	c, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create image annotator client: %w", err)
	}
	return &Google{ImageAnnotatorClient: c}, nil
}

// annotate sends a single-image, single-feature request. A per-image error
// carried in the response is returned as a status error.
func (g *Google) annotate(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, feature visionpb.Feature_Type, maxResults int, opts ...gax.CallOption) (*visionpb.AnnotateImageResponse, error) {
	req := &visionpb.AnnotateImageRequest{
		Image:        img,
		ImageContext: ictx,
		Features:     []*visionpb.Feature{{Type: feature, MaxResults: int32(maxResults)}},
	}
	resp, err := g.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{req},
	}, opts...)
	if err != nil {
		return nil, err
	}
	if len(resp.GetResponses()) == 0 {
		return nil, fmt.Errorf("empty response for %s", feature)
	}
	res := resp.GetResponses()[0]
	if res.GetError() != nil {
		return nil, status.ErrorProto(res.GetError())
	}
	return res, nil
}

// DetectTexts performs TEXT_DETECTION. The first annotation holds the full text.
func (g *Google) DetectTexts(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, maxResults int, opts ...gax.CallOption) ([]*visionpb.EntityAnnotation, error) {
	res, err := g.annotate(ctx, img, ictx, visionpb.Feature_TEXT_DETECTION, maxResults, opts...)
	if err != nil {
		return nil, err
	}
	return res.GetTextAnnotations(), nil
}

// DetectLogos performs LOGO_DETECTION
func (g *Google) DetectLogos(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, maxResults int, opts ...gax.CallOption) ([]*visionpb.EntityAnnotation, error) {
	res, err := g.annotate(ctx, img, ictx, visionpb.Feature_LOGO_DETECTION, maxResults, opts...)
	if err != nil {
		return nil, err
	}
	return res.GetLogoAnnotations(), nil
}

// DetectFaces performs FACE_DETECTION
func (g *Google) DetectFaces(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, maxResults int, opts ...gax.CallOption) ([]*visionpb.FaceAnnotation, error) {
	res, err := g.annotate(ctx, img, ictx, visionpb.Feature_FACE_DETECTION, maxResults, opts...)
	if err != nil {
		return nil, err
	}
	return res.GetFaceAnnotations(), nil
}

// DetectLabels performs LABEL_DETECTION
func (g *Google) DetectLabels(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, maxResults int, opts ...gax.CallOption) ([]*visionpb.EntityAnnotation, error) {
	res, err := g.annotate(ctx, img, ictx, visionpb.Feature_LABEL_DETECTION, maxResults, opts...)
	if err != nil {
		return nil, err
	}
	return res.GetLabelAnnotations(), nil
}

// DetectLandmarks performs LANDMARK_DETECTION
func (g *Google) DetectLandmarks(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, maxResults int, opts ...gax.CallOption) ([]*visionpb.EntityAnnotation, error) {
	res, err := g.annotate(ctx, img, ictx, visionpb.Feature_LANDMARK_DETECTION, maxResults, opts...)
	if err != nil {
		return nil, err
	}
	return res.GetLandmarkAnnotations(), nil
}

// LocalizeObjects performs OBJECT_LOCALIZATION
func (g *Google) LocalizeObjects(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, opts ...gax.CallOption) ([]*visionpb.LocalizedObjectAnnotation, error) {
	res, err := g.annotate(ctx, img, ictx, visionpb.Feature_OBJECT_LOCALIZATION, 0, opts...)
	if err != nil {
		return nil, err
	}
	return res.GetLocalizedObjectAnnotations(), nil
}

// DetectSafeSearch performs SAFE_SEARCH_DETECTION
func (g *Google) DetectSafeSearch(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, opts ...gax.CallOption) (*visionpb.SafeSearchAnnotation, error) {
	res, err := g.annotate(ctx, img, ictx, visionpb.Feature_SAFE_SEARCH_DETECTION, 0, opts...)
	if err != nil {
		return nil, err
	}
	return res.GetSafeSearchAnnotation(), nil
}

// DetectWeb performs WEB_DETECTION
func (g *Google) DetectWeb(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, opts ...gax.CallOption) (*visionpb.WebDetection, error) {
	res, err := g.annotate(ctx, img, ictx, visionpb.Feature_WEB_DETECTION, 0, opts...)
	if err != nil {
		return nil, err
	}
	return res.GetWebDetection(), nil
}

// DetectDocumentText performs DOCUMENT_TEXT_DETECTION
func (g *Google) DetectDocumentText(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, opts ...gax.CallOption) (*visionpb.TextAnnotation, error) {
	res, err := g.annotate(ctx, img, ictx, visionpb.Feature_DOCUMENT_TEXT_DETECTION, 0, opts...)
	if err != nil {
		return nil, err
	}
	return res.GetFullTextAnnotation(), nil
}

// DetectImageProperties performs IMAGE_PROPERTIES
func (g *Google) DetectImageProperties(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, opts ...gax.CallOption) (*visionpb.ImageProperties, error) {
	res, err := g.annotate(ctx, img, ictx, visionpb.Feature_IMAGE_PROPERTIES, 0, opts...)
	if err != nil {
		return nil, err
	}
	return res.GetImagePropertiesAnnotation(), nil
}

// CropHints performs CROP_HINTS
func (g *Google) CropHints(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, opts ...gax.CallOption) (*visionpb.CropHintsAnnotation, error) {
	res, err := g.annotate(ctx, img, ictx, visionpb.Feature_CROP_HINTS, 0, opts...)
	if err != nil {
		return nil, err
	}
	return res.GetCropHintsAnnotation(), nil
}

// AnnotateFilesAndWait runs an asynchronous batch file annotation and polls
// the long-running operation until it completes
func (g *Google) AnnotateFilesAndWait(ctx context.Context, reqs []*visionpb.AsyncAnnotateFileRequest, opts ...gax.CallOption) (*visionpb.AsyncBatchAnnotateFilesResponse, error) {
	op, err := g.AsyncBatchAnnotateFiles(ctx, &visionpb.AsyncBatchAnnotateFilesRequest{Requests: reqs}, opts...)
	if err != nil {
		return nil, fmt.Errorf("async batch annotate files: %w", err)
	}
	resp, err := op.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("waiting for operation %s: %w", op.Name(), err)
	}
	return resp, nil
}

var _ Annotator = (*Google)(nil)
