package client

import (
	"context"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	gax "github.com/googleapis/gax-go/v2"
)

// Annotator is the part of the Cloud Vision image annotator used by the
// adapter. Google satisfies it; tests substitute fakes.
type Annotator interface {
	DetectTexts(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, maxResults int, opts ...gax.CallOption) ([]*visionpb.EntityAnnotation, error)
	DetectLogos(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, maxResults int, opts ...gax.CallOption) ([]*visionpb.EntityAnnotation, error)
	DetectFaces(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, maxResults int, opts ...gax.CallOption) ([]*visionpb.FaceAnnotation, error)
	DetectLabels(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, maxResults int, opts ...gax.CallOption) ([]*visionpb.EntityAnnotation, error)
	DetectLandmarks(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, maxResults int, opts ...gax.CallOption) ([]*visionpb.EntityAnnotation, error)
	LocalizeObjects(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, opts ...gax.CallOption) ([]*visionpb.LocalizedObjectAnnotation, error)
	DetectSafeSearch(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, opts ...gax.CallOption) (*visionpb.SafeSearchAnnotation, error)
	DetectWeb(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, opts ...gax.CallOption) (*visionpb.WebDetection, error)
	DetectDocumentText(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, opts ...gax.CallOption) (*visionpb.TextAnnotation, error)
	DetectImageProperties(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, opts ...gax.CallOption) (*visionpb.ImageProperties, error)
	CropHints(ctx context.Context, img *visionpb.Image, ictx *visionpb.ImageContext, opts ...gax.CallOption) (*visionpb.CropHintsAnnotation, error)

	// AnnotateFilesAndWait starts an asynchronous file annotation and blocks
	// until the operation completes.
	AnnotateFilesAndWait(ctx context.Context, reqs []*visionpb.AsyncAnnotateFileRequest, opts ...gax.CallOption) (*visionpb.AsyncBatchAnnotateFilesResponse, error)

	Close() error
}
