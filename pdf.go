package gvision

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/menta2k/gvision/pkg/gcs"
	"github.com/menta2k/gvision/pkg/normalize"
	"github.com/menta2k/gvision/pkg/source"
	"github.com/menta2k/gvision/pkg/types"
)

// fileMimeTypes maps extensions Vision accepts for file annotation
var fileMimeTypes = map[string]string{
	"pdf":  "application/pdf",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"gif":  "image/gif",
}

// FileMimeType returns the mime type sent for a file source, defaulting to
// application/pdf
func FileMimeType(path string) string {
	if mime, ok := fileMimeTypes[source.Extension(path)]; ok {
		return mime
	}
	return "application/pdf"
}

// PDFRequest builds the document text request for a gs:// file, writing
// JSON results under the gs:// prefix dst
func PDFRequest(src, dst string, batchSize int) *visionpb.AsyncAnnotateFileRequest {
	return &visionpb.AsyncAnnotateFileRequest{
		Features: []*visionpb.Feature{
			{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
		},
		InputConfig: &visionpb.InputConfig{
			GcsSource: &visionpb.GcsSource{Uri: src},
			MimeType:  FileMimeType(src),
		},
		OutputConfig: &visionpb.OutputConfig{
			GcsDestination: &visionpb.GcsDestination{Uri: dst},
			BatchSize:      int32(batchSize),
		},
	}
}

// PDF runs document text detection over a PDF stored in Cloud Storage and
// blocks until Vision has written the results under dst
func (gv *GoogleVision) PDF(ctx context.Context, src, dst string) error {
	if _, _, err := gcs.ParseURI(src); err != nil {
		return fmt.Errorf("pdf source: %w", err)
	}
	if _, _, err := gcs.ParseURI(dst); err != nil {
		return fmt.Errorf("pdf destination: %w", err)
	}

	req := PDFRequest(src, dst, gv.batchSize)
	if _, err := gv.annotator.AnnotateFilesAndWait(ctx, []*visionpb.AsyncAnnotateFileRequest{req}); err != nil {
		return fmt.Errorf("pdf annotation failed: %w", err)
	}
	return nil
}

// PDFResults reads the JSON output files written by PDF under dst and
// returns the text of every page, ordered by source and page number
func (gv *GoogleVision) PDFResults(ctx context.Context, dst string) ([]types.Page, error) {
	if gv.store == nil {
		return nil, ErrNoObjectStore
	}
	uris, err := gv.store.List(ctx, dst)
	if err != nil {
		return nil, err
	}

	var pages []types.Page
	for _, uri := range uris {
		if !strings.HasSuffix(uri, ".json") {
			continue
		}
		data, err := gv.store.Read(ctx, uri)
		if err != nil {
			return nil, err
		}
		filePages, err := ParseFileResponse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", uri, err)
		}
		pages = append(pages, filePages...)
	}

	// Output files list as output-1-to-2.json, output-11-to-12.json, output-3-to-4.json
	slices.SortStableFunc(pages, func(a, b types.Page) int {
		if c := strings.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		return cmp.Compare(a.Number, b.Number)
	})
	return pages, nil
}

// ParseFileResponse decodes one output file of an asynchronous file annotation
func ParseFileResponse(data []byte) ([]types.Page, error) {
	var resp visionpb.AnnotateFileResponse
	if err := (protojson.UnmarshalOptions{DiscardUnknown: true}).Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse annotation output: %w", err)
	}

	src := resp.GetInputConfig().GetGcsSource().GetUri()
	pages := make([]types.Page, 0, len(resp.GetResponses()))
	for _, r := range resp.GetResponses() {
		number := r.GetContext().GetPageNumber()
		if r.GetError() != nil {
			return nil, fmt.Errorf("page %d: %w", number, status.ErrorProto(r.GetError()))
		}
		if src == "" {
			src = r.GetContext().GetUri()
		}
		text := r.GetFullTextAnnotation()
		pages = append(pages, types.Page{
			Source: src,
			Number: number,
			Text:   text.GetText(),
			Blocks: normalize.Blocks(text),
		})
	}
	return pages, nil
}
