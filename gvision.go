// Package gvision adapts the Google Cloud Vision API into per-feature
// convenience methods that return plain result structures.
//
// Basic usage:
//
//	gv, err := gvision.Create(ctx, gvision.Config{
//		Credentials:  "service-account.json",
//		PDFBatchSize: gvision.DefaultPDFBatchSize,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer gv.Close()
//
//	labels, err := gv.Label(ctx, "photo.jpg")
//
//	// Draw the detected faces onto a copy of the image
//	faces, err := gv.Output("faces.jpg").Face(ctx, "photo.jpg", "")
//
// Every method makes exactly one annotation request. SDK errors are returned
// wrapped and never retried.
//
// Sources may be local files, http(s) URLs or gs:// URIs. Local files and
// URLs are sent inline; gs:// URIs are read by Vision directly and only
// downloaded when an overlay has to be drawn.
package gvision

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/menta2k/gvision/internal/utils"
	"github.com/menta2k/gvision/pkg/client"
	"github.com/menta2k/gvision/pkg/codec"
	"github.com/menta2k/gvision/pkg/overlay"
	"github.com/menta2k/gvision/pkg/source"
	"github.com/menta2k/gvision/pkg/types"
)

// Version of the gvision library
const Version = "1.0.0"

// ObjectStore reads Cloud Storage objects. *gcs.Client satisfies it.
type ObjectStore interface {
	Read(ctx context.Context, uri string) ([]byte, error)
	List(ctx context.Context, uri string) ([]string, error)
}

// GoogleVision performs Cloud Vision annotations and reshapes the results
type GoogleVision struct {
	annotator  client.Annotator
	loader     *source.Loader
	store      ObjectStore
	output     string
	style      overlay.Style
	encode     codec.Options
	maxResults int
	batchSize  int
}

// New creates a GoogleVision with default configuration
func New(annotator client.Annotator) *GoogleVision {
	return NewWithConfig(annotator, DefaultConfig())
}

// NewWithConfig creates a GoogleVision with custom configuration. The
// credentials of cfg are not used; the annotator is already authenticated.
func NewWithConfig(annotator client.Annotator, cfg Config) *GoogleVision {
	batchSize := cfg.PDFBatchSize
	if batchSize < 1 {
		batchSize = DefaultPDFBatchSize
	}
	return &GoogleVision{
		annotator:  annotator,
		loader:     source.NewLoader(),
		style:      cfg.style(),
		encode:     cfg.encodeOptions(),
		maxResults: cfg.MaxResults,
		batchSize:  batchSize,
	}
}

// SetObjectStore sets the store used to download gs:// sources and PDF results
func (gv *GoogleVision) SetObjectStore(store ObjectStore) {
	gv.store = store
	gv.loader.SetObjectReader(store)
}

// Loader returns the source loader, e.g. to replace its HTTP client
func (gv *GoogleVision) Loader() *source.Loader {
	return gv.loader
}

// Output returns a copy of gv that writes bounds overlays to path. The
// receiver is left unchanged.
func (gv *GoogleVision) Output(path string) *GoogleVision {
	c := *gv
	c.output = path
	return &c
}

// OutputPath returns the overlay output path, empty when unset
func (gv *GoogleVision) OutputPath() string {
	return gv.output
}

// Close releases the annotator and the object store
func (gv *GoogleVision) Close() error {
	err := gv.annotator.Close()
	if closer, ok := gv.store.(io.Closer); ok {
		if cerr := closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}

func (gv *GoogleVision) load(ctx context.Context, path string) (*source.Image, error) {
	img, err := gv.loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return img, nil
}

// overlayExtension picks the codec extension for an overlay and fails early
// when it is not supported
func overlayExtension(ext, path string) (string, error) {
	if ext == "" {
		ext = source.Extension(path)
	}
	if !codec.Supported(ext) {
		return "", fmt.Errorf("%w: %q", codec.ErrUnsupportedExtension, ext)
	}
	return ext, nil
}

// drawBounds draws one rectangle per polygon onto a copy of the source and
// writes it to the output path in the source format
func (gv *GoogleVision) drawBounds(ctx context.Context, img *source.Image, polygons []types.Bounds, ext string) error {
	data, err := gv.loader.Bytes(ctx, img)
	if err != nil {
		return fmt.Errorf("failed to read source for overlay: %w", err)
	}
	decoded, err := codec.Decode(bytes.NewReader(data), ext)
	if err != nil {
		return err
	}

	drawn := overlay.DrawBounds(decoded, polygons, gv.style)

	if err := utils.EnsureDir(filepath.Dir(gv.output)); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := codec.Save(drawn, gv.output, ext, gv.encode); err != nil {
		return fmt.Errorf("failed to save overlay: %w", err)
	}
	return nil
}
