// Package source loads images from local files, http(s) URLs and gs:// URIs.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/menta2k/gvision/internal/utils"
	"github.com/menta2k/gvision/pkg/gcs"
)

// UserAgent is sent with http(s) downloads
const UserAgent = "gvision/1.0"

// ErrUnsupportedScheme is returned for URLs other than http, https and gs
var ErrUnsupportedScheme = errors.New("unsupported URL scheme")

// ObjectReader downloads gs:// objects
type ObjectReader interface {
	Read(ctx context.Context, uri string) ([]byte, error)
}

// Image is a loaded source. Content is empty for gs:// sources, which Vision
// reads by URI.
type Image struct {
	Path    string
	URI     string
	Content []byte
}

// Proto returns the Vision image for the source
func (img *Image) Proto() *visionpb.Image {
	if img.URI != "" && len(img.Content) == 0 {
		return &visionpb.Image{Source: &visionpb.ImageSource{ImageUri: img.URI}}
	}
	return &visionpb.Image{Content: img.Content}
}

// Extension returns the lower-case file extension of the source path,
// ignoring any URL query
func (img *Image) Extension() string {
	return Extension(img.Path)
}

// Extension returns the lower-case extension of a path or URL without the dot
func Extension(p string) string {
	if isURL(p) {
		if u, err := url.Parse(p); err == nil {
			return utils.GetFileExtension(path.Base(u.Path))
		}
	}
	return utils.GetFileExtension(p)
}

// Loader reads image sources
type Loader struct {
	client  *http.Client
	objects ObjectReader
}

// NewLoader creates a loader with a 30 second download timeout
func NewLoader() *Loader {
	return &Loader{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetHTTPClient replaces the client used for http(s) downloads
func (l *Loader) SetHTTPClient(client *http.Client) {
	l.client = client
}

// SetObjectReader sets the reader used to fetch gs:// content
func (l *Loader) SetObjectReader(r ObjectReader) {
	l.objects = r
}

// Load reads a local file or downloads an http(s) URL. gs:// sources are
// returned without content.
func (l *Loader) Load(ctx context.Context, p string) (*Image, error) {
	switch {
	case gcs.IsURI(p):
		if _, _, err := gcs.ParseURI(p); err != nil {
			return nil, err
		}
		return &Image{Path: p, URI: p}, nil
	case isURL(p):
		data, err := l.download(ctx, p)
		if err != nil {
			return nil, err
		}
		return &Image{Path: p, Content: data}, nil
	case strings.Contains(p, "://"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, p)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return &Image{Path: p, Content: data}, nil
}

// Bytes returns the image content, fetching gs:// objects when needed
func (l *Loader) Bytes(ctx context.Context, img *Image) ([]byte, error) {
	if len(img.Content) > 0 || img.URI == "" {
		return img.Content, nil
	}
	if l.objects == nil {
		return nil, fmt.Errorf("no object reader configured for %s", img.URI)
	}
	data, err := l.objects.Read(ctx, img.URI)
	if err != nil {
		return nil, err
	}
	img.Content = data
	return data, nil
}

func (l *Loader) download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d %s", resp.StatusCode, resp.Status)
	}

	// Servers that omit a content type are trusted
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") && !strings.HasPrefix(ct, "application/") {
		return nil, fmt.Errorf("URL does not point to an image (Content-Type: %s)", ct)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

func isURL(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}
