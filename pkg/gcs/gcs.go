// Package gcs reads objects from Google Cloud Storage by gs:// URI.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Scheme is the URI scheme of Cloud Storage objects
const Scheme = "gs://"

// ErrInvalidURI is returned for URIs that do not name a bucket
var ErrInvalidURI = errors.New("invalid gs:// URI")

// IsURI reports whether s is a gs:// URI
func IsURI(s string) bool {
	return strings.HasPrefix(s, Scheme)
}

// ParseURI splits a gs://bucket/object URI. The object may be empty.
func ParseURI(uri string) (bucket, object string, err error) {
	if !IsURI(uri) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}
	rest := strings.TrimPrefix(uri, Scheme)
	bucket, object, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}
	return bucket, object, nil
}

// Client wraps a Cloud Storage client
type Client struct {
	client *storage.Client
}

// New creates a Cloud Storage client with the given options
func New(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	c, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &Client{client: c}, nil
}

// Read downloads the object named by uri
func (c *Client) Read(ctx context.Context, uri string) ([]byte, error) {
	bucket, object, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	r, err := c.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", uri, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", uri, err)
	}
	return data, nil
}

// List returns the URIs of every object under the prefix uri, sorted by name
func (c *Client) List(ctx context.Context, uri string) ([]string, error) {
	bucket, prefix, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	var uris []string
	it := c.client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", uri, err)
		}
		uris = append(uris, Scheme+bucket+"/"+attrs.Name)
	}
	sort.Strings(uris)
	return uris, nil
}

// Close releases the underlying client
func (c *Client) Close() error {
	return c.client.Close()
}
