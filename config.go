package gvision

import (
	"encoding/json"
	"fmt"
	"os"

	"google.golang.org/api/option"

	"github.com/menta2k/gvision/pkg/codec"
	"github.com/menta2k/gvision/pkg/overlay"
)

// DefaultPDFBatchSize is the number of pages written per output file
const DefaultPDFBatchSize = 2

// Config holds the settings used to build a GoogleVision
type Config struct {
	// Credentials is either the path of a service account JSON file or the
	// decoded key itself
	Credentials  any           `yaml:"service_account_credentials_json" json:"service_account_credentials_json"`
	MaxResults   int           `yaml:"max_results" json:"max_results"`
	PDFBatchSize int           `yaml:"pdf_batch_size" json:"pdf_batch_size"`
	Endpoint     string        `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	Overlay      OverlayConfig `yaml:"overlay" json:"overlay"`
}

// OverlayConfig controls how bounds are drawn and encoded
type OverlayConfig struct {
	Color    string `yaml:"color" json:"color"`
	Stroke   int    `yaml:"stroke" json:"stroke"`
	Quality  int    `yaml:"quality" json:"quality"`
	Lossless bool   `yaml:"lossless" json:"lossless"`
}

// DefaultConfig returns a configuration without credentials
func DefaultConfig() Config {
	return Config{
		MaxResults:   0,
		PDFBatchSize: DefaultPDFBatchSize,
		Overlay: OverlayConfig{
			Color:   "#00ff00",
			Stroke:  1,
			Quality: codec.DefaultOptions().Quality,
		},
	}
}

// Validate guards against configurations that cannot build a client
func (c Config) Validate() error {
	switch creds := c.Credentials.(type) {
	case string:
		if _, err := os.Stat(creds); err != nil {
			return CredentialsJSONDoesNotExist(creds)
		}
	case map[string]any, map[string]string:
	default:
		return CredentialsTypeWrong(creds)
	}

	if c.MaxResults < 0 {
		return &InvalidConfigurationError{Message: "max_results must not be negative"}
	}
	// Zero selects DefaultPDFBatchSize
	if c.PDFBatchSize < 0 || c.PDFBatchSize > 100 {
		return &InvalidConfigurationError{Message: "pdf_batch_size must be between 1 and 100, or 0 for the default"}
	}
	if c.Overlay.Color != "" {
		if _, err := overlay.ParseColor(c.Overlay.Color); err != nil {
			return &InvalidConfigurationError{Message: fmt.Sprintf("overlay.color: %v", err)}
		}
	}
	if c.Overlay.Stroke < 0 {
		return &InvalidConfigurationError{Message: "overlay.stroke must not be negative"}
	}
	if c.Overlay.Quality < 0 || c.Overlay.Quality > 100 {
		return &InvalidConfigurationError{Message: "overlay.quality must be between 0 and 100"}
	}
	return nil
}

// CredentialOptions converts the credentials into client options shared by
// the Vision and Storage clients
func (c Config) CredentialOptions() ([]option.ClientOption, error) {
	switch creds := c.Credentials.(type) {
	case string:
		return []option.ClientOption{option.WithCredentialsFile(creds)}, nil
	case map[string]any, map[string]string:
		data, err := json.Marshal(creds)
		if err != nil {
			return nil, fmt.Errorf("failed to encode credentials: %w", err)
		}
		return []option.ClientOption{option.WithCredentialsJSON(data)}, nil
	default:
		return nil, CredentialsTypeWrong(creds)
	}
}

// style returns the overlay style, falling back to defaults for unset fields
func (c Config) style() overlay.Style {
	style := overlay.DefaultStyle()
	if c.Overlay.Color != "" {
		if col, err := overlay.ParseColor(c.Overlay.Color); err == nil {
			style.Color = col
		}
	}
	if c.Overlay.Stroke > 0 {
		style.Stroke = c.Overlay.Stroke
	}
	return style
}

func (c Config) encodeOptions() codec.Options {
	opts := codec.DefaultOptions()
	if c.Overlay.Quality > 0 {
		opts.Quality = c.Overlay.Quality
	}
	opts.Lossless = c.Overlay.Lossless
	return opts
}
