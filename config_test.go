package gvision

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCredentials(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "service-account.json")
	if err := os.WriteFile(path, []byte(`{"type":"service_account"}`), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.PDFBatchSize != DefaultPDFBatchSize {
		t.Errorf("Expected batch size %d, got %d", DefaultPDFBatchSize, cfg.PDFBatchSize)
	}
	if cfg.Overlay.Color != "#00ff00" || cfg.Overlay.Stroke != 1 {
		t.Errorf("Unexpected overlay defaults %+v", cfg.Overlay)
	}
}

func TestConfigValidate(t *testing.T) {
	credentials := writeCredentials(t)

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "credentials file",
			modify: func(c *Config) { c.Credentials = credentials },
		},
		{
			name:   "inline credentials",
			modify: func(c *Config) { c.Credentials = map[string]any{"type": "service_account"} },
		},
		{
			name:   "string map credentials",
			modify: func(c *Config) { c.Credentials = map[string]string{"type": "service_account"} },
		},
		{
			name:    "missing credentials file",
			modify:  func(c *Config) { c.Credentials = "/nonexistent/key.json" },
			wantErr: "could not find a credentials file at `/nonexistent/key.json`",
		},
		{
			name:    "wrong credentials type",
			modify:  func(c *Config) { c.Credentials = 42 },
			wantErr: "credentials should be a mapping or the path of a json file, int was given",
		},
		{
			name:    "no credentials",
			modify:  func(c *Config) { c.Credentials = nil },
			wantErr: "credentials should be a mapping",
		},
		{
			name: "negative max results",
			modify: func(c *Config) {
				c.Credentials = credentials
				c.MaxResults = -1
			},
			wantErr: "max_results",
		},
		{
			name: "batch size too large",
			modify: func(c *Config) {
				c.Credentials = credentials
				c.PDFBatchSize = 101
			},
			wantErr: "pdf_batch_size",
		},
		{
			name: "negative batch size",
			modify: func(c *Config) {
				c.Credentials = credentials
				c.PDFBatchSize = -1
			},
			wantErr: "pdf_batch_size",
		},
		{
			name: "invalid color",
			modify: func(c *Config) {
				c.Credentials = credentials
				c.Overlay.Color = "green"
			},
			wantErr: "overlay.color",
		},
		{
			name: "invalid quality",
			modify: func(c *Config) {
				c.Credentials = credentials
				c.Overlay.Quality = 101
			},
			wantErr: "overlay.quality",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			var invalid *InvalidConfigurationError
			if !errors.As(err, &invalid) {
				t.Fatalf("Expected InvalidConfigurationError, got %v", err)
			}
			if !strings.Contains(invalid.Message, tt.wantErr) {
				t.Errorf("Expected message containing %q, got %q", tt.wantErr, invalid.Message)
			}
		})
	}
}

func TestZeroConfigWithCredentials(t *testing.T) {
	cfg := Config{Credentials: writeCredentials(t)}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	gv := NewWithConfig(&fakeAnnotator{}, cfg)
	if gv.batchSize != DefaultPDFBatchSize {
		t.Errorf("Expected batch size %d, got %d", DefaultPDFBatchSize, gv.batchSize)
	}
}

func TestCredentialOptions(t *testing.T) {
	cfg := DefaultConfig()

	cfg.Credentials = writeCredentials(t)
	opts, err := cfg.CredentialOptions()
	if err != nil || len(opts) != 1 {
		t.Errorf("Expected one option for a credentials file, got %d (%v)", len(opts), err)
	}

	cfg.Credentials = map[string]any{"type": "service_account"}
	opts, err = cfg.CredentialOptions()
	if err != nil || len(opts) != 1 {
		t.Errorf("Expected one option for inline credentials, got %d (%v)", len(opts), err)
	}

	cfg.Credentials = []string{"nope"}
	if _, err := cfg.CredentialOptions(); err == nil {
		t.Error("Expected error for wrong credentials type")
	}
}

func TestConfigStyleFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Overlay = OverlayConfig{}

	style := cfg.style()
	if style.Stroke != 1 || style.Color.G != 255 {
		t.Errorf("Expected default style, got %+v", style)
	}
	if opts := cfg.encodeOptions(); opts.Quality != 90 {
		t.Errorf("Expected default quality 90, got %d", opts.Quality)
	}
}
