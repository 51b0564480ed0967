package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/menta2k/gvision"
)

func TestRunFeatureUnknown(t *testing.T) {
	gv := gvision.New(nil)
	if _, err := runFeature(context.Background(), gv, "colors", "in.png", "", false); err == nil {
		t.Error("Expected error for unknown feature")
	}
}

func TestRunPDFRequiresDestination(t *testing.T) {
	gv := gvision.New(nil)
	if err := runPDF(context.Background(), gv, "gs://bucket/in.pdf", "", false); err == nil {
		t.Error("Expected error without -dst")
	}
}

func TestHasOverlay(t *testing.T) {
	for _, feature := range []string{"logo", "face", "crop"} {
		if !hasOverlay(feature) {
			t.Errorf("Expected %s to write an overlay", feature)
		}
	}
	if hasOverlay("label") {
		t.Error("label does not write an overlay")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("vision:\n  max_results: 3\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GOOGLE_VISION_ENDPOINT", "vision.example.com:443")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Vision.MaxResults != 3 {
		t.Errorf("Expected max results 3, got %d", cfg.Vision.MaxResults)
	}
	if cfg.Vision.Endpoint != "vision.example.com:443" {
		t.Errorf("Expected endpoint from environment, got %q", cfg.Vision.Endpoint)
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}
