package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/menta2k/gvision"
	"github.com/menta2k/gvision/internal/config"
	"github.com/menta2k/gvision/internal/utils"
)

var features = []string{
	"text", "logo", "face", "label", "landmark", "object", "safe-search",
	"web", "document", "properties", "crop-hints", "crop", "pdf",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var in, out, ext, feature, dst string
	var configPath, credentials, logFile string
	var geo, results bool

	flag.StringVar(&feature, "feature", "label", "feature to run: "+strings.Join(features, "|"))
	flag.StringVar(&in, "in", "", "input image path, URL, gs:// URI or directory")
	flag.StringVar(&out, "out", "", "overlay output file (or directory when -in is a directory)")
	flag.StringVar(&ext, "ext", "", "image format override for overlays: png|gif|jpg|bmp|tiff|webp")
	flag.StringVar(&dst, "dst", "", "gs:// output prefix for -feature pdf")
	flag.BoolVar(&results, "results", false, "with -feature pdf, print the page text written under -dst")
	flag.BoolVar(&geo, "geo", false, "include geo results in web detection")

	flag.StringVar(&configPath, "config", "", "YAML config file (default "+config.GetConfigPath()+" if present)")
	flag.StringVar(&credentials, "credentials", "", "service account JSON file, overrides the config")
	flag.StringVar(&logFile, "log-file", "", "write logs to a rotated file instead of stderr")

	flag.Parse()
	if in == "" {
		return fmt.Errorf("usage: %s -feature %s -in input [-out overlay] [-ext png] [-geo] [-dst gs://bucket/prefix]",
			filepath.Base(os.Args[0]), strings.Join(features, "|"))
	}

	if logFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if credentials != "" {
		cfg.Vision.Credentials = credentials
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := context.Background()
	gv, err := gvision.NewProvider(cfg.Vision).Resolve(ctx)
	if err != nil {
		return err
	}
	defer gv.Close()

	if feature == "pdf" {
		return runPDF(ctx, gv, in, dst, results)
	}

	inputs := []string{in}
	batch := utils.DirExists(in)
	if batch {
		inputs, err = utils.ListImageFiles(in)
		if err != nil {
			return err
		}
		log.Printf("found %d images in %s", len(inputs), in)
	}

	all := map[string]any{}
	for _, input := range inputs {
		target := gv
		if out != "" {
			overlayPath := out
			if batch {
				overlayPath = utils.GenerateOutputFilename(input, out, cfg.Output.Prefix, cfg.Output.Suffix, ext)
			}
			target = gv.Output(overlayPath)
		}

		result, err := runFeature(ctx, target, feature, input, ext, geo)
		if err != nil {
			if !batch {
				return err
			}
			log.Printf("%s failed: %v", input, err)
			continue
		}
		if info, err := os.Stat(input); err == nil {
			log.Printf("%s %s (%s)", feature, input, utils.FormatFileSize(info.Size()))
		}
		if target.OutputPath() != "" && hasOverlay(feature) {
			log.Printf("wrote %s", target.OutputPath())
		}
		all[input] = result
	}

	var printed any = all
	if !batch {
		printed = all[in]
	}
	js, err := json.MarshalIndent(printed, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(js))
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case path != "":
		c, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = c
	case utils.FileExists(config.GetConfigPath()):
		c, err := config.LoadFromFile(config.GetConfigPath())
		if err != nil {
			return nil, err
		}
		cfg = c
	default:
		cfg = config.Default()
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func hasOverlay(feature string) bool {
	return feature == "logo" || feature == "face" || feature == "crop"
}

func runFeature(ctx context.Context, gv *gvision.GoogleVision, feature, in, ext string, geo bool) (any, error) {
	switch feature {
	case "text":
		return gv.Text(ctx, in)
	case "logo":
		return gv.Logo(ctx, in, ext)
	case "face":
		return gv.Face(ctx, in, ext)
	case "label":
		return gv.Label(ctx, in)
	case "landmark":
		return gv.Landmark(ctx, in)
	case "object":
		return gv.Object(ctx, in)
	case "safe-search":
		return gv.SafeSearch(ctx, in)
	case "web":
		return gv.Web(ctx, in, geo)
	case "document":
		return gv.Document(ctx, in)
	case "properties":
		return gv.ImageProperty(ctx, in)
	case "crop-hints":
		return gv.CropHints(ctx, in)
	case "crop":
		return gv.CropToHint(ctx, in, ext)
	default:
		return nil, fmt.Errorf("unknown feature %q (use %s)", feature, strings.Join(features, "|"))
	}
}

func runPDF(ctx context.Context, gv *gvision.GoogleVision, src, dst string, results bool) error {
	if dst == "" {
		return fmt.Errorf("-dst is required for -feature pdf")
	}
	log.Printf("annotating %s into %s", src, dst)
	if err := gv.PDF(ctx, src, dst); err != nil {
		return err
	}
	log.Printf("annotation of %s complete", src)

	if !results {
		return nil
	}
	pages, err := gv.PDFResults(ctx, dst)
	if err != nil {
		return err
	}
	js, err := json.MarshalIndent(pages, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(js))
	return nil
}
