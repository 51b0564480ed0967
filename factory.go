package gvision

import (
	"context"
	"fmt"

	"google.golang.org/api/option"

	"github.com/menta2k/gvision/pkg/client"
	"github.com/menta2k/gvision/pkg/gcs"
)

// FactoryFunc builds a GoogleVision from a validated configuration
type FactoryFunc func(ctx context.Context, cfg Config) (*GoogleVision, error)

// Create builds a GoogleVision backed by the Cloud Vision and Cloud Storage
// clients, authenticated with the configured credentials
func Create(ctx context.Context, cfg Config) (*GoogleVision, error) {
	opts, err := cfg.CredentialOptions()
	if err != nil {
		return nil, err
	}

	visionOpts := append([]option.ClientOption{}, opts...)
	if cfg.Endpoint != "" {
		visionOpts = append(visionOpts, option.WithEndpoint(cfg.Endpoint))
	}
	annotator, err := client.NewGoogle(ctx, visionOpts...)
	if err != nil {
		return nil, err
	}

	store, err := gcs.New(ctx, opts...)
	if err != nil {
		annotator.Close()
		return nil, err
	}

	gv := NewWithConfig(annotator, cfg)
	gv.SetObjectStore(store)
	return gv, nil
}

// Provider binds a configuration and hands out new GoogleVision instances
type Provider struct {
	config  Config
	factory FactoryFunc
}

// NewProvider creates a provider that builds instances with Create
func NewProvider(cfg Config) *Provider {
	return &Provider{config: cfg, factory: Create}
}

// SetFactory replaces the function used to build instances
func (p *Provider) SetFactory(factory FactoryFunc) {
	p.factory = factory
}

// Config returns the bound configuration
func (p *Provider) Config() Config {
	return p.config
}

// Resolve validates the configuration and builds a new instance. Instances
// are not shared; callers own and must Close them.
func (p *Provider) Resolve(ctx context.Context) (*GoogleVision, error) {
	if err := p.config.Validate(); err != nil {
		return nil, err
	}
	gv, err := p.factory(ctx, p.config)
	if err != nil {
		return nil, fmt.Errorf("failed to create google vision: %w", err)
	}
	return gv, nil
}
