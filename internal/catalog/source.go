// Package catalog loads the product catalog at startup from the built-in
// assortment, a local file or a remote URL.
package catalog

import (
	"context"
	"fmt"
	"os"
	"time"

	"fruitshop/basket/internal/config"
	"fruitshop/basket/internal/domain"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// document is the on-disk and over-the-wire catalog layout
type document struct {
	Products []domain.CatalogEntry `json:"products" yaml:"products"`
}

// Load picks the catalog source from configuration: URL first, then a
// file path, then the built-in catalog.
func Load(ctx context.Context, cfg config.CatalogConfig) (*domain.Catalog, error) {
	switch {
	case cfg.URL != "":
		timeout := time.Duration(cfg.Timeout) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		return FetchRemote(ctx, cfg.URL, timeout)

	case cfg.Path != "":
		return LoadFile(cfg.Path)

	default:
		log.Debug("Using built-in catalog")
		return domain.DefaultCatalog(), nil
	}
}

// LoadFile reads a YAML (or JSON) catalog document
func LoadFile(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	return build(doc, path)
}

func build(doc document, source string) (*domain.Catalog, error) {
	if len(doc.Products) == 0 {
		return nil, fmt.Errorf("catalog %s has no products", source)
	}

	c, err := domain.NewCatalog(doc.Products)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", source, err)
	}

	log.Infof("📦 Loaded catalog with %d products from %s", c.Len(), source)
	return c, nil
}
