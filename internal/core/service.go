package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JonMunkholm/pricelist/internal/config"
	"github.com/JonMunkholm/pricelist/internal/logging"
)

// LoadTimeout is the default upper bound of a load pass.
var LoadTimeout = 5 * time.Minute

// Service provides the core business logic for a price-list session.
// It owns the session's Catalog; nothing is shared between Services.
type Service struct {
	loader  *Loader
	catalog *Catalog
	dir     string
	timeout time.Duration

	// loadMu serializes load passes so each pass lands in the catalog as one block.
	loadMu sync.Mutex
}

// NewService creates a Service from configuration.
func NewService(cfg *config.Config) (*Service, error) {
	policy, err := ParsePolicy(cfg.Load.ErrorPolicy)
	if err != nil {
		return nil, err
	}

	loader, err := NewLoader(LoaderOptions{
		Keyword:  cfg.Prices.Keyword,
		Encoding: cfg.Prices.Encoding,
		Policy:   policy,
		Workers:  cfg.Load.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("create loader: %w", err)
	}

	return NewServiceWithLoader(loader, cfg.Prices.Dir, cfg.Load.Timeout), nil
}

// NewServiceWithLoader creates a Service around an existing Loader.
// An empty dir means the current directory.
func NewServiceWithLoader(loader *Loader, dir string, timeout time.Duration) *Service {
	if dir == "" {
		dir = "."
	}
	if timeout <= 0 {
		timeout = LoadTimeout
	}
	return &Service{
		loader:  loader,
		catalog: NewCatalog(),
		dir:     dir,
		timeout: timeout,
	}
}

// Dir returns the configured price-list directory.
func (s *Service) Dir() string {
	return s.dir
}

// Load runs a load pass over dir (the configured directory when empty) and
// appends the products to the catalog. On error the catalog is unchanged.
func (s *Service) Load(ctx context.Context, dir string) (*LoadResult, error) {
	if dir == "" {
		dir = s.dir
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	result, err := s.loader.Load(ctx, dir)
	if err != nil {
		return nil, err
	}

	s.catalog.Append(result.Products...)

	logging.WithFields(ctx, "pass_id", result.PassID).Info("catalog updated",
		"added", len(result.Products),
		"total", s.catalog.Len(),
	)
	return result, nil
}

// LoadPrices loads dir and returns the products added by this call.
// Calling it twice on the same directory doubles the catalog.
func (s *Service) LoadPrices(ctx context.Context, dir string) ([]Product, error) {
	result, err := s.Load(ctx, dir)
	if err != nil {
		return nil, err
	}
	return result.Products, nil
}

// Reload runs another load pass over the configured directory.
func (s *Service) Reload(ctx context.Context) (*LoadResult, error) {
	return s.Load(ctx, s.dir)
}

// FindText returns catalog products whose name contains text, ignoring
// case, in catalog order. Empty text returns the whole catalog.
func (s *Service) FindText(text string) []Product {
	return s.catalog.Search(text)
}

// SearchSorted is FindText ordered by ascending unit price.
func (s *Service) SearchSorted(text string) []Product {
	products := s.FindText(text)
	SortByUnitPrice(products)
	return products
}

// Products returns a snapshot of the whole catalog.
func (s *Service) Products() []Product {
	return s.catalog.Products()
}

// Len returns the catalog size.
func (s *Service) Len() int {
	return s.catalog.Len()
}
