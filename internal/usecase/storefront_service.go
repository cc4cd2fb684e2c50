package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/plantshop/backend/internal/domain"
	"github.com/plantshop/backend/internal/infrastructure/plantapi"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	catalogCacheKey = "catalog:plants"
	refreshKey      = "refresh"
	forceRefreshKey = "refresh:force"

	sourceNetwork = "network"
	sourceCache   = "cache"

	resultSuccess = "success"
	resultFailure = "failure"
)

// StorefrontServiceConfig holds configuration for the storefront service
type StorefrontServiceConfig struct {
	CacheTTL     time.Duration // 0 disables the snapshot cache
	FetchTimeout time.Duration
	Display      plantapi.Display
	Logger       *zap.Logger
	Metrics      domain.MetricsRecorder
}

// StorefrontService owns the catalog, cart and category stores and
// turns user intents into store operations and render-ready views.
type StorefrontService struct {
	client   domain.CatalogClient
	cache    domain.CacheRepository
	catalog  *CatalogStore
	cart     *CartStore
	selector *CategorySelector

	cacheTTL     time.Duration
	fetchTimeout time.Duration
	display      plantapi.Display
	logger       *zap.Logger
	metrics      domain.MetricsRecorder

	sfg     singleflight.Group
	mu      sync.RWMutex
	state   domain.ViewState
	message string
}

// NewStorefrontService creates a storefront with empty stores in the loading state
func NewStorefrontService(
	client domain.CatalogClient,
	cache domain.CacheRepository,
	config StorefrontServiceConfig,
) *StorefrontService {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	metrics := config.Metrics
	if metrics == nil {
		metrics = nopMetrics{}
	}

	display := config.Display
	if display == (plantapi.Display{}) {
		display = plantapi.DefaultDisplay
	}

	return &StorefrontService{
		client:       client,
		cache:        cache,
		catalog:      NewCatalogStore(),
		cart:         NewCartStore(),
		selector:     NewCategorySelector(),
		cacheTTL:     config.CacheTTL,
		fetchTimeout: config.FetchTimeout,
		display:      display,
		logger:       logger.Named("storefront"),
		metrics:      metrics,
		state:        domain.ViewStateLoading,
	}
}

// Refresh loads the catalog, from the snapshot cache when allowed and
// fresh, otherwise from the catalog API. Concurrent calls with the same
// force flag share one fetch.
//
// The shared fetch does not inherit the caller's cancellation: a caller
// that gives up returns ctx.Err() while the fetch completes for the
// others, bounded by the fetch timeout.
//
// On failure the view switches to the error state and the previous
// snapshot and the cart are left as they were.
func (s *StorefrontService) Refresh(ctx context.Context, force bool) error {
	key := refreshKey
	if force {
		key = forceRefreshKey
	}

	detached := context.WithoutCancel(ctx)
	ch := s.sfg.DoChan(key, func() (interface{}, error) {
		return nil, s.refresh(detached, force)
	})

	select {
	case res := <-ch:
		if res.Shared {
			s.logger.Debug("refresh shared with in-flight call", zap.Bool("force", force))
		}
		return res.Err
	case <-ctx.Done():
		return fmt.Errorf("refresh catalog: %w", ctx.Err())
	}
}

func (s *StorefrontService) refresh(ctx context.Context, force bool) error {
	if !force {
		if records, ok := s.cachedSnapshot(ctx); ok {
			s.apply(records)
			s.metrics.CatalogFetched(sourceCache, resultSuccess, len(records))
			s.logger.Debug("catalog loaded from cache", zap.Int("plants", len(records)))
			return nil
		}
	}

	prevState, prevMessage := s.currentState()
	s.setState(domain.ViewStateLoading, "")

	fetchCtx := ctx
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	records, err := s.client.FetchPlants(fetchCtx)
	if errors.Is(err, context.Canceled) {
		// cancellation is not an upstream failure; the catalog stays as it was
		s.setState(prevState, prevMessage)
		s.logger.Info("catalog refresh cancelled", zap.Error(err))
		return fmt.Errorf("refresh catalog: %w", err)
	}
	if err != nil {
		s.setState(domain.ViewStateError, domain.FetchFailureMessage)
		s.metrics.CatalogFetched(sourceNetwork, resultFailure, 0)
		s.logger.Warn("catalog refresh failed", zap.Error(err))
		return fmt.Errorf("refresh catalog: %w", err)
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.Set(ctx, catalogCacheKey, copyRecords(records), s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache catalog snapshot", zap.Error(err))
		}
	}

	s.apply(records)
	s.metrics.CatalogFetched(sourceNetwork, resultSuccess, len(records))
	s.logger.Info("catalog refreshed", zap.Int("plants", len(records)))
	return nil
}

func (s *StorefrontService) cachedSnapshot(ctx context.Context) ([]domain.PlantRecord, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil, false
	}

	value, err := s.cache.Get(ctx, catalogCacheKey)
	if err != nil {
		return nil, false
	}

	switch v := value.(type) {
	case []domain.PlantRecord:
		return v, true
	case json.RawMessage:
		var records []domain.PlantRecord
		if err := json.Unmarshal(v, &records); err != nil {
			s.logger.Warn("cached catalog could not be decoded", zap.Error(err))
			return nil, false
		}
		return records, true
	default:
		s.logger.Warn("unexpected cached catalog type", zap.String("type", fmt.Sprintf("%T", value)))
		return nil, false
	}
}

func (s *StorefrontService) apply(records []domain.PlantRecord) {
	s.catalog.Load(records)
	s.setState(domain.ViewStateLoaded, "")
}

func (s *StorefrontService) currentState() (domain.ViewState, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.message
}

func (s *StorefrontService) setState(state domain.ViewState, message string) {
	s.mu.Lock()
	s.state = state
	s.message = message
	s.mu.Unlock()
}

// CatalogView renders the grid for the active category
func (s *StorefrontService) CatalogView() domain.CatalogView {
	state, message := s.currentState()

	active := s.selector.Active()
	view := domain.CatalogView{
		State:          state,
		Message:        message,
		ActiveCategory: active,
		Plants:         []domain.PlantCard{},
	}

	if state != domain.ViewStateLoaded {
		return view
	}

	view.Plants = plantapi.MapToCards(s.catalog.Filter(active), s.display)
	if len(view.Plants) == 0 {
		view.State = domain.ViewStateEmpty
		view.Message = domain.EmptyCatalogMessage
	}
	return view
}

// SelectCategory makes category the active filter and renders the grid
func (s *StorefrontService) SelectCategory(category string) domain.CatalogView {
	s.selector.Select(category)
	return s.CatalogView()
}

// Categories lists the filter bar entries, CategoryAll first
func (s *StorefrontService) Categories() domain.CategoryList {
	categories := append([]string{domain.CategoryAll}, s.catalog.Categories()...)
	return domain.CategoryList{
		Categories: categories,
		Active:     s.selector.Active(),
	}
}

// PlantDetail renders the detail modal for the named plant
func (s *StorefrontService) PlantDetail(name string) (domain.PlantCard, error) {
	record, ok := s.catalog.Find(name)
	if !ok {
		return domain.PlantCard{}, fmt.Errorf("%w: %q", domain.ErrPlantNotFound, name)
	}
	return plantapi.MapToCard(record, s.display), nil
}

// AddToCart adds one unit of the named catalog plant to the cart
func (s *StorefrontService) AddToCart(name string) (domain.CartSummary, error) {
	record, ok := s.catalog.Find(name)
	if !ok {
		return domain.CartSummary{}, fmt.Errorf("%w: %q", domain.ErrPlantNotFound, name)
	}

	s.cart.Add(record)
	s.metrics.CartOperation("add")
	s.logger.Debug("added to cart", zap.String("plant", name))
	return s.Cart(), nil
}

// RemoveFromCart drops the whole line for name; unknown names are ignored
func (s *StorefrontService) RemoveFromCart(name string) domain.CartSummary {
	s.cart.Remove(name)
	s.metrics.CartOperation("remove")
	s.logger.Debug("removed from cart", zap.String("plant", name))
	return s.Cart()
}

// Cart renders the cart panel
func (s *StorefrontService) Cart() domain.CartSummary {
	lines, total := s.cart.Snapshot()
	return plantapi.MapToCartSummary(lines, total, s.display)
}

// State returns the current catalog view state
func (s *StorefrontService) State() domain.ViewState {
	return s.CatalogView().State
}

func copyRecords(records []domain.PlantRecord) []domain.PlantRecord {
	out := make([]domain.PlantRecord, len(records))
	copy(out, records)
	return out
}

type nopMetrics struct{}

func (nopMetrics) CatalogFetched(string, string, int) {}
func (nopMetrics) CartOperation(string)               {}
