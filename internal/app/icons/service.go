package icons

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/alexisbeaulieu97/barbar/internal/bar"
	"github.com/alexisbeaulieu97/barbar/internal/config"
	"github.com/alexisbeaulieu97/barbar/internal/expr"
	"github.com/alexisbeaulieu97/barbar/internal/logger"
	"github.com/alexisbeaulieu97/barbar/internal/pixel"
	"github.com/alexisbeaulieu97/barbar/internal/sprite"
	"github.com/alexisbeaulieu97/barbar/internal/state"
	"github.com/alexisbeaulieu97/barbar/internal/variantcache"
)

// Options configures a Service beyond what Settings carries.
type Options struct {
	// Meter records cache metrics; nil uses the global provider.
	Meter metric.Meter
	// Now overrides the clock used by every cache.
	Now func() time.Time
}

// Service owns the sheet store, the variant cache, the expression engine and
// the state resolver for the life of the process, and exposes the operations
// the configuration and rendering surfaces need.
type Service struct {
	settings config.Settings

	sheets   *sprite.Store
	cache    *variantcache.Cache
	engine   *expr.Engine
	resolver *state.Resolver
	log      *logger.Logger
}

// NewService constructs every cache from settings.
func NewService(settings config.Settings, opts Options, log *logger.Logger) (*Service, error) {
	if err := config.ValidateSettings(&settings); err != nil {
		return nil, err
	}

	sheets, err := sprite.NewStore(settings.AssetDir, settings.SheetCacheSize, log)
	if err != nil {
		return nil, fmt.Errorf("create sheet store: %w", err)
	}

	cache, err := variantcache.New(sheets, variantcache.Options{
		Dir:      settings.ResolvedCacheDir(),
		Capacity: settings.IconCacheSize,
		Now:      opts.Now,
		Meter:    opts.Meter,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("open variant cache: %w", err)
	}

	engine, err := expr.New(expr.Options{Capacity: settings.ExprCacheSize, Now: opts.Now}, log)
	if err != nil {
		return nil, fmt.Errorf("create expression engine: %w", err)
	}

	resolverOpts := []state.Option{}
	if opts.Now != nil {
		resolverOpts = append(resolverOpts, state.WithClock(opts.Now))
	}

	return &Service{
		settings: settings,
		sheets:   sheets,
		cache:    cache,
		engine:   engine,
		resolver: state.NewResolver(engine, resolverOpts...),
		log:      log.Component("icons"),
	}, nil
}

// Settings returns the settings the service was built from.
func (s *Service) Settings() config.Settings {
	return s.settings
}

// GetIcon renders or fetches the native-size icon.
func (s *Service) GetIcon(sheetID string, iconIndex int, variantRaw string) (*pixel.Buffer, error) {
	return s.cache.GetIcon(sheetID, iconIndex, variantRaw)
}

// GetIconSized renders or fetches the icon scaled to size x size; size <= 0
// uses the configured icon size.
func (s *Service) GetIconSized(sheetID string, iconIndex int, variantRaw string, size int) (*pixel.Buffer, error) {
	if size <= 0 {
		size = s.settings.IconSize
	}
	return s.cache.GetIconSized(sheetID, iconIndex, variantRaw, size, size)
}

// IconFor renders the icon a button shows in the given state.
func (s *Service) IconFor(def config.ButtonDefinition, name config.StateName, size int) (*pixel.Buffer, error) {
	spec, _ := def.State(name)
	return s.GetIconSized(def.Image, spec.IconIndex(), spec.Variant, size)
}

// DetermineState resolves the button's state, memoized per button.
func (s *Service) DetermineState(def config.ButtonDefinition, vars map[string]any) config.StateName {
	return s.resolver.Resolve(def, vars)
}

// RefreshState resolves the button's state ignoring the memo.
func (s *Service) RefreshState(def config.ButtonDefinition, vars map[string]any) config.StateName {
	return s.resolver.Refresh(def, vars)
}

// Timer evaluates a timer expression.
func (s *Service) Timer(source string, vars map[string]any) int {
	return s.engine.Timer(source, vars)
}

// PregenerateAll renders every configured variant.
func (s *Service) PregenerateAll(defs []config.ButtonDefinition) variantcache.PregenerateResult {
	return s.cache.PregenerateAll(defs)
}

// ClearCache drops every rendered variant from memory and disk.
func (s *Service) ClearCache() error {
	return s.cache.ClearCache()
}

// CacheStats reports the disk cache.
func (s *Service) CacheStats() (variantcache.Stats, error) {
	return s.cache.CacheStats()
}

// CacheEntries lists the manifest.
func (s *Service) CacheEntries() []variantcache.ManifestEntry {
	return s.cache.Entries()
}

// NewBar builds a tick-driven bar over defs that shares this service's caches.
func (s *Service) NewBar(defs []config.ButtonDefinition, vars func() map[string]any) *bar.Bar {
	return bar.New(defs, s.cache, s.engine, s.resolver, bar.Options{
		IconSize:   s.settings.IconSize,
		ShowTimers: s.settings.ShowTimers,
		Vars:       vars,
	}, s.log)
}
