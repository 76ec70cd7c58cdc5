// Package variantcache renders icon variants and keeps them in a two-tier
// cache: an in-memory LRU of rendered buffers backed by PNG artifacts on disk
// indexed by a versioned manifest.
package variantcache

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel/metric"

	"github.com/alexisbeaulieu97/barbar/internal/config"
	"github.com/alexisbeaulieu97/barbar/internal/logger"
	"github.com/alexisbeaulieu97/barbar/internal/pixel"
	"github.com/alexisbeaulieu97/barbar/internal/sprite"
	"github.com/alexisbeaulieu97/barbar/internal/variant"
	barerrors "github.com/alexisbeaulieu97/barbar/pkg/errors"
)

const (
	// MaxCacheSize is the default number of rendered icons kept in memory.
	MaxCacheSize = 200

	// CacheVersion invalidates every artifact on disk when bumped.
	CacheVersion = 2

	ManifestFile = "manifest.yaml"

	artifactExt = ".png"
)

// Options configures a Cache.
type Options struct {
	// Dir holds the PNG artifacts and the manifest.
	Dir string
	// Capacity bounds the in-memory LRU; <= 0 selects MaxCacheSize.
	Capacity int
	// Version is compared against the stored manifest; 0 selects CacheVersion.
	Version int
	// Now stamps manifest entries; nil selects time.Now.
	Now func() time.Time
	// Meter records cache metrics; nil selects the global meter provider.
	Meter metric.Meter
}

// Stats summarizes the disk cache.
type Stats struct {
	Artifacts int
	Bytes     int64
	Manifest  int
	Memory    int
}

// PregenerateResult reports a batch render.
type PregenerateResult struct {
	Generated int
	Errors    []string
}

// Cache is the variant cache. It is safe for concurrent use.
type Cache struct {
	sheets  *sprite.Store
	dir     string
	now     func() time.Time
	log     *logger.Logger
	metrics *metrics

	mu       sync.Mutex
	icons    *lru.Cache[string, *pixel.Buffer]
	manifest *Manifest
	clearing bool
}

// New opens the cache in opts.Dir, purging it when the stored manifest is stale.
func New(sheets *sprite.Store, opts Options, log *logger.Logger) (*Cache, error) {
	if sheets == nil {
		return nil, errors.New("variant cache requires a sprite store")
	}
	if opts.Dir == "" {
		return nil, errors.New("variant cache requires a directory")
	}
	if opts.Capacity <= 0 {
		opts.Capacity = MaxCacheSize
	}
	if opts.Version == 0 {
		opts.Version = CacheVersion
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	m, err := newMetrics(opts.Meter)
	if err != nil {
		return nil, fmt.Errorf("create cache metrics: %w", err)
	}

	c := &Cache{
		sheets:  sheets,
		dir:     opts.Dir,
		now:     opts.Now,
		log:     log.Component("variantcache"),
		metrics: m,
	}

	icons, err := lru.NewWithEvict(opts.Capacity, func(string, *pixel.Buffer) {
		if !c.clearing {
			c.metrics.eviction()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create icon cache: %w", err)
	}
	c.icons = icons

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	manifest, stale, err := loadManifest(filepath.Join(opts.Dir, ManifestFile), opts.Version)
	if err != nil {
		return nil, err
	}
	c.manifest = manifest

	if stale {
		removed, err := c.purgeArtifacts()
		if err != nil {
			return nil, err
		}
		if err := c.manifest.Save(); err != nil {
			return nil, err
		}
		c.log.WithFields(map[string]any{
			"version": opts.Version,
			"removed": removed,
		}).Info("purged stale variant cache")
	}

	return c, nil
}

// Dir returns the artifact directory.
func (c *Cache) Dir() string {
	return c.dir
}

// GetIcon returns the icon at iconIndex of sheetID with the variant applied,
// at the native icon size.
func (c *Cache) GetIcon(sheetID string, iconIndex int, variantRaw string) (*pixel.Buffer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := variant.Parse(variantRaw)
	return c.native(sheetID, iconIndex, d, variantRaw)
}

// GetIconSized is GetIcon scaled to width x height. Scaled copies only live
// in memory; the disk holds native renders.
func (c *Cache) GetIconSized(sheetID string, iconIndex int, variantRaw string, width, height int) (*pixel.Buffer, error) {
	if width <= 0 || height <= 0 || (width == sprite.IconWidth && height == sprite.IconHeight) {
		return c.GetIcon(sheetID, iconIndex, variantRaw)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	d := variant.Parse(variantRaw)
	key := sizedKey(variant.CacheKey(sheetID, iconIndex, d), width, height)
	if icon, ok := c.icons.Get(key); ok {
		c.metrics.lookup(resultMemory)
		return icon, nil
	}

	native, err := c.native(sheetID, iconIndex, d, variantRaw)
	if err != nil {
		return nil, err
	}

	scaled := pixel.Scale(native, width, height)
	c.icons.Add(key, scaled)
	return scaled, nil
}

// Cached reports whether the rendered icon is held in memory. It does not
// change recency.
func (c *Cache) Cached(sheetID string, iconIndex int, variantRaw string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.icons.Contains(variant.CacheKey(sheetID, iconIndex, variant.Parse(variantRaw)))
}

// Len returns the number of rendered icons held in memory.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.icons.Len()
}

func (c *Cache) native(sheetID string, iconIndex int, d variant.Descriptor, variantRaw string) (*pixel.Buffer, error) {
	key := variant.CacheKey(sheetID, iconIndex, d)

	if icon, ok := c.icons.Get(key); ok {
		c.metrics.lookup(resultMemory)
		return icon, nil
	}

	path := c.artifactPath(key)
	if icon, ok := c.readArtifact(path); ok {
		c.metrics.lookup(resultDisk)
		c.icons.Add(key, icon)
		return icon, nil
	}

	start := time.Now()
	icon, err := c.render(sheetID, iconIndex, d)
	if err != nil {
		c.metrics.lookup(resultError)
		return nil, err
	}
	c.metrics.rendered(time.Since(start).Seconds())
	c.metrics.lookup(resultRender)

	if err := c.persist(key, path, sheetID, iconIndex, variantRaw, icon); err != nil {
		c.log.WithFields(map[string]any{"key": key}).Error(err, "failed to persist rendered icon")
	}

	c.icons.Add(key, icon)
	return icon, nil
}

// render slices the cell and applies grayscale then border.
func (c *Cache) render(sheetID string, iconIndex int, d variant.Descriptor) (*pixel.Buffer, error) {
	sheet, err := c.sheets.Get(sheetID)
	if err != nil {
		return nil, err
	}

	icon, err := sheet.Slice(iconIndex)
	if err != nil {
		return nil, err
	}

	if d.Grayscale {
		icon = pixel.Grayscale(icon)
	}

	switch d.Border.Kind {
	case variant.BorderSolid:
		icon = pixel.Border(icon, pixel.SolidStroke(d.Border.Start), variant.ClampWidth(d.Width))
	case variant.BorderGradient:
		icon = pixel.Border(icon, pixel.GradientStroke(d.Border.Start, d.Border.End), variant.ClampWidth(d.Width))
	}

	return icon, nil
}

// readArtifact decodes a stored render. Corrupt artifacts are deleted and
// reported as a miss.
func (c *Cache) readArtifact(path string) (*pixel.Buffer, bool) {
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.log.WithFields(map[string]any{"path": path}).Warn("unreadable cache artifact")
		}
		return nil, false
	}

	img, decodeErr := png.Decode(f)
	_ = f.Close()
	if decodeErr != nil {
		c.metrics.corruptArtifact()
		c.log.WithFields(map[string]any{"path": path}).Error(barerrors.NewDecodeError(path, decodeErr), "deleting corrupt cache artifact")
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			c.log.Error(err, "failed to delete corrupt cache artifact")
		}
		return nil, false
	}

	return pixel.FromImage(img), true
}

func (c *Cache) persist(key, path, sheetID string, iconIndex int, variantRaw string, icon *pixel.Buffer) error {
	if err := writePNG(path, icon); err != nil {
		return err
	}

	c.manifest.Put(ManifestEntry{
		CachePath:  filepath.Base(path),
		SheetID:    sheetID,
		IconIndex:  iconIndex,
		VariantRaw: variantRaw,
		CreatedAt:  c.now().Unix(),
	})
	if err := c.manifest.Save(); err != nil {
		return err
	}

	c.log.WithFields(map[string]any{"key": key}).Debug("cached rendered icon")
	return nil
}

// PregenerateAll renders every non-empty variant of every button. Failures
// are collected as "button/state: error" and never stop the batch.
func (c *Cache) PregenerateAll(defs []config.ButtonDefinition) PregenerateResult {
	var result PregenerateResult

	for _, def := range defs {
		for _, state := range config.StatePriority {
			spec, ok := def.State(state)
			if !ok || strings.TrimSpace(spec.Variant) == "" {
				continue
			}

			if def.Image == "" {
				result.Errors = append(result.Errors, fmt.Sprintf("%s/%s: no sprite sheet configured", def.Key, state))
				continue
			}

			if _, err := c.GetIcon(def.Image, spec.IconIndex(), spec.Variant); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s/%s: %v", def.Key, state, err))
				continue
			}
			result.Generated++
		}
	}

	c.log.WithFields(map[string]any{
		"generated": result.Generated,
		"errors":    len(result.Errors),
	}).Info("pregenerated variants")

	return result
}

// ClearCache deletes every artifact, resets the manifest and drops the
// rendered icons held in memory. Decoded sheets are kept.
func (c *Cache) ClearCache() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clearing = true
	c.icons.Purge()
	c.clearing = false

	removed, err := c.purgeArtifacts()
	if err != nil {
		return err
	}
	if err := c.manifest.Save(); err != nil {
		return err
	}

	c.log.WithFields(map[string]any{"removed": removed}).Info("cleared variant cache")
	return nil
}

// CacheStats reports the artifacts currently on disk.
func (c *Cache) CacheStats() (Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{Manifest: c.manifest.Len(), Memory: c.icons.Len()}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return stats, fmt.Errorf("read cache directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != artifactExt {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		stats.Artifacts++
		stats.Bytes += info.Size()
	}

	return stats, nil
}

// Entries returns the manifest entries ordered by artifact path.
func (c *Cache) Entries() []ManifestEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.manifest.Entries()
}

// purgeArtifacts removes every artifact file and empties the manifest
// without saving it.
func (c *Cache) purgeArtifacts() (int, error) {
	matches, err := filepath.Glob(filepath.Join(c.dir, "*"+artifactExt))
	if err != nil {
		return 0, fmt.Errorf("list cache artifacts: %w", err)
	}

	removed := 0
	for _, path := range matches {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("remove cache artifact: %w", err)
		}
		removed++
	}

	c.manifest.Reset()
	return removed, nil
}

func (c *Cache) artifactPath(key string) string {
	return filepath.Join(c.dir, key+artifactExt)
}

func sizedKey(key string, width, height int) string {
	return fmt.Sprintf("%s@%dx%d", key, width, height)
}

func writePNG(path string, icon *pixel.Buffer) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	if err := png.Encode(f, icon.Image()); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to encode icon: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}
