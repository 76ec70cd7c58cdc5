// Package sprite decodes sprite sheets and slices icon cells out of them.
package sprite

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/alexisbeaulieu97/barbar/internal/logger"
	"github.com/alexisbeaulieu97/barbar/internal/pixel"
	barerrors "github.com/alexisbeaulieu97/barbar/pkg/errors"
)

const (
	IconWidth  = 64
	IconHeight = 64

	// DefaultCacheSize is the number of decoded sheets kept in memory.
	DefaultCacheSize = 10

	sheetExt = ".png"
)

// Sheet is a decoded sprite sheet and its icon grid geometry.
type Sheet struct {
	ID          string
	Path        string
	Pixels      *pixel.Buffer
	IconsPerRow int
	MaxRows     int
}

// NewSheet wraps a decoded buffer and derives its grid geometry.
func NewSheet(id string, buf *pixel.Buffer) *Sheet {
	return &Sheet{
		ID:          id,
		Pixels:      buf,
		IconsPerRow: buf.Width / IconWidth,
		MaxRows:     buf.Height / IconHeight,
	}
}

// Slice copies the 1-based iconIndex cell out of the sheet as a tight buffer.
// Bounds are checked before any pixel is read.
func (s *Sheet) Slice(iconIndex int) (*pixel.Buffer, error) {
	if s.IconsPerRow <= 0 || s.MaxRows <= 0 {
		return nil, barerrors.NewOutOfBoundsError(s.ID, iconIndex, s.IconsPerRow, s.MaxRows)
	}

	idx := iconIndex - 1
	col := idx % s.IconsPerRow
	row := idx / s.IconsPerRow
	if idx < 0 || row >= s.MaxRows || col >= s.IconsPerRow {
		return nil, barerrors.NewOutOfBoundsError(s.ID, iconIndex, s.IconsPerRow, s.MaxRows)
	}

	return s.Pixels.Crop(col*IconWidth, row*IconHeight, IconWidth, IconHeight), nil
}

// Store loads sheets from an asset directory and keeps the most recently used
// ones decoded in memory.
type Store struct {
	dir    string
	sheets *lru.Cache[string, *Sheet]
	log    *logger.Logger
}

// NewStore creates a Store reading from dir. A capacity <= 0 selects DefaultCacheSize.
func NewStore(dir string, capacity int, log *logger.Logger) (*Store, error) {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}

	s := &Store{dir: dir, log: log.Component("sprite")}
	cache, err := lru.NewWithEvict(capacity, func(id string, _ *Sheet) {
		s.log.WithFields(map[string]any{"sheet": id}).Debug("evicted sprite sheet")
	})
	if err != nil {
		return nil, fmt.Errorf("create sheet cache: %w", err)
	}
	s.sheets = cache

	return s, nil
}

// Dir returns the asset directory sheets are read from.
func (s *Store) Dir() string {
	return s.dir
}

// Path resolves a sheet identifier to its file; ".png" is implied when the
// identifier has no extension.
func (s *Store) Path(sheetID string) string {
	name := sheetID
	if filepath.Ext(name) == "" {
		name += sheetExt
	}
	return filepath.Join(s.dir, name)
}

// Get returns the decoded sheet, loading it on a cache miss.
func (s *Store) Get(sheetID string) (*Sheet, error) {
	if sheet, ok := s.sheets.Get(sheetID); ok {
		return sheet, nil
	}

	path := s.Path(sheetID)
	buf, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	sheet := NewSheet(sheetID, buf)
	sheet.Path = path
	s.sheets.Add(sheetID, sheet)

	s.log.WithFields(map[string]any{
		"sheet":  sheetID,
		"width":  buf.Width,
		"height": buf.Height,
	}).Debug("loaded sprite sheet")

	return sheet, nil
}

// Len returns the number of decoded sheets held in memory.
func (s *Store) Len() int {
	return s.sheets.Len()
}

// Purge drops every decoded sheet.
func (s *Store) Purge() {
	s.sheets.Purge()
}

func decodeFile(path string) (*pixel.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, barerrors.NewNotFoundError("sheet", path, err)
		}
		return nil, fmt.Errorf("open sprite sheet: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, barerrors.NewDecodeError(path, err)
	}

	return pixel.FromImage(img), nil
}
