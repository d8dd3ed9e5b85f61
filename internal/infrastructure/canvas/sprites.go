package canvas

import (
	"errors"
	"fmt"
	_ "image/png"
	"io/fs"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Sprites holds the images an engine may reference by id
type Sprites struct {
	images map[string]*ebiten.Image
}

// NewSprites creates an empty sprite set
func NewSprites() *Sprites {
	return &Sprites{images: make(map[string]*ebiten.Image)}
}

// LoadSprites loads every id -> path entry from fsys. A sprite that fails to
// load is logged with its path and left unavailable; the returned error joins
// all failures and the returned set holds everything that did load.
func LoadSprites(fsys fs.FS, paths map[string]string, logger *log.Logger) (*Sprites, error) {
	s := NewSprites()

	ids := make([]string, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var errs []error
	for _, id := range ids {
		path := paths[id]
		img, _, err := ebitenutil.NewImageFromFileSystem(fsys, path)
		if err != nil {
			if logger != nil {
				logger.Error("failed to load sprite", "id", id, "path", path, "err", err)
			}
			errs = append(errs, fmt.Errorf("sprite %s (%s): %w", id, path, err))
			continue
		}
		s.images[id] = img
	}
	return s, errors.Join(errs...)
}

// Add registers an already decoded image
func (s *Sprites) Add(id string, img *ebiten.Image) {
	s.images[id] = img
}

// Get returns the sprite or nil when it is unavailable
func (s *Sprites) Get(id string) *ebiten.Image {
	if s == nil {
		return nil
	}
	return s.images[id]
}

// Len returns the number of loaded sprites
func (s *Sprites) Len() int {
	if s == nil {
		return 0
	}
	return len(s.images)
}
