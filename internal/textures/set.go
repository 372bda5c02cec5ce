package textures

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"chosenoffset.com/lookingback/internal/render"
)

// Set holds the uploaded textures for the running game.
type Set struct {
	images map[string]render.Image
}

// NewSet returns an empty texture set.
func NewSet() *Set {
	return &Set{images: make(map[string]render.Image)}
}

// Load uploads every generated image through r, replacing any texture
// already stored under the same key.
func (s *Set) Load(r render.Renderer, imgs map[string]*image.RGBA) error {
	if r == nil {
		return errors.New("textures: nil renderer")
	}
	keys := make([]string, 0, len(imgs))
	for k := range imgs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		src := imgs[k]
		if src == nil {
			return fmt.Errorf("upload texture %q: no image", k)
		}
		s.images[k] = r.NewImageFromImage(src)
	}
	return nil
}

// Get returns the texture stored under key, or nil.
func (s *Set) Get(key string) render.Image {
	if s == nil {
		return nil
	}
	return s.images[key]
}

// Loaded reports whether key has been uploaded.
func (s *Set) Loaded(key string) bool {
	return s.Get(key) != nil
}

// Len returns the number of uploaded textures.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.images)
}

// ContactSheet packs the generated images, in Keys order, into a single
// atlas for inspection.
func ContactSheet(imgs map[string]*image.RGBA, columns int) *image.RGBA {
	list := make([]*image.RGBA, 0, len(imgs))
	for _, k := range Keys {
		if img, ok := imgs[k]; ok {
			list = append(list, img)
		}
	}
	return CreateAtlas(list, columns)
}
