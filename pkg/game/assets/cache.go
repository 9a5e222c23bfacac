// Package assets loads item textures for the reward cards.
package assets

import (
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"sync"

	"github.com/zyedidia/generic/mapset"
)

// Cache holds decoded textures keyed by asset path. It is safe for
// concurrent use; the preloader fills it while the view reads from it.
type Cache struct {
	fsys fs.FS

	mu     sync.RWMutex
	images map[string]image.Image
	loaded mapset.Set[string]
	failed mapset.Set[string]
}

// NewCache creates an empty cache reading from fsys
func NewCache(fsys fs.FS) *Cache {
	return &Cache{
		fsys:   fsys,
		images: make(map[string]image.Image),
		loaded: mapset.New[string](),
		failed: mapset.New[string](),
	}
}

// Icon returns the decoded texture, or nil if it is not loaded
func (c *Cache) Icon(path string) image.Image {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.images[path]
}

// Loaded reports whether path has been decoded
func (c *Cache) Loaded(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded.Has(path)
}

// Failed reports whether decoding path has failed before
func (c *Cache) Failed(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.failed.Has(path)
}

// Len returns the number of decoded textures
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded.Size()
}

// Load decodes path into the cache. Paths that are already loaded or have
// failed before are not read again.
func (c *Cache) Load(path string) error {
	c.mu.RLock()
	done := c.loaded.Has(path) || c.failed.Has(path)
	c.mu.RUnlock()
	if done {
		return nil
	}

	img, err := c.decode(path)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.failed.Put(path)
		return err
	}
	c.images[path] = img
	c.loaded.Put(path)
	return nil
}

func (c *Cache) decode(path string) (image.Image, error) {
	f, err := c.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}
	return img, nil
}
