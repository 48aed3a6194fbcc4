package imageio

import (
	"image"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"tinylib/internal/logging"
)

// formatRank orders extensions when several files share a stem. Formats that
// can carry alpha win over JPEG.
var formatRank = map[string]int{
	".png":  4,
	".tga":  3,
	".webp": 2,
	".jpg":  1,
	".jpeg": 1,
}

// Index maps lowercase file stems to image paths under a directory tree.
type Index struct {
	entries map[string]string
}

// BuildIndex walks dir for image files Load can decode. Unreadable
// subtrees are skipped.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		rank, ok := formatRank[ext]
		if !ok {
			return nil
		}
		stem := stemOf(path)
		if prev, exists := idx.entries[stem]; !exists || rank > formatRank[strings.ToLower(filepath.Ext(prev))] {
			idx.entries[stem] = path
		}
		return nil
	})
	return idx
}

func stemOf(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// ResolvePath returns the indexed path for a name, ignoring its directory,
// extension and case.
func (idx *Index) ResolvePath(name string) (string, bool) {
	p, ok := idx.entries[stemOf(name)]
	return p, ok
}

func (idx *Index) Len() int { return len(idx.entries) }

// Cache is a concurrency-safe store of decoded images keyed by path. Failed
// loads are remembered as nil so a broken file is decoded only once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*image.NRGBA
	index *Index
}

// NewCache returns an empty cache. index may be nil if Resolve is unused.
func NewCache(index *Index) *Cache {
	return &Cache{items: make(map[string]*image.NRGBA), index: index}
}

// Get returns the decoded image at path, loading it on first use.
func (c *Cache) Get(path string) *image.NRGBA {
	c.mu.RLock()
	if img, ok := c.items[path]; ok {
		c.mu.RUnlock()
		return img
	}
	c.mu.RUnlock()

	img, err := Load(path)
	if err != nil {
		logging.Logger().Warn("image skipped", "path", path, "err", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.items[path]; ok {
		return prev
	}
	c.items[path] = img
	return img
}

// Resolve looks name up in the index and returns its image, or nil.
func (c *Cache) Resolve(name string) *image.NRGBA {
	if c.index == nil {
		return nil
	}
	path, ok := c.index.ResolvePath(name)
	if !ok {
		return nil
	}
	return c.Get(path)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
