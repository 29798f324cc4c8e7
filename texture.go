package spritefont

import "sync"

// Texture is one atlas page. Pages are owned jointly by the atlas
// that produced them and the registry they were added to; the
// registry is the canonical owner.
type Texture struct {
	// Name is the registry key: a synthetic name for generated pages,
	// the image file path for loaded ones.
	Name string

	// Image is the page's pixel data.
	Image *Image
}

// TextureRegistry owns the page textures an atlas produces or loads.
// Implementations must serialize their own access; the rest of the
// package performs no locking around registry calls.
type TextureRegistry interface {
	// Add registers a freshly generated page under the given name
	// and returns the owning texture.
	Add(name string, img *Image) *Texture

	// Load returns the texture backing the image file at path,
	// reading the file on first use.
	Load(path string) (*Texture, error)
}

// TextureCache is an in-memory TextureRegistry with PNG loading and
// per-key de-duplication. Safe for concurrent use.
type TextureCache struct {
	mu       sync.Mutex
	textures map[string]*Texture
}

// NewTextureCache creates an empty texture cache.
func NewTextureCache() *TextureCache {
	return &TextureCache{textures: make(map[string]*Texture)}
}

// Add registers a page under the given name, replacing any previous
// texture with that name.
func (c *TextureCache) Add(name string, img *Image) *Texture {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &Texture{Name: name, Image: img}
	c.textures[name] = t
	return t
}

// Load returns the texture for the PNG file at path, decoding it on
// first use and serving repeated loads from the cache.
func (c *TextureCache) Load(path string) (*Texture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.textures[path]; ok {
		return t, nil
	}
	img, err := LoadPNG(path)
	if err != nil {
		return nil, err
	}
	t := &Texture{Name: path, Image: img}
	c.textures[path] = t
	return t, nil
}

// Get returns the texture registered under name, if any.
func (c *TextureCache) Get(name string) (*Texture, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.textures[name]
	return t, ok
}

// Len returns the number of cached textures.
func (c *TextureCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.textures)
}
