package spritefont

import (
	"path/filepath"
	"testing"
)

func TestTextureCacheAdd(t *testing.T) {
	cache := NewTextureCache()

	img := NewImage(4, 4, 4)
	tex := cache.Add("page", img)
	if tex.Name != "page" || tex.Image != img {
		t.Fatalf("Add returned %+v", tex)
	}
	got, ok := cache.Get("page")
	if !ok || got != tex {
		t.Error("Get did not return the added texture")
	}

	// Adding under an existing name replaces the texture.
	img2 := NewImage(8, 8, 4)
	tex2 := cache.Add("page", img2)
	if got, _ := cache.Get("page"); got != tex2 {
		t.Error("Add did not replace the existing texture")
	}
	if cache.Len() != 1 {
		t.Errorf("Len = %d, want 1", cache.Len())
	}
}

func TestTextureCacheLoad(t *testing.T) {
	img := NewImage(5, 3, 4)
	for i := range img.Data() {
		img.Data()[i] = byte(i)
	}
	path := filepath.Join(t.TempDir(), "page.png")
	if err := img.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	cache := NewTextureCache()
	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first.Image.Width() != 5 || first.Image.Height() != 3 {
		t.Errorf("loaded %dx%d, want 5x3", first.Image.Width(), first.Image.Height())
	}

	second, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if second != first {
		t.Error("repeated Load returned a new texture")
	}
	if cache.Len() != 1 {
		t.Errorf("Len = %d, want 1", cache.Len())
	}
}

func TestTextureCacheLoadMissing(t *testing.T) {
	cache := NewTextureCache()
	if _, err := cache.Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("Load succeeded with a missing file")
	}
	if cache.Len() != 0 {
		t.Error("failed load left an entry in the cache")
	}
}

func TestTextureCacheGetMissing(t *testing.T) {
	if _, ok := NewTextureCache().Get("absent"); ok {
		t.Error("Get found a texture that was never added")
	}
}
