package shader

import "fmt"

// Assets is the ambient asset registry snapshots resolve weak references
// against. Images and texts are assumed to pre-exist in the target
// environment; decode looks them up by name and leaves properties untouched
// when nothing matches.
type Assets struct {
	images []*Image
	texts  []*Text
}

// NewAssets returns an empty registry.
func NewAssets() *Assets {
	return &Assets{}
}

// AddImage registers an image, uniquifying its name on collision.
// The registered image is returned.
func (a *Assets) AddImage(img *Image) *Image {
	img.Name = uniqueAssetName(img.Name, "Image", func(name string) bool {
		return a.ImageByName(name) != nil
	})
	a.images = append(a.images, img)
	return img
}

// ImageByName finds an image by exact name, or nil.
func (a *Assets) ImageByName(name string) *Image {
	for _, img := range a.images {
		if img.Name == name {
			return img
		}
	}
	return nil
}

// Images returns all registered images.
func (a *Assets) Images() []*Image { return a.images }

// AddText registers a text datablock, uniquifying its name on collision.
func (a *Assets) AddText(t *Text) *Text {
	t.Name = uniqueAssetName(t.Name, "Text", func(name string) bool {
		return a.TextByName(name) != nil
	})
	a.texts = append(a.texts, t)
	return t
}

// TextByName finds a text by exact name, or nil.
func (a *Assets) TextByName(name string) *Text {
	for _, t := range a.texts {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// TextByFilepath finds a text by its source path, or nil.
// Texts with empty filepaths never match.
func (a *Assets) TextByFilepath(path string) *Text {
	if path == "" {
		return nil
	}
	for _, t := range a.texts {
		if t.Filepath == path {
			return t
		}
	}
	return nil
}

// Texts returns all registered texts.
func (a *Assets) Texts() []*Text { return a.texts }

func uniqueAssetName(base, fallback string, taken func(string) bool) string {
	if base == "" {
		base = fallback
	}
	if !taken(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s.%03d", base, i)
		if !taken(candidate) {
			return candidate
		}
	}
}
