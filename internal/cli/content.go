package cli

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/webp"

	"github.com/phanxgames/sticker"
)

// loadImage decodes a PNG, JPEG, WebP, or TGA file.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// loadContent decodes the sticker image at path and describes it as
// sticker content keyed by its base file name.
func loadContent(path string) (sticker.Content, image.Image, error) {
	img, err := loadImage(path)
	if err != nil {
		return sticker.Content{}, nil, err
	}
	b := img.Bounds()
	c := sticker.Content{
		Key:    contentKey(path),
		Path:   path,
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
	}
	return c, img, nil
}

func contentKey(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
