package view

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
)

// ImageLoader loads scene backgrounds by asset path
type ImageLoader interface {
	LoadImage(ctx context.Context, path string) (image.Image, error)
}

// FileImageLoader decodes PNG and JPEG files below Root
type FileImageLoader struct {
	Root string
}

// LoadImage reads and decodes the image at path relative to Root
func (l FileImageLoader) LoadImage(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(l.Root, filepath.FromSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}
