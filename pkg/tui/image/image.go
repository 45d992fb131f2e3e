// ABOUTME: Image decoding for previews: png, jpeg and gif from the stdlib, webp and bmp from x/image
// ABOUTME: Info reports format and pixel size without decoding the whole image

package image

import (
	"fmt"
	goimage "image"
	"io"
	"path/filepath"
	"strings"

	// Register decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Extensions lists the file extensions previewed as images.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

// IsImage reports whether name has an image extension.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Info describes an image without its pixels.
type Info struct {
	Format string
	Width  int
	Height int
}

func (i Info) String() string {
	return fmt.Sprintf("%s %dx%d", strings.ToUpper(i.Format), i.Width, i.Height)
}

// ReadInfo decodes only the image header.
func ReadInfo(r io.Reader) (Info, error) {
	cfg, format, err := goimage.DecodeConfig(r)
	if err != nil {
		return Info{}, fmt.Errorf("reading image header: %w", err)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Decode decodes a full image.
func Decode(r io.Reader) (goimage.Image, Info, error) {
	img, format, err := goimage.Decode(r)
	if err != nil {
		return nil, Info{}, fmt.Errorf("decoding image: %w", err)
	}
	b := img.Bounds()
	return img, Info{Format: format, Width: b.Dx(), Height: b.Dy()}, nil
}
