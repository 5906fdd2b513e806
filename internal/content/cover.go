package content

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

// Open Graph preview size the covers are designed for.
const (
	RecommendedCoverWidth  = 1200
	RecommendedCoverHeight = 630
)

var ErrCoverNotLocal = errors.New("cover image is not a local asset")

// CoverInspector reads cover image dimensions from the static asset tree.
type CoverInspector struct {
	assetDir string
}

func NewCoverInspector(assetDir string) *CoverInspector {
	return &CoverInspector{assetDir: assetDir}
}

// Dimensions decodes the header of the image at the site-relative path.
func (i *CoverInspector) Dimensions(coverImage string) (int, int, error) {
	trimmed := strings.TrimSpace(coverImage)
	if i.assetDir == "" || !strings.HasPrefix(trimmed, "/") || strings.HasPrefix(trimmed, "//") {
		return 0, 0, ErrCoverNotLocal
	}
	clean := filepath.Clean(filepath.FromSlash(trimmed))
	file, err := os.Open(filepath.Join(i.assetDir, clean))
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("decode cover %s: %w", trimmed, err)
	}
	return cfg.Width, cfg.Height, nil
}

// Warnings reports cover problems worth surfacing next to validation
// warnings. Remote covers are not checked.
func (i *CoverInspector) Warnings(coverImage string) []string {
	if strings.TrimSpace(coverImage) == "" {
		return []string{"cover image is missing"}
	}
	width, height, err := i.Dimensions(coverImage)
	if errors.Is(err, ErrCoverNotLocal) {
		return nil
	}
	if err != nil {
		return []string{fmt.Sprintf("cover image cannot be read: %v", err)}
	}
	if width < RecommendedCoverWidth || height < RecommendedCoverHeight {
		return []string{fmt.Sprintf("cover image is %dx%d, smaller than %dx%d",
			width, height, RecommendedCoverWidth, RecommendedCoverHeight)}
	}
	return nil
}
