package invoice

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Well-known asset names the composer asks for. The brand mark and the
// authorization seal are raster images; the display font is an optional
// TTF used instead of the built-in Helvetica when present.
const (
	AssetLogo = "logo"
	AssetSeal = "seal"
	AssetFont = "font"
)

// AssetProvider supplies raw bytes for a named render asset. Providers are
// read-only and safe for concurrent renders. A provider error is never
// fatal to a render: the composer logs it and leaves the slot blank.
type AssetProvider interface {
	Asset(name string) ([]byte, error)
}

// dirProvider resolves assets from files in a single directory.
type dirProvider struct {
	dir   string
	files map[string][]string
}

// NewDirProvider returns a provider backed by a directory laid out the way
// the deployment ships brand assets (logo.png, seal.png, font.ttf). For
// each name the first file that exists wins.
func NewDirProvider(dir string) AssetProvider {
	return &dirProvider{
		dir: dir,
		files: map[string][]string{
			AssetLogo: {"logo.png", "logo.jpg"},
			AssetSeal: {"seal.png", "seal.jpg"},
			AssetFont: {"font.ttf"},
		},
	}
}

func (p *dirProvider) Asset(name string) ([]byte, error) {
	candidates, ok := p.files[name]
	if !ok {
		return nil, fmt.Errorf("assets: unknown asset %q", name)
	}
	var lastErr error
	for _, f := range candidates {
		data, err := os.ReadFile(filepath.Join(p.dir, f))
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("assets: %q unavailable: %w", name, lastErr)
}

// MapProvider serves assets from memory. Tests use it to render without
// touching the filesystem; a missing key is an error like any other
// provider failure.
type MapProvider map[string][]byte

func (p MapProvider) Asset(name string) ([]byte, error) {
	data, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("assets: %q not present", name)
	}
	return data, nil
}

// imageType sniffs the raster format fpdf should register an asset as.
// Empty string means the bytes are not a supported image.
func imageType(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "PNG"
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return "JPG"
	case bytes.HasPrefix(data, []byte("GIF8")):
		return "GIF"
	default:
		return ""
	}
}
