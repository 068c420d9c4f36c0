package game

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// Snapshotter writes labeled captures of the rendered canvas to Dir as PNG
// or WebP files with timestamped names.
type Snapshotter struct {
	Dir    string
	Format string // "png" or "webp"
	logger *log.Logger
}

// NewSnapshotter returns a snapshotter writing to dir. An empty format means
// PNG.
func NewSnapshotter(dir, format string, logger *log.Logger) (*Snapshotter, error) {
	format = strings.ToLower(format)
	switch format {
	case "":
		format = "png"
	case "png", "webp":
	default:
		return nil, fmt.Errorf("snapshot format %q: want png or webp", format)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Snapshotter{Dir: dir, Format: format, logger: logger}, nil
}

// Flush captures img once and writes it under every label.
func (s *Snapshotter) Flush(img *ebiten.Image, labels []string) {
	if len(labels) == 0 {
		return
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		s.logger.Error("snapshot", "dir", s.Dir, "err", err)
		return
	}

	pixels := readNRGBA(img)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range labels {
		path := filepath.Join(s.Dir, fmt.Sprintf("%s_%s.%s", stamp, sanitizeLabel(label), s.Format))
		if err := s.write(path, pixels); err != nil {
			s.logger.Error("snapshot", "err", err)
			continue
		}
		s.logger.Info("snapshot", "path", path)
	}
}

func (s *Snapshotter) write(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encodeImage(f, img, s.Format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func encodeImage(w io.Writer, img image.Image, format string) error {
	if format == "webp" {
		return nativewebp.Encode(w, img, nil)
	}
	return png.Encode(w, img)
}

// readNRGBA copies img's pixels, converting premultiplied RGBA to
// straight-alpha NRGBA.
func readNRGBA(img *ebiten.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]byte, 4*w*h)
	img.ReadPixels(pixels)
	return unpremultiply(pixels, w, h)
}

func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		out.Pix[i] = r
		out.Pix[i+1] = g
		out.Pix[i+2] = b
		out.Pix[i+3] = a
	}
	return out
}

// sanitizeLabel makes label safe for a file name. Spaces become dashes,
// anything else outside [A-Za-z0-9._-] becomes an underscore, and an empty
// label becomes "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '.', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return '_'
		}
	}, label)
}
