// Package fonts resolves font specs to canvas font faces backed by TTF
// files in a configurable directory. Families are loaded lazily and cached
// for the life of the process; the registry is the single measurement
// resource shared by the pagination planner and the PDF renderer, so both
// see identical metrics.
package fonts

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/menuforge/menuforge/layout"
)

// Registry caches loaded font families by family name and style.
type Registry struct {
	dir string

	mu       sync.Mutex
	families map[string]*canvas.FontFamily
}

// NewRegistry creates a registry rooted at dir. Families without a usable
// file under dir, including every family when dir is empty, are served from
// the bundled Go fonts.
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir, families: map[string]*canvas.FontFamily{}}
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry, lazily initialized from the
// MENUFORGE_FONTS_DIR environment variable. Configure-then-read only; the
// registry is never mutated after creation.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry(os.Getenv("MENUFORGE_FONTS_DIR"))
	})
	return defaultReg
}

// Face implements layout.FaceSource.
func (r *Registry) Face(spec layout.FontSpec) (layout.Measurer, error) {
	face, err := r.CanvasFace(spec, canvas.Black)
	if err != nil {
		return nil, err
	}
	return faceMeasurer{face: face}, nil
}

// CanvasFace resolves a spec to a drawable canvas face in the given color.
// The size passed to the face is in points; widths read back from the face
// are millimeters (canvas's canonical unit).
func (r *Registry) CanvasFace(spec layout.FontSpec, col color.Color) (*canvas.FontFace, error) {
	family, err := r.family(spec)
	if err != nil {
		return nil, err
	}
	return family.Face(spec.SizePt, col, fontStyle(spec), canvas.FontNormal), nil
}

func (r *Registry) family(spec layout.FontSpec) (*canvas.FontFamily, error) {
	key := familyKey(spec)
	r.mu.Lock()
	defer r.mu.Unlock()

	if fam, ok := r.families[key]; ok {
		return fam, nil
	}

	fam := canvas.NewFontFamily(spec.Family)
	data, err := r.findFontFile(spec)
	if err == nil {
		err = fam.LoadFont(data, 0, fontStyle(spec))
	}
	if err != nil {
		// Missing or unreadable files fall back to the bundled Go
		// fonts. The fallback is cached under the same key, so the
		// planner and the renderer keep seeing identical metrics.
		fam = canvas.NewFontFamily(spec.Family)
		if fbErr := fam.LoadFont(fallbackFont(spec), 0, fontStyle(spec)); fbErr != nil {
			return nil, fmt.Errorf("fonts: load %s: %w", key, err)
		}
	}
	r.families[key] = fam
	return fam, nil
}

func fallbackFont(spec layout.FontSpec) []byte {
	switch {
	case spec.Bold && spec.Italic:
		return gobolditalic.TTF
	case spec.Bold:
		return gobold.TTF
	case spec.Italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}

// findFontFile looks for <Family>-<Style>.ttf, then <Family>.ttf, then any
// file whose name starts with the family, case-insensitively.
func (r *Registry) findFontFile(spec layout.FontSpec) ([]byte, error) {
	if r.dir == "" {
		return nil, fmt.Errorf("fonts: no font directory configured")
	}
	candidates := []string{
		spec.Family + "-" + styleName(spec) + ".ttf",
		spec.Family + ".ttf",
	}
	for _, name := range candidates {
		if data, err := os.ReadFile(filepath.Join(r.dir, name)); err == nil {
			return data, nil
		}
	}
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("fonts: read dir %s: %w", r.dir, err)
	}
	prefix := strings.ToLower(spec.Family)
	for _, e := range entries {
		name := strings.ToLower(e.Name())
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".ttf") {
			return os.ReadFile(filepath.Join(r.dir, e.Name()))
		}
	}
	return nil, fmt.Errorf("fonts: no file for family %q in %s", spec.Family, r.dir)
}

func styleName(spec layout.FontSpec) string {
	switch {
	case spec.Bold && spec.Italic:
		return "BoldItalic"
	case spec.Bold:
		return "Bold"
	case spec.Italic:
		return "Italic"
	default:
		return "Regular"
	}
}

func fontStyle(spec layout.FontSpec) canvas.FontStyle {
	style := canvas.FontRegular
	if spec.Bold {
		style = canvas.FontBold
	}
	if spec.Italic {
		style |= canvas.FontItalic
	}
	return style
}

func familyKey(spec layout.FontSpec) string {
	return fmt.Sprintf("%s|%s", spec.Family, styleName(spec))
}

// faceMeasurer adapts a canvas face to the px-based measurement contract.
type faceMeasurer struct {
	face *canvas.FontFace
}

func (m faceMeasurer) TextWidth(s string) float64 {
	return m.face.TextWidth(s) * layout.PxPerMm
}
