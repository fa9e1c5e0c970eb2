package canvaspdf

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/canvas"
)

// iconMaxPx caps decoded icon rasters before embedding. Icons print at a
// few millimeters, so anything larger only bloats the PDF.
const iconMaxPx = 512

// iconCache loads note, allergen and feature icons from http(s) URLs or
// from paths relative to the base directory, downscales them and caches the
// decoded image per source.
type iconCache struct {
	client  *http.Client
	baseDir string

	mu    sync.Mutex
	cache map[string]image.Image
}

func newIconCache(baseDir string, client *http.Client) *iconCache {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &iconCache{
		client:  client,
		baseDir: baseDir,
		cache:   map[string]image.Image{},
	}
}

func (c *iconCache) load(src string) (image.Image, error) {
	if src == "" {
		return nil, fmt.Errorf("empty image source")
	}
	c.mu.Lock()
	if img, ok := c.cache[src]; ok {
		c.mu.Unlock()
		return img, nil
	}
	c.mu.Unlock()

	img, err := c.fetch(src)
	if err != nil {
		return nil, err
	}
	img = imaging.Fit(img, iconMaxPx, iconMaxPx, imaging.Lanczos)

	c.mu.Lock()
	c.cache[src] = img
	c.mu.Unlock()
	return img, nil
}

func (c *iconCache) fetch(src string) (image.Image, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		resp, err := c.client.Get(src)
		if err != nil {
			return nil, fmt.Errorf("fetch image %s: %w", src, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch image %s: status %d", src, resp.StatusCode)
		}
		img, _, err := image.Decode(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("decode image %s: %w", src, err)
		}
		return img, nil
	}

	path := src
	if !filepath.IsAbs(path) && c.baseDir != "" {
		path = filepath.Join(c.baseDir, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", src, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", src, err)
	}
	return img, nil
}

// drawIcon fits an icon into a sizeMm square at (x, y). A missing or broken
// icon is logged and skipped; the page layout does not depend on it.
func (r *Renderer) drawIcon(ctx *canvas.Context, src string, x, y, sizeMm float64) {
	img, err := r.icons.load(src)
	if err != nil {
		r.log.Warn("icon unavailable, skipping", "src", src, "err", err)
		return
	}
	b := img.Bounds()
	side := b.Dx()
	if b.Dy() > side {
		side = b.Dy()
	}
	if side == 0 || sizeMm <= 0 {
		return
	}
	ctx.DrawImage(x, y, img, canvas.DPMM(float64(side)/sizeMm))
}

// drawImage draws an image scaled to widthMm and reports the resulting
// height in mm. Failures are logged and reported as not drawn.
func (r *Renderer) drawImage(ctx *canvas.Context, src string, x, y, widthMm float64) (float64, bool) {
	img, err := r.icons.load(src)
	if err != nil {
		r.log.Warn("image unavailable, skipping", "src", src, "err", err)
		return 0, false
	}
	b := img.Bounds()
	if b.Dx() == 0 || widthMm <= 0 {
		return 0, false
	}
	dpmm := float64(b.Dx()) / widthMm
	ctx.DrawImage(x, y, img, canvas.DPMM(dpmm))
	return float64(b.Dy()) / dpmm, true
}
