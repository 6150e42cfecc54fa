// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-orrery/pkg/entity"
)

// AssetManager builds and caches the generated sprites the scene draws
// with. No image files ship with the binary; every texture is rendered
// into an RGBA buffer at startup.
type AssetManager struct {
	bodySprites map[string]common.Drawable
	ringSprites map[string]common.Drawable
	shipSprite  common.Drawable
	starfield   common.Drawable
}

// NewAssetManager creates an empty asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		bodySprites: make(map[string]common.Drawable),
		ringSprites: make(map[string]common.Drawable),
	}
}

// LoadAssets generates every sprite the given bodies need, plus the
// ship and the starfield background.
func (am *AssetManager) LoadAssets(bodies []entity.BodyConfig) error {
	for _, cfg := range bodies {
		am.bodySprites[cfg.Name] = am.createBodySprite(cfg)
		if cfg.HasRings {
			am.ringSprites[cfg.Name] = am.createRingSprite(cfg)
		}
	}

	am.shipSprite = am.createShipSprite()
	am.starfield = am.createStarfield()
	return nil
}

// createBodySprite renders a filled disc in the body's configured
// color. Emissive bodies get a soft halo around the disc.
func (am *AssetManager) createBodySprite(cfg entity.BodyConfig) common.Drawable {
	radius := spritePixelRadius(cfg.DisplayRadius)
	size := radius * 2
	if cfg.Emissive {
		size = radius * 3
	}
	img := am.createBaseImage(size, size)

	fill := parseHexColor(cfg.Color)
	cx, cy := float64(size)/2, float64(size)/2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dist := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			switch {
			case dist <= float64(radius):
				img.Set(x, y, fill)
			case cfg.Emissive && dist <= float64(size)/2:
				// Halo fades with distance from the disc edge.
				fade := 1 - (dist-float64(radius))/(float64(size)/2-float64(radius))
				img.Set(x, y, color.RGBA{fill.R, fill.G, fill.B, uint8(96 * fade)})
			}
		}
	}

	if cfg.HasClouds {
		am.drawCloudBands(img, size, radius)
	}

	return am.convertToEngoTexture(img)
}

// createRingSprite renders a translucent annulus wider than the body
func (am *AssetManager) createRingSprite(cfg entity.BodyConfig) common.Drawable {
	radius := spritePixelRadius(cfg.DisplayRadius)
	outer := radius * 2
	inner := radius + radius/3
	size := outer * 2
	img := am.createBaseImage(size, size)

	fill := parseHexColor(cfg.Color)
	cx, cy := float64(size)/2, float64(size)/2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dist := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if dist >= float64(inner) && dist <= float64(outer) {
				img.Set(x, y, color.RGBA{fill.R, fill.G, fill.B, 120})
			}
		}
	}

	return am.convertToEngoTexture(img)
}

// drawCloudBands overlays lighter horizontal bands on a body disc
func (am *AssetManager) drawCloudBands(img *image.RGBA, size, radius int) {
	cx, cy := float64(size)/2, float64(size)/2
	for y := 0; y < size; y++ {
		if (y/3)%2 != 0 {
			continue
		}
		for x := 0; x < size; x++ {
			dist := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if dist <= float64(radius)*0.95 {
				img.Set(x, y, color.RGBA{255, 255, 255, 70})
			}
		}
	}
}

// createShipSprite renders the ship as a nose-up arrowhead
func (am *AssetManager) createShipSprite() common.Drawable {
	const size = 24
	img := am.createBaseImage(size, size)

	hull := color.RGBA{220, 225, 235, 255}
	for y := 2; y < size-2; y++ {
		// Arrowhead: half-width grows with distance from the nose.
		halfWidth := (y - 2) * (size/2 - 2) / (size - 4)
		for x := size/2 - halfWidth; x <= size/2+halfWidth; x++ {
			img.Set(x, y, hull)
		}
	}

	return am.convertToEngoTexture(img)
}

// createStarfield renders a sparse dotted background tile
func (am *AssetManager) createStarfield() common.Drawable {
	const size = 256
	img := am.createBaseImage(size, size)

	// Deterministic scatter keeps the tile identical across runs.
	seed := uint32(2166136261)
	for i := 0; i < 180; i++ {
		seed = seed*16777619 + uint32(i)
		x := int(seed % size)
		seed = seed*16777619 + 97
		y := int(seed % size)
		brightness := uint8(120 + seed%120)
		img.Set(x, y, color.RGBA{brightness, brightness, brightness, 255})
	}

	return am.convertToEngoTexture(img)
}

// createBaseImage creates a transparent RGBA image with the specified dimensions.
func (am *AssetManager) createBaseImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)
	return img
}

// convertToEngoTexture converts an RGBA image to an Engo-compatible texture.
func (am *AssetManager) convertToEngoTexture(img *image.RGBA) common.Drawable {
	bounds := img.Bounds()
	nrgbaImg := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			nrgbaImg.Set(x, y, img.At(x, y))
		}
	}

	texture := common.NewImageObject(nrgbaImg)
	return common.NewTextureSingle(texture)
}

// GetBodySprite returns the sprite for a named body
func (am *AssetManager) GetBodySprite(name string) common.Drawable {
	if sprite, exists := am.bodySprites[name]; exists {
		return sprite
	}
	return am.shipSprite
}

// GetRingSprite returns the ring sprite for a named body, or nil when
// the body has no rings.
func (am *AssetManager) GetRingSprite(name string) common.Drawable {
	return am.ringSprites[name]
}

// GetShipSprite returns the ship sprite
func (am *AssetManager) GetShipSprite() common.Drawable {
	return am.shipSprite
}

// GetStarfield returns the background tile
func (am *AssetManager) GetStarfield() common.Drawable {
	return am.starfield
}

// spritePixelRadius maps a world display radius to texture pixels,
// clamped so small moonlets stay visible.
func spritePixelRadius(displayRadius float64) int {
	pixels := int(displayRadius * 2)
	if pixels < 4 {
		pixels = 4
	}
	if pixels > 64 {
		pixels = 64
	}
	return pixels
}

// parseHexColor parses a "#rrggbb" string, falling back to white
func parseHexColor(s string) color.RGBA {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{255, 255, 255, 255}
	}
	hex := func(c byte) uint8 {
		switch {
		case c >= '0' && c <= '9':
			return c - '0'
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10
		case c >= 'A' && c <= 'F':
			return c - 'A' + 10
		}
		return 0
	}
	return color.RGBA{
		R: hex(s[1])<<4 | hex(s[2]),
		G: hex(s[3])<<4 | hex(s[4]),
		B: hex(s[5])<<4 | hex(s[6]),
		A: 255,
	}
}
