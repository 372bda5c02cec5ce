// Package textures draws the game's pixel-art sprites procedurally. Nothing
// is loaded from disk: every texture is painted onto an image.RGBA at boot
// and uploaded through the renderer.
package textures

import (
	"image"
	"image/color"
	"math/rand"
)

// Texture keys.
const (
	Tile          = "tile"
	Luthfi        = "luthfi"
	Raina         = "raina"
	Heart         = "heart"
	Star          = "star"
	Motorcycle    = "motorcycle"
	SkyNight      = "sky_night"
	BuildingsFar  = "buildings_far"
	BuildingsNear = "buildings_near"
	RoadSurface   = "road_surface"
	Streetlight   = "streetlight"
	Glow          = "glow"
)

// Keys lists every generated texture in generation order.
var Keys = []string{
	Tile, Luthfi, Raina, Heart, Star, Motorcycle,
	SkyNight, BuildingsFar, BuildingsNear, RoadSurface, Streetlight, Glow,
}

// Outfit is the palette for one of the two characters.
type Outfit struct {
	Hair, Skin, Shirt, Pants color.RGBA
}

var (
	LuthfiOutfit = Outfit{Hair: hex(0x1a1a2e), Skin: hex(0xd4a574), Shirt: hex(0x16213e), Pants: hex(0x0f3460)}
	RainaOutfit  = Outfit{Hair: hex(0x3d2914), Skin: hex(0xf5d5c8), Shirt: hex(0xfff0f0), Pants: hex(0xffb6c1)}

	white    = hex(0xffffff)
	shoes    = hex(0x222222)
	heartRed = hex(0xFF3354)
)

// Generate paints every texture. The rng drives the sky stars and the lit
// windows, so a fixed seed gives identical images.
func Generate(rng *rand.Rand) map[string]*image.RGBA {
	return map[string]*image.RGBA{
		Tile:          CreateSolidTile(white, 32),
		Luthfi:        CreateCharacter(LuthfiOutfit),
		Raina:         CreateCharacter(RainaOutfit),
		Heart:         CreateHeart(),
		Star:          CreateStar(),
		Motorcycle:    CreateMotorcycle(),
		SkyNight:      CreateNightSky(rng),
		BuildingsFar:  CreateBuildings(rng, farSkyline),
		BuildingsNear: CreateBuildings(rng, nearSkyline),
		RoadSurface:   CreateRoad(),
		Streetlight:   CreateStreetlight(),
		Glow:          CreateGlow(64),
	}
}

// CreateCharacter draws a 32×32 front-facing figure.
func CreateCharacter(o Outfit) *image.RGBA {
	cv := newCanvas(32, 32)
	cv.fillRect(10, 2, 12, 6, o.Hair, 1)
	cv.fillRect(11, 7, 10, 8, o.Skin, 1)
	// eyes
	cv.fillRect(13, 9, 2, 2, shoes, 1)
	cv.fillRect(17, 9, 2, 2, shoes, 1)
	cv.fillRect(8, 15, 16, 9, o.Shirt, 1)
	cv.fillRect(5, 16, 3, 7, o.Shirt, 1)
	cv.fillRect(24, 16, 3, 7, o.Shirt, 1)
	cv.fillRect(10, 24, 5, 6, o.Pants, 1)
	cv.fillRect(17, 24, 5, 6, o.Pants, 1)
	cv.fillRect(9, 30, 6, 2, shoes, 1)
	cv.fillRect(17, 30, 6, 2, shoes, 1)
	return cv.img
}

// CreateHeart draws an 18×18 heart.
func CreateHeart() *image.RGBA {
	cv := newCanvas(18, 18)
	cv.fillCircle(5, 5, 5, heartRed, 1)
	cv.fillCircle(13, 5, 5, heartRed, 1)
	cv.fillTriangle([2]float64{0, 7}, [2]float64{9, 18}, [2]float64{18, 7}, heartRed, 1)
	return cv.img
}

// CreateStar draws a 4×4 plus-shaped twinkle.
func CreateStar() *image.RGBA {
	cv := newCanvas(4, 4)
	cv.fillRect(1, 0, 2, 4, white, 1)
	cv.fillRect(0, 1, 4, 2, white, 1)
	return cv.img
}

// CreateMotorcycle draws the bike with both riders, 72×52.
func CreateMotorcycle() *image.RGBA {
	cv := newCanvas(72, 52)
	cv.fillRect(12, 28, 48, 10, hex(0x333333), 1)
	cv.fillCircle(18, 42, 8, hex(0x222222), 1)
	cv.fillCircle(52, 42, 8, hex(0x222222), 1)
	cv.fillCircle(18, 42, 4, hex(0x555555), 1)
	cv.fillCircle(52, 42, 4, hex(0x555555), 1)
	// headlight
	cv.fillRect(58, 26, 4, 6, hex(0xFFCC00), 1)

	// front rider
	cv.fillRect(38, 12, 12, 16, LuthfiOutfit.Shirt, 1)
	cv.fillRect(40, 6, 8, 8, LuthfiOutfit.Skin, 1)
	cv.fillRect(40, 4, 8, 4, LuthfiOutfit.Hair, 1)

	// back rider
	cv.fillRect(22, 12, 12, 16, RainaOutfit.Shirt, 1)
	cv.fillRect(24, 6, 8, 8, RainaOutfit.Skin, 1)
	cv.fillRect(24, 4, 8, 4, RainaOutfit.Hair, 1)
	return cv.img
}

// CreateNightSky draws a 256×200 sky band with 40 random stars.
func CreateNightSky(rng *rand.Rand) *image.RGBA {
	cv := newCanvas(256, 200)
	cv.fillRect(0, 0, 256, 200, hex(0x0a0a2e), 1)
	cv.fillRect(0, 100, 256, 100, hex(0x0f0f3a), 1)
	for i := 0; i < 40; i++ {
		a := rng.Float64()*0.8 + 0.2
		s := 2
		if rng.Float64() > 0.8 {
			s = 3
		}
		cv.fillRect(rng.Intn(254), rng.Intn(180), s, s, white, a)
	}
	return cv.img
}

type skyline struct {
	w, h        int
	blocks      [][4]int
	body        color.RGBA
	window      color.RGBA
	windowAlpha float64
	litChance   float64
	winW, winH  int
	stepX       int
	stepY       int
	inset       int
	insetY      int
}

var farSkyline = skyline{
	w: 256, h: 200,
	blocks: [][4]int{
		{5, 50, 35, 150}, {50, 30, 30, 170}, {90, 60, 40, 140},
		{140, 40, 28, 160}, {178, 55, 35, 145}, {222, 35, 34, 165},
	},
	body: hex(0x101030), window: hex(0xFFFF66), windowAlpha: 0.25, litChance: 0.5,
	winW: 4, winH: 6, stepX: 10, stepY: 14, inset: 4, insetY: 8,
}

var nearSkyline = skyline{
	w: 256, h: 250,
	blocks: [][4]int{
		{0, 40, 55, 210}, {65, 20, 45, 230}, {120, 55, 50, 195},
		{180, 30, 40, 220}, {228, 50, 28, 200},
	},
	body: hex(0x080818), window: hex(0xFFAA00), windowAlpha: 0.4, litChance: 0.65,
	winW: 5, winH: 7, stepX: 12, stepY: 18, inset: 6, insetY: 12,
}

// CreateBuildings draws a transparent strip of building silhouettes with
// randomly lit windows.
func CreateBuildings(rng *rand.Rand, s skyline) *image.RGBA {
	cv := newCanvas(s.w, s.h)
	for _, b := range s.blocks {
		bx, by, bw, bh := b[0], b[1], b[2], b[3]
		cv.fillRect(bx, by, bw, bh, s.body, 1)
		for wy := by + s.insetY; wy < by+bh-s.insetY; wy += s.stepY {
			for wx := bx + s.inset; wx < bx+bw-s.inset; wx += s.stepX {
				if rng.Float64() < s.litChance {
					cv.fillRect(wx, wy, s.winW, s.winH, s.window, s.windowAlpha)
				}
			}
		}
	}
	return cv.img
}

// CreateRoad draws a 256×150 road tile with a curb and lane dashes.
func CreateRoad() *image.RGBA {
	cv := newCanvas(256, 150)
	cv.fillRect(0, 0, 256, 150, hex(0x2a2a2a), 1)
	cv.fillRect(0, 0, 256, 12, hex(0x444444), 1)
	for x := 0; x < 256; x += 40 {
		cv.fillRect(x, 68, 20, 3, white, 0.4)
	}
	return cv.img
}

// CreateStreetlight draws a 24×64 lamp post with a soft halo.
func CreateStreetlight() *image.RGBA {
	cv := newCanvas(24, 64)
	cv.fillRect(4, 8, 2, 56, hex(0x888888), 1)
	cv.fillCircle(5, 6, 5, hex(0xFFFF88), 1)
	cv.fillCircle(5, 6, 12, hex(0xFFFF44), 0.3)
	return cv.img
}

// CreateGlow draws a white radial falloff used for light halos.
func CreateGlow(size int) *image.RGBA {
	cv := newCanvas(size, size)
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			d := (dx*dx + dy*dy) / (r * r)
			if d < 1 {
				cv.blend(x, y, white, (1-d)*(1-d))
			}
		}
	}
	return cv.img
}
