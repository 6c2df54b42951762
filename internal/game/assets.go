package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// Palette is every flat colour the renderer uses.
type Palette struct {
	Background  color.RGBA
	Player      color.RGBA
	Aim         color.RGBA
	Bullet      color.RGBA
	EnemyBullet color.RGBA
	Saw         color.RGBA
	HealthBack  color.RGBA
	HealthFill  color.RGBA
	Boss        color.RGBA
	FinalBoss   color.RGBA
	Exposed     color.RGBA
	Panel       color.RGBA
	Enemies     [4]color.RGBA // by EnemyKind
	Items       [7]color.RGBA // by ItemKind
}

func defaultPalette() Palette {
	return Palette{
		Background:  color.RGBA{R: 18, G: 18, B: 24, A: 255},
		Player:      colornames.Deepskyblue,
		Aim:         color.RGBA{R: 255, G: 60, B: 60, A: 120},
		Bullet:      colornames.Yellow,
		EnemyBullet: colornames.Orangered,
		Saw:         colornames.Silver,
		HealthBack:  color.RGBA{R: 60, G: 0, B: 0, A: 255},
		HealthFill:  colornames.Limegreen,
		Boss:        colornames.Darkviolet,
		FinalBoss:   colornames.Crimson,
		Exposed:     colornames.Magenta,
		Panel:       color.RGBA{R: 10, G: 12, B: 24, A: 200},
		Enemies: [4]color.RGBA{
			EnemyNormal:  colornames.Red,
			EnemyFast:    colornames.Orange,
			EnemyTank:    colornames.Darkred,
			EnemyShooter: colornames.Mediumpurple,
		},
		Items: [7]color.RGBA{
			ItemFireRate:  colornames.Gold,
			ItemMultiShot: colornames.Cyan,
			ItemDamage:    colornames.Tomato,
			ItemBounce:    colornames.Lawngreen,
			ItemSpeed:     colornames.Skyblue,
			ItemOrbital:   colornames.White,
			ItemDualGun:   colornames.Hotpink,
		},
	}
}

// tileColor shades a wall tile by how many solid cardinal neighbours it has,
// so interior mass reads differently from edges.
func tileColor(neighbors uint8) color.RGBA {
	switch neighbors {
	case 4:
		return color.RGBA{R: 100, G: 200, B: 100, A: 255}
	case 3:
		return color.RGBA{R: 200, G: 100, B: 100, A: 255}
	case 2:
		return color.RGBA{R: 100, G: 100, B: 200, A: 255}
	default:
		return color.RGBA{R: 150, G: 150, B: 150, A: 255}
	}
}

// AssetStore owns the pre-rendered tile images and the palette. Build one at
// startup and pass it to whatever draws.
type AssetStore struct {
	tileSize int
	tiles    [5]*ebiten.Image // by neighbour count
	corners  [5]*ebiten.Image // same, with a corner notch
	Palette  Palette
}

// NewAssetStore renders the tile images for tileSize-pixel tiles.
func NewAssetStore(tileSize int) *AssetStore {
	a := &AssetStore{tileSize: tileSize, Palette: defaultPalette()}
	ts := float32(tileSize)
	for n := range a.tiles {
		c := tileColor(uint8(n))
		edge := color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: 255}

		img := ebiten.NewImage(tileSize, tileSize)
		img.Fill(c)
		vector.StrokeRect(img, 0.5, 0.5, ts-1, ts-1, 1, edge, false)
		a.tiles[n] = img

		corner := ebiten.NewImage(tileSize, tileSize)
		corner.Fill(c)
		vector.StrokeRect(corner, 0.5, 0.5, ts-1, ts-1, 1, edge, false)
		vector.FillRect(corner, 0, 0, ts/4, ts/4, edge, false)
		a.corners[n] = corner
	}
	return a
}

// TileSize is the pixel edge of the tile images.
func (a *AssetStore) TileSize() int { return a.tileSize }

// Tile returns the image for a solid tile.
func (a *AssetStore) Tile(neighbors uint8, corner bool) *ebiten.Image {
	n := min(int(neighbors), len(a.tiles)-1)
	if corner {
		return a.corners[n]
	}
	return a.tiles[n]
}

// EnemyColor picks the body colour for e.
func (a *AssetStore) EnemyColor(e *Enemy) color.RGBA {
	switch {
	case e.Final:
		return a.Palette.FinalBoss
	case e.Boss:
		return a.Palette.Boss
	default:
		return a.Palette.Enemies[e.Kind]
	}
}

// ItemColor picks the pickup colour for k.
func (a *AssetStore) ItemColor(k ItemKind) color.RGBA {
	if int(k) < len(a.Palette.Items) {
		return a.Palette.Items[k]
	}
	return colornames.White
}
