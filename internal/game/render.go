package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/SumDumIdiut/The-Power-of-50/internal/world"
)

const (
	bossBarWidth  = 400
	bossBarHeight = 14
	pointerMargin = 30
	hudLineHeight = 14
)

// Renderer draws a Session in screen space. It holds no game state beyond
// the asset store and the debug toggle.
type Renderer struct {
	assets  *AssetStore
	screenW int
	screenH int

	// Debug outlines the walls in view and highlights their exposed faces.
	Debug bool
}

// NewRenderer returns a renderer for a screenW x screenH view.
func NewRenderer(assets *AssetStore, screenW, screenH int) *Renderer {
	return &Renderer{assets: assets, screenW: screenW, screenH: screenH}
}

// Draw renders the whole frame.
func (r *Renderer) Draw(screen *ebiten.Image, s *Session) {
	screen.Fill(r.assets.Palette.Background)
	camX, camY := s.Camera()

	r.drawTiles(screen, s.World(), camX, camY)
	if r.Debug {
		r.drawWallDebug(screen, s.World(), camX, camY)
	}
	r.drawItems(screen, s, camX, camY)
	r.drawBullets(screen, s, camX, camY)
	r.drawEnemies(screen, s, camX, camY)
	r.drawPlayer(screen, s, camX, camY)
	r.drawPopups(screen, s, camX, camY)

	r.drawStats(screen, s)
	r.drawBossBar(screen, s)
	r.drawBossPointer(screen, s, camX, camY)
	s.Feed().Draw(screen, r.screenW, r.screenH)

	switch s.Outcome() {
	case Victory:
		r.drawBanner(screen, "VICTORY", fmt.Sprintf("%d kills. Press Enter to play again.", s.Kills()), colornames.Gold)
	case Defeat:
		r.drawBanner(screen, "GAME OVER", fmt.Sprintf("%d kills. Press Enter to try again.", s.Kills()), colornames.Red)
	}
}

// drawTiles blits the tile images covering the view.
func (r *Renderer) drawTiles(screen *ebiten.Image, w *world.World, camX, camY float64) {
	ts := r.assets.TileSize()
	gx0 := int(math.Floor(camX / float64(ts)))
	gy0 := int(math.Floor(camY / float64(ts)))
	gx1 := int(math.Ceil((camX + float64(r.screenW)) / float64(ts)))
	gy1 := int(math.Ceil((camY + float64(r.screenH)) / float64(ts)))

	grid := w.Grid()
	op := &ebiten.DrawImageOptions{}
	for gy := gy0; gy <= gy1; gy++ {
		for gx := gx0; gx <= gx1; gx++ {
			info, ok := grid.Info(gx, gy)
			if !ok {
				continue
			}
			op.GeoM.Reset()
			op.GeoM.Translate(float64(gx*ts)-camX, float64(gy*ts)-camY)
			screen.DrawImage(r.assets.Tile(info.NeighborCount, info.Corner), op)
		}
	}
}

// drawWallDebug outlines each visible collision rectangle and paints its
// exposed faces.
func (r *Renderer) drawWallDebug(screen *ebiten.Image, w *world.World, camX, camY float64) {
	exposed := r.assets.Palette.Exposed
	visible := w.VisibleWalls(camX, camY, float64(r.screenW), float64(r.screenH))
	for _, h := range visible {
		wl := w.Wall(h)
		x0, y0 := float32(wl.X-camX), float32(wl.Y-camY)
		x1, y1 := x0+float32(wl.W), y0+float32(wl.H)
		vector.StrokeRect(screen, x0, y0, float32(wl.W), float32(wl.H), 1, color.RGBA{R: 255, G: 255, B: 255, A: 60}, false)
		if !wl.HasTop {
			vector.StrokeLine(screen, x0, y0, x1, y0, 2, exposed, false)
		}
		if !wl.HasBottom {
			vector.StrokeLine(screen, x0, y1, x1, y1, 2, exposed, false)
		}
		if !wl.HasLeft {
			vector.StrokeLine(screen, x0, y0, x0, y1, 2, exposed, false)
		}
		if !wl.HasRight {
			vector.StrokeLine(screen, x1, y0, x1, y1, 2, exposed, false)
		}
	}

	lines := []string{
		fmt.Sprintf("TPS %.0f  FPS %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()),
		fmt.Sprintf("chunks %d  walls %d/%d", w.LoadedChunks(), len(visible), len(w.Walls())),
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, r.screenW/2-80, r.screenH-40+i*hudLineHeight)
	}
}

func (r *Renderer) drawItems(screen *ebiten.Image, s *Session, camX, camY float64) {
	for _, it := range s.Items() {
		x, y := float32(it.X-camX), float32(it.Y-camY)
		c := r.assets.ItemColor(it.Kind)
		vector.FillCircle(screen, x, y, float32(it.Size()), c, true)
		if it.Kind.special() {
			vector.StrokeCircle(screen, x, y, float32(it.Size())+3, 2, colornames.White, true)
		}
	}
}

func (r *Renderer) drawBullets(screen *ebiten.Image, s *Session, camX, camY float64) {
	pal := r.assets.Palette
	for _, b := range s.Bullets() {
		vector.FillCircle(screen, float32(b.X-camX), float32(b.Y-camY), bulletSize, pal.Bullet, true)
	}
	for _, b := range s.EnemyBullets() {
		vector.FillCircle(screen, float32(b.X-camX), float32(b.Y-camY), enemyBulletSize, pal.EnemyBullet, true)
	}
}

func (r *Renderer) drawEnemies(screen *ebiten.Image, s *Session, camX, camY float64) {
	pal := r.assets.Palette
	for _, e := range s.Enemies() {
		x, y := float32(e.X-camX), float32(e.Y-camY)
		size := float32(e.Size)
		if x < -size || y < -size || x > float32(r.screenW)+size || y > float32(r.screenH)+size {
			continue
		}
		vector.FillCircle(screen, x, y, size, r.assets.EnemyColor(e), true)
		if e.Boss {
			// The boss has its own bar at the top of the screen.
			continue
		}
		frac := float32(e.Health) / float32(max(1, e.MaxHealth))
		barW := size * 2
		vector.FillRect(screen, x-size, y-size-8, barW, 4, pal.HealthBack, false)
		vector.FillRect(screen, x-size, y-size-8, barW*frac, 4, pal.HealthFill, false)
	}
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, s *Session, camX, camY float64) {
	pal := r.assets.Palette
	p := s.Player()
	x, y := float32(p.X-camX), float32(p.Y-camY)

	ex, ey, _ := s.AimLaser()
	vector.StrokeLine(screen, x, y, float32(ex-camX), float32(ey-camY), 1, pal.Aim, true)

	vector.FillCircle(screen, x, y, float32(p.Size), pal.Player, true)
	vector.StrokeLine(screen, x, y, x+float32(p.AimX)*float32(p.Size+6), y+float32(p.AimY)*float32(p.Size+6), 4, colornames.White, true)

	if p.HasOrbital {
		for _, saw := range p.sawPositions() {
			vector.FillCircle(screen, float32(saw[0]-camX), float32(saw[1]-camY), orbitalSawSize, pal.Saw, true)
		}
	}
}

func (r *Renderer) drawPopups(screen *ebiten.Image, s *Session, camX, camY float64) {
	for _, pu := range s.Popups() {
		c := r.assets.ItemColor(pu.Kind)
		c.A = uint8(255 * pu.Alpha())
		x, y := int(pu.X-camX), int(pu.Y-camY)
		w := float32(len(pu.Text)*6 + 6)
		vector.FillRect(screen, float32(x-3), float32(y-2), w, 16, color.RGBA{R: 0, G: 0, B: 0, A: c.A / 2}, false)
		vector.FillRect(screen, float32(x-3), float32(y+14), w, 2, c, false)
		ebitenutil.DebugPrintAt(screen, pu.Text, x, y)
	}
}

// drawStats renders the kill counter and the player's upgrades top-left.
func (r *Renderer) drawStats(screen *ebiten.Image, s *Session) {
	p := s.Player()
	lines := []string{
		fmt.Sprintf("Kills: %d/%d", s.Kills(), s.cfg.KillGoal),
		fmt.Sprintf("Shots: %d", p.MultiShot),
		fmt.Sprintf("Fire rate: %d%%", p.FireRatePercent()),
		fmt.Sprintf("Damage: %d", p.Damage),
		fmt.Sprintf("Bounce: %d", p.Bounces),
		fmt.Sprintf("Speed: %d%%", p.SpeedPercent()),
	}
	if p.HasOrbital {
		lines = append(lines, "+ Orbital saw")
	}
	if p.HasDualGun {
		lines = append(lines, "+ Dual gun")
	}

	const padX, padY = 6, 4
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*6 + padX*2)
	boxH := float32(len(lines)*hudLineHeight + padY*2)
	vector.FillRect(screen, 8, 8, boxW, boxH, r.assets.Palette.Panel, false)
	vector.StrokeRect(screen, 8, 8, boxW, boxH, 1, colornames.Slategray, false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, 8+padX, 8+padY+i*hudLineHeight)
	}
}

func (r *Renderer) drawBossBar(screen *ebiten.Image, s *Session) {
	b := s.Boss()
	if b == nil {
		return
	}
	x := float32(r.screenW-bossBarWidth) / 2
	y := float32(20)
	frac := float32(b.Health) / float32(max(1, b.MaxHealth))
	vector.FillRect(screen, x, y, bossBarWidth, bossBarHeight, r.assets.Palette.HealthBack, false)
	vector.FillRect(screen, x, y, bossBarWidth*max(0, frac), bossBarHeight, r.assets.EnemyColor(b), false)
	vector.StrokeRect(screen, x, y, bossBarWidth, bossBarHeight, 1, colornames.White, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  %d/%d", b.Label(), b.Health, b.MaxHealth), int(x)+4, int(y)+bossBarHeight+2)
}

// drawBossPointer marks the screen edge in the boss's direction while it is
// out of view.
func (r *Renderer) drawBossPointer(screen *ebiten.Image, s *Session, camX, camY float64) {
	b := s.Boss()
	if b == nil {
		return
	}
	bx, by := b.X-camX, b.Y-camY
	if bx >= 0 && by >= 0 && bx <= float64(r.screenW) && by <= float64(r.screenH) {
		return
	}
	cx, cy := float64(r.screenW)/2, float64(r.screenH)/2
	ux, uy, ok := unit(bx-cx, by-cy)
	if !ok {
		return
	}
	// Scale the direction until it meets the inset screen rectangle.
	tx := math.Inf(1)
	if ux != 0 {
		tx = (cx - pointerMargin) / math.Abs(ux)
	}
	ty := math.Inf(1)
	if uy != 0 {
		ty = (cy - pointerMargin) / math.Abs(uy)
	}
	t := math.Min(tx, ty)
	px, py := float32(cx+ux*t), float32(cy+uy*t)

	c := r.assets.EnemyColor(b)
	vector.FillCircle(screen, px, py, 8, c, true)
	vector.StrokeLine(screen, px, py, px+float32(ux)*18, py+float32(uy)*18, 3, c, true)
}

func (r *Renderer) drawBanner(screen *ebiten.Image, title, sub string, c color.RGBA) {
	vector.FillRect(screen, 0, 0, float32(r.screenW), float32(r.screenH), color.RGBA{A: 160}, false)
	w := float32(360)
	h := float32(70)
	x := (float32(r.screenW) - w) / 2
	y := (float32(r.screenH) - h) / 2
	vector.FillRect(screen, x, y, w, h, r.assets.Palette.Panel, false)
	vector.StrokeRect(screen, x, y, w, h, 2, c, false)
	ebitenutil.DebugPrintAt(screen, title, int(x+w/2)-len(title)*3, int(y)+16)
	ebitenutil.DebugPrintAt(screen, sub, int(x+w/2)-len(sub)*3, int(y)+40)
}
