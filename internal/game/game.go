package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/SumDumIdiut/The-Power-of-50/internal/world"
)

// Game is the ebiten.Game shell around a Session: keyboard in, pixels out.
type Game struct {
	cfg      Config
	log      logrus.FieldLogger
	assets   *AssetStore
	renderer *Renderer
	session  *Session
	runs     int
}

// New builds the asset store and generates the first world.
func New(cfg Config) (*Game, error) {
	if cfg.KillGoal <= 0 {
		cfg.KillGoal = killGoal
	}
	assets := NewAssetStore(cfg.World.TileSize)
	g := &Game{
		cfg:      cfg,
		log:      cfg.logger(),
		assets:   assets,
		renderer: NewRenderer(assets, cfg.ScreenWidth, cfg.ScreenHeight),
	}
	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset discards the current session and starts a new one on a freshly
// generated world. A fixed seed advances by one per run so restarts differ
// but stay reproducible.
func (g *Game) Reset() error {
	wc := g.cfg.World
	if wc.Seed != 0 {
		wc.Seed += int64(g.runs)
	}
	b, err := world.NewBuilder(wc)
	if err != nil {
		return fmt.Errorf("game: reset: %w", err)
	}
	start := time.Now()
	w, err := b.Generate()
	if err != nil {
		return fmt.Errorf("game: reset: %w", err)
	}
	g.log.WithFields(logrus.Fields{
		"run":     g.runs + 1,
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("world generated")

	g.session = NewSession(g.cfg, w, w.Rand().Int63())
	g.runs++
	return nil
}

// Session returns the running session.
func (g *Game) Session() *Session { return g.session }

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.renderer.Debug = !g.renderer.Debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return g.Reset()
	}
	if g.session.Outcome() != Playing {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			return g.Reset()
		}
		return nil
	}
	g.session.Step(readInput())
	return nil
}

// readInput polls WASD and the arrow keys.
func readInput() Input {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	return Input{
		Up:    pressed(ebiten.KeyW, ebiten.KeyArrowUp),
		Down:  pressed(ebiten.KeyS, ebiten.KeyArrowDown),
		Left:  pressed(ebiten.KeyA, ebiten.KeyArrowLeft),
		Right: pressed(ebiten.KeyD, ebiten.KeyArrowRight),
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.session)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.ScreenWidth, g.cfg.ScreenHeight
}
