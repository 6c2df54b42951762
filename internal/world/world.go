// Package world generates the shooter's dungeon and answers the spatial
// queries the game loop makes every frame: nearby and visible walls, line of
// sight and safe spawn positions.
package world

import (
	"errors"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrAlreadyGenerated is returned by a Builder asked to generate twice.
var ErrAlreadyGenerated = errors.New("world: builder already generated")

// State is the lifecycle stage of a world.
type State uint8

const (
	StateUninitialized State = iota
	StateGenerating
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateGenerating:
		return "generating"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// navClearance is the tile padding around solid tiles in the nav grid.
const navClearance = 1

// Builder owns a world that has not been generated yet. It exposes no
// queries; those live on the *World that Generate returns.
type Builder struct {
	cfg   Config
	state State
}

// NewBuilder validates cfg and returns an uninitialized builder.
func NewBuilder(cfg Config) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg}, nil
}

// State returns the builder's lifecycle stage.
func (b *Builder) State() State {
	return b.state
}

// Generate carves the dungeon, compacts it into walls and builds the
// no-spawn index. It runs once per builder.
func (b *Builder) Generate() (*World, error) {
	if b.state != StateUninitialized {
		return nil, ErrAlreadyGenerated
	}
	b.state = StateGenerating
	log := b.cfg.logger()
	start := time.Now()

	rng := newRand(b.cfg.Seed)
	gen := newGenerator(b.cfg, rng)
	grid := gen.run()

	w := assemble(b.cfg, grid, gen.rooms, rng)
	b.state = StateReady

	log.WithFields(logrus.Fields{
		"seed":             b.cfg.Seed,
		"rooms":            len(gen.rooms),
		"rooms_requested":  gen.stats.requestedRooms,
		"tiles":            grid.Len(),
		"walls":            len(w.walls),
		"thin_wall_passes": gen.stats.thinWallPasses,
		"thin_tiles_freed": gen.stats.thinTilesFreed,
		"elapsed":          time.Since(start).Round(time.Millisecond),
	}).Info("map generated")
	return w, nil
}

// Generate is NewBuilder followed by Builder.Generate.
func Generate(cfg Config) (*World, error) {
	b, err := NewBuilder(cfg)
	if err != nil {
		return nil, err
	}
	return b.Generate()
}

// NewWorldFromGrid builds a ready world from a hand-made grid, skipping the
// dungeon generator.
func NewWorldFromGrid(cfg Config, grid *TileGrid, rooms []Room) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return assemble(cfg, grid, rooms, newRand(cfg.Seed)), nil
}

func assemble(cfg Config, grid *TileGrid, rooms []Room, rng *rand.Rand) *World {
	walls := BuildWalls(grid, cfg.TileSize, cfg.MaxWallRunWidth, cfg.MaxWallRunHeight)
	return &World{
		ChunkManager: newChunkManager(cfg, walls),
		cfg:          cfg,
		log:          cfg.logger(),
		rng:          rng,
		grid:         grid,
		rooms:        rooms,
		noSpawn:      buildNoSpawnIndex(grid, walls, cfg.TileSize),
		nav:          NewNavGrid(grid, cfg.GridSize(), cfg.TileSize, navClearance),
	}
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- game only
}

// Rect is an axis-aligned rectangle in world pixels.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the rectangle's centre.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// World is a generated map ready for queries. All access happens from the
// game loop goroutine.
type World struct {
	*ChunkManager

	cfg     Config
	log     logrus.FieldLogger
	rng     *rand.Rand
	grid    *TileGrid
	rooms   []Room
	noSpawn *noSpawnIndex
	nav     *NavGrid
}

// State is always StateReady.
func (w *World) State() State { return StateReady }

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// Grid returns the finalized tile grid.
func (w *World) Grid() *TileGrid { return w.grid }

// NavGrid returns the walkability grid derived from the tiles.
func (w *World) NavGrid() *NavGrid { return w.nav }

// Rand returns the world's random source.
func (w *World) Rand() *rand.Rand { return w.rng }

// Size returns the world edge in pixels.
func (w *World) Size() float64 { return float64(w.cfg.WorldSize) }

// RoomTiles returns the carved rooms in tile coordinates.
func (w *World) RoomTiles() []Room { return w.rooms }

// Rooms returns the carved rooms in world pixels.
func (w *World) Rooms() []Rect {
	ts := float64(w.cfg.TileSize)
	out := make([]Rect, len(w.rooms))
	for i, r := range w.rooms {
		out[i] = Rect{X: float64(r.X) * ts, Y: float64(r.Y) * ts, W: float64(r.W) * ts, H: float64(r.H) * ts}
	}
	return out
}

// pushDirs are probed in order when freeing an entity stuck in a wall.
var pushDirs = [8][2]float64{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
}

const (
	pushStep = 5
	pushMax  = 200
)

// PushOut returns (x, y) unchanged when the probe is clear. Otherwise it walks
// each of eight directions in pushStep increments up to pushMax and returns
// the first clear point, or a random open position when none is.
func (w *World) PushOut(x, y, size float64) (float64, float64) {
	if !w.CollidesAt(x, y, size) {
		return x, y
	}
	for _, d := range pushDirs {
		for dist := float64(pushStep); dist <= pushMax; dist += pushStep {
			tx, ty := x+d[0]*dist, y+d[1]*dist
			if !w.CollidesAt(tx, ty, size) {
				return tx, ty
			}
		}
	}
	return w.RandomOpenPosition()
}
