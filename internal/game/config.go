package game

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/SumDumIdiut/The-Power-of-50/internal/logger"
	"github.com/SumDumIdiut/The-Power-of-50/internal/world"
)

// Gameplay constants.
const (
	killGoal = 50

	playerSize      = 20.0
	playerSpeed     = 5.0
	playerMaxSpeed  = 12.0
	baseFireRate    = 30 // frames between volleys
	minFireRate     = 5
	baseDamage      = 5
	maxBounces      = 3
	multiShotSpread = 0.3 // radians between multishot bullets
	dualGunOffset   = 8.0

	bulletSpeed       = 10.0
	bulletSize        = 5.0
	bulletLifetime    = 300
	bulletInaccuracy  = 0.15
	bulletCap         = 100
	enemyBulletSpeed  = 6.0
	enemyBulletSize   = 6.0
	bounceHitLifetime = 60

	orbitalSaws     = 3
	orbitalRadius   = 50.0
	orbitalSawSize  = 12.0
	orbitalSpin     = 0.1
	orbitalReach    = 80.0
	orbitalDamage   = 1
	popupLifetime   = 60
	popupRiseSpeed  = 1.5
	offscreenMargin = 100.0

	spawnDelayBase    = 300
	spawnDelayMin     = 60
	spawnDelayPerKill = 5
	maxEnemiesBase    = 10
	maxEnemiesCap     = 20
	spawnTries        = 100

	bossEvery         = 10
	finalBossHealth   = 2500
	bossHealthFactor  = 5
	patternFrames     = 300
	minionEvery       = 180
	minionCap         = 10
	minionDistance    = 100.0
	minionHealth      = 100
	bossRepathFrames  = 30
	bossPathMaxNodes  = 6000
	waypointReachDist = 8.0

	aimLaserLength = 600.0
)

// Config holds the window size, the kill goal and the world tunables.
type Config struct {
	ScreenWidth  int
	ScreenHeight int
	KillGoal     int
	World        world.Config

	// Invulnerable keeps the player alive through hits. Used by soak runs.
	Invulnerable bool

	Log logrus.FieldLogger
}

// DefaultConfig returns the shooter's tuning on the full-size world.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  1280,
		ScreenHeight: 720,
		KillGoal:     killGoal,
		World:        world.DefaultConfig(),
	}
}

// ScaleWorld resizes the world to px pixels and shrinks room, corridor and
// padding sizes in proportion. Sizes never drop below what the generator
// needs to carve something playable.
func (c *Config) ScaleWorld(px int) {
	wc := &c.World
	if wc.WorldSize <= 0 || px <= 0 {
		return
	}
	f := float64(px) / float64(wc.WorldSize)
	scale := func(v, floor int) int {
		return max(floor, int(math.Round(float64(v)*f)))
	}
	px -= px % wc.TileSize
	wc.WorldSize = px
	grid := wc.GridSize()

	wc.StartRoomSize = min(scale(wc.StartRoomSize, 6), max(1, grid/2))
	wc.RoomMinSize = scale(wc.RoomMinSize, 5)
	wc.RoomMaxSize = max(wc.RoomMinSize, scale(wc.RoomMaxSize, 6))
	wc.RoomCount = scale(wc.RoomCount, 2)
	wc.RoomPadding = scale(wc.RoomPadding, 2)
	wc.EdgeMargin = scale(wc.EdgeMargin, 2)
	wc.CorridorWidth = scale(wc.CorridorWidth, 3)
}

func (c Config) logger() logrus.FieldLogger {
	switch {
	case c.Log != nil:
		return c.Log
	case c.World.Log != nil:
		return c.World.Log
	}
	return logger.Discard()
}
