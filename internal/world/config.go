package world

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/SumDumIdiut/The-Power-of-50/internal/logger"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("world: invalid config")

// Config holds the world-size, generation and query tunables.
type Config struct {
	WorldSize int   // square world edge in pixels
	TileSize  int   // pixel edge of one grid tile
	ChunkSize int   // pixel edge of one chunk
	Seed      int64 // 0 = seed from the clock

	// Dungeon generation, all in tiles.
	StartRoomSize    int
	RoomCount        int
	RoomMinSize      int
	RoomMaxSize      int
	RoomAttempts     int
	RoomPadding      int
	EdgeMargin       int
	CorridorWidth    int
	ExtraConnections float64 // extra random corridors per placed room
	MinWallThickness int

	// Collision compaction caps (0 = unbounded).
	MaxWallRunWidth  int
	MaxWallRunHeight int

	// Chunk cache, in chunks.
	LoadRadius   int
	UnloadRadius int
	NearbyRadius int

	VisibleBuffer float64 // pixel margin around the camera rect

	// Line-of-sight sampling. LOSStep must stay below 2*LOSProbeRadius+2
	// or samples can hop over an exposed face.
	LOSStep        float64
	LOSMinSteps    int
	LOSProbeRadius float64

	SpawnSafetyRadius   int
	SpawnFallbackRadius int
	SpawnAttempts       int

	Log logrus.FieldLogger
}

// DefaultConfig returns the shooter's tuning.
func DefaultConfig() Config {
	return Config{
		WorldSize: 12000,
		TileSize:  40,
		ChunkSize: 500,

		StartRoomSize:    50,
		RoomCount:        20,
		RoomMinSize:      25,
		RoomMaxSize:      45,
		RoomAttempts:     50,
		RoomPadding:      6,
		EdgeMargin:       5,
		CorridorWidth:    12,
		ExtraConnections: 0.5,
		MinWallThickness: 3,

		LoadRadius:   2,
		UnloadRadius: 4,
		NearbyRadius: 1,

		VisibleBuffer: 50,

		LOSStep:        8,
		LOSMinSteps:    4,
		LOSProbeRadius: 4,

		SpawnSafetyRadius:   2,
		SpawnFallbackRadius: 1,
		SpawnAttempts:       100,
	}
}

// GridSize is the number of tiles along one world edge.
func (c Config) GridSize() int {
	if c.TileSize <= 0 {
		return 0
	}
	return c.WorldSize / c.TileSize
}

// Validate reports the first inconsistent field.
func (c Config) Validate() error {
	switch {
	case c.WorldSize <= 0:
		return fmt.Errorf("%w: world size %d must be positive", ErrInvalidConfig, c.WorldSize)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile size %d must be positive", ErrInvalidConfig, c.TileSize)
	case c.WorldSize%c.TileSize != 0:
		return fmt.Errorf("%w: world size %d is not a multiple of tile size %d", ErrInvalidConfig, c.WorldSize, c.TileSize)
	case c.ChunkSize <= 0:
		return fmt.Errorf("%w: chunk size %d must be positive", ErrInvalidConfig, c.ChunkSize)
	case c.RoomMinSize <= 0 || c.RoomMaxSize < c.RoomMinSize:
		return fmt.Errorf("%w: room size range [%d,%d]", ErrInvalidConfig, c.RoomMinSize, c.RoomMaxSize)
	case c.StartRoomSize <= 0 || c.StartRoomSize > c.GridSize():
		return fmt.Errorf("%w: start room %d does not fit a %d tile grid", ErrInvalidConfig, c.StartRoomSize, c.GridSize())
	case c.RoomCount < 0 || c.RoomAttempts < 0:
		return fmt.Errorf("%w: room count %d / attempts %d", ErrInvalidConfig, c.RoomCount, c.RoomAttempts)
	case c.CorridorWidth < 1:
		return fmt.Errorf("%w: corridor width %d", ErrInvalidConfig, c.CorridorWidth)
	case c.MaxWallRunWidth < 0 || c.MaxWallRunHeight < 0:
		return fmt.Errorf("%w: negative wall run cap", ErrInvalidConfig)
	case c.NearbyRadius < 0 || c.LoadRadius < c.NearbyRadius:
		return fmt.Errorf("%w: load radius %d below nearby radius %d", ErrInvalidConfig, c.LoadRadius, c.NearbyRadius)
	case c.UnloadRadius < c.LoadRadius:
		return fmt.Errorf("%w: unload radius %d below load radius %d", ErrInvalidConfig, c.UnloadRadius, c.LoadRadius)
	case c.LOSStep <= 0 || c.LOSMinSteps < 1 || c.LOSProbeRadius < 0:
		return fmt.Errorf("%w: line of sight step %.1f / min steps %d / radius %.1f", ErrInvalidConfig, c.LOSStep, c.LOSMinSteps, c.LOSProbeRadius)
	case c.SpawnSafetyRadius < 0 || c.SpawnFallbackRadius < 0 || c.SpawnAttempts < 0:
		return fmt.Errorf("%w: spawn radius/attempts must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (c Config) logger() logrus.FieldLogger {
	if c.Log != nil {
		return c.Log
	}
	return logger.Discard()
}
