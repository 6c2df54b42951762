package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/SumDumIdiut/The-Power-of-50/internal/game"
	"github.com/SumDumIdiut/The-Power-of-50/internal/logger"
	"github.com/SumDumIdiut/The-Power-of-50/internal/world"
)

const framesPerMinute = 3600

type runStats struct {
	runIndex int
	seed     int64

	// Map.
	rooms      int
	tiles      int
	walls      int
	genElapsed time.Duration
	tierCounts [4]int // samples per world.SpawnTier

	// Simulation.
	frames         int
	outcome        game.Outcome
	kills          int
	itemsPicked    int
	spawnFallbacks int
	playerHits     int
	firstKill      int
	firstBoss      int
	bossesKilled   int

	windowSummary *game.WindowReport
}

func main() {
	var runs int
	var frames int
	var seedBase int64
	var seedStep int64
	var worldSize int
	var samples int
	var mortal bool
	var copyOut bool
	var logLevel string

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&frames, "frames", 3600, "frames per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&worldSize, "world-size", 0, "world edge in pixels (0 = full size)")
	flag.IntVar(&samples, "spawn-samples", 200, "spawn tier samples per map")
	flag.BoolVar(&mortal, "mortal", false, "let the player die (default runs are invulnerable)")
	flag.BoolVar(&copyOut, "copy", false, "copy the report to the clipboard")
	flag.StringVar(&logLevel, "log-level", "warn", "log level")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if frames <= 0 {
		fmt.Println("error: -frames must be > 0")
		return
	}

	log := logger.New(logLevel, "")

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Headless Map & Sim Report ===\n")
	fmt.Fprintf(&sb, "runs=%d frames=%d seed_base=%d seed_step=%d world_size=%d mortal=%t\n\n",
		runs, frames, seedBase, seedStep, worldSize, mortal)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		opts := []game.HeadlessOption{
			game.WithSeed(seed),
			game.WithLogger(log),
			game.WithScript(game.Wander(240)),
		}
		if worldSize > 0 {
			opts = append(opts, game.WithWorldSize(worldSize))
		}
		if !mortal {
			opts = append(opts, game.WithInvulnerable())
		}
		rs, err := runOnce(i+1, seed, frames, samples, opts)
		if err != nil {
			log.WithError(err).WithField("seed", seed).Error("run failed")
			continue
		}
		all = append(all, rs)
		writeRun(&sb, rs)
	}
	writeAggregate(&sb, all)

	out := sb.String()
	fmt.Print(out)
	if copyOut {
		if err := clipboard.WriteAll(out); err != nil {
			fmt.Fprintf(os.Stderr, "clipboard: %v\n", err)
		}
	}
}

func runOnce(runIndex int, seed int64, frames, samples int, opts []game.HeadlessOption) (runStats, error) {
	start := time.Now()
	h, err := game.NewHeadless(opts...)
	if err != nil {
		return runStats{}, err
	}
	genElapsed := time.Since(start)
	w := h.Session.World()

	h.RunFrames(frames)
	s := h.Session
	sl := h.SimLog

	rs := runStats{
		runIndex:       runIndex,
		seed:           seed,
		rooms:          len(w.Rooms()),
		tiles:          w.Grid().Len(),
		walls:          len(w.Walls()),
		genElapsed:     genElapsed,
		frames:         s.Frame(),
		outcome:        s.Outcome(),
		kills:          s.Kills(),
		itemsPicked:    s.Player().ItemsPicked,
		spawnFallbacks: sl.CountCategory("spawn", "fallback"),
		playerHits:     sl.CountCategory("player", "hit"),
		firstKill:      sl.FirstFrame("kill", "enemy", ""),
		firstBoss:      sl.FirstFrame("boss", "spawn", ""),
		bossesKilled:   sl.CountCategory("boss", "defeated"),
		windowSummary:  h.Reporter.WindowSummary(),
	}
	// Sampling draws from the world's RNG, so it runs after the simulation.
	for i := 0; i < samples; i++ {
		_, _, tier := w.RandomOpenPositionTier()
		rs.tierCounts[tier]++
	}
	return rs, nil
}

func writeRun(sb *strings.Builder, rs runStats) {
	fmt.Fprintf(sb, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(sb, "map: rooms=%d tiles=%d walls=%d gen=%s\n",
		rs.rooms, rs.tiles, rs.walls, rs.genElapsed.Round(time.Millisecond))
	fmt.Fprintf(sb, "spawn_tiers: %s\n", tierSummary(rs.tierCounts))
	fmt.Fprintf(sb, "sim: frames=%d outcome=%s kills=%d items=%d player_hits=%d spawn_fallbacks=%d\n",
		rs.frames, rs.outcome, rs.kills, rs.itemsPicked, rs.playerHits, rs.spawnFallbacks)
	fmt.Fprintf(sb, "phase_markers: first_kill=%d first_boss=%d bosses_killed=%d\n",
		rs.firstKill, rs.firstBoss, rs.bossesKilled)
	if stalled, reason := detectStall(rs); stalled {
		fmt.Fprintf(sb, "STALL: %s\n", reason)
	}
	sb.WriteString(rs.windowSummary.Format())
	sb.WriteByte('\n')
}

func writeAggregate(sb *strings.Builder, all []runStats) {
	var totalRooms, totalWalls, totalKills, totalFallbacks, totalHits, stalls int
	var tiers [4]int
	var firstKills, firstBosses []int
	outcomes := map[game.Outcome]int{}
	for _, rs := range all {
		totalRooms += rs.rooms
		totalWalls += rs.walls
		totalKills += rs.kills
		totalFallbacks += rs.spawnFallbacks
		totalHits += rs.playerHits
		outcomes[rs.outcome]++
		for i, c := range rs.tierCounts {
			tiers[i] += c
		}
		if rs.firstKill >= 0 {
			firstKills = append(firstKills, rs.firstKill)
		}
		if rs.firstBoss >= 0 {
			firstBosses = append(firstBosses, rs.firstBoss)
		}
		if stalled, _ := detectStall(rs); stalled {
			stalls++
		}
	}

	fmt.Fprintln(sb, "=== Aggregate ===")
	fmt.Fprintf(sb, "runs=%d\n", len(all))
	fmt.Fprintf(sb, "avg_map: rooms=%.1f walls=%.1f\n", avg(totalRooms, len(all)), avg(totalWalls, len(all)))
	fmt.Fprintf(sb, "spawn_tiers: %s\n", tierSummary(tiers))
	fmt.Fprintf(sb, "avg_sim: kills=%.1f player_hits=%.1f spawn_fallbacks=%.1f\n",
		avg(totalKills, len(all)), avg(totalHits, len(all)), avg(totalFallbacks, len(all)))
	fmt.Fprintf(sb, "outcomes: playing=%d victory=%d defeat=%d stalled=%d\n",
		outcomes[game.Playing], outcomes[game.Victory], outcomes[game.Defeat], stalls)
	fmt.Fprintf(sb, "phase_marker_avg_frames: first_kill=%s first_boss=%s\n",
		avgFrameString(firstKills), avgFrameString(firstBosses))
}

// detectStall flags an unfinished run whose kill rate suggests the player
// never reached enemies, or enemies never reached the player.
func detectStall(rs runStats) (bool, string) {
	if rs.outcome != game.Playing {
		return false, "finished_" + rs.outcome.String()
	}
	if rs.frames < framesPerMinute {
		return false, "too_short"
	}
	kpm := float64(rs.kills) / (float64(rs.frames) / framesPerMinute)
	if kpm >= 1 {
		return false, fmt.Sprintf("kill_rate=%.1f/min", kpm)
	}
	reasons := []string{fmt.Sprintf("low_kill_rate=%.1f/min", kpm)}
	if rs.spawnFallbacks > 0 {
		reasons = append(reasons, fmt.Sprintf("spawn_fallbacks=%d", rs.spawnFallbacks))
	}
	return true, strings.Join(reasons, " ")
}

func tierSummary(counts [4]int) string {
	total := 0
	for _, c := range counts {
		total += c
	}
	parts := make([]string, 0, len(counts))
	for i, c := range counts {
		pct := 0.0
		if total > 0 {
			pct = float64(c) / float64(total) * 100
		}
		parts = append(parts, fmt.Sprintf("%s=%d(%.0f%%)", world.SpawnTier(i), c, pct))
	}
	return strings.Join(parts, " ")
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgFrameString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
