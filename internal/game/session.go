package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/SumDumIdiut/The-Power-of-50/internal/world"
)

// Outcome is the state of a session after a frame.
type Outcome uint8

const (
	Playing Outcome = iota
	Victory
	Defeat
)

func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Session is one run from spawn to victory or death. It owns every entity
// and advances them a frame at a time; it knows nothing about input devices
// or drawing.
type Session struct {
	cfg   Config
	log   logrus.FieldLogger
	world *world.World
	rng   *rand.Rand

	player       *Player
	enemies      []*Enemy
	bullets      []*Bullet
	enemyBullets []*EnemyBullet
	items        []*Item
	popups       []*Popup
	boss         *Enemy

	frame         int
	kills         int
	shootCooldown int
	spawnTimer    int
	outcome       Outcome
	camX, camY    float64

	feed   *EventFeed
	simLog *SimLog
}

// NewSession places the player at the world centre, pushed clear of walls,
// and prefetches the surrounding chunks.
func NewSession(cfg Config, w *world.World, seed int64) *Session {
	s := &Session{
		cfg:   cfg,
		log:   cfg.logger(),
		world: w,
		rng:   rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
		feed:  NewEventFeed(),
	}
	if s.cfg.KillGoal <= 0 {
		s.cfg.KillGoal = killGoal
	}
	half := w.Size() / 2
	px, py := w.PushOut(half, half, playerSize)
	s.player = newPlayer(px, py)
	w.LoadChunksAround(px, py)
	s.updateCamera()

	s.feed.Add(0, FeedInfo, fmt.Sprintf("kill %d to win", s.cfg.KillGoal))
	s.log.WithFields(logrus.Fields{
		"player_x": int(px),
		"player_y": int(py),
		"rooms":    len(w.Rooms()),
		"walls":    len(w.Walls()),
		"goal":     s.cfg.KillGoal,
	}).Info("level started")
	return s
}

// SetSimLog attaches a structured event recorder (nil detaches).
func (s *Session) SetSimLog(sl *SimLog) { s.simLog = sl }

func (s *Session) World() *world.World          { return s.world }
func (s *Session) Player() *Player              { return s.player }
func (s *Session) Enemies() []*Enemy            { return s.enemies }
func (s *Session) Bullets() []*Bullet           { return s.bullets }
func (s *Session) EnemyBullets() []*EnemyBullet { return s.enemyBullets }
func (s *Session) Items() []*Item               { return s.items }
func (s *Session) Popups() []*Popup             { return s.popups }
func (s *Session) Feed() *EventFeed             { return s.feed }
func (s *Session) Frame() int                   { return s.frame }
func (s *Session) Kills() int                   { return s.kills }
func (s *Session) Outcome() Outcome             { return s.outcome }

// Boss returns the active boss, or nil.
func (s *Session) Boss() *Enemy { return s.boss }

// Camera returns the top-left corner of the view in world pixels.
func (s *Session) Camera() (float64, float64) { return s.camX, s.camY }

// Step advances the session one frame. Once the outcome is decided further
// steps are no-ops.
func (s *Session) Step(in Input) Outcome {
	if s.outcome != Playing {
		return s.outcome
	}
	s.frame++
	p := s.player

	s.world.LoadChunksAround(p.X, p.Y)
	s.world.UnloadDistantChunks(p.X, p.Y)

	p.move(in, s.world)
	s.updateCamera()
	p.updateAim(s.enemies, s.world)
	s.fire()
	s.spawn()
	s.updateBullets()
	if p.HasOrbital {
		p.OrbitAngle += orbitalSpin
	}
	s.updateEnemies()
	s.resolveHits()
	s.updateEnemyBullets()
	s.collectItems()
	s.updatePopups()

	if s.simLog != nil {
		s.simLog.AddVerbose(s.frame, "player", "pos", fmt.Sprintf("(%.0f,%.0f)", p.X, p.Y), float64(len(s.enemies)))
	}
	return s.checkOutcome()
}

func (s *Session) updateCamera() {
	p := s.player
	size := s.world.Size()
	w, h := float64(s.cfg.ScreenWidth), float64(s.cfg.ScreenHeight)
	s.camX = clamp(p.X-w/2, 0, math.Max(0, size-w))
	s.camY = clamp(p.Y-h/2, 0, math.Max(0, size-h))
}

func (s *Session) fire() {
	if s.shootCooldown == 0 {
		s.bullets = append(s.bullets, s.player.volley(s.rng)...)
		s.shootCooldown = s.player.FireRate
	}
	if s.shootCooldown > 0 {
		s.shootCooldown--
	}
}

func (s *Session) spawn() {
	if s.boss != nil {
		return
	}
	s.spawnTimer++
	delay := max(spawnDelayMin, spawnDelayBase-s.kills*spawnDelayPerKill)
	limit := min(maxEnemiesCap, maxEnemiesBase+s.kills/2)
	if s.spawnTimer > delay && len(s.enemies) < limit {
		s.spawnEnemy()
		s.spawnTimer = 0
	}
}

// spawnEnemy adds one regular enemy off-screen, or a boss when the kill count
// has reached a boss milestone.
func (s *Session) spawnEnemy() {
	switch {
	case s.kills == s.cfg.KillGoal-1:
		s.spawnBoss(0, finalBossHealth, true)
		return
	case s.kills > 0 && s.kills%bossEvery == 0 && s.kills < s.cfg.KillGoal:
		id := (s.kills/bossEvery-1)%4 + 1
		s.spawnBoss(id, s.baseHealth()*bossHealthFactor, false)
		return
	}

	for i := 0; i < spawnTries; i++ {
		x, y, tier := s.world.RandomOpenPositionTier()
		if tier != world.SpawnSafe {
			s.note("spawn", "fallback", tier.String(), float64(tier))
		}
		if !s.offscreen(x, y) {
			continue
		}
		kind := s.rollKind()
		hp := int(float64(s.baseHealth()) * kindStats[kind].healthFactor)
		e := newEnemy(x, y, kind, hp, s.rng)
		e.X, e.Y = s.world.PushOut(e.X, e.Y, e.Size)
		s.enemies = append(s.enemies, e)
		s.note("spawn", "enemy", fmt.Sprintf("%s hp=%d at (%.0f,%.0f)", kind, hp, e.X, e.Y), float64(hp))
		return
	}
	s.log.WithField("tries", spawnTries).Debug("no off-screen spawn position found")
}

func (s *Session) baseHealth() int {
	return 50 + (s.kills/5)*50
}

func (s *Session) rollKind() EnemyKind {
	switch r := s.rng.Float64(); {
	case r < 0.3:
		return EnemyNormal
	case r < 0.45:
		return EnemyFast
	case r < 0.75:
		return EnemyTank
	default:
		return EnemyShooter
	}
}

func (s *Session) offscreen(x, y float64) bool {
	sx, sy := x-s.camX, y-s.camY
	return sx < -offscreenMargin || sx > float64(s.cfg.ScreenWidth)+offscreenMargin ||
		sy < -offscreenMargin || sy > float64(s.cfg.ScreenHeight)+offscreenMargin
}

// spawnBoss clears the field and drops a boss in a room centre, preferring
// rooms out of view.
func (s *Session) spawnBoss(id, health int, final bool) {
	s.enemies = s.enemies[:0]
	s.bullets = s.bullets[:0]
	s.enemyBullets = s.enemyBullets[:0]

	x, y := s.world.Size()/2, s.world.Size()/2
	rooms := s.world.Rooms()
	for _, i := range s.rng.Perm(len(rooms)) {
		x, y = rooms[i].Center()
		if s.offscreen(x, y) {
			break
		}
	}
	b := newBoss(x, y, id, health, final, s.rng)
	b.X, b.Y = s.world.PushOut(b.X, b.Y, b.Size)
	s.enemies = append(s.enemies, b)
	s.boss = b

	s.feed.Add(s.frame, FeedBoss, b.Label()+" approaches")
	s.note("boss", "spawn", fmt.Sprintf("%s hp=%d at (%.0f,%.0f)", b.Label(), health, b.X, b.Y), float64(health))
	s.log.WithFields(logrus.Fields{
		"boss":   b.Label(),
		"health": health,
		"kills":  s.kills,
	}).Info("boss spawned")
}

func (s *Session) spawnMinion(boss *Enemy) *Enemy {
	a := s.rng.Float64() * 2 * math.Pi
	kinds := [...]EnemyKind{EnemyFast, EnemyShooter, EnemyTank}
	kind := kinds[s.rng.Intn(len(kinds))]
	m := newEnemy(boss.X+math.Cos(a)*minionDistance, boss.Y+math.Sin(a)*minionDistance, kind, minionHealth, s.rng)
	m.X, m.Y = s.world.PushOut(m.X, m.Y, m.Size)
	s.note("spawn", "minion", kind.String(), minionHealth)
	return m
}

func (s *Session) updateBullets() {
	if n := len(s.bullets); n > bulletCap {
		s.bullets = s.bullets[n-bulletCap:]
	}
	size := s.world.Size()
	kept := s.bullets[:0]
	for _, b := range s.bullets {
		b.step()
		if b.Lifetime <= 0 || outOfWorld(b.X, b.Y, size) {
			continue
		}
		if s.bulletHitsWall(b) {
			continue
		}
		kept = append(kept, b)
	}
	s.bullets = kept
}

// bulletHitsWall reports whether b touched a wall and must be destroyed.
// Bouncing bullets reflect instead.
func (s *Session) bulletHitsWall(b *Bullet) bool {
	for _, h := range s.world.NearbyWalls(b.X, b.Y) {
		wl := s.world.Wall(h)
		if wl.Collides(b.X, b.Y, bulletSize) {
			return !b.bounce(wl, s.frame)
		}
	}
	return false
}

func (s *Session) updateEnemies() {
	p := s.player
	var spawned []*Enemy
	kept := s.enemies[:0]
	for _, e := range s.enemies {
		los := s.world.HasLineOfSight(e.X, e.Y, p.X, p.Y)
		e.update(p.X, p.Y, s.world, los, s.frame)
		if los && e.canShoot() {
			s.enemyBullets = append(s.enemyBullets, e.shoot(p.X, p.Y)...)
		}
		if e.Final && len(s.enemies)+len(spawned) < minionCap {
			e.minionTimer++
			if e.minionTimer > minionEvery {
				e.minionTimer = 0
				spawned = append(spawned, s.spawnMinion(e))
			}
		}
		if math.Hypot(e.X-p.X, e.Y-p.Y) < p.Size+e.Size {
			s.hitPlayer(e.Label())
			if !e.Boss {
				continue
			}
		}
		if p.HasOrbital && math.Hypot(e.X-p.X, e.Y-p.Y) < orbitalReach {
			for _, saw := range p.sawPositions() {
				if math.Hypot(saw[0]-e.X, saw[1]-e.Y) < orbitalSawSize+e.Size {
					e.Health -= orbitalDamage
				}
			}
		}
		kept = append(kept, e)
	}
	s.enemies = append(kept, spawned...)
}

// resolveHits applies bullet damage and removes the dead.
func (s *Session) resolveHits() {
	kept := s.bullets[:0]
	for _, b := range s.bullets {
		spent := false
		for _, e := range s.enemies {
			if !e.Alive() {
				continue
			}
			dx, dy := b.X-e.X, b.Y-e.Y
			r := bulletSize + e.Size
			if dx*dx+dy*dy >= r*r {
				continue
			}
			e.Health -= b.Damage
			if b.BouncesLeft > 0 {
				b.deflect(e.X, e.Y)
			} else {
				spent = true
			}
			break
		}
		if !spent {
			kept = append(kept, b)
		}
	}
	s.bullets = kept

	alive := s.enemies[:0]
	for _, e := range s.enemies {
		if e.Alive() {
			alive = append(alive, e)
			continue
		}
		s.kill(e)
	}
	s.enemies = alive
}

func (s *Session) kill(e *Enemy) {
	s.kills++
	drop := dropFor(e, s.rng)
	s.items = append(s.items, &Item{X: e.X, Y: e.Y, Kind: drop})
	s.note("kill", "enemy", fmt.Sprintf("%s at (%.0f,%.0f)", e.Label(), e.X, e.Y), float64(s.kills))

	if e == s.boss {
		s.boss = nil
		s.feed.Add(s.frame, FeedBoss, e.Label()+" defeated")
		s.note("boss", "defeated", e.Label(), float64(s.kills))
		s.log.WithFields(logrus.Fields{"boss": e.Label(), "kills": s.kills}).Info("boss defeated")
		return
	}
	s.feed.Add(s.frame, FeedKill, fmt.Sprintf("%s down (%d/%d)", e.Label(), s.kills, s.cfg.KillGoal))
}

func (s *Session) updateEnemyBullets() {
	if n := len(s.enemyBullets); n > bulletCap {
		s.enemyBullets = s.enemyBullets[n-bulletCap:]
	}
	p := s.player
	size := s.world.Size()
	kept := s.enemyBullets[:0]
	for _, b := range s.enemyBullets {
		b.step()
		if outOfWorld(b.X, b.Y, size) {
			continue
		}
		dx, dy := b.X-p.X, b.Y-p.Y
		r := enemyBulletSize + p.Size
		if dx*dx+dy*dy < r*r {
			s.hitPlayer("enemy bullet")
			continue
		}
		if s.world.CollidesAt(b.X, b.Y, enemyBulletSize) {
			continue
		}
		kept = append(kept, b)
	}
	s.enemyBullets = kept
}

func (s *Session) hitPlayer(source string) {
	s.note("player", "hit", source, 0)
	if s.cfg.Invulnerable {
		return
	}
	s.player.Health = 0
}

func (s *Session) collectItems() {
	p := s.player
	kept := s.items[:0]
	for _, it := range s.items {
		if !it.touches(p) {
			kept = append(kept, it)
			continue
		}
		it.Kind.apply(p)
		s.popups = append(s.popups, &Popup{Text: it.Kind.String(), X: it.X, Y: it.Y - 20, Kind: it.Kind, Lifetime: popupLifetime})
		s.feed.Add(s.frame, FeedItem, it.Kind.String())
		s.note("item", "pickup", it.Kind.String(), float64(p.ItemsPicked))
	}
	s.items = kept
}

func (s *Session) updatePopups() {
	kept := s.popups[:0]
	for _, pu := range s.popups {
		pu.step()
		if pu.Lifetime > 0 {
			kept = append(kept, pu)
		}
	}
	s.popups = kept
}

func (s *Session) checkOutcome() Outcome {
	switch {
	case s.kills >= s.cfg.KillGoal:
		s.outcome = Victory
	case !s.player.Alive():
		s.outcome = Defeat
	default:
		return Playing
	}
	s.feed.Add(s.frame, FeedInfo, s.outcome.String())
	s.note("outcome", s.outcome.String(), fmt.Sprintf("kills=%d", s.kills), float64(s.kills))
	s.log.WithFields(logrus.Fields{
		"outcome": s.outcome.String(),
		"kills":   s.kills,
		"frames":  s.frame,
	}).Info("session over")
	return s.outcome
}

// AimLaser returns the end of the aim line: the first wall hit along the aim
// direction, or the full laser length when nothing is in the way.
func (s *Session) AimLaser() (float64, float64, bool) {
	p := s.player
	ex, ey := p.X+p.AimX*aimLaserLength, p.Y+p.AimY*aimLaserLength
	if _, t, ok := s.world.Raycast(p.X, p.Y, ex, ey); ok {
		return p.X + (ex-p.X)*t, p.Y + (ey-p.Y)*t, true
	}
	return ex, ey, false
}

func (s *Session) note(category, key, value string, num float64) {
	if s.simLog != nil {
		s.simLog.Add(s.frame, category, key, value, num)
	}
}
