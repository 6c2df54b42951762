package game

import "math"

// ItemKind is a pickup effect.
type ItemKind uint8

const (
	ItemFireRate ItemKind = iota
	ItemMultiShot
	ItemDamage
	ItemBounce
	ItemSpeed
	ItemOrbital
	ItemDualGun
)

// commonDrops are what regular enemies and the final boss leave behind.
var commonDrops = [...]ItemKind{ItemFireRate, ItemMultiShot, ItemDamage, ItemBounce, ItemSpeed}

var itemNames = [...]string{
	ItemFireRate:  "+Fire Rate",
	ItemMultiShot: "+Multi-Shot",
	ItemDamage:    "+Damage",
	ItemBounce:    "+Bounce",
	ItemSpeed:     "+Speed",
	ItemOrbital:   "ORBITAL SAW",
	ItemDualGun:   "DUAL GUN",
}

func (k ItemKind) String() string {
	if int(k) < len(itemNames) {
		return itemNames[k]
	}
	return "?"
}

// special reports whether the item is a boss-only weapon.
func (k ItemKind) special() bool {
	return k == ItemOrbital || k == ItemDualGun
}

// Item is a pickup lying in the world.
type Item struct {
	X, Y float64
	Kind ItemKind
}

// Size is the pickup radius.
func (it *Item) Size() float64 {
	if it.Kind.special() {
		return 20
	}
	return 15
}

func (it *Item) touches(p *Player) bool {
	return math.Hypot(it.X-p.X, it.Y-p.Y) < it.Size()+p.Size
}

// apply grants the item's effect to p.
func (k ItemKind) apply(p *Player) {
	switch k {
	case ItemFireRate:
		p.FireRate = max(minFireRate, p.FireRate-2)
	case ItemMultiShot:
		p.MultiShot++
	case ItemDamage:
		p.Damage += 2
	case ItemBounce:
		p.Bounces = min(maxBounces, p.Bounces+1)
	case ItemSpeed:
		p.Speed = math.Min(playerMaxSpeed, p.Speed+0.5)
	case ItemOrbital:
		p.HasOrbital = true
	case ItemDualGun:
		p.HasDualGun = true
	}
	p.ItemsPicked++
}

// dropFor picks what a dead enemy leaves behind.
func dropFor(e *Enemy, rng randSource) ItemKind {
	if e.Boss && !e.Final {
		if e.BossID%2 == 1 {
			return ItemOrbital
		}
		return ItemDualGun
	}
	return commonDrops[rng.Intn(len(commonDrops))]
}

// Popup is floating pickup text.
type Popup struct {
	Text     string
	X, Y     float64
	Kind     ItemKind
	Lifetime int
}

func (p *Popup) step() {
	p.Lifetime--
	p.Y -= popupRiseSpeed
}

// Alpha fades the popup out over its lifetime.
func (p *Popup) Alpha() float64 {
	return float64(p.Lifetime) / popupLifetime
}
