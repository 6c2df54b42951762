package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

const (
	feedPanelWidth = 300
	feedMaxEntries = 40
	feedLineHeight = 14
	feedVisible    = 8
)

// FeedKind groups feed entries for colouring.
type FeedKind uint8

const (
	FeedInfo FeedKind = iota
	FeedKill
	FeedBoss
	FeedItem
	FeedWarn
)

var feedColors = [...]color.RGBA{
	FeedInfo: colornames.Lightsteelblue,
	FeedKill: colornames.Tomato,
	FeedBoss: colornames.Orchid,
	FeedItem: colornames.Gold,
	FeedWarn: colornames.Orange,
}

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Frame   int
	Kind    FeedKind
	Message string
}

// EventFeed is a ring buffer of recent gameplay events rendered on-screen.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (f *EventFeed) Add(frame int, kind FeedKind, msg string) {
	f.entries[f.head] = FeedEntry{Frame: frame, Kind: kind, Message: msg}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// Len returns the number of stored entries.
func (f *EventFeed) Len() int { return f.count }

// Draw renders the newest entries in a panel anchored to the bottom-right.
func (f *EventFeed) Draw(screen *ebiten.Image, screenW, screenH int) {
	entries := f.Recent()
	if len(entries) == 0 {
		return
	}
	if len(entries) > feedVisible {
		entries = entries[len(entries)-feedVisible:]
	}
	panelH := len(entries)*feedLineHeight + 8
	x := screenW - feedPanelWidth - 10
	y := screenH - panelH - 10

	vector.FillRect(screen, float32(x), float32(y), feedPanelWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 24, A: 200}, false)
	vector.StrokeLine(screen, float32(x), float32(y), float32(x), float32(y+panelH), 1, colornames.Slategray, false)

	ly := y + 4
	for _, e := range entries {
		vector.FillRect(screen, float32(x+5), float32(ly+4), 3, 6, feedColors[e.Kind], false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Frame, e.Message), x+12, ly-1)
		ly += feedLineHeight
	}
}
