package game

import "testing"

func TestEventFeedKeepsOrder(t *testing.T) {
	f := NewEventFeed()
	f.Add(1, FeedInfo, "a")
	f.Add(2, FeedKill, "b")
	got := f.Recent()
	if len(got) != 2 || got[0].Message != "a" || got[1].Message != "b" {
		t.Fatalf("unexpected entries %+v", got)
	}
}

func TestEventFeedWrapsAtCapacity(t *testing.T) {
	f := NewEventFeed()
	for i := 0; i < feedMaxEntries+5; i++ {
		f.Add(i, FeedInfo, "x")
	}
	if f.Len() != feedMaxEntries {
		t.Fatalf("len = %d, want %d", f.Len(), feedMaxEntries)
	}
	got := f.Recent()
	if got[0].Frame != 5 {
		t.Fatalf("oldest frame = %d, want 5", got[0].Frame)
	}
	if got[len(got)-1].Frame != feedMaxEntries+4 {
		t.Fatalf("newest frame = %d, want %d", got[len(got)-1].Frame, feedMaxEntries+4)
	}
}
