package timewindow

import "testing"

func names() Names {
	return Names{
		Zones:   map[int64]string{1: "Standard"},
		Days:    map[int64]string{1: "Будни"},
		Tariffs: map[int64]string{1: "3 часа"},
	}
}

func TestCliffEffect(t *testing.T) {
	u := Usage{}
	k := Key{Zone: 1, Day: 1, Tariff: 1}
	// окно 08–17, всплеск в 17–18; утро живое, чтобы не сработал «мёртвый старт»
	u.Add(k, 8)
	for i := 0; i < 2; i++ {
		u.Add(k, 15)
	}
	for i := 0; i < 8; i++ {
		u.Add(k, 17)
	}
	windows := map[Key]Window{k: {Start: 8, End: 17}}

	got := Analyze(u, windows, names())
	if len(got) != 1 {
		t.Fatalf("suggestions = %d, want 1", len(got))
	}
	s := got[0]
	if s.Rec != "Продлить до 19:00" {
		t.Errorf("rec = %q, want extend to 19:00", s.Rec)
	}
	if s.Score != 800 {
		t.Errorf("score = %d, want 800", s.Score)
	}
}

func TestCliffBelowMinimumIgnored(t *testing.T) {
	u := Usage{}
	k := Key{Zone: 1, Day: 1, Tariff: 1}
	u.Add(k, 17)
	u.Add(k, 17)
	windows := map[Key]Window{k: {Start: 8, End: 17}}

	if got := Analyze(u, windows, names()); len(got) != 0 {
		t.Errorf("2 checks after close must not trigger, got %+v", got)
	}
}

func TestDeadStart(t *testing.T) {
	u := Usage{}
	k := Key{Zone: 1, Day: 1, Tariff: 1}
	// пусто в 08–09, пик в 14
	for i := 0; i < 10; i++ {
		u.Add(k, 14)
	}
	windows := map[Key]Window{k: {Start: 8, End: 16}}

	got := Analyze(u, windows, names())
	if len(got) != 1 {
		t.Fatalf("suggestions = %d, want 1", len(got))
	}
	if got[0].Rec != "Сдвинуть начало на 10:00" {
		t.Errorf("rec = %q, want shift to 10:00", got[0].Rec)
	}
}

func TestNoWindowNoSuggestion(t *testing.T) {
	u := Usage{}
	k := Key{Zone: 1, Day: 1, Tariff: 1}
	for i := 0; i < 10; i++ {
		u.Add(k, 18)
	}
	if got := Analyze(u, map[Key]Window{}, names()); len(got) != 0 {
		t.Errorf("usage without a known window produced %+v", got)
	}
}

func TestSortedByScoreDesc(t *testing.T) {
	u := Usage{}
	k1 := Key{Zone: 1, Day: 1, Tariff: 1}
	k2 := Key{Zone: 1, Day: 1, Tariff: 2}
	u.Add(k1, 8)
	u.Add(k2, 8)
	for i := 0; i < 6; i++ {
		u.Add(k1, 17)
	}
	for i := 0; i < 20; i++ {
		u.Add(k2, 17)
	}
	windows := map[Key]Window{
		k1: {Start: 8, End: 17},
		k2: {Start: 8, End: 17},
	}
	n := names()
	n.Tariffs[2] = "5 часов"

	got := Analyze(u, windows, n)
	if len(got) != 2 || got[0].Score < got[1].Score {
		t.Fatalf("want descending scores, got %+v", got)
	}
}
