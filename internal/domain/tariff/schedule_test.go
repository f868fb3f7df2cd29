package tariff

import (
	"testing"
	"time"
)

func ts(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestDayTypeOf(t *testing.T) {
	// 2025-01-10 — пятница, 2025-01-13 — понедельник
	cases := []struct {
		name string
		t    time.Time
		want DayType
	}{
		{"friday 16:59", ts(2025, time.January, 10, 16, 59), Weekday},
		{"friday 17:00", ts(2025, time.January, 10, 17, 0), Weekend},
		{"saturday noon", ts(2025, time.January, 11, 12, 0), Weekend},
		{"sunday 03:00", ts(2025, time.January, 12, 3, 0), Weekend},
		{"monday 07:59", ts(2025, time.January, 13, 7, 59), Weekend},
		{"monday 08:00", ts(2025, time.January, 13, 8, 0), Weekday},
		{"tuesday 02:00", ts(2025, time.January, 14, 2, 0), Weekday},
		{"wednesday 23:00", ts(2025, time.January, 15, 23, 0), Weekday},
		{"thursday 00:00", ts(2025, time.January, 16, 0, 0), Weekday},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DayTypeOf(c.t); got != c.want {
				t.Errorf("DayTypeOf(%v) = %s, want %s", c.t, got, c.want)
			}
		})
	}
}

func TestSlotOf(t *testing.T) {
	day := func(h int) time.Time { return ts(2025, time.January, 14, h, 0) }

	cases := []struct {
		name string
		t    time.Time
		code Code
		want Slot
	}{
		{"3h at 15 is day", day(15), ThreeHours, SlotDay},
		{"3h at 16 is evening", day(16), ThreeHours, SlotEvening},
		{"5h at 13 is day", day(13), FiveHours, SlotDay},
		{"5h at 14 is evening", day(14), FiveHours, SlotEvening},
		{"1h at 16 is day", day(16), OneHour, SlotDay},
		{"1h at 17 is evening", day(17), OneHour, SlotEvening},
		{"night shoulder 02:00", day(2), OneHour, SlotEvening},
		{"day starts at 04:00", day(4), OneHour, SlotDay},
		{"night tariff ignores hour", day(12), Night, SlotNight},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SlotOf(c.t, c.code); got != c.want {
				t.Errorf("SlotOf(%v, %s) = %s, want %s", c.t, c.code, got, c.want)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	cases := []struct {
		label string
		want  Code
		ok    bool
	}{
		{"Базовый", OneHour, true},
		{"Пакет 1 час", OneHour, true},
		{"2 часа VIP", TwoHours, true},
		{"3 часа", ThreeHours, true},
		{"5 часов (выходные)", FiveHours, true},
		{"НОЧЬ", Night, true},
		{"Автосим 1 час", OneHour, true}, // метка автосима код не перебивает
		{"Автосим 2 часа", TwoHours, true},
		{"Автосим", "", false}, // без часов кода нет
		{"Абонемент", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		t.Run(c.label, func(t *testing.T) {
			got, ok := Match(c.label)
			if got != c.want || ok != c.ok {
				t.Errorf("Match(%q) = (%s, %v), want (%s, %v)", c.label, got, ok, c.want, c.ok)
			}
		})
	}
}

func TestIsAutoSim(t *testing.T) {
	cases := []struct {
		label string
		want  bool
	}{
		{"Автосим 2 часа", true},
		{"АВТОСИМ", true},
		{"1 час", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsAutoSim(c.label); got != c.want {
			t.Errorf("IsAutoSim(%q) = %v, want %v", c.label, got, c.want)
		}
	}

	// длительность автосима берётся из часового кода
	if code, ok := Match("Автосим 2 часа"); !ok || code.Duration() != 2 {
		t.Errorf("autosim 2h duration = %v (%v), want 2", code, ok)
	}
}

func TestHourRange(t *testing.T) {
	day := SlotDay.HourRange(ThreeHours)
	if day[0] != 4 || day[len(day)-1] != 15 {
		t.Errorf("day range for 3h = %v, want 4..15", day)
	}
	eve := SlotEvening.HourRange(FiveHours)
	if eve[0] != 14 || eve[len(eve)-1] != 3 {
		t.Errorf("evening range for 5h = %v, want 14..23,0..3", eve)
	}
	if got := len(SlotAllDay.HourRange(OneHour)); got != 24 {
		t.Errorf("all_day covers %d hours, want 24", got)
	}
	if got := len(SlotNight.HourRange(Night)); got != 10 {
		t.Errorf("night covers %d hours, want 10", got)
	}
}
