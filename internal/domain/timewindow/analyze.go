package timewindow

import (
	"fmt"
	"sort"
)

// Key — ячейка почасового спроса: зона × тип дня × тариф (id из API).
type Key struct {
	Zone   int64
	Day    int64
	Tariff int64
}

// Window — действующее временное окно тарифа в дробных часах
// (08:30 -> 8.5). End < Start означает окно через полночь.
type Window struct {
	Start float64
	End   float64
}

// Usage — гистограммы покупок по часу покупки.
type Usage map[Key]*[24]int

func (u Usage) Add(k Key, hour int) {
	if hour < 0 || hour > 23 {
		return
	}
	h, ok := u[k]
	if !ok {
		h = &[24]int{}
		u[k] = h
	}
	h[hour]++
}

// Names — человекочитаемые подписи для отчёта.
type Names struct {
	Zones   map[int64]string
	Days    map[int64]string
	Tariffs map[int64]string
}

func (n Names) zone(id int64) string   { return orID(n.Zones, id) }
func (n Names) day(id int64) string    { return orID(n.Days, id) }
func (n Names) tariff(id int64) string { return orID(n.Tariffs, id) }

func orID(m map[int64]string, id int64) string {
	if s, ok := m[id]; ok {
		return s
	}
	return fmt.Sprintf("ID %d", id)
}

// Suggestion — рекомендация по сдвигу границ тарифного окна.
type Suggestion struct {
	Zone    string
	Day     string
	Tariff  string
	Current string
	Rec     string
	Reason  string
	Score   int
}

const (
	cliffRatio   = 1.5 // всплеск после закрытия: во сколько раз больше, чем до
	cliffMinimum = 5   // и не меньше стольких чеков
	peakMinimum  = 5   // мёртвый старт интересен только при живом пике
)

// Analyze ищет две аномалии на границах тарифных окон:
// «эффект обрыва» — всплеск покупок сразу после закрытия окна
// (окно стоит продлить) и «мёртвый старт» — ноль покупок в первые
// два часа при заметном пике (начало стоит сдвинуть).
// Результат отсортирован по убыванию потенциала.
func Analyze(usage Usage, windows map[Key]Window, names Names) []Suggestion {
	var out []Suggestion

	for k, hist := range usage {
		w, ok := windows[k]
		if !ok {
			continue
		}
		s, e := int(w.Start), int(w.End)

		at := func(h int) int {
			if h < 0 || h > 23 {
				return 0
			}
			return hist[h]
		}

		// 1. Эффект обрыва: продажи в 2 часа после закрытия
		post := at(e) + at(e+1)
		pre := at(e-1) + at(e-2)
		if float64(post) > float64(pre)*cliffRatio && post > cliffMinimum {
			out = append(out, Suggestion{
				Zone:    names.zone(k.Zone),
				Day:     names.day(k.Day),
				Tariff:  names.tariff(k.Tariff),
				Current: fmt.Sprintf("%02d:00 - %02d:00", s, e),
				Rec:     fmt.Sprintf("Продлить до %d:00", e+2),
				Reason:  fmt.Sprintf("Всплеск (%d чек.) сразу после закрытия.", post),
				Score:   post * 100,
			})
		}

		// 2. Мёртвый старт: пусто в первые 2 часа окна
		startSales := at(s) + at(s+1)
		peak := 0
		for _, c := range hist {
			if c > peak {
				peak = c
			}
		}
		if startSales == 0 && peak > peakMinimum {
			out = append(out, Suggestion{
				Zone:    names.zone(k.Zone),
				Day:     names.day(k.Day),
				Tariff:  names.tariff(k.Tariff),
				Current: fmt.Sprintf("%02d:00 - %02d:00", s, e),
				Rec:     fmt.Sprintf("Сдвинуть начало на %d:00", s+2),
				Reason:  "Нет продаж в первые 2 часа.",
				Score:   0,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Zone != out[j].Zone {
			return out[i].Zone < out[j].Zone
		}
		return out[i].Tariff < out[j].Tariff
	})
	return out
}
