package occupancy

import (
	"time"

	"github.com/Spok95/smart-price/internal/domain/tariff"
)

// HourKey — ячейка почасовой занятости: дата × зона × час.
type HourKey struct {
	Date string // YYYY-MM-DD
	Zone string
	Hour int
}

// GroupKey — ячейка сгруппированной статистики: тип дня × зона × час.
type GroupKey struct {
	Day  tariff.DayType
	Zone string
	Hour int
}

// HourStat — свёртка конкурентности по ячейке группы.
// Max не убывает при досыпании новых сэмплов.
type HourStat struct {
	Max   float64
	Sum   float64
	Count int
}

type ZoneHour struct {
	Zone string
	Hour int
}

// Aggregator накапливает минуты занятости по часовым корзинам.
// Минуты одной корзины могут превышать 60: это сумма по всем ПК зоны.
type Aggregator struct {
	Minutes map[HourKey]float64
}

func NewAggregator() *Aggregator {
	return &Aggregator{Minutes: map[HourKey]float64{}}
}

// AddSession раскладывает сессию по часовым корзинам с точностью до минут.
// end — фактический конец, если известен; иначе берём start + номинальную
// длительность тарифа. Сессия через полночь корректно делится между датами.
func (a *Aggregator) AddSession(zone string, code tariff.Code, start time.Time, end *time.Time) {
	effEnd := start.Add(time.Duration(code.Duration() * float64(time.Hour)))
	if end != nil && end.After(start) {
		effEnd = *end
	}

	cur := start.Truncate(time.Hour)
	for cur.Before(effEnd) {
		slotEnd := cur.Add(time.Hour)

		ovStart := start
		if cur.After(ovStart) {
			ovStart = cur
		}
		ovEnd := effEnd
		if slotEnd.Before(ovEnd) {
			ovEnd = slotEnd
		}

		if mins := ovEnd.Sub(ovStart).Minutes(); mins > 0 {
			k := HourKey{Date: cur.Format("2006-01-02"), Zone: zone, Hour: cur.Hour()}
			a.Minutes[k] += mins
		}
		cur = slotEnd
	}
}

// Merge суммирует минуты другого шарда (шардирование по зонам безопасно:
// корзины разных зон не пересекаются).
func (a *Aggregator) Merge(other *Aggregator) {
	for k, m := range other.Minutes {
		a.Minutes[k] += m
	}
}

// Grouped — свёртка занятости по типу дня, плюс глобальный максимум без
// учёта типа дня.
type Grouped struct {
	Stats     map[GroupKey]*HourStat
	GlobalMax map[ZoneHour]float64
}

func NewGrouped() *Grouped {
	return &Grouped{
		Stats:     map[GroupKey]*HourStat{},
		GlobalMax: map[ZoneHour]float64{},
	}
}

// Group сворачивает почасовые минуты в статистику по типу дня.
// Тип дня определяется по восстановленному моменту «дата в этот час» тем же
// правилом, что и для продаж: поздние часы пятницы уходят в выходные, даже
// если сессия началась в будни. Группировка идёт по наблюдённому часу,
// а не по сессии-источнику.
func Group(a *Aggregator) *Grouped {
	g := NewGrouped()
	for k, mins := range a.Minutes {
		date, err := time.Parse("2006-01-02", k.Date)
		if err != nil {
			continue
		}
		at := time.Date(date.Year(), date.Month(), date.Day(), k.Hour, 0, 0, 0, time.UTC)
		g.Fold(tariff.DayTypeOf(at), k.Zone, k.Hour, mins/60.0)
	}
	return g
}

// Fold вносит один сэмпл конкурентности (минуты/60) в группу.
func (g *Grouped) Fold(day tariff.DayType, zone string, hour int, conc float64) {
	gk := GroupKey{Day: day, Zone: zone, Hour: hour}
	st, ok := g.Stats[gk]
	if !ok {
		st = &HourStat{}
		g.Stats[gk] = st
	}
	if conc > st.Max {
		st.Max = conc
	}
	st.Sum += conc
	st.Count++

	zh := ZoneHour{Zone: zone, Hour: hour}
	if conc > g.GlobalMax[zh] {
		g.GlobalMax[zh] = conc
	}
}

// Merge объединяет группы: max через max, суммы и счётчики — сложением.
// Ассоциативно и коммутативно, пригодно для параллельной свёртки.
func (g *Grouped) Merge(other *Grouped) {
	for gk, ost := range other.Stats {
		st, ok := g.Stats[gk]
		if !ok {
			st = &HourStat{}
			g.Stats[gk] = st
		}
		if ost.Max > st.Max {
			st.Max = ost.Max
		}
		st.Sum += ost.Sum
		st.Count += ost.Count
	}
	for zh, m := range other.GlobalMax {
		if m > g.GlobalMax[zh] {
			g.GlobalMax[zh] = m
		}
	}
}

// MaxAt — пиковая конкурентность ячейки (0, если наблюдений не было).
func (g *Grouped) MaxAt(day tariff.DayType, zone string, hour int) float64 {
	if st, ok := g.Stats[GroupKey{Day: day, Zone: zone, Hour: hour}]; ok {
		return st.Max
	}
	return 0
}

// PeakPct — пиковая загрузка зоны в процентах от ёмкости по набору часов.
// Выше 100% не обрезаем: перегруз — сигнал о кривых данных, его видно.
func (g *Grouped) PeakPct(day tariff.DayType, zone string, hours []int, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	peak := 0.0
	for _, h := range hours {
		if m := g.MaxAt(day, zone, h); m > peak {
			peak = m
		}
	}
	return peak / float64(capacity) * 100
}

// AvgPct — средняя загрузка по набору часов: среднее всех сэмплов
// конкурентности, делённое на ёмкость.
func (g *Grouped) AvgPct(day tariff.DayType, zone string, hours []int, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	sum, count := 0.0, 0
	for _, h := range hours {
		if st, ok := g.Stats[GroupKey{Day: day, Zone: zone, Hour: h}]; ok {
			sum += st.Sum
			count += st.Count
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count) / float64(capacity) * 100
}
