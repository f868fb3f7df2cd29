package sales

import (
	"sort"
	"strings"

	"github.com/Spok95/smart-price/internal/domain/pricing"
	"github.com/Spok95/smart-price/internal/domain/tariff"
)

// Aggregator собирает продажи в плоские бакеты по составному ключу.
// Тип дня берётся от старта сессии: продажа одна и относится к одному
// типу дня, даже если сама сессия физически пересекает границу выходных
// (занятость при этом считается по часам — см. пакет occupancy).
type Aggregator struct {
	Buckets map[pricing.Key]*Bucket

	phones map[string]int
	pcs    map[string]*PCRevenue
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		Buckets: map[pricing.Key]*Bucket{},
		phones:  map[string]int{},
		pcs:     map[string]*PCRevenue{},
	}
}

// Add учитывает продажу в бакете и побочных счётчиках.
// Зона и код тарифа уже разрешены вызывающей стороной.
func (a *Aggregator) Add(r Record, zone string, code tariff.Code) {
	slot := tariff.SlotOf(r.Start, code)
	if tariff.IsAutoSim(r.Tariff) {
		slot = tariff.SlotAllDay
	}
	k := pricing.Key{
		Zone: zone,
		Code: code,
		Day:  tariff.DayTypeOf(r.Start),
		Slot: slot,
	}
	b := a.bucket(k)
	b.Count++
	b.Hours += code.Duration()
	b.Cash += r.Cash
	b.Bonus += r.Bonus

	// телефоны короче 6 символов считаем незаполненными
	if phone := strings.TrimSpace(r.Phone); len(phone) >= 6 {
		a.phones[phone]++
	}

	if pc := pricing.Normalize(r.PC); pc != "" {
		rev, ok := a.pcs[pc]
		if !ok {
			rev = &PCRevenue{PC: pc, Zone: zone}
			a.pcs[pc] = rev
		}
		rev.Cash += r.Cash
		rev.Bonus += r.Bonus
	}
}

func (a *Aggregator) bucket(k pricing.Key) *Bucket {
	b, ok := a.Buckets[k]
	if !ok {
		b = &Bucket{}
		a.Buckets[k] = b
	}
	return b
}

// Bucket возвращает бакет ячейки (нулевой, если продаж не было).
func (a *Aggregator) Bucket(k pricing.Key) Bucket {
	if b, ok := a.Buckets[k]; ok {
		return *b
	}
	return Bucket{}
}

// Totals — сводка для KPI-карточек: чеки, рубли, бонусы.
func (a *Aggregator) Totals() (count int, cash, bonus float64) {
	for _, b := range a.Buckets {
		count += b.Count
		cash += b.Cash
		bonus += b.Bonus
	}
	return
}

// BonusSharePct — доля бонусов в общей выручке, в процентах.
func (a *Aggregator) BonusSharePct() float64 {
	_, cash, bonus := a.Totals()
	total := cash + bonus
	if total == 0 {
		return 0
	}
	return bonus / total * 100
}

// Retention — процент гостей с повторными покупками среди всех,
// у кого известен телефон.
func (a *Aggregator) Retention() float64 {
	if len(a.phones) == 0 {
		return 0
	}
	repeats := 0
	for _, c := range a.phones {
		if c > 1 {
			repeats++
		}
	}
	return float64(repeats) / float64(len(a.phones)) * 100
}

// WorstPCs — n ПК с минимальной суммарной выручкой, по возрастанию.
func (a *Aggregator) WorstPCs(n int) []PCRevenue {
	out := make([]PCRevenue, 0, len(a.pcs))
	for _, r := range a.pcs {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total() != out[j].Total() {
			return out[i].Total() < out[j].Total()
		}
		return out[i].PC < out[j].PC
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// Merge вливает агрегат другого шарда. Все операции — суммирование,
// поэтому порядок слияния не важен.
func (a *Aggregator) Merge(other *Aggregator) {
	for k, ob := range other.Buckets {
		b := a.bucket(k)
		b.Count += ob.Count
		b.Hours += ob.Hours
		b.Cash += ob.Cash
		b.Bonus += ob.Bonus
	}
	for p, c := range other.phones {
		a.phones[p] += c
	}
	for pc, or := range other.pcs {
		rev, ok := a.pcs[pc]
		if !ok {
			rev = &PCRevenue{PC: or.PC, Zone: or.Zone}
			a.pcs[pc] = rev
		}
		rev.Cash += or.Cash
		rev.Bonus += or.Bonus
	}
}
