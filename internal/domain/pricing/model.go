package pricing

import (
	"sort"
	"strings"

	"github.com/Spok95/smart-price/internal/domain/tariff"
)

// Key — плоский составной ключ ячейки прайса:
// зона × тариф × тип дня × слот.
type Key struct {
	Zone string
	Code tariff.Code
	Day  tariff.DayType
	Slot tariff.Slot
}

// Grid — прайс-лист. На один ключ — одна цена, последняя запись побеждает.
type Grid map[Key]float64

func (g Grid) Set(k Key, price float64) { g[k] = price }

func (g Grid) Price(k Key) (float64, bool) {
	p, ok := g[k]
	return p, ok
}

// ZoneNames возвращает отсортированный список зон, встречающихся в прайсе.
func (g Grid) ZoneNames() []string {
	seen := map[string]struct{}{}
	var names []string
	for k := range g {
		if _, ok := seen[k.Zone]; !ok {
			seen[k.Zone] = struct{}{}
			names = append(names, k.Zone)
		}
	}
	sort.Strings(names)
	return names
}

// DayTypes — типы дня, для которых у зоны есть хоть одна цена.
// Будни сортируются раньше выходных.
func (g Grid) DayTypes(zone string) []tariff.DayType {
	seen := map[tariff.DayType]struct{}{}
	for k := range g {
		if k.Zone == zone {
			seen[k.Day] = struct{}{}
		}
	}
	var out []tariff.DayType
	for _, d := range []tariff.DayType{tariff.Weekday, tariff.Weekend} {
		if _, ok := seen[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Tariffs — уникальные пары зона+тариф из прайса (для шаблона конкурентов).
func (g Grid) Tariffs() []MarketKey {
	seen := map[MarketKey]struct{}{}
	var out []MarketKey
	for k := range g {
		mk := MarketKey{Zone: k.Zone, Code: k.Code}
		if _, ok := seen[mk]; !ok {
			seen[mk] = struct{}{}
			out = append(out, mk)
		}
	}
	return out
}

type Zone struct {
	Name     string
	Capacity int
	PCs      map[string]struct{}
}

// Zones хранит зоны и индекс ПК→зона с нормализованными именами ПК.
type Zones struct {
	byName map[string]*Zone
	pcZone map[string]string
}

func NewZones() *Zones {
	return &Zones{
		byName: map[string]*Zone{},
		pcZone: map[string]string{},
	}
}

// AddPCs регистрирует ПК в зоне; ёмкость зоны — число её ПК.
func (z *Zones) AddPCs(zone string, pcs []string) {
	zn, ok := z.byName[zone]
	if !ok {
		zn = &Zone{Name: zone, PCs: map[string]struct{}{}}
		z.byName[zone] = zn
	}
	for _, pc := range pcs {
		n := Normalize(pc)
		if n == "" {
			continue
		}
		zn.PCs[n] = struct{}{}
		z.pcZone[n] = zone
	}
	zn.Capacity = len(zn.PCs)
}

// ZoneOfPC возвращает зону ПК. Незнакомые ПК молча выпадают из статистики.
func (z *Zones) ZoneOfPC(pc string) (string, bool) {
	name, ok := z.pcZone[Normalize(pc)]
	return name, ok
}

func (z *Zones) Capacity(zone string) int {
	if zn, ok := z.byName[zone]; ok {
		return zn.Capacity
	}
	return 0
}

func (z *Zones) Empty() bool { return len(z.byName) == 0 }

// Normalize приводит имя ПК/зоны к ключевому виду.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MarketKey — ключ рыночной (конкурентной) цены: зона × тариф.
type MarketKey struct {
	Zone string
	Code tariff.Code
}

// MarketInfo — «справедливая» цена: средняя по конкурентам × коэффициент.
type MarketInfo struct {
	Fair        float64
	RawAvg      float64
	Coefficient float64
}

type Market map[MarketKey]MarketInfo
