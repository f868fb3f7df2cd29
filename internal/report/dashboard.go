// Package report собирает статические HTML-отчёты: дашборд «умного
// прайс-листа» и анализ временных границ тарифов.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"

	"github.com/Spok95/smart-price/internal/domain/occupancy"
	"github.com/Spok95/smart-price/internal/domain/pricing"
	"github.com/Spok95/smart-price/internal/domain/recommend"
	"github.com/Spok95/smart-price/internal/domain/sales"
	"github.com/Spok95/smart-price/internal/domain/tariff"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

var tplFuncs = template.FuncMap{
	"seq": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	},
}

var dashboardTpl = template.Must(
	template.New("dashboard.gohtml").Funcs(tplFuncs).ParseFS(templatesFS, "templates/dashboard.gohtml"))

type KPI struct {
	Checks     int
	Revenue    int
	BonusShare int
	Retention  int
}

type HeatCell struct {
	Value int
	BG    template.CSS
}

type HeatRow struct {
	Zone  string
	Cells []HeatCell
}

type Heatmap struct {
	Title string
	Rows  []HeatRow
}

type WorstPC struct {
	PC    string
	Zone  string
	Cash  int
	Bonus int
}

type Badge struct {
	Class string
	Text  string
}

// CellView — одна ценовая ячейка прайса с рекомендацией.
type CellView struct {
	Label    string // подпись «День»/«Вечер» внутри разделённой ячейки
	Empty    bool
	Price    int
	Badge    *Badge
	PeakPct  int
	BonusPct int
	Note     string
}

// TariffCol — колонка тарифа в карточке зоны: либо одна ячейка
// (ночь, автосим), либо пара день/вечер.
type TariffCol struct {
	Single  *CellView
	Day     *CellView
	Evening *CellView
}

type DayRow struct {
	Label string
	Cols  []TariffCol
}

type ZoneCard struct {
	Name    string
	Headers []string
	Rows    []DayRow
}

type DashboardData struct {
	KPI        KPI
	CashTotal  int
	BonusTotal int
	Heatmaps   []Heatmap
	Worst      []WorstPC
	Zones      []ZoneCard

	// Actions — сколько рекомендаций каждого типа выдано (для метрик).
	Actions map[recommend.Action]int
}

// колонки карточек: обычные зоны и автосим
var (
	colsStandard = []struct {
		Label string
		Code  tariff.Code
	}{
		{"1 ЧАС", tariff.OneHour},
		{"3 ЧАСА", tariff.ThreeHours},
		{"5 ЧАСОВ", tariff.FiveHours},
		{"НОЧЬ", tariff.Night},
	}
	colsAutoSim = []struct {
		Label string
		Code  tariff.Code
	}{
		{"1 ЧАС", tariff.OneHour},
		{"2 ЧАСА", tariff.TwoHours},
		{"3 ЧАСА", tariff.ThreeHours},
	}
)

const worstPCLimit = 15

// BuildDashboard считает весь view-model дашборда: KPI, теплокарты,
// аутсайдеров и прайс-карточки зон с рекомендациями.
func BuildDashboard(
	grid pricing.Grid,
	zones *pricing.Zones,
	agg *sales.Aggregator,
	grouped *occupancy.Grouped,
	market pricing.Market,
	th recommend.Thresholds,
) *DashboardData {
	d := &DashboardData{Actions: map[recommend.Action]int{}}

	checks, cash, bonus := agg.Totals()
	d.KPI = KPI{
		Checks:     checks,
		Revenue:    int(cash + bonus),
		BonusShare: int(agg.BonusSharePct()),
		Retention:  int(agg.Retention()),
	}
	d.CashTotal = int(cash)
	d.BonusTotal = int(bonus)

	zoneNames := grid.ZoneNames()
	for _, day := range []tariff.DayType{tariff.Weekday, tariff.Weekend} {
		d.Heatmaps = append(d.Heatmaps, buildHeatmap(day, zoneNames, zones, grouped))
	}

	for _, w := range agg.WorstPCs(worstPCLimit) {
		d.Worst = append(d.Worst, WorstPC{PC: w.PC, Zone: w.Zone, Cash: int(w.Cash), Bonus: int(w.Bonus)})
	}

	for _, zone := range zoneNames {
		d.Zones = append(d.Zones, d.buildZoneCard(zone, grid, zones, agg, grouped, market, th))
	}
	return d
}

func buildHeatmap(day tariff.DayType, zoneNames []string, zones *pricing.Zones, grouped *occupancy.Grouped) Heatmap {
	hm := Heatmap{Title: strings.ToUpper(string(day)) + " - Пиковая Загрузка"}
	for _, zone := range zoneNames {
		row := HeatRow{Zone: zone}
		capacity := zones.Capacity(zone)
		for h := 0; h < 24; h++ {
			val := grouped.MaxAt(day, zone, h)
			row.Cells = append(row.Cells, HeatCell{
				Value: int(val),
				BG:    heatColor(val, capacity),
			})
		}
		hm.Rows = append(hm.Rows, row)
	}
	return hm
}

// heatColor — цвет ячейки теплокарты. Интенсивность для подкраски
// обрезается единицей, само значение — нет.
func heatColor(val float64, capacity int) template.CSS {
	if capacity <= 0 || val <= 0 {
		return "#222"
	}
	intensity := val / float64(capacity)
	if intensity > 1 {
		intensity = 1
	}
	switch {
	case intensity >= 0.9:
		return template.CSS(fmt.Sprintf("rgba(255, 0, 0, %.2f)", intensity))
	case intensity > 0.7:
		return template.CSS(fmt.Sprintf("rgba(255, 77, 77, %.2f)", intensity))
	case intensity > 0.4:
		return template.CSS(fmt.Sprintf("rgba(255, 234, 0, %.2f)", intensity))
	default:
		return template.CSS(fmt.Sprintf("rgba(0, 230, 118, %.2f)", intensity))
	}
}

func isAutoSimZone(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "авто") || strings.Contains(n, "auto")
}

func (d *DashboardData) buildZoneCard(
	zone string,
	grid pricing.Grid,
	zones *pricing.Zones,
	agg *sales.Aggregator,
	grouped *occupancy.Grouped,
	market pricing.Market,
	th recommend.Thresholds,
) ZoneCard {
	cols := colsStandard
	if isAutoSimZone(zone) {
		cols = colsAutoSim
	}

	card := ZoneCard{Name: zone}
	for _, c := range cols {
		card.Headers = append(card.Headers, c.Label)
	}

	for _, day := range grid.DayTypes(zone) {
		row := DayRow{Label: capitalize(string(day))}
		for _, c := range cols {
			var col TariffCol
			switch {
			case isAutoSimZone(zone):
				col.Single = d.buildCell(zone, c.Code, day, tariff.SlotAllDay, "", grid, zones, agg, grouped, market, th)
			case c.Code == tariff.Night:
				col.Single = d.buildCell(zone, c.Code, day, tariff.SlotNight, "", grid, zones, agg, grouped, market, th)
			default:
				col.Day = d.buildCell(zone, c.Code, day, tariff.SlotDay, "День", grid, zones, agg, grouped, market, th)
				col.Evening = d.buildCell(zone, c.Code, day, tariff.SlotEvening, "Вечер", grid, zones, agg, grouped, market, th)
			}
			row.Cols = append(row.Cols, col)
		}
		card.Rows = append(card.Rows, row)
	}
	return card
}

func (d *DashboardData) buildCell(
	zone string, code tariff.Code, day tariff.DayType, slot tariff.Slot, label string,
	grid pricing.Grid,
	zones *pricing.Zones,
	agg *sales.Aggregator,
	grouped *occupancy.Grouped,
	market pricing.Market,
	th recommend.Thresholds,
) *CellView {
	price, _ := grid.Price(pricing.Key{Zone: zone, Code: code, Day: day, Slot: slot})
	if price == 0 && slot == tariff.SlotAllDay {
		// у автосима цена могла лечь в другой слот — подбираем любую
		for _, s := range []tariff.Slot{tariff.SlotDay, tariff.SlotEvening, tariff.SlotNight} {
			if p, ok := grid.Price(pricing.Key{Zone: zone, Code: code, Day: day, Slot: s}); ok && p > 0 {
				price = p
				break
			}
		}
	}
	if price == 0 {
		return &CellView{Label: label, Empty: true}
	}

	bucket := agg.Bucket(pricing.Key{Zone: zone, Code: code, Day: day, Slot: slot})
	cellRev := bucket.Cash + bucket.Bonus
	bonusPct := 0.0
	if cellRev > 0 {
		bonusPct = bucket.Bonus / cellRev * 100
	}

	hours := slot.HourRange(code)
	capacity := zones.Capacity(zone)
	in := recommend.Input{
		PeakLoadPct:   grouped.PeakPct(day, zone, hours, capacity),
		AvgLoadPct:    grouped.AvgPct(day, zone, hours, capacity),
		BonusSharePct: bonusPct,
		Price:         price,
	}
	if info, ok := market[pricing.MarketKey{Zone: zone, Code: code}]; ok {
		in.Market = &recommend.MarketInfo{Fair: info.Fair}
	}

	res := recommend.Recommend(th, in)
	d.Actions[res.Action]++

	cv := &CellView{
		Label:    label,
		Price:    int(price),
		PeakPct:  int(in.PeakLoadPct),
		BonusPct: int(bonusPct),
		Note:     res.Note,
	}
	switch res.Action {
	case recommend.ActionRaise:
		cv.Badge = &Badge{Class: "rec-up", Text: fmt.Sprintf("▲ %d", int(res.NewPrice))}
	case recommend.ActionPromo:
		cv.Badge = &Badge{Class: "rec-promo", Text: fmt.Sprintf("▼ %d", int(res.NewPrice))}
	case recommend.ActionBonusUp:
		cv.Badge = &Badge{Class: "rec-bonus", Text: "★ BONUS"}
	case recommend.ActionWarn:
		cv.Badge = &Badge{Class: "rec-warn", Text: "⚠ РЫНОК"}
	}
	return cv
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// RenderDashboard пишет готовый HTML-дашборд.
func RenderDashboard(w io.Writer, d *DashboardData) error {
	return dashboardTpl.Execute(w, d)
}

// sortedActions — детерминированный порядок для логов.
func (d *DashboardData) sortedActions() []string {
	out := make([]string, 0, len(d.Actions))
	for a, n := range d.Actions {
		out = append(out, fmt.Sprintf("%s:%d", a, n))
	}
	sort.Strings(out)
	return out
}

// Summary — краткая сводка решений для лога.
func (d *DashboardData) Summary() string {
	return strings.Join(d.sortedActions(), " ")
}
