package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Spok95/smart-price/internal/domain/occupancy"
	"github.com/Spok95/smart-price/internal/domain/pricing"
	"github.com/Spok95/smart-price/internal/domain/recommend"
	"github.com/Spok95/smart-price/internal/domain/sales"
	"github.com/Spok95/smart-price/internal/domain/tariff"
	"github.com/Spok95/smart-price/internal/domain/timewindow"
)

func fixture() (pricing.Grid, *pricing.Zones, *sales.Aggregator, *occupancy.Grouped) {
	grid := pricing.Grid{}
	grid.Set(pricing.Key{Zone: "Standard", Code: tariff.OneHour, Day: tariff.Weekday, Slot: tariff.SlotDay}, 150)
	grid.Set(pricing.Key{Zone: "Standard", Code: tariff.OneHour, Day: tariff.Weekday, Slot: tariff.SlotEvening}, 200)

	zones := pricing.NewZones()
	zones.AddPCs("Standard", []string{"PC-01", "PC-02"})

	agg := sales.NewAggregator()
	agg.Add(sales.Record{
		PC:    "PC-01",
		Start: time.Date(2025, time.January, 14, 12, 0, 0, 0, time.UTC),
		Cash:  150, Bonus: 50, Phone: "79110000000",
	}, "Standard", tariff.OneHour)

	grouped := occupancy.NewGrouped()
	grouped.Fold(tariff.Weekday, "Standard", 12, 2) // 100% загрузка из 2 ПК
	return grid, zones, agg, grouped
}

func TestBuildDashboard(t *testing.T) {
	grid, zones, agg, grouped := fixture()
	d := BuildDashboard(grid, zones, agg, grouped, nil, recommend.Defaults())

	if d.KPI.Checks != 1 || d.KPI.Revenue != 200 || d.KPI.BonusShare != 25 {
		t.Errorf("KPI = %+v", d.KPI)
	}
	if len(d.Zones) != 1 || d.Zones[0].Name != "Standard" {
		t.Fatalf("zones = %+v", d.Zones)
	}
	// пик 100% в дневном слоте — ячейка должна требовать повышения
	if d.Actions[recommend.ActionRaise] == 0 {
		t.Errorf("expected at least one raise, actions = %+v", d.Actions)
	}
}

func TestBuildDashboardAutoSimZone(t *testing.T) {
	grid := pricing.Grid{}
	grid.Set(pricing.Key{Zone: "Автосим", Code: tariff.OneHour, Day: tariff.Weekday, Slot: tariff.SlotAllDay}, 500)
	grid.Set(pricing.Key{Zone: "Автосим", Code: tariff.TwoHours, Day: tariff.Weekday, Slot: tariff.SlotAllDay}, 900)

	zones := pricing.NewZones()
	zones.AddPCs("Автосим", []string{"SIM-01", "SIM-02"})

	agg := sales.NewAggregator()
	r := sales.Record{
		PC:     "SIM-01",
		Tariff: "Автосим 1 час",
		Start:  time.Date(2025, time.January, 14, 12, 0, 0, 0, time.UTC),
		Cash:   500,
	}
	code, ok := tariff.Match(r.Tariff)
	if !ok {
		t.Fatalf("autosim label must resolve to an hour code")
	}
	agg.Add(r, "Автосим", code)

	d := BuildDashboard(grid, zones, agg, occupancy.NewGrouped(), nil, recommend.Defaults())
	if len(d.Zones) != 1 {
		t.Fatalf("zones = %+v", d.Zones)
	}
	card := d.Zones[0]
	if len(card.Headers) != 3 || card.Headers[0] != "1 ЧАС" {
		t.Fatalf("autosim headers = %v", card.Headers)
	}

	row := card.Rows[0]
	c0 := row.Cols[0].Single
	if c0 == nil || c0.Empty || c0.Price != 500 {
		t.Errorf("1h cell = %+v, want price 500", c0)
	}
	if c1 := row.Cols[1].Single; c1 == nil || c1.Empty || c1.Price != 900 {
		t.Errorf("2h cell = %+v, want price 900", c1)
	}
	if c2 := row.Cols[2].Single; c2 == nil || !c2.Empty {
		t.Errorf("3h cell = %+v, want empty (no price)", c2)
	}
}

func TestRenderDashboard(t *testing.T) {
	grid, zones, agg, grouped := fixture()
	market := pricing.Market{
		{Zone: "Standard", Code: tariff.OneHour}: {Fair: 145, RawAvg: 145, Coefficient: 1},
	}
	d := BuildDashboard(grid, zones, agg, grouped, market, recommend.Defaults())

	var buf bytes.Buffer
	if err := RenderDashboard(&buf, d); err != nil {
		t.Fatal(err)
	}
	html := buf.String()

	for _, want := range []string{
		"Умный Прайс-Лист",
		"Standard",
		"Пиковая Загрузка",
		"mainChart",
		"Retention",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("dashboard html missing %q", want)
		}
	}
	// цена 150 при справедливой 145 и пике 100% — рыночное предупреждение
	if !strings.Contains(html, "rec-warn") {
		t.Errorf("dashboard html missing market warn badge")
	}
}

func TestHeatColorClampsIntensityOnly(t *testing.T) {
	// перегруз: подкраска как 100%, значение не трогаем
	if got := heatColor(5, 2); got != "rgba(255, 0, 0, 1.00)" {
		t.Errorf("overload color = %s", got)
	}
	if got := heatColor(0, 2); got != "#222" {
		t.Errorf("idle color = %s", got)
	}
}

func TestRenderTimeReport(t *testing.T) {
	u := timewindow.Usage{}
	k := timewindow.Key{Zone: 1, Day: 1, Tariff: 1}
	for i := 0; i < 8; i++ {
		u.Add(k, 17)
	}
	windows := map[timewindow.Key]timewindow.Window{k: {Start: 8, End: 17}}
	names := timewindow.Names{
		Zones:   map[int64]string{1: "Standard"},
		Days:    map[int64]string{1: "Будни"},
		Tariffs: map[int64]string{1: "3 часа"},
	}

	d := BuildTimeReport(u, windows, names)
	if len(d.Suggestions) == 0 {
		t.Fatalf("expected a cliff suggestion")
	}

	var buf bytes.Buffer
	if err := RenderTimeReport(&buf, d); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	for _, want := range []string{
		"Сводная Таблица Рекомендаций",
		"Продлить до 19:00",
		"chart_z1_d1_t1",
		"Окно тарифа: 08:00 – 17:00",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("time report html missing %q", want)
		}
	}
}

func TestRenderTimeReportEmpty(t *testing.T) {
	d := BuildTimeReport(timewindow.Usage{}, nil, timewindow.Names{})
	var buf bytes.Buffer
	if err := RenderTimeReport(&buf, d); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Нет явных рекомендаций") {
		t.Errorf("empty report must say there is nothing to suggest")
	}
}
