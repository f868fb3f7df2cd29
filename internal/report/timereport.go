package report

import (
	"fmt"
	"html/template"
	"io"
	"sort"

	"github.com/Spok95/smart-price/internal/domain/timewindow"
)

var timeReportTpl = template.Must(
	template.New("timereport.gohtml").Funcs(tplFuncs).ParseFS(templatesFS, "templates/timereport.gohtml"))

// TariffChart — гистограмма спроса одного тарифа в пределах зоны и типа дня.
type TariffChart struct {
	CanvasID  string
	Title     string
	Counts    []int
	Window    string // подпись активного окна, пустая — окно неизвестно
	CliffNote string // предупреждение о продажах сразу после закрытия
}

type TimeDaySection struct {
	Name   string
	Charts []TariffChart
}

type TimeZoneSection struct {
	Name string
	Days []TimeDaySection
}

type TimeReportData struct {
	Suggestions []timewindow.Suggestion
	Zones       []TimeZoneSection
}

// BuildTimeReport раскладывает гистограммы покупок по секциям
// зона → тип дня → тариф и прикладывает сводку рекомендаций.
func BuildTimeReport(
	usage timewindow.Usage,
	windows map[timewindow.Key]timewindow.Window,
	names timewindow.Names,
) *TimeReportData {
	d := &TimeReportData{
		Suggestions: timewindow.Analyze(usage, windows, names),
	}

	// группируем ключи по зоне и типу дня
	byZone := map[int64]map[int64][]timewindow.Key{}
	for k := range usage {
		if byZone[k.Zone] == nil {
			byZone[k.Zone] = map[int64][]timewindow.Key{}
		}
		byZone[k.Zone][k.Day] = append(byZone[k.Zone][k.Day], k)
	}

	for _, zid := range sortedKeys(byZone) {
		zs := TimeZoneSection{Name: nameOf(names.Zones, zid)}
		for _, did := range sortedKeys(byZone[zid]) {
			ds := TimeDaySection{Name: nameOf(names.Days, did)}
			keys := byZone[zid][did]
			sort.Slice(keys, func(i, j int) bool { return keys[i].Tariff < keys[j].Tariff })

			for _, k := range keys {
				hist := usage[k]
				chart := TariffChart{
					CanvasID: fmt.Sprintf("chart_z%d_d%d_t%d", k.Zone, k.Day, k.Tariff),
					Title:    fmt.Sprintf("%s (Спрос по часам)", nameOf(names.Tariffs, k.Tariff)),
					Counts:   hist[:],
				}

				total := 0
				for _, c := range hist {
					total += c
				}

				if w, ok := windows[k]; ok {
					chart.Window = fmt.Sprintf("Окно тарифа: %s – %s", clock(w.Start), clock(w.End))

					end := int(w.End)
					cliff := at(hist, end) + at(hist, end+1)
					if total > 0 && float64(cliff) > float64(total)*0.1 {
						chart.CliffNote = fmt.Sprintf("⚠️ Продлить тариф? %d продаж сразу после %s.", cliff, clock(w.End))
					}
				}
				ds.Charts = append(ds.Charts, chart)
			}
			zs.Days = append(zs.Days, ds)
		}
		d.Zones = append(d.Zones, zs)
	}
	return d
}

func at(hist *[24]int, h int) int {
	if h < 0 || h > 23 {
		return 0
	}
	return hist[h]
}

func clock(h float64) string {
	hh := int(h) % 24
	mm := int((h - float64(int(h))) * 60)
	return fmt.Sprintf("%02d:%02d", hh, mm)
}

func nameOf(m map[int64]string, id int64) string {
	if s, ok := m[id]; ok && s != "" {
		return s
	}
	return fmt.Sprintf("ID %d", id)
}

func sortedKeys[V any](m map[int64]V) []int64 {
	out := make([]int64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RenderTimeReport пишет готовый HTML-отчёт анализа временных границ.
func RenderTimeReport(w io.Writer, d *TimeReportData) error {
	return timeReportTpl.Execute(w, d)
}
