// Package app — композиция пайплайна: загрузка входов, агрегация,
// рекомендации, рендер отчётов. Один прогон — одна порция отчётов,
// никакого состояния между запусками.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Spok95/smart-price/internal/config"
	"github.com/Spok95/smart-price/internal/domain/occupancy"
	"github.com/Spok95/smart-price/internal/domain/pricing"
	"github.com/Spok95/smart-price/internal/domain/sales"
	"github.com/Spok95/smart-price/internal/domain/tariff"
	"github.com/Spok95/smart-price/internal/domain/timewindow"
	"github.com/Spok95/smart-price/internal/infra/excel"
	"github.com/Spok95/smart-price/internal/infra/langame"
	"github.com/Spok95/smart-price/internal/infra/metrics"
	"github.com/Spok95/smart-price/internal/report"
)

// Result — что прогон положил на диск (для доставки и логов).
type Result struct {
	DashboardPath  string
	TimeReportPath string
}

// Run выполняет полный прогон анализа. Пустая конфигурация прайса —
// фатальная ошибка; пустые продажи — мягкая остановка без отчёта.
func Run(ctx context.Context, cfg config.Config, log *slog.Logger) (*Result, error) {
	grid, zones, err := excel.LoadPrice(cfg.Inputs.Price, log)
	if err != nil {
		return nil, fmt.Errorf("load price config: %w", err)
	}
	if zones.Empty() || len(grid) == 0 {
		return nil, fmt.Errorf("price config is empty, nothing to analyze")
	}
	metrics.RowsParsed.WithLabelValues("price").Add(float64(len(grid)))

	if cfg.CompetitorsTemplate.Write {
		if err := excel.WriteCompetitorsTemplate(cfg.Inputs.Price, cfg.CompetitorsTemplate.Path, log); err != nil {
			log.Error("шаблон конкурентов не создан", "err", err)
		}
	}

	recs, err := excel.LoadSales(cfg.Inputs.Sales, log)
	if err != nil {
		log.Error("продажи не прочитаны", "err", err)
		recs = nil
	}
	if len(recs) == 0 {
		log.Warn("продаж нет — отчёт не формируется")
		return &Result{}, nil
	}
	metrics.RowsParsed.WithLabelValues("sales").Add(float64(len(recs)))

	market := excel.LoadCompetitors(cfg.Inputs.Competitors, log)

	salesAgg, grouped := aggregate(recs, zones, log)

	data := report.BuildDashboard(grid, zones, salesAgg, grouped, market, cfg.Thresholds)
	for action, n := range data.Actions {
		metrics.Recommendations.WithLabelValues(string(action)).Add(float64(n))
	}

	res := &Result{DashboardPath: filepath.Join(cfg.Outputs.Dir, cfg.Outputs.Dashboard)}
	if err := writeHTML(res.DashboardPath, func(f *os.File) error {
		return report.RenderDashboard(f, data)
	}); err != nil {
		return nil, fmt.Errorf("render dashboard: %w", err)
	}
	log.Info("дашборд готов", "path", res.DashboardPath, "actions", data.Summary())

	// API-вариант: анализ временных границ тарифов поверх облачной
	// конфигурации клуба
	if cfg.Langame.APIKey != "" && cfg.Langame.BaseURL != "" {
		client := langame.New(cfg.Langame.BaseURL, cfg.Langame.APIKey, log)
		club := client.FetchConfig(ctx)

		usage := buildUsage(recs, club)
		td := report.BuildTimeReport(usage, club.Windows, club.Names())

		res.TimeReportPath = filepath.Join(cfg.Outputs.Dir, cfg.Outputs.TimeReport)
		if err := writeHTML(res.TimeReportPath, func(f *os.File) error {
			return report.RenderTimeReport(f, td)
		}); err != nil {
			return nil, fmt.Errorf("render time report: %w", err)
		}
		log.Info("отчёт по временным границам готов",
			"path", res.TimeReportPath, "suggestions", len(td.Suggestions))
	}

	return res, nil
}

// aggregate — один проход по продажам: бакеты продаж и почасовая занятость.
// ПК без зоны и неопознанные тарифы молча выпадают.
func aggregate(recs []sales.Record, zones *pricing.Zones, log *slog.Logger) (*sales.Aggregator, *occupancy.Grouped) {
	salesAgg := sales.NewAggregator()
	occ := occupancy.NewAggregator()
	droppedPC, droppedTariff := 0, 0

	for _, r := range recs {
		zone, ok := zones.ZoneOfPC(r.PC)
		if !ok {
			droppedPC++
			continue
		}
		code, ok := tariff.Match(r.Tariff)
		if !ok {
			droppedTariff++
			continue
		}
		salesAgg.Add(r, zone, code)
		occ.AddSession(zone, code, r.Start, r.End)
	}

	metrics.RowsDropped.WithLabelValues("sales", "unmapped_pc").Add(float64(droppedPC))
	metrics.RowsDropped.WithLabelValues("sales", "unknown_tariff").Add(float64(droppedTariff))
	log.Info("агрегация завершена",
		"used", len(recs)-droppedPC-droppedTariff,
		"dropped_pc", droppedPC, "dropped_tariff", droppedTariff)

	return salesAgg, occupancy.Group(occ)
}

// buildUsage собирает почасовые гистограммы покупок для анализа окон:
// зона и тип дня берутся из облачной конфигурации, тариф — по точному
// совпадению названия.
func buildUsage(recs []sales.Record, club *langame.ClubConfig) timewindow.Usage {
	nameToTariff := map[string]int64{}
	for id, name := range club.Tariffs {
		nameToTariff[strings.ToLower(strings.TrimSpace(name))] = id
	}

	usage := timewindow.Usage{}
	for _, r := range recs {
		zid, ok := club.PCZone[pricing.Normalize(r.PC)]
		if !ok {
			continue
		}
		tid, ok := nameToTariff[strings.ToLower(strings.TrimSpace(r.Tariff))]
		if !ok {
			continue
		}
		at := r.Start
		if r.Bought != nil {
			at = *r.Bought
		}
		did, ok := club.Calendar[at.Format("2006-01-02")]
		if !ok {
			continue
		}
		usage.Add(timewindow.Key{Zone: zid, Day: did, Tariff: tid}, at.Hour())
	}
	return usage
}

func writeHTML(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return render(f)
}
