package excel

import (
	"log/slog"
	"strings"

	"github.com/Spok95/smart-price/internal/domain/pricing"
	"github.com/Spok95/smart-price/internal/domain/tariff"
	"github.com/xuri/excelize/v2"
)

// Колонки файла конкурентов.
const (
	colCompZone = "Ваша Зона"
	colCompCoef = "Ваш Коэффициент"
	// цены конкурентов — все колонки, в заголовке которых есть «конкурент»
	compMarker = "конкурент"
)

// LoadCompetitors читает цены конкурентов и считает «справедливую» цену:
// среднее по положительным ценам × личный коэффициент. Неположительные и
// нечисловые значения в среднее не входят. Файл опционален: любая ошибка
// чтения даёт пустую карту.
func LoadCompetitors(path string, log *slog.Logger) pricing.Market {
	market := pricing.Market{}
	if path == "" {
		return market
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		log.Warn("файл конкурентов не прочитан, работаем без рынка", "err", err)
		return market
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		log.Warn("файл конкурентов пуст, работаем без рынка")
		return market
	}

	idx := headerIndex(rows[0])
	var priceCols []int
	for h, i := range idx {
		if strings.Contains(h, compMarker) {
			priceCols = append(priceCols, i)
		}
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		zone := cell(row, idx, colCompZone)
		code, ok := tariff.Match(cell(row, idx, colTariff))
		if zone == "" || !ok {
			continue
		}

		sum, n := 0.0, 0
		for _, ci := range priceCols {
			if ci >= len(row) {
				continue
			}
			if v := parseFloat(row[ci]); v > 0 {
				sum += v
				n++
			}
		}
		if n == 0 {
			continue
		}

		coef := parseFloat(cell(row, idx, colCompCoef))
		if coef <= 0 {
			coef = 1.0
		}

		avg := sum / float64(n)
		market[pricing.MarketKey{Zone: zone, Code: code}] = pricing.MarketInfo{
			Fair:        avg * coef,
			RawAvg:      avg,
			Coefficient: coef,
		}
	}

	log.Info("цены конкурентов загружены", "pairs", len(market))
	return market
}
