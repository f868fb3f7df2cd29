package excel

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Spok95/smart-price/internal/domain/sales"
	"github.com/xuri/excelize/v2"
)

// Колонки выгрузки «Покупка пакетов».
const (
	colActivated = "Дата активации сессии"
	colBought    = "Дата покупки тарифа"
	colEnded     = "Дата завершения сессии"
	colPC        = "ПК"
	colSaleName  = "Название тарифа"
	colCash      = "Списано рублей"
	colBonusCol  = "Списано бонусов"
	colPhone     = "Номер телефона гостя"
)

// LoadSales читает историю продаж. Строки без пригодной даты старта
// отбрасываются: без времени сессию некуда положить.
// Дата активации может быть пустой — тогда берём дату покупки.
func LoadSales(path string, log *slog.Logger) ([]sales.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open sales workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sales sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	idx := headerIndex(rows[0])
	recs := make([]sales.Record, 0, len(rows)-1)
	dropped := 0

	for i := 1; i < len(rows); i++ {
		row := rows[i]

		var bought *time.Time
		if b := parseTime(cell(row, idx, colBought)); !b.IsZero() {
			bought = &b
		}

		start := parseTime(cell(row, idx, colActivated))
		if start.IsZero() && bought != nil {
			start = *bought
		}
		if start.IsZero() {
			dropped++
			continue
		}

		var end *time.Time
		if e := parseTime(cell(row, idx, colEnded)); !e.IsZero() {
			end = &e
		}

		recs = append(recs, sales.Record{
			PC:     cell(row, idx, colPC),
			Tariff: cell(row, idx, colSaleName),
			Start:  start,
			End:    end,
			Bought: bought,
			Cash:   parseFloat(cell(row, idx, colCash)),
			Bonus:  parseFloat(cell(row, idx, colBonusCol)),
			Phone:  cell(row, idx, colPhone),
		})
	}

	log.Info("продажи загружены", "records", len(recs), "dropped", dropped)
	return recs, nil
}
