package excel

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// WriteCompetitorsTemplate создаёт заготовку файла цен конкурентов по
// парам зона+тариф из прайса: базовая строка плюс варианты для будней
// и выходных. Колонки цен владелец заполняет руками.
func WriteCompetitorsTemplate(pricePath, outPath string, log *slog.Logger) error {
	src, err := excelize.OpenFile(pricePath)
	if err != nil {
		return fmt.Errorf("open price workbook: %w", err)
	}
	defer func() { _ = src.Close() }()

	sheet := src.GetSheetName(src.GetActiveSheetIndex())
	rows, err := src.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return fmt.Errorf("price workbook has no data rows")
	}

	idx := headerIndex(rows[0])
	type pair struct{ zone, tariff string }
	seen := map[pair]struct{}{}
	var pairs []pair
	for i := 1; i < len(rows); i++ {
		p := pair{
			zone:   cell(rows[i], idx, colZone),
			tariff: cell(rows[i], idx, colTariff),
		}
		if p.zone == "" || p.tariff == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		pairs = append(pairs, p)
	}

	out := excelize.NewFile()
	defer func() { _ = out.Close() }()
	outSheet := out.GetSheetName(out.GetActiveSheetIndex())

	header := []interface{}{"Ваша Зона", "Тариф", "Цена Конкурента 1", "Цена Конкурента 2", "Ваш Коэффициент"}
	if err := out.SetSheetRow(outSheet, "A1", &header); err != nil {
		return fmt.Errorf("write template header: %w", err)
	}

	rowN := 2
	writeRow := func(zone, tariff string) error {
		r := []interface{}{zone, tariff, nil, nil, 1.0}
		if err := out.SetSheetRow(outSheet, fmt.Sprintf("A%d", rowN), &r); err != nil {
			return err
		}
		rowN++
		return nil
	}

	for _, p := range pairs {
		for _, label := range []string{p.tariff, p.tariff + " (Будни)", p.tariff + " (Выходные)"} {
			if err := writeRow(p.zone, label); err != nil {
				return fmt.Errorf("write template row: %w", err)
			}
		}
	}

	if err := out.SaveAs(outPath); err != nil {
		return fmt.Errorf("save competitors template: %w", err)
	}
	log.Info("шаблон конкурентов создан", "path", outPath, "rows", rowN-2)
	return nil
}
