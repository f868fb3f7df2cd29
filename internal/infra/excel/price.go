package excel

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Spok95/smart-price/internal/domain/pricing"
	"github.com/Spok95/smart-price/internal/domain/tariff"
	"github.com/xuri/excelize/v2"
)

// Колонки прайс-листа.
const (
	colZone      = "Название"
	colPCs       = "номера ПК"
	colTariff    = "Тариф"
	colDayType   = "тип дня недели"
	colTimeRange = "Время цены"
	colPrice     = "Цена"
)

// LoadPrice читает прайс-лист: тарифную сетку, зоны с их ПК и ёмкостями.
// Нечитаемый файл — ошибка (без конфигурации анализ невозможен);
// строки с неопознанным тарифом пропускаются.
func LoadPrice(path string, log *slog.Logger) (pricing.Grid, *pricing.Zones, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open price workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read price sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("price workbook has no data rows")
	}

	idx := headerIndex(rows[0])
	grid := pricing.Grid{}
	zones := pricing.NewZones()
	skipped := 0

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		zone := cell(row, idx, colZone)
		if zone == "" {
			continue
		}

		// ПК зоны регистрируем даже при неопознанном тарифе:
		// карта ПК->зона нужна разбору продаж
		if pcsStr := cell(row, idx, colPCs); pcsStr != "" {
			zones.AddPCs(zone, strings.Split(pcsStr, ","))
		}

		label := cell(row, idx, colTariff)
		code, ok := tariff.Match(label)
		if !ok {
			skipped++
			continue
		}

		day := tariff.Weekday
		if strings.Contains(strings.ToLower(cell(row, idx, colDayType)), "выходн") {
			day = tariff.Weekend
		}

		slot := tariff.SlotOfHour(leadHour(cell(row, idx, colTimeRange)), code)
		if tariff.IsAutoSim(label) {
			slot = tariff.SlotAllDay
		}

		grid.Set(pricing.Key{Zone: zone, Code: code, Day: day, Slot: slot},
			parseFloat(cell(row, idx, colPrice)))
	}

	log.Info("прайс загружен",
		"zones", len(grid.ZoneNames()), "cells", len(grid), "skipped_rows", skipped)
	return grid, zones, nil
}
