// Package excel читает и пишет рабочие книги xlsx: прайс-лист,
// выгрузку продаж и цены конкурентов. Кривые строки не считаются
// ошибкой — они молча выпадают из агрегации.
package excel

import (
	"strconv"
	"strings"
	"time"
)

// headerIndex строит отображение «нормализованный заголовок -> номер
// колонки» по первой строке листа.
func headerIndex(header []string) map[string]int {
	idx := map[string]int{}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			idx[h] = i
		}
	}
	return idx
}

// cell достаёт значение колонки по имени; пустая строка, если колонки
// нет или строка короче.
func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[strings.ToLower(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseFloat терпимо относится к запятой как десятичному разделителю
// и к пустым/нечисловым значениям (они дают 0).
func parseFloat(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// dayFirstLayouts — форматы дат в выгрузках Langame (день первым),
// плюс ISO на случай ручных файлов.
var dayFirstLayouts = []string{
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTime возвращает нулевое время, если ни один формат не подошёл.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// leadHour выделяет начальный час из диапазона «08:00-17:00».
func leadHour(timeRange string) int {
	head, _, _ := strings.Cut(timeRange, "-")
	hh, _, _ := strings.Cut(strings.TrimSpace(head), ":")
	h, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil || h < 0 || h > 23 {
		return 0
	}
	return h
}
