package tariff

import "time"

// DayTypeOf относит момент времени к будням или выходным.
// Выходные — это окно с пятницы 17:00 до понедельника 08:00,
// поэтому одна календарная дата может попасть в оба типа.
func DayTypeOf(t time.Time) DayType {
	wd := t.Weekday()
	h := t.Hour()

	switch wd {
	case time.Friday:
		if h >= 17 {
			return Weekend
		}
		return Weekday
	case time.Saturday, time.Sunday:
		return Weekend
	case time.Monday:
		if h < 8 {
			return Weekend
		}
		return Weekday
	default:
		// вт–чт — всегда будни
		return Weekday
	}
}

// SlotOf определяет слот по времени старта и коду тарифа.
// Для прайса и для реальных продаж используется одна и та же таблица
// cutoff-часов, иначе цена и продажа разъедутся по разным ключам.
// Старт в [0,4) считается продолжением вечера предыдущего дня.
func SlotOf(t time.Time, c Code) Slot {
	if c == Night {
		return SlotNight
	}
	return SlotOfHour(t.Hour(), c)
}

// SlotOfHour — то же, что SlotOf, но по «голому» часу.
// Нужен загрузчику прайса: там слот задаётся началом диапазона «Время цены».
func SlotOfHour(h int, c Code) Slot {
	if c == Night {
		return SlotNight
	}
	if h >= 4 && h < c.Cutoff() {
		return SlotDay
	}
	return SlotEvening
}

// HourRange возвращает часы, которые покрывает слот для данного тарифа.
// По ним рендер собирает пиковую и среднюю загрузку ячейки прайса.
func (s Slot) HourRange(c Code) []int {
	switch s {
	case SlotNight:
		return []int{22, 23, 0, 1, 2, 3, 4, 5, 6, 7}
	case SlotAllDay:
		hs := make([]int, 24)
		for i := range hs {
			hs[i] = i
		}
		return hs
	case SlotDay:
		var hs []int
		for h := 4; h < c.Cutoff(); h++ {
			hs = append(hs, h)
		}
		return hs
	default: // evening: cutoff..23 и ночное «плечо» 0..3
		var hs []int
		for h := c.Cutoff(); h < 24; h++ {
			hs = append(hs, h)
		}
		for h := 0; h < 4; h++ {
			hs = append(hs, h)
		}
		return hs
	}
}
