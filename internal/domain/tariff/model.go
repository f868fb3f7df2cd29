package tariff

import "strings"

type Code string

const (
	OneHour    Code = "1_HOUR"
	TwoHours   Code = "2_HOURS"
	ThreeHours Code = "3_HOURS"
	FiveHours  Code = "5_HOURS"
	Night      Code = "NIGHT"
)

type DayType string

const (
	Weekday DayType = "будни"
	Weekend DayType = "выходные"
)

type Slot string

const (
	SlotDay     Slot = "day"
	SlotEvening Slot = "evening"
	SlotNight   Slot = "night"
	SlotAllDay  Slot = "all_day"
)

// keywords сопоставляет подстроку в названии тарифа каноническому коду.
// Порядок важен: «базовый» и «1 час» — синонимы.
var keywords = []struct {
	kw   string
	code Code
}{
	{"базовый", OneHour},
	{"1 час", OneHour},
	{"2 часа", TwoHours},
	{"3 часа", ThreeHours},
	{"5 часов", FiveHours},
	{"ночь", Night},
}

// Match определяет код тарифа по свободному названию из прайса или продажи.
// Автосим-пометка код не меняет: «Автосим 2 часа» остаётся TwoHours,
// метка тарифа лишь переводит его в слот all_day (см. IsAutoSim).
func Match(label string) (Code, bool) {
	l := strings.ToLower(strings.TrimSpace(label))
	for _, k := range keywords {
		if strings.Contains(l, k.kw) {
			return k.code, true
		}
	}
	return "", false
}

// IsAutoSim помечает автосим-тарифы: они живут в слоте all_day
// независимо от часа старта и cutoff-таблицы.
func IsAutoSim(label string) bool {
	return strings.Contains(strings.ToLower(label), "автосим")
}

// Duration — номинальная длительность тарифа в часах.
// Используется как длительность сессии, если нет явного времени завершения.
func (c Code) Duration() float64 {
	switch c {
	case OneHour:
		return 1
	case TwoHours:
		return 2
	case ThreeHours:
		return 3
	case FiveHours:
		return 5
	case Night:
		return 10
	default:
		return 1
	}
}

// Cutoff — час, с которого дневной слот тарифа переходит в вечерний.
func (c Code) Cutoff() int {
	switch c {
	case ThreeHours:
		return 16
	case FiveHours:
		return 14
	default:
		return 17
	}
}
