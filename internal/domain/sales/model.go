package sales

import "time"

// Record — одна историческая продажа/сессия. Неизменяема.
type Record struct {
	PC     string
	Tariff string // свободное название тарифа из выгрузки
	Start  time.Time
	End    *time.Time // nil — время завершения не заполнено
	Bought *time.Time // момент покупки тарифа (для анализа окон)
	Cash   float64
	Bonus  float64
	Phone  string
}

// Bucket — агрегат по ячейке зона × тариф × тип дня × слот.
// Только накапливается, никогда не уменьшается.
type Bucket struct {
	Count int
	Hours float64
	Cash  float64
	Bonus float64
}

// PCRevenue — накопленная выручка одного ПК (для рейтинга аутсайдеров).
type PCRevenue struct {
	PC    string
	Zone  string
	Cash  float64
	Bonus float64
}

func (p PCRevenue) Total() float64 { return p.Cash + p.Bonus }
