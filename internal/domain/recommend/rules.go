package recommend

import "fmt"

type Action string

const (
	ActionRaise   Action = "UP"
	ActionPromo   Action = "PROMO"
	ActionBonusUp Action = "BONUS_UP"
	ActionWarn    Action = "WARN"
	ActionNone    Action = "OK"
)

// Thresholds — настройки чувствительности движка. Все пороги и множители
// задаются конфигом, в коде нет «зашитых» констант.
type Thresholds struct {
	PeakRaisePct    float64 `mapstructure:"peak_raise_pct"`     // пик >= => срочное повышение
	AvgRaisePct     float64 `mapstructure:"avg_raise_pct"`      // средняя >= => повышение
	BonusLoadPct    float64 `mapstructure:"bonus_load_pct"`     // средняя <= для бонусного правила
	PromoLoadPct    float64 `mapstructure:"promo_load_pct"`     // средняя <= => акция
	PromoPeakCapPct float64 `mapstructure:"promo_peak_cap_pct"` // пик < обязателен для акции
	PeakRaiseFactor float64 `mapstructure:"peak_raise_factor"`
	AvgRaiseFactor  float64 `mapstructure:"avg_raise_factor"`
	PromoFactor     float64 `mapstructure:"promo_factor"`
	BonusLimitPct   float64 `mapstructure:"bonus_limit_pct"` // текущий лимит списания бонусов
}

func Defaults() Thresholds {
	return Thresholds{
		PeakRaisePct:    90,
		AvgRaisePct:     70,
		BonusLoadPct:    30,
		PromoLoadPct:    20,
		PromoPeakCapPct: 50,
		PeakRaiseFactor: 1.20,
		AvgRaiseFactor:  1.10,
		PromoFactor:     0.90,
		BonusLimitPct:   15,
	}
}

// Input — входные параметры решения по одной ячейке прайса.
type Input struct {
	PeakLoadPct   float64
	AvgLoadPct    float64
	BonusSharePct float64
	Price         float64
	Market        *MarketInfo // nil — конкурентных цен нет
}

// MarketInfo — «справедливая» цена для рыночного ограничителя.
type MarketInfo struct {
	Fair float64
}

// Result — решение движка по ячейке.
type Result struct {
	Action   Action
	NewPrice float64
	Reason   string
	Note     string // пояснение, не меняющее решения (PROMO выше рынка)
}

// rule — одно правило лестницы: предикат и производитель решения.
// Правила проверяются по порядку, срабатывает первое.
type rule struct {
	match func(Thresholds, Input) bool
	apply func(Thresholds, Input) Result
}

var ladder = []rule{
	{
		// пиковая загрузка: срочно поднять
		match: func(t Thresholds, in Input) bool { return in.PeakLoadPct >= t.PeakRaisePct },
		apply: func(t Thresholds, in Input) Result {
			return Result{
				Action:   ActionRaise,
				NewPrice: RoundDownTo10(in.Price * t.PeakRaiseFactor),
				Reason:   fmt.Sprintf("ПИКОВАЯ ЗАГРУЗКА (%d%%) - СРОЧНО ПОДНЯТЬ", int(in.PeakLoadPct)),
			}
		},
	},
	{
		// высокий средний спрос
		match: func(t Thresholds, in Input) bool { return in.AvgLoadPct >= t.AvgRaisePct },
		apply: func(t Thresholds, in Input) Result {
			return Result{
				Action:   ActionRaise,
				NewPrice: RoundDownTo10(in.Price * t.AvgRaiseFactor),
				Reason:   fmt.Sprintf("Высокий спрос (%d%%)", int(in.AvgLoadPct)),
			}
		},
	},
	{
		// простой при упирающихся в лимит бонусах: расширить лимит
		match: bonusMatch,
		apply: bonusApply,
	},
	{
		// глухой простой: акция
		match: func(t Thresholds, in Input) bool {
			return in.AvgLoadPct <= t.PromoLoadPct && in.PeakLoadPct < t.PromoPeakCapPct
		},
		apply: func(t Thresholds, in Input) Result {
			return Result{
				Action:   ActionPromo,
				NewPrice: RoundDownTo10(in.Price * t.PromoFactor),
				Reason:   fmt.Sprintf("Простой ПК (%d%%). Снизьте цену.", int(in.AvgLoadPct)),
			}
		},
	},
}

func bonusMatch(t Thresholds, in Input) bool {
	return in.AvgLoadPct <= t.BonusLoadPct && in.BonusSharePct >= t.BonusLimitPct*0.9
}

func bonusApply(t Thresholds, in Input) Result {
	return Result{
		Action:   ActionBonusUp,
		NewPrice: in.Price,
		Reason:   fmt.Sprintf("Низкая загр. (%d%%), но бонусы популярны. Увеличьте лимит.", int(in.AvgLoadPct)),
	}
}

// Recommend прогоняет лестницу правил, затем рыночный ограничитель,
// затем повторную бонусную проверку (WARN она не перебивает).
func Recommend(t Thresholds, in Input) Result {
	res := Result{Action: ActionNone, NewPrice: in.Price}
	for _, r := range ladder {
		if r.match(t, in) {
			res = r.apply(t, in)
			break
		}
	}

	res = applyMarket(in, res)

	// бонусная проверка поверх ограничителя: может перебить акцию,
	// но не рыночное предупреждение
	if res.Action == ActionPromo && bonusMatch(t, in) {
		res = applyMarket(in, bonusApply(t, in))
	}
	return res
}

// applyMarket — рыночный ограничитель по «справедливой» цене конкурентов.
func applyMarket(in Input, res Result) Result {
	if in.Market == nil || in.Market.Fair <= 0 {
		return res
	}
	fair := in.Market.Fair

	switch res.Action {
	case ActionRaise:
		if res.NewPrice > fair {
			if in.Price >= fair {
				// уже на потолке рынка — не поднимаем, предупреждаем
				return Result{
					Action:   ActionWarn,
					NewPrice: in.Price,
					Reason:   fmt.Sprintf("Цена уже на уровне рынка (справедливая %d). Повышать рискованно.", int(fair)),
				}
			}
			res.NewPrice = fair
			res.Reason += fmt.Sprintf(" (ограничено рынком: %d)", int(fair))
		}
	case ActionPromo:
		if in.Price > fair {
			res.Note = fmt.Sprintf("Текущая цена выше рынка (справедливая %d).", int(fair))
		}
	}
	return res
}

// RoundDownTo10 обрезает цену вниз до десятки: int(x/10)*10.
// Именно усечение, не округление: 115.5 -> 110.
func RoundDownTo10(x float64) float64 {
	return float64(int(x/10) * 10)
}
