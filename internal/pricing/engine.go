package pricing

import "math"

// Input описывает выбор пользователя для расчёта стоимости.
type Input struct {
	Tier      string   `json:"tier"`
	Addons    []string `json:"addons"`
	Features  []string `json:"features"`
	IsStudent bool     `json:"is_student"`
}

// Breakdown результат расчёта.
type Breakdown struct {
	BaseCost     float64 `json:"base_cost"`
	AddonsCost   float64 `json:"addons_cost"`
	FeaturesCost float64 `json:"features_cost"`
	TotalCost    float64 `json:"total_cost"`
	Currency     string  `json:"currency"`
}

// Engine считает стоимость проекта по таблице. Безопасен для конкурентного использования.
type Engine struct {
	table *Table
}

// NewEngine создаёт калькулятор поверх таблицы.
func NewEngine(table *Table) *Engine {
	return &Engine{table: table}
}

// MustDefaultEngine создаёт калькулятор со встроенным прайсом.
func MustDefaultEngine() *Engine {
	table, err := DefaultTable()
	if err != nil {
		panic(err)
	}
	return NewEngine(table)
}

// Table возвращает используемый прайс.
func (e *Engine) Table() *Table {
	return e.table
}

// Calculate детерминированно считает стоимость. Неизвестный тариф считается
// тарифом по умолчанию, неизвестные addons и features стоят 0.
// Студенческая скидка округляет итог до целого, без скидки итог не округляется.
func (e *Engine) Calculate(in Input) Breakdown {
	base, ok := e.table.Tiers[in.Tier]
	if !ok {
		base = e.table.Tiers[e.table.DefaultTier]
	}

	addons := e.sum(in.Addons)
	// features оцениваются по тому же справочнику, что и addons
	features := e.sum(in.Features)

	total := base + addons + features
	if in.IsStudent {
		total = math.Round(total * e.table.StudentDiscount)
	}

	return Breakdown{
		BaseCost:     base,
		AddonsCost:   addons,
		FeaturesCost: features,
		TotalCost:    total,
		Currency:     e.table.Currency,
	}
}

func (e *Engine) sum(tags []string) float64 {
	var total float64
	for _, tag := range tags {
		total += e.table.Addons[tag]
	}
	return total
}
